// Package cli tests the root command, global flags and exit code mapping.
// Related: internal/cli/root.go, internal/cli/exit_codes.go
// Tags: cli, root, commands, global-flags, exit-codes

package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	clierrors "github.com/ariel-frischer/chlog/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleChangelog = `# Changelog

All notable changes to this project will be documented in this file.

## [Unreleased]

### Added

- Feature C

## [1.1.0] - 2024-02-01

### Fixed

- Bug B

## [1.0.0] - 2024-01-01

- Initial release

[1.1.0]: https://github.com/acme/app/releases/tag/v1.1.0
[1.0.0]: https://github.com/acme/app/releases/tag/v1.0.0
`

// runCLI executes a fresh command tree and returns its output and exit code.
func runCLI(t *testing.T, args ...string) (stdout, stderr string, code int) {
	t.Helper()

	cmd := NewRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)

	err := execute(cmd)
	return out.String(), errOut.String(), ExitCode(err)
}

// writeChangelogFile writes content to CHANGELOG.md in a fresh temp dir.
func writeChangelogFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "CHANGELOG.md")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	b, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(b)
}

func TestRootCmd_Structure(t *testing.T) {
	t.Parallel()

	cmd := NewRootCmd()
	assert.Equal(t, "chlog", cmd.Use)
	assert.NotEmpty(t, cmd.Short)
	assert.NotEmpty(t, cmd.Long)
	assert.NotEmpty(t, cmd.Example)
	assert.True(t, cmd.SilenceUsage)
	assert.True(t, cmd.SilenceErrors)
}

func TestRootCmd_PersistentFlags(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		flagName string
	}{
		"config flag exists": {flagName: "config"},
		"debug flag exists":  {flagName: "debug"},
		"plain flag exists":  {flagName: "plain"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			flag := NewRootCmd().PersistentFlags().Lookup(tt.flagName)
			assert.NotNil(t, flag, "Flag %s should exist", tt.flagName)
		})
	}
}

func TestRootCmd_Subcommands(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		name  string
		group string
	}{
		"bump":    {name: "bump", group: GroupChangelog},
		"query":   {name: "query", group: GroupChangelog},
		"version": {name: "version", group: GroupInfo},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			cmd, _, err := NewRootCmd().Find([]string{tt.name})
			require.NoError(t, err)
			assert.Equal(t, tt.name, cmd.Name())
			assert.Equal(t, tt.group, cmd.GroupID)
		})
	}
}

func TestExecute_CobraErrors(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		args       []string
		wantStderr string
	}{
		"unknown command": {
			args:       []string{"publish"},
			wantStderr: "unknown command",
		},
		"unknown flag": {
			args:       []string{"query", "--nope"},
			wantStderr: "unknown flag",
		},
		"missing required flag": {
			args:       []string{"bump"},
			wantStderr: "release-type",
		},
		"too many arguments": {
			args:       []string{"query", "latest", "1.0.0"},
			wantStderr: "accepts at most 1 arg",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			stdout, stderr, code := runCLI(t, tt.args...)
			assert.Equal(t, ExitInvalidOptions, code)
			assert.Empty(t, stdout)
			assert.Contains(t, stderr, tt.wantStderr)
			assert.Contains(t, stderr, "Option Error")
		})
	}
}

func TestExitCode(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		err  error
		want int
	}{
		"nil is success":            {err: nil, want: ExitSuccess},
		"exit error carries code":   {err: NewExitError(ExitPipelineFailed), want: ExitPipelineFailed},
		"other errors are internal": {err: assert.AnError, want: ExitInternalError},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, ExitCode(tt.err))
		})
	}
}

func TestExitCodeFor(t *testing.T) {
	t.Parallel()

	assert.Equal(t, ExitInvalidOptions, exitCodeFor(clierrors.Option))
	assert.Equal(t, ExitPipelineFailed, exitCodeFor(clierrors.Pipeline))
	assert.Equal(t, ExitInternalError, exitCodeFor(clierrors.Internal))

	codes := []int{ExitSuccess, ExitPipelineFailed, ExitInvalidOptions, ExitInternalError}
	seen := make(map[int]bool)
	for _, c := range codes {
		assert.False(t, seen[c], "exit code %d is used twice", c)
		assert.GreaterOrEqual(t, c, 0)
		seen[c] = true
	}
}

func TestExitError(t *testing.T) {
	t.Parallel()

	err := NewExitError(ExitInternalError)
	var exitErr *ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, ExitInternalError, exitErr.Code())
	assert.Equal(t, "exit code 3", err.Error())
}
