// Package testutil provides test utilities and helpers for chlog tests.
package testutil

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"sync"
	"testing"
	"time"

	gogit "github.com/go-git/go-git/v5"
	gitconfig "github.com/go-git/go-git/v5/config"
)

// ChangelogName is the changelog file name used by E2EEnv.
const ChangelogName = "CHANGELOG.md"

var (
	// chlogBinaryPath caches the built chlog binary path.
	chlogBinaryPath string
	chlogBuildOnce  sync.Once
	chlogBuildErr   error
)

// E2EEnv provides an isolated environment for E2E testing.
// Commands run in a temp working directory with an environment that carries
// no CHLOG_* or GITHUB_REPOSITORY variables from the caller.
type E2EEnv struct {
	t       *testing.T
	tempDir string
	binDir  string
	extra   []string
}

// CommandResult captures the result of running a chlog command.
type CommandResult struct {
	ExitCode int
	Stdout   string
	Stderr   string
	Duration time.Duration
}

// NewE2EEnv creates a new E2E test environment with the chlog binary built
// into its bin directory.
func NewE2EEnv(t *testing.T) *E2EEnv {
	t.Helper()

	tempDir := t.TempDir()
	env := &E2EEnv{
		t:       t,
		tempDir: tempDir,
		binDir:  filepath.Join(tempDir, "bin"),
	}
	if err := os.MkdirAll(env.binDir, 0o755); err != nil {
		t.Fatalf("creating bin directory: %v", err)
	}

	env.installChlog()
	return env
}

func (e *E2EEnv) installChlog() {
	e.t.Helper()

	// Build chlog binary once per test session
	chlogBuildOnce.Do(func() {
		chlogBinaryPath, chlogBuildErr = buildChlog()
	})
	if chlogBuildErr != nil {
		e.t.Fatalf("building chlog: %v", chlogBuildErr)
	}

	content, err := os.ReadFile(chlogBinaryPath)
	if err != nil {
		e.t.Fatalf("reading chlog binary: %v", err)
	}
	if err := os.WriteFile(filepath.Join(e.binDir, "chlog"), content, 0o755); err != nil {
		e.t.Fatalf("writing chlog binary: %v", err)
	}
}

func buildChlog() (string, error) {
	_, currentFile, _, ok := runtime.Caller(0)
	if !ok {
		return "", errors.New("determining current file location")
	}
	// Navigate from internal/testutil/ to repo root
	repoRoot := filepath.Join(filepath.Dir(currentFile), "..", "..")

	tmpDir, err := os.MkdirTemp("", "chlog-build-*")
	if err != nil {
		return "", fmt.Errorf("creating temp dir for build: %w", err)
	}
	binaryPath := filepath.Join(tmpDir, "chlog")

	cmd := exec.Command("go", "build", "-o", binaryPath, "./cmd/chlog")
	cmd.Dir = repoRoot
	if output, err := cmd.CombinedOutput(); err != nil {
		return "", fmt.Errorf("building chlog: %w\nOutput: %s", err, output)
	}
	return binaryPath, nil
}

// Setenv adds a variable to the environment of later Run calls.
func (e *E2EEnv) Setenv(key, value string) {
	e.extra = append(e.extra, key+"="+value)
}

// Run executes a chlog command in the isolated E2E environment.
func (e *E2EEnv) Run(args ...string) CommandResult {
	e.t.Helper()

	start := time.Now()

	cmd := exec.Command(filepath.Join(e.binDir, "chlog"), args...)
	cmd.Dir = e.tempDir
	cmd.Env = e.buildIsolatedEnv()

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()

	result := CommandResult{
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		Duration: time.Since(start),
	}
	if err != nil {
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			e.t.Fatalf("running chlog: %v", err)
		}
		result.ExitCode = exitErr.ExitCode()
	}
	return result
}

func (e *E2EEnv) buildIsolatedEnv() []string {
	env := []string{
		"PATH=" + e.binDir,
		"HOME=" + e.tempDir,
	}

	// Add safe environment variables from original environment
	for _, key := range []string{"TERM", "LANG", "LC_ALL", "TMPDIR", "TMP", "TEMP"} {
		if val, ok := os.LookupEnv(key); ok {
			env = append(env, key+"="+val)
		}
	}

	return append(env, e.extra...)
}

// TempDir returns the working directory of chlog commands.
func (e *E2EEnv) TempDir() string {
	return e.tempDir
}

// ChangelogPath returns the path of the changelog in the working directory.
func (e *E2EEnv) ChangelogPath() string {
	return filepath.Join(e.tempDir, ChangelogName)
}

// WriteChangelog writes the changelog in the working directory.
func (e *E2EEnv) WriteChangelog(content string) {
	e.t.Helper()
	e.WriteFile(ChangelogName, content)
}

// ReadChangelog returns the current changelog content.
func (e *E2EEnv) ReadChangelog() string {
	e.t.Helper()

	content, err := os.ReadFile(e.ChangelogPath())
	if err != nil {
		e.t.Fatalf("reading changelog: %v", err)
	}
	return string(content)
}

// WriteFile writes a file relative to the working directory.
func (e *E2EEnv) WriteFile(name, content string) {
	e.t.Helper()

	path := filepath.Join(e.tempDir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		e.t.Fatalf("creating directory for %s: %v", name, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		e.t.Fatalf("writing %s: %v", name, err)
	}
}

// InitGitRepo initializes a git repository in the working directory with
// an origin remote pointing at originURL.
func (e *E2EEnv) InitGitRepo(originURL string) {
	e.t.Helper()

	repo, err := gogit.PlainInit(e.tempDir, false)
	if err != nil {
		e.t.Fatalf("git init failed: %v", err)
	}
	_, err = repo.CreateRemote(&gitconfig.RemoteConfig{
		Name: "origin",
		URLs: []string{originURL},
	})
	if err != nil {
		e.t.Fatalf("creating origin remote failed: %v", err)
	}
}
