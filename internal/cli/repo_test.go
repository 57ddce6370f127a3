package cli

import (
	"os"
	"path/filepath"
	"testing"

	gogit "github.com/go-git/go-git/v5"
	gitconfig "github.com/go-git/go-git/v5/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// changelogInRepo creates a repository with an origin remote (unless url is
// empty) and returns the path of a changelog inside it.
func changelogInRepo(t *testing.T, url string) string {
	t.Helper()

	dir := t.TempDir()
	repo, err := gogit.PlainInit(dir, false)
	require.NoError(t, err)
	if url != "" {
		_, err = repo.CreateRemote(&gitconfig.RemoteConfig{Name: "origin", URLs: []string{url}})
		require.NoError(t, err)
	}

	path := filepath.Join(dir, "CHANGELOG.md")
	require.NoError(t, os.WriteFile(path, []byte("## [Unreleased]\n"), 0o644))
	return path
}

// Sets GITHUB_REPOSITORY, so not parallel.
func TestResolveGitHubRepo(t *testing.T) {
	tests := map[string]struct {
		configured string
		env        string
		origin     string
		want       string
	}{
		"configured value wins": {
			configured: "acme/configured",
			env:        "acme/env",
			origin:     "git@github.com:acme/origin.git",
			want:       "acme/configured",
		},
		"environment before origin": {
			env:    "acme/env",
			origin: "git@github.com:acme/origin.git",
			want:   "acme/env",
		},
		"ssh origin": {
			origin: "git@github.com:acme/origin.git",
			want:   "acme/origin",
		},
		"https origin": {
			origin: "https://github.com/acme/origin",
			want:   "acme/origin",
		},
		"origin outside github": {
			origin: "https://gitlab.com/acme/origin.git",
			want:   "",
		},
		"no origin": {
			want: "",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Setenv(githubRepositoryEnv, tt.env)
			path := changelogInRepo(t, tt.origin)

			assert.Equal(t, tt.want, resolveGitHubRepo(tt.configured, path))
		})
	}
}

// Sets GITHUB_REPOSITORY, so not parallel.
func TestBumpCmd_RepoFromOrigin(t *testing.T) {
	t.Setenv(githubRepositoryEnv, "")
	path := changelogInRepo(t, "git@github.com:acme/app.git")
	require.NoError(t, os.WriteFile(path, []byte("## [Unreleased]\n\n- Added X\n"), 0o644))

	_, stderr, code := runCLI(t, "bump", "-c", path, "-t", "minor", "--release-date", "2024-01-01")
	require.Equal(t, ExitSuccess, code, stderr)
	assert.Equal(t, "## [0.1.0] - 2024-01-01\n\n- Added X\n\n"+
		"[0.1.0]: https://github.com/acme/app/releases/tag/v0.1.0\n", readFile(t, path))
}
