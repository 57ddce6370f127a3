package cli

import (
	"log/slog"
	"os"
	"path/filepath"

	"github.com/ariel-frischer/chlog/internal/changelog"
	"github.com/ariel-frischer/chlog/internal/git"
)

// githubRepositoryEnv is set by GitHub Actions to "owner/repo".
const githubRepositoryEnv = "GITHUB_REPOSITORY"

// resolveGitHubRepo returns the repository used for release links. The
// configured value wins, then GITHUB_REPOSITORY, then the origin remote of
// the repository holding the changelog when it points at github.com.
// It returns "" when none is available.
func resolveGitHubRepo(configured, changelogPath string) string {
	if configured != "" {
		return configured
	}

	if env := os.Getenv(githubRepositoryEnv); env != "" {
		slog.Debug("using GitHub repository from environment", slog.String("repo", env))
		return env
	}

	dir := filepath.Dir(changelogPath)
	if !git.IsGitRepository(dir) {
		slog.Debug("changelog is not inside a git repository", slog.String("dir", dir))
		return ""
	}
	url, err := git.OriginURL(dir)
	if err != nil {
		slog.Debug("no origin remote", slog.String("dir", dir), slog.Any("error", err))
		return ""
	}

	links, err := changelog.ParseGitHubRepo(url)
	if err != nil {
		slog.Debug("origin remote is not a GitHub repository", slog.String("url", url))
		return ""
	}

	slog.Debug("using GitHub repository from origin remote", slog.String("repo", links.String()))
	return links.String()
}
