// Package git provides read-only Git repository helpers for chlog. It uses the
// go-git library, so no git binary is required. chlog never writes to the
// repository; it only reads remote configuration to build release links.
package git

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"sync/atomic"

	"github.com/go-git/go-git/v5"
)

// DefaultRemote is the remote consulted for the repository URL.
const DefaultRemote = "origin"

// ErrNoRemote is returned when the repository has no matching remote or the
// remote has no URL.
var ErrNoRemote = errors.New("remote not found")

// debugLogger holds the function that logs debug messages when debug mode is
// enabled. By default, it's a no-op. Set it via SetDebugLogger to enable debug output.
var debugLogger atomic.Pointer[func(format string, args ...any)]

// SetDebugLogger configures the debug logger for git operations.
// Pass nil to disable debug logging. The logger function should format
// and output the message (similar to log.Printf signature).
func SetDebugLogger(logger func(format string, args ...any)) {
	if logger == nil {
		debugLogger.Store(nil)
		return
	}
	debugLogger.Store(&logger)
}

// logDebug logs a debug message if the debug logger is set.
func logDebug(format string, args ...any) {
	if logger := debugLogger.Load(); logger != nil {
		(*logger)(format, args...)
	}
}

// openRepo opens a git repository at the specified path or current working directory.
// It uses go-git's PlainOpenWithOptions with DetectDotGit enabled to traverse
// up the directory tree to find the repository root.
// If path is empty, the current working directory is used.
func openRepo(path string) (*git.Repository, error) {
	if path == "" {
		var err error
		path, err = os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("getting current directory: %w", err)
		}
	}

	logDebug("[git] opening repository at %s", path)

	repo, err := git.PlainOpenWithOptions(path, &git.PlainOpenOptions{
		DetectDotGit: true,
	})
	if err != nil {
		return nil, fmt.Errorf("opening repository at %s: %w", path, err)
	}

	logDebug("[git] repository opened successfully")
	return repo, nil
}

// IsGitRepository checks if path is within a git repository.
func IsGitRepository(path string) bool {
	_, err := openRepo(path)
	result := err == nil
	logDebug("[git] IsGitRepository(%s): %v", path, result)
	return result
}

// RemoteURL returns the first URL of the named remote of the repository
// containing path.
func RemoteURL(path, name string) (string, error) {
	repo, err := openRepo(path)
	if err != nil {
		return "", err
	}

	remote, err := repo.Remote(name)
	if err != nil {
		if errors.Is(err, git.ErrRemoteNotFound) {
			return "", fmt.Errorf("%s: %w", name, ErrNoRemote)
		}
		return "", fmt.Errorf("reading remote %s: %w", name, err)
	}

	urls := remote.Config().URLs
	if len(urls) == 0 || strings.TrimSpace(urls[0]) == "" {
		return "", fmt.Errorf("%s has no URL: %w", name, ErrNoRemote)
	}

	logDebug("[git] RemoteURL(%s): %s", name, urls[0])
	return urls[0], nil
}

// OriginURL returns the URL of the origin remote of the repository containing path.
func OriginURL(path string) (string, error) {
	return RemoteURL(path, DefaultRemote)
}
