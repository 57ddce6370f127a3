package cli

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"

	"github.com/ariel-frischer/chlog/internal/changelog"
	clierrors "github.com/ariel-frischer/chlog/internal/errors"
	"github.com/ariel-frischer/chlog/internal/markdown"
)

// stdoutPath is the output file name that writes to standard output.
const stdoutPath = "-"

// readChangelog reads and parses the changelog at path.
func readChangelog(path string) (*markdown.Document, *clierrors.CLIError) {
	src, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, clierrors.ChangelogNotFound(path)
		}
		return nil, clierrors.ChangelogReadError(path, err)
	}

	doc, err := markdown.Parse(src)
	if err != nil {
		return nil, clierrors.InvalidChangelog(path, err)
	}

	slog.Debug("parsed changelog",
		slog.String("path", path),
		slog.Int("bytes", len(src)),
		slog.Int("nodes", doc.Len()))
	return doc, nil
}

// writeChangelog writes content to dest, or to stdout when dest is "-".
// An existing file keeps its permissions.
func writeChangelog(stdout io.Writer, dest, content string) *clierrors.CLIError {
	if dest == stdoutPath {
		if _, err := io.WriteString(stdout, content); err != nil {
			return clierrors.ChangelogWriteError(dest, err)
		}
		return nil
	}

	perm := fs.FileMode(0o644)
	if info, err := os.Stat(dest); err == nil {
		perm = info.Mode().Perm()
	}
	if err := os.WriteFile(dest, []byte(content), perm); err != nil {
		return clierrors.ChangelogWriteError(dest, err)
	}
	return nil
}

// classifyError turns an error from the changelog pipeline into a CLIError.
func classifyError(err error, path string) *clierrors.CLIError {
	var notFound *changelog.ReleaseNotFoundError
	switch {
	case changelog.IsStructuralError(err):
		return clierrors.StructuralFailure(err)
	case errors.Is(err, changelog.ErrNoUnreleased):
		return clierrors.NoUnreleasedSection(path)
	case errors.Is(err, changelog.ErrEmptyReleaseNotes):
		return clierrors.EmptyReleaseNotes(path)
	case errors.As(err, &notFound):
		return clierrors.ReleaseNotFound(notFound.Selector, notFound.Available)
	default:
		return clierrors.WrapWithMessage(err, clierrors.Internal, fmt.Sprintf("processing %s", path))
	}
}
