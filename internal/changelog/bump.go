package changelog

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Masterminds/semver/v3"
	"github.com/ariel-frischer/chlog/internal/markdown"
)

// MarkReleased rewrites the leading Unreleased heading into "[version] - date"
// and updates its record. With keepUnreleased a fresh empty Unreleased
// heading takes its old position and its record is prepended.
func MarkReleased(doc *markdown.Document, releases []ReleaseHeading, version *semver.Version, date time.Time, tagPrefix string, keepUnreleased bool) ([]ReleaseHeading, error) {
	if err := RequireUnreleased(releases); err != nil {
		return nil, err
	}

	head := &releases[0]
	head.Release = Released(version, date, "")
	head.Heading.Children = releaseInlines(head.Release, tagPrefix)

	if keepUnreleased {
		releases = EnsureUnreleased(doc, releases)
	}
	return releases, nil
}

// BumpOptions configures a bump run.
type BumpOptions struct {
	ReleaseType             ReleaseType
	PrereleaseID            string
	ReleaseDate             time.Time
	TagPrefix               string
	KeepUnreleasedSection   bool
	FailOnEmptyReleaseNotes bool
	Links                   LinkGenerator
}

// BumpResult describes the release a bump produced.
type BumpResult struct {
	Release      Release
	ReleaseNotes *markdown.Document
}

// Bump promotes the Unreleased section of doc into a dated release, in place.
// path only labels diagnostics. On error doc may be partially modified and
// must not be written.
func Bump(doc *markdown.Document, path string, opts BumpOptions) (*BumpResult, error) {
	if opts.Links == nil {
		return nil, errors.New("bump requires a link generator")
	}

	releases, err := preprocessAndGate(doc, path)
	if err != nil {
		return nil, err
	}

	if err := RequireUnreleased(releases); err != nil {
		return nil, err
	}

	notes, err := Extract(doc, releases, Selector{Kind: SelectUnreleased}, opts.FailOnEmptyReleaseNotes)
	if err != nil {
		return nil, err
	}

	next, err := NextVersion(releases, opts.ReleaseType, opts.PrereleaseID)
	if err != nil {
		return nil, fmt.Errorf("computing next version: %w", err)
	}
	slog.Debug("computed next version",
		slog.String(logKeyReleaseType, string(opts.ReleaseType)),
		slog.String(logKeyVersion, next.String()))

	releases, err = MarkReleased(doc, releases, next, opts.ReleaseDate, opts.TagPrefix, opts.KeepUnreleasedSection)
	if err != nil {
		return nil, err
	}

	if err := RegenerateLinks(doc, releases, opts.TagPrefix, opts.Links); err != nil {
		return nil, err
	}

	released := releases[0].Release
	if opts.KeepUnreleasedSection {
		released = releases[1].Release
	}

	return &BumpResult{Release: released, ReleaseNotes: notes.Notes}, nil
}

// Query extracts the release selected by sel from doc. path only labels
// diagnostics.
func Query(doc *markdown.Document, path string, sel Selector) (*Extraction, error) {
	releases, err := preprocessAndGate(doc, path)
	if err != nil {
		return nil, err
	}

	ext, err := Extract(doc, releases, sel, false)
	if err != nil {
		return nil, err
	}

	slog.Debug("extracted release",
		slog.String(logKeySelector, sel.String()),
		slog.String(logKeyRelease, ext.Release.Label()),
		slog.Int(logKeyNodes, ext.Notes.Len()))
	return ext, nil
}

func preprocessAndGate(doc *markdown.Document, path string) ([]ReleaseHeading, error) {
	rep := NewReport(path)
	releases := Preprocess(doc, rep)

	slog.Debug("preprocessed changelog",
		slog.String(logKeyPath, path),
		slog.Int(logKeyReleases, len(releases)),
		slog.Int(logKeyMessages, len(rep.Messages)))

	for _, w := range rep.Warnings() {
		slog.Warn(w.Text, slog.String(logKeyPath, path), slog.Int(logKeyLine, w.Line))
	}

	if err := rep.Err(); err != nil {
		return nil, err
	}
	return releases, nil
}
