package changelog

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/ariel-frischer/chlog/internal/markdown"
)

// ErrEmptyReleaseNotes is returned when empty notes were asked to fail.
var ErrEmptyReleaseNotes = errors.New("release notes are empty")

// SelectorKind tells how a Selector picks a release.
type SelectorKind int

const (
	// SelectUnreleased picks the Unreleased section.
	SelectUnreleased SelectorKind = iota
	// SelectLatest picks the most recent released version.
	SelectLatest
	// SelectLatestOrUnreleased picks the latest release, falling back to Unreleased.
	SelectLatestOrUnreleased
	// SelectVersion picks a concrete version.
	SelectVersion
)

// Selector identifies the release a query targets.
type Selector struct {
	Kind    SelectorKind
	Version *semver.Version
}

// ParseSelector accepts "unreleased", "latest", "latest-or-unreleased" or a
// version. Versions may carry a "v" prefix ("v0.6.0" and "0.6.0" are equal).
func ParseSelector(s string) (Selector, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "unreleased":
		return Selector{Kind: SelectUnreleased}, nil
	case "latest":
		return Selector{Kind: SelectLatest}, nil
	case "latest-or-unreleased":
		return Selector{Kind: SelectLatestOrUnreleased}, nil
	}

	v, err := semver.NewVersion(strings.TrimSpace(s))
	if err != nil {
		return Selector{}, fmt.Errorf("invalid release selector %q (expected: unreleased, latest, latest-or-unreleased or a version): %w", s, err)
	}
	return Selector{Kind: SelectVersion, Version: v}, nil
}

func (s Selector) String() string {
	switch s.Kind {
	case SelectUnreleased:
		return "unreleased"
	case SelectLatest:
		return "latest"
	case SelectLatestOrUnreleased:
		return "latest-or-unreleased"
	default:
		return s.Version.String()
	}
}

// ReleaseNotFoundError is returned when no release matches a selector.
type ReleaseNotFoundError struct {
	Selector  string
	Available []string
}

func (e *ReleaseNotFoundError) Error() string {
	if len(e.Available) == 0 {
		return fmt.Sprintf("release %q not found (changelog has no release sections)", e.Selector)
	}
	return fmt.Sprintf("release %q not found (available: %s)",
		e.Selector, strings.Join(e.Available, ", "))
}

// Find returns the first release in releases matching sel.
func Find(releases []ReleaseHeading, sel Selector) (*ReleaseHeading, bool) {
	switch sel.Kind {
	case SelectUnreleased:
		return findFirst(releases, func(r Release) bool { return r.IsUnreleased() })
	case SelectLatest:
		return findFirst(releases, func(r Release) bool { return !r.IsUnreleased() })
	case SelectLatestOrUnreleased:
		if latest, ok := Find(releases, Selector{Kind: SelectLatest}); ok {
			return latest, true
		}
		return Find(releases, Selector{Kind: SelectUnreleased})
	case SelectVersion:
		return findFirst(releases, func(r Release) bool {
			return !r.IsUnreleased() && r.Version.Equal(sel.Version)
		})
	}
	return nil, false
}

func findFirst(releases []ReleaseHeading, match func(Release) bool) (*ReleaseHeading, bool) {
	for i := range releases {
		if match(releases[i].Release) {
			return &releases[i], true
		}
	}
	return nil, false
}

// Extraction is the content of one release section.
type Extraction struct {
	Release Release
	// Notes holds the nodes strictly between the release heading and the
	// start of the next section.
	Notes *markdown.Document
}

// Extract returns the section selected by sel as a new root document.
// With failOnEmpty, a section without content is an ErrEmptyReleaseNotes
// error.
func Extract(doc *markdown.Document, releases []ReleaseHeading, sel Selector, failOnEmpty bool) (*Extraction, error) {
	match, ok := Find(releases, sel)
	if !ok {
		return nil, &ReleaseNotFoundError{
			Selector:  sel.String(),
			Available: ListReleases(releases),
		}
	}

	end := match.Boundary
	if end < 0 {
		end = doc.Len()
	}
	notes := doc.Slice(match.Index+1, end)

	if failOnEmpty && notes.Len() == 0 {
		return nil, fmt.Errorf("%s: %w", match.Release.Label(), ErrEmptyReleaseNotes)
	}

	return &Extraction{Release: match.Release, Notes: notes}, nil
}
