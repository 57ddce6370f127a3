package changelog

import (
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/semver/v3"
	"github.com/ariel-frischer/chlog/internal/markdown"
)

// DateLayout is the release date format used in headings (yyyy-MM-dd).
const DateLayout = "2006-01-02"

const unreleasedLabel = "Unreleased"

// ReleaseKind discriminates the two release heading variants.
type ReleaseKind int

const (
	// KindUnreleased is the "Unreleased" section.
	KindUnreleased ReleaseKind = iota
	// KindReleased is a dated version section.
	KindReleased
)

// Release is the parsed form of a release heading: either the Unreleased
// section or a released version with its date and optional trailing text.
// Version, Date and Suffix are only set for KindReleased.
type Release struct {
	Kind    ReleaseKind
	Version *semver.Version
	Date    time.Time
	Suffix  string
}

// Unreleased returns the descriptor of the Unreleased section.
func Unreleased() Release {
	return Release{Kind: KindUnreleased}
}

// Released returns the descriptor of a dated release.
func Released(version *semver.Version, date time.Time, suffix string) Release {
	return Release{Kind: KindReleased, Version: version, Date: date, Suffix: suffix}
}

// IsUnreleased returns true if this descriptor is the Unreleased section.
func (r Release) IsUnreleased() bool {
	return r.Kind == KindUnreleased
}

// Label returns the text shown for the release: "Unreleased" or the version.
func (r Release) Label() string {
	if r.IsUnreleased() {
		return unreleasedLabel
	}
	return r.Version.String()
}

// Tag returns the git ref of the release. Unreleased changes live on HEAD.
func (r Release) Tag(prefix string) string {
	if r.IsUnreleased() {
		return "HEAD"
	}
	return prefix + r.Version.String()
}

// DateString returns the release date as yyyy-MM-dd, or "" for Unreleased.
func (r Release) DateString() string {
	if r.IsUnreleased() {
		return ""
	}
	return r.Date.Format(DateLayout)
}

// ReleaseHeading associates a level-2 heading with its parsed release.
//
// Release headings are always direct children of the document, so the
// document itself is the parent. Index and Boundary are positions in the
// document's children; Boundary is -1 when the section runs to the end.
type ReleaseHeading struct {
	Heading  *markdown.Heading
	Index    int
	Release  Release
	Boundary int
}

// ListReleases returns the labels of all releases in document order.
func ListReleases(releases []ReleaseHeading) []string {
	labels := make([]string, len(releases))
	for i, r := range releases {
		labels[i] = r.Release.Label()
	}
	return labels
}

// ReleaseType names a semantic version increment.
type ReleaseType string

const (
	Major      ReleaseType = "major"
	Premajor   ReleaseType = "premajor"
	Minor      ReleaseType = "minor"
	Preminor   ReleaseType = "preminor"
	Patch      ReleaseType = "patch"
	Prepatch   ReleaseType = "prepatch"
	Prerelease ReleaseType = "prerelease"
)

// ReleaseTypes returns every valid release type in increment order.
func ReleaseTypes() []ReleaseType {
	return []ReleaseType{Major, Premajor, Minor, Preminor, Patch, Prepatch, Prerelease}
}

// ParseReleaseType validates s as a release type.
func ParseReleaseType(s string) (ReleaseType, error) {
	rt := ReleaseType(strings.ToLower(strings.TrimSpace(s)))
	for _, valid := range ReleaseTypes() {
		if rt == valid {
			return rt, nil
		}
	}
	return "", fmt.Errorf("invalid release type %q (expected one of: major, premajor, minor, preminor, patch, prepatch, prerelease)", s)
}
