package changelog

import (
	"regexp"
	"strings"
	"time"

	"github.com/Masterminds/semver/v3"
	"github.com/ariel-frischer/chlog/internal/markdown"
)

var (
	// [version] - date suffix, with optional brackets, date and suffix.
	plainHeadingPattern = regexp.MustCompile(`^\[?([^\[\]\s]+)\]?(?:\s+-\s*(\S+))?\s*(.*)$`)
	// " - date suffix" following a linked version.
	linkedTailPattern = regexp.MustCompile(`^\s*-\s*(\S+)\s*(.*)$`)
)

// headingShape is the raw form a release heading was written in.
type headingShape interface {
	isHeadingShape()
}

// plainHeading is a heading whose content starts with text, for example
// "1.0.0 - 2024-01-01" or "[Unreleased]" without a matching definition.
type plainHeading struct {
	text string
}

// linkedHeading is a heading whose version is a reference link, for example
// "[1.0.0] - 2024-01-01" with a "[1.0.0]: ..." definition.
type linkedHeading struct {
	label string
	tail  string
}

func (plainHeading) isHeadingShape()  {}
func (linkedHeading) isHeadingShape() {}

func shapeOf(h *markdown.Heading) (headingShape, bool) {
	if len(h.Children) == 0 {
		return nil, false
	}
	switch first := h.Children[0].(type) {
	case *markdown.Text:
		return plainHeading{text: markdown.InlineText(h.Children)}, true
	case *markdown.LinkReference:
		return linkedHeading{label: first.Label, tail: markdown.InlineText(h.Children[1:])}, true
	default:
		return nil, false
	}
}

// parseReleaseHeading resolves a level-2 heading into a Release. Problems are
// recorded as fatal messages on rep and reported through the boolean.
func parseReleaseHeading(h *markdown.Heading, rep *Report) (Release, bool) {
	shape, ok := shapeOf(h)
	if !ok {
		rep.Fail(h, "heading must define a release version")
		return Release{}, false
	}

	switch s := shape.(type) {
	case plainHeading:
		m := plainHeadingPattern.FindStringSubmatch(strings.TrimSpace(s.text))
		if m == nil {
			rep.Fail(h, "heading must define a release version")
			return Release{}, false
		}
		return releaseFromParts(h, rep, m[1], m[2], m[3])

	case linkedHeading:
		if isUnreleasedLabel(s.label) {
			return Unreleased(), true
		}
		if strings.TrimSpace(s.tail) == "" {
			return releaseFromParts(h, rep, s.label, "", "")
		}
		m := linkedTailPattern.FindStringSubmatch(s.tail)
		if m == nil {
			rep.Fail(h, "release %s is missing a release date", s.label)
			return Release{}, false
		}
		return releaseFromParts(h, rep, s.label, m[1], m[2])
	}

	rep.Fail(h, "heading must define a release version")
	return Release{}, false
}

func releaseFromParts(h *markdown.Heading, rep *Report, version, date, suffix string) (Release, bool) {
	if isUnreleasedLabel(version) {
		if date != "" {
			rep.Fail(h, "unreleased section must not define a release date")
			return Release{}, false
		}
		return Unreleased(), true
	}

	v, err := semver.StrictNewVersion(version)
	if err != nil {
		rep.Fail(h, "invalid semantic version %q: %v", version, err)
		return Release{}, false
	}

	if date == "" {
		rep.Fail(h, "release %s is missing a release date", version)
		return Release{}, false
	}

	d, err := time.Parse(DateLayout, date)
	if err != nil {
		rep.Fail(h, "invalid release date %q for %s (expected: yyyy-MM-dd)", date, version)
		return Release{}, false
	}

	return Released(v, d, strings.TrimSpace(suffix)), true
}

func isUnreleasedLabel(s string) bool {
	return strings.EqualFold(s, unreleasedLabel)
}
