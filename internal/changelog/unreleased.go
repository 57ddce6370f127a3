package changelog

import (
	"errors"

	"github.com/ariel-frischer/chlog/internal/markdown"
)

// ErrNoUnreleased is returned by bump when the changelog does not start with
// an Unreleased section.
var ErrNoUnreleased = errors.New("changelog has no Unreleased section as its first release section")

// RequireUnreleased fails unless the first release section is Unreleased.
func RequireUnreleased(releases []ReleaseHeading) error {
	if len(releases) == 0 || !releases[0].Release.IsUnreleased() {
		return ErrNoUnreleased
	}
	return nil
}

// EnsureUnreleased inserts an empty Unreleased heading when none leads the
// document. It goes before the first release heading, or before the trailing
// link definitions (or at the end) when there is none. The returned slice
// starts with the Unreleased record.
func EnsureUnreleased(doc *markdown.Document, releases []ReleaseHeading) []ReleaseHeading {
	if RequireUnreleased(releases) == nil {
		return releases
	}

	at := doc.Len()
	if len(releases) > 0 {
		at = releases[0].Index
	} else {
		for i, n := range doc.Children {
			if markdown.IsDefinition(n) {
				at = i
				break
			}
		}
	}

	heading := &markdown.Heading{Depth: 2, Children: releaseInlines(Unreleased(), "")}
	doc.Insert(at, heading)
	shiftIndices(releases, at, 1)

	boundary := -1
	if at+1 < doc.Len() {
		boundary = at + 1
	}

	return append([]ReleaseHeading{{
		Heading:  heading,
		Index:    at,
		Release:  Unreleased(),
		Boundary: boundary,
	}}, releases...)
}
