package changelog

import (
	"github.com/ariel-frischer/chlog/internal/markdown"
)

// Preprocess links the release sections of doc in a single pass over its
// top-level children and validates their order.
//
// Every level-2 heading is parsed into a ReleaseHeading; the Boundary of each
// record points at the next level-2 heading or at the first link definition,
// whichever comes first. Structural problems are recorded on rep; callers
// must check rep.Err() before using the result.
func Preprocess(doc *markdown.Document, rep *Report) []ReleaseHeading {
	var (
		releases      []ReleaseHeading
		open          = -1 // record whose Boundary is not known yet
		inDefinitions bool
	)

	for i, n := range doc.Children {
		switch n := n.(type) {
		case *markdown.Heading:
			if n.Depth != 2 {
				continue
			}
			if inDefinitions {
				rep.Fail(n, "link definitions must be located at the end of the document")
			}
			if open >= 0 {
				releases[open].Boundary = i
				open = -1
			}

			release, ok := parseReleaseHeading(n, rep)
			if !ok {
				continue
			}
			releases = append(releases, ReleaseHeading{
				Heading:  n,
				Index:    i,
				Release:  release,
				Boundary: -1,
			})
			open = len(releases) - 1

		case *markdown.Definition:
			if open >= 0 {
				releases[open].Boundary = i
				open = -1
			}
			inDefinitions = true
		}
	}

	validateOrder(releases, rep)
	return releases
}

// validateOrder checks that Unreleased is unique and first, and that the
// released versions are strictly descending. Dates are not compared.
func validateOrder(releases []ReleaseHeading, rep *Report) {
	var prev *ReleaseHeading
	for i := range releases {
		r := &releases[i]
		if r.Release.IsUnreleased() {
			if i != 0 {
				rep.Fail(r.Heading, "Unreleased must be unique and first")
			}
			continue
		}
		if prev != nil && !r.Release.Version.LessThan(prev.Release.Version) {
			rep.Fail(r.Heading, "Release sections must be in descending order (%s follows %s)",
				r.Release.Label(), prev.Release.Label())
		}
		prev = r
	}
}

// relink recomputes Index and Boundary of every record after the document
// children were edited.
func relink(doc *markdown.Document, releases []ReleaseHeading) {
	for i := range releases {
		releases[i].Index = doc.IndexOf(releases[i].Heading)
	}

	firstDefinition := -1
	for i, n := range doc.Children {
		if markdown.IsDefinition(n) {
			firstDefinition = i
			break
		}
	}

	for i := range releases {
		switch {
		case i+1 < len(releases):
			releases[i].Boundary = releases[i+1].Index
		case firstDefinition > releases[i].Index:
			releases[i].Boundary = firstDefinition
		default:
			releases[i].Boundary = -1
		}
	}
}

// shiftIndices moves every Index and Boundary at or after from by delta.
func shiftIndices(releases []ReleaseHeading, from, delta int) {
	for i := range releases {
		if releases[i].Index >= from {
			releases[i].Index += delta
		}
		if releases[i].Boundary >= from {
			releases[i].Boundary += delta
		}
	}
}
