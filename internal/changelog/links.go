package changelog

import (
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"github.com/ariel-frischer/chlog/internal/markdown"
)

// ErrUnreleasedBase is returned when a compare link would start from the
// Unreleased section, which has no tag.
var ErrUnreleasedBase = errors.New("cannot compare against the Unreleased section")

// LinkGenerator turns a release, and optionally the release before it, into
// the URL of its link definition.
type LinkGenerator interface {
	Link(release Release, previous *Release, tagPrefix string) (string, error)
}

// GitHubLinks generates GitHub release and compare URLs.
type GitHubLinks struct {
	Owner string
	Repo  string
}

var githubRepoPattern = regexp.MustCompile(`^(?:(?:https?://|git@)github\.com[/:])?([A-Za-z0-9_.-]+)/([A-Za-z0-9_.-]+?)(?:\.git)?/?$`)

// ParseGitHubRepo accepts "owner/repo" or a github.com repository URL.
func ParseGitHubRepo(s string) (GitHubLinks, error) {
	m := githubRepoPattern.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return GitHubLinks{}, fmt.Errorf("invalid GitHub repository %q (expected: owner/repo)", s)
	}
	return GitHubLinks{Owner: m[1], Repo: m[2]}, nil
}

// String returns "owner/repo".
func (g GitHubLinks) String() string {
	return g.Owner + "/" + g.Repo
}

func (g GitHubLinks) repoURL() string {
	return "https://github.com/" + g.Owner + "/" + g.Repo
}

// Link returns the releases/tag URL when previous is nil and the compare URL
// from previous to release otherwise.
func (g GitHubLinks) Link(release Release, previous *Release, tagPrefix string) (string, error) {
	if previous == nil {
		if release.IsUnreleased() {
			return g.repoURL() + "/tree/HEAD", nil
		}
		return fmt.Sprintf("%s/releases/tag/%s", g.repoURL(), release.Tag(tagPrefix)), nil
	}
	if previous.IsUnreleased() {
		return "", ErrUnreleasedBase
	}
	return fmt.Sprintf("%s/compare/%s...%s", g.repoURL(), previous.Tag(tagPrefix), release.Tag(tagPrefix)), nil
}

// RegenerateLinks rebuilds the link definitions of doc from releases.
//
// Every existing definition is removed, every release heading is rewritten
// to its canonical "[version] - date suffix" form, and one definition per
// released version is appended in document order. The most recent release
// links to its tag. Every older release links to the comparison with the
// release below it, except the oldest, which has nothing to compare against
// and links to its tag. Unreleased gets no definition.
func RegenerateLinks(doc *markdown.Document, releases []ReleaseHeading, tagPrefix string, links LinkGenerator) error {
	removed := doc.RemoveFunc(markdown.IsDefinition)

	var definitions []markdown.Node
	latestLinked := false
	for i := range releases {
		r := &releases[i]
		r.Heading.Children = releaseInlines(r.Release, tagPrefix)
		if r.Release.IsUnreleased() {
			continue
		}

		var previous *Release
		if latestLinked && i+1 < len(releases) {
			previous = &releases[i+1].Release
		}
		latestLinked = true

		url, err := links.Link(r.Release, previous, tagPrefix)
		if err != nil {
			return fmt.Errorf("generating link for %s: %w", r.Release.Label(), err)
		}
		definitions = append(definitions, markdown.NewDefinition(r.Release.Label(), r.Release.Tag(tagPrefix), url))
	}

	doc.Append(definitions...)
	relink(doc, releases)

	slog.Debug("regenerated link definitions",
		slog.Int(logKeyRemoved, removed),
		slog.Int(logKeyDefinitions, len(definitions)))
	return nil
}

// releaseInlines renders the canonical heading content of r.
func releaseInlines(r Release, tagPrefix string) []markdown.Inline {
	if r.IsUnreleased() {
		return []markdown.Inline{markdown.NewLinkReference(unreleasedLabel, unreleasedLabel)}
	}

	tail := " - " + r.DateString()
	if r.Suffix != "" {
		tail += " " + r.Suffix
	}
	return []markdown.Inline{
		markdown.NewLinkReference(r.Label(), r.Tag(tagPrefix)),
		&markdown.Text{Value: tail},
	}
}
