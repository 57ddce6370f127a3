package changelog

import (
	"fmt"
	"io"
	"strings"

	"github.com/ariel-frischer/chlog/internal/markdown"
	"github.com/fatih/color"
)

// CategoryStyle defines the color and icon for a changelog category.
type CategoryStyle struct {
	Color *color.Color
	Icon  string
}

// categoryStyles maps Keep a Changelog category names to their terminal styling.
var categoryStyles = map[string]CategoryStyle{
	"added":      {Color: color.New(color.FgGreen), Icon: "✓"},
	"changed":    {Color: color.New(color.FgBlue), Icon: "~"},
	"deprecated": {Color: color.New(color.FgRed), Icon: "⚠"},
	"removed":    {Color: color.New(color.FgRed), Icon: "✗"},
	"fixed":      {Color: color.New(color.FgYellow), Icon: "⚡"},
	"security":   {Color: color.New(color.FgMagenta), Icon: "🔒"},
}

// FormatOptions controls the terminal output formatting.
type FormatOptions struct {
	Plain     bool   // Write the raw Markdown notes only
	TagPrefix string // Prefix of the tag shown in the release header
}

// FormatRelease writes an extracted release to w. Plain output is exactly the
// serialized notes; otherwise a bold release header is added and category
// subheadings are colored.
func FormatRelease(ext *Extraction, w io.Writer, opts FormatOptions) error {
	if opts.Plain {
		_, err := io.WriteString(w, markdown.Serialize(ext.Notes))
		return err
	}

	if err := writeReleaseHeader(ext.Release, opts.TagPrefix, w); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	if ext.Notes.Len() == 0 {
		_, err := fmt.Fprintln(w, "\n  (no release notes)")
		return err
	}

	for _, n := range ext.Notes.Children {
		if err := writeNode(n, w); err != nil {
			return err
		}
	}
	return nil
}

// writeReleaseHeader writes the release header line, naming a release by its
// tag.
func writeReleaseHeader(r Release, tagPrefix string, w io.Writer) error {
	header := "Unreleased"
	if !r.IsUnreleased() {
		header = fmt.Sprintf("%s (%s)", r.Tag(tagPrefix), r.DateString())
		if r.Suffix != "" {
			header += " " + r.Suffix
		}
	}

	bold := color.New(color.Bold).SprintFunc()
	_, err := fmt.Fprintf(w, "## %s\n", bold(header))
	return err
}

func writeNode(n markdown.Node, w io.Writer) error {
	if h, ok := n.(*markdown.Heading); ok {
		category := strings.ToLower(strings.TrimSpace(markdown.InlineText(h.Children)))
		if style, known := categoryStyles[category]; known {
			colored := style.Color.SprintFunc()
			_, err := fmt.Fprintf(w, "\n%s %s\n", colored(style.Icon), colored(capitalizeFirst(category)))
			return err
		}
	}

	text := markdown.Serialize(&markdown.Document{Children: []markdown.Node{n}})
	_, err := fmt.Fprintf(w, "\n%s", text)
	return err
}

// capitalizeFirst capitalizes the first letter of a string.
func capitalizeFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
