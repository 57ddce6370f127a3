package markdown

import (
	"strings"
)

// Serialize renders doc back to Markdown.
//
// Top-level nodes are separated by one blank line, except adjacent
// definitions which are written on consecutive lines. Blocks are emitted
// verbatim. The result ends with a single newline unless doc is empty.
func Serialize(doc *Document) string {
	var b strings.Builder
	var prev Node
	for _, n := range doc.Children {
		if prev != nil {
			if IsDefinition(prev) && IsDefinition(n) {
				b.WriteString("\n")
			} else {
				b.WriteString("\n\n")
			}
		}
		b.WriteString(renderNode(n))
		prev = n
	}
	if b.Len() > 0 {
		b.WriteString("\n")
	}
	return b.String()
}

func renderNode(n Node) string {
	switch n := n.(type) {
	case *Heading:
		marker := strings.Repeat("#", n.Depth)
		if content := InlineText(n.Children); content != "" {
			return marker + " " + content
		}
		return marker
	case *Definition:
		return renderDefinition(n)
	case *Block:
		return n.Text()
	default:
		return ""
	}
}

func renderDefinition(d *Definition) string {
	var b strings.Builder
	b.WriteString("[")
	b.WriteString(d.Label)
	b.WriteString("]: ")
	if d.URL == "" || strings.ContainsAny(d.URL, " \t") {
		b.WriteString("<" + d.URL + ">")
	} else {
		b.WriteString(d.URL)
	}
	if d.Title != "" {
		b.WriteString(` "`)
		b.WriteString(strings.ReplaceAll(d.Title, `"`, `\"`))
		b.WriteString(`"`)
	}
	return b.String()
}

// InlineText renders heading inlines as Markdown source.
func InlineText(inlines []Inline) string {
	var b strings.Builder
	for _, in := range inlines {
		switch in := in.(type) {
		case *Text:
			b.WriteString(in.Value)
		case *Raw:
			b.WriteString(in.Source)
		case *LinkReference:
			b.WriteString("[" + in.Label + "]")
			switch in.ReferenceType {
			case ReferenceCollapsed:
				b.WriteString("[]")
			case ReferenceFull:
				b.WriteString("[" + in.Identifier + "]")
			}
		}
	}
	return b.String()
}
