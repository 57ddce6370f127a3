// Package markdown is the Markdown document service used by chlog.
//
// It parses a document with goldmark, splits it into its top-level nodes
// (headings, link reference definitions and opaque content blocks), and
// serializes the tree back to text. Content blocks are source slices and are
// never reformatted, so a document that is parsed and serialized without edits
// keeps its list style and indentation. Setext headings are written back in
// ATX form.
package markdown

import "strings"

// Position is the 1-based source line a node started on.
// Synthetic nodes created by edits have Line 0.
type Position struct {
	Line int
}

// Pos returns the node position.
func (p Position) Pos() Position { return p }

// Node is a top-level child of a Document.
type Node interface {
	Pos() Position
}

// Heading is a top-level ATX or setext heading.
type Heading struct {
	Position
	Depth    int
	Children []Inline
}

// Definition is a link reference definition such as "[1.0.0]: https://...".
type Definition struct {
	Position
	// Label is the text shown between the brackets.
	Label string
	// Identifier is the normalized lookup key of Label.
	Identifier string
	URL        string
	Title      string
}

// Block is any other top-level block, kept as its raw source lines.
type Block struct {
	Position
	Lines []string
}

// Text returns the block source.
func (b *Block) Text() string {
	return strings.Join(b.Lines, "\n")
}

// Inline is a piece of heading content.
type Inline interface {
	inline()
}

// Text is plain heading text.
type Text struct {
	Value string
}

// ReferenceType tells how a link reference was written.
type ReferenceType int

const (
	// ReferenceShortcut is "[label]".
	ReferenceShortcut ReferenceType = iota
	// ReferenceCollapsed is "[label][]".
	ReferenceCollapsed
	// ReferenceFull is "[label][identifier]".
	ReferenceFull
)

// LinkReference is a reference-style link whose label matched a definition.
type LinkReference struct {
	Label         string
	Identifier    string
	ReferenceType ReferenceType
}

// Raw is heading content of any other shape (emphasis, code, inline links).
type Raw struct {
	Source string
}

func (*Text) inline()          {}
func (*LinkReference) inline() {}
func (*Raw) inline()           {}

// NewLinkReference builds a shortcut reference with the given label that
// resolves through identifier.
func NewLinkReference(label, identifier string) *LinkReference {
	return &LinkReference{Label: label, Identifier: NormalizeIdentifier(identifier)}
}

// NewDefinition builds a definition node shown as label and keyed by identifier.
func NewDefinition(label, identifier, url string) *Definition {
	return &Definition{Label: label, Identifier: NormalizeIdentifier(identifier), URL: url}
}

// NormalizeIdentifier folds a reference label into its lookup key: lowercase
// with runs of whitespace collapsed.
func NormalizeIdentifier(label string) string {
	return strings.ToLower(strings.Join(strings.Fields(label), " "))
}
