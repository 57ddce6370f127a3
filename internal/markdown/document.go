package markdown

import "slices"

// Document is the root of a parsed Markdown file. Its children are stored in
// an indexable slice so callers can refer to nodes by position.
type Document struct {
	Children []Node
}

// Len returns the number of top-level children.
func (d *Document) Len() int {
	return len(d.Children)
}

// At returns the child at index i.
func (d *Document) At(i int) Node {
	return d.Children[i]
}

// IndexOf returns the index of n among the children, or -1.
func (d *Document) IndexOf(n Node) int {
	for i, c := range d.Children {
		if c == n {
			return i
		}
	}
	return -1
}

// Insert places nodes before index i. An index equal to Len appends.
func (d *Document) Insert(i int, nodes ...Node) {
	d.Children = slices.Insert(d.Children, i, nodes...)
}

// Append adds nodes at the end of the document.
func (d *Document) Append(nodes ...Node) {
	d.Children = append(d.Children, nodes...)
}

// RemoveFunc deletes every child for which fn returns true and reports how
// many were removed.
func (d *Document) RemoveFunc(fn func(Node) bool) int {
	before := len(d.Children)
	d.Children = slices.DeleteFunc(d.Children, fn)
	return before - len(d.Children)
}

// Slice returns a new root holding the children in [from, to). The nodes are
// shared with d.
func (d *Document) Slice(from, to int) *Document {
	children := make([]Node, to-from)
	copy(children, d.Children[from:to])
	return &Document{Children: children}
}

// IsDefinition reports whether n is a link reference definition.
func IsDefinition(n Node) bool {
	_, ok := n.(*Definition)
	return ok
}
