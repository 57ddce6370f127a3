package markdown

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDocument_Edits(t *testing.T) {
	t.Parallel()

	a := &Block{Lines: []string{"a"}}
	b := &Block{Lines: []string{"b"}}
	def := NewDefinition("1.0.0", "v1.0.0", "https://example.com")
	doc := &Document{Children: []Node{a, def, b}}

	removed := doc.RemoveFunc(IsDefinition)
	assert.Equal(t, 1, removed)
	assert.Equal(t, []Node{a, b}, doc.Children)

	h := &Heading{Depth: 2}
	doc.Insert(1, h)
	assert.Equal(t, 1, doc.IndexOf(h))
	assert.Equal(t, 2, doc.IndexOf(b))
	assert.Equal(t, -1, doc.IndexOf(def))

	doc.Append(def)
	assert.Equal(t, 4, doc.Len())
	assert.Same(t, def, doc.At(3))
}

func TestDocument_SliceIsIndependent(t *testing.T) {
	t.Parallel()

	doc := &Document{Children: []Node{
		&Block{Lines: []string{"a"}},
		&Block{Lines: []string{"b"}},
		&Block{Lines: []string{"c"}},
	}}

	part := doc.Slice(1, 3)
	require.Equal(t, 2, part.Len())
	part.Insert(0, &Heading{Depth: 1})

	assert.Equal(t, 3, doc.Len())
	assert.Equal(t, "b\n\nc\n", Serialize(doc.Slice(1, 3)))
	assert.Equal(t, "", Serialize(doc.Slice(1, 1)))
}

func TestNormalizeIdentifier(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "v1.0.0", NormalizeIdentifier("V1.0.0"))
	assert.Equal(t, "keep a changelog", NormalizeIdentifier("  Keep   a\tChangelog "))
}
