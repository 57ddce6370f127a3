package markdown

import (
	"bytes"
	"errors"
	"slices"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/yuin/goldmark"
	gmast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

// ErrInvalidEncoding is returned by Parse for input that is not UTF-8.
var ErrInvalidEncoding = errors.New("markdown source is not valid UTF-8")

// Parse splits src into top-level nodes.
//
// goldmark parses the whole document. Its top-level headings become Heading
// nodes and the link reference definitions it lifts out of top-level
// paragraphs become Definition nodes. Every other top-level block (lists,
// block quotes, code, HTML, paragraphs) is kept as a verbatim Block, so
// anything nested inside a container never surfaces as a top-level node.
func Parse(src []byte) (*Document, error) {
	if !utf8.Valid(src) {
		return nil, ErrInvalidEncoding
	}
	src = bytes.ReplaceAll(src, []byte("\r\n"), []byte("\n"))

	t := &blockTracker{opened: make(map[gmast.Node]int)}
	md := goldmark.New(goldmark.WithParser(t.newParser()))
	root := md.Parser().Parse(text.NewReader(src))

	b := newBuilder(src)
	for c := root.FirstChild(); c != nil; c = c.NextSibling() {
		b.addBlock(c, t)
	}
	for _, run := range t.runs {
		b.addDefinitions(run)
	}

	return &Document{Children: b.nodes()}, nil
}

// blockTracker records where goldmark opened each top-level block and which
// definitions it lifted out of each top-level paragraph. goldmark keeps
// neither in its AST.
type blockTracker struct {
	opened map[gmast.Node]int
	runs   []definitionRun
}

// definitionRun is the leading run of definitions of one paragraph together
// with the source lines they occupied.
type definitionRun struct {
	lines []text.Segment
	refs  []parser.Reference
}

func (t *blockTracker) newParser() parser.Parser {
	defaults := parser.DefaultBlockParsers()
	blocks := make([]util.PrioritizedValue, 0, len(defaults))
	for _, v := range defaults {
		tracked := &trackedBlockParser{BlockParser: v.Value.(parser.BlockParser), tracker: t}
		blocks = append(blocks, util.Prioritized(tracked, v.Priority))
	}

	return parser.NewParser(
		parser.WithBlockParsers(blocks...),
		parser.WithInlineParsers(parser.DefaultInlineParsers()...),
		parser.WithParagraphTransformers(util.Prioritized(&definitionTransformer{tracker: t}, 100)),
	)
}

// trackedBlockParser notes the source offset of every block opened directly
// under the document.
type trackedBlockParser struct {
	parser.BlockParser
	tracker *blockTracker
}

func (p *trackedBlockParser) Open(parent gmast.Node, reader text.Reader, pc parser.Context) (gmast.Node, parser.State) {
	_, pos := reader.Position()
	node, state := p.BlockParser.Open(parent, reader, pc)
	if node != nil && parent.Kind() == gmast.KindDocument {
		p.tracker.opened[node] = pos.Start
	}
	return node, state
}

// definitionTransformer runs goldmark's link reference extraction and keeps
// the definitions it removes from top-level paragraphs.
type definitionTransformer struct {
	tracker *blockTracker
}

func (d *definitionTransformer) Transform(node *gmast.Paragraph, reader text.Reader, pc parser.Context) {
	if node.Parent() == nil || node.Parent().Kind() != gmast.KindDocument {
		parser.LinkReferenceParagraphTransformer.Transform(node, reader, pc)
		return
	}

	original := slices.Clone(node.Lines().Sliced(0, node.Lines().Len()))
	rec := &referenceRecorder{Context: pc}
	parser.LinkReferenceParagraphTransformer.Transform(node, reader, rec)
	if len(rec.refs) == 0 {
		return
	}

	remaining := 0
	if node.Parent() != nil {
		remaining = node.Lines().Len()
	}
	d.tracker.runs = append(d.tracker.runs, definitionRun{
		lines: original[:len(original)-remaining],
		refs:  rec.refs,
	})
}

// referenceRecorder sees every definition goldmark parses, duplicates
// included.
type referenceRecorder struct {
	parser.Context
	refs []parser.Reference
}

func (r *referenceRecorder) AddReference(ref parser.Reference) {
	r.refs = append(r.refs, ref)
	r.Context.AddReference(ref)
}

// entry is a top-level node anchored at its 0-based start line.
type entry struct {
	line int
	node Node
}

type builder struct {
	src        []byte
	lines      []string
	lineStarts []int
	entries    []entry
}

func newBuilder(src []byte) *builder {
	starts := []int{0}
	for i, c := range src {
		if c == '\n' && i+1 < len(src) {
			starts = append(starts, i+1)
		}
	}
	return &builder{src: src, lines: splitLines(string(src)), lineStarts: starts}
}

func splitLines(src string) []string {
	src = strings.TrimSuffix(src, "\n")
	if src == "" {
		return nil
	}
	return strings.Split(src, "\n")
}

// lineOf returns the 0-based line holding byte offset off.
func (b *builder) lineOf(off int) int {
	return sort.Search(len(b.lineStarts), func(i int) bool { return b.lineStarts[i] > off }) - 1
}

func (b *builder) addBlock(n gmast.Node, t *blockTracker) {
	// A paragraph made only of definitions leaves an empty text block.
	if n.Kind() == gmast.KindTextBlock && n.Lines().Len() == 0 {
		return
	}

	start, ok := b.startOf(n, t)
	if !ok {
		return
	}

	h, ok := n.(*gmast.Heading)
	if !ok {
		b.entries = append(b.entries, entry{line: start, node: &Block{Position: Position{Line: start + 1}}})
		return
	}
	b.entries = append(b.entries, entry{line: start, node: &Heading{
		Position: Position{Line: start + 1},
		Depth:    h.Level,
		Children: headingInlines(h, b.headingContent(h)),
	}})
}

// startOf finds the first source line of a top-level block. Paragraphs and
// headings start at their first content line, since goldmark may have lifted
// definitions off the front of a paragraph or turned it into a setext
// heading.
func (b *builder) startOf(n gmast.Node, t *blockTracker) (int, bool) {
	switch n.Kind() {
	case gmast.KindParagraph, gmast.KindHeading:
		if n.Lines().Len() > 0 {
			return b.lineOf(n.Lines().At(0).Start), true
		}
	}
	if off, ok := t.opened[n]; ok {
		return b.lineOf(off), true
	}
	if n.Lines().Len() > 0 {
		return b.lineOf(n.Lines().At(0).Start), true
	}
	return 0, false
}

// headingContent returns the heading text without markers. Setext headings
// spanning several lines are joined with a space.
func (b *builder) headingContent(h *gmast.Heading) string {
	lines := h.Lines()
	parts := make([]string, 0, lines.Len())
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		parts = append(parts, strings.TrimSpace(string(seg.Value(b.src))))
	}
	return strings.Join(parts, " ")
}

// addDefinitions places each definition of run on the line its label starts.
func (b *builder) addDefinitions(run definitionRun) {
	if len(run.lines) == 0 {
		return
	}
	cursor := 0
	for _, ref := range run.refs {
		at := b.labelLine(run.lines, cursor, string(ref.Label()))
		line := b.lineOf(run.lines[at].Start)
		label := string(ref.Label())
		b.entries = append(b.entries, entry{line: line, node: &Definition{
			Position:   Position{Line: line + 1},
			Label:      label,
			Identifier: NormalizeIdentifier(label),
			URL:        string(ref.Destination()),
			Title:      string(ref.Title()),
		}})
		cursor = min(at+1, len(run.lines)-1)
	}
}

// labelLine returns the index of the first line at or after cursor that opens
// a definition of label.
func (b *builder) labelLine(lines []text.Segment, cursor int, label string) int {
	prefix := "["
	if first, _, multiline := strings.Cut(label, "\n"); multiline {
		prefix += first
	} else {
		prefix += label + "]"
	}
	for i := cursor; i < len(lines); i++ {
		if strings.HasPrefix(strings.TrimLeft(string(lines[i].Value(b.src)), " "), prefix) {
			return i
		}
	}
	return cursor
}

// nodes orders the entries by source line and fills every Block with the
// source lines up to the next entry, trailing blank lines dropped.
func (b *builder) nodes() []Node {
	sort.SliceStable(b.entries, func(i, j int) bool { return b.entries[i].line < b.entries[j].line })

	nodes := make([]Node, 0, len(b.entries))
	for i, e := range b.entries {
		block, ok := e.node.(*Block)
		if !ok {
			nodes = append(nodes, e.node)
			continue
		}

		end := len(b.lines)
		if i+1 < len(b.entries) {
			end = b.entries[i+1].line
		}
		block.Lines = trimTrailingBlank(b.lines[min(e.line, end):end])
		if len(block.Lines) > 0 {
			nodes = append(nodes, block)
		}
	}
	return nodes
}

func trimTrailingBlank(lines []string) []string {
	for len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "" {
		lines = lines[:len(lines)-1]
	}
	return slices.Clone(lines)
}

// headingInlines classifies heading content by the first inline goldmark
// produced for it: plain text, a resolved reference link, or anything else.
func headingInlines(h *gmast.Heading, content string) []Inline {
	if content == "" {
		return nil
	}

	switch h.FirstChild().(type) {
	case *gmast.Text:
		return []Inline{&Text{Value: content}}
	case *gmast.Link:
		if ref, rest, ok := splitReference(content); ok {
			inlines := []Inline{ref}
			if rest != "" {
				inlines = append(inlines, &Text{Value: rest})
			}
			return inlines
		}
	}

	return []Inline{&Raw{Source: content}}
}

// splitReference cuts a leading reference link off content. Inline links
// ("[label](url)") are rejected.
func splitReference(content string) (*LinkReference, string, bool) {
	end := closingBracket(content, 0)
	if end < 0 {
		return nil, "", false
	}
	label := content[1:end]
	rest := content[end+1:]

	if strings.HasPrefix(rest, "(") {
		return nil, "", false
	}

	ref := &LinkReference{Label: label, Identifier: NormalizeIdentifier(label)}
	if strings.HasPrefix(rest, "[") {
		idEnd := closingBracket(rest, 0)
		if idEnd < 0 {
			return nil, "", false
		}
		if id := rest[1:idEnd]; id == "" {
			ref.ReferenceType = ReferenceCollapsed
		} else {
			ref.ReferenceType = ReferenceFull
			ref.Identifier = NormalizeIdentifier(id)
		}
		rest = rest[idEnd+1:]
	}

	return ref, rest, true
}

// closingBracket returns the index of the bracket closing s[open], honoring
// backslash escapes and nesting, or -1.
func closingBracket(s string, open int) int {
	if open >= len(s) || s[open] != '[' {
		return -1
	}
	depth := 0
	for i := open; i < len(s); i++ {
		switch s[i] {
		case '\\':
			i++
		case '[':
			depth++
		case ']':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}
