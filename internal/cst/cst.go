// Package cst adapts the third-party C concrete-syntax tree into the small
// node abstraction the rest of this module depends on: a kind, a text span,
// an ordered child list, and a start point. Nothing upstream of this package
// imports go-tree-sitter directly.
package cst

import (
	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/c"
)

// Node is the CST adapter contract consumed by TypeParser and DataParser.
type Node interface {
	Kind() string
	Text() string
	Children() []Node
	// Child returns the named field child, or nil if absent or the node
	// kind doesn't expose that field.
	Child(field string) Node
	Start() (line, col int)
	End() (line, col int)
}

// Tree owns a parsed translation unit and its source bytes.
type Tree struct {
	tree   *sitter.Tree
	source []byte
}

// Parse runs the C grammar over source and returns the owning Tree.
func Parse(source []byte) (*Tree, error) {
	parser := sitter.NewParser()
	parser.SetLanguage(c.GetLanguage())

	tree := parser.Parse(nil, source)
	if tree == nil {
		return nil, errGrammar("tree-sitter returned a nil tree")
	}
	return &Tree{tree: tree, source: source}, nil
}

// Close releases the underlying tree-sitter tree.
func (t *Tree) Close() {
	if t.tree != nil {
		t.tree.Close()
	}
}

// Root returns the translation_unit node.
func (t *Tree) Root() Node {
	return &node{n: t.tree.RootNode(), src: t.source}
}

type errGrammar string

func (e errGrammar) Error() string { return "grammar error: " + string(e) }

// node wraps *sitter.Node to satisfy Node.
type node struct {
	n   *sitter.Node
	src []byte
}

func wrap(n *sitter.Node, src []byte) Node {
	if n == nil {
		return nil
	}
	return &node{n: n, src: src}
}

func (w *node) Kind() string { return w.n.Type() }

func (w *node) Text() string { return string(w.src[w.n.StartByte():w.n.EndByte()]) }

// Children returns every child, named and anonymous (braces, commas,
// operator tokens included) — handlers filter by Kind() the way the
// teacher's findChildByType/findChildrenByType do over *sitter.Node.
func (w *node) Children() []Node {
	count := int(w.n.ChildCount())
	out := make([]Node, 0, count)
	for i := 0; i < count; i++ {
		if child := w.n.Child(i); child != nil {
			out = append(out, wrap(child, w.src))
		}
	}
	return out
}

func (w *node) Child(field string) Node {
	return wrap(w.n.ChildByFieldName(field), w.src)
}

func (w *node) Start() (int, int) {
	p := w.n.StartPoint()
	return int(p.Row) + 1, int(p.Column)
}

func (w *node) End() (int, int) {
	p := w.n.EndPoint()
	return int(p.Row) + 1, int(p.Column)
}
