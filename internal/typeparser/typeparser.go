package typeparser

import (
	"log/slog"

	"github.com/kon1790/cparser/internal/cst"
	"github.com/kon1790/cparser/internal/diag"
	"github.com/kon1790/cparser/internal/typesys"
)

// ctx carries the per-file state the type pass threads through every
// handler: the TypeManager being populated, the file name for locations,
// and a logger for non-fatal diagnostics.
type ctx struct {
	tm   *typesys.Manager
	file string
	log  *slog.Logger
}

func (c *ctx) loc(n cst.Node) diag.Location {
	line, col := n.Start()
	return diag.Location{File: c.file, Line: line, Col: col}
}

// Parse walks root (a translation_unit node) and populates tm with every
// TypeRecord and macro definition it finds at file scope, per §4.3's
// handler dispatch table.
func Parse(tm *typesys.Manager, root cst.Node, file string, logger *slog.Logger) {
	if logger == nil {
		logger = slog.Default()
	}
	c := &ctx{tm: tm, file: file, log: logger}
	c.walkTopLevel(root.Children())
}

// walkTopLevel dispatches over translation_unit's direct children,
// transparently flattening preproc_ifdef/preproc_if/preproc_else so both
// branches are considered. A macro defined in both branches takes the later
// value; a type defined in both keeps its first definition, because
// RegisterType ignores a redeclaration unless it completes a forward
// declaration.
func (c *ctx) walkTopLevel(nodes []cst.Node) {
	for _, n := range nodes {
		switch n.Kind() {
		case "type_definition":
			c.handleTypedef(n)
		case "declaration":
			c.handleTopLevelDeclaration(n)
		case "struct_specifier":
			c.registerStructOrUnion(n, typesys.KindStruct, "")
		case "union_specifier":
			c.registerStructOrUnion(n, typesys.KindUnion, "")
		case "enum_specifier":
			c.registerEnum(n, "")
		case "preproc_def":
			c.handleMacro(n)
		case "preproc_ifdef", "preproc_if", "preproc_else", "preproc_elif":
			c.walkTopLevel(n.Children())
		default:
			// Function declarations, plain variable declarations without a
			// composite specifier, comments, and punctuation: not this
			// pass's concern.
		}
	}
}

// handleTopLevelDeclaration looks for a struct/union/enum specifier used as
// the base type of a `declaration` node — this is how the grammar expresses
// both a bare forward/definition ("struct Foo { ... };") and a composite
// type used inline for a variable ("struct Foo { ... } v;"). Either way, the
// specifier is registered here; DataParser independently picks up any
// variable declarator on the same node.
func (c *ctx) handleTopLevelDeclaration(n cst.Node) {
	for _, child := range n.Children() {
		switch child.Kind() {
		case "struct_specifier":
			c.registerStructOrUnion(child, typesys.KindStruct, "")
		case "union_specifier":
			c.registerStructOrUnion(child, typesys.KindUnion, "")
		case "enum_specifier":
			c.registerEnum(child, "")
		}
	}
}
