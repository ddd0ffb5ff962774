package typeparser

import (
	"github.com/kon1790/cparser/internal/cst"
	"github.com/kon1790/cparser/internal/exprparser"
)

// handleMacro implements §4.3's macro handler: a preproc_def is always
// object-like (the grammar routes function-like macros to a distinct
// preproc_function_def node, which this pass ignores — a macro with
// parameters isn't a constant and DataParser/ExpressionParser have no use
// for its body). The value is evaluated eagerly against the macro table
// accumulated so far, so later macros can reference earlier ones.
func (c *ctx) handleMacro(n cst.Node) {
	nameNode := n.Child("name")
	if nameNode == nil {
		nameNode = cst.FirstChildOfKind(n, "identifier")
	}
	if nameNode == nil {
		return
	}

	valueNode := n.Child("value")
	if valueNode == nil {
		// A value-less #define (e.g. an include guard) still marks the name
		// as defined, evaluating to itself so #ifdef-style consumers can
		// detect it without it resolving to a bogus number.
		c.tm.AddMacroDefinition(nameNode.Text(), exprparser.Expr(nameNode.Text()))
		return
	}

	result := exprparser.Evaluate(valueNode.Text(), c.tm.Symbols())
	c.tm.AddMacroDefinition(nameNode.Text(), result)
}
