package dataparser

import (
	"github.com/kon1790/cparser/internal/cst"
	"github.com/kon1790/cparser/internal/exprparser"
	"github.com/kon1790/cparser/internal/typesys"
)

// declaratorShape is what walking a declarator subtree yields before type
// resolution: the variable's name, its pointer depth, and its array
// dimensions in declaration order (outermost first).
type declaratorShape struct {
	name         string
	pointerLevel int
	arraySize    []Extent
}

// walkDeclarator implements §4.4 step 4: descend through nested
// pointer_declarator/array_declarator layers to the terminal identifier,
// reversing the accumulated dimensions to restore declaration order (the
// CST yields them innermost-first as it unwraps outward from the
// identifier).
func (c *ctx) walkDeclarator(d cst.Node) declaratorShape {
	var shape declaratorShape
	var dims []Extent

	cur := d
	for cur != nil {
		switch cur.Kind() {
		case "identifier", "field_identifier", "type_identifier":
			shape.name = cur.Text()
			cur = nil
		case "pointer_declarator":
			shape.pointerLevel++
			cur = innerDeclarator(cur)
		case "array_declarator":
			dims = append(dims, c.arrayExtent(cur))
			cur = innerDeclarator(cur)
		case "parenthesized_declarator":
			cur = innerDeclarator(cur)
		default:
			cur = innerDeclarator(cur)
		}
	}

	for i := len(dims) - 1; i >= 0; i-- {
		shape.arraySize = append(shape.arraySize, dims[i])
	}
	return shape
}

func innerDeclarator(n cst.Node) cst.Node {
	if inner := n.Child("declarator"); inner != nil {
		return inner
	}
	for _, child := range n.Children() {
		switch child.Kind() {
		case "identifier", "field_identifier", "type_identifier",
			"pointer_declarator", "array_declarator", "parenthesized_declarator":
			return child
		}
	}
	return nil
}

// arrayExtent extracts one array_declarator's bracketed subexpression: a
// numeric literal's value, a reducible constant expression's value, a
// non-reducible expression's text, or the "dynamic" marker for `[]`.
func (c *ctx) arrayExtent(n cst.Node) Extent {
	size := n.Child("size")
	if size == nil {
		return DynamicExtent()
	}
	result := exprparser.Evaluate(size.Text(), c.tm.Symbols())
	if result.Kind == exprparser.KindNumber && !result.IsFloat {
		return ConstExtent(int(result.Int))
	}
	return ExprExtent(size.Text())
}

// dimsToTypesys converts the DataParser's declaration-site Extents into the
// typesys.Dim values ResolveType expects, preserving resolved/unresolved/
// dynamic distinctions.
func dimsToTypesys(extents []Extent) []typesys.Dim {
	out := make([]typesys.Dim, 0, len(extents))
	for _, e := range extents {
		switch {
		case e.Dynamic:
			out = append(out, typesys.DynamicDim())
		case e.Resolved:
			out = append(out, typesys.ConstDim(e.Value))
		default:
			out = append(out, typesys.VarDim(e.Text))
		}
	}
	return out
}

// emitVariable completes steps 4-10 of §4.4 for one declarator sharing
// base/nested/quals with its siblings.
func (c *ctx) emitVariable(declNode, declarator, initNode cst.Node, base string, nested *typesys.TypeRecord, quals typesys.Qualifiers) {
	shape := c.walkDeclarator(declarator)
	if shape.name == "" {
		return
	}

	resolved := c.tm.ResolveType(base, shape.pointerLevel, dimsToTypesys(shape.arraySize), nil)

	rec := &VariableRecord{
		Name:         shape.name,
		Type:         base,
		IsConst:      quals.Const,
		IsVolatile:   quals.Volatile,
		IsRestrict:   quals.Restrict,
		StorageClass: quals.StorageClass,
		IsPointer:    shape.pointerLevel > 0,
		PointerLevel: shape.pointerLevel,
		ArraySize:    shape.arraySize,
		Location:     c.loc(declNode),
		TypeInfo:     resolved,
	}

	if initNode == nil {
		c.dm.add(rec)
		return
	}

	text := initNode.Text()
	rec.InitialValue = &text

	raw := c.parseRawValue(initNode)
	c.inferDynamicExtents(rec, raw)
	rec.TypeInfo = c.tm.ResolveType(base, shape.pointerLevel, dimsToTypesys(rec.ArraySize), nil)
	rec.ParsedValue = c.shape(rec.TypeInfo, raw)

	c.dm.add(rec)
}
