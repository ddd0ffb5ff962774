package typeparser

import (
	"strings"

	"github.com/kon1790/cparser/internal/cst"
	"github.com/kon1790/cparser/internal/exprparser"
	"github.com/kon1790/cparser/internal/typesys"
)

// parseFieldDeclarationList walks a field_declaration_list's
// field_declaration children in order, expanding each into one or more
// FieldRecords (a single field_declaration can introduce several
// comma-separated declarators sharing one base type).
func (c *ctx) parseFieldDeclarationList(list cst.Node) []*typesys.FieldRecord {
	var out []*typesys.FieldRecord
	for _, fd := range cst.ChildrenOfKind(list, "field_declaration") {
		out = append(out, c.parseFieldDeclaration(fd)...)
	}
	return out
}

// parseFieldDeclaration extracts the shared base type (registering any
// nested anonymous/named struct, union, or enum specifier first) and then
// walks every declarator child, per §4.3's field handler.
func (c *ctx) parseFieldDeclaration(fd cst.Node) []*typesys.FieldRecord {
	base, quals, nested := c.baseType(fd)

	var out []*typesys.FieldRecord
	for _, d := range fd.Children() {
		switch d.Kind() {
		case "field_identifier", "pointer_declarator", "array_declarator", "bitfield_clause":
			out = append(out, c.declaratorToField(d, base, quals, nested))
		}
	}

	// An anonymous nested composite with no declarator of its own
	// contributes its members directly to the enclosing type (C11 unnamed
	// struct/union members).
	if len(out) == 0 && nested != nil {
		out = append(out, &typesys.FieldRecord{
			Name:         "",
			Type:         base,
			OriginalType: base,
			NestedFields: nested.Fields,
			Qualifiers:   quals,
		})
	}
	return out
}

// baseType reads a field_declaration's type-side children: qualifiers
// (const/volatile/restrict), and the base type itself, which may be a
// primitive, a named type, or a nested struct/union/enum specifier
// (registered immediately so later fields referencing its tag resolve).
func (c *ctx) baseType(fd cst.Node) (string, typesys.Qualifiers, *typesys.TypeRecord) {
	var quals typesys.Qualifiers
	var base string
	var nested *typesys.TypeRecord

	for _, child := range fd.Children() {
		switch child.Kind() {
		case "type_qualifier":
			switch child.Text() {
			case "const":
				quals.Const = true
			case "volatile":
				quals.Volatile = true
			case "restrict":
				quals.Restrict = true
			}
		case "storage_class_specifier":
			quals.StorageClass = child.Text()
		case "struct_specifier":
			nested = c.registerStructOrUnion(child, typesys.KindStruct, "")
			base = nested.Name
		case "union_specifier":
			nested = c.registerStructOrUnion(child, typesys.KindUnion, "")
			base = nested.Name
		case "enum_specifier":
			nested = c.registerEnum(child, "")
			base = nested.Name
		case "primitive_type", "type_identifier", "sized_type_specifier":
			if base == "" {
				base = child.Text()
			} else {
				base = base + " " + child.Text()
			}
		}
	}
	if base == "" {
		base = "int"
	}
	return base, quals, nested
}

// declaratorToField unwraps one declarator (possibly nested pointer/array
// layers) into a single FieldRecord over the shared base type.
func (c *ctx) declaratorToField(d cst.Node, base string, quals typesys.Qualifiers, nested *typesys.TypeRecord) *typesys.FieldRecord {
	f := &typesys.FieldRecord{Type: base, OriginalType: base, Qualifiers: quals}
	if nested != nil {
		f.NestedFields = nested.Fields
	}
	c.unwrapDeclarator(d, f)
	if f.PointerType != "" {
		f.OriginalType = base + " " + f.PointerType
	}
	return f
}

// unwrapDeclarator recurses through pointer_declarator/array_declarator
// wrappers, accumulating pointer depth and array dimensions, down to the
// field_identifier (or bitfield_clause) that names the field.
func (c *ctx) unwrapDeclarator(d cst.Node, f *typesys.FieldRecord) {
	switch d.Kind() {
	case "field_identifier":
		f.Name = d.Text()
	case "pointer_declarator":
		f.PointerType += "*"
		if inner := innerDeclarator(d); inner != nil {
			c.unwrapDeclarator(inner, f)
		}
	case "array_declarator":
		f.ArraySize = append(f.ArraySize, c.arrayDim(d))
		if inner := innerDeclarator(d); inner != nil {
			c.unwrapDeclarator(inner, f)
		}
	case "bitfield_clause":
		c.fillBitfield(d, f)
	default:
		if inner := innerDeclarator(d); inner != nil {
			c.unwrapDeclarator(inner, f)
		}
	}
}

// innerDeclarator finds the wrapped sub-declarator inside a
// pointer_declarator/array_declarator, preferring the grammar's named
// "declarator" field and falling back to scanning children for the first
// one that is itself declarator-shaped.
func innerDeclarator(n cst.Node) cst.Node {
	if inner := n.Child("declarator"); inner != nil {
		return inner
	}
	for _, child := range n.Children() {
		switch child.Kind() {
		case "field_identifier", "pointer_declarator", "array_declarator", "bitfield_clause", "identifier":
			return child
		}
	}
	return nil
}

// arrayDim extracts one array_declarator's bracketed extent: a constant
// expression, a named (non-constant) extent, or empty for `[]`.
func (c *ctx) arrayDim(n cst.Node) typesys.Dim {
	size := n.Child("size")
	if size == nil {
		return typesys.DynamicDim()
	}
	result := exprparser.Evaluate(size.Text(), c.tm.Symbols())
	if result.Kind == exprparser.KindNumber && !result.IsFloat {
		return typesys.ConstDim(int(result.Int))
	}
	return typesys.VarDim(strings.TrimSpace(size.Text()))
}

// fillBitfield reads a bitfield_clause's name and width; an empty name is
// an anonymous padding field.
func (c *ctx) fillBitfield(n cst.Node, f *typesys.FieldRecord) {
	if nameNode := n.Child("declarator"); nameNode != nil {
		f.Name = nameNode.Text()
	} else if id := cst.FirstChildOfKind(n, "field_identifier"); id != nil {
		f.Name = id.Text()
	}

	widthNode := n.Child("size")
	if widthNode == nil {
		for _, child := range n.Children() {
			if child.Kind() == "number_literal" {
				widthNode = child
			}
		}
	}
	if widthNode == nil {
		return
	}
	result := exprparser.Evaluate(widthNode.Text(), exprparser.MapSymbols{})
	if result.Kind == exprparser.KindNumber && !result.IsFloat {
		width := int(result.Int)
		f.BitField = &width
	}
}
