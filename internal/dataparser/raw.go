package dataparser

import (
	"github.com/kon1790/cparser/internal/cst"
	"github.com/kon1790/cparser/internal/exprparser"
)

// parseRawValue implements §4.4 step 7: convert an initializer CST node into
// a RawValue, ignorant of the target type. A scalar reduces through
// ExpressionParser; an initializer_list becomes an ordered list of
// elements, each either a designated pair, a nested list, or a scalar.
// Commas, braces, and comments are discarded.
func (c *ctx) parseRawValue(n cst.Node) RawValue {
	if n.Kind() != "initializer_list" {
		return RawValue{Scalar: exprparser.Evaluate(n.Text(), c.tm.Symbols())}
	}

	rv := RawValue{IsList: true}
	for _, child := range n.Children() {
		switch child.Kind() {
		case "{", "}", ",":
			continue
		case "initializer_pair":
			rv.Elements = append(rv.Elements, c.parseDesignatedElement(child))
		default:
			rv.Elements = append(rv.Elements, RawElement{Value: c.parseRawValue(child)})
		}
	}
	return rv
}

// parseDesignatedElement reads one `.name = value` or `[n] = value` pair.
// Only the first designator of a chain is captured, matching the single-
// level `{ name: value }` / `{ index: value }` shape §4.4 specifies.
func (c *ctx) parseDesignatedElement(pair cst.Node) RawElement {
	var elem RawElement

	designator := pair.Child("designator")
	if designator == nil {
		for _, child := range pair.Children() {
			if k := child.Kind(); k == "field_designator" || k == "subscript_designator" {
				designator = child
				break
			}
		}
	}

	if designator != nil {
		switch designator.Kind() {
		case "field_designator":
			if id := cst.FirstChildOfKind(designator, "field_identifier"); id != nil {
				elem.FieldName = id.Text()
			} else {
				elem.FieldName = designator.Text()
			}
		case "subscript_designator":
			idxNode := designator.Child("index")
			if idxNode == nil && len(designator.Children()) > 0 {
				for _, child := range designator.Children() {
					if child.Kind() != "[" && child.Kind() != "]" {
						idxNode = child
					}
				}
			}
			if idxNode != nil {
				result := exprparser.Evaluate(idxNode.Text(), c.tm.Symbols())
				if result.Kind == exprparser.KindNumber && !result.IsFloat {
					elem.HasIndex = true
					elem.Index = int(result.Int)
				}
			}
		}
	}

	value := pair.Child("value")
	if value == nil {
		for _, child := range pair.Children() {
			if child.Kind() == "initializer_list" {
				value = child
			}
		}
		if value == nil {
			last := pair.Children()
			if len(last) > 0 {
				value = last[len(last)-1]
			}
		}
	}
	if value != nil {
		elem.Value = c.parseRawValue(value)
	}
	return elem
}
