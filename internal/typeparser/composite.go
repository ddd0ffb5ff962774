package typeparser

import (
	"github.com/kon1790/cparser/internal/cst"
	"github.com/kon1790/cparser/internal/exprparser"
	"github.com/kon1790/cparser/internal/typesys"
)

// registerStructOrUnion implements §4.3's struct/union handler: extract the
// tag (or synthesize an anonymous one), register a forward declaration when
// no field_declaration_list is present, otherwise parse each
// field_declaration in order and register the completed composite.
// forcedName overrides the tag when this specifier is the inline base type
// of a typedef with no tag of its own.
func (c *ctx) registerStructOrUnion(n cst.Node, kind typesys.Kind, forcedName string) *typesys.TypeRecord {
	name := c.tagName(n, kind, forcedName)
	body := n.Child("body")
	if body == nil {
		body = cst.FirstChildOfKind(n, "field_declaration_list")
	}

	rec := &typesys.TypeRecord{
		Kind:       kind,
		Name:       name,
		Location:   c.loc(n),
		Attributes: c.collectAttributes(n),
	}

	if body == nil {
		rec.Incomplete = true
		c.tm.RegisterType(rec)
		return rec
	}

	rec.Fields = c.parseFieldDeclarationList(body)
	c.tm.RegisterType(rec)
	return rec
}

func (c *ctx) tagName(n cst.Node, kind typesys.Kind, forcedName string) string {
	if nameNode := n.Child("name"); nameNode != nil {
		return nameNode.Text()
	}
	if forcedName != "" {
		return forcedName
	}
	tag := "struct"
	if kind == typesys.KindUnion {
		tag = "union"
	} else if kind == typesys.KindEnum {
		tag = "enum"
	}
	return anonName(tag, n)
}

// collectAttributes picks up GNU-style __attribute__((packed,
// aligned(N))) annotations (§3's `attributes` field).
func (c *ctx) collectAttributes(n cst.Node) map[string]string {
	attrs := map[string]string{}
	for _, attrNode := range cst.Collect(n, func(x cst.Node) bool { return x.Kind() == "attribute_specifier" || x.Kind() == "attribute_declaration" || x.Kind() == "gnu_attribute" }) {
		text := attrNode.Text()
		if containsWord(text, "packed") {
			attrs["packed"] = "true"
		}
		if n, ok := scanAlignedN(text); ok {
			attrs["aligned"] = n
		}
	}
	if len(attrs) == 0 {
		return nil
	}
	return attrs
}

func containsWord(haystack, word string) bool {
	for i := 0; i+len(word) <= len(haystack); i++ {
		if haystack[i:i+len(word)] == word {
			return true
		}
	}
	return false
}

func scanAlignedN(text string) (string, bool) {
	idx := indexOf(text, "aligned(")
	if idx < 0 {
		return "", false
	}
	start := idx + len("aligned(")
	end := start
	for end < len(text) && text[end] >= '0' && text[end] <= '9' {
		end++
	}
	if end == start {
		return "", false
	}
	return text[start:end], true
}

func indexOf(s, sub string) int {
	for i := 0; i+len(sub) <= len(s); i++ {
		if s[i:i+len(sub)] == sub {
			return i
		}
	}
	return -1
}

// registerEnum implements §4.3's enum handler: each enumerator either has an
// explicit reduced value, or implicitly equals previous+1 starting at 0;
// non-reducible explicit values are kept as text and do not advance the
// counter.
func (c *ctx) registerEnum(n cst.Node, forcedName string) *typesys.TypeRecord {
	name := c.tagName(n, typesys.KindEnum, forcedName)
	rec := &typesys.TypeRecord{
		Kind:       typesys.KindEnum,
		Name:       name,
		Location:   c.loc(n),
		Attributes: c.collectAttributes(n),
	}

	body := cst.FirstChildOfKind(n, "enumerator_list")
	if body == nil {
		rec.Incomplete = true
		c.tm.RegisterType(rec)
		return rec
	}

	enumTable := map[string]int64{}
	var next int64
	for _, enumerator := range cst.ChildrenOfKind(body, "enumerator") {
		enumName := ""
		if nameNode := enumerator.Child("name"); nameNode != nil {
			enumName = nameNode.Text()
		} else if id := cst.FirstChildOfKind(enumerator, "identifier"); id != nil {
			enumName = id.Text()
		}
		if enumName == "" {
			continue
		}

		valueNode := enumerator.Child("value")
		if valueNode == nil {
			rec.Values = append(rec.Values, typesys.EnumValue{Name: enumName, Value: next, Reduced: true})
			enumTable[enumName] = next
			next++
			continue
		}

		result := exprparser.Evaluate(valueNode.Text(), exprparser.MapSymbols{Enums: enumTable})
		if result.Kind == exprparser.KindNumber && !result.IsFloat {
			rec.Values = append(rec.Values, typesys.EnumValue{Name: enumName, Value: result.Int, Reduced: true})
			enumTable[enumName] = result.Int
			next = result.Int + 1
		} else {
			c.log.Warn("enumerator did not reduce to a constant integer", "name", enumName, "location", c.loc(enumerator).String())
			rec.Values = append(rec.Values, typesys.EnumValue{Name: enumName, Reduced: false, Raw: valueNode.Text()})
		}
	}

	c.tm.RegisterType(rec)
	return rec
}
