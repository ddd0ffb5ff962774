package dataparser

import (
	"strings"

	"github.com/kon1790/cparser/internal/exprparser"
	"github.com/kon1790/cparser/internal/typesys"
)

// inferDynamicExtents implements §4.4 step 8: walk rec.ArraySize alongside
// raw in parallel, replacing each "dynamic" entry with the observed length.
func (c *ctx) inferDynamicExtents(rec *VariableRecord, raw RawValue) {
	cur := raw
	for i := range rec.ArraySize {
		if !rec.ArraySize[i].Dynamic {
			cur = descend(cur)
			continue
		}

		last := i == len(rec.ArraySize)-1
		switch {
		case last && !cur.IsList && cur.Scalar.Kind == exprparser.KindString:
			rec.ArraySize[i] = ConstExtent(len(decodeStringLiteral(cur.Scalar.Text)) + 1)
		case cur.IsList:
			rec.ArraySize[i] = ConstExtent(len(cur.Elements))
		default:
			rec.ArraySize[i] = ConstExtent(1)
		}
		cur = descend(cur)
	}
}

// descend follows a RawValue list to its first element, for walking
// dimensions in parallel with nested initializer lists.
func descend(raw RawValue) RawValue {
	if raw.IsList && len(raw.Elements) > 0 {
		return raw.Elements[0].Value
	}
	return RawValue{}
}

// decodeStringLiteral strips a string literal's quotes and resolves its C
// escape sequences, for the char[] dynamic-extent byte-length rule.
func decodeStringLiteral(lit string) []byte {
	s := strings.TrimSpace(lit)
	if len(s) >= 2 && strings.HasPrefix(s, `"`) && strings.HasSuffix(s, `"`) {
		s = s[1 : len(s)-1]
	}
	var out []byte
	for i := 0; i < len(s); i++ {
		if s[i] != '\\' || i+1 >= len(s) {
			out = append(out, s[i])
			continue
		}
		i++
		switch s[i] {
		case 'n':
			out = append(out, '\n')
		case 't':
			out = append(out, '\t')
		case 'r':
			out = append(out, '\r')
		case '0':
			out = append(out, 0)
		case '\\':
			out = append(out, '\\')
		case '"':
			out = append(out, '"')
		case '\'':
			out = append(out, '\'')
		default:
			out = append(out, s[i])
		}
	}
	return out
}

// shape implements §4.4 step 9: apply a ResolvedType to a RawValue to
// produce the final typed value tree.
func (c *ctx) shape(rt typesys.ResolvedType, raw RawValue) *ShapedValue {
	switch {
	case len(rt.ArraySize) > 0:
		// A char[] initialized from a string literal ("hi") never becomes an
		// initializer_list, so raw is still a bare scalar here: pass it
		// through rather than expanding into an array of nulls.
		if !raw.IsList {
			return &ShapedValue{Kind: ShapedScalar, Scalar: raw.Scalar}
		}
		return c.shapeArray(rt, raw)
	case rt.IsPointer:
		return &ShapedValue{Kind: ShapedScalar, Scalar: raw.Scalar}
	case rt.IsStruct:
		return c.shapeStruct(rt, raw, false)
	case rt.IsUnion:
		return c.shapeStruct(rt, raw, true)
	default:
		if raw.IsList {
			c.log.Warn("scalar type initialized with an aggregate initializer", "type", rt.BaseType, "location", "")
			return &ShapedValue{Kind: ShapedScalar, Scalar: exprparser.Expr("")}
		}
		return &ShapedValue{Kind: ShapedScalar, Scalar: raw.Scalar}
	}
}

func (c *ctx) shapeArray(rt typesys.ResolvedType, raw RawValue) *ShapedValue {
	d := rt.ArraySize[0]
	n := d.Value
	if !d.Const {
		n = len(raw.Elements)
	}
	elemType := rt
	elemType.ArraySize = rt.ArraySize[1:]

	out := &ShapedValue{Kind: ShapedArray, List: make([]*ShapedValue, n)}
	cursor := 0
	for _, elem := range raw.Elements {
		idx := cursor
		if elem.HasIndex {
			idx = elem.Index
		}
		if idx >= 0 && idx < n {
			out.List[idx] = c.shape(elemType, elem.Value)
		}
		cursor = idx + 1
	}
	return out
}

func (c *ctx) shapeStruct(rt typesys.ResolvedType, raw RawValue, isUnion bool) *ShapedValue {
	fields := rt.NestedFields
	if rt.Info != nil {
		fields = rt.Info.Fields
	}

	out := &ShapedValue{Kind: ShapedStruct, Fields: map[string]*ShapedValue{}}

	if !raw.IsList {
		c.log.Warn("struct/union initialized with a scalar initializer", "type", rt.BaseType)
		return out
	}

	if isUnion {
		selected := ""
		var value RawValue
		for _, elem := range raw.Elements {
			if elem.FieldName != "" {
				selected = elem.FieldName
				value = elem.Value
				break
			}
		}
		if selected == "" && len(fields) > 0 && len(raw.Elements) > 0 {
			selected = fields[0].Name
			value = raw.Elements[0].Value
		}
		if selected == "" {
			return out
		}
		f := findField(fields, selected)
		if f == nil {
			return out
		}
		out.Fields[selected] = c.shape(c.resolveFieldType(f), value)
		out.FieldOrder = []string{selected}
		return out
	}

	posCursor := 0
	seen := map[string]bool{}
	for _, elem := range raw.Elements {
		var f *typesys.FieldRecord
		if elem.FieldName != "" {
			f = findField(fields, elem.FieldName)
		} else {
			for posCursor < len(fields) {
				f = fields[posCursor]
				posCursor++
				break
			}
		}
		if f == nil || f.Name == "" {
			continue
		}
		out.Fields[f.Name] = c.shape(c.resolveFieldType(f), elem.Value)
		seen[f.Name] = true
	}
	for _, f := range fields {
		if seen[f.Name] {
			out.FieldOrder = append(out.FieldOrder, f.Name)
		}
	}
	return out
}

func findField(fields []*typesys.FieldRecord, name string) *typesys.FieldRecord {
	for _, f := range fields {
		if f.Name == name {
			return f
		}
	}
	return nil
}

// resolveFieldType builds the ResolvedType a composite field is shaped
// against, from its recorded pointer-star spelling, array dimensions, and
// bit-field width.
func (c *ctx) resolveFieldType(f *typesys.FieldRecord) typesys.ResolvedType {
	return c.tm.ResolveType(f.Type, strings.Count(f.PointerType, "*"), f.ArraySize, f.BitField)
}
