package analyzer

import (
	"github.com/kon1790/cparser/internal/dataparser"
	"github.com/kon1790/cparser/internal/typesys"
)

// TypesDocument is the "types" top-level key (§6).
type TypesDocument struct {
	Structs  []*typesys.TypeRecord `json:"structs"`
	Unions   []*typesys.TypeRecord `json:"unions"`
	Enums    []*typesys.TypeRecord `json:"enums"`
	Typedefs []*typesys.TypeRecord `json:"typedefs"`
}

// VariablesDocument is the "variables" top-level key (§6).
type VariablesDocument struct {
	Variables   []*dataparser.VariableRecord `json:"variables"`
	PointerVars []*dataparser.VariableRecord `json:"pointer_vars"`
	ArrayVars   []*dataparser.VariableRecord `json:"array_vars"`
	StructVars  []*dataparser.VariableRecord `json:"struct_vars"`
}

// Document is the full two-key output document §6 specifies.
type Document struct {
	Types     TypesDocument     `json:"types"`
	Variables VariablesDocument `json:"variables"`
}

// SimplifiedVariable is one entry of the simplified view §6 describes: just
// enough for a downstream generator that doesn't need provenance.
type SimplifiedVariable struct {
	Name        string               `json:"name"`
	Type        string               `json:"type"`
	ArraySize   []dataparser.Extent  `json:"array_size,omitempty"`
	ParsedValue *dataparser.ShapedValue `json:"parsed_value"`
}

// BuildDocument assembles the full document from one file's pipeline
// result; scope selects which tier of the TypeManager to export ("all",
// "global", "current").
func BuildDocument(res *Result, scope string) Document {
	types := res.Manager.ExportTypes(scope)
	return Document{
		Types: TypesDocument{
			Structs:  types[typesys.KindStruct],
			Unions:   types[typesys.KindUnion],
			Enums:    types[typesys.KindEnum],
			Typedefs: types[typesys.KindTypedef],
		},
		Variables: VariablesDocument{
			Variables:   res.Data.Plain,
			PointerVars: res.Data.Pointer,
			ArrayVars:   res.Data.Array,
			StructVars:  res.Data.Struct,
		},
	}
}

// BuildSimplified flattens every variable bucket into the simplified view,
// in plain/pointer/array/struct order.
func BuildSimplified(res *Result) []SimplifiedVariable {
	var out []SimplifiedVariable
	for _, bucket := range [][]*dataparser.VariableRecord{res.Data.Plain, res.Data.Pointer, res.Data.Array, res.Data.Struct} {
		for _, v := range bucket {
			out = append(out, SimplifiedVariable{
				Name:        v.Name,
				Type:        v.Type,
				ArraySize:   v.ArraySize,
				ParsedValue: v.ParsedValue,
			})
		}
	}
	return out
}
