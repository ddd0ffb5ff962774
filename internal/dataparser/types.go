// Package dataparser walks file-scope variable declarations and produces a
// fully shaped, typed value tree from each initializer (§4.4-4.5). It runs
// after TypeParser has finished populating the TypeManager for the file.
package dataparser

import (
	"github.com/kon1790/cparser/internal/diag"
	"github.com/kon1790/cparser/internal/exprparser"
	"github.com/kon1790/cparser/internal/typesys"
)

// RawValue is the type-agnostic parse of an initializer (§3): a scalar, or
// an ordered list of elements, some of which may carry a designator.
type RawValue struct {
	IsList   bool
	Scalar   exprparser.Result
	Elements []RawElement
}

// RawElement is one entry of a RawValue list: a plain positional value, or
// one designated by field name (`.name = ...`) or index (`[n] = ...`).
type RawElement struct {
	FieldName string
	HasIndex  bool
	Index     int
	Value     RawValue
}

// ShapedKind tags what a ShapedValue holds after shaping.
type ShapedKind string

const (
	ShapedScalar ShapedKind = "scalar"
	ShapedArray  ShapedKind = "array"
	ShapedStruct ShapedKind = "struct"
)

// ShapedValue is the final typed value tree (§3): a ResolvedType applied to
// a RawValue.
type ShapedValue struct {
	Kind ShapedKind

	Scalar exprparser.Result

	List []*ShapedValue

	// FieldOrder preserves composite declaration order; Fields is keyed by
	// field name (or, for a union, the single selected variant).
	FieldOrder []string
	Fields     map[string]*ShapedValue
}

// VariableRecord is one file-scope declaration (§3).
type VariableRecord struct {
	Name         string `json:"name"`
	Type         string `json:"type"`
	IsConst      bool   `json:"is_const"`
	IsVolatile   bool   `json:"is_volatile"`
	IsRestrict   bool   `json:"is_restrict"`
	StorageClass string `json:"storage_class,omitempty"`

	IsPointer    bool       `json:"is_pointer"`
	PointerLevel int        `json:"pointer_level"`
	ArraySize    []Extent   `json:"array_size,omitempty"`
	InitialValue *string    `json:"initial_value"`
	ParsedValue  *ShapedValue `json:"parsed_value"`

	Location diag.Location       `json:"location"`
	TypeInfo typesys.ResolvedType `json:"typeinfo"`
}

// Extent is one array_size entry as emitted at the DataParser boundary:
// a resolved integer, a still-unresolved expression, or (only ever before
// dynamic-extent inference runs) the "dynamic" marker.
type Extent struct {
	Resolved bool
	Value    int
	Text     string
	Dynamic  bool
}

// ConstExtent builds a resolved-integer Extent.
func ConstExtent(v int) Extent { return Extent{Resolved: true, Value: v} }

// ExprExtent builds an unresolved-expression Extent.
func ExprExtent(text string) Extent { return Extent{Text: text} }

// DynamicExtent builds the "dynamic" placeholder Extent.
func DynamicExtent() Extent { return Extent{Dynamic: true} }
