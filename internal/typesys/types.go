// Package typesys is the TypeManager: the symbol table and type resolver
// for C's type algebra (§4.2). It is the sole authority on "does this type
// exist, and what is it?" across a two-tier (current-file, global) scope.
package typesys

import (
	"strconv"

	"github.com/kon1790/cparser/internal/diag"
)

// Kind tags what a TypeRecord describes.
type Kind string

const (
	KindStruct          Kind = "struct"
	KindUnion           Kind = "union"
	KindEnum            Kind = "enum"
	KindTypedef         Kind = "typedef"
	KindPointer         Kind = "pointer"
	KindBasic           Kind = "basic"
	KindFunctionPointer Kind = "function_pointer"
	KindUnknown         Kind = "unknown"
)

// Qualifiers are the cv-qualifiers plus storage class a declaration carries.
type Qualifiers struct {
	Const        bool   `json:"const,omitempty"`
	Volatile     bool   `json:"volatile,omitempty"`
	Restrict     bool   `json:"restrict,omitempty"`
	StorageClass string `json:"storage_class,omitempty"`
}

// ParamInfo is one parameter of a function-pointer typedef.
type ParamInfo struct {
	Type         string `json:"type"`
	PointerDepth int    `json:"pointer_depth"`
}

// FunctionInfo describes a function-pointer typedef's signature.
type FunctionInfo struct {
	ReturnType         string      `json:"return_type"`
	ReturnPointerDepth int         `json:"return_pointer_depth"`
	Parameters         []ParamInfo `json:"parameters"`
	Variadic           bool        `json:"variadic"`
}

// Dim is one array dimension: a resolved constant, a named non-constant
// extent ("var(NAME)"), or a dynamic ([]) extent, per §3's FieldRecord.
type Dim struct {
	Const   bool
	Value   int
	Var     string
	Dynamic bool
}

// ConstDim builds a resolved-integer dimension.
func ConstDim(v int) Dim { return Dim{Const: true, Value: v} }

// VarDim builds a non-constant named-extent dimension.
func VarDim(name string) Dim { return Dim{Var: name} }

// DynamicDim builds a `[]` dimension.
func DynamicDim() Dim { return Dim{Dynamic: true} }

// String renders the dimension the way it's serialized: an integer, or one
// of the two textual forms.
func (d Dim) String() string {
	switch {
	case d.Dynamic:
		return "dynamic"
	case !d.Const:
		return "var(" + d.Var + ")"
	default:
		return strconv.Itoa(d.Value)
	}
}

// FieldRecord is one member of a struct/union (§3).
type FieldRecord struct {
	Name         string         `json:"name"`
	Type         string         `json:"type"`
	OriginalType string         `json:"original_type"`
	ArraySize    []Dim          `json:"array_size,omitempty"`
	BitField     *int           `json:"bit_field,omitempty"`
	PointerType  string         `json:"pointer_type,omitempty"`
	NestedFields []*FieldRecord `json:"nested_fields,omitempty"`
	Qualifiers   Qualifiers     `json:"qualifiers,omitempty"`

	// Offset/size are filled in by the layout pass (typesys/layout.go) the
	// first time the enclosing composite's layout is computed; 0 until then.
	Offset int `json:"offset"`
	Size   int `json:"size"`
}

// EnumValue is one enumerator, preserving declaration order.
type EnumValue struct {
	Name  string `json:"name"`
	Value int64  `json:"value"`
	// Reduced is false when the enumerator's explicit initializer did not
	// reduce to a constant (§4.3: "stored as their string form but do not
	// advance the implicit counter").
	Reduced bool   `json:"-"`
	Raw     string `json:"-"`
}

// TypeRecord is the tagged description of one named type (§3).
type TypeRecord struct {
	Kind Kind   `json:"kind"`
	Name string `json:"name"`

	Fields []*FieldRecord `json:"fields,omitempty"`
	Values []EnumValue    `json:"values,omitempty"`

	BaseType string `json:"base_type,omitempty"`
	RealType Kind   `json:"real_type,omitempty"`

	Qualifiers   Qualifiers    `json:"qualifiers,omitempty"`
	FunctionInfo *FunctionInfo `json:"function_info,omitempty"`

	Size      int `json:"size"`
	Alignment int `json:"alignment"`

	Location diag.Location `json:"location"`

	Attributes map[string]string `json:"attributes,omitempty"`

	// Incomplete marks a struct/union forward declaration never completed
	// in this translation unit.
	Incomplete bool `json:"-"`
}

// ValuesMap returns the enum's name->value mapping (the spec's "ordered
// mapping" collapses to a plain map at the JSON boundary; EnumValue
// preserves order for anything that needs it upstream of serialization).
func (t *TypeRecord) ValuesMap() map[string]int64 {
	if t.Kind != KindEnum {
		return nil
	}
	out := make(map[string]int64, len(t.Values))
	for _, v := range t.Values {
		out[v.Name] = v.Value
	}
	return out
}
