package typesys

import "encoding/json"

// MarshalJSON renders a Dim as the spec requires: a resolved integer, or one
// of the two textual forms ("var(NAME)", "dynamic").
func (d Dim) MarshalJSON() ([]byte, error) {
	if d.Dynamic || !d.Const {
		return json.Marshal(d.String())
	}
	return json.Marshal(d.Value)
}

// typeRecordJSON mirrors TypeRecord but replaces the ordered Values slice
// with the plain name->value mapping §3 specifies for the "values"
// attribute; EnumValue order is retained on the Go side (needed while
// resolving auto-increment) but collapses to a map at the JSON boundary.
type typeRecordJSON struct {
	Kind         Kind              `json:"kind"`
	Name         string            `json:"name"`
	Fields       []*FieldRecord    `json:"fields,omitempty"`
	Values       map[string]int64  `json:"values,omitempty"`
	BaseType     string            `json:"base_type,omitempty"`
	RealType     Kind              `json:"real_type,omitempty"`
	Qualifiers   Qualifiers        `json:"qualifiers,omitempty"`
	FunctionInfo *FunctionInfo     `json:"function_info,omitempty"`
	Size         int               `json:"size"`
	Alignment    int               `json:"alignment"`
	Location     json.RawMessage   `json:"location"`
	Attributes   map[string]string `json:"attributes,omitempty"`
}

func (t *TypeRecord) MarshalJSON() ([]byte, error) {
	loc, err := json.Marshal(t.Location)
	if err != nil {
		return nil, err
	}
	return json.Marshal(typeRecordJSON{
		Kind:         t.Kind,
		Name:         t.Name,
		Fields:       t.Fields,
		Values:       t.ValuesMap(),
		BaseType:     t.BaseType,
		RealType:     t.RealType,
		Qualifiers:   t.Qualifiers,
		FunctionInfo: t.FunctionInfo,
		Size:         t.Size,
		Alignment:    t.Alignment,
		Location:     loc,
		Attributes:   t.Attributes,
	})
}
