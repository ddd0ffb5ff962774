package dataparser

import "github.com/kon1790/cparser/internal/typesys"

// Manager is the DataManager (§4.5): a thin accumulator of four ordered
// variable-record lists, classified by DataParser as each is produced. It
// carries no logic of its own beyond that classification.
type Manager struct {
	tm *typesys.Manager

	Plain   []*VariableRecord
	Pointer []*VariableRecord
	Array   []*VariableRecord
	Struct  []*VariableRecord
}

// NewManager creates a DataManager backed by tm, used to answer type
// queries (ExportTypes) alongside the variable lists it accumulates.
func NewManager(tm *typesys.Manager) *Manager {
	return &Manager{tm: tm}
}

// add classifies rec into one of the four buckets by precedence — pointer >
// array > struct > plain — per §4.4 step 10.
func (d *Manager) add(rec *VariableRecord) {
	switch {
	case rec.IsPointer:
		d.Pointer = append(d.Pointer, rec)
	case len(rec.ArraySize) > 0:
		d.Array = append(d.Array, rec)
	case rec.TypeInfo.IsStruct || rec.TypeInfo.IsUnion:
		d.Struct = append(d.Struct, rec)
	default:
		d.Plain = append(d.Plain, rec)
	}
}

// Types returns every type known to the attached TypeManager, partitioned
// by kind — the variable-side counterpart's view onto the shared symbol
// table (§4.5).
func (d *Manager) Types(scope string) map[typesys.Kind][]*typesys.TypeRecord {
	return d.tm.ExportTypes(scope)
}
