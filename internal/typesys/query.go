package typesys

// allRecords returns every TypeRecord visible in scope ("all", "global", or
// "current"), current-file entries shadowing global ones by key for "all".
func (m *Manager) allRecords(scopeName string) []*TypeRecord {
	switch scopeName {
	case "global":
		return valuesOf(m.global.types)
	case "current":
		return valuesOf(m.current.types)
	default:
		merged := make(map[string]*TypeRecord, len(m.global.types)+len(m.current.types))
		for k, v := range m.global.types {
			merged[k] = v
		}
		for k, v := range m.current.types {
			merged[k] = v
		}
		return valuesOf(merged)
	}
}

func valuesOf(m map[string]*TypeRecord) []*TypeRecord {
	out := make([]*TypeRecord, 0, len(m))
	for _, v := range m {
		out = append(out, v)
	}
	return out
}

// FindTypesByKind filters every visible TypeRecord by Kind.
func (m *Manager) FindTypesByKind(kind Kind) []*TypeRecord {
	var out []*TypeRecord
	for _, rec := range m.allRecords("all") {
		if rec.Kind == kind {
			out = append(out, rec)
		}
	}
	return out
}

// FindTypesByAttribute filters by presence of an attribute key.
func (m *Manager) FindTypesByAttribute(key string) []*TypeRecord {
	var out []*TypeRecord
	for _, rec := range m.allRecords("all") {
		if _, ok := rec.Attributes[key]; ok {
			out = append(out, rec)
		}
	}
	return out
}

// FindTypesByField returns every composite carrying a field named fieldName.
func (m *Manager) FindTypesByField(fieldName string) []*TypeRecord {
	var out []*TypeRecord
	for _, rec := range m.allRecords("all") {
		for _, f := range rec.Fields {
			if f.Name == fieldName {
				out = append(out, rec)
				break
			}
		}
	}
	return out
}

// FindTypesBySize returns every type whose size equals size (forcing layout
// computation for any composite not yet sized).
func (m *Manager) FindTypesBySize(size int) []*TypeRecord {
	var out []*TypeRecord
	for _, rec := range m.allRecords("all") {
		if rec.Kind == KindStruct || rec.Kind == KindUnion {
			if rec.Size == 0 {
				m.computeLayout(rec)
			}
		}
		if m.GetTypeSize(rec.Name) == size {
			out = append(out, rec)
		}
	}
	return out
}

// ExportTypes dumps every TypeRecord visible in scope ("all", "global",
// "current"), grouped by kind — the shape the output document's "types" key
// uses (§6). Struct/union layouts (size, alignment, field offsets) are
// computed before export for any composite not yet sized.
func (m *Manager) ExportTypes(scopeName string) map[Kind][]*TypeRecord {
	out := map[Kind][]*TypeRecord{
		KindStruct:  {},
		KindUnion:   {},
		KindEnum:    {},
		KindTypedef: {},
	}
	for _, rec := range m.allRecords(scopeName) {
		if (rec.Kind == KindStruct || rec.Kind == KindUnion) && rec.Size == 0 {
			m.computeLayout(rec)
		}
		switch rec.Kind {
		case KindStruct, KindUnion, KindEnum, KindTypedef:
			out[rec.Kind] = append(out[rec.Kind], rec)
		}
	}
	return out
}
