package typesys

import (
	"strings"

	"github.com/kon1790/cparser/internal/diag"
)

// ResolvedType is the fully-expanded view of a type reference as used at a
// declaration site (§3).
type ResolvedType struct {
	Type         string         `json:"type"`
	BaseType     string         `json:"base_type"`
	ResolvedType string         `json:"resolved_type"`
	IsPointer    bool           `json:"is_pointer"`
	PointerLevel int            `json:"pointer_level"`
	ArraySize    []Dim          `json:"array_size,omitempty"`
	BitField     *int           `json:"bit_field,omitempty"`
	IsStruct     bool           `json:"is_struct"`
	IsUnion      bool           `json:"is_union"`
	IsEnum       bool           `json:"is_enum"`
	IsBasic      bool           `json:"is_basic"`
	Info         *TypeRecord    `json:"info,omitempty"`
	NestedFields []*FieldRecord `json:"nested_fields,omitempty"`
}

func stripStars(s string) (base string, stars int) {
	s = strings.TrimSpace(s)
	for strings.HasSuffix(s, "*") {
		s = strings.TrimSpace(strings.TrimSuffix(s, "*"))
		stars++
	}
	return s, stars
}

func stripArraySuffix(s string) (base string, suffix string) {
	if idx := strings.Index(s, "["); idx >= 0 {
		return strings.TrimSpace(s[:idx]), s[idx:]
	}
	return s, ""
}

// Classify follows name through typedef chains (guarded against cycles by a
// visited set) to its ultimate classification, per the `is_basic`/
// `is_struct`/`is_union`/`is_enum`/`is_pointer` family of §4.2.
func (m *Manager) Classify(name string) Kind {
	base, _ := stripArraySuffix(name)
	base, stars := stripStars(base)
	if stars > 0 {
		return KindPointer
	}
	if k, ok := m.kindCache[base]; ok {
		return k
	}
	k := m.classify(base, map[string]bool{})
	m.kindCache[base] = k
	return k
}

func (m *Manager) classify(base string, visited map[string]bool) Kind {
	base = strings.TrimSpace(base)
	if base == "" {
		return KindUnknown
	}
	inner, stars := stripStars(base)
	if stars > 0 {
		return KindPointer
	}
	if visited[inner] {
		m.diags.Warn(diag.CyclicTypedef, diag.Location{}, "cyclic typedef chain detected at %q", inner)
		return KindUnknown
	}
	visited[inner] = true

	if _, ok := canonicalBasic(inner); ok {
		return KindBasic
	}
	if m.IsPointerAliasName(inner) {
		return KindPointer
	}
	if rec, ok := m.lookupType(inner); ok {
		switch rec.Kind {
		case KindStruct, KindUnion, KindEnum:
			return rec.Kind
		case KindTypedef:
			if rec.RealType == KindFunctionPointer {
				return KindFunctionPointer
			}
			return m.classify(rec.BaseType, visited)
		}
	}
	return KindUnknown
}

func (m *Manager) IsBasic(name string) bool   { return m.Classify(name) == KindBasic }
func (m *Manager) IsStruct(name string) bool  { return m.Classify(name) == KindStruct }
func (m *Manager) IsUnion(name string) bool   { return m.Classify(name) == KindUnion }
func (m *Manager) IsEnum(name string) bool    { return m.Classify(name) == KindEnum }
func (m *Manager) IsPointer(name string) bool { return m.Classify(name) == KindPointer }

// IsTypedef reports whether name is itself registered as a typedef entry
// (as opposed to what it ultimately resolves to).
func (m *Manager) IsTypedef(name string) bool {
	base, _ := stripArraySuffix(name)
	base, _ = stripStars(base)
	rec, ok := m.lookupType(strings.TrimSpace(base))
	return ok && rec.Kind == KindTypedef
}

// GetRealType follows the typedef chain on name, preserving the pointer-star
// and array-suffix modifiers present in the outermost (caller-supplied)
// spelling but NOT composing them with modifiers carried by intermediate
// typedef RHS spellings (spec.md §9, open question: the source's observed,
// non-composing behavior is adopted as-is — see DESIGN.md).
func (m *Manager) GetRealType(name string) string {
	outerBase, arraySuffix := stripArraySuffix(name)
	outerBase, outerStars := stripStars(outerBase)
	base := strings.TrimSpace(outerBase)

	visited := map[string]bool{}
	for {
		if visited[base] {
			m.diags.Warn(diag.CyclicTypedef, diag.Location{}, "cyclic typedef chain detected at %q; stopping at last non-cyclic name", base)
			break
		}
		visited[base] = true
		rec, ok := m.lookupType(base)
		if !ok || rec.Kind != KindTypedef {
			break
		}
		rhs, _ := stripArraySuffix(rec.BaseType)
		rhs, _ = stripStars(rhs)
		base = strings.TrimSpace(rhs)
	}

	out := base
	if outerStars > 0 {
		out += strings.Repeat("*", outerStars)
	}
	if arraySuffix != "" {
		out += arraySuffix
	}
	return out
}

// ResolveType implements the six-step algorithm of §4.2: strip explicit
// pointer stars, follow the typedef chain accumulating pointer depth from
// every RHS along the way, bump once more for a registered pointer alias,
// classify the final base, and rebuild resolved_type.
func (m *Manager) ResolveType(spelled string, explicitPointerLevel int, arraySize []Dim, bitField *int) ResolvedType {
	base := strings.TrimSpace(spelled)
	base, stars := stripStars(base)
	pointerLevel := explicitPointerLevel + stars

	visited := map[string]bool{}
	for {
		if visited[base] {
			m.diags.Warn(diag.CyclicTypedef, diag.Location{}, "cyclic typedef chain detected at %q", base)
			break
		}
		visited[base] = true
		rec, ok := m.lookupType(base)
		if !ok || rec.Kind != KindTypedef {
			break
		}
		rhsBase, rhsStars := stripStars(rec.BaseType)
		pointerLevel += rhsStars
		base = strings.TrimSpace(rhsBase)
	}

	if m.IsPointerAliasName(base) {
		pointerLevel++
	}

	kind := m.classify(base, map[string]bool{})
	rt := ResolvedType{
		Type:         spelled,
		BaseType:     base,
		PointerLevel: pointerLevel,
		IsPointer:    pointerLevel > 0,
		ArraySize:    arraySize,
		BitField:     bitField,
	}
	switch kind {
	case KindStruct:
		rt.IsStruct = true
	case KindUnion:
		rt.IsUnion = true
	case KindEnum:
		rt.IsEnum = true
	case KindBasic:
		rt.IsBasic = true
	}
	if kind == KindStruct || kind == KindUnion || kind == KindEnum {
		if rec, ok := m.lookupType(base); ok {
			rt.Info = rec
			rt.NestedFields = rec.Fields
		}
	}
	rt.ResolvedType = base + strings.Repeat("*", pointerLevel)
	return rt
}

// GetStructInfo, GetUnionInfo, GetEnumInfo accept a name with or without its
// struct/union/enum prefix (§4.2).
func (m *Manager) GetStructInfo(name string) (*TypeRecord, bool) { return m.getComposite(KindStruct, name) }
func (m *Manager) GetUnionInfo(name string) (*TypeRecord, bool)  { return m.getComposite(KindUnion, name) }
func (m *Manager) GetEnumInfo(name string) (*TypeRecord, bool)   { return m.getComposite(KindEnum, name) }

func (m *Manager) getComposite(kind Kind, name string) (*TypeRecord, bool) {
	rec, ok := m.lookupType(canonicalKey(kind, name))
	if !ok || rec.Kind != kind {
		return nil, false
	}
	return rec, true
}

// GetFieldInfo looks up a single field of a struct/union by name.
func (m *Manager) GetFieldInfo(typeName, fieldName string) (*FieldRecord, bool) {
	rec, ok := m.lookupType(typeName)
	if !ok {
		return nil, false
	}
	for _, f := range rec.Fields {
		if f.Name == fieldName {
			return f, true
		}
	}
	return nil, false
}
