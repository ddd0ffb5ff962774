package typesys

import "strconv"

// GetTypeSize returns the size in bytes of name: the ABI table for basic
// types, the pointer width for pointers, recursively-computed layout for
// composites, and the underlying integer width for enums (§4.2).
func (m *Manager) GetTypeSize(name string) int {
	rt := m.resolveForLayout(name)
	return m.sizeOf(rt)
}

// GetTypeAlignment mirrors GetTypeSize for alignment.
func (m *Manager) GetTypeAlignment(name string) int {
	rt := m.resolveForLayout(name)
	return m.alignOf(rt)
}

// resolveForLayout is a convenience wrapper: no explicit pointer/array
// modifiers, used when a caller only has a type name (not a declaration
// site) to ask about.
func (m *Manager) resolveForLayout(name string) ResolvedType {
	return m.ResolveType(name, 0, nil, nil)
}

func (m *Manager) sizeOf(rt ResolvedType) int {
	if rt.IsPointer {
		return m.abi.PointerSize
	}
	base := rt.BaseType
	var elemSize int
	switch {
	case rt.IsStruct, rt.IsUnion:
		elemSize = m.compositeSize(rt.Info)
	case rt.IsEnum:
		elemSize = m.abi.Sizes["int"]
	case rt.IsBasic:
		elemSize = m.abi.Sizes[base]
	default:
		elemSize = m.abi.Sizes["int"] // unknown types default to int width
	}
	for _, d := range rt.ArraySize {
		if d.Const {
			elemSize *= d.Value
		}
		// "var(NAME)"/dynamic extents contribute no compile-time size.
	}
	return elemSize
}

func (m *Manager) alignOf(rt ResolvedType) int {
	if rt.IsPointer {
		return m.abi.PointerSize
	}
	switch {
	case rt.IsStruct, rt.IsUnion:
		return m.compositeAlignment(rt.Info)
	case rt.IsEnum:
		return m.abi.Alignments["int"]
	case rt.IsBasic:
		if a, ok := m.abi.Alignments[rt.BaseType]; ok {
			return a
		}
		return 1
	default:
		return m.abi.Alignments["int"]
	}
}

// compositeSize/compositeAlignment compute a struct/union's layout lazily
// and cache the result on the TypeRecord, since §4.2 requires real
// (non-stubbed) layouts — see spec.md §9, open question 3.
func (m *Manager) compositeSize(rec *TypeRecord) int {
	if rec == nil || rec.Incomplete {
		return 0
	}
	if rec.Size > 0 {
		return rec.Size
	}
	m.computeLayout(rec)
	return rec.Size
}

func (m *Manager) compositeAlignment(rec *TypeRecord) int {
	if rec == nil || rec.Incomplete {
		return 1
	}
	if rec.Alignment > 0 {
		return rec.Alignment
	}
	m.computeLayout(rec)
	return rec.Alignment
}

// packedAttr reports whether rec carries a packed attribute, and the N of
// an aligned(N) attribute (0 when absent); a packed struct/union drops
// field padding to 1-byte alignment.
func packedAttr(rec *TypeRecord) (packed bool, forcedAlign int) {
	if rec.Attributes == nil {
		return false, 0
	}
	if _, ok := rec.Attributes["packed"]; ok {
		packed = true
	}
	if v, ok := rec.Attributes["aligned"]; ok {
		if n, err := strconv.Atoi(v); err == nil {
			forcedAlign = n
		}
	}
	return packed, forcedAlign
}

// computeLayout fills in Size/Alignment/Offset for rec's fields, following
// the common System V AMD64 struct-layout rule (spec.md §9): each field is
// placed at the next offset satisfying its own alignment; a bit-field packs
// into its declared base type's storage unit and starts a new unit when it
// would overflow; a union's size is its largest member, alignment its
// strictest; `packed` drops all padding; `aligned(N)` raises the final
// struct alignment (and its trailing size padding) to N.
func (m *Manager) computeLayout(rec *TypeRecord) {
	packed, forcedAlign := packedAttr(rec)

	if rec.Kind == KindUnion {
		maxSize, maxAlign := 0, 1
		for _, f := range rec.Fields {
			fsz, falign := m.fieldLayout(f, packed)
			f.Offset = 0
			f.Size = fsz
			if fsz > maxSize {
				maxSize = fsz
			}
			if falign > maxAlign {
				maxAlign = falign
			}
		}
		if forcedAlign > maxAlign {
			maxAlign = forcedAlign
		}
		rec.Size = alignUp(maxSize, maxAlign)
		rec.Alignment = maxAlign
		return
	}

	offset := 0
	maxAlign := 1
	bitOffset := 0 // bits consumed in the current bit-field storage unit
	bitUnitSize := 0

	flushBits := func() {
		if bitUnitSize > 0 {
			offset += bitUnitSize
			bitOffset = 0
			bitUnitSize = 0
		}
	}

	for _, f := range rec.Fields {
		fsz, falign := m.fieldLayout(f, packed)
		if falign > maxAlign {
			maxAlign = falign
		}

		if f.BitField != nil {
			width := *f.BitField
			if bitUnitSize == 0 || bitOffset+width > bitUnitSize*8 {
				flushBits()
				bitUnitSize = fsz
			}
			f.Offset = offset
			f.Size = 0 // a bit-field has no standalone byte size
			bitOffset += width
			continue
		}
		flushBits()

		align := falign
		if packed {
			align = 1
		}
		offset = alignUp(offset, align)
		f.Offset = offset
		f.Size = fsz
		offset += fsz
	}
	flushBits()

	if forcedAlign > maxAlign {
		maxAlign = forcedAlign
	}
	if packed && forcedAlign == 0 {
		maxAlign = 1
	}
	rec.Size = alignUp(offset, maxAlign)
	rec.Alignment = maxAlign
}

// fieldLayout resolves a FieldRecord's own size/alignment, recursing through
// nested anonymous composites and array dimensions.
func (m *Manager) fieldLayout(f *FieldRecord, packed bool) (size, align int) {
	if len(f.NestedFields) > 0 {
		nested := &TypeRecord{Kind: KindStruct, Fields: f.NestedFields}
		if _, ok := m.lookupType(withPrefix("union", f.Type)); ok {
			nested.Kind = KindUnion
		}
		m.computeLayout(nested)
		size, align = nested.Size, nested.Alignment
	} else if f.PointerType != "" {
		size, align = m.abi.PointerSize, m.abi.PointerSize
	} else {
		rt := m.resolveForLayoutNoArray(f.OriginalType)
		size = m.sizeOf(ResolvedType{BaseType: rt.BaseType, IsPointer: rt.IsPointer, IsStruct: rt.IsStruct, IsUnion: rt.IsUnion, IsEnum: rt.IsEnum, IsBasic: rt.IsBasic, Info: rt.Info})
		align = m.alignOf(rt)
	}
	for _, d := range f.ArraySize {
		if d.Const {
			size *= d.Value
		}
	}
	if packed {
		align = 1
	}
	return size, align
}

func (m *Manager) resolveForLayoutNoArray(name string) ResolvedType {
	if name == "" {
		return ResolvedType{IsBasic: true, BaseType: "int"}
	}
	return m.ResolveType(name, 0, nil, nil)
}

func alignUp(offset, align int) int {
	if align <= 1 {
		return offset
	}
	if rem := offset % align; rem != 0 {
		return offset + (align - rem)
	}
	return offset
}

// CalculateFieldOffset returns the byte offset of fieldName within typeName,
// computing the composite's layout first if needed.
func (m *Manager) CalculateFieldOffset(typeName, fieldName string) (int, bool) {
	rec, ok := m.lookupType(typeName)
	if !ok || (rec.Kind != KindStruct && rec.Kind != KindUnion) {
		return 0, false
	}
	if rec.Size == 0 {
		m.computeLayout(rec)
	}
	for _, f := range rec.Fields {
		if f.Name == fieldName {
			return f.Offset, true
		}
	}
	return 0, false
}
