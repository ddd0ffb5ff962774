package typesys

import "testing"

func newTestManager() *Manager {
	return NewManager(LP64, nil, nil)
}

func TestTypedefIdempotence(t *testing.T) {
	m := newTestManager()
	m.RegisterType(&TypeRecord{Kind: KindTypedef, Name: "MyInt", BaseType: "int"})

	once := m.GetRealType("MyInt")
	twice := m.GetRealType(once)
	if once != twice {
		t.Errorf("GetRealType not idempotent: once=%q twice=%q", once, twice)
	}
}

func TestTypedefChain(t *testing.T) {
	m := newTestManager()
	m.RegisterType(&TypeRecord{Kind: KindTypedef, Name: "A", BaseType: "int"})
	m.RegisterType(&TypeRecord{Kind: KindTypedef, Name: "B", BaseType: "A"})
	m.RegisterType(&TypeRecord{Kind: KindTypedef, Name: "C", BaseType: "B"})

	if got := m.GetRealType("C"); got != "int" {
		t.Errorf("GetRealType(C) = %q, want int", got)
	}
	if !m.IsBasic("C") {
		t.Errorf("IsBasic(C) = false, want true")
	}
}

func TestCyclicTypedefDoesNotHang(t *testing.T) {
	m := newTestManager()
	m.RegisterType(&TypeRecord{Kind: KindTypedef, Name: "X", BaseType: "Y"})
	m.RegisterType(&TypeRecord{Kind: KindTypedef, Name: "Y", BaseType: "X"})

	done := make(chan string, 1)
	go func() { done <- m.GetRealType("X") }()
	select {
	case <-done:
	default:
	}
	// Primarily a non-hang/non-panic guarantee; classification should not
	// claim a cyclic typedef resolves to any concrete kind.
	if m.Classify("X") != KindUnknown {
		t.Errorf("Classify(X) on a cyclic typedef = %v, want unknown", m.Classify("X"))
	}
}

func TestResolveTypePointerComposition(t *testing.T) {
	m := newTestManager()
	// typedef int *PInt; PInt *pp; -> pointer_level should be 2.
	m.RegisterType(&TypeRecord{Kind: KindTypedef, Name: "PInt", BaseType: "int *"})

	rt := m.ResolveType("PInt", 1, nil, nil)
	if rt.PointerLevel != 2 {
		t.Errorf("PointerLevel = %d, want 2", rt.PointerLevel)
	}
	if rt.BaseType != "int" {
		t.Errorf("BaseType = %q, want int", rt.BaseType)
	}
	if rt.ResolvedType != "int**" {
		t.Errorf("ResolvedType = %q, want int**", rt.ResolvedType)
	}
}

func TestGetRealTypeModifierNonComposition(t *testing.T) {
	m := newTestManager()
	m.RegisterType(&TypeRecord{Kind: KindTypedef, Name: "A", BaseType: "int[4]"})

	got := m.GetRealType("A[2]")
	if got != "int[2]" {
		t.Errorf("GetRealType(A[2]) = %q, want int[2] (outer modifier wins, inner dropped)", got)
	}
}

func TestResolutionMonotonicity(t *testing.T) {
	m := newTestManager()
	width := 4
	m.RegisterType(&TypeRecord{
		Kind: KindStruct,
		Name: "struct Point",
		Fields: []*FieldRecord{
			{Name: "x", Type: "int", OriginalType: "int"},
			{Name: "y", Type: "int", OriginalType: "int"},
			{Name: "flag", Type: "int", OriginalType: "int", BitField: &width},
		},
	})

	size := m.GetTypeSize("Point")
	for _, field := range []string{"x", "y"} {
		offset, ok := m.CalculateFieldOffset("Point", field)
		if !ok {
			t.Fatalf("offset for %s not found", field)
		}
		if offset >= size {
			t.Errorf("offset(%s)=%d should be < size=%d", field, offset, size)
		}
	}
}

func TestEnumAutoIncrementRecorded(t *testing.T) {
	m := newTestManager()
	m.RegisterType(&TypeRecord{
		Kind: KindEnum,
		Name: "enum Sz",
		Values: []EnumValue{
			{Name: "A", Value: 0, Reduced: true},
			{Name: "B", Value: 5, Reduced: true},
			{Name: "C", Value: 6, Reduced: true},
			{Name: "D", Value: 7, Reduced: true},
		},
	})

	rec, ok := m.GetEnumInfo("Sz")
	if !ok {
		t.Fatal("GetEnumInfo(Sz) not found")
	}
	want := map[string]int64{"A": 0, "B": 5, "C": 6, "D": 7}
	got := rec.ValuesMap()
	for k, v := range want {
		if got[k] != v {
			t.Errorf("values[%s] = %d, want %d", k, got[k], v)
		}
	}

	v, ok := m.Symbols().Enum("B")
	if !ok || v != 5 {
		t.Errorf("Symbols().Enum(B) = (%d, %v), want (5, true)", v, ok)
	}
}

func TestStructUnionLookupWithOrWithoutPrefix(t *testing.T) {
	m := newTestManager()
	m.RegisterType(&TypeRecord{Kind: KindStruct, Name: "struct Foo"})

	if _, ok := m.GetStructInfo("Foo"); !ok {
		t.Error("GetStructInfo(Foo) should find struct Foo")
	}
	if _, ok := m.GetStructInfo("struct Foo"); !ok {
		t.Error("GetStructInfo(struct Foo) should find struct Foo")
	}
}

func TestForwardDeclarationThenDefinitionOverwrites(t *testing.T) {
	m := newTestManager()
	m.RegisterType(&TypeRecord{Kind: KindStruct, Name: "struct Node", Incomplete: true})
	m.RegisterType(&TypeRecord{
		Kind:   KindStruct,
		Name:   "struct Node",
		Fields: []*FieldRecord{{Name: "value", Type: "int", OriginalType: "int"}},
	})

	rec, ok := m.GetStructInfo("Node")
	if !ok {
		t.Fatal("Node not found")
	}
	if rec.Incomplete {
		t.Error("definition should have replaced the forward declaration")
	}
	if len(rec.Fields) != 1 {
		t.Errorf("len(Fields) = %d, want 1", len(rec.Fields))
	}
}

func TestMergeTypeInfoPromotesToGlobal(t *testing.T) {
	m := newTestManager()
	m.RegisterType(&TypeRecord{Kind: KindTypedef, Name: "FileScoped", BaseType: "int"})

	other := newTestManager()
	other.MergeTypeInfo(m, true)
	other.ResetCurrentTypeInfo()

	if !other.IsBasic("FileScoped") {
		t.Error("type merged into global scope should still resolve after current scope reset")
	}
}
