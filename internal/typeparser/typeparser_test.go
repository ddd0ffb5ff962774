package typeparser

import (
	"testing"

	"github.com/kon1790/cparser/internal/cst"
	"github.com/kon1790/cparser/internal/typesys"
)

func parseSource(t *testing.T, src string) (*typesys.Manager, *cst.Tree) {
	t.Helper()
	tree, err := cst.Parse([]byte(src))
	if err != nil {
		t.Fatalf("cst.Parse: %v", err)
	}
	tm := typesys.NewManager(typesys.LP64, nil, nil)
	Parse(tm, tree.Root(), "test.c", nil)
	return tm, tree
}

func TestParseSimpleTypedef(t *testing.T) {
	tm, tree := parseSource(t, "typedef int MyInt;\n")
	defer tree.Close()

	if !tm.IsBasic("MyInt") {
		t.Errorf("IsBasic(MyInt) = false, want true")
	}
	if got := tm.GetRealType("MyInt"); got != "int" {
		t.Errorf("GetRealType(MyInt) = %q, want int", got)
	}
}

func TestParsePointerTypedef(t *testing.T) {
	tm, tree := parseSource(t, "typedef int *IntPtr;\n")
	defer tree.Close()

	if !tm.IsPointer("IntPtr") {
		t.Errorf("IsPointer(IntPtr) = false, want true")
	}
	rt := tm.ResolveType("IntPtr", 0, nil, nil)
	if rt.PointerLevel != 1 {
		t.Errorf("PointerLevel = %d, want 1", rt.PointerLevel)
	}
}

func TestParseStructWithFields(t *testing.T) {
	src := `struct Point {
		int x;
		int y;
	};
	`
	tm, tree := parseSource(t, src)
	defer tree.Close()

	rec, ok := tm.GetStructInfo("Point")
	if !ok {
		t.Fatal("struct Point not found")
	}
	if len(rec.Fields) != 2 {
		t.Fatalf("len(Fields) = %d, want 2", len(rec.Fields))
	}
	if rec.Fields[0].Name != "x" || rec.Fields[1].Name != "y" {
		t.Errorf("field order/names = %q, %q", rec.Fields[0].Name, rec.Fields[1].Name)
	}
}

func TestParseTypedefStruct(t *testing.T) {
	src := `typedef struct {
		int a;
	} Handle;
	`
	tm, tree := parseSource(t, src)
	defer tree.Close()

	if !tm.IsStruct("Handle") {
		t.Errorf("IsStruct(Handle) = false, want true")
	}
}

func TestParseForwardDeclarationThenFields(t *testing.T) {
	src := `struct Node;
	struct Node {
		int value;
	};
	`
	tm, tree := parseSource(t, src)
	defer tree.Close()

	rec, ok := tm.GetStructInfo("Node")
	if !ok {
		t.Fatal("struct Node not found")
	}
	if rec.Incomplete {
		t.Error("definition should have replaced the forward declaration")
	}
}

func TestParseEnumAutoIncrement(t *testing.T) {
	src := `enum Color { RED, GREEN, BLUE = 10, YELLOW };`
	tm, tree := parseSource(t, src)
	defer tree.Close()

	rec, ok := tm.GetEnumInfo("Color")
	if !ok {
		t.Fatal("enum Color not found")
	}
	values := rec.ValuesMap()
	want := map[string]int64{"RED": 0, "GREEN": 1, "BLUE": 10, "YELLOW": 11}
	for k, v := range want {
		if values[k] != v {
			t.Errorf("values[%s] = %d, want %d", k, values[k], v)
		}
	}
}

func TestParseMacroDefinition(t *testing.T) {
	src := "#define MAX_SIZE 128\n"
	tm, tree := parseSource(t, src)
	defer tree.Close()

	result, ok := tm.Symbols().Macro("MAX_SIZE")
	if !ok {
		t.Fatal("macro MAX_SIZE not found")
	}
	if result.Int != 128 {
		t.Errorf("MAX_SIZE = %d, want 128", result.Int)
	}
}

func TestParseBitfieldStruct(t *testing.T) {
	src := `struct Flags {
		unsigned int a : 1;
		unsigned int b : 3;
	};
	`
	tm, tree := parseSource(t, src)
	defer tree.Close()

	rec, ok := tm.GetStructInfo("Flags")
	if !ok {
		t.Fatal("struct Flags not found")
	}
	if len(rec.Fields) != 2 {
		t.Fatalf("len(Fields) = %d, want 2", len(rec.Fields))
	}
	for _, f := range rec.Fields {
		if f.BitField == nil {
			t.Errorf("field %s missing bit-field width", f.Name)
		}
	}
}
