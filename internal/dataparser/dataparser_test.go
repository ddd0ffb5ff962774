package dataparser

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kon1790/cparser/internal/cst"
	"github.com/kon1790/cparser/internal/exprparser"
	"github.com/kon1790/cparser/internal/typeparser"
	"github.com/kon1790/cparser/internal/typesys"
)

func parseSource(t *testing.T, src string) (*typesys.Manager, *Manager, *cst.Tree) {
	t.Helper()
	tree, err := cst.Parse([]byte(src))
	require.NoError(t, err)

	tm := typesys.NewManager(typesys.LP64, nil, nil)
	root := tree.Root()
	typeparser.Parse(tm, root, "test.c", nil)

	dm := NewManager(tm)
	Parse(tm, dm, root, "test.c", nil)
	return tm, dm, tree
}

func TestScalarVariable(t *testing.T) {
	_, dm, tree := parseSource(t, "int counter = 42;\n")
	defer tree.Close()

	require.Len(t, dm.Plain, 1)
	v := dm.Plain[0]
	require.Equal(t, "counter", v.Name)
	require.NotNil(t, v.ParsedValue)
	require.Equal(t, ShapedScalar, v.ParsedValue.Kind)
	require.Equal(t, int64(42), v.ParsedValue.Scalar.Int)
}

func TestPointerVariable(t *testing.T) {
	_, dm, tree := parseSource(t, "int *p = 0;\n")
	defer tree.Close()

	require.Len(t, dm.Pointer, 1)
	require.Equal(t, 1, dm.Pointer[0].PointerLevel)
}

func TestStaticArrayWithPositionalInitializer(t *testing.T) {
	_, dm, tree := parseSource(t, "int values[3] = {1, 2, 3};\n")
	defer tree.Close()

	require.Len(t, dm.Array, 1)
	v := dm.Array[0]
	require.Len(t, v.ArraySize, 1)
	require.True(t, v.ArraySize[0].Resolved)
	require.Equal(t, 3, v.ArraySize[0].Value)
	require.Equal(t, ShapedArray, v.ParsedValue.Kind)
	require.Len(t, v.ParsedValue.List, 3)
	require.Equal(t, int64(2), v.ParsedValue.List[1].Scalar.Int)
}

func TestDynamicArrayExtentInference(t *testing.T) {
	_, dm, tree := parseSource(t, "int values[] = {1, 2, 3, 4};\n")
	defer tree.Close()

	require.Len(t, dm.Array, 1)
	v := dm.Array[0]
	require.True(t, v.ArraySize[0].Resolved)
	require.Equal(t, 4, v.ArraySize[0].Value)
}

func TestCharArrayDynamicExtentFromString(t *testing.T) {
	_, dm, tree := parseSource(t, `char name[] = "abc";`+"\n")
	defer tree.Close()

	require.Len(t, dm.Array, 1)
	v := dm.Array[0]
	require.True(t, v.ArraySize[0].Resolved)
	require.Equal(t, 4, v.ArraySize[0].Value)

	require.NotNil(t, v.ParsedValue)
	require.Equal(t, ShapedScalar, v.ParsedValue.Kind)
	require.Equal(t, exprparser.KindString, v.ParsedValue.Scalar.Kind)
	require.Equal(t, `"abc"`, v.ParsedValue.Scalar.Text)
}

func TestArrayOfPointersShapesElementsAsScalars(t *testing.T) {
	// char *names[] is an array of pointers: the declarator carries both a
	// pointer level and an array dimension, and classification precedence
	// (pointer > array) puts it in the Pointer bucket, but its shaped value
	// must still be a list of per-element pointer scalars, not one bare
	// empty scalar.
	_, dm, tree := parseSource(t, `char *names[] = {"a", "b"};`+"\n")
	defer tree.Close()

	require.Len(t, dm.Pointer, 1)
	v := dm.Pointer[0]
	require.True(t, v.ArraySize[0].Resolved)
	require.Equal(t, 2, v.ArraySize[0].Value)

	require.Equal(t, ShapedArray, v.ParsedValue.Kind)
	require.Len(t, v.ParsedValue.List, 2)
	require.Equal(t, ShapedScalar, v.ParsedValue.List[0].Kind)
	require.Equal(t, `"a"`, v.ParsedValue.List[0].Scalar.Text)
	require.Equal(t, `"b"`, v.ParsedValue.List[1].Scalar.Text)
}

func TestStructDesignatedAndPositionalAreIdentical(t *testing.T) {
	src := `struct Point { int x; int y; };
	struct Point a = {1, 2};
	struct Point b = {.y = 2, .x = 1};
	`
	_, dm, tree := parseSource(t, src)
	defer tree.Close()

	require.Len(t, dm.Struct, 2)
	av := dm.Struct[0].ParsedValue
	bv := dm.Struct[1].ParsedValue
	require.Equal(t, av.Fields["x"].Scalar.Int, bv.Fields["x"].Scalar.Int)
	require.Equal(t, av.Fields["y"].Scalar.Int, bv.Fields["y"].Scalar.Int)
}

func TestUnionDesignatedInitializerSelectsVariant(t *testing.T) {
	src := `union Value { int i; float f; };
	union Value v = { .f = 1 };
	`
	_, dm, tree := parseSource(t, src)
	defer tree.Close()

	require.Len(t, dm.Struct, 1)
	pv := dm.Struct[0].ParsedValue
	require.Equal(t, []string{"f"}, pv.FieldOrder)
	_, hasI := pv.Fields["i"]
	require.False(t, hasI)
}

func TestExternDeclarationWithoutInitializerIsSkipped(t *testing.T) {
	_, dm, tree := parseSource(t, "extern int counter;\n")
	defer tree.Close()

	require.Empty(t, dm.Plain)
}

func TestFunctionDeclarationIsSkipped(t *testing.T) {
	_, dm, tree := parseSource(t, "int add(int a, int b);\n")
	defer tree.Close()

	require.Empty(t, dm.Plain)
}
