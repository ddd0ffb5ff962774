package analyzer

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/kon1790/cparser/internal/typesys"
)

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write temp file: %v", err)
	}
	return path
}

func TestAnalyzeProducesTypesAndVariables(t *testing.T) {
	path := writeTemp(t, "source.c", `
typedef struct {
	int x;
	int y;
} Point;

Point origin = { .x = 0, .y = 0 };
int values[3] = {1, 2, 3};
`)

	a := New(typesys.LP64, nil)
	res, err := a.Analyze(path, nil)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}

	doc := BuildDocument(res, "all")
	if len(doc.Types.Typedefs) == 0 {
		t.Error("expected at least one typedef")
	}
	if len(doc.Variables.StructVars) == 0 {
		t.Error("expected at least one struct variable")
	}
	if len(doc.Variables.ArrayVars) == 0 {
		t.Error("expected at least one array variable")
	}
}

func TestParseHeaderThenAnalyzeMergesTypes(t *testing.T) {
	headerPath := writeTemp(t, "header.h", "typedef int Handle;\n")
	srcPath := writeTemp(t, "source.c", "Handle h = 5;\n")

	a := New(typesys.LP64, nil)
	tm, err := a.ParseHeader(headerPath)
	if err != nil {
		t.Fatalf("ParseHeader: %v", err)
	}

	res, err := a.Analyze(srcPath, tm)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if !res.Manager.IsBasic("Handle") {
		t.Error("Handle should resolve to a basic type after merging the header's scope")
	}
}

func TestBuildSimplifiedOmitsProvenance(t *testing.T) {
	path := writeTemp(t, "source.c", "int counter = 1;\n")
	a := New(typesys.LP64, nil)
	res, err := a.Analyze(path, nil)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}

	simplified := BuildSimplified(res)
	if len(simplified) != 1 {
		t.Fatalf("len(simplified) = %d, want 1", len(simplified))
	}
	if simplified[0].Name != "counter" {
		t.Errorf("Name = %q, want counter", simplified[0].Name)
	}
}
