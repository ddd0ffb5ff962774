// Package analyzer is the single-file pipeline (§5): CST adapter ->
// TypeParser -> DataParser, assembled into the two-top-key output document.
// A parse is a cooperative, single-threaded pipeline; there is no
// concurrency inside the core and no I/O once the source is read and
// handed to the grammar.
package analyzer

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/kon1790/cparser/internal/cst"
	"github.com/kon1790/cparser/internal/dataparser"
	"github.com/kon1790/cparser/internal/diag"
	"github.com/kon1790/cparser/internal/typeparser"
	"github.com/kon1790/cparser/internal/typesys"
)

// Result is one file's complete analysis: the populated symbol table, the
// accumulated variable records, and any non-fatal diagnostics raised along
// the way.
type Result struct {
	Manager     *typesys.Manager
	Data        *dataparser.Manager
	Diagnostics []diag.Diagnostic
}

// Analyzer runs the pipeline one file at a time, each with a fresh
// TypeManager. A header's Manager from ParseHeader can be passed to Analyze,
// which merges its types into the new Manager's global scope (§4.2, §5).
type Analyzer struct {
	abi    typesys.ABI
	logger *slog.Logger
}

// New creates an Analyzer targeting abi; a nil logger defaults to slog's
// package-level default.
func New(abi typesys.ABI, logger *slog.Logger) *Analyzer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Analyzer{abi: abi, logger: logger}
}

// ParseHeader runs only the type pass over source (no variable walk),
// returning a Manager whose current scope can be merged into a shared
// global scope for subsequent files to import (§4.2's "--header" CLI flag,
// §5's pipeline note).
func (a *Analyzer) ParseHeader(path string) (*typesys.Manager, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read header %q: %w", path, err)
	}
	tree, err := cst.Parse(source)
	if err != nil {
		return nil, fmt.Errorf("parse header %q: %w", path, err)
	}
	defer tree.Close()

	tm := typesys.NewManager(a.abi, a.logger, nil)
	typeparser.Parse(tm, tree.Root(), path, a.logger)
	return tm, nil
}

// Analyze runs the full pipeline over path: read, parse, type pass, data
// pass. imported, if non-nil, is merged into the new Manager's global scope
// before the type pass runs, so a previously-parsed header's types are
// visible.
func (a *Analyzer) Analyze(path string, imported *typesys.Manager) (*Result, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %q: %w", path, err)
	}

	tree, err := cst.Parse(source)
	if err != nil {
		return nil, fmt.Errorf("parse %q: %w", path, err)
	}
	defer tree.Close()

	tm := typesys.NewManager(a.abi, a.logger, nil)
	if imported != nil {
		tm.MergeTypeInfo(imported, true)
	}

	root := tree.Root()
	typeparser.Parse(tm, root, path, a.logger)

	dm := dataparser.NewManager(tm)
	dataparser.Parse(tm, dm, root, path, a.logger)

	return &Result{Manager: tm, Data: dm, Diagnostics: tm.Diagnostics().Items()}, nil
}
