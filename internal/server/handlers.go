package server

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/kon1790/cparser/internal/analyzer"
	"github.com/kon1790/cparser/internal/diag"
	"github.com/kon1790/cparser/internal/typesys"
)

// ParseCHeaderInput names the header to type-check.
type ParseCHeaderInput struct {
	Path string `json:"path" jsonschema:"required" jsonschema_description:"Path to the C header file to parse"`
}

// ParseCHeaderOutput is the header's type table.
type ParseCHeaderOutput struct {
	Structs  []*typesys.TypeRecord `json:"structs"`
	Unions   []*typesys.TypeRecord `json:"unions"`
	Enums    []*typesys.TypeRecord `json:"enums"`
	Typedefs []*typesys.TypeRecord `json:"typedefs"`
}

func (s *Server) handleParseCHeader(ctx context.Context, req *mcp.CallToolRequest, input ParseCHeaderInput) (*mcp.CallToolResult, ParseCHeaderOutput, error) {
	tm, err := s.analyzer.ParseHeader(input.Path)
	if err != nil {
		return errorResult(fmt.Sprintf("parse header: %v", err)), ParseCHeaderOutput{}, nil
	}
	types := tm.ExportTypes("current")
	return nil, ParseCHeaderOutput{
		Structs:  types[typesys.KindStruct],
		Unions:   types[typesys.KindUnion],
		Enums:    types[typesys.KindEnum],
		Typedefs: types[typesys.KindTypedef],
	}, nil
}

// AnalyzeCFileInput names the source file to analyze, and optionally a
// header whose types should be visible to it.
type AnalyzeCFileInput struct {
	Path   string `json:"path" jsonschema:"required" jsonschema_description:"Path to the C source file to analyze"`
	Header string `json:"header,omitempty" jsonschema_description:"Optional header file to parse first, merging its types into scope"`
}

// AnalyzeCFileOutput is the full two-key document plus any diagnostics
// raised along the way.
type AnalyzeCFileOutput struct {
	Types       analyzer.TypesDocument     `json:"types"`
	Variables   analyzer.VariablesDocument `json:"variables"`
	Diagnostics []diag.Diagnostic          `json:"diagnostics,omitempty"`
}

func (s *Server) handleAnalyzeCFile(ctx context.Context, req *mcp.CallToolRequest, input AnalyzeCFileInput) (*mcp.CallToolResult, AnalyzeCFileOutput, error) {
	var imported *typesys.Manager
	if input.Header != "" {
		tm, err := s.analyzer.ParseHeader(input.Header)
		if err != nil {
			return errorResult(fmt.Sprintf("parse header: %v", err)), AnalyzeCFileOutput{}, nil
		}
		imported = tm
	}

	res, err := s.analyzer.Analyze(input.Path, imported)
	if err != nil {
		return errorResult(fmt.Sprintf("analyze: %v", err)), AnalyzeCFileOutput{}, nil
	}

	doc := analyzer.BuildDocument(res, "all")
	return nil, AnalyzeCFileOutput{
		Types:       doc.Types,
		Variables:   doc.Variables,
		Diagnostics: res.Diagnostics,
	}, nil
}

func errorResult(msg string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{&mcp.TextContent{Text: msg}},
	}
}
