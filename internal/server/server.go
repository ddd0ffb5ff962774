// Package server exposes the analyzer as an MCP server, so a downstream
// code generator can query struct layouts and shaped initializers directly
// instead of shelling out to the CLI (§3's additive MCP surface).
package server

import (
	"context"
	"log/slog"
	"os"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/kon1790/cparser/internal/analyzer"
	"github.com/kon1790/cparser/internal/typesys"
)

// Server wraps the MCP server with the analyzer it drives.
type Server struct {
	mcpServer *mcp.Server
	analyzer  *analyzer.Analyzer
	log       *slog.Logger
}

// New creates an MCP server targeting abi. One Analyzer serves every
// request; each tool call builds its own TypeManager, so there is no
// shared, mutable session state.
func New(abi typesys.ABI) *Server {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))

	mcpServer := mcp.NewServer(
		&mcp.Implementation{Name: "cparser", Version: "1.0.0"},
		&mcp.ServerOptions{
			Instructions: "Parses C headers and sources into a typed model: struct/union/enum/typedef " +
				"definitions with computed layout, and shaped variable initializers. Use parse_c_header " +
				"to list the type definitions of a header, and analyze_c_file to parse a source file; " +
				"pass a header path to analyze_c_file to make that header's types visible to the source.",
			Logger: logger,
		},
	)

	s := &Server{
		mcpServer: mcpServer,
		analyzer:  analyzer.New(abi, logger),
		log:       logger,
	}
	s.registerTools()
	return s
}

// Run starts the MCP server over stdio.
func (s *Server) Run(ctx context.Context) error {
	return s.mcpServer.Run(ctx, &mcp.StdioTransport{})
}

func (s *Server) registerTools() {
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "parse_c_header",
		Description: "Parse a C header file and return its struct/union/enum/typedef definitions as JSON, including computed size/alignment/offset.",
	}, s.handleParseCHeader)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "analyze_c_file",
		Description: "Parse a C source file end to end: types plus every file-scope variable's shaped initializer. Optionally pass a header path to parse first so its types are visible to the source file.",
	}, s.handleAnalyzeCFile)
}
