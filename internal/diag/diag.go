// Package diag carries the per-declaration diagnostics §7 of the
// specification requires (UnknownType, UnresolvedExpression,
// MalformedInitializer, CyclicTypedef). These never abort a parse; they are
// recorded and logged, per the error taxonomy's propagation policy.
package diag

import (
	"fmt"
	"log/slog"
)

// Kind tags a diagnostic with the taxonomy category it belongs to.
type Kind string

const (
	UnknownType          Kind = "unknown_type"
	UnresolvedExpression Kind = "unresolved_expression"
	MalformedInitializer Kind = "malformed_initializer"
	CyclicTypedef        Kind = "cyclic_typedef"
)

// Location is a source position, mirroring TypeRecord/VariableRecord's
// location field.
type Location struct {
	File string `json:"file"`
	Line int    `json:"line"`
	Col  int    `json:"column"`
}

func (l Location) String() string {
	if l.File == "" {
		return fmt.Sprintf("%d:%d", l.Line, l.Col)
	}
	return fmt.Sprintf("%s:%d:%d", l.File, l.Line, l.Col)
}

// Diagnostic is one non-fatal finding attached to a declaration.
type Diagnostic struct {
	Kind     Kind     `json:"kind"`
	Message  string   `json:"message"`
	Location Location `json:"location"`
}

// Sink accumulates diagnostics for a single file pass and forwards each to a
// logger as it's recorded, the way the teacher's MCP server logs through a
// single *slog.Logger handed down from main.
type Sink struct {
	log   *slog.Logger
	items []Diagnostic
}

// NewSink creates a Sink backed by logger. A nil logger is replaced with
// slog.Default().
func NewSink(logger *slog.Logger) *Sink {
	if logger == nil {
		logger = slog.Default()
	}
	return &Sink{log: logger}
}

// Warn records and logs a diagnostic.
func (s *Sink) Warn(kind Kind, loc Location, format string, args ...any) {
	d := Diagnostic{Kind: kind, Message: fmt.Sprintf(format, args...), Location: loc}
	s.items = append(s.items, d)
	s.log.Warn(d.Message, "kind", string(kind), "location", loc.String())
}

// Items returns every diagnostic recorded so far.
func (s *Sink) Items() []Diagnostic {
	return s.items
}
