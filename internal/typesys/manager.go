package typesys

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/kon1790/cparser/internal/diag"
	"github.com/kon1790/cparser/internal/exprparser"
)

// scope holds one tier (current-file or global) of the symbol table.
type scope struct {
	types      map[string]*TypeRecord
	macros     map[string]exprparser.Result
	enumValues map[string]int64
}

func newScope() *scope {
	return &scope{
		types:      make(map[string]*TypeRecord),
		macros:     make(map[string]exprparser.Result),
		enumValues: make(map[string]int64),
	}
}

// Manager is the TypeManager (§4.2): the sole authority on declared types,
// macros, and pointer aliases, partitioned into a current-file scope and an
// imported-global scope, with current-file shadowing global on lookup.
type Manager struct {
	abi     ABI
	current *scope
	global  *scope

	pointerAliases map[string]bool

	log   *slog.Logger
	diags *diag.Sink

	// kindCache memoizes classification lookups; invalidated wholesale on
	// every mutating operation, per §4.2's caching guarantee.
	kindCache map[string]Kind
}

// NewManager creates a TypeManager targeting the given ABI, with diagnostics
// routed to sink (a fresh sink is created if nil).
func NewManager(abi ABI, logger *slog.Logger, sink *diag.Sink) *Manager {
	if sink == nil {
		sink = diag.NewSink(logger)
	}
	return &Manager{
		abi:            abi,
		current:        newScope(),
		global:         newScope(),
		pointerAliases: make(map[string]bool),
		log:            logger,
		diags:          sink,
		kindCache:      make(map[string]Kind),
	}
}

// Diagnostics returns the accumulated diagnostic sink.
func (m *Manager) Diagnostics() *diag.Sink { return m.diags }

func (m *Manager) invalidateCache() {
	m.kindCache = make(map[string]Kind)
}

// canonicalKey builds the lookup key a TypeRecord is stored under: composite
// kinds are stored WITH their struct/union/enum prefix (§3's invariant),
// everything else by bare name.
func canonicalKey(kind Kind, name string) string {
	switch kind {
	case KindStruct:
		return withPrefix("struct", name)
	case KindUnion:
		return withPrefix("union", name)
	case KindEnum:
		return withPrefix("enum", name)
	default:
		return name
	}
}

func withPrefix(prefix, name string) string {
	name = strings.TrimSpace(name)
	if strings.HasPrefix(name, prefix+" ") {
		return name
	}
	return prefix + " " + name
}

// stripPrefix removes a leading struct/union/enum tag so callers may query
// with or without it.
func stripPrefix(name string) string {
	for _, p := range []string{"struct ", "union ", "enum "} {
		if strings.HasPrefix(name, p) {
			return strings.TrimSpace(strings.TrimPrefix(name, p))
		}
	}
	return name
}

// lookupKeys returns the candidate keys to try for a bare or prefixed name,
// across struct/union/enum, so "Foo" and "struct Foo" both resolve.
func lookupKeys(name string) []string {
	bare := stripPrefix(name)
	if bare != name {
		return []string{name}
	}
	return []string{name, "struct " + bare, "union " + bare, "enum " + bare}
}

// RegisterType adds a TypeRecord to the current-file scope. Overwrites are
// rejected unless the existing entry is a forward declaration (Incomplete)
// and the new one is a definition, per §4.2.
func (m *Manager) RegisterType(rec *TypeRecord) {
	key := canonicalKey(rec.Kind, rec.Name)
	if existing, ok := m.current.types[key]; ok {
		if !(existing.Incomplete && !rec.Incomplete) {
			m.diags.Warn(diag.UnknownType, rec.Location,
				"redeclaration of %s %q ignored (existing definition kept)", rec.Kind, rec.Name)
			return
		}
	}
	m.current.types[key] = rec
	if rec.Kind == KindEnum {
		for _, ev := range rec.Values {
			if _, dup := m.current.enumValues[ev.Name]; !dup {
				m.current.enumValues[ev.Name] = ev.Value
			}
		}
	}
	m.invalidateCache()
}

// AddMacroDefinition adds an object-like #define to the current-file scope.
func (m *Manager) AddMacroDefinition(name string, value exprparser.Result) {
	m.current.macros[name] = value
	m.invalidateCache()
}

// MarkPointerAlias records that typedef name resolves through one level of
// pointer indirection beyond what its spelled base already carries.
func (m *Manager) MarkPointerAlias(name string) {
	m.pointerAliases[name] = true
	m.invalidateCache()
}

// ResetCurrentTypeInfo clears the current-file scope before starting a new
// file, per §4.2.
func (m *Manager) ResetCurrentTypeInfo() {
	m.current = newScope()
	m.invalidateCache()
}

// MergeTypeInfo copies other's current-file scope (types, macros, enum
// values) and other's pointer aliases into this Manager: into its global
// scope when toGlobal is true, else into its current scope. Used to
// promote a finished file's types into a shared import scope.
func (m *Manager) MergeTypeInfo(other *Manager, toGlobal bool) {
	dst := m.current
	if toGlobal {
		dst = m.global
	}
	src := other.current
	for k, v := range src.types {
		dst.types[k] = v
	}
	for k, v := range src.macros {
		dst.macros[k] = v
	}
	for k, v := range src.enumValues {
		dst.enumValues[k] = v
	}
	for k := range other.pointerAliases {
		m.pointerAliases[k] = true
	}
	m.invalidateCache()
}

// lookupType finds a TypeRecord, current-file shadowing global, trying
// struct/union/enum-prefixed forms when the caller queried a bare name.
func (m *Manager) lookupType(name string) (*TypeRecord, bool) {
	for _, key := range lookupKeys(name) {
		if rec, ok := m.current.types[key]; ok {
			return rec, true
		}
	}
	for _, key := range lookupKeys(name) {
		if rec, ok := m.global.types[key]; ok {
			return rec, true
		}
	}
	return nil, false
}

func (m *Manager) lookupMacro(name string) (exprparser.Result, bool) {
	if v, ok := m.current.macros[name]; ok {
		return v, true
	}
	v, ok := m.global.macros[name]
	return v, ok
}

func (m *Manager) lookupEnumValue(name string) (int64, bool) {
	if v, ok := m.current.enumValues[name]; ok {
		return v, true
	}
	v, ok := m.global.enumValues[name]
	return v, ok
}

// Symbols returns an exprparser.Symbols view over this Manager's live
// enum/macro tables, for ExpressionParser calls made while walking.
func (m *Manager) Symbols() exprparser.Symbols { return managerSymbols{m} }

type managerSymbols struct{ m *Manager }

func (s managerSymbols) Enum(name string) (int64, bool)           { return s.m.lookupEnumValue(name) }
func (s managerSymbols) Macro(name string) (exprparser.Result, bool) { return s.m.lookupMacro(name) }

// IsPointerAliasName reports whether name was registered via MarkPointerAlias.
func (m *Manager) IsPointerAliasName(name string) bool {
	return m.pointerAliases[stripPrefix(name)] || m.pointerAliases[name]
}

// ABI returns the target ABI this manager computes layouts for.
func (m *Manager) ABI() ABI { return m.abi }

func (m *Manager) errf(format string, args ...any) error {
	return fmt.Errorf(format, args...)
}
