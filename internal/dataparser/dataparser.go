package dataparser

import (
	"log/slog"

	"github.com/kon1790/cparser/internal/cst"
	"github.com/kon1790/cparser/internal/diag"
	"github.com/kon1790/cparser/internal/typesys"
)

// ctx carries the per-file state threaded through every declaration, like
// typeparser's ctx.
type ctx struct {
	tm   *typesys.Manager
	dm   *Manager
	file string
	log  *slog.Logger
}

func (c *ctx) loc(n cst.Node) diag.Location {
	line, col := n.Start()
	return diag.Location{File: c.file, Line: line, Col: col}
}

// Parse walks root's direct children (a translation_unit) and emits one
// VariableRecord per file-scope, non-function declaration into dm (§4.4).
// It must run after typeparser.Parse has populated tm for this file.
func Parse(tm *typesys.Manager, dm *Manager, root cst.Node, file string, logger *slog.Logger) {
	if logger == nil {
		logger = slog.Default()
	}
	c := &ctx{tm: tm, dm: dm, file: file, log: logger}
	for _, n := range root.Children() {
		if n.Kind() == "declaration" {
			c.handleDeclaration(n)
		}
	}
}

// handleDeclaration implements steps 1-10 of §4.4 for one declaration node,
// which may introduce several comma-separated declarators sharing one base
// type.
func (c *ctx) handleDeclaration(n cst.Node) {
	if c.isFunctionDeclaration(n) {
		return
	}

	base, nested, quals := c.declarationBaseType(n)
	if base == "" {
		return
	}

	for _, child := range n.Children() {
		declarator := child
		var initNode cst.Node
		if child.Kind() == "init_declarator" {
			if d := child.Child("declarator"); d != nil {
				declarator = d
			}
			initNode = child.Child("value")
		} else if !isDeclaratorKind(child.Kind()) {
			continue
		}

		if quals.StorageClass == "extern" && initNode == nil {
			continue
		}
		c.emitVariable(n, declarator, initNode, base, nested, quals)
	}
}

func isDeclaratorKind(kind string) bool {
	switch kind {
	case "identifier", "pointer_declarator", "array_declarator", "init_declarator":
		return true
	}
	return false
}

// isFunctionDeclaration detects a bare function declaration/prototype: a
// top-level function_declarator not wrapped in a pointer_declarator (which
// would instead be a function-pointer variable).
func (c *ctx) isFunctionDeclaration(n cst.Node) bool {
	for _, child := range n.Children() {
		if child.Kind() == "function_declarator" {
			return true
		}
		if child.Kind() == "init_declarator" {
			if d := child.Child("declarator"); d != nil && d.Kind() == "function_declarator" {
				return true
			}
		}
	}
	return false
}

// declarationBaseType mirrors typedef.go's base-type extraction: qualifiers,
// storage class, and the base type itself (primitive, named, or a nested
// struct/union/enum specifier, registered by this point by the type pass —
// referenced here only by its canonical name).
func (c *ctx) declarationBaseType(n cst.Node) (string, *typesys.TypeRecord, typesys.Qualifiers) {
	var quals typesys.Qualifiers
	var base string
	var nested *typesys.TypeRecord

	typeNode := n.Child("type")
	for _, child := range n.Children() {
		switch child.Kind() {
		case "type_qualifier":
			switch child.Text() {
			case "const":
				quals.Const = true
			case "volatile":
				quals.Volatile = true
			case "restrict":
				quals.Restrict = true
			}
		case "storage_class_specifier":
			quals.StorageClass = child.Text()
		case "struct_specifier", "union_specifier", "enum_specifier":
			name := child.Child("name")
			if name == nil {
				// An anonymous composite declared inline at variable scope
				// with no typedef to inherit a name from is unusual but
				// valid C (each variable gets its own unique type); the type
				// pass already registered it under a synthesized tag when it
				// walked this same node.
				continue
			}
			tag := name.Text()
			if child.Kind() == "struct_specifier" {
				tag = "struct " + tag
			} else if child.Kind() == "union_specifier" {
				tag = "union " + tag
			} else {
				tag = "enum " + tag
			}
			base = tag
			if rec, ok := c.tm.GetStructInfo(tag); ok {
				nested = rec
			} else if rec, ok := c.tm.GetUnionInfo(tag); ok {
				nested = rec
			} else if rec, ok := c.tm.GetEnumInfo(tag); ok {
				nested = rec
			}
		case "primitive_type", "type_identifier", "sized_type_specifier":
			if typeNode != nil && !sameNode(child, typeNode) && base != "" {
				continue
			}
			if base == "" {
				base = child.Text()
			} else {
				base = base + " " + child.Text()
			}
		}
	}
	return base, nested, quals
}

func sameNode(a, b cst.Node) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	al, ac := a.Start()
	bl, bc := b.Start()
	ael, aec := a.End()
	bel, bec := b.End()
	return al == bl && ac == bc && ael == bel && aec == bec
}
