package typeparser

import (
	"strings"

	"github.com/kon1790/cparser/internal/cst"
	"github.com/kon1790/cparser/internal/typesys"
)

// handleTypedef implements §4.3's typedef handler: collect the base type
// (registering a nested struct/union/enum specifier first, naming it after
// the typedef itself when the specifier carries no tag of its own), then
// walk every declarator. Each declarator yields one alias: a plain
// identifier, a pointer declarator (stars become pointer depth), or a
// function declarator (a function-pointer alias). An untagged composite
// takes the first declarator's name as its tag, and a declarator with that
// same name then adds no typedef entry of its own: registerTypedefAlias
// skips an alias whose name equals its base.
func (c *ctx) handleTypedef(n cst.Node) {
	typeNode := n.Child("type")
	if typeNode == nil {
		typeNode = firstBaseTypeChild(n)
	}

	var base string
	var nested *typesys.TypeRecord
	firstDeclaratorName := firstAliasName(n, typeNode)

	if typeNode != nil {
		switch typeNode.Kind() {
		case "struct_specifier":
			nested = c.registerStructOrUnion(typeNode, typesys.KindStruct, tagOrDefault(typeNode, firstDeclaratorName))
			base = nested.Name
		case "union_specifier":
			nested = c.registerStructOrUnion(typeNode, typesys.KindUnion, tagOrDefault(typeNode, firstDeclaratorName))
			base = nested.Name
		case "enum_specifier":
			nested = c.registerEnum(typeNode, tagOrDefault(typeNode, firstDeclaratorName))
			base = nested.Name
		default:
			base = typeNode.Text()
		}
	}
	if base == "" {
		base = "int"
	}

	for _, child := range n.Children() {
		if sameNode(child, typeNode) {
			continue
		}
		switch child.Kind() {
		case "type_identifier":
			c.registerTypedefAlias(child.Text(), base, 0, n)
		case "pointer_declarator":
			depth, name := countPointerDepth(child)
			if name == "" {
				continue
			}
			c.registerTypedefAlias(name, base, depth, n)
		case "function_declarator":
			c.registerFunctionPointerTypedef(child, base, n)
		case "array_declarator":
			name := declaratorName(child)
			if name == "" {
				continue
			}
			c.registerTypedefAlias(name, base, 0, n)
		}
	}
}

// firstBaseTypeChild is the field-less fallback for grammars where the
// base type isn't exposed under a "type" field name: the first primitive,
// named, or composite type specifier encountered.
func firstBaseTypeChild(n cst.Node) cst.Node {
	for _, child := range n.Children() {
		switch child.Kind() {
		case "primitive_type", "sized_type_specifier", "type_identifier", "struct_specifier", "union_specifier", "enum_specifier":
			return child
		}
	}
	return nil
}

func (c *ctx) registerTypedefAlias(name, base string, pointerDepth int, loc cst.Node) {
	if name == "" || name == base {
		return
	}
	spelling := base
	if pointerDepth > 0 {
		spelling = base + " " + strings.Repeat("*", pointerDepth)
	}
	c.tm.RegisterType(&typesys.TypeRecord{
		Kind:     typesys.KindTypedef,
		Name:     name,
		BaseType: spelling,
		Location: c.loc(loc),
	})
	if pointerDepth > 0 {
		c.tm.MarkPointerAlias(name)
	}
}

// registerFunctionPointerTypedef builds the canonical `<ret> (*) (<params>)`
// spelling §4.3 specifies for a function-pointer typedef and registers it
// alongside structured FunctionInfo.
func (c *ctx) registerFunctionPointerTypedef(fnDecl cst.Node, returnBase string, loc cst.Node) {
	// function_declarator wraps a parenthesized_declarator holding the
	// pointer and name, plus a parameter_list sibling.
	inner := fnDecl.Child("declarator")
	if inner == nil {
		inner = cst.FirstChildOfKind(fnDecl, "parenthesized_declarator")
	}
	var name string
	var returnDepth int
	if inner != nil {
		returnDepth, name = countPointerDepth(inner)
	}
	if name == "" {
		return
	}

	params := fnDecl.Child("parameters")
	if params == nil {
		params = cst.FirstChildOfKind(fnDecl, "parameter_list")
	}

	info := &typesys.FunctionInfo{ReturnType: returnBase, ReturnPointerDepth: returnDepth}
	var paramSpellings []string
	if params != nil {
		for _, p := range cst.ChildrenOfKind(params, "parameter_declaration") {
			ptype, pdepth := parameterType(p)
			info.Parameters = append(info.Parameters, typesys.ParamInfo{Type: ptype, PointerDepth: pdepth})
			paramSpellings = append(paramSpellings, ptype+strings.Repeat("*", pdepth))
		}
		if cst.FirstChildOfKind(params, "variadic_parameter") != nil {
			info.Variadic = true
			paramSpellings = append(paramSpellings, "...")
		}
	}

	ret := returnBase + strings.Repeat("*", returnDepth)
	spelling := ret + " (*) (" + strings.Join(paramSpellings, ", ") + ")"

	c.tm.RegisterType(&typesys.TypeRecord{
		Kind:         typesys.KindTypedef,
		Name:         name,
		BaseType:     spelling,
		FunctionInfo: info,
		Location:     c.loc(loc),
	})
	c.tm.MarkPointerAlias(name)
}

func parameterType(p cst.Node) (string, int) {
	var base string
	depth := 0
	for _, child := range p.Children() {
		switch child.Kind() {
		case "primitive_type", "type_identifier", "sized_type_specifier":
			if base == "" {
				base = child.Text()
			} else {
				base = base + " " + child.Text()
			}
		case "pointer_declarator", "abstract_pointer_declarator":
			d, _ := countPointerDepth(child)
			depth = d
		}
	}
	if base == "" {
		base = "void"
	}
	return base, depth
}

// countPointerDepth counts leading `*` layers in a pointer_declarator chain
// and returns the name at its core, if any.
func countPointerDepth(n cst.Node) (int, string) {
	depth := 0
	cur := n
	for cur != nil && cur.Kind() == "pointer_declarator" {
		depth++
		next := innerDeclarator(cur)
		cur = next
	}
	if cur == nil {
		return depth, ""
	}
	return depth, declaratorName(cur)
}

func declaratorName(n cst.Node) string {
	switch n.Kind() {
	case "field_identifier", "type_identifier", "identifier":
		return n.Text()
	default:
		if inner := innerDeclarator(n); inner != nil {
			return declaratorName(inner)
		}
		return ""
	}
}

// firstAliasName scans a type_definition for its first plain or pointer
// declarator name, used to tag an inline untagged composite after the
// typedef it's declared within (e.g. `typedef struct { ... } Handle;`).
// typeNode is excluded from the scan since it is the base type, not a
// declarator, even when its Kind would otherwise match.
func firstAliasName(n, typeNode cst.Node) string {
	for _, child := range n.Children() {
		if sameNode(child, typeNode) {
			continue
		}
		switch child.Kind() {
		case "type_identifier":
			return child.Text()
		case "pointer_declarator":
			_, name := countPointerDepth(child)
			if name != "" {
				return name
			}
		}
	}
	return ""
}

// sameNode compares two Node wrappers by source span rather than pointer
// identity, since the adapter allocates a fresh wrapper on every traversal.
func sameNode(a, b cst.Node) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	al, ac := a.Start()
	bl, bc := b.Start()
	if al != bl || ac != bc {
		return false
	}
	ael, aec := a.End()
	bel, bec := b.End()
	return ael == bel && aec == bec && a.Kind() == b.Kind()
}

func tagOrDefault(specifier cst.Node, fallback string) string {
	if nameNode := specifier.Child("name"); nameNode != nil {
		return nameNode.Text()
	}
	return fallback
}
