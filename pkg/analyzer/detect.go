package analyzer

import (
	"strings"

	ts "github.com/tree-sitter/go-tree-sitter"
)

// candidate is a component definition found in a source file, before prop
// extraction.
type candidate struct {
	name        string
	fnNode      *ts.Node // function carrying the props parameter and JSX body
	propsType   *ts.Node // type node from the annotation or forwardRef/memo type args
	rawPropsType string
	doc         *ts.Node
	exported    bool
}

// declarations holds the same-file type declarations a props type can
// resolve against.
type declarations struct {
	interfaces map[string]*ts.Node // name -> interface body
	aliases    map[string]*ts.Node // name -> aliased type node
	extends    map[string][]string // interface name -> extended type names
	source     []byte
}

// scanFile walks the top-level statements of a parsed module and collects
// component candidates plus interface/type-alias declarations.
func scanFile(root *ts.Node, source []byte) ([]candidate, *declarations) {
	decls := &declarations{
		interfaces: make(map[string]*ts.Node),
		aliases:    make(map[string]*ts.Node),
		extends:    make(map[string][]string),
		source:     source,
	}
	var candidates []candidate
	exportedNames := make(map[string]bool)

	for i := uint(0); i < root.ChildCount(); i++ {
		stmt := root.Child(i)
		doc := docComment(root, i)
		exported := false

		node := stmt
		if node.Kind() == "export_statement" {
			exported = true
			if clause := findChildByKind(node, "export_clause"); clause != nil {
				// export { Button, Card }
				for j := uint(0); j < clause.ChildCount(); j++ {
					spec := clause.Child(j)
					if spec.Kind() == "export_specifier" {
						if nameNode := spec.ChildByFieldName("name"); nameNode != nil {
							exportedNames[nameNode.Utf8Text(source)] = true
						}
					}
				}
				continue
			}
			if decl := node.ChildByFieldName("declaration"); decl != nil {
				node = decl
			} else if inner := namedDeclarationChild(node); inner != nil {
				node = inner
			} else {
				continue
			}
		}

		switch node.Kind() {
		case "interface_declaration":
			name := fieldText(node, "name", source)
			if body := node.ChildByFieldName("body"); body != nil && name != "" {
				decls.interfaces[name] = body
				decls.extends[name] = extendedNames(node, source)
			}
		case "type_alias_declaration":
			name := fieldText(node, "name", source)
			if value := node.ChildByFieldName("value"); value != nil && name != "" {
				decls.aliases[name] = value
			}
		case "function_declaration":
			name := fieldText(node, "name", source)
			if !isUppercase(name) {
				break
			}
			if body := node.ChildByFieldName("body"); body == nil || !containsJSX(body) {
				break
			}
			candidates = append(candidates, makeCandidate(name, node, nil, doc, exported, source))
		case "lexical_declaration", "variable_declaration":
			for j := uint(0); j < node.ChildCount(); j++ {
				declr := node.Child(j)
				if declr.Kind() != "variable_declarator" {
					continue
				}
				name := fieldText(declr, "name", source)
				if !isUppercase(name) {
					continue
				}
				value := declr.ChildByFieldName("value")
				if value == nil {
					continue
				}
				if c, ok := candidateFromValue(name, value, doc, exported, source); ok {
					candidates = append(candidates, c)
				}
			}
		}
	}

	for i := range candidates {
		if exportedNames[candidates[i].name] {
			candidates[i].exported = true
		}
	}
	return candidates, decls
}

// extendedNames returns the type names an interface extends. Generic bases
// such as React.HTMLAttributes<T> keep only the identifier head.
func extendedNames(ifaceNode *ts.Node, source []byte) []string {
	clause := findChildByKind(ifaceNode, "extends_type_clause")
	if clause == nil {
		return nil
	}
	var names []string
	for i := uint(0); i < clause.ChildCount(); i++ {
		child := clause.Child(i)
		if !child.IsNamed() {
			continue
		}
		if name := firstTypeIdentifier(child, source); name != "" {
			names = append(names, name)
		}
	}
	return names
}

// namedDeclarationChild finds the declaration inside an export statement when
// the "declaration" field is absent (export default function, etc).
func namedDeclarationChild(export *ts.Node) *ts.Node {
	for i := uint(0); i < export.ChildCount(); i++ {
		child := export.Child(i)
		switch child.Kind() {
		case "function_declaration", "lexical_declaration", "variable_declaration",
			"interface_declaration", "type_alias_declaration":
			return child
		}
	}
	return nil
}

// candidateFromValue inspects a variable initializer for an arrow function,
// function expression, or a forwardRef/memo call wrapping one.
func candidateFromValue(name string, value *ts.Node, doc *ts.Node, exported bool, source []byte) (candidate, bool) {
	switch value.Kind() {
	case "arrow_function", "function_expression":
		if !functionRendersJSX(value) {
			return candidate{}, false
		}
		return makeCandidate(name, value, nil, doc, exported, source), true
	case "call_expression":
		if !isForwardRefCall(value, source) && !isMemoCall(value, source) {
			return candidate{}, false
		}
		fn := innerFunction(value)
		if fn == nil || !functionRendersJSX(fn) {
			return candidate{}, false
		}
		c := makeCandidate(name, fn, callPropsType(value, source), doc, exported, source)
		return c, true
	case "as_expression", "satisfies_expression":
		// const Button = ((props) => ...) as FC<ButtonProps>
		if inner := value.Child(0); inner != nil {
			return candidateFromValue(name, inner, doc, exported, source)
		}
	}
	return candidate{}, false
}

// functionRendersJSX accepts both expression-bodied arrows and statement
// bodies.
func functionRendersJSX(fn *ts.Node) bool {
	if body := fn.ChildByFieldName("body"); body != nil {
		return containsJSX(body)
	}
	return containsJSX(fn)
}

// callPropsType extracts the props type from forwardRef/memo type arguments.
// forwardRef<Ref, Props> carries props second; memo<Props> carries it first.
func callPropsType(call *ts.Node, source []byte) *ts.Node {
	typeArgs := call.ChildByFieldName("type_arguments")
	if typeArgs == nil {
		return nil
	}
	var types []*ts.Node
	for i := uint(0); i < typeArgs.ChildCount(); i++ {
		child := typeArgs.Child(i)
		if child.IsNamed() {
			types = append(types, child)
		}
	}
	switch {
	case isForwardRefCall(call, source) && len(types) >= 2:
		return types[1]
	case len(types) >= 1:
		return types[0]
	}
	return nil
}

func makeCandidate(name string, fn *ts.Node, propsType *ts.Node, doc *ts.Node, exported bool, source []byte) candidate {
	if propsType == nil {
		if param := firstParameter(fn); param != nil {
			if anno := param.ChildByFieldName("type"); anno != nil {
				for i := uint(0); i < anno.ChildCount(); i++ {
					child := anno.Child(i)
					if child.Kind() != ":" {
						propsType = child
						break
					}
				}
			}
		}
	}
	c := candidate{name: name, fnNode: fn, propsType: propsType, doc: doc, exported: exported}
	if propsType != nil {
		c.rawPropsType = propsType.Utf8Text(source)
	}
	return c
}

func fieldText(node *ts.Node, field string, source []byte) string {
	child := node.ChildByFieldName(field)
	if child == nil {
		return ""
	}
	return child.Utf8Text(source)
}

// resolvePropsType maps a props type node to a declared name and, for inline
// object types, the object_type node itself. PropsWithChildren and
// intersections unwrap to the first member that resolves locally.
func resolvePropsType(typeNode *ts.Node, decls *declarations, source []byte) (name string, inline *ts.Node) {
	if typeNode == nil {
		return "", nil
	}
	switch typeNode.Kind() {
	case "type_identifier":
		return typeNode.Utf8Text(source), nil
	case "object_type":
		return "", typeNode
	case "generic_type":
		outer := fieldText(typeNode, "name", source)
		if outer == "PropsWithChildren" || outer == "React.PropsWithChildren" {
			if args := typeNode.ChildByFieldName("type_arguments"); args != nil {
				for i := uint(0); i < args.ChildCount(); i++ {
					if child := args.Child(i); child.IsNamed() {
						return resolvePropsType(child, decls, source)
					}
				}
			}
		}
		return outer, nil
	case "intersection_type", "parenthesized_type":
		var fallbackName string
		var fallbackInline *ts.Node
		for i := uint(0); i < typeNode.ChildCount(); i++ {
			child := typeNode.Child(i)
			if !child.IsNamed() {
				continue
			}
			n, in := resolvePropsType(child, decls, source)
			if n != "" {
				if _, ok := decls.interfaces[n]; ok {
					return n, nil
				}
				if _, ok := decls.aliases[n]; ok {
					return n, nil
				}
				if fallbackName == "" {
					fallbackName = n
				}
			}
			if in != nil && fallbackInline == nil {
				fallbackInline = in
			}
		}
		if fallbackInline != nil {
			return "", fallbackInline
		}
		return fallbackName, nil
	}
	return firstTypeIdentifier(typeNode, source), nil
}

// destructuredDefaults reads `{ variant = "primary", size = 2 }` patterns
// from the props parameter. Returns the default map and the set of
// destructured names.
func destructuredDefaults(fn *ts.Node, source []byte) (defaults map[string]string, names map[string]bool) {
	defaults = make(map[string]string)
	names = make(map[string]bool)
	param := firstParameter(fn)
	if param == nil {
		return defaults, names
	}
	pattern := findChildByKind(param, "object_pattern")
	if pattern == nil {
		if p := param.ChildByFieldName("pattern"); p != nil && p.Kind() == "object_pattern" {
			pattern = p
		}
	}
	if pattern == nil {
		return defaults, names
	}
	for i := uint(0); i < pattern.ChildCount(); i++ {
		entry := pattern.Child(i)
		switch entry.Kind() {
		case "shorthand_property_identifier_pattern":
			names[entry.Utf8Text(source)] = true
		case "object_assignment_pattern":
			left := entry.ChildByFieldName("left")
			right := entry.ChildByFieldName("right")
			if left == nil || right == nil {
				continue
			}
			name := left.Utf8Text(source)
			names[name] = true
			defaults[name] = unquoteString(right.Utf8Text(source))
		case "pair_pattern":
			if key := entry.ChildByFieldName("key"); key != nil {
				names[key.Utf8Text(source)] = true
			}
		}
	}
	return defaults, names
}

// bodyReferencesChildren reports whether a function body mentions
// props.children without the props type declaring it.
func bodyReferencesChildren(fn *ts.Node, source []byte) bool {
	body := fn.ChildByFieldName("body")
	if body == nil {
		body = fn
	}
	return strings.Contains(body.Utf8Text(source), "props.children")
}
