package analyzer

import (
	"strings"

	ts "github.com/tree-sitter/go-tree-sitter"

	"github.com/mde-pach/showkit/pkg/meta"
	"github.com/mde-pach/showkit/pkg/typesim"
)

// rawProp is a property signature before classification.
type rawProp struct {
	Name        string
	Type        string
	Optional    bool
	Description string
}

// objectTypeFields iterates the property signatures of an object_type or
// interface body node, attaching preceding JSDoc comments as descriptions.
func objectTypeFields(body *ts.Node, source []byte) []rawProp {
	var props []rawProp
	var pendingDoc string
	for i := uint(0); i < body.ChildCount(); i++ {
		child := body.Child(i)
		switch child.Kind() {
		case "comment":
			pendingDoc, _ = parseJSDoc(child.Utf8Text(source))
		case "property_signature":
			name := fieldText(child, "name", source)
			if name == "" {
				pendingDoc = ""
				continue
			}
			prop := rawProp{
				Name:        unquoteString(name),
				Type:        paramTypeText(child, source),
				Optional:    findChildByKind(child, "?") != nil,
				Description: pendingDoc,
			}
			props = append(props, prop)
			pendingDoc = ""
		case "method_signature":
			// Callable members surface with their full signature text.
			name := fieldText(child, "name", source)
			if name != "" {
				props = append(props, rawProp{
					Name:        unquoteString(name),
					Type:        "function",
					Optional:    findChildByKind(child, "?") != nil,
					Description: pendingDoc,
				})
			}
			pendingDoc = ""
		case "index_signature":
			pendingDoc = ""
		}
	}
	return props
}

// collectFields resolves a named type to its flattened property list,
// following extends clauses and intersections declared in the same file.
// Extended fields come first; redeclared names override the inherited entry.
func collectFields(name string, decls *declarations, visited map[string]bool) ([]rawProp, bool) {
	if visited[name] {
		return nil, false
	}
	visited[name] = true

	if body, ok := decls.interfaces[name]; ok {
		var props []rawProp
		for _, base := range decls.extends[name] {
			if baseProps, found := collectFields(base, decls, visited); found {
				props = mergeFields(props, baseProps)
			}
		}
		props = mergeFields(props, objectTypeFields(body, decls.source))
		return props, true
	}
	if value, ok := decls.aliases[name]; ok {
		return typeNodeFields(value, decls, visited)
	}
	return nil, false
}

// typeNodeFields extracts fields from a type node: object literals directly,
// intersections by merging members, named references by resolution.
func typeNodeFields(typeNode *ts.Node, decls *declarations, visited map[string]bool) ([]rawProp, bool) {
	switch typeNode.Kind() {
	case "object_type":
		return objectTypeFields(typeNode, decls.source), true
	case "intersection_type", "parenthesized_type":
		var props []rawProp
		found := false
		for i := uint(0); i < typeNode.ChildCount(); i++ {
			child := typeNode.Child(i)
			if !child.IsNamed() {
				continue
			}
			if memberProps, ok := typeNodeFields(child, decls, visited); ok {
				props = mergeFields(props, memberProps)
				found = true
			}
		}
		return props, found
	case "type_identifier":
		return collectFields(typeNode.Utf8Text(decls.source), decls, visited)
	case "generic_type":
		name := fieldText(typeNode, "name", decls.source)
		if name == "PropsWithChildren" || name == "React.PropsWithChildren" {
			if args := typeNode.ChildByFieldName("type_arguments"); args != nil {
				for i := uint(0); i < args.ChildCount(); i++ {
					if child := args.Child(i); child.IsNamed() {
						return typeNodeFields(child, decls, visited)
					}
				}
			}
		}
		return nil, false
	}
	return nil, false
}

// mergeFields appends overlay onto base, replacing entries that share a name.
func mergeFields(base, overlay []rawProp) []rawProp {
	index := make(map[string]int, len(base))
	for i, p := range base {
		index[p.Name] = i
	}
	for _, p := range overlay {
		if i, ok := index[p.Name]; ok {
			base[i] = p
			continue
		}
		index[p.Name] = len(base)
		base = append(base, p)
	}
	return base
}

// lookupFunc adapts same-file declarations to the shape expansion interface.
func lookupFunc(decls *declarations) typesim.LookupFunc {
	return func(name string) ([]typesim.RawField, bool) {
		props, ok := collectFields(name, decls, make(map[string]bool))
		if !ok {
			return nil, false
		}
		fields := make([]typesim.RawField, 0, len(props))
		for _, p := range props {
			fields = append(fields, typesim.RawField{
				Name:     p.Name,
				Type:     p.Type,
				Optional: p.Optional,
			})
		}
		return fields, true
	}
}

// buildProp classifies a raw property into its final descriptor. Renderable
// kind wins over enum values, which win over nested field expansion.
func buildProp(raw rawProp, defaultValue string, hasDefault bool, decls *declarations) meta.PropDescriptor {
	simplified := typesim.Simplify(raw.Type)
	prop := meta.PropDescriptor{
		Name:        raw.Name,
		Type:        simplified,
		RawType:     raw.Type,
		Required:    !raw.Optional && !hasDefault,
		Description: raw.Description,
	}
	if hasDefault {
		prop.Default = defaultValue
	}

	if kind := typesim.ClassifyRenderable(raw.Name, raw.Type); kind != meta.RenderNone {
		prop.Kind = kind
		return prop
	}
	if values := typesim.ExtractLiteralValues(simplified); len(values) > 0 {
		prop.Type = "enum"
		prop.Values = values
		return prop
	}
	lookup := lookupFunc(decls)
	if item := typesim.AnalyzeArrayItem(simplified, lookup); item != nil {
		prop.Elem = item
		return prop
	}
	if fields := typesim.ExpandNamed(simplified, lookup); len(fields) > 0 {
		prop.Fields = fields
	}
	return prop
}

// typeDeclaresChildren reports whether a resolved props shape declares a
// children member, or the raw annotation wraps with PropsWithChildren.
func typeDeclaresChildren(props []rawProp, rawPropsType string) bool {
	for _, p := range props {
		if p.Name == "children" {
			return true
		}
	}
	return strings.Contains(rawPropsType, "PropsWithChildren")
}
