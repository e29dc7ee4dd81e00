package typesim

import (
	"strings"

	"github.com/mde-pach/showkit/pkg/meta"
)

// RawField is one member of a named interface/object type, as read from the
// source by the caller.
type RawField struct {
	Name     string
	Type     string
	Optional bool
}

// LookupFunc resolves a named type to its member list. The analyzer supplies
// a closure over the file's declarations; typesim stays AST-agnostic.
type LookupFunc func(name string) ([]RawField, bool)

// maxExpandDepth bounds recursion through mutually referential named types.
const maxExpandDepth = 6

// ExpandNamed recursively expands a named interface/object type into field
// descriptors, re-applying literal and renderable classification per field.
// Returns nil when the name does not resolve, is a Record (left opaque), or
// a cycle is hit.
func ExpandNamed(typeName string, lookup LookupFunc) []meta.Field {
	return expandNamed(typeName, lookup, map[string]bool{}, 0)
}

func expandNamed(typeName string, lookup LookupFunc, visited map[string]bool, depth int) []meta.Field {
	typeName = strings.TrimSpace(typeName)
	if typeName == "" || depth > maxExpandDepth || visited[typeName] {
		return nil
	}
	// Record<K, V> is a dictionary, not a fixed shape; leave it opaque.
	if strings.HasPrefix(typeName, "Record<") {
		return nil
	}

	raws, ok := lookup(typeName)
	if !ok {
		return nil
	}

	visited[typeName] = true
	defer delete(visited, typeName)

	fields := make([]meta.Field, 0, len(raws))
	for _, rf := range raws {
		f := meta.Field{
			Name:     rf.Name,
			Type:     Simplify(rf.Type),
			Optional: rf.Optional,
		}

		if kind := ClassifyRenderable(rf.Name, rf.Type); kind != meta.RenderNone {
			f.Kind = kind
		} else if values := ExtractLiteralValues(rf.Type); len(values) > 0 {
			f.Values = values
		} else if isBareNamedType(f.Type) {
			f.Fields = expandNamed(f.Type, lookup, visited, depth+1)
		}

		fields = append(fields, f)
	}
	return fields
}

// AnalyzeArrayItem inspects an array-typed prop (`T[]` or `Array<T>`) and
// describes its element type. Returns nil for non-array types.
func AnalyzeArrayItem(rawType string, lookup LookupFunc) *meta.ArrayItem {
	elem, ok := arrayElemType(Simplify(rawType))
	if !ok {
		return nil
	}

	item := &meta.ArrayItem{Type: elem}

	if ClassifyRenderable("", elem) != meta.RenderNone || renderSignal.MatchString(elem) {
		item.Renderable = true
		return item
	}

	if isBareNamedType(elem) && lookup != nil {
		item.Fields = ExpandNamed(elem, lookup)
	}
	return item
}

// arrayElemType extracts T from `T[]` or `Array<T>`.
func arrayElemType(t string) (string, bool) {
	t = strings.TrimSpace(t)
	if strings.HasSuffix(t, "[]") {
		return strings.TrimSpace(t[:len(t)-2]), true
	}
	if strings.HasPrefix(t, "Array<") && strings.HasSuffix(t, ">") {
		return strings.TrimSpace(t[len("Array<") : len(t)-1]), true
	}
	return "", false
}

// isBareNamedType reports whether the simplified type is a single named
// (non-primitive, non-generic) type reference worth expanding.
func isBareNamedType(t string) bool {
	if t == "" || primitiveTokens[t] {
		return false
	}
	if strings.ContainsAny(t, "<>|&(){}[]\"'` ") {
		return false
	}
	if !isIdentifier(t) {
		return false
	}
	return t[0] >= 'A' && t[0] <= 'Z'
}
