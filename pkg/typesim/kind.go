package typesim

import (
	"regexp"
	"strings"

	"github.com/mde-pach/showkit/pkg/meta"
)

// Type-shape signals checked in precedence order. Structured-data shapes are
// rejected before any renderable match: a prop whose type is an array of
// objects, or an object literal containing a renderable field, is structured
// data with a renderable member, not a direct render slot.
var (
	iconTypeRe    = regexp.MustCompile(`\b(LucideIcon|IconType|IconComponent|SVGIcon|IconProps)\b`)
	elementTypeRe = regexp.MustCompile(`\b(ReactElement|JSX\.Element|ComponentType|ElementType|FC)\b`)
	nodeTypeRe    = regexp.MustCompile(`\bReactNode\b`)
	renderSignal  = regexp.MustCompile(`\b(ReactNode|ReactElement|Element|ComponentType|ElementType)\b`)

	numericLiteralRe = regexp.MustCompile(`^-?\d`)
)

// confidentNames always resolve to a kind when the type text alone is
// ambiguous (bare `enum`, `unknown`, empty).
var confidentNames = map[string]meta.RenderKind{
	"icon":      meta.RenderIcon,
	"logo":      meta.RenderIcon,
	"badge":     meta.RenderElement,
	"avatar":    meta.RenderElement,
	"thumbnail": meta.RenderElement,
	"action":    meta.RenderNode,
	"actions":   meta.RenderNode,
	"prefix":    meta.RenderNode,
	"suffix":    meta.RenderNode,
	"trigger":   meta.RenderNode,
	"label":     meta.RenderNode,
}

// lessConfidentNames resolve only when the raw type independently carries a
// Node/Element signal. The names are common enough as plain data props that
// the name alone is not evidence.
var lessConfidentNames = map[string]meta.RenderKind{
	"content": meta.RenderNode,
	"header":  meta.RenderNode,
	"footer":  meta.RenderNode,
	"title":   meta.RenderNode,
	"extra":   meta.RenderNode,
	"addon":   meta.RenderNode,
	"media":   meta.RenderElement,
	"image":   meta.RenderElement,
}

// ClassifyRenderable determines whether a prop expects renderable content
// and of which kind. Type-based detection takes precedence; name-based
// heuristics only apply when the type text is ambiguous.
func ClassifyRenderable(propName, rawType string) meta.RenderKind {
	rawType = strings.TrimSpace(rawType)

	if isStructuredShape(rawType) {
		return meta.RenderNone
	}

	if rawType != "" && !isAmbiguousType(rawType) {
		switch {
		case iconTypeRe.MatchString(rawType):
			return meta.RenderIcon
		case elementTypeRe.MatchString(rawType):
			// Icon constructors are typically typed as ComponentType over a
			// props shape with a size; treat those as icons.
			if strings.Contains(rawType, "ComponentType") && strings.Contains(rawType, "size") {
				return meta.RenderIcon
			}
			return meta.RenderElement
		case nodeTypeRe.MatchString(rawType):
			return meta.RenderNode
		}
	}

	// A type that resolved to plain data (string, number, literal union)
	// settles the question; prop names carry no weight against it.
	if isPlainDataType(rawType) {
		return meta.RenderNone
	}

	name := strings.ToLower(propName)

	if kind, ok := confidentNames[name]; ok {
		return kind
	}
	if strings.HasSuffix(name, "icon") && name != "" {
		return meta.RenderIcon
	}

	if kind, ok := lessConfidentNames[name]; ok {
		if renderSignal.MatchString(rawType) {
			return kind
		}
	}

	return meta.RenderNone
}

// isPlainDataType reports whether every union member is a primitive or a
// literal, meaning the prop holds data rather than renderable content.
func isPlainDataType(rawType string) bool {
	simplified := Simplify(rawType)
	if isAmbiguousType(simplified) {
		return false
	}
	for _, m := range SplitUnion(simplified) {
		switch {
		case isQuoted(m):
		case primitiveTokens[m]:
		case numericLiteralRe.MatchString(m):
		default:
			return false
		}
	}
	return true
}

// isAmbiguousType reports whether the type text carries no usable shape
// information, so only name heuristics can decide.
func isAmbiguousType(rawType string) bool {
	switch rawType {
	case "", "enum", "unknown", "any":
		return true
	}
	return false
}

// isStructuredShape reports whether the raw type is an array of object
// literals, an object literal, or an array of named object types that
// contains a renderable member. Such props are structured data.
func isStructuredShape(rawType string) bool {
	trimmed := strings.TrimSpace(rawType)

	isObjectLiteral := strings.HasPrefix(trimmed, "{")
	isObjectArray := strings.HasPrefix(trimmed, "Array<{") ||
		(isObjectLiteral && strings.HasSuffix(trimmed, "[]"))

	if !isObjectLiteral && !isObjectArray {
		return false
	}
	return renderSignal.MatchString(trimmed)
}
