package typesim

import (
	"regexp"
	"strings"
	"unicode"
)

// primitiveTokens are TypeScript built-ins and literal keywords that can
// never be literal enum values.
var primitiveTokens = map[string]bool{
	"string": true, "number": true, "boolean": true, "bigint": true,
	"symbol": true, "object": true, "any": true, "unknown": true,
	"never": true, "void": true, "null": true, "undefined": true,
	"true": true, "false": true,
	"Function": true, "Date": true, "Error": true, "RegExp": true,
	"Element": true, "ReactNode": true, "ReactElement": true,
	"ReactChild": true, "ComponentType": true, "ElementType": true,
	"FC": true, "CSSProperties": true,
}

// namespaceTokenRe matches known namespace/generic prefixes that always
// denote types, not values.
var namespaceTokenRe = regexp.MustCompile(
	`^(React|JSX|Promise|Record|Array|Function|Set|Map|Node|Fragment|` +
		`Readonly|Partial|Required|Pick|Omit|Exclude|Extract|Dispatch|` +
		`SetStateAction|Ref|RefObject|MutableRefObject|HTML\w*|SVG\w*|CSS\w*)\b`)

// pascalCaseMaxEnumLen is the cutoff for the PascalCase-length heuristic: a
// single capitalized word longer than this is presumed a type name rather
// than an enum value. Long PascalCase enum members are misclassified on
// purpose; the cutoff trades recall for precision and is pinned by tests so
// it can be tuned in one place.
const pascalCaseMaxEnumLen = 6

// IsTypeNameToken reports whether a union member token is a TypeScript/JS
// built-in or library type name rather than a real literal enum value.
func IsTypeNameToken(token string) bool {
	token = strings.TrimSpace(token)
	if token == "" {
		return true
	}

	if isQuoted(token) {
		return false
	}
	if primitiveTokens[token] {
		return true
	}
	if namespaceTokenRe.MatchString(token) {
		return true
	}
	// Generic arguments, arrow functions, array/object-literal syntax.
	if strings.ContainsAny(token, "<>") || strings.Contains(token, "=>") ||
		strings.ContainsAny(token, "[]{}()") || strings.Contains(token, ".") {
		return true
	}
	// Numeric literals are values.
	if r := rune(token[0]); unicode.IsDigit(r) || r == '-' {
		return false
	}
	// PascalCase-length heuristic.
	if unicode.IsUpper(rune(token[0])) && len(token) > pascalCaseMaxEnumLen && isIdentifier(token) {
		return true
	}
	return false
}

func isIdentifier(s string) bool {
	for i, r := range s {
		if !unicode.IsLetter(r) && r != '_' && !(i > 0 && unicode.IsDigit(r)) {
			return false
		}
	}
	return s != ""
}
