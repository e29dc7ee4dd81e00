package analyzer

import (
	"unicode"

	ts "github.com/tree-sitter/go-tree-sitter"
)

// findChildByKind returns the first direct child of the given kind.
func findChildByKind(node *ts.Node, kind string) *ts.Node {
	for i := uint(0); i < node.ChildCount(); i++ {
		child := node.Child(i)
		if child.Kind() == kind {
			return child
		}
	}
	return nil
}

// containsJSX recursively checks if any descendant is a JSX element.
func containsJSX(node *ts.Node) bool {
	if node == nil {
		return false
	}
	switch node.Kind() {
	case "jsx_element", "jsx_self_closing_element", "jsx_fragment":
		return true
	}
	for i := uint(0); i < node.ChildCount(); i++ {
		if containsJSX(node.Child(i)) {
			return true
		}
	}
	return false
}

// calleeName returns the callee text from a call_expression node.
// `React.forwardRef(...)` yields "React.forwardRef".
func calleeName(node *ts.Node, source []byte) string {
	if node == nil || node.Kind() != "call_expression" {
		return ""
	}
	fn := node.ChildByFieldName("function")
	if fn == nil {
		return ""
	}
	return fn.Utf8Text(source)
}

func isForwardRefCall(node *ts.Node, source []byte) bool {
	c := calleeName(node, source)
	return c == "forwardRef" || c == "React.forwardRef"
}

func isMemoCall(node *ts.Node, source []byte) bool {
	c := calleeName(node, source)
	return c == "memo" || c == "React.memo"
}

// innerFunction returns the function argument of a forwardRef/memo call.
func innerFunction(call *ts.Node) *ts.Node {
	args := call.ChildByFieldName("arguments")
	if args == nil {
		return nil
	}
	for i := uint(0); i < args.ChildCount(); i++ {
		child := args.Child(i)
		switch child.Kind() {
		case "arrow_function", "function_expression":
			return child
		case "call_expression":
			// memo(forwardRef(...)) nests one level.
			if inner := innerFunction(child); inner != nil {
				return inner
			}
		}
	}
	return nil
}

// firstParameter returns the first required/optional parameter of a
// function node.
func firstParameter(fnNode *ts.Node) *ts.Node {
	params := fnNode.ChildByFieldName("parameters")
	if params == nil {
		return nil
	}
	for i := uint(0); i < params.ChildCount(); i++ {
		child := params.Child(i)
		kind := child.Kind()
		if kind == "required_parameter" || kind == "optional_parameter" {
			return child
		}
	}
	return nil
}

// paramTypeText returns the raw type annotation text of a parameter,
// without the leading colon.
func paramTypeText(param *ts.Node, source []byte) string {
	typeAnno := param.ChildByFieldName("type")
	if typeAnno == nil {
		return ""
	}
	for i := uint(0); i < typeAnno.ChildCount(); i++ {
		child := typeAnno.Child(i)
		if child.Kind() != ":" {
			return child.Utf8Text(source)
		}
	}
	return ""
}

// firstTypeIdentifier recursively finds the first type_identifier in a type
// node. Used where a props type hides inside an intersection or generic.
func firstTypeIdentifier(node *ts.Node, source []byte) string {
	if node == nil {
		return ""
	}
	if node.Kind() == "type_identifier" {
		return node.Utf8Text(source)
	}
	for i := uint(0); i < node.ChildCount(); i++ {
		if result := firstTypeIdentifier(node.Child(i), source); result != "" {
			return result
		}
	}
	return ""
}

// isUppercase checks if a string starts with an uppercase letter
// (the component naming convention).
func isUppercase(s string) bool {
	if s == "" {
		return false
	}
	return unicode.IsUpper(rune(s[0]))
}

func isStringLiteral(s string) bool {
	if len(s) < 2 {
		return false
	}
	return (s[0] == '"' && s[len(s)-1] == '"') ||
		(s[0] == '\'' && s[len(s)-1] == '\'') ||
		(s[0] == '`' && s[len(s)-1] == '`')
}

func unquoteString(s string) string {
	if isStringLiteral(s) {
		return s[1 : len(s)-1]
	}
	return s
}
