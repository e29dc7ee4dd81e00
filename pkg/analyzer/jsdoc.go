package analyzer

import (
	"strings"

	ts "github.com/tree-sitter/go-tree-sitter"
)

// docComment returns the comment node immediately preceding a top-level
// statement, or nil when the statement has no attached documentation.
func docComment(root *ts.Node, index uint) *ts.Node {
	if index == 0 {
		return nil
	}
	prev := root.Child(index - 1)
	if prev != nil && prev.Kind() == "comment" {
		return prev
	}
	return nil
}

// parseJSDoc splits a JSDoc block into a description and the bodies of any
// @example tags. Line comments pass through as a plain description.
func parseJSDoc(raw string) (description string, examples []string) {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "//") {
		return strings.TrimSpace(strings.TrimPrefix(raw, "//")), nil
	}
	raw = strings.TrimPrefix(raw, "/**")
	raw = strings.TrimPrefix(raw, "/*")
	raw = strings.TrimSuffix(raw, "*/")

	var descLines []string
	var exampleLines []string
	inExample := false
	flushExample := func() {
		if !inExample {
			return
		}
		text := strings.TrimSpace(strings.Join(exampleLines, "\n"))
		if text != "" {
			examples = append(examples, text)
		}
		exampleLines = nil
	}
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		line = strings.TrimPrefix(line, "*")
		line = strings.TrimPrefix(line, " ")
		switch {
		case strings.HasPrefix(line, "@example"):
			flushExample()
			inExample = true
			rest := strings.TrimSpace(strings.TrimPrefix(line, "@example"))
			if rest != "" {
				exampleLines = append(exampleLines, rest)
			}
		case strings.HasPrefix(line, "@"):
			// Other tags terminate both description and example bodies.
			flushExample()
			inExample = false
		case inExample:
			exampleLines = append(exampleLines, line)
		default:
			descLines = append(descLines, line)
		}
	}
	flushExample()

	description = strings.TrimSpace(strings.Join(descLines, "\n"))
	return description, examples
}

// stripCodeFence removes a surrounding markdown code fence from an example
// snippet, keeping only the code inside.
func stripCodeFence(snippet string) string {
	lines := strings.Split(snippet, "\n")
	if len(lines) >= 2 && strings.HasPrefix(strings.TrimSpace(lines[0]), "```") {
		end := len(lines)
		for i := len(lines) - 1; i > 0; i-- {
			if strings.TrimSpace(lines[i]) == "```" {
				end = i
				break
			}
		}
		lines = lines[1:end]
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}
