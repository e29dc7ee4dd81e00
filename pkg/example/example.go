// Package example parses JSX snippets collected from @example doc tags. It
// recovers the wrapper chain around a component, turns a usage into a preset,
// and votes wrapper chains across all of a component's examples.
package example

import (
	"strings"

	ts "github.com/tree-sitter/go-tree-sitter"

	"github.com/mde-pach/showkit/pkg/meta"
	"github.com/mde-pach/showkit/pkg/parser"
)

// Parser resolves example snippets against the shared tree-sitter pools.
type Parser struct {
	pm *parser.Manager
}

func NewParser(pm *parser.Manager) *Parser {
	return &Parser{pm: pm}
}

// WrapperChain returns the uppercase ancestor elements around the first
// occurrence of component in the snippet, outermost first. Fragments and
// lowercase (host) elements are transparent. The second return is false when
// the snippet does not parse or does not contain the component; an empty
// chain with true means the component appears standalone.
func (p *Parser) WrapperChain(snippet, component string) ([]meta.Wrapper, bool) {
	tree, err := p.pm.ParseSnippet(snippet)
	if err != nil {
		return nil, false
	}
	defer tree.Close()

	source := []byte(snippet)
	target, ancestors := findElement(tree.RootNode(), source, component, nil)
	if target == nil {
		return nil, false
	}

	chain := []meta.Wrapper{}
	for _, anc := range ancestors {
		name := elementName(anc, source)
		if !startsUpper(name) {
			continue
		}
		chain = append(chain, meta.Wrapper{
			Name:         name,
			DefaultProps: elementProps(anc, source),
		})
	}
	return chain, true
}

// Preset parses a snippet into a preset for the component: its literal props,
// its children text, and the props carried by each wrapper in the chain.
// Returns false when the component is absent from the snippet.
func (p *Parser) Preset(snippet, component string) (*meta.Preset, bool) {
	tree, err := p.pm.ParseSnippet(snippet)
	if err != nil {
		return nil, false
	}
	defer tree.Close()

	source := []byte(snippet)
	target, ancestors := findElement(tree.RootNode(), source, component, nil)
	if target == nil {
		return nil, false
	}

	preset := &meta.Preset{
		Props:    elementProps(target, source),
		Children: elementChildrenText(target, source),
	}
	for _, anc := range ancestors {
		if !startsUpper(elementName(anc, source)) {
			continue
		}
		preset.WrapperProps = append(preset.WrapperProps, elementProps(anc, source))
	}
	return preset, true
}

// DetectWrappers votes wrapper chains across a component's examples. A chain
// wins only with more votes than standalone sightings and a strict majority
// of the parseable examples; anything weaker is taken as optional styling
// context rather than a required wrapper.
func (p *Parser) DetectWrappers(examples []string, component string) []meta.Wrapper {
	votes := make(map[string]int)
	chains := make(map[string][]meta.Wrapper)
	parseable := 0
	standalone := 0

	for _, snippet := range examples {
		chain, ok := p.WrapperChain(snippet, component)
		if !ok {
			continue
		}
		parseable++
		if len(chain) == 0 {
			standalone++
			continue
		}
		key := chainKey(chain)
		votes[key]++
		if _, seen := chains[key]; !seen {
			chains[key] = chain
		}
	}

	var bestKey string
	bestVotes := 0
	for key, n := range votes {
		if n > bestVotes || (n == bestVotes && key < bestKey) {
			bestKey, bestVotes = key, n
		}
	}
	if bestVotes > standalone && bestVotes*2 > parseable {
		return chains[bestKey]
	}
	return nil
}

func chainKey(chain []meta.Wrapper) string {
	names := make([]string, len(chain))
	for i, w := range chain {
		names[i] = w.Name
	}
	return strings.Join(names, ">")
}

// findElement locates the first JSX element named component via depth-first
// walk, returning it with its enclosing jsx_element ancestors outermost
// first.
func findElement(node *ts.Node, source []byte, component string, stack []*ts.Node) (*ts.Node, []*ts.Node) {
	kind := node.Kind()
	if kind == "jsx_element" || kind == "jsx_self_closing_element" {
		if elementName(node, source) == component {
			return node, append([]*ts.Node(nil), stack...)
		}
		if kind == "jsx_element" {
			stack = append(stack, node)
		}
	}
	for i := uint(0); i < node.ChildCount(); i++ {
		if found, ancestors := findElement(node.Child(i), source, component, stack); found != nil {
			return found, ancestors
		}
	}
	return nil, nil
}

// elementName returns the tag name of a JSX element. Member tags like
// Select.Option keep their full dotted form; fragments have no name.
func elementName(node *ts.Node, source []byte) string {
	open := node
	if node.Kind() == "jsx_element" {
		open = findDirectChild(node, "jsx_opening_element")
		if open == nil {
			return ""
		}
	}
	name := open.ChildByFieldName("name")
	if name == nil {
		return ""
	}
	return name.Utf8Text(source)
}

// elementProps extracts the attributes of a JSX element as raw text values.
// String literals are unquoted, expression containers keep their inner text,
// and bare attributes read as "true".
func elementProps(node *ts.Node, source []byte) map[string]string {
	open := node
	if node.Kind() == "jsx_element" {
		open = findDirectChild(node, "jsx_opening_element")
		if open == nil {
			return nil
		}
	}
	props := make(map[string]string)
	for i := uint(0); i < open.ChildCount(); i++ {
		attr := open.Child(i)
		if attr.Kind() != "jsx_attribute" {
			continue
		}
		nameNode := attr.Child(0)
		if nameNode == nil {
			continue
		}
		name := nameNode.Utf8Text(source)
		value := "true"
		for j := uint(1); j < attr.ChildCount(); j++ {
			v := attr.Child(j)
			switch v.Kind() {
			case "string":
				value = stripQuotes(v.Utf8Text(source))
			case "jsx_expression":
				text := strings.TrimSpace(v.Utf8Text(source))
				if strings.HasPrefix(text, "{") && strings.HasSuffix(text, "}") {
					text = strings.TrimSpace(text[1 : len(text)-1])
				}
				value = text
			}
		}
		props[name] = value
	}
	if len(props) == 0 {
		return nil
	}
	return props
}

// elementChildrenText captures the raw source between the opening and
// closing tags, trimmed. Self-closing elements have none.
func elementChildrenText(node *ts.Node, source []byte) string {
	if node.Kind() != "jsx_element" {
		return ""
	}
	open := findDirectChild(node, "jsx_opening_element")
	closing := findDirectChild(node, "jsx_closing_element")
	if open == nil || closing == nil {
		return ""
	}
	start := open.EndByte()
	end := closing.StartByte()
	if end <= start {
		return ""
	}
	return strings.TrimSpace(string(source[start:end]))
}

func findDirectChild(node *ts.Node, kind string) *ts.Node {
	for i := uint(0); i < node.ChildCount(); i++ {
		if child := node.Child(i); child.Kind() == kind {
			return child
		}
	}
	return nil
}

func startsUpper(s string) bool {
	return s != "" && s[0] >= 'A' && s[0] <= 'Z'
}

func stripQuotes(s string) string {
	if len(s) >= 2 {
		if (s[0] == '"' && s[len(s)-1] == '"') || (s[0] == '\'' && s[len(s)-1] == '\'') {
			return s[1 : len(s)-1]
		}
	}
	return s
}
