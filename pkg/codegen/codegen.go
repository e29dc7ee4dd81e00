// Package codegen emits colorized text tokens showing the JSX a showcase
// state would render. The token stream must stay byte-for-byte consistent
// with what the fixture resolver actually substitutes: both walk the same
// key/override/defaults paths, one producing live values and the other
// producing display text.
package codegen

import (
	"fmt"
	"sort"
	"strings"
	"unicode"

	"github.com/mde-pach/showkit/pkg/fixture"
	"github.com/mde-pach/showkit/pkg/meta"
)

// TokenType classifies a token for syntax coloring.
type TokenType string

const (
	TokenPunct  TokenType = "punct"
	TokenTag    TokenType = "tag"
	TokenAttr   TokenType = "attr"
	TokenString TokenType = "string"
	TokenExpr   TokenType = "expr"
	TokenText   TokenType = "text"
)

// Token is one colorized fragment. Joining all token texts in order yields
// the exact generated source text.
type Token struct {
	Type TokenType
	Text string
}

// Render joins a token stream back into plain source text.
func Render(tokens []Token) string {
	var b strings.Builder
	for _, tok := range tokens {
		b.WriteString(tok.Text)
	}
	return b.String()
}

const indentStep = "  "

// Generator produces code tokens against the same metadata document, plugin
// set, and defaults function the fixture resolver uses.
type Generator struct {
	idx      *meta.Index
	byKey    map[string]fixture.FlatItem
	defaults fixture.DefaultsFunc
}

func New(doc *meta.Document, plugins []*fixture.Plugin, defaults fixture.DefaultsFunc) *Generator {
	if doc == nil {
		doc = &meta.Document{}
	}
	if defaults == nil {
		defaults = func(*meta.ComponentDescriptor) map[string]any { return map[string]any{} }
	}
	flat := fixture.ResolvePlugins(plugins)
	byKey := make(map[string]fixture.FlatItem, len(flat))
	for _, fi := range flat {
		byKey[fi.Key] = fi
	}
	return &Generator{idx: doc.BuildIndex(), byKey: byKey, defaults: defaults}
}

// Component emits the full snippet for a showcased component: the element
// with its prop values and children, wrapped by its wrapper chain when one
// is attached. wrapperProps overrides the chain's default props per wrapper
// when non-nil.
func (g *Generator) Component(name string, props map[string]any, children []fixture.Child, overrides fixture.Overrides, wrapperProps []map[string]string) []Token {
	c := g.idx.ComponentByName[name]
	tokens := g.element(name, c, props, children, overrides, 0, make(map[string]bool))

	if c == nil {
		return tokens
	}
	for i := len(c.Wrappers) - 1; i >= 0; i-- {
		w := c.Wrappers[i]
		wp := w.DefaultProps
		if wrapperProps != nil && i < len(wrapperProps) && wrapperProps[i] != nil {
			wp = wrapperProps[i]
		}
		tokens = g.wrap(w.Name, wp, tokens)
	}
	return tokens
}

// element renders one JSX element. Layout: one prop and no children stay on
// a single line; otherwise one prop per indented line with children last.
func (g *Generator) element(tag string, c *meta.ComponentDescriptor, props map[string]any, children []fixture.Child, overrides fixture.Overrides, depth int, visited map[string]bool) []Token {
	type attr struct {
		name   string
		tokens []Token
	}
	var attrs []attr
	for _, name := range orderedPropNames(c, props) {
		var prop *meta.PropDescriptor
		if c != nil {
			prop, _ = c.Prop(name)
		}
		if vt := g.attrValue(prop, props[name], overrides, fixture.PropSlot(name), depth, visited); vt != nil {
			attrs = append(attrs, attr{name: name, tokens: vt})
		}
	}

	childTokens := g.children(children, overrides, depth, visited)

	var out []Token
	add := func(tt TokenType, text string) { out = append(out, Token{Type: tt, Text: text}) }

	oneLine := len(attrs) <= 1 && len(childTokens) == 0
	add(TokenPunct, "<")
	add(TokenTag, tag)
	if oneLine {
		for _, a := range attrs {
			add(TokenPunct, " ")
			add(TokenAttr, a.name)
			out = append(out, a.tokens...)
		}
		add(TokenPunct, " />")
		return out
	}

	for _, a := range attrs {
		add(TokenPunct, "\n"+indentStep)
		add(TokenAttr, a.name)
		out = append(out, a.tokens...)
	}
	if len(childTokens) == 0 {
		add(TokenPunct, "\n/>")
		return out
	}
	add(TokenPunct, "\n>")
	for _, block := range childTokens {
		add(TokenPunct, "\n"+indentStep)
		out = append(out, reindent(block)...)
	}
	add(TokenPunct, "\n</")
	add(TokenTag, tag)
	add(TokenPunct, ">")
	return out
}

// attrValue renders one prop value, mirroring the resolver's resolution
// paths. A nil return means the attribute is omitted entirely.
func (g *Generator) attrValue(prop *meta.PropDescriptor, value any, overrides fixture.Overrides, slot string, depth int, visited map[string]bool) []Token {
	switch v := value.(type) {
	case nil:
		return nil
	case bool:
		if v {
			return []Token{}
		}
		return exprTokens(Token{Type: TokenExpr, Text: "false"})
	case int, int64, float32, float64:
		return exprTokens(Token{Type: TokenExpr, Text: formatNumber(v)})
	case string:
		// renderable slots hold fixture keys, never literal text
		if (prop != nil && prop.Kind != meta.RenderNone) || g.isFixtureKey(v) {
			return g.fixtureAttr(prop, v, overrides, slot, depth, visited)
		}
		return []Token{
			{Type: TokenPunct, Text: `="`},
			{Type: TokenString, Text: v},
			{Type: TokenPunct, Text: `"`},
		}
	case []string:
		return exprTokens(g.arrayTokens(v)...)
	case []any:
		return exprTokens(g.anyArrayTokens(v)...)
	case map[string]any:
		return exprTokens(g.objectTokens(v)...)
	default:
		return exprTokens(Token{Type: TokenExpr, Text: fmt.Sprintf("%v", v)})
	}
}

// fixtureAttr renders a fixture-key prop value. Component references recurse
// into full nested JSX; plain items render by PascalCase label, as a bare
// reference in constructor mode and a self-closing tag otherwise.
// Unresolvable keys vanish for optional props and render the inert
// placeholder for required renderable props, exactly like the resolver.
func (g *Generator) fixtureAttr(prop *meta.PropDescriptor, key string, overrides fixture.Overrides, slot string, depth int, visited map[string]bool) []Token {
	required := prop != nil && prop.Required && prop.Kind != meta.RenderNone
	placeholder := func() []Token {
		return exprTokens(
			Token{Type: TokenPunct, Text: "<"},
			Token{Type: TokenTag, Text: "Placeholder"},
			Token{Type: TokenPunct, Text: " />"},
		)
	}

	if depth >= fixture.MaxNestingDepth {
		if required {
			return placeholder()
		}
		return nil
	}

	if name, isComponent := strings.CutPrefix(key, "components/"); isComponent {
		nested := g.nestedComponent(name, overrides, slot, depth, visited)
		if nested == nil {
			if required {
				return placeholder()
			}
			return nil
		}
		return exprTokens(nested...)
	}

	fi, ok := g.byKey[key]
	if !ok {
		if required {
			return placeholder()
		}
		return nil
	}
	tag := PascalCase(fi.Item.Label)
	if (prop != nil && prop.Kind == meta.RenderIcon) || fi.Plugin.Mode == fixture.PassConstructor {
		return exprTokens(Token{Type: TokenTag, Text: tag})
	}
	return exprTokens(
		Token{Type: TokenPunct, Text: "<"},
		Token{Type: TokenTag, Text: tag},
		Token{Type: TokenPunct, Text: " />"},
	)
}

// nestedComponent mirrors the resolver's component-fixture path: the slot's
// override replaces generated defaults, nested fixture keys resolve with
// defaults only, override children text becomes the sole child.
func (g *Generator) nestedComponent(name string, overrides fixture.Overrides, slot string, depth int, visited map[string]bool) []Token {
	if visited[name] {
		return nil
	}
	c, ok := g.idx.ComponentByName[name]
	if !ok {
		return nil
	}
	visited[name] = true
	defer delete(visited, name)

	var ov *fixture.Override
	if overrides != nil {
		ov = overrides[slot]
	}
	var base map[string]any
	if ov != nil && ov.Props != nil {
		base = ov.Props
	} else {
		base = g.defaults(c)
	}

	var children []fixture.Child
	if ov != nil && ov.Children != "" {
		children = []fixture.Child{{Kind: fixture.ChildText, Text: ov.Children}}
	}
	return g.element(name, c, base, children, nil, depth+1, visited)
}

// children renders each child entry to its own token block, dropping
// entries that resolve to nothing.
func (g *Generator) children(children []fixture.Child, overrides fixture.Overrides, depth int, visited map[string]bool) [][]Token {
	var out [][]Token
	for i, child := range children {
		switch child.Kind {
		case fixture.ChildText:
			if child.Text != "" {
				out = append(out, []Token{{Type: TokenText, Text: child.Text}})
			}
		case fixture.ChildElement:
			if child.Element != nil {
				out = append(out, exprTokens(Token{Type: TokenExpr, Text: fmt.Sprintf("%v", child.Element)}))
			}
		case fixture.ChildFixture:
			if depth >= fixture.MaxNestingDepth {
				continue
			}
			slot := fixture.ChildSlot(i)
			if name, isComponent := strings.CutPrefix(child.Key, "components/"); isComponent {
				if nested := g.nestedComponent(name, overrides, slot, depth, visited); nested != nil {
					out = append(out, nested)
				}
				continue
			}
			if fi, ok := g.byKey[child.Key]; ok {
				out = append(out, []Token{
					{Type: TokenPunct, Text: "<"},
					{Type: TokenTag, Text: PascalCase(fi.Item.Label)},
					{Type: TokenPunct, Text: " />"},
				})
			}
		}
	}
	return out
}

// arrayTokens renders an array of fixture keys: resolvable entries as bare
// component references, the rest as quoted strings.
func (g *Generator) arrayTokens(keys []string) []Token {
	tokens := []Token{{Type: TokenPunct, Text: "["}}
	for i, key := range keys {
		if i > 0 {
			tokens = append(tokens, Token{Type: TokenPunct, Text: ", "})
		}
		if fi, ok := g.byKey[key]; ok {
			tokens = append(tokens, Token{Type: TokenTag, Text: PascalCase(fi.Item.Label)})
			continue
		}
		tokens = append(tokens,
			Token{Type: TokenPunct, Text: `"`},
			Token{Type: TokenString, Text: key},
			Token{Type: TokenPunct, Text: `"`},
		)
	}
	return append(tokens, Token{Type: TokenPunct, Text: "]"})
}

// anyArrayTokens renders a mixed array; structured items become object
// literals with per-field resolution.
func (g *Generator) anyArrayTokens(items []any) []Token {
	tokens := []Token{{Type: TokenPunct, Text: "["}}
	for i, item := range items {
		if i > 0 {
			tokens = append(tokens, Token{Type: TokenPunct, Text: ", "})
		}
		tokens = append(tokens, g.valueTokens(item)...)
	}
	return append(tokens, Token{Type: TokenPunct, Text: "]"})
}

func (g *Generator) objectTokens(obj map[string]any) []Token {
	keys := make([]string, 0, len(obj))
	for k := range obj {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	tokens := []Token{{Type: TokenPunct, Text: "{ "}}
	for i, k := range keys {
		if i > 0 {
			tokens = append(tokens, Token{Type: TokenPunct, Text: ", "})
		}
		tokens = append(tokens,
			Token{Type: TokenAttr, Text: k},
			Token{Type: TokenPunct, Text: ": "},
		)
		tokens = append(tokens, g.valueTokens(obj[k])...)
	}
	return append(tokens, Token{Type: TokenPunct, Text: " }"})
}

func (g *Generator) valueTokens(value any) []Token {
	switch v := value.(type) {
	case string:
		if fi, ok := g.byKey[v]; ok {
			return []Token{{Type: TokenTag, Text: PascalCase(fi.Item.Label)}}
		}
		return []Token{
			{Type: TokenPunct, Text: `"`},
			{Type: TokenString, Text: v},
			{Type: TokenPunct, Text: `"`},
		}
	case bool:
		return []Token{{Type: TokenExpr, Text: fmt.Sprintf("%t", v)}}
	case int, int64, float32, float64:
		return []Token{{Type: TokenExpr, Text: formatNumber(v)}}
	case map[string]any:
		return g.objectTokens(v)
	case []any:
		return g.anyArrayTokens(v)
	case []string:
		return g.arrayTokens(v)
	default:
		return []Token{{Type: TokenExpr, Text: fmt.Sprintf("%v", v)}}
	}
}

// wrap surrounds inner tokens with one wrapper element, re-indenting the
// nested text by one step.
func (g *Generator) wrap(tag string, props map[string]string, inner []Token) []Token {
	var out []Token
	add := func(tt TokenType, text string) { out = append(out, Token{Type: tt, Text: text}) }

	add(TokenPunct, "<")
	add(TokenTag, tag)
	names := make([]string, 0, len(props))
	for k := range props {
		names = append(names, k)
	}
	sort.Strings(names)
	for _, name := range names {
		add(TokenPunct, " ")
		add(TokenAttr, name)
		if props[name] == "true" {
			continue
		}
		add(TokenPunct, `="`)
		add(TokenString, props[name])
		add(TokenPunct, `"`)
	}
	add(TokenPunct, ">")
	add(TokenPunct, "\n"+indentStep)
	out = append(out, reindent(inner)...)
	add(TokenPunct, "\n</")
	add(TokenTag, tag)
	add(TokenPunct, ">")
	return out
}

// reindent shifts a token block one level deeper by rewriting the newlines
// embedded in its tokens.
func reindent(tokens []Token) []Token {
	out := make([]Token, len(tokens))
	for i, tok := range tokens {
		tok.Text = strings.ReplaceAll(tok.Text, "\n", "\n"+indentStep)
		out[i] = tok
	}
	return out
}

func exprTokens(inner ...Token) []Token {
	tokens := make([]Token, 0, len(inner)+2)
	tokens = append(tokens, Token{Type: TokenPunct, Text: "={"})
	tokens = append(tokens, inner...)
	return append(tokens, Token{Type: TokenPunct, Text: "}"})
}

// orderedPropNames yields prop names in the component's declared order,
// followed by any extra value-map keys sorted by name.
func orderedPropNames(c *meta.ComponentDescriptor, props map[string]any) []string {
	var names []string
	seen := make(map[string]bool, len(props))
	if c != nil {
		for i := range c.Props {
			name := c.Props[i].Name
			if _, ok := props[name]; ok {
				names = append(names, name)
				seen[name] = true
			}
		}
	}
	var extra []string
	for name := range props {
		if !seen[name] {
			extra = append(extra, name)
		}
	}
	sort.Strings(extra)
	return append(names, extra...)
}

func (g *Generator) isFixtureKey(s string) bool {
	if strings.HasPrefix(s, "components/") {
		return true
	}
	_, ok := g.byKey[s]
	return ok
}

func formatNumber(v any) string {
	switch n := v.(type) {
	case float32:
		return strings.TrimRight(strings.TrimRight(fmt.Sprintf("%.2f", n), "0"), ".")
	case float64:
		return strings.TrimRight(strings.TrimRight(fmt.Sprintf("%.2f", n), "0"), ".")
	default:
		return fmt.Sprintf("%v", n)
	}
}

// PascalCase converts a fixture item label to a component-style identifier:
// "short text" becomes "ShortText".
func PascalCase(label string) string {
	var b strings.Builder
	upper := true
	for _, r := range label {
		switch {
		case r == ' ' || r == '-' || r == '_' || r == '.':
			upper = true
		case upper:
			b.WriteRune(unicode.ToUpper(r))
			upper = false
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
