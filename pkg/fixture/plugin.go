// Package fixture resolves abstract prop placeholders into concrete
// renderable values. Host applications register plugins whose items are
// addressable by qualified keys; component fixtures (`components/Name`)
// resolve recursively against the metadata document.
package fixture

import (
	"regexp"
	"strings"

	"github.com/mde-pach/showkit/pkg/meta"
)

// PassMode controls how a resolved fixture value is handed to a prop.
type PassMode string

const (
	// PassRender calls the item's render function and passes the result.
	PassRender PassMode = "render"
	// PassConstructor passes the item's raw component reference unrendered.
	PassConstructor PassMode = "constructor"
	// PassElement passes a pre-built element value.
	PassElement PassMode = "element"
)

// Item is one selectable fixture value, owned by its registering plugin.
type Item struct {
	Key      string
	Label    string
	Category string
	// Render produces the full-size value; RenderCompact, when set, a
	// smaller variant for constrained slots.
	Render        func() any
	RenderCompact func() any
	// Raw is the component reference used under PassConstructor.
	Raw any
}

// Match describes which props a plugin wants to serve.
type Match struct {
	// TypeNames are matched as whole words against the prop's raw type.
	TypeNames []string
	// Kinds are renderable kinds the plugin serves.
	Kinds []meta.RenderKind
	// NamePatterns are case-insensitive regexes over prop names.
	NamePatterns []string
}

// Plugin bundles a named item set with its match descriptor.
type Plugin struct {
	Name string
	Match Match
	Items []Item
	// ImportPath is emitted in generated code text for this plugin's items.
	ImportPath string
	Mode       PassMode
	Priority   int
}

// FlatItem is a plugin item under its globally unique qualified key.
type FlatItem struct {
	Key    string // pluginName/itemKey
	Plugin *Plugin
	Item   Item
}

// ResolvePlugins flattens plugins into one addressable item list. Keys are
// unique by construction since plugin names are unique and item keys are
// unique within a plugin.
func ResolvePlugins(plugins []*Plugin) []FlatItem {
	var flat []FlatItem
	for _, p := range plugins {
		for _, item := range p.Items {
			flat = append(flat, FlatItem{
				Key:    p.Name + "/" + item.Key,
				Plugin: p,
				Item:   item,
			})
		}
	}
	return flat
}

// Scoring weights. An exact type-name hit outweighs any combination of the
// weaker signals; priority only breaks ties between otherwise equal matches.
const (
	scoreTypeName = 100
	scoreKind     = 40
	scoreName     = 10
)

// ScorePlugin computes the additive match score of a plugin against a prop.
// Zero means no match at all.
func ScorePlugin(prop *meta.PropDescriptor, p *Plugin) int {
	score := 0
	for _, tn := range p.Match.TypeNames {
		if containsWord(prop.RawType, tn) {
			score += scoreTypeName
			break
		}
	}
	for _, k := range p.Match.Kinds {
		if k != meta.RenderNone && k == prop.Kind {
			score += scoreKind
			break
		}
	}
	for _, pattern := range p.Match.NamePatterns {
		re, err := regexp.Compile("(?i)" + pattern)
		if err != nil {
			continue
		}
		if re.MatchString(prop.Name) {
			score += scoreName
			break
		}
	}
	if score > 0 {
		score += p.Priority
	}
	return score
}

// SelectPlugin picks the highest positively scoring plugin for a prop.
// Ties keep the first-registered plugin.
func SelectPlugin(prop *meta.PropDescriptor, plugins []*Plugin) (*Plugin, bool) {
	var best *Plugin
	bestScore := 0
	for _, p := range plugins {
		if s := ScorePlugin(prop, p); s > bestScore {
			best, bestScore = p, s
		}
	}
	return best, best != nil
}

func containsWord(haystack, word string) bool {
	idx := strings.Index(haystack, word)
	for idx >= 0 {
		before := idx == 0 || !isWordChar(haystack[idx-1])
		afterIdx := idx + len(word)
		after := afterIdx >= len(haystack) || !isWordChar(haystack[afterIdx])
		if before && after {
			return true
		}
		next := strings.Index(haystack[idx+1:], word)
		if next < 0 {
			return false
		}
		idx += 1 + next
	}
	return false
}

func isWordChar(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}
