// Package faker generates plausible default prop values from a component's
// extracted metadata. Values are deterministic: the same component and prop
// names always produce the same output, seeded by name hashing rather than
// wall-clock randomness.
package faker

import (
	"fmt"
	"hash/fnv"
	"math/rand"
	"sort"
	"strconv"
	"strings"

	"github.com/mde-pach/showkit/pkg/meta"
)

// Strategy is a pluggable value generator consulted before the built-in
// table. Returning ok=false falls through to the next strategy.
type Strategy struct {
	Name     string
	Priority int
	Match    func(propName string, prop *meta.PropDescriptor) bool
	Generate func(propName string, prop *meta.PropDescriptor) (any, bool)
}

// Generator produces default prop value maps. kindDefaults maps each
// renderable kind to the fixture placeholder key assigned to props of that
// kind; resolution to a real value is deferred until render time.
type Generator struct {
	kindDefaults map[meta.RenderKind]string
	strategies   []Strategy
}

// builtinKindDefaults assigns one well-known fixture key per renderable
// kind, so a renderable prop always receives a placeholder key even when
// the caller registers nothing. The resolver substitutes its inert
// placeholder when no fixture item backs the key.
var builtinKindDefaults = map[meta.RenderKind]string{
	meta.RenderIcon:    "icons/star",
	meta.RenderElement: "badges/dot",
	meta.RenderNode:    "text/short",
}

// NewGenerator builds a Generator. Strategies run in descending priority;
// equal priorities keep registration order. kindDefaults entries override
// the built-in per-kind keys; kinds the caller omits keep the built-ins.
func NewGenerator(kindDefaults map[meta.RenderKind]string, strategies ...Strategy) *Generator {
	sorted := append([]Strategy(nil), strategies...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Priority > sorted[j].Priority
	})
	merged := make(map[meta.RenderKind]string, len(builtinKindDefaults))
	for kind, key := range builtinKindDefaults {
		merged[kind] = key
	}
	for kind, key := range kindDefaults {
		merged[kind] = key
	}
	return &Generator{kindDefaults: merged, strategies: sorted}
}

// Generate produces the default value map for a component. Props that are
// deliberately left unset (optional enums, composite-shaped bags,
// unclassifiable types) are absent from the map.
func (g *Generator) Generate(c *meta.ComponentDescriptor) map[string]any {
	values := make(map[string]any, len(c.Props))
	for i := range c.Props {
		prop := &c.Props[i]
		if v, ok := g.ValueFor(c.Name, prop); ok {
			values[prop.Name] = v
		}
	}
	return values
}

// ValueFor generates the default for one prop, or false to leave it unset.
func (g *Generator) ValueFor(componentName string, prop *meta.PropDescriptor) (any, bool) {
	for _, s := range g.strategies {
		if s.Match != nil && !s.Match(prop.Name, prop) {
			continue
		}
		if s.Generate == nil {
			continue
		}
		if v, ok := s.Generate(prop.Name, prop); ok {
			return v, true
		}
	}

	if prop.Kind != meta.RenderNone {
		if key, ok := g.kindDefaults[prop.Kind]; ok {
			return key, true
		}
		return nil, false
	}

	if prop.Default != "" {
		return coerceDefault(prop.Default), true
	}

	if len(prop.Values) > 0 {
		// Required enums show their first value; optional enums stay unset
		// so the preview demonstrates optionality.
		if prop.Required {
			return prop.Values[0], true
		}
		return nil, false
	}

	if prop.Elem != nil || len(prop.Fields) > 0 || isCompositeName(prop.Name) {
		return nil, false
	}

	rng := seededRand(componentName, prop.Name)
	switch {
	case typeIs(prop.Type, "boolean"):
		return false, true
	case typeIs(prop.Type, "number"):
		return numberFor(prop.Name, rng), true
	case typeIs(prop.Type, "string"):
		return stringFor(prop.Name, rng), true
	}
	return nil, false
}

// coerceDefault converts an extracted default-value text into a typed value.
func coerceDefault(text string) any {
	switch text {
	case "true":
		return true
	case "false":
		return false
	}
	if n, err := strconv.Atoi(text); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(text, 64); err == nil {
		return f
	}
	return text
}

func typeIs(simplified, primitive string) bool {
	if simplified == primitive {
		return true
	}
	for _, member := range strings.Split(simplified, "|") {
		if strings.TrimSpace(member) == primitive {
			return true
		}
	}
	return false
}

// isCompositeName flags generic data-bag names whose structure cannot be
// guessed safely; an invalid structural guess is worse than no value.
func isCompositeName(name string) bool {
	switch strings.ToLower(name) {
	case "items", "data", "stats", "trend", "rows", "columns", "options", "entries":
		return true
	}
	return false
}

func seededRand(componentName, propName string) *rand.Rand {
	h := fnv.New64a()
	h.Write([]byte(componentName))
	h.Write([]byte{'/'})
	h.Write([]byte(propName))
	return rand.New(rand.NewSource(int64(h.Sum64())))
}

func nameHas(name string, needles ...string) bool {
	lower := strings.ToLower(name)
	for _, n := range needles {
		if strings.Contains(lower, n) {
			return true
		}
	}
	return false
}

func numberFor(name string, rng *rand.Rand) any {
	switch {
	case nameHas(name, "page", "step", "index"):
		return 1
	case nameHas(name, "max", "total", "limit"):
		return 10
	case nameHas(name, "percent", "progress"):
		return 60
	case nameHas(name, "price", "amount", "cost"):
		return float64(rng.Intn(9000)+999) / 100
	case nameHas(name, "rating", "score"):
		return float64(rng.Intn(40)+10) / 10
	default:
		return rng.Intn(20) + 1
	}
}

func pick(rng *rand.Rand, list []string) string {
	return list[rng.Intn(len(list))]
}

func stringFor(name string, rng *rand.Rand) string {
	switch {
	case nameHas(name, "search", "query", "filter"):
		// Intentionally empty: a pre-filled search box reads as state, not
		// as a default.
		return ""
	case nameHas(name, "email"):
		return strings.ToLower(pick(rng, firstNames)) + "." +
			strings.ToLower(pick(rng, lastNames)) + "@example.com"
	case nameHas(name, "url", "link", "href"):
		return "https://example.com/" + pick(rng, urlSlugs)
	case nameHas(name, "image", "avatar", "photo", "src", "thumbnail"):
		return fmt.Sprintf("https://picsum.photos/seed/%d/400/300", rng.Intn(1000))
	case nameHas(name, "color"):
		return pick(rng, colorPalette)
	case nameHas(name, "date", "time"):
		return fmt.Sprintf("2025-%02d-%02d", rng.Intn(12)+1, rng.Intn(28)+1)
	case nameHas(name, "phone", "tel"):
		return fmt.Sprintf("+1 (555) 0%02d-%04d", rng.Intn(100), rng.Intn(10000))
	case nameHas(name, "address", "street"):
		return fmt.Sprintf("%d %s, %s", rng.Intn(200)+1, pick(rng, streets), pick(rng, cities))
	case nameHas(name, "name", "author", "user", "owner"):
		return pick(rng, firstNames) + " " + pick(rng, lastNames)
	case nameHas(name, "placeholder"):
		return titleCase(pick(rng, loremWords)) + " " + pick(rng, loremWords) + "…"
	case nameHas(name, "description", "subtitle", "message", "caption", "summary", "text", "content", "body"):
		return pick(rng, loremSentences)
	case nameHas(name, "title", "label", "heading"):
		return titleCase(pick(rng, loremWords)) + " " + pick(rng, loremWords)
	default:
		return titleCase(pick(rng, loremWords)) + " " + pick(rng, loremWords)
	}
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
