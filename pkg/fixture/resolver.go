package fixture

import (
	"log/slog"
	"strings"

	"github.com/mde-pach/showkit/pkg/meta"
)

// MaxNestingDepth bounds component-fixture recursion. A chain of nested
// component fixtures deeper than this resolves to nothing at the cutoff.
const MaxNestingDepth = 8

const componentPrefix = "components/"

// Placeholder is the inert value substituted for a required renderable slot
// that could not be resolved. Hosts render it as a visibly empty marker;
// it is never a crash and never an untyped nil in a required slot.
type Placeholder struct {
	Slot string
}

// Instance is a resolved component fixture: the referenced component with
// concrete prop values and children, ready for the host renderer.
type Instance struct {
	Component string
	Props     map[string]any
	Children  []any
}

// DefaultsFunc produces generated default prop values for a component.
// Injected so the resolver does not depend on the generator package.
type DefaultsFunc func(c *meta.ComponentDescriptor) map[string]any

// Resolver resolves qualified fixture keys and component references against
// a metadata document and a registered plugin set. It holds no mutable
// state; every resolution is a pure function of its inputs.
type Resolver struct {
	idx      *meta.Index
	plugins  []*Plugin
	flat     []FlatItem
	byKey    map[string]FlatItem
	defaults DefaultsFunc
	logger   *slog.Logger
}

func NewResolver(doc *meta.Document, plugins []*Plugin, defaults DefaultsFunc, logger *slog.Logger) *Resolver {
	if logger == nil {
		logger = slog.Default()
	}
	if doc == nil {
		doc = &meta.Document{}
	}
	if defaults == nil {
		defaults = func(*meta.ComponentDescriptor) map[string]any { return map[string]any{} }
	}
	flat := ResolvePlugins(plugins)
	byKey := make(map[string]FlatItem, len(flat))
	for _, fi := range flat {
		byKey[fi.Key] = fi
	}
	return &Resolver{
		idx:      doc.BuildIndex(),
		plugins:  plugins,
		flat:     flat,
		byKey:    byKey,
		defaults: defaults,
		logger:   logger,
	}
}

// Items returns all registered items in registration order.
func (r *Resolver) Items() []FlatItem {
	return append([]FlatItem(nil), r.flat...)
}

// Item looks up one flat item by qualified key.
func (r *Resolver) Item(key string) (FlatItem, bool) {
	fi, ok := r.byKey[key]
	return fi, ok
}

// PluginFor selects the plugin serving a prop, if any scores positively.
func (r *Resolver) PluginFor(prop *meta.PropDescriptor) (*Plugin, bool) {
	return SelectPlugin(prop, r.plugins)
}

// ResolveValue resolves a qualified key (or components/Name reference)
// selected for the given slot. Unresolvable keys yield (nil, false) for
// optional props and an inert Placeholder for required renderable props.
func (r *Resolver) ResolveValue(key string, prop *meta.PropDescriptor, overrides Overrides, slot string) (any, bool) {
	wantConstructor := prop != nil && prop.Kind == meta.RenderIcon
	v := r.resolve(key, overrides, slot, wantConstructor, 0, make(map[string]bool))
	if v != nil {
		return v, true
	}
	if prop != nil && prop.Required && prop.Kind != meta.RenderNone {
		return Placeholder{Slot: slot}, true
	}
	return nil, false
}

// ResolveChildren resolves an ordered children list. Text children pass
// through, element children carry their pre-built value, fixture children
// resolve with the override bound to their index. Entries resolving to
// nothing are dropped.
func (r *Resolver) ResolveChildren(children []Child, overrides Overrides) []any {
	var out []any
	for i, child := range children {
		switch child.Kind {
		case ChildText:
			if child.Text != "" {
				out = append(out, child.Text)
			}
		case ChildElement:
			if child.Element != nil {
				out = append(out, child.Element)
			}
		case ChildFixture:
			slot := ChildSlot(i)
			if v := r.resolve(child.Key, overrides, slot, false, 0, make(map[string]bool)); v != nil {
				out = append(out, v)
			}
		}
	}
	return out
}

// ResolveArray resolves a list of fixture keys for an array-typed prop.
// Resolvable keys become their values; non-resolvable entries stay as raw
// strings, mirroring the generated code text.
func (r *Resolver) ResolveArray(keys []string) []any {
	out := make([]any, 0, len(keys))
	for _, key := range keys {
		if v := r.resolve(key, nil, "", false, 0, make(map[string]bool)); v != nil {
			out = append(out, v)
			continue
		}
		out = append(out, key)
	}
	return out
}

func (r *Resolver) resolve(key string, overrides Overrides, slot string, wantConstructor bool, depth int, visited map[string]bool) any {
	if depth >= MaxNestingDepth {
		r.logger.Debug("fixture recursion depth cap reached", "key", key, "slot", slot)
		return nil
	}
	if name, isComponent := strings.CutPrefix(key, componentPrefix); isComponent {
		return r.resolveComponent(name, overrides, slot, depth, visited)
	}

	fi, ok := r.byKey[key]
	if !ok {
		return nil
	}
	mode := fi.Plugin.Mode
	if mode == "" {
		mode = PassRender
	}
	if wantConstructor || mode == PassConstructor {
		if fi.Item.Raw != nil {
			return fi.Item.Raw
		}
	}
	if fi.Item.Render != nil {
		return fi.Item.Render()
	}
	return fi.Item.Raw
}

// resolveComponent builds an Instance for a components/Name reference. The
// slot's override, when present, replaces the generated defaults; prop
// values that are themselves fixture keys resolve recursively with defaults
// only (overrides bind to the outermost slot).
func (r *Resolver) resolveComponent(name string, overrides Overrides, slot string, depth int, visited map[string]bool) any {
	if visited[name] {
		r.logger.Debug("component fixture cycle", "component", name, "slot", slot)
		return nil
	}
	c, ok := r.idx.ComponentByName[name]
	if !ok {
		return nil
	}
	visited[name] = true
	defer delete(visited, name)

	var ov *Override
	if overrides != nil {
		ov = overrides[slot]
	}

	var base map[string]any
	if ov != nil && ov.Props != nil {
		base = ov.Props
	} else {
		base = r.defaults(c)
	}

	inst := &Instance{Component: name, Props: make(map[string]any, len(base))}
	for propName, value := range base {
		key, isKey := value.(string)
		if isKey && r.isFixtureKey(key) {
			prop, _ := c.Prop(propName)
			wantCtor := prop != nil && prop.Kind == meta.RenderIcon
			if v := r.resolve(key, nil, "", wantCtor, depth+1, visited); v != nil {
				inst.Props[propName] = v
				continue
			}
			if prop != nil && prop.Required && prop.Kind != meta.RenderNone {
				inst.Props[propName] = Placeholder{Slot: propName}
			}
			continue
		}
		inst.Props[propName] = value
	}

	if ov != nil && ov.Children != "" {
		inst.Children = []any{ov.Children}
	}
	return inst
}

// isFixtureKey reports whether a string prop value addresses a fixture item
// or component reference rather than being literal text.
func (r *Resolver) isFixtureKey(s string) bool {
	if strings.HasPrefix(s, componentPrefix) {
		return true
	}
	_, ok := r.byKey[s]
	return ok
}
