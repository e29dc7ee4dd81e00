// Package showcase holds the pure state machine behind an interactive
// component playground: the selected component, its editable prop values,
// children list, fixture overrides, and wrapper props. Every transition is a
// total pure function; no action ever fails or mutates its input state.
package showcase

import (
	"maps"

	"github.com/mde-pach/showkit/pkg/faker"
	"github.com/mde-pach/showkit/pkg/fixture"
	"github.com/mde-pach/showkit/pkg/meta"
)

// PresetMode selects the value source: PresetGenerated means faker defaults,
// any other value is an index into the component's parsed preset list.
type PresetMode int

const PresetGenerated PresetMode = -1

// State is the full editable showcase state for one selected component.
type State struct {
	Component    string
	Search       string
	Props        map[string]any
	Children     []fixture.Child
	Overrides    fixture.Overrides
	WrapperProps []map[string]string
	Preset       PresetMode
	Instances    int
}

// Restored is a partial state recovered from a URL, merged over generated
// defaults during Init.
type Restored struct {
	Props        map[string]any
	Children     []fixture.Child
	WrapperProps []map[string]string
	Instances    int
}

// Action is the closed set of state transitions.
type Action interface{ isAction() }

type Init struct {
	Component string
	Restored  *Restored
}
type SelectComponent struct{ Name string }
type SetSearch struct{ Text string }

// SetProp sets one prop value. A nil Value unsets the prop. Selecting a
// component fixture attaches Override in the same transition; selecting
// anything else clears the slot's override.
type SetProp struct {
	Name     string
	Value    any
	Override *fixture.Override
}

type AddChild struct{ Child fixture.Child }
type UpdateChild struct {
	Index int
	Child fixture.Child
}
type RemoveChild struct{ Index int }

type SetOverrideProp struct {
	Slot  string
	Prop  string
	Value any
}
type SetOverrideChildren struct {
	Slot string
	Text string
}
type ClearOverride struct{ Slot string }

type SetWrapperProp struct {
	Index int
	Name  string
	Value string
}

type SetPreset struct{ Mode PresetMode }
type SetInstances struct{ Count int }
type Reset struct{}

func (Init) isAction()                {}
func (SelectComponent) isAction()     {}
func (SetSearch) isAction()           {}
func (SetProp) isAction()             {}
func (AddChild) isAction()            {}
func (UpdateChild) isAction()         {}
func (RemoveChild) isAction()         {}
func (SetOverrideProp) isAction()     {}
func (SetOverrideChildren) isAction() {}
func (ClearOverride) isAction()       {}
func (SetWrapperProp) isAction()      {}
func (SetPreset) isAction()           {}
func (SetInstances) isAction()        {}
func (Reset) isAction()               {}

// Reducer applies actions against a metadata document and the default-value
// generator. It holds no mutable state.
type Reducer struct {
	idx *meta.Index
	gen *faker.Generator
}

func NewReducer(doc *meta.Document, gen *faker.Generator) *Reducer {
	if doc == nil {
		doc = &meta.Document{}
	}
	if gen == nil {
		gen = faker.NewGenerator(nil)
	}
	return &Reducer{idx: doc.BuildIndex(), gen: gen}
}

// Apply returns the next state. Unknown components, out-of-range indexes,
// and missing override slots are no-ops on the relevant part of the state.
func (r *Reducer) Apply(s State, a Action) State {
	switch act := a.(type) {
	case Init:
		next := r.defaultState(act.Component)
		next.Search = s.Search
		if act.Restored != nil {
			r.mergeRestored(&next, act.Restored)
		}
		return next

	case SelectComponent:
		next := r.defaultState(act.Name)
		next.Search = s.Search
		return next

	case SetSearch:
		next := clone(s)
		next.Search = act.Text
		return next

	case SetProp:
		c, ok := r.idx.ComponentByName[s.Component]
		if !ok {
			return s
		}
		if _, known := c.Prop(act.Name); !known {
			return s
		}
		next := clone(s)
		if act.Value == nil {
			delete(next.Props, act.Name)
		} else {
			next.Props[act.Name] = act.Value
		}
		slot := fixture.PropSlot(act.Name)
		if act.Override != nil {
			next.Overrides[slot] = act.Override
		} else {
			delete(next.Overrides, slot)
		}
		return next

	case AddChild:
		next := clone(s)
		next.Children = append(next.Children, act.Child)
		return next

	case UpdateChild:
		if act.Index < 0 || act.Index >= len(s.Children) {
			return s
		}
		next := clone(s)
		next.Children[act.Index] = act.Child
		if act.Child.Kind != fixture.ChildFixture {
			delete(next.Overrides, fixture.ChildSlot(act.Index))
		}
		return next

	case RemoveChild:
		if act.Index < 0 || act.Index >= len(s.Children) {
			return s
		}
		next := clone(s)
		next.Children = append(next.Children[:act.Index], next.Children[act.Index+1:]...)
		next.Overrides.ShiftAfterRemoval(act.Index)
		return next

	case SetOverrideProp:
		ov, ok := s.Overrides[act.Slot]
		if !ok {
			return s
		}
		next := clone(s)
		updated := &fixture.Override{
			Props:    maps.Clone(ov.Props),
			Children: ov.Children,
		}
		if updated.Props == nil {
			updated.Props = make(map[string]any)
		}
		if act.Value == nil {
			delete(updated.Props, act.Prop)
		} else {
			updated.Props[act.Prop] = act.Value
		}
		next.Overrides[act.Slot] = updated
		return next

	case SetOverrideChildren:
		ov, ok := s.Overrides[act.Slot]
		if !ok {
			return s
		}
		next := clone(s)
		next.Overrides[act.Slot] = &fixture.Override{
			Props:    maps.Clone(ov.Props),
			Children: act.Text,
		}
		return next

	case ClearOverride:
		if _, ok := s.Overrides[act.Slot]; !ok {
			return s
		}
		next := clone(s)
		delete(next.Overrides, act.Slot)
		return next

	case SetWrapperProp:
		if act.Index < 0 || act.Index >= len(s.WrapperProps) {
			return s
		}
		next := clone(s)
		if next.WrapperProps[act.Index] == nil {
			next.WrapperProps[act.Index] = make(map[string]string)
		}
		next.WrapperProps[act.Index][act.Name] = act.Value
		return next

	case SetPreset:
		return r.applyPreset(s, act.Mode)

	case SetInstances:
		if act.Count < 1 {
			return s
		}
		next := clone(s)
		next.Instances = act.Count
		return next

	case Reset:
		next := r.defaultState(s.Component)
		next.Search = s.Search
		return next
	}
	return s
}

// Diff returns the prop values differing from the component's generated
// defaults, for display badges and URL serialization.
func (r *Reducer) Diff(s State) map[string]any {
	c, ok := r.idx.ComponentByName[s.Component]
	if !ok {
		return map[string]any{}
	}
	defaults := r.gen.Generate(c)
	diff := make(map[string]any)
	for name, value := range s.Props {
		if dv, has := defaults[name]; !has || dv != value {
			diff[name] = value
		}
	}
	for name := range defaults {
		if _, still := s.Props[name]; !still {
			diff[name] = nil
		}
	}
	return diff
}

// defaultState builds the fresh state for a component: generated prop
// defaults, a single text child when children are accepted, and the wrapper
// chain's default props.
func (r *Reducer) defaultState(name string) State {
	s := State{
		Component: name,
		Props:     make(map[string]any),
		Overrides: make(fixture.Overrides),
		Preset:    PresetGenerated,
		Instances: 1,
	}
	c, ok := r.idx.ComponentByName[name]
	if !ok {
		return s
	}
	s.Props = r.gen.Generate(c)
	if c.AcceptsChildren {
		s.Children = []fixture.Child{{Kind: fixture.ChildText, Text: c.Name}}
	}
	s.WrapperProps = make([]map[string]string, len(c.Wrappers))
	for i, w := range c.Wrappers {
		s.WrapperProps[i] = maps.Clone(w.DefaultProps)
		if s.WrapperProps[i] == nil {
			s.WrapperProps[i] = make(map[string]string)
		}
	}
	return s
}

// applyPreset re-seeds prop/children/wrapper state from either generated
// defaults or one parsed example preset. Fixture overrides always clear:
// their slots no longer necessarily exist under the new value set.
func (r *Reducer) applyPreset(s State, mode PresetMode) State {
	next := r.defaultState(s.Component)
	next.Search = s.Search
	next.Instances = s.Instances

	if mode == PresetGenerated {
		return next
	}
	c, ok := r.idx.ComponentByName[s.Component]
	if !ok || int(mode) < 0 || int(mode) >= len(c.Presets) {
		return s
	}
	preset := c.Presets[int(mode)]
	next.Preset = mode
	next.Props = make(map[string]any, len(preset.Props))
	for name, value := range preset.Props {
		next.Props[name] = value
	}
	if preset.Children != "" {
		next.Children = []fixture.Child{{Kind: fixture.ChildText, Text: preset.Children}}
	} else {
		next.Children = nil
	}
	for i := range next.WrapperProps {
		if i < len(preset.WrapperProps) {
			for k, v := range preset.WrapperProps[i] {
				next.WrapperProps[i][k] = v
			}
		}
	}
	return next
}

// mergeRestored overlays a URL-restored partial state. Prop keys stay a
// subset of the component's prop map; wrapper props shallow-merge per
// wrapper rather than replacing the whole map.
func (r *Reducer) mergeRestored(s *State, restored *Restored) {
	c, ok := r.idx.ComponentByName[s.Component]
	if !ok {
		return
	}
	for name, value := range restored.Props {
		if _, known := c.Prop(name); known {
			s.Props[name] = value
		}
	}
	if restored.Children != nil {
		s.Children = append([]fixture.Child(nil), restored.Children...)
	}
	for i, wp := range restored.WrapperProps {
		if i >= len(s.WrapperProps) {
			break
		}
		for k, v := range wp {
			s.WrapperProps[i][k] = v
		}
	}
	if restored.Instances > 0 {
		s.Instances = restored.Instances
	}
}

// clone copies the mutable parts of a state so transitions never alias the
// previous state's maps and slices.
func clone(s State) State {
	next := s
	next.Props = maps.Clone(s.Props)
	if next.Props == nil {
		next.Props = make(map[string]any)
	}
	next.Overrides = maps.Clone(s.Overrides)
	if next.Overrides == nil {
		next.Overrides = make(fixture.Overrides)
	}
	next.Children = append([]fixture.Child(nil), s.Children...)
	next.WrapperProps = make([]map[string]string, len(s.WrapperProps))
	for i, wp := range s.WrapperProps {
		next.WrapperProps[i] = maps.Clone(wp)
	}
	return next
}
