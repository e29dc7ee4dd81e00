package showcase

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mde-pach/showkit/pkg/faker"
	"github.com/mde-pach/showkit/pkg/fixture"
	"github.com/mde-pach/showkit/pkg/meta"
)

func testReducer(t *testing.T) *Reducer {
	t.Helper()
	doc := &meta.Document{
		Components: []meta.ComponentDescriptor{
			{
				Name:     "Button",
				FilePath: "src/button.tsx",
				Props: []meta.PropDescriptor{
					{Name: "label", Type: "string", Required: true},
					{Name: "variant", Type: "enum", Values: []string{"primary", "ghost"}, Required: true},
					{Name: "icon", Type: "ReactNode", Kind: meta.RenderIcon},
					{Name: "disabled", Type: "boolean"},
				},
				AcceptsChildren: true,
				Wrappers: []meta.Wrapper{
					{Name: "ThemeProvider", DefaultProps: map[string]string{"theme": "light"}},
				},
				Presets: []meta.Preset{
					{
						Props:        map[string]string{"variant": "ghost"},
						Children:     "Save draft",
						WrapperProps: []map[string]string{{"theme": "dark"}},
					},
				},
			},
			{
				Name:     "Badge",
				FilePath: "src/badge.tsx",
				Props: []meta.PropDescriptor{
					{Name: "count", Type: "number", Required: true},
				},
			},
		},
	}
	return NewReducer(doc, faker.NewGenerator(nil))
}

func TestInit_GeneratedDefaults(t *testing.T) {
	r := testReducer(t)
	s := r.Apply(State{}, Init{Component: "Button"})

	assert.Equal(t, "Button", s.Component)
	assert.Equal(t, PresetGenerated, s.Preset)
	assert.Equal(t, 1, s.Instances)
	assert.Equal(t, "primary", s.Props["variant"])
	assert.NotEmpty(t, s.Props["label"])
	assert.Equal(t, false, s.Props["disabled"])

	require.Len(t, s.Children, 1)
	assert.Equal(t, fixture.ChildText, s.Children[0].Kind)

	require.Len(t, s.WrapperProps, 1)
	assert.Equal(t, "light", s.WrapperProps[0]["theme"])
}

func TestInit_RestoredMergesOverDefaults(t *testing.T) {
	r := testReducer(t)
	s := r.Apply(State{}, Init{
		Component: "Button",
		Restored: &Restored{
			Props:        map[string]any{"variant": "ghost", "bogus": "x"},
			WrapperProps: []map[string]string{{"density": "compact"}},
			Instances:    3,
		},
	})

	assert.Equal(t, "ghost", s.Props["variant"])
	assert.NotContains(t, s.Props, "bogus")
	assert.Equal(t, 3, s.Instances)
	// shallow merge keeps the wrapper's untouched defaults
	assert.Equal(t, "light", s.WrapperProps[0]["theme"])
	assert.Equal(t, "compact", s.WrapperProps[0]["density"])
}

func TestSelectComponent_ReplacesStateKeepsSearch(t *testing.T) {
	r := testReducer(t)
	s := r.Apply(State{}, Init{Component: "Button"})
	s = r.Apply(s, SetSearch{Text: "bad"})
	s = r.Apply(s, SetProp{Name: "variant", Value: "ghost"})

	s = r.Apply(s, SelectComponent{Name: "Badge"})
	assert.Equal(t, "Badge", s.Component)
	assert.Equal(t, "bad", s.Search)
	assert.NotContains(t, s.Props, "variant")
	assert.Empty(t, s.Overrides)
	assert.Equal(t, PresetGenerated, s.Preset)
	assert.Equal(t, 1, s.Instances)
}

func TestSetProp_UnknownNameIsNoop(t *testing.T) {
	r := testReducer(t)
	s := r.Apply(State{}, Init{Component: "Button"})
	next := r.Apply(s, SetProp{Name: "nope", Value: "x"})
	assert.Equal(t, s, next)
}

func TestSetProp_NilUnsets(t *testing.T) {
	r := testReducer(t)
	s := r.Apply(State{}, Init{Component: "Button"})
	s = r.Apply(s, SetProp{Name: "disabled", Value: nil})
	assert.NotContains(t, s.Props, "disabled")
}

func TestSetProp_AttachesAndClearsOverride(t *testing.T) {
	r := testReducer(t)
	s := r.Apply(State{}, Init{Component: "Button"})

	slot := fixture.PropSlot("icon")
	s = r.Apply(s, SetProp{
		Name:     "icon",
		Value:    "components/Badge",
		Override: &fixture.Override{Props: map[string]any{"count": 9}},
	})
	require.Contains(t, s.Overrides, slot)

	s = r.Apply(s, SetProp{Name: "icon", Value: "icons/star"})
	assert.NotContains(t, s.Overrides, slot)
}

func TestSetProp_DoesNotMutatePrevious(t *testing.T) {
	r := testReducer(t)
	s := r.Apply(State{}, Init{Component: "Button"})
	before := s.Props["variant"]
	_ = r.Apply(s, SetProp{Name: "variant", Value: "ghost"})
	assert.Equal(t, before, s.Props["variant"])
}

func TestChildren_AddUpdateRemove(t *testing.T) {
	r := testReducer(t)
	s := r.Apply(State{}, Init{Component: "Button"})

	s = r.Apply(s, AddChild{Child: fixture.Child{Kind: fixture.ChildFixture, Key: "components/Badge"}})
	require.Len(t, s.Children, 2)

	s = r.Apply(s, UpdateChild{Index: 0, Child: fixture.Child{Kind: fixture.ChildText, Text: "hello"}})
	assert.Equal(t, "hello", s.Children[0].Text)

	// out of range indexes are no-ops
	assert.Equal(t, s, r.Apply(s, UpdateChild{Index: 9, Child: fixture.Child{}}))
	assert.Equal(t, s, r.Apply(s, RemoveChild{Index: -1}))

	s = r.Apply(s, RemoveChild{Index: 0})
	require.Len(t, s.Children, 1)
	assert.Equal(t, "components/Badge", s.Children[0].Key)
}

func TestRemoveChild_ShiftsOverrideSlots(t *testing.T) {
	r := testReducer(t)
	s := r.Apply(State{}, Init{Component: "Button"})
	s = r.Apply(s, AddChild{Child: fixture.Child{Kind: fixture.ChildFixture, Key: "components/Badge"}})

	slot := fixture.ChildSlot(1)
	s = r.Apply(s, SetProp{Name: "variant", Value: "primary"})
	s.Overrides[slot] = &fixture.Override{Props: map[string]any{"count": 2}}

	s = r.Apply(s, RemoveChild{Index: 0})
	assert.NotContains(t, s.Overrides, slot)
	require.Contains(t, s.Overrides, fixture.ChildSlot(0))
	assert.Equal(t, 2, s.Overrides[fixture.ChildSlot(0)].Props["count"])
}

func TestUpdateChild_NonFixtureClearsSlotOverride(t *testing.T) {
	r := testReducer(t)
	s := r.Apply(State{}, Init{Component: "Button"})
	s.Overrides[fixture.ChildSlot(0)] = &fixture.Override{Children: "x"}

	s = r.Apply(s, UpdateChild{Index: 0, Child: fixture.Child{Kind: fixture.ChildText, Text: "plain"}})
	assert.NotContains(t, s.Overrides, fixture.ChildSlot(0))
}

func TestOverrideEdits(t *testing.T) {
	r := testReducer(t)
	s := r.Apply(State{}, Init{Component: "Button"})
	slot := fixture.PropSlot("icon")
	s.Overrides[slot] = &fixture.Override{Props: map[string]any{"count": 1}}

	s = r.Apply(s, SetOverrideProp{Slot: slot, Prop: "count", Value: 5})
	assert.Equal(t, 5, s.Overrides[slot].Props["count"])

	s = r.Apply(s, SetOverrideProp{Slot: slot, Prop: "count", Value: nil})
	assert.NotContains(t, s.Overrides[slot].Props, "count")

	s = r.Apply(s, SetOverrideChildren{Slot: slot, Text: "inner"})
	assert.Equal(t, "inner", s.Overrides[slot].Children)

	s = r.Apply(s, ClearOverride{Slot: slot})
	assert.NotContains(t, s.Overrides, slot)

	// editing a missing slot is a no-op
	assert.Equal(t, s, r.Apply(s, SetOverrideProp{Slot: "prop:ghost", Prop: "a", Value: 1}))
	assert.Equal(t, s, r.Apply(s, SetOverrideChildren{Slot: "prop:ghost", Text: "x"}))
}

func TestSetWrapperProp(t *testing.T) {
	r := testReducer(t)
	s := r.Apply(State{}, Init{Component: "Button"})

	s = r.Apply(s, SetWrapperProp{Index: 0, Name: "theme", Value: "dark"})
	assert.Equal(t, "dark", s.WrapperProps[0]["theme"])

	assert.Equal(t, s, r.Apply(s, SetWrapperProp{Index: 5, Name: "theme", Value: "x"}))
}

func TestSetPreset_AppliesExampleValues(t *testing.T) {
	r := testReducer(t)
	s := r.Apply(State{}, Init{Component: "Button"})
	s.Overrides[fixture.PropSlot("icon")] = &fixture.Override{Children: "x"}

	s = r.Apply(s, SetPreset{Mode: PresetMode(0)})
	assert.Equal(t, PresetMode(0), s.Preset)
	assert.Equal(t, "ghost", s.Props["variant"])
	assert.NotContains(t, s.Props, "label")
	require.Len(t, s.Children, 1)
	assert.Equal(t, "Save draft", s.Children[0].Text)
	assert.Equal(t, "dark", s.WrapperProps[0]["theme"])
	assert.Empty(t, s.Overrides)
}

func TestSetPreset_BackToGenerated(t *testing.T) {
	r := testReducer(t)
	s := r.Apply(State{}, Init{Component: "Button"})
	s = r.Apply(s, SetPreset{Mode: PresetMode(0)})
	s = r.Apply(s, SetPreset{Mode: PresetGenerated})

	assert.Equal(t, PresetGenerated, s.Preset)
	assert.Equal(t, "primary", s.Props["variant"])
	assert.Equal(t, "light", s.WrapperProps[0]["theme"])
}

func TestSetPreset_OutOfRangeIsNoop(t *testing.T) {
	r := testReducer(t)
	s := r.Apply(State{}, Init{Component: "Button"})
	assert.Equal(t, s, r.Apply(s, SetPreset{Mode: PresetMode(7)}))
}

func TestSetInstances(t *testing.T) {
	r := testReducer(t)
	s := r.Apply(State{}, Init{Component: "Button"})
	s = r.Apply(s, SetInstances{Count: 4})
	assert.Equal(t, 4, s.Instances)
	assert.Equal(t, s, r.Apply(s, SetInstances{Count: 0}))
}

func TestReset(t *testing.T) {
	r := testReducer(t)
	s := r.Apply(State{}, Init{Component: "Button"})
	s = r.Apply(s, SetProp{Name: "variant", Value: "ghost"})
	s = r.Apply(s, SetInstances{Count: 3})

	s = r.Apply(s, Reset{})
	assert.Equal(t, "primary", s.Props["variant"])
	assert.Equal(t, 1, s.Instances)
}

func TestDiff_AgainstGeneratedDefaults(t *testing.T) {
	r := testReducer(t)
	s := r.Apply(State{}, Init{Component: "Button"})
	assert.Empty(t, r.Diff(s))

	s = r.Apply(s, SetProp{Name: "variant", Value: "ghost"})
	s = r.Apply(s, SetProp{Name: "disabled", Value: nil})

	diff := r.Diff(s)
	assert.Equal(t, "ghost", diff["variant"])
	val, present := diff["disabled"]
	assert.True(t, present)
	assert.Nil(t, val)
	assert.NotContains(t, diff, "label")
}

func TestUnknownComponentYieldsEmptyState(t *testing.T) {
	r := testReducer(t)
	s := r.Apply(State{}, Init{Component: "Missing"})
	assert.Equal(t, "Missing", s.Component)
	assert.Empty(t, s.Props)
	assert.Nil(t, s.Children)
	assert.Empty(t, r.Diff(s))
}
