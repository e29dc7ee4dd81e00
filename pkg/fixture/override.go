package fixture

import (
	"fmt"
	"strconv"
	"strings"
)

// ChildKind tags one children-list entry.
type ChildKind string

const (
	ChildText    ChildKind = "text"
	ChildFixture ChildKind = "fixture"
	ChildElement ChildKind = "element"
)

// Child is one ordered entry of a component's children list.
type Child struct {
	Kind ChildKind `json:"kind"`
	// Text holds the literal content for ChildText entries.
	Text string `json:"text,omitempty"`
	// Key is the qualified fixture key (or components/Name reference) for
	// ChildFixture entries.
	Key string `json:"key,omitempty"`
	// Element carries a pre-built value for ChildElement entries.
	Element any `json:"-"`
}

// Override customizes a nested component fixture bound to one slot.
type Override struct {
	Props    map[string]any `json:"props,omitempty"`
	Children string         `json:"children,omitempty"`
}

// Overrides maps slot keys ("prop:<name>" or "children:<index>") to the
// override for the component fixture selected in that slot.
type Overrides map[string]*Override

// PropSlot is the override key for a prop slot.
func PropSlot(name string) string { return "prop:" + name }

// ChildSlot is the override key for a children-list index.
func ChildSlot(index int) string { return fmt.Sprintf("children:%d", index) }

// ShiftAfterRemoval re-binds children-slot overrides after the item at the
// given index is removed: the removed slot's override is dropped and every
// higher index shifts down by one. Prop slots are untouched.
func (o Overrides) ShiftAfterRemoval(removed int) {
	delete(o, ChildSlot(removed))
	shifted := make(map[string]*Override)
	for slot, ov := range o {
		idx, ok := childSlotIndex(slot)
		if !ok || idx < removed {
			continue
		}
		shifted[ChildSlot(idx-1)] = ov
		delete(o, slot)
	}
	for slot, ov := range shifted {
		o[slot] = ov
	}
}

func childSlotIndex(slot string) (int, bool) {
	rest, found := strings.CutPrefix(slot, "children:")
	if !found {
		return 0, false
	}
	idx, err := strconv.Atoi(rest)
	if err != nil {
		return 0, false
	}
	return idx, true
}
