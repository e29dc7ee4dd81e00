package typesim

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mde-pach/showkit/pkg/meta"
)

func TestIsTypeNameToken_Primitives(t *testing.T) {
	for _, tok := range []string{"string", "number", "boolean", "undefined", "null", "true", "false", "ReactNode"} {
		assert.True(t, IsTypeNameToken(tok), "%q should be a type name token", tok)
	}
}

func TestIsTypeNameToken_NamespacePrefixes(t *testing.T) {
	for _, tok := range []string{
		"React.ReactNode", "JSX.Element", "Promise<void>", "Record<string, string>",
		"Array<string>", "Set<number>", "Map<string, number>", "HTMLDivElement",
	} {
		assert.True(t, IsTypeNameToken(tok), "%q should be a type name token", tok)
	}
}

func TestIsTypeNameToken_Syntax(t *testing.T) {
	assert.True(t, IsTypeNameToken("() => void"))
	assert.True(t, IsTypeNameToken("string[]"))
	assert.True(t, IsTypeNameToken("{ a: string }"))
}

func TestIsTypeNameToken_PascalCaseLengthHeuristic(t *testing.T) {
	// Short capitalized words pass as enum values; long ones are presumed
	// type names. Deliberate precision/recall tradeoff: a legitimately long
	// PascalCase enum member is misclassified.
	assert.False(t, IsTypeNameToken("Small"))
	assert.False(t, IsTypeNameToken("Medium"))
	assert.True(t, IsTypeNameToken("ButtonVariant"))
	assert.True(t, IsTypeNameToken("Primary1Color"))
}

func TestIsTypeNameToken_Literals(t *testing.T) {
	assert.False(t, IsTypeNameToken(`"primary"`))
	assert.False(t, IsTypeNameToken("'outline'"))
	assert.False(t, IsTypeNameToken("42"))
	assert.False(t, IsTypeNameToken("-1"))
	assert.False(t, IsTypeNameToken("primary"))
}

func TestClassifyRenderable_TypeBased(t *testing.T) {
	assert.Equal(t, meta.RenderIcon, ClassifyRenderable("leading", "LucideIcon"))
	assert.Equal(t, meta.RenderElement, ClassifyRenderable("slot", "ReactElement"))
	assert.Equal(t, meta.RenderElement, ClassifyRenderable("slot", "JSX.Element"))
	assert.Equal(t, meta.RenderNode, ClassifyRenderable("body", "ReactNode"))
	assert.Equal(t, meta.RenderNone, ClassifyRenderable("count", "number"))
}

func TestClassifyRenderable_ComponentTypeWithSizeIsIcon(t *testing.T) {
	assert.Equal(t, meta.RenderIcon, ClassifyRenderable("glyph", "ComponentType<{ size?: number }>"))
	assert.Equal(t, meta.RenderElement, ClassifyRenderable("slot", "ComponentType<Props>"))
}

func TestClassifyRenderable_ConfidentNames(t *testing.T) {
	// Confident names resolve even when the type is ambiguous.
	assert.Equal(t, meta.RenderIcon, ClassifyRenderable("icon", "enum"))
	assert.Equal(t, meta.RenderIcon, ClassifyRenderable("startIcon", "unknown"))
	assert.Equal(t, meta.RenderNode, ClassifyRenderable("trigger", ""))
	assert.Equal(t, meta.RenderElement, ClassifyRenderable("badge", "any"))
}

func TestClassifyRenderable_PlainDataTypesBeatNames(t *testing.T) {
	// A prop typed as plain data keeps its data classification even under a
	// strongly renderable name.
	assert.Equal(t, meta.RenderNone, ClassifyRenderable("label", "string"))
	assert.Equal(t, meta.RenderNone, ClassifyRenderable("icon", `"chevron" | "cross"`))
	assert.Equal(t, meta.RenderNone, ClassifyRenderable("badge", "number"))
}

func TestClassifyRenderable_LessConfidentNamesNeedTypeSignal(t *testing.T) {
	// "title" alone is usually a string; it only resolves with a Node signal.
	assert.Equal(t, meta.RenderNone, ClassifyRenderable("title", "string"))
	assert.Equal(t, meta.RenderNode, ClassifyRenderable("title", "string | ReactNode"))
	assert.Equal(t, meta.RenderNone, ClassifyRenderable("content", ""))
	assert.Equal(t, meta.RenderNode, ClassifyRenderable("content", "ReactNode"))
}

func TestClassifyRenderable_StructuredDataIsNeverRenderable(t *testing.T) {
	// An array of objects with a renderable field is structured data, not a
	// direct render slot.
	assert.Equal(t, meta.RenderNone,
		ClassifyRenderable("actions", "{ label: string; icon: ReactNode }[]"))
	assert.Equal(t, meta.RenderNone,
		ClassifyRenderable("items", "Array<{ content: ReactElement }>"))
	assert.Equal(t, meta.RenderNone,
		ClassifyRenderable("trigger", "{ node: ReactNode }"))
}

func TestExpandNamed_Basic(t *testing.T) {
	lookup := func(name string) ([]RawField, bool) {
		switch name {
		case "Stat":
			return []RawField{
				{Name: "label", Type: "string"},
				{Name: "value", Type: "number", Optional: true},
				{Name: "tone", Type: `"up" | "down"`},
			}, true
		}
		return nil, false
	}

	fields := ExpandNamed("Stat", lookup)
	assert.Len(t, fields, 3)
	assert.Equal(t, "label", fields[0].Name)
	assert.True(t, fields[1].Optional)
	assert.Equal(t, []string{"up", "down"}, fields[2].Values)
}

func TestExpandNamed_RecursesWithCycleProtection(t *testing.T) {
	lookup := func(name string) ([]RawField, bool) {
		switch name {
		case "TreeNode":
			return []RawField{
				{Name: "id", Type: "string"},
				{Name: "parent", Type: "TreeNode", Optional: true},
			}, true
		}
		return nil, false
	}

	fields := ExpandNamed("TreeNode", lookup)
	assert.Len(t, fields, 2)
	// The self-reference stops expanding instead of recursing forever.
	assert.Empty(t, fields[1].Fields)
}

func TestExpandNamed_RecordLeftOpaque(t *testing.T) {
	lookup := func(name string) ([]RawField, bool) {
		t.Fatalf("lookup should not be called for Record types, got %q", name)
		return nil, false
	}
	assert.Nil(t, ExpandNamed("Record<string, string>", lookup))
}

func TestExpandNamed_RenderableFieldExcludesNestedFields(t *testing.T) {
	lookup := func(name string) ([]RawField, bool) {
		switch name {
		case "Card":
			return []RawField{{Name: "icon", Type: "LucideIcon"}}, true
		case "LucideIcon":
			t.Fatal("renderable field should not be expanded")
		}
		return nil, false
	}

	fields := ExpandNamed("Card", lookup)
	assert.Equal(t, meta.RenderIcon, fields[0].Kind)
	assert.Empty(t, fields[0].Fields)
}

func TestAnalyzeArrayItem(t *testing.T) {
	lookup := func(name string) ([]RawField, bool) {
		if name == "Row" {
			return []RawField{{Name: "cells", Type: "string[]"}}, true
		}
		return nil, false
	}

	item := AnalyzeArrayItem("string[]", nil)
	assert.NotNil(t, item)
	assert.Equal(t, "string", item.Type)
	assert.False(t, item.Renderable)

	item = AnalyzeArrayItem("Array<ReactNode>", nil)
	assert.NotNil(t, item)
	assert.True(t, item.Renderable)

	item = AnalyzeArrayItem("Row[]", lookup)
	assert.NotNil(t, item)
	assert.Len(t, item.Fields, 1)

	assert.Nil(t, AnalyzeArrayItem("string", nil))
}
