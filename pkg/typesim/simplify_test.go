package typesim

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSimplify_StripsNullability(t *testing.T) {
	assert.Equal(t, `"sm" | "md" | "lg"`, Simplify(`"sm" | "md" | "lg" | undefined`))
	assert.Equal(t, "string", Simplify("string | null"))
	assert.Equal(t, "string | number", Simplify("string | null | number | undefined"))
}

func TestSimplify_Deduplicates(t *testing.T) {
	assert.Equal(t, "string | number", Simplify("string | number | string"))
	assert.Equal(t, `"a" | "b"`, Simplify(`"a" | "b" | "a"`))
}

func TestSimplify_LeavesMultiMemberUnionsIntact(t *testing.T) {
	assert.Equal(t, "string | number | boolean", Simplify("string | number | boolean"))
}

func TestSimplify_Idempotent(t *testing.T) {
	inputs := []string{
		`"sm" | "md" | "lg" | undefined`,
		"string | null",
		"ReactNode",
		"Array<{ label: string }> | undefined",
		"() => void | null",
		"'a' | 'b' | 'a' | null | undefined",
		"",
	}
	for _, in := range inputs {
		once := Simplify(in)
		assert.Equal(t, once, Simplify(once), "Simplify should be idempotent for %q", in)
	}
}

func TestSimplify_OnlyNullableCollapses(t *testing.T) {
	assert.Equal(t, "undefined", Simplify("null | undefined"))
}

func TestSimplify_RespectsNestedUnions(t *testing.T) {
	// The pipe inside the generic argument is not a top-level member.
	assert.Equal(t, `Record<string, "a" | "b">`, Simplify(`Record<string, "a" | "b"> | undefined`))
	assert.Equal(t, "(a: string | null) => void", Simplify("(a: string | null) => void | undefined"))
}

func TestExtractLiteralValues_Basic(t *testing.T) {
	assert.Equal(t, []string{"sm", "md", "lg"}, ExtractLiteralValues(`"sm" | "md" | "lg"`))
	assert.Equal(t, []string{"sm", "md", "lg"}, ExtractLiteralValues(`"sm" | "md" | "lg" | undefined`))
}

func TestExtractLiteralValues_SingleMemberIsConstant(t *testing.T) {
	assert.Nil(t, ExtractLiteralValues(`"default"`))
	assert.Nil(t, ExtractLiteralValues(`"default" | undefined`))
}

func TestExtractLiteralValues_MixedUnionYieldsNothing(t *testing.T) {
	assert.Nil(t, ExtractLiteralValues(`"sm" | string`))
	assert.Nil(t, ExtractLiteralValues("string | number"))
	assert.Nil(t, ExtractLiteralValues("ReactNode"))
}

func TestExtractLiteralValues_SourceOrder(t *testing.T) {
	assert.Equal(t, []string{"z", "a", "m"}, ExtractLiteralValues(`"z" | "a" | "m"`))
}

func TestSplitUnion_TopLevelOnly(t *testing.T) {
	assert.Equal(t,
		[]string{`Record<string, "a" | "b">`, "string"},
		SplitUnion(`Record<string, "a" | "b"> | string`))
	assert.Equal(t,
		[]string{`"a|b"`, `"c"`},
		SplitUnion(`"a|b" | "c"`))
}
