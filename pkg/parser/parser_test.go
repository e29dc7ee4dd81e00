package parser

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectLanguage(t *testing.T) {
	assert.Equal(t, LanguageTypeScript, DetectLanguage("a.ts"))
	assert.Equal(t, LanguageTypeScript, DetectLanguage("a.tsx"))
	assert.Equal(t, LanguageJavaScript, DetectLanguage("a.js"))
	assert.Equal(t, LanguageJavaScript, DetectLanguage("a.jsx"))
	assert.Equal(t, LanguageUnknown, DetectLanguage("a.css"))
}

func TestIsTSXFile(t *testing.T) {
	assert.True(t, IsTSXFile("a.tsx"))
	assert.False(t, IsTSXFile("a.ts"))
}

func TestParseFile(t *testing.T) {
	m := NewManager(nil)
	defer m.Close()

	source := []byte(`export function Button() { return <button>ok</button> }`)
	tree, err := m.ParseFile(source, "button.tsx")
	require.NoError(t, err)
	defer tree.Close()

	root := tree.RootNode()
	assert.Equal(t, "program", root.Kind())
	assert.False(t, root.HasError())
}

func TestParseFile_UnknownExtension(t *testing.T) {
	m := NewManager(nil)
	defer m.Close()

	_, err := m.ParseFile([]byte("body {}"), "style.css")
	assert.Error(t, err)
}

func TestParseSnippet_BareJSXElement(t *testing.T) {
	m := NewManager(nil)
	defer m.Close()

	tree, err := m.ParseSnippet(`<Accordion><AccordionItem /></Accordion>`)
	require.NoError(t, err)
	defer tree.Close()
	assert.False(t, tree.RootNode().HasError())
}

func TestParse_BrokenSourceStillReturnsTree(t *testing.T) {
	m := NewManager(nil)
	defer m.Close()

	tree, err := m.Parse([]byte("const = = <Button"), LanguageTypeScript, true)
	require.NoError(t, err)
	defer tree.Close()
	assert.True(t, tree.RootNode().HasError())
}

func TestParse_ConcurrentUse(t *testing.T) {
	m := NewManager(nil)
	defer m.Close()

	source := []byte(`export const Card = () => <div />`)
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			tree, err := m.ParseFile(source, "card.tsx")
			assert.NoError(t, err)
			if tree != nil {
				tree.Close()
			}
		}()
	}
	wg.Wait()
}
