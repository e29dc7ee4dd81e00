package usage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mde-pach/showkit/pkg/util"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func newTestCounter(t *testing.T) *Counter {
	t.Helper()
	cache := util.NewFileCache(64, nil)
	t.Cleanup(func() { _ = cache.Close() })
	return NewCounter(cache, nil)
}

func TestCount_DirectExcludesOwnFile(t *testing.T) {
	dir := t.TempDir()
	button := writeFile(t, dir, "button.tsx", `
export function Button() { return <button /> }
// self reference in docs: <Button label="x" />
`)
	app := writeFile(t, dir, "app.tsx", `
export function App() { return <div><Button /><Button /></div> }
`)

	c := newTestCounter(t)
	counts, err := c.Count([]string{button, app}, map[string]string{"Button": button})
	require.NoError(t, err)
	assert.Equal(t, 2, counts["Button"].Direct, "references in the definition file do not count")
	assert.Equal(t, 2, counts["Button"].Total)
}

func TestCount_TagBoundaryAvoidsPrefixCollisions(t *testing.T) {
	dir := t.TempDir()
	defs := writeFile(t, dir, "defs.tsx", `
export function Button() { return <button /> }
export function ButtonGroup() { return <div /> }
`)
	app := writeFile(t, dir, "app.tsx", `
export function App() {
  return <ButtonGroup><Button /></ButtonGroup>
}
`)

	c := newTestCounter(t)
	counts, err := c.Count([]string{defs, app}, map[string]string{
		"Button":      defs,
		"ButtonGroup": defs,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, counts["Button"].Direct)
	assert.Equal(t, 1, counts["ButtonGroup"].Direct, "closing tags do not open-tag match")
}

func TestCount_IndirectPropagatesThroughRenderers(t *testing.T) {
	dir := t.TempDir()
	button := writeFile(t, dir, "button.tsx", `export function Button() { return <button /> }`)
	card := writeFile(t, dir, "card.tsx", `
export function Card() { return <div><Button /></div> }
`)
	app := writeFile(t, dir, "app.tsx", `
export function App() { return <main><Card /><Card /><Button /></main> }
`)

	c := newTestCounter(t)
	counts, err := c.Count([]string{button, card, app}, map[string]string{
		"Button": button,
		"Card":   card,
	})
	require.NoError(t, err)

	assert.Equal(t, 2, counts["Card"].Direct)
	assert.Equal(t, 0, counts["Card"].Indirect)

	// Button: one use in card.tsx, one in app.tsx, plus Card's two uses
	// flowing through the renders edge.
	assert.Equal(t, 2, counts["Button"].Direct)
	assert.Equal(t, 2, counts["Button"].Indirect)
	assert.Equal(t, 4, counts["Button"].Total)
}

func TestCount_CyclicRendersGraphStaysFinite(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.tsx", `export function Alpha() { return <Beta /> }`)
	b := writeFile(t, dir, "b.tsx", `export function Beta() { return <Alpha /> }`)

	c := newTestCounter(t)
	counts, err := c.Count([]string{a, b}, map[string]string{"Alpha": a, "Beta": b})
	require.NoError(t, err)

	// Alphabetically-first Alpha resolves first and sees Beta cut back to
	// its direct count at the cycle edge.
	assert.Equal(t, 1, counts["Alpha"].Direct)
	assert.Equal(t, 3, counts["Alpha"].Total)
	assert.Equal(t, 1, counts["Beta"].Direct)
	assert.Equal(t, 2, counts["Beta"].Total)
}

func TestCount_SelfRecursiveComponent(t *testing.T) {
	dir := t.TempDir()
	tree := writeFile(t, dir, "tree.tsx", `
export function TreeNode({ nodes }) {
  return <ul>{nodes.map(n => <TreeNode nodes={n.children} />)}</ul>
}
`)

	c := newTestCounter(t)
	counts, err := c.Count([]string{tree}, map[string]string{"TreeNode": tree})
	require.NoError(t, err)
	assert.Equal(t, 0, counts["TreeNode"].Direct, "self-recursion is not usage")
	assert.Equal(t, 0, counts["TreeNode"].Indirect)
}

func TestCount_UnreadableFilesAreSkipped(t *testing.T) {
	dir := t.TempDir()
	button := writeFile(t, dir, "button.tsx", `export function Button() { return <button /> }`)
	app := writeFile(t, dir, "app.tsx", `<Button />`)

	c := newTestCounter(t)
	counts, err := c.Count(
		[]string{button, app, filepath.Join(dir, "missing.tsx")},
		map[string]string{"Button": button},
	)
	require.NoError(t, err)
	assert.Equal(t, 1, counts["Button"].Direct)
}

func TestCount_NoComponents(t *testing.T) {
	c := newTestCounter(t)
	counts, err := c.Count(nil, nil)
	require.NoError(t, err)
	assert.Empty(t, counts)
}
