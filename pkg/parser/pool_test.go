package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	ts "github.com/tree-sitter/go-tree-sitter"
	ts_typescript "github.com/tree-sitter/tree-sitter-typescript/bindings/go"
)

func newTestPool(t *testing.T, maxSize int) *parserPool {
	t.Helper()
	return newParserPool(ts.NewLanguage(ts_typescript.LanguageTSX()), maxSize)
}

func TestParserPool_AcquireRelease(t *testing.T) {
	p := newTestPool(t, 2)
	defer p.close()

	parser, err := p.acquire()
	require.NoError(t, err)
	require.NotNil(t, parser)
	p.release(parser)

	again, err := p.acquire()
	require.NoError(t, err)
	assert.Same(t, parser, again)
	p.release(again)
}

func TestParserPool_ReleaseAfterClose(t *testing.T) {
	p := newTestPool(t, 2)

	parser, err := p.acquire()
	require.NoError(t, err)

	p.close()

	assert.NotPanics(t, func() { p.release(parser) })
}

func TestParserPool_AcquireAfterCloseErrors(t *testing.T) {
	p := newTestPool(t, 2)
	p.close()

	_, err := p.acquire()
	assert.Error(t, err)
}

func TestParserPool_CloseIsIdempotent(t *testing.T) {
	p := newTestPool(t, 1)
	p.close()
	assert.NotPanics(t, p.close)
}
