// Package parser manages tree-sitter parsers for TypeScript/TSX and
// JavaScript sources, plus standalone JSX snippets from documentation
// comments.
package parser

import (
	"fmt"
	"log/slog"
	"sync"

	ts "github.com/tree-sitter/go-tree-sitter"
	ts_javascript "github.com/tree-sitter/tree-sitter-javascript/bindings/go"
	ts_typescript "github.com/tree-sitter/tree-sitter-typescript/bindings/go"

	"github.com/mde-pach/showkit/pkg/util"
)

// poolKey uniquely identifies a parser pool (language + TSX variant).
type poolKey struct {
	lang  Language
	isTSX bool
}

// Manager manages tree-sitter parsers with lazy per-language pools.
//
// Thread safety: multiple goroutines may parse concurrently; pool creation
// is synchronized with a write lock. Callers own returned Trees and must
// call tree.Close().
type Manager struct {
	pools  map[poolKey]*parserPool
	mu     sync.RWMutex
	logger *slog.Logger
}

// NewManager creates a Manager. The manager must be closed via Close().
func NewManager(logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	return &Manager{
		pools:  make(map[poolKey]*parserPool),
		logger: logger,
	}
}

// Parse parses source code with the given language grammar. The isTSX flag
// is only meaningful for TypeScript and enables JSX support.
//
// The returned Tree MUST be closed by the caller. Trees with syntax errors
// are still returned; partial trees remain useful for extraction.
func (m *Manager) Parse(source []byte, lang Language, isTSX bool) (*ts.Tree, error) {
	if lang == LanguageUnknown {
		return nil, fmt.Errorf("cannot parse unknown language")
	}

	pool, err := m.getOrCreatePool(lang, isTSX)
	if err != nil {
		return nil, fmt.Errorf("failed to get pool for %s: %w", lang, err)
	}

	p, err := pool.acquire()
	if err != nil {
		return nil, fmt.Errorf("failed to acquire parser: %w", err)
	}
	tree := p.Parse(source, nil)
	pool.release(p)

	if tree == nil {
		return nil, fmt.Errorf("parser returned nil tree")
	}

	if tree.RootNode().HasError() {
		m.logger.Debug("parse tree contains errors", "language", lang.String())
	}

	return tree, nil
}

// ParseFile parses a file's contents, detecting the language from its path.
func (m *Manager) ParseFile(source []byte, filePath string) (*ts.Tree, error) {
	lang := DetectLanguage(filePath)
	if lang == LanguageUnknown {
		return nil, fmt.Errorf("unsupported file extension: %s", filePath)
	}
	return m.Parse(source, lang, IsTSXFile(filePath))
}

// ParseSnippet parses a standalone JSX/TSX expression snippet (e.g. the body
// of an @example doc tag). The TSX grammar accepts a bare JSX element as an
// expression statement, so no wrapping is required.
func (m *Manager) ParseSnippet(snippet string) (*ts.Tree, error) {
	return m.Parse([]byte(snippet), LanguageTypeScript, true)
}

// Close releases all parser pools. The Manager cannot be used afterwards.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, pool := range m.pools {
		pool.close()
	}
	m.pools = make(map[poolKey]*parserPool)
}

// getOrCreatePool returns the pool for (lang, isTSX), creating it on first
// use with double-checked locking.
func (m *Manager) getOrCreatePool(lang Language, isTSX bool) (*parserPool, error) {
	key := poolKey{lang: lang, isTSX: isTSX}

	m.mu.RLock()
	pool, ok := m.pools[key]
	m.mu.RUnlock()
	if ok {
		return pool, nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if pool, ok = m.pools[key]; ok {
		return pool, nil
	}

	tsLang, err := grammar(lang, isTSX)
	if err != nil {
		return nil, err
	}

	pool = newParserPool(tsLang, util.GetOptimalPoolSize())
	m.pools[key] = pool

	m.logger.Debug("created parser pool", "language", lang.String(), "isTSX", isTSX)
	return pool, nil
}

// grammar returns the tree-sitter language for (lang, isTSX).
func grammar(lang Language, isTSX bool) (*ts.Language, error) {
	switch lang {
	case LanguageTypeScript:
		if isTSX {
			return ts.NewLanguage(ts_typescript.LanguageTSX()), nil
		}
		return ts.NewLanguage(ts_typescript.LanguageTypescript()), nil
	case LanguageJavaScript:
		return ts.NewLanguage(ts_javascript.Language()), nil
	default:
		return nil, fmt.Errorf("unsupported language: %s", lang.String())
	}
}
