package parser

import (
	"fmt"
	"sync"

	ts "github.com/tree-sitter/go-tree-sitter"
)

// parserPool holds reusable parsers for one language grammar.
//
// Parsers are created lazily up to maxSize; acquire blocks when all parsers
// are in use. Channel operations make acquire/release thread-safe.
type parserPool struct {
	pool    chan *ts.Parser
	lang    *ts.Language
	maxSize int

	mu      sync.Mutex
	created int
	closed  bool
}

func newParserPool(lang *ts.Language, maxSize int) *parserPool {
	return &parserPool{
		pool:    make(chan *ts.Parser, maxSize),
		lang:    lang,
		maxSize: maxSize,
	}
}

// acquire returns a parser from the pool, creating one if the pool is empty
// and capacity remains. Blocks when maxSize parsers are all in use.
func (p *parserPool) acquire() (*ts.Parser, error) {
	select {
	case parser := <-p.pool:
		if parser != nil {
			return parser, nil
		}
		// nil means the channel is closed.
		return nil, fmt.Errorf("parser pool is closed")
	default:
	}

	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil, fmt.Errorf("parser pool is closed")
	}
	if p.created < p.maxSize {
		parser := ts.NewParser()
		if err := parser.SetLanguage(p.lang); err != nil {
			parser.Close()
			p.mu.Unlock()
			return nil, fmt.Errorf("failed to set language: %w", err)
		}
		p.created++
		p.mu.Unlock()
		return parser, nil
	}
	p.mu.Unlock()

	parser := <-p.pool
	if parser == nil {
		return nil, fmt.Errorf("parser pool is closed")
	}
	return parser, nil
}

// release returns a parser to the pool for reuse. Releasing into a closed
// pool closes the parser instead of sending on the closed channel.
func (p *parserPool) release(parser *ts.Parser) {
	if parser == nil {
		return
	}
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		parser.Close()
		return
	}
	select {
	case p.pool <- parser:
	default:
		// Pool already full; close the excess parser.
		parser.Close()
	}
	p.mu.Unlock()
}

// close drains the pool and closes every parser in it. Idempotent; in-flight
// parsers are closed by release when they come back.
func (p *parserPool) close() {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.closed = true
	close(p.pool)
	p.mu.Unlock()

	for parser := range p.pool {
		if parser != nil {
			parser.Close()
		}
	}
}
