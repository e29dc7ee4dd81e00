// Package registry implements the lazy-loader side of the metadata document:
// each component display name maps to a deferred loader, loaded values are
// cached, and load failures surface as per-component error state instead of
// propagating.
package registry

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
)

// LoaderFunc yields the actual component implementation when first needed.
type LoaderFunc func(ctx context.Context) (any, error)

// DefaultCacheSize bounds the loaded-component cache.
const DefaultCacheSize = 256

// Registry maps display names to deferred loaders. Loads are cached by
// name plus base-props fingerprint; the cache is advisory, so two concurrent
// first loads of the same name may both run (wasteful, never incorrect).
type Registry struct {
	mu      sync.RWMutex
	loaders map[string]LoaderFunc
	order   []string
	errs    map[string]string

	cache  *lru.Cache[string, any]
	logger *slog.Logger
}

func New(cacheSize int, logger *slog.Logger) (*Registry, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if cacheSize <= 0 {
		cacheSize = DefaultCacheSize
	}
	cache, err := lru.New[string, any](cacheSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create loader cache: %w", err)
	}
	return &Registry{
		loaders: make(map[string]LoaderFunc),
		errs:    make(map[string]string),
		cache:   cache,
		logger:  logger,
	}, nil
}

// Register binds a loader to a display name. Re-registering replaces the
// loader and clears any cached value and error state for the name.
func (r *Registry) Register(name string, loader LoaderFunc) {
	r.mu.Lock()
	if _, exists := r.loaders[name]; !exists {
		r.order = append(r.order, name)
	}
	r.loaders[name] = loader
	delete(r.errs, name)
	r.mu.Unlock()
	r.evictName(name)
}

// Load resolves a component by name. The second return is false when the
// name was never registered. A loader failure is recorded as the name's
// error state and returned.
func (r *Registry) Load(ctx context.Context, name string, baseProps map[string]string) (any, bool, error) {
	r.mu.RLock()
	loader, ok := r.loaders[name]
	r.mu.RUnlock()
	if !ok {
		return nil, false, nil
	}

	key := fingerprint(name, baseProps)
	if v, hit := r.cache.Get(key); hit {
		return v, true, nil
	}

	v, err := loader(ctx)
	if err != nil {
		r.mu.Lock()
		r.errs[name] = err.Error()
		r.mu.Unlock()
		r.logger.Warn("component load failed", "name", name, "error", err)
		return nil, true, fmt.Errorf("failed to load component %s: %w", name, err)
	}

	r.mu.Lock()
	delete(r.errs, name)
	r.mu.Unlock()
	r.cache.Add(key, v)
	return v, true, nil
}

// Err returns the recorded load error for a name, if any.
func (r *Registry) Err(name string) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	msg, ok := r.errs[name]
	return msg, ok
}

// Names returns registered names in registration order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]string(nil), r.order...)
}

// Purge drops every cached value and all error state; loaders stay bound.
func (r *Registry) Purge() {
	r.cache.Purge()
	r.mu.Lock()
	r.errs = make(map[string]string)
	r.mu.Unlock()
}

func (r *Registry) evictName(name string) {
	prefix := name + "\x00"
	for _, key := range r.cache.Keys() {
		if strings.HasPrefix(key, prefix) {
			r.cache.Remove(key)
		}
	}
}

// fingerprint builds the cache key from the name and the sorted base props.
func fingerprint(name string, baseProps map[string]string) string {
	if len(baseProps) == 0 {
		return name + "\x00"
	}
	keys := make([]string, 0, len(baseProps))
	for k := range baseProps {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	var b strings.Builder
	b.WriteString(name)
	b.WriteByte(0)
	for _, k := range keys {
		b.WriteString(k)
		b.WriteByte('=')
		b.WriteString(baseProps[k])
		b.WriteByte(';')
	}
	return b.String()
}
