// Package usage counts how often each component is referenced across a
// source tree and propagates counts through the renders graph, so a Button
// rendered by a widely-used Card inherits the Card's reach.
package usage

import (
	"fmt"
	"log/slog"
	"regexp"
	"sort"
	"strings"

	"github.com/mde-pach/showkit/pkg/meta"
	"github.com/mde-pach/showkit/pkg/util"
)

// Counter scans source files for JSX references to known components.
type Counter struct {
	cache  *util.FileCache
	logger *slog.Logger
}

func NewCounter(cache *util.FileCache, logger *slog.Logger) *Counter {
	if logger == nil {
		logger = slog.Default()
	}
	return &Counter{cache: cache, logger: logger}
}

// Count scans files for `<Name` references to every component in definedIn
// (component name -> definition file) and returns per-component counts.
//
// Direct counts exclude the component's own definition file. Indirect counts
// propagate along the renders graph: when A's definition file references B,
// every use of A implies a use of B. Cycles fall back to direct counts at
// the point of re-entry.
func (c *Counter) Count(files []string, definedIn map[string]string) (map[string]*meta.UsageCount, error) {
	if len(definedIn) == 0 {
		return map[string]*meta.UsageCount{}, nil
	}
	re, err := referencePattern(definedIn)
	if err != nil {
		return nil, err
	}

	direct := make(map[string]int, len(definedIn))
	// parents[B] holds the components whose definition files reference B.
	parents := make(map[string]map[string]bool)
	definers := make(map[string][]string)
	for name, file := range definedIn {
		direct[name] = 0
		definers[file] = append(definers[file], name)
	}

	for _, path := range files {
		mf, err := c.cache.Get(path)
		if err != nil {
			c.logger.Warn("skipping unreadable file during usage scan", "file", path, "error", err)
			continue
		}
		for _, match := range re.FindAllSubmatch(mf.Data, -1) {
			name := string(match[1])
			if definedIn[name] != path {
				direct[name]++
			}
			for _, definer := range definers[path] {
				if definer == name {
					continue
				}
				if parents[name] == nil {
					parents[name] = make(map[string]bool)
				}
				parents[name][definer] = true
			}
		}
	}

	r := &resolver{direct: direct, parents: parents,
		memo: make(map[string]int), active: make(map[string]bool)}
	// Fixed evaluation order keeps cyclic graphs deterministic: the first
	// component of a cycle (alphabetically) is the one that sees its partner
	// at direct-only strength.
	names := make([]string, 0, len(definedIn))
	for name := range definedIn {
		names = append(names, name)
	}
	sort.Strings(names)
	counts := make(map[string]*meta.UsageCount, len(definedIn))
	for _, name := range names {
		total := r.total(name)
		counts[name] = &meta.UsageCount{
			Direct:   direct[name],
			Indirect: total - direct[name],
			Total:    total,
		}
	}
	return counts, nil
}

// referencePattern builds one alternation over all component names, matching
// an opening tag boundary so Button never matches inside ButtonGroup.
func referencePattern(definedIn map[string]string) (*regexp.Regexp, error) {
	names := make([]string, 0, len(definedIn))
	for name := range definedIn {
		names = append(names, regexp.QuoteMeta(name))
	}
	sort.Strings(names)
	re, err := regexp.Compile(`<(` + strings.Join(names, "|") + `)[\s/>]`)
	if err != nil {
		return nil, fmt.Errorf("failed to build usage pattern: %w", err)
	}
	return re, nil
}

// resolver memoizes total counts over the renders graph.
type resolver struct {
	direct  map[string]int
	parents map[string]map[string]bool
	memo    map[string]int
	active  map[string]bool
}

// total is direct uses plus the totals of every component that renders this
// one. A component re-entered while its own total is still being computed
// contributes only its direct count, which keeps cyclic graphs finite.
func (r *resolver) total(name string) int {
	if v, ok := r.memo[name]; ok {
		return v
	}
	if r.active[name] {
		return r.direct[name]
	}
	r.active[name] = true
	t := r.direct[name]
	parents := make([]string, 0, len(r.parents[name]))
	for p := range r.parents[name] {
		parents = append(parents, p)
	}
	sort.Strings(parents)
	for _, p := range parents {
		t += r.total(p)
	}
	delete(r.active, name)
	r.memo[name] = t
	return t
}
