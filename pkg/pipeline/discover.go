package pipeline

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// Discover resolves the configured globs under root to a sorted, deduplicated
// list of absolute source paths, with excluded basenames and non-component
// directories filtered out. A nonexistent root is the one environment failure
// that aborts a run.
func Discover(root string, cfg Config) ([]string, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("source root %s: %w", root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("source root %s is not a directory", root)
	}

	globs := cfg.Globs
	if len(globs) == 0 {
		globs = DefaultConfig().Globs
	}
	excluded := cfg.ExcludedBasenames
	if excluded == nil {
		excluded = DefaultConfig().ExcludedBasenames
	}

	seen := make(map[string]bool)
	var files []string
	fsys := os.DirFS(root)
	for _, pattern := range globs {
		matches, err := doublestar.Glob(fsys, pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid glob %q: %w", pattern, err)
		}
		for _, rel := range matches {
			abs := filepath.Join(root, filepath.FromSlash(rel))
			if seen[abs] {
				continue
			}
			seen[abs] = true
			if skipPath(rel, excluded) {
				continue
			}
			files = append(files, abs)
		}
	}
	sort.Strings(files)
	return files, nil
}

func skipPath(rel string, excludedBasenames []string) bool {
	for _, segment := range strings.Split(rel, "/") {
		if excludedDirs[segment] {
			return true
		}
	}
	base := filepath.Base(rel)
	for _, pattern := range excludedBasenames {
		if ok, err := filepath.Match(pattern, base); err == nil && ok {
			return true
		}
	}
	return false
}
