package pipeline

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/mde-pach/showkit/pkg/meta"
)

// LoaderEntry maps one component display name to the import path a host
// application loads it from. Paths are root-relative, alias-rewritten, with
// the source extension (and a trailing /index) stripped.
type LoaderEntry struct {
	Name       string `json:"name"`
	ImportPath string `json:"import_path"`
}

// BuildLoaderSpec derives the lazy-loader registry from a validated document.
// Entries come out sorted by component name for stable serialization.
func BuildLoaderSpec(doc *meta.Document, root string) ([]LoaderEntry, error) {
	entries := make([]LoaderEntry, 0, len(doc.Components))
	for _, c := range doc.Components {
		importPath, err := computeImportPath(root, c.FilePath, doc.Aliases)
		if err != nil {
			return nil, fmt.Errorf("loader entry for %s: %w", c.Name, err)
		}
		entries = append(entries, LoaderEntry{Name: c.Name, ImportPath: importPath})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name < entries[j].Name })
	return entries, nil
}

var sourceExtensions = []string{".tsx", ".ts", ".jsx", ".js", ".mjs", ".cjs"}

// computeImportPath turns an absolute source path into an import specifier:
// relative to root, slash-separated, extension stripped, /index collapsed,
// and rewritten through the longest matching alias prefix.
func computeImportPath(root, file string, aliases map[string]string) (string, error) {
	rel, err := filepath.Rel(root, file)
	if err != nil {
		return "", fmt.Errorf("cannot relativize %s: %w", file, err)
	}
	path := filepath.ToSlash(rel)

	for _, ext := range sourceExtensions {
		if strings.HasSuffix(path, ext) {
			path = strings.TrimSuffix(path, ext)
			break
		}
	}
	path = strings.TrimSuffix(path, "/index")

	bestAlias, bestDir := "", ""
	for alias, dir := range aliases {
		dir = strings.Trim(filepath.ToSlash(dir), "/")
		if (path == dir || strings.HasPrefix(path, dir+"/")) && len(dir) > len(bestDir) {
			bestAlias, bestDir = alias, dir
		}
	}
	if bestDir != "" {
		path = bestAlias + strings.TrimPrefix(path, bestDir)
	} else if !strings.HasPrefix(path, ".") {
		path = "./" + path
	}
	return path, nil
}
