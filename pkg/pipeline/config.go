package pipeline

import "github.com/mde-pach/showkit/pkg/analyzer"

// Config is the full pipeline configuration surface. Zero values fall back
// to DefaultConfig semantics field by field.
type Config struct {
	// Globs are doublestar patterns resolved relative to the project root.
	Globs []string `json:"globs,omitempty"`
	// ExcludedBasenames are glob patterns matched against file basenames.
	ExcludedBasenames []string `json:"excluded_basenames,omitempty"`
	// ExcludedComponents are display names dropped after analysis.
	ExcludedComponents []string `json:"excluded_components,omitempty"`
	// Aliases maps import aliases to root-relative directories, e.g.
	// "@" -> "src". Loader import paths are rewritten through it.
	Aliases map[string]string `json:"aliases,omitempty"`
	// OutputPath is where the metadata document is written.
	OutputPath string `json:"output_path,omitempty"`
	// Workers caps the analysis worker pool; 0 picks a CPU-derived size.
	Workers int `json:"workers,omitempty"`

	Analyzer analyzer.Config `json:"analyzer,omitempty"`
}

// DefaultConfig scans TSX/JSX sources, skips test/story/declaration files,
// and filters the standard DOM passthrough props.
func DefaultConfig() Config {
	return Config{
		Globs: []string{"**/*.tsx", "**/*.jsx"},
		ExcludedBasenames: []string{
			"*.test.*",
			"*.spec.*",
			"*.stories.*",
			"*.d.ts",
		},
		OutputPath: "showkit.meta.json",
		Analyzer:   analyzer.DefaultConfig(),
	}
}

// excludedDirs are dependency and build-output directories never worth
// scanning.
var excludedDirs = map[string]bool{
	"node_modules": true,
	"dist":         true,
	"build":        true,
	"out":          true,
	"coverage":     true,
	".next":        true,
	".git":         true,
}
