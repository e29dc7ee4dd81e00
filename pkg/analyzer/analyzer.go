// Package analyzer turns parsed TypeScript/TSX sources into component
// descriptors: it detects component definitions, resolves their props types
// against same-file declarations, and classifies every prop.
package analyzer

import (
	"fmt"
	"log/slog"
	"os"
	"regexp"

	"github.com/mde-pach/showkit/pkg/meta"
	"github.com/mde-pach/showkit/pkg/parser"
)

// Config controls prop filtering during analysis.
type Config struct {
	// FilteredProps are prop names excluded from descriptors. children is
	// always filtered; it feeds AcceptsChildren instead.
	FilteredProps []string
	// FilteredPropPatterns are regexes matched against prop names.
	FilteredPropPatterns []string
	// ExportedOnly limits detection to exported components.
	ExportedOnly bool
}

// DefaultConfig filters the DOM passthrough props that never belong in a
// showcase panel.
func DefaultConfig() Config {
	return Config{
		FilteredProps:        []string{"children", "className", "style", "key", "ref"},
		FilteredPropPatterns: []string{`^aria-`, `^data-`},
	}
}

// Warning is a non-fatal analysis finding. Soft warnings flag heuristic
// fallbacks; hard warnings flag skipped or unreadable inputs.
type Warning struct {
	File    string `json:"file"`
	Message string `json:"message"`
	Soft    bool   `json:"soft,omitempty"`
}

// Analyzer extracts component descriptors from source files.
type Analyzer struct {
	pm       *parser.Manager
	cfg      Config
	filtered map[string]bool
	patterns []*regexp.Regexp
	logger   *slog.Logger
}

// New builds an Analyzer. Invalid filter patterns are rejected up front so a
// bad config fails the run instead of silently matching nothing.
func New(pm *parser.Manager, cfg Config, logger *slog.Logger) (*Analyzer, error) {
	if logger == nil {
		logger = slog.Default()
	}
	filtered := make(map[string]bool, len(cfg.FilteredProps)+1)
	filtered["children"] = true
	for _, name := range cfg.FilteredProps {
		filtered[name] = true
	}
	patterns := make([]*regexp.Regexp, 0, len(cfg.FilteredPropPatterns))
	for _, expr := range cfg.FilteredPropPatterns {
		re, err := regexp.Compile(expr)
		if err != nil {
			return nil, fmt.Errorf("invalid filtered prop pattern %q: %w", expr, err)
		}
		patterns = append(patterns, re)
	}
	return &Analyzer{
		pm:       pm,
		cfg:      cfg,
		filtered: filtered,
		patterns: patterns,
		logger:   logger,
	}, nil
}

// AnalyzeFile reads and analyzes a single source file. A missing file is not
// an error; it yields no components.
func (a *Analyzer) AnalyzeFile(path string) ([]meta.ComponentDescriptor, []Warning, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil, nil
		}
		return nil, []Warning{{File: path, Message: fmt.Sprintf("unreadable: %v", err)}}, nil
	}
	return a.AnalyzeSource(path, source)
}

// AnalyzeSource analyzes in-memory source attributed to path. Components come
// back in source order.
func (a *Analyzer) AnalyzeSource(path string, source []byte) ([]meta.ComponentDescriptor, []Warning, error) {
	tree, err := a.pm.ParseFile(source, path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	defer tree.Close()

	candidates, decls := scanFile(tree.RootNode(), source)
	var components []meta.ComponentDescriptor
	var warnings []Warning
	for _, c := range candidates {
		if a.cfg.ExportedOnly && !c.exported {
			continue
		}
		desc, ws := a.describe(path, c, decls, source)
		components = append(components, desc)
		warnings = append(warnings, ws...)
	}
	return components, warnings, nil
}

// AnalyzeComponent analyzes path and returns the named component. The second
// return is false when the file or the component does not exist.
func (a *Analyzer) AnalyzeComponent(path, name string) (*meta.ComponentDescriptor, bool, error) {
	components, _, err := a.AnalyzeFile(path)
	if err != nil {
		return nil, false, err
	}
	for i := range components {
		if components[i].Name == name {
			return &components[i], true, nil
		}
	}
	return nil, false, nil
}

// describe assembles the full descriptor for one detected component.
func (a *Analyzer) describe(path string, c candidate, decls *declarations, source []byte) (meta.ComponentDescriptor, []Warning) {
	desc := meta.ComponentDescriptor{
		Name:     c.name,
		FilePath: path,
	}
	var warnings []Warning

	if c.doc != nil {
		description, examples := parseJSDoc(c.doc.Utf8Text(source))
		desc.Description = description
		for _, ex := range examples {
			desc.Examples = append(desc.Examples, stripCodeFence(ex))
		}
	}

	defaults, destructured := destructuredDefaults(c.fnNode, source)

	typeName, inline := resolvePropsType(c.propsType, decls, source)
	var rawProps []rawProp
	resolved := false
	switch {
	case inline != nil:
		rawProps = objectTypeFields(inline, source)
		resolved = true
	case typeName != "":
		rawProps, resolved = collectFields(typeName, decls, make(map[string]bool))
		if !resolved {
			warnings = append(warnings, Warning{
				File:    path,
				Message: fmt.Sprintf("%s: props type %s not declared in file, skipping prop extraction", c.name, typeName),
				Soft:    true,
			})
		}
	}

	for _, raw := range rawProps {
		if a.isFiltered(raw.Name) {
			continue
		}
		def, hasDef := defaults[raw.Name]
		desc.Props = append(desc.Props, buildProp(raw, def, hasDef, decls))
	}

	switch {
	case typeDeclaresChildren(rawProps, c.rawPropsType):
		desc.AcceptsChildren = true
	case destructured["children"]:
		desc.AcceptsChildren = true
	case bodyReferencesChildren(c.fnNode, source):
		desc.AcceptsChildren = true
		warnings = append(warnings, Warning{
			File:    path,
			Message: fmt.Sprintf("%s: children acceptance inferred from body text only", c.name),
			Soft:    true,
		})
	}

	a.logger.Debug("analyzed component",
		"name", c.name,
		"file", path,
		"props", len(desc.Props),
		"children", desc.AcceptsChildren)
	return desc, warnings
}

func (a *Analyzer) isFiltered(name string) bool {
	if a.filtered[name] {
		return true
	}
	for _, re := range a.patterns {
		if re.MatchString(name) {
			return true
		}
	}
	return false
}
