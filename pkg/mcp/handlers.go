package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/mde-pach/showkit/pkg/codegen"
	"github.com/mde-pach/showkit/pkg/meta"
)

func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("marshal response: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}

type componentSummary struct {
	Name        string `json:"name"`
	FilePath    string `json:"file_path"`
	Description string `json:"description,omitempty"`
	PropCount   int    `json:"prop_count"`
	UsageTotal  int    `json:"usage_total"`
}

func summarize(c *meta.ComponentDescriptor) componentSummary {
	s := componentSummary{
		Name:        c.Name,
		FilePath:    c.FilePath,
		Description: c.Description,
		PropCount:   len(c.Props),
	}
	if c.Usage != nil {
		s.UsageTotal = c.Usage.Total
	}
	return s
}

func (s *Server) handleListComponents(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	keyword := req.GetString("keyword", "")

	comps := s.query.List(keyword)
	out := make([]componentSummary, 0, len(comps))
	for _, c := range comps {
		out = append(out, summarize(c))
	}
	return jsonResult(out)
}

func (s *Server) handleGetComponent(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	names := req.GetStringSlice("names", nil)
	if len(names) == 0 {
		return mcp.NewToolResultError("names is required and must not be empty"), nil
	}

	out := make([]*meta.ComponentDescriptor, 0, len(names))
	var missing []string
	for _, name := range names {
		c, ok := s.query.Get(name)
		if !ok {
			missing = append(missing, name)
			continue
		}
		out = append(out, c)
	}
	if len(missing) > 0 {
		return mcp.NewToolResultError(fmt.Sprintf("components not found: %s", strings.Join(missing, ", "))), nil
	}
	return jsonResult(out)
}

type searchResult struct {
	componentSummary
	MatchReason string `json:"match_reason"`
}

func (s *Server) handleSearchComponents(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := req.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	comps := s.query.Search(query)
	if len(comps) == 0 {
		return mcp.NewToolResultText(fmt.Sprintf("no components found for %q", query)), nil
	}

	term := strings.ToLower(query)
	out := make([]searchResult, 0, len(comps))
	for _, c := range comps {
		reason := "description"
		if strings.Contains(strings.ToLower(c.Name), term) {
			reason = "name"
		}
		out = append(out, searchResult{componentSummary: summarize(c), MatchReason: reason})
	}
	return jsonResult(out)
}

type exampleEntry struct {
	Index  int          `json:"index"`
	Code   string       `json:"code"`
	Preset *meta.Preset `json:"preset,omitempty"`
}

func (s *Server) handleGetComponentExamples(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := req.RequireString("name")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	c, ok := s.query.Get(name)
	if !ok {
		return mcp.NewToolResultError(fmt.Sprintf("component not found: %s", name)), nil
	}

	out := make([]exampleEntry, 0, len(c.Examples))
	for i, code := range c.Examples {
		entry := exampleEntry{Index: i, Code: code}
		if i < len(c.Presets) {
			entry.Preset = &c.Presets[i]
		}
		out = append(out, entry)
	}
	return jsonResult(out)
}

type resolvedDefaults struct {
	Name  string         `json:"name"`
	Props map[string]any `json:"props"`
	Code  string         `json:"code"`
}

func (s *Server) handleResolveDefaults(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := req.RequireString("name")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	c, ok := s.query.Get(name)
	if !ok {
		return mcp.NewToolResultError(fmt.Sprintf("component not found: %s", name)), nil
	}

	props := s.gen.Generate(c)
	tokens := s.cg.Component(c.Name, props, nil, nil, nil)
	return jsonResult(resolvedDefaults{
		Name:  c.Name,
		Props: props,
		Code:  codegen.Render(tokens),
	})
}
