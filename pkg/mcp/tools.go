package mcp

import "github.com/mark3labs/mcp-go/mcp"

func listComponentsTool() mcp.Tool {
	return mcp.NewTool("list_components",
		mcp.WithDescription("List extracted components with prop counts and usage totals. Optionally filter by keyword against name and description."),
		mcp.WithString("keyword",
			mcp.Description("Case-insensitive keyword filter"),
		),
	)
}

func getComponentTool() mcp.Tool {
	return mcp.NewTool("get_component",
		mcp.WithDescription("Full metadata for one or more components by display name: props, wrappers, presets, usage counts."),
		mcp.WithArray("names",
			mcp.Required(),
			mcp.Description("Component display names"),
			mcp.Items(map[string]any{"type": "string"}),
		),
	)
}

func searchComponentsTool() mcp.Tool {
	return mcp.NewTool("search_components",
		mcp.WithDescription("Search components ranked by match quality: exact name, name prefix, name substring, description."),
		mcp.WithString("query",
			mcp.Required(),
			mcp.Description("Search term"),
		),
	)
}

func getComponentExamplesTool() mcp.Tool {
	return mcp.NewTool("get_component_examples",
		mcp.WithDescription("Documentation example snippets and parsed presets for one component."),
		mcp.WithString("name",
			mcp.Required(),
			mcp.Description("Component display name"),
		),
	)
}

func resolveDefaultsTool() mcp.Tool {
	return mcp.NewTool("resolve_defaults",
		mcp.WithDescription("Generated default prop values for one component, with the JSX snippet those values render to."),
		mcp.WithString("name",
			mcp.Required(),
			mcp.Description("Component display name"),
		),
	)
}
