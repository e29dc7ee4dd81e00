// Package mcp exposes the extracted component metadata over the Model
// Context Protocol so coding agents can query props, examples, and generated
// default values for the showcased library.
package mcp

import (
	"github.com/mark3labs/mcp-go/server"

	"github.com/mde-pach/showkit/pkg/codegen"
	"github.com/mde-pach/showkit/pkg/faker"
	"github.com/mde-pach/showkit/pkg/meta"
)

const serverVersion = "0.1.0-dev"

// Server implements the MCP server for showkit, exposing metadata query and
// default-resolution tools.
type Server struct {
	mcpServer *server.MCPServer
	query     *meta.QueryService
	gen       *faker.Generator
	cg        *codegen.Generator
}

// NewServer creates an MCP server backed by the given QueryService. The
// generator and code generator may be nil; plugin-free defaults are used.
func NewServer(qs *meta.QueryService, gen *faker.Generator, cg *codegen.Generator) *Server {
	if gen == nil {
		gen = faker.NewGenerator(nil)
	}
	if cg == nil {
		cg = codegen.New(qs.Doc, nil, gen.Generate)
	}
	s := &Server{query: qs, gen: gen, cg: cg}

	s.mcpServer = server.NewMCPServer(
		"showkit",
		serverVersion,
		server.WithToolCapabilities(false),
		server.WithRecovery(),
	)

	s.mcpServer.AddTools(
		server.ServerTool{Tool: listComponentsTool(), Handler: s.handleListComponents},
		server.ServerTool{Tool: getComponentTool(), Handler: s.handleGetComponent},
		server.ServerTool{Tool: searchComponentsTool(), Handler: s.handleSearchComponents},
		server.ServerTool{Tool: getComponentExamplesTool(), Handler: s.handleGetComponentExamples},
		server.ServerTool{Tool: resolveDefaultsTool(), Handler: s.handleResolveDefaults},
	)

	return s
}

// ServeStdio starts the MCP server on stdin/stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}
