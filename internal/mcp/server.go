// Package mcp exposes the sandboxed filesystem operations as MCP tools,
// served over stdio or streamable HTTP.
package mcp

import (
	"context"

	"github.com/neboloop/fsgate/internal/fsops"
	"github.com/neboloop/fsgate/internal/mcp/tools"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const serverVersion = "1.0.0"

// Server wraps the MCP server with all filesystem tools registered.
type Server struct {
	server *mcp.Server
}

// NewServer creates an MCP server bound to the given operations.
func NewServer(ops *fsops.Ops) *Server {
	server := mcp.NewServer(&mcp.Implementation{
		Name:    "fsgate",
		Version: serverVersion,
	}, nil)

	tools.RegisterFileTools(server, ops)

	return &Server{server: server}
}

// Run serves MCP over stdio until the context is cancelled.
func (s *Server) Run(ctx context.Context) error {
	return s.server.Run(ctx, &mcp.StdioTransport{})
}
