// Package mcp exposes one user's food log to MCP clients over stdio.
package mcp

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/pageza/macrotrack/backend/internal/service"
)

// Version is reported to MCP clients
const Version = "1.0.0"

// Server wraps the MCP server with service access for a single user.
type Server struct {
	mcpServer *mcp.Server
	userID    uuid.UUID
	meals     service.IMealService
	goals     service.IGoalsService
	summary   service.ISummaryService
	now       func() time.Time
}

// NewServer creates an MCP server acting as userID.
func NewServer(userID uuid.UUID, meals service.IMealService, goals service.IGoalsService, summary service.ISummaryService) *Server {
	s := &Server{
		mcpServer: mcp.NewServer(&mcp.Implementation{
			Name:    "macrotrack",
			Version: Version,
		}, nil),
		userID:  userID,
		meals:   meals,
		goals:   goals,
		summary: summary,
		now:     time.Now,
	}

	s.registerTools()
	s.registerResources()

	return s
}

// Serve runs the server on the stdio transport until ctx ends.
func (s *Server) Serve(ctx context.Context) error {
	return s.mcpServer.Run(ctx, &mcp.StdioTransport{})
}
