package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const todayURI = "macrotrack://today"

func (s *Server) registerResources() {
	s.mcpServer.AddResource(&mcp.Resource{
		URI:         todayURI,
		Name:        "Today's Nutrition",
		Description: "Totals, goals and progress for today",
		MIMEType:    "application/json",
	}, s.handleTodayResource)
}

func (s *Server) handleTodayResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	summary, err := s.summary.DailySummary(ctx, s.userID, s.dateOrToday(""))
	if err != nil {
		return nil, fmt.Errorf("failed to get summary: %w", err)
	}

	data, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal summary: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      todayURI,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}
