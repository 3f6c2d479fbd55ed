package mcp

import (
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// New creates an MCP server with all tools and resources registered.
func New(ds DataSource, version string, log *slog.Logger) *server.MCPServer {
	s := server.NewMCPServer("jellyfit", version,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
		server.WithInstructions("jellyfit training log. Query finished workout sessions, the weekly training plan, the athlete profile, summary statistics and coaching insights."),
	)

	h := &handlers{ds: ds, log: log}

	// Tools
	s.AddTools(
		server.ServerTool{Tool: toolGetSessions, Handler: h.getSessions},
		server.ServerTool{Tool: toolGetSession, Handler: h.getSession},
		server.ServerTool{Tool: toolGetWeeklyPlan, Handler: h.getWeeklyPlan},
		server.ServerTool{Tool: toolGetProfile, Handler: h.getProfile},
		server.ServerTool{Tool: toolGetTrainingStats, Handler: h.getTrainingStats},
		server.ServerTool{Tool: toolGetInsights, Handler: h.getInsights},
	)

	// Resources
	s.AddResources(
		server.ServerResource{Resource: resWeeklyPlan, Handler: h.weeklyPlan},
		server.ServerResource{Resource: resRecentSessions, Handler: h.recentSessions},
	)

	return s
}

// handlers holds dependencies for MCP tool/resource handlers.
type handlers struct {
	ds  DataSource
	log *slog.Logger
}

// --- Resource definitions ---

var resWeeklyPlan = mcp.NewResource(
	"jellyfit://weekly_plan",
	"Weekly Plan",
	mcp.WithResourceDescription("The current seven-day training plan with per-day completion"),
	mcp.WithMIMEType("application/json"),
)

var resRecentSessions = mcp.NewResource(
	"jellyfit://recent_sessions",
	"Recent Sessions",
	mcp.WithResourceDescription("Workout sessions finished in the last 14 days"),
	mcp.WithMIMEType("application/json"),
)
