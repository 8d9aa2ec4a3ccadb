// Package mcp exposes the workout store and its engines as MCP tools.
package mcp

import (
	"log/slog"

	"github.com/claude/liftlog/internal/stats"
	"github.com/claude/liftlog/internal/store"
	"github.com/mark3labs/mcp-go/server"
)

// New creates an MCP server with all tools registered.
func New(st store.Store, engine *stats.Engine, version string, log *slog.Logger) *server.MCPServer {
	s := server.NewMCPServer("LiftLog", version,
		server.WithToolCapabilities(false),
		server.WithInstructions("LiftLog workout tracking server. Query logged workouts, the exercise catalog, aggregate training statistics, and per-exercise progress."),
	)

	h := &handlers{store: st, stats: engine, log: log}

	s.AddTools(
		server.ServerTool{Tool: toolListWorkouts, Handler: h.listWorkouts},
		server.ServerTool{Tool: toolGetWorkout, Handler: h.getWorkout},
		server.ServerTool{Tool: toolListExercises, Handler: h.listExercises},
		server.ServerTool{Tool: toolGetWorkoutStats, Handler: h.getWorkoutStats},
		server.ServerTool{Tool: toolGetExerciseProgress, Handler: h.getExerciseProgress},
	)

	return s
}

// handlers holds dependencies for MCP tool handlers.
type handlers struct {
	store store.Store
	stats *stats.Engine
	log   *slog.Logger
}
