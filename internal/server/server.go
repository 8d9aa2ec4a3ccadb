// Package server exposes the store and engines over a JSON REST API.
package server

import (
	"log/slog"
	"net/http"

	"github.com/claude/liftlog/internal/stats"
	"github.com/claude/liftlog/internal/store"
	"github.com/go-chi/chi/v5"
)

// Server holds dependencies for HTTP handlers.
type Server struct {
	store  store.Store
	stats  *stats.Engine
	log    *slog.Logger
	router chi.Router
}

// New creates a new Server with all routes configured.
func New(st store.Store, engine *stats.Engine, log *slog.Logger) *Server {
	s := &Server{
		store:  st,
		stats:  engine,
		log:    log,
		router: chi.NewRouter(),
	}
	s.routes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() {
	s.router.Use(RequestLogging(s.log))
	s.router.Use(CORS)

	// Workouts
	s.router.Get("/api/workouts", s.handleListWorkouts)
	s.router.Post("/api/workouts", s.handleCreateWorkout)
	s.router.Get("/api/workouts/{id}", s.handleGetWorkout)
	s.router.Patch("/api/workouts/{id}", s.handlePatchWorkout)
	s.router.Delete("/api/workouts/{id}", s.handleDeleteWorkout)
	s.router.Post("/api/workouts/{workoutID}/exercises", s.handleAddExerciseToWorkout)

	// Exercises
	s.router.Get("/api/exercises", s.handleListExercises)
	s.router.Post("/api/exercises", s.handleCreateExercise)
	s.router.Get("/api/exercises/{id}", s.handleGetExercise)
	s.router.Get("/api/exercises/{id}/progress", s.handleExerciseProgress)

	// Sets
	s.router.Post("/api/workout-exercises/{workoutExerciseID}/sets", s.handleAddSet)
	s.router.Patch("/api/sets/{id}", s.handlePatchSet)
	s.router.Delete("/api/sets/{id}", s.handleDeleteSet)

	// Statistics and export
	s.router.Get("/api/stats", s.handleStats)
	s.router.Get("/api/export/csv", s.handleExportCSV)
}

// SetMCP mounts the MCP streamable HTTP handler under /mcp.
func (s *Server) SetMCP(h http.Handler) {
	s.router.Mount("/mcp", h)
}
