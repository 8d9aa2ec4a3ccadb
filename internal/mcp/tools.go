package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
)

// --- Tool definitions ---

var toolListWorkouts = mcp.NewTool("list_workouts",
	mcp.WithDescription("List every logged workout with its exercises and sets. Exercises are ordered by position, sets by set number."),
)

var toolGetWorkout = mcp.NewTool("get_workout",
	mcp.WithDescription("Get one workout by ID with its exercises and sets."),
	mcp.WithString("id", mcp.Required(), mcp.Description("Workout ID")),
)

var toolListExercises = mcp.NewTool("list_exercises",
	mcp.WithDescription("List the exercise catalog (built-in and custom entries)."),
	mcp.WithString("body_part", mcp.Description("Filter by body part (case-insensitive exact match, e.g. 'Chest', 'Legs')")),
)

var toolGetWorkoutStats = mcp.NewTool("get_workout_stats",
	mcp.WithDescription("Aggregate training statistics: workout count, total volume, average duration in minutes, and body-part distribution."),
	mcp.WithString("timeframe", mcp.Description("Statistics window. Defaults to 'all'."), mcp.Enum("week", "month", "all")),
)

var toolGetExerciseProgress = mcp.NewTool("get_exercise_progress",
	mcp.WithDescription("Per-exercise progress over time: max weight and volume per session, plus running totals."),
	mcp.WithString("exercise_id", mcp.Required(), mcp.Description("Exercise ID")),
)

// --- Tool handlers ---

func (h *handlers) listWorkouts(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	workouts, err := h.store.GetAllWorkouts()
	if err != nil {
		h.log.Error("mcp list_workouts", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}
	return toolResultJSON(workouts)
}

func (h *handlers) getWorkout(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError("id parameter is required"), nil
	}

	workout, err := h.store.GetWorkout(id)
	if err != nil {
		h.log.Error("mcp get_workout", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}
	if workout == nil {
		return mcp.NewToolResultError("workout not found"), nil
	}
	return toolResultJSON(workout)
}

func (h *handlers) listExercises(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	bodyPart := req.GetString("body_part", "")

	var exercises any
	var err error
	if bodyPart != "" {
		exercises, err = h.store.GetExercisesByBodyPart(bodyPart)
	} else {
		exercises, err = h.store.GetAllExercises()
	}
	if err != nil {
		h.log.Error("mcp list_exercises", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}
	return toolResultJSON(exercises)
}

func (h *handlers) getWorkoutStats(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	timeframe := req.GetString("timeframe", "all")

	result, err := h.stats.WorkoutStats(timeframe)
	if err != nil {
		h.log.Error("mcp get_workout_stats", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}
	return toolResultJSON(result)
}

func (h *handlers) getExerciseProgress(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	exerciseID, err := req.RequireString("exercise_id")
	if err != nil {
		return mcp.NewToolResultError("exercise_id parameter is required"), nil
	}

	progress, err := h.stats.ExerciseProgress(exerciseID)
	if err != nil {
		h.log.Error("mcp get_exercise_progress", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}
	if progress == nil {
		return mcp.NewToolResultError("exercise not found"), nil
	}
	return toolResultJSON(progress)
}

func toolResultJSON(v any) (*mcp.CallToolResult, error) {
	result, err := mcp.NewToolResultJSON(v)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}
