package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/claude/liftlog/internal/export"
	"github.com/claude/liftlog/internal/models"
	"github.com/go-chi/chi/v5"
)

func (s *Server) handleListWorkouts(w http.ResponseWriter, r *http.Request) {
	workouts, err := s.store.GetAllWorkouts()
	if err != nil {
		s.log.Error("list workouts", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to fetch workouts")
		return
	}
	writeJSON(w, http.StatusOK, workouts)
}

func (s *Server) handleGetWorkout(w http.ResponseWriter, r *http.Request) {
	workout, err := s.store.GetWorkout(chi.URLParam(r, "id"))
	if err != nil {
		s.log.Error("get workout", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to fetch workout")
		return
	}
	if workout == nil {
		writeError(w, http.StatusNotFound, "Workout not found")
		return
	}
	writeJSON(w, http.StatusOK, workout)
}

func (s *Server) handleCreateWorkout(w http.ResponseWriter, r *http.Request) {
	var req createWorkoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid workout data")
		return
	}
	ins, errs := req.validate()
	if len(errs) > 0 {
		writeValidationErrors(w, "Invalid workout data", errs)
		return
	}

	workout, err := s.store.CreateWorkout(ins)
	if err != nil {
		s.log.Error("create workout", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to create workout")
		return
	}
	writeJSON(w, http.StatusCreated, workout)
}

func (s *Server) handlePatchWorkout(w http.ResponseWriter, r *http.Request) {
	var req patchWorkoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid workout data")
		return
	}
	upd, errs := req.validate()
	if len(errs) > 0 {
		writeValidationErrors(w, "Invalid workout data", errs)
		return
	}

	workout, err := s.store.UpdateWorkout(chi.URLParam(r, "id"), upd)
	if err != nil {
		s.log.Error("update workout", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to update workout")
		return
	}
	if workout == nil {
		writeError(w, http.StatusNotFound, "Workout not found")
		return
	}
	writeJSON(w, http.StatusOK, workout)
}

func (s *Server) handleDeleteWorkout(w http.ResponseWriter, r *http.Request) {
	deleted, err := s.store.DeleteWorkout(chi.URLParam(r, "id"))
	if err != nil {
		s.log.Error("delete workout", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to delete workout")
		return
	}
	if !deleted {
		writeError(w, http.StatusNotFound, "Workout not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleListExercises(w http.ResponseWriter, r *http.Request) {
	var err error
	var exercises []models.Exercise
	if bodyPart := r.URL.Query().Get("bodyPart"); bodyPart != "" {
		exercises, err = s.store.GetExercisesByBodyPart(bodyPart)
	} else {
		exercises, err = s.store.GetAllExercises()
	}
	if err != nil {
		s.log.Error("list exercises", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to fetch exercises")
		return
	}
	writeJSON(w, http.StatusOK, exercises)
}

func (s *Server) handleGetExercise(w http.ResponseWriter, r *http.Request) {
	exercise, err := s.store.GetExercise(chi.URLParam(r, "id"))
	if err != nil {
		s.log.Error("get exercise", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to fetch exercise")
		return
	}
	if exercise == nil {
		writeError(w, http.StatusNotFound, "Exercise not found")
		return
	}
	writeJSON(w, http.StatusOK, exercise)
}

func (s *Server) handleCreateExercise(w http.ResponseWriter, r *http.Request) {
	var req createExerciseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid exercise data")
		return
	}
	ins, errs := req.validate()
	if len(errs) > 0 {
		writeValidationErrors(w, "Invalid exercise data", errs)
		return
	}

	exercise, err := s.store.CreateExercise(ins)
	if err != nil {
		s.log.Error("create exercise", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to create exercise")
		return
	}
	writeJSON(w, http.StatusCreated, exercise)
}

func (s *Server) handleAddExerciseToWorkout(w http.ResponseWriter, r *http.Request) {
	var req addWorkoutExerciseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid workout exercise data")
		return
	}
	ins, errs := req.validate(chi.URLParam(r, "workoutID"))
	if len(errs) > 0 {
		writeValidationErrors(w, "Invalid workout exercise data", errs)
		return
	}

	workoutExercise, err := s.store.AddExerciseToWorkout(ins)
	if err != nil {
		s.log.Error("add exercise to workout", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to add exercise to workout")
		return
	}
	writeJSON(w, http.StatusCreated, workoutExercise)
}

func (s *Server) handleAddSet(w http.ResponseWriter, r *http.Request) {
	var req addSetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid set data")
		return
	}
	ins, errs := req.validate(chi.URLParam(r, "workoutExerciseID"))
	if len(errs) > 0 {
		writeValidationErrors(w, "Invalid set data", errs)
		return
	}

	set, err := s.store.AddSet(ins)
	if err != nil {
		s.log.Error("add set", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to add set")
		return
	}

	// Accrue the owning workout's total volume. The store runs the
	// read-modify-write atomically; the set itself stays persisted even
	// if this step fails.
	weight, _ := strconv.ParseFloat(ins.Weight, 64)
	if err := s.store.AccrueWorkoutVolume(ins.WorkoutExerciseID, weight*float64(ins.Reps)); err != nil {
		s.log.Warn("volume accrual failed", "workoutExerciseId", ins.WorkoutExerciseID, "error", err)
	}

	writeJSON(w, http.StatusCreated, set)
}

func (s *Server) handlePatchSet(w http.ResponseWriter, r *http.Request) {
	var req patchSetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid set data")
		return
	}
	upd, errs := req.validate()
	if len(errs) > 0 {
		writeValidationErrors(w, "Invalid set data", errs)
		return
	}

	set, err := s.store.UpdateSet(chi.URLParam(r, "id"), upd)
	if err != nil {
		s.log.Error("update set", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to update set")
		return
	}
	if set == nil {
		writeError(w, http.StatusNotFound, "Set not found")
		return
	}
	writeJSON(w, http.StatusOK, set)
}

func (s *Server) handleDeleteSet(w http.ResponseWriter, r *http.Request) {
	deleted, err := s.store.DeleteSet(chi.URLParam(r, "id"))
	if err != nil {
		s.log.Error("delete set", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to delete set")
		return
	}
	if !deleted {
		writeError(w, http.StatusNotFound, "Set not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	timeframe := r.URL.Query().Get("timeframe")
	if timeframe == "" {
		timeframe = "all"
	}

	result, err := s.stats.WorkoutStats(timeframe)
	if err != nil {
		s.log.Error("workout stats", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to fetch statistics")
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleExerciseProgress(w http.ResponseWriter, r *http.Request) {
	progress, err := s.stats.ExerciseProgress(chi.URLParam(r, "id"))
	if err != nil {
		s.log.Error("exercise progress", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to fetch exercise progress")
		return
	}
	if progress == nil {
		writeError(w, http.StatusNotFound, "Exercise not found")
		return
	}
	writeJSON(w, http.StatusOK, progress)
}

func (s *Server) handleExportCSV(w http.ResponseWriter, r *http.Request) {
	workouts, err := s.store.GetAllWorkouts()
	if err != nil {
		s.log.Error("export csv", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to export CSV")
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="workout-data.csv"`)
	if err := export.WriteCSV(w, workouts); err != nil {
		s.log.Error("export csv write", "error", err)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"message": message})
}

func writeValidationErrors(w http.ResponseWriter, message string, errs []FieldError) {
	writeJSON(w, http.StatusBadRequest, map[string]any{
		"message": message,
		"errors":  errs,
	})
}
