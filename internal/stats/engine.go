// Package stats computes aggregate workout statistics and per-exercise
// progress series over the entity store.
package stats

import (
	"math"
	"sort"
	"strconv"
	"time"

	"github.com/claude/liftlog/internal/models"
	"github.com/claude/liftlog/internal/store"
)

// Timeframe selects the statistics window.
const (
	TimeframeWeek  = "week"
	TimeframeMonth = "month"
	TimeframeAll   = "all"
)

// Engine computes statistics against any Store backend.
type Engine struct {
	store store.Store
}

// New creates an Engine over the given store.
func New(st store.Store) *Engine {
	return &Engine{store: st}
}

// WorkoutStats summarizes workouts whose start time falls inside the
// timeframe. "week" covers the trailing 7 days and "month" a fixed
// trailing 30 days; anything else means no filter.
func (e *Engine) WorkoutStats(timeframe string) (*models.WorkoutStats, error) {
	workouts, err := e.store.ListWorkoutRows()
	if err != nil {
		return nil, err
	}

	now := time.Now()
	var cutoff time.Time
	switch timeframe {
	case TimeframeWeek:
		cutoff = now.Add(-7 * 24 * time.Hour)
	case TimeframeMonth:
		cutoff = now.Add(-30 * 24 * time.Hour)
	}

	filtered := workouts
	if !cutoff.IsZero() {
		filtered = nil
		for _, w := range workouts {
			if !w.StartTime.Before(cutoff) {
				filtered = append(filtered, w)
			}
		}
	}

	stats := &models.WorkoutStats{
		TotalWorkouts:        len(filtered),
		BodyPartDistribution: []models.BodyPartCount{},
	}

	var durationSum float64
	for _, w := range filtered {
		if v, err := strconv.ParseFloat(w.TotalVolume, 64); err == nil {
			stats.TotalVolume += v
		}
		if w.Duration != nil {
			durationSum += float64(*w.Duration)
		}
	}
	if stats.TotalWorkouts > 0 {
		avgSeconds := durationSum / float64(stats.TotalWorkouts)
		stats.AvgDuration = int(math.Round(avgSeconds / 60))
	}

	// Count workout-exercise occurrences per body part. First-encounter
	// order is kept for ties.
	counts := make(map[string]int)
	var order []string
	for _, w := range filtered {
		workoutExercises, err := e.store.GetWorkoutExercises(w.ID)
		if err != nil {
			return nil, err
		}
		for _, we := range workoutExercises {
			exercise, err := e.store.GetExercise(we.ExerciseID)
			if err != nil {
				return nil, err
			}
			if exercise == nil {
				continue
			}
			if _, seen := counts[exercise.BodyPart]; !seen {
				order = append(order, exercise.BodyPart)
			}
			counts[exercise.BodyPart]++
		}
	}
	for _, bodyPart := range order {
		stats.BodyPartDistribution = append(stats.BodyPartDistribution,
			models.BodyPartCount{BodyPart: bodyPart, Count: counts[bodyPart]})
	}
	sort.SliceStable(stats.BodyPartDistribution, func(i, j int) bool {
		return stats.BodyPartDistribution[i].Count > stats.BodyPartDistribution[j].Count
	})

	return stats, nil
}

// ExerciseProgress builds the chronological session series for one
// exercise across every workout it appears in. Returns nil when the
// exercise does not exist; an exercise that was never logged yields an
// empty series with zero totals.
func (e *Engine) ExerciseProgress(exerciseID string) (*models.ExerciseProgress, error) {
	exercise, err := e.store.GetExercise(exerciseID)
	if err != nil {
		return nil, err
	}
	if exercise == nil {
		return nil, nil
	}

	workoutExercises, err := e.store.GetWorkoutExercisesByExercise(exerciseID)
	if err != nil {
		return nil, err
	}

	progress := &models.ExerciseProgress{
		ExerciseID:   exerciseID,
		ExerciseName: exercise.Name,
		ProgressData: []models.ProgressPoint{},
	}

	for _, we := range workoutExercises {
		workout, err := e.store.GetWorkoutRow(we.WorkoutID)
		if err != nil {
			return nil, err
		}
		sets, err := e.store.GetSetsByWorkoutExercise(we.ID)
		if err != nil {
			return nil, err
		}
		if workout == nil || len(sets) == 0 {
			continue
		}

		var sessionMaxWeight, sessionVolume float64
		for _, set := range sets {
			weight, _ := strconv.ParseFloat(set.Weight, 64)
			if weight > sessionMaxWeight {
				sessionMaxWeight = weight
			}
			sessionVolume += weight * float64(set.Reps)
		}

		if sessionMaxWeight > progress.MaxWeight {
			progress.MaxWeight = sessionMaxWeight
		}
		progress.TotalVolume += sessionVolume

		progress.ProgressData = append(progress.ProgressData, models.ProgressPoint{
			Date:   workout.StartTime.UTC().Format("2006-01-02"),
			Weight: sessionMaxWeight,
			Volume: sessionVolume,
		})
	}

	sort.SliceStable(progress.ProgressData, func(i, j int) bool {
		return progress.ProgressData[i].Date < progress.ProgressData[j].Date
	})

	return progress, nil
}
