// Package models defines the entity types held by the store and the
// assembled read models returned by the API.
package models

import "time"

// Workout is a single timed training session.
type Workout struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	StartTime   time.Time  `json:"startTime"`
	EndTime     *time.Time `json:"endTime,omitempty"`
	Duration    *int       `json:"duration,omitempty"` // seconds
	TotalVolume string     `json:"totalVolume"`        // decimal string, accrued by the add-set protocol
	Notes       *string    `json:"notes,omitempty"`
}

// Exercise is a catalog entry describing a named movement.
type Exercise struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	BodyPart string `json:"bodyPart"`
	Category string `json:"category"` // "upper" or "lower"
	IsCustom bool   `json:"isCustom"`
}

// WorkoutExercise is the occurrence of one exercise within one workout.
type WorkoutExercise struct {
	ID         string `json:"id"`
	WorkoutID  string `json:"workoutId"`
	ExerciseID string `json:"exerciseId"`
	Order      int    `json:"order"` // 1-based position within the workout
}

// Set is one logged repetition group within a WorkoutExercise.
type Set struct {
	ID                string `json:"id"`
	WorkoutExerciseID string `json:"workoutExerciseId"`
	SetNumber         int    `json:"setNumber"`
	Weight            string `json:"weight"` // decimal string
	Reps              int    `json:"reps"`
	RestTime          *int   `json:"restTime,omitempty"` // seconds
}

// ExerciseWithSets pairs a WorkoutExercise with its resolved catalog entry
// and its sets ordered by set number.
type ExerciseWithSets struct {
	WorkoutExercise
	Exercise Exercise `json:"exercise"`
	Sets     []Set    `json:"sets"`
}

// WorkoutWithDetails is a workout with its exercises ordered by position.
type WorkoutWithDetails struct {
	Workout
	Exercises []ExerciseWithSets `json:"exercises"`
}

// InsertWorkout holds the fields accepted when creating a workout.
type InsertWorkout struct {
	Name        string
	StartTime   time.Time
	EndTime     *time.Time
	Duration    *int
	TotalVolume string
	Notes       *string
}

// UpdateWorkout holds the fields of a partial workout update. Nil fields
// are preserved on the existing record.
type UpdateWorkout struct {
	Name        *string
	StartTime   *time.Time
	EndTime     *time.Time
	Duration    *int
	TotalVolume *string
	Notes       *string
}

// InsertExercise holds the fields accepted when creating an exercise.
type InsertExercise struct {
	Name     string
	BodyPart string
	Category string
	IsCustom bool
}

// InsertWorkoutExercise links an exercise into a workout at a position.
type InsertWorkoutExercise struct {
	WorkoutID  string
	ExerciseID string
	Order      int
}

// InsertSet holds the fields accepted when logging a set.
type InsertSet struct {
	WorkoutExerciseID string
	SetNumber         int
	Weight            string
	Reps              int
	RestTime          *int
}

// UpdateSet holds the fields of a partial set update.
type UpdateSet struct {
	SetNumber *int
	Weight    *string
	Reps      *int
	RestTime  *int
}

// WorkoutStats is the statistics engine output for one timeframe.
type WorkoutStats struct {
	TotalWorkouts        int             `json:"totalWorkouts"`
	TotalVolume          float64         `json:"totalVolume"`
	AvgDuration          int             `json:"avgDuration"` // whole minutes
	BodyPartDistribution []BodyPartCount `json:"bodyPartDistribution"`
}

// BodyPartCount is one entry of the body-part distribution.
type BodyPartCount struct {
	BodyPart string `json:"bodyPart"`
	Count    int    `json:"count"`
}

// ProgressPoint is one session of an exercise's progress series.
type ProgressPoint struct {
	Date   string  `json:"date"` // day precision, UTC
	Weight float64 `json:"weight"`
	Volume float64 `json:"volume"`
}

// ExerciseProgress is the progress engine output for one exercise.
type ExerciseProgress struct {
	ExerciseID   string          `json:"exerciseId"`
	ExerciseName string          `json:"exerciseName"`
	MaxWeight    float64         `json:"maxWeight"`
	TotalVolume  float64         `json:"totalVolume"`
	ProgressData []ProgressPoint `json:"progressData"`
}
