// Package store owns the four entity collections (workouts, exercises,
// workout exercises, sets) and the join that assembles a workout's full
// detail view. Two backends implement the same interface: an in-memory
// map store (the default) and an embedded SQLite store.
package store

import "github.com/claude/liftlog/internal/models"

// Store is the entity storage contract. Lookups for absent identifiers
// return a nil result with a nil error; the HTTP layer translates absence
// into a 404. Deletes report whether a record existed and do not cascade:
// deleting a workout leaves its workout-exercise and set rows addressable
// by direct identifier lookup.
type Store interface {
	// Workouts
	CreateWorkout(w models.InsertWorkout) (models.Workout, error)
	GetWorkout(id string) (*models.WorkoutWithDetails, error)
	GetAllWorkouts() ([]models.WorkoutWithDetails, error)
	GetWorkoutRow(id string) (*models.Workout, error)
	ListWorkoutRows() ([]models.Workout, error)
	UpdateWorkout(id string, upd models.UpdateWorkout) (*models.Workout, error)
	DeleteWorkout(id string) (bool, error)

	// Exercises
	CreateExercise(e models.InsertExercise) (models.Exercise, error)
	GetExercise(id string) (*models.Exercise, error)
	GetAllExercises() ([]models.Exercise, error)
	GetExercisesByBodyPart(bodyPart string) ([]models.Exercise, error)

	// AccrueWorkoutVolume adds delta to the total volume of the workout
	// owning the given workout exercise. The read-modify-write runs
	// atomically with respect to other store writes, so concurrent
	// accruals never lose an update. Unresolvable references are a no-op.
	AccrueWorkoutVolume(workoutExerciseID string, delta float64) error

	// Workout exercises
	AddExerciseToWorkout(we models.InsertWorkoutExercise) (models.WorkoutExercise, error)
	GetWorkoutExercise(id string) (*models.WorkoutExercise, error)
	GetWorkoutExercises(workoutID string) ([]models.WorkoutExercise, error)
	GetWorkoutExercisesByExercise(exerciseID string) ([]models.WorkoutExercise, error)

	// Sets
	AddSet(s models.InsertSet) (models.Set, error)
	GetSetsByWorkoutExercise(workoutExerciseID string) ([]models.Set, error)
	UpdateSet(id string, upd models.UpdateSet) (*models.Set, error)
	DeleteSet(id string) (bool, error)

	Close() error
}

// defaultExercises is the built-in catalog seeded at startup.
var defaultExercises = []models.InsertExercise{
	{Name: "Bench Press", BodyPart: "Chest", Category: "upper"},
	{Name: "Squat", BodyPart: "Legs", Category: "lower"},
	{Name: "Deadlift", BodyPart: "Back", Category: "lower"},
	{Name: "Overhead Press", BodyPart: "Shoulders", Category: "upper"},
	{Name: "Barbell Row", BodyPart: "Back", Category: "upper"},
	{Name: "Pull-ups", BodyPart: "Back", Category: "upper"},
	{Name: "Dips", BodyPart: "Chest", Category: "upper"},
	{Name: "Bicep Curls", BodyPart: "Arms", Category: "upper"},
	{Name: "Tricep Extensions", BodyPart: "Arms", Category: "upper"},
	{Name: "Lunges", BodyPart: "Legs", Category: "lower"},
}
