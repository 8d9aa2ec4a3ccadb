package store

import (
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/claude/liftlog/internal/models"
	"github.com/google/uuid"
)

// Memory is the in-memory store. A single RWMutex guards all four
// collections; each primitive runs to completion under it, so concurrent
// requests never observe a half-applied write.
type Memory struct {
	mu               sync.RWMutex
	workouts         map[string]models.Workout
	exercises        map[string]models.Exercise
	workoutExercises map[string]models.WorkoutExercise
	sets             map[string]models.Set
}

// Compile-time check: *Memory satisfies Store.
var _ Store = (*Memory)(nil)

// NewMemory creates an empty store seeded with the default exercise catalog.
func NewMemory() *Memory {
	m := &Memory{
		workouts:         make(map[string]models.Workout),
		exercises:        make(map[string]models.Exercise),
		workoutExercises: make(map[string]models.WorkoutExercise),
		sets:             make(map[string]models.Set),
	}
	for _, e := range defaultExercises {
		id := uuid.NewString()
		m.exercises[id] = models.Exercise{
			ID:       id,
			Name:     e.Name,
			BodyPart: e.BodyPart,
			Category: e.Category,
		}
	}
	return m
}

// Close is a no-op; the store has no resources beyond process memory.
func (m *Memory) Close() error { return nil }

func (m *Memory) CreateWorkout(w models.InsertWorkout) (models.Workout, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	volume := w.TotalVolume
	if volume == "" {
		volume = "0"
	}
	workout := models.Workout{
		ID:          uuid.NewString(),
		Name:        w.Name,
		StartTime:   w.StartTime,
		EndTime:     w.EndTime,
		Duration:    w.Duration,
		TotalVolume: volume,
		Notes:       w.Notes,
	}
	m.workouts[workout.ID] = workout
	return workout, nil
}

func (m *Memory) GetWorkout(id string) (*models.WorkoutWithDetails, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.assembleWorkoutLocked(id), nil
}

func (m *Memory) GetAllWorkouts() ([]models.WorkoutWithDetails, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]models.WorkoutWithDetails, 0, len(m.workouts))
	for id := range m.workouts {
		if detail := m.assembleWorkoutLocked(id); detail != nil {
			result = append(result, *detail)
		}
	}
	return result, nil
}

// assembleWorkoutLocked joins a workout with its exercises (ascending by
// order) and each exercise's sets (ascending by set number). Caller holds
// at least a read lock.
func (m *Memory) assembleWorkoutLocked(id string) *models.WorkoutWithDetails {
	workout, ok := m.workouts[id]
	if !ok {
		return nil
	}

	var workoutExercises []models.WorkoutExercise
	for _, we := range m.workoutExercises {
		if we.WorkoutID == id {
			workoutExercises = append(workoutExercises, we)
		}
	}
	sort.Slice(workoutExercises, func(i, j int) bool {
		return workoutExercises[i].Order < workoutExercises[j].Order
	})

	exercises := make([]models.ExerciseWithSets, 0, len(workoutExercises))
	for _, we := range workoutExercises {
		exercises = append(exercises, models.ExerciseWithSets{
			WorkoutExercise: we,
			Exercise:        m.exercises[we.ExerciseID],
			Sets:            m.setsForWorkoutExerciseLocked(we.ID),
		})
	}

	return &models.WorkoutWithDetails{Workout: workout, Exercises: exercises}
}

func (m *Memory) setsForWorkoutExerciseLocked(workoutExerciseID string) []models.Set {
	sets := make([]models.Set, 0)
	for _, s := range m.sets {
		if s.WorkoutExerciseID == workoutExerciseID {
			sets = append(sets, s)
		}
	}
	sort.Slice(sets, func(i, j int) bool {
		return sets[i].SetNumber < sets[j].SetNumber
	})
	return sets
}

func (m *Memory) GetWorkoutRow(id string) (*models.Workout, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	workout, ok := m.workouts[id]
	if !ok {
		return nil, nil
	}
	return &workout, nil
}

func (m *Memory) ListWorkoutRows() ([]models.Workout, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]models.Workout, 0, len(m.workouts))
	for _, w := range m.workouts {
		result = append(result, w)
	}
	return result, nil
}

func (m *Memory) UpdateWorkout(id string, upd models.UpdateWorkout) (*models.Workout, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	existing, ok := m.workouts[id]
	if !ok {
		return nil, nil
	}
	if upd.Name != nil {
		existing.Name = *upd.Name
	}
	if upd.StartTime != nil {
		existing.StartTime = *upd.StartTime
	}
	if upd.EndTime != nil {
		existing.EndTime = upd.EndTime
	}
	if upd.Duration != nil {
		existing.Duration = upd.Duration
	}
	if upd.TotalVolume != nil {
		existing.TotalVolume = *upd.TotalVolume
	}
	if upd.Notes != nil {
		existing.Notes = upd.Notes
	}
	m.workouts[id] = existing
	return &existing, nil
}

// DeleteWorkout removes the workout row only. Its workout-exercise and set
// rows are left in place; assembly never reaches them again.
func (m *Memory) DeleteWorkout(id string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	_, ok := m.workouts[id]
	delete(m.workouts, id)
	return ok, nil
}

func (m *Memory) CreateExercise(e models.InsertExercise) (models.Exercise, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	exercise := models.Exercise{
		ID:       uuid.NewString(),
		Name:     e.Name,
		BodyPart: e.BodyPart,
		Category: e.Category,
		IsCustom: e.IsCustom,
	}
	m.exercises[exercise.ID] = exercise
	return exercise, nil
}

func (m *Memory) GetExercise(id string) (*models.Exercise, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	exercise, ok := m.exercises[id]
	if !ok {
		return nil, nil
	}
	return &exercise, nil
}

func (m *Memory) GetAllExercises() ([]models.Exercise, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]models.Exercise, 0, len(m.exercises))
	for _, e := range m.exercises {
		result = append(result, e)
	}
	return result, nil
}

func (m *Memory) GetExercisesByBodyPart(bodyPart string) ([]models.Exercise, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]models.Exercise, 0)
	for _, e := range m.exercises {
		if strings.EqualFold(e.BodyPart, bodyPart) {
			result = append(result, e)
		}
	}
	return result, nil
}

func (m *Memory) AddExerciseToWorkout(we models.InsertWorkoutExercise) (models.WorkoutExercise, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	workoutExercise := models.WorkoutExercise{
		ID:         uuid.NewString(),
		WorkoutID:  we.WorkoutID,
		ExerciseID: we.ExerciseID,
		Order:      we.Order,
	}
	m.workoutExercises[workoutExercise.ID] = workoutExercise
	return workoutExercise, nil
}

// AccrueWorkoutVolume resolves the owning workout and adds delta to its
// volume in one step under the write lock.
func (m *Memory) AccrueWorkoutVolume(workoutExerciseID string, delta float64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	we, ok := m.workoutExercises[workoutExerciseID]
	if !ok {
		return nil
	}
	workout, ok := m.workouts[we.WorkoutID]
	if !ok {
		return nil
	}
	current, _ := strconv.ParseFloat(workout.TotalVolume, 64)
	workout.TotalVolume = strconv.FormatFloat(current+delta, 'f', -1, 64)
	m.workouts[we.WorkoutID] = workout
	return nil
}

func (m *Memory) GetWorkoutExercise(id string) (*models.WorkoutExercise, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	we, ok := m.workoutExercises[id]
	if !ok {
		return nil, nil
	}
	return &we, nil
}

func (m *Memory) GetWorkoutExercises(workoutID string) ([]models.WorkoutExercise, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]models.WorkoutExercise, 0)
	for _, we := range m.workoutExercises {
		if we.WorkoutID == workoutID {
			result = append(result, we)
		}
	}
	return result, nil
}

func (m *Memory) GetWorkoutExercisesByExercise(exerciseID string) ([]models.WorkoutExercise, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]models.WorkoutExercise, 0)
	for _, we := range m.workoutExercises {
		if we.ExerciseID == exerciseID {
			result = append(result, we)
		}
	}
	return result, nil
}

func (m *Memory) AddSet(s models.InsertSet) (models.Set, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	set := models.Set{
		ID:                uuid.NewString(),
		WorkoutExerciseID: s.WorkoutExerciseID,
		SetNumber:         s.SetNumber,
		Weight:            s.Weight,
		Reps:              s.Reps,
		RestTime:          s.RestTime,
	}
	m.sets[set.ID] = set
	return set, nil
}

func (m *Memory) GetSetsByWorkoutExercise(workoutExerciseID string) ([]models.Set, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.setsForWorkoutExerciseLocked(workoutExerciseID), nil
}

func (m *Memory) UpdateSet(id string, upd models.UpdateSet) (*models.Set, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	existing, ok := m.sets[id]
	if !ok {
		return nil, nil
	}
	if upd.SetNumber != nil {
		existing.SetNumber = *upd.SetNumber
	}
	if upd.Weight != nil {
		existing.Weight = *upd.Weight
	}
	if upd.Reps != nil {
		existing.Reps = *upd.Reps
	}
	if upd.RestTime != nil {
		existing.RestTime = upd.RestTime
	}
	m.sets[id] = existing
	return &existing, nil
}

func (m *Memory) DeleteSet(id string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	_, ok := m.sets[id]
	delete(m.sets, id)
	return ok, nil
}
