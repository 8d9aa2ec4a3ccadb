package store

import (
	"sync"
	"testing"
	"time"

	"github.com/claude/liftlog/internal/models"
)

// withBackends runs a test against both store implementations.
func withBackends(t *testing.T, fn func(t *testing.T, st Store)) {
	t.Helper()

	t.Run("memory", func(t *testing.T) {
		fn(t, NewMemory())
	})
	t.Run("sqlite", func(t *testing.T) {
		st, err := OpenSQLite(":memory:")
		if err != nil {
			t.Fatalf("opening sqlite store: %v", err)
		}
		defer st.Close()
		fn(t, st)
	})
}

func mustCreateWorkout(t *testing.T, st Store, name string, start time.Time) models.Workout {
	t.Helper()
	w, err := st.CreateWorkout(models.InsertWorkout{Name: name, StartTime: start})
	if err != nil {
		t.Fatalf("creating workout: %v", err)
	}
	return w
}

func mustCreateExercise(t *testing.T, st Store, name, bodyPart, category string) models.Exercise {
	t.Helper()
	e, err := st.CreateExercise(models.InsertExercise{Name: name, BodyPart: bodyPart, Category: category, IsCustom: true})
	if err != nil {
		t.Fatalf("creating exercise: %v", err)
	}
	return e
}

func mustLinkExercise(t *testing.T, st Store, workoutID, exerciseID string, order int) models.WorkoutExercise {
	t.Helper()
	we, err := st.AddExerciseToWorkout(models.InsertWorkoutExercise{WorkoutID: workoutID, ExerciseID: exerciseID, Order: order})
	if err != nil {
		t.Fatalf("linking exercise: %v", err)
	}
	return we
}

func mustAddSet(t *testing.T, st Store, workoutExerciseID string, setNumber int, weight string, reps int) models.Set {
	t.Helper()
	s, err := st.AddSet(models.InsertSet{WorkoutExerciseID: workoutExerciseID, SetNumber: setNumber, Weight: weight, Reps: reps})
	if err != nil {
		t.Fatalf("adding set: %v", err)
	}
	return s
}

// TestSeededCatalog verifies both backends start with the ten built-in
// exercises, none of them marked custom.
func TestSeededCatalog(t *testing.T) {
	withBackends(t, func(t *testing.T, st Store) {
		exercises, err := st.GetAllExercises()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(exercises) != 10 {
			t.Fatalf("catalog size = %d, want 10", len(exercises))
		}
		for _, e := range exercises {
			if e.IsCustom {
				t.Errorf("built-in exercise %q marked custom", e.Name)
			}
			if e.ID == "" {
				t.Errorf("exercise %q has empty ID", e.Name)
			}
		}
	})
}

// TestCreateWorkoutDefaultsVolume verifies a new workout with no sets
// keeps total volume "0".
func TestCreateWorkoutDefaultsVolume(t *testing.T) {
	withBackends(t, func(t *testing.T, st Store) {
		w := mustCreateWorkout(t, st, "Push Day", time.Now())
		if w.TotalVolume != "0" {
			t.Errorf("totalVolume = %q, want %q", w.TotalVolume, "0")
		}

		got, err := st.GetWorkoutRow(w.ID)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got.TotalVolume != "0" {
			t.Errorf("stored totalVolume = %q, want %q", got.TotalVolume, "0")
		}
	})
}

// TestUpdateWorkoutPartial verifies unsupplied fields are preserved and
// absent identifiers yield a nil result.
func TestUpdateWorkoutPartial(t *testing.T) {
	withBackends(t, func(t *testing.T, st Store) {
		start := time.Date(2025, 6, 1, 18, 0, 0, 0, time.UTC)
		w := mustCreateWorkout(t, st, "Leg Day", start)

		duration := 3600
		end := start.Add(time.Hour)
		updated, err := st.UpdateWorkout(w.ID, models.UpdateWorkout{Duration: &duration, EndTime: &end})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if updated == nil {
			t.Fatal("updated workout is nil")
		}
		if updated.Name != "Leg Day" {
			t.Errorf("name = %q, want %q", updated.Name, "Leg Day")
		}
		if updated.Duration == nil || *updated.Duration != 3600 {
			t.Errorf("duration = %v, want 3600", updated.Duration)
		}
		if updated.EndTime == nil || !updated.EndTime.Equal(end) {
			t.Errorf("endTime = %v, want %v", updated.EndTime, end)
		}
		if updated.TotalVolume != "0" {
			t.Errorf("totalVolume = %q, want %q", updated.TotalVolume, "0")
		}

		missing, err := st.UpdateWorkout("no-such-id", models.UpdateWorkout{Duration: &duration})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if missing != nil {
			t.Errorf("update of absent workout = %+v, want nil", missing)
		}
	})
}

// TestDeleteWorkoutNonCascading verifies deleting a workout removes only
// the workout row: its workout-exercise and set rows stay addressable.
func TestDeleteWorkoutNonCascading(t *testing.T) {
	withBackends(t, func(t *testing.T, st Store) {
		w := mustCreateWorkout(t, st, "Pull Day", time.Now())
		e := mustCreateExercise(t, st, "Face Pulls", "Shoulders", "upper")
		we := mustLinkExercise(t, st, w.ID, e.ID, 1)
		mustAddSet(t, st, we.ID, 1, "25", 15)

		deleted, err := st.DeleteWorkout(w.ID)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !deleted {
			t.Fatal("delete reported no record")
		}

		detail, err := st.GetWorkout(w.ID)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if detail != nil {
			t.Errorf("deleted workout still resolves: %+v", detail)
		}

		// Orphaned rows remain by direct lookup.
		orphan, err := st.GetWorkoutExercise(we.ID)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if orphan == nil {
			t.Error("workout exercise was cascade-deleted")
		}
		sets, err := st.GetSetsByWorkoutExercise(we.ID)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(sets) != 1 {
			t.Errorf("orphaned sets = %d, want 1", len(sets))
		}

		again, err := st.DeleteWorkout(w.ID)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if again {
			t.Error("second delete reported a record")
		}
	})
}

// TestSetsSortedBySetNumber verifies sets come back ordered by set number
// for any insertion order.
func TestSetsSortedBySetNumber(t *testing.T) {
	withBackends(t, func(t *testing.T, st Store) {
		w := mustCreateWorkout(t, st, "Bench Session", time.Now())
		e := mustCreateExercise(t, st, "Close-Grip Bench", "Chest", "upper")
		we := mustLinkExercise(t, st, w.ID, e.ID, 1)

		for _, n := range []int{3, 1, 2} {
			mustAddSet(t, st, we.ID, n, "135", 5)
		}

		sets, err := st.GetSetsByWorkoutExercise(we.ID)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(sets) != 3 {
			t.Fatalf("sets = %d, want 3", len(sets))
		}
		for i, s := range sets {
			if s.SetNumber != i+1 {
				t.Errorf("sets[%d].setNumber = %d, want %d", i, s.SetNumber, i+1)
			}
		}
	})
}

// TestWorkoutAssemblyOrdering verifies the assembled detail view orders
// exercises by position and each exercise's sets by set number,
// regardless of insertion order.
func TestWorkoutAssemblyOrdering(t *testing.T) {
	withBackends(t, func(t *testing.T, st Store) {
		w := mustCreateWorkout(t, st, "Full Body", time.Now())
		squat := mustCreateExercise(t, st, "Front Squat", "Legs", "lower")
		press := mustCreateExercise(t, st, "Incline Press", "Chest", "upper")
		row := mustCreateExercise(t, st, "Cable Row", "Back", "upper")

		// Link out of order.
		mustLinkExercise(t, st, w.ID, press.ID, 2)
		weRow := mustLinkExercise(t, st, w.ID, row.ID, 3)
		mustLinkExercise(t, st, w.ID, squat.ID, 1)

		mustAddSet(t, st, weRow.ID, 2, "60", 10)
		mustAddSet(t, st, weRow.ID, 1, "55", 12)

		detail, err := st.GetWorkout(w.ID)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if detail == nil {
			t.Fatal("workout not found")
		}
		if len(detail.Exercises) != 3 {
			t.Fatalf("exercises = %d, want 3", len(detail.Exercises))
		}

		wantOrder := []string{"Front Squat", "Incline Press", "Cable Row"}
		for i, ex := range detail.Exercises {
			if ex.Order != i+1 {
				t.Errorf("exercises[%d].order = %d, want %d", i, ex.Order, i+1)
			}
			if ex.Exercise.Name != wantOrder[i] {
				t.Errorf("exercises[%d] = %q, want %q", i, ex.Exercise.Name, wantOrder[i])
			}
		}

		rowSets := detail.Exercises[2].Sets
		if len(rowSets) != 2 {
			t.Fatalf("row sets = %d, want 2", len(rowSets))
		}
		if rowSets[0].SetNumber != 1 || rowSets[1].SetNumber != 2 {
			t.Errorf("set order = %d,%d, want 1,2", rowSets[0].SetNumber, rowSets[1].SetNumber)
		}
	})
}

// TestExercisesByBodyPart verifies the case-insensitive exact match.
func TestExercisesByBodyPart(t *testing.T) {
	withBackends(t, func(t *testing.T, st Store) {
		chest, err := st.GetExercisesByBodyPart("chest")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		// Bench Press and Dips from the seeded catalog.
		if len(chest) != 2 {
			t.Errorf("chest exercises = %d, want 2", len(chest))
		}
		for _, e := range chest {
			if e.BodyPart != "Chest" {
				t.Errorf("bodyPart = %q, want %q", e.BodyPart, "Chest")
			}
		}

		none, err := st.GetExercisesByBodyPart("Forearms")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(none) != 0 {
			t.Errorf("forearm exercises = %d, want 0", len(none))
		}
	})
}

// TestUpdateAndDeleteSet verifies partial set updates and existence-checked
// deletes.
func TestUpdateAndDeleteSet(t *testing.T) {
	withBackends(t, func(t *testing.T, st Store) {
		w := mustCreateWorkout(t, st, "Deadlift Day", time.Now())
		e := mustCreateExercise(t, st, "Paused Deadlift", "Back", "lower")
		we := mustLinkExercise(t, st, w.ID, e.ID, 1)
		s := mustAddSet(t, st, we.ID, 1, "225", 5)

		weight := "235"
		updated, err := st.UpdateSet(s.ID, models.UpdateSet{Weight: &weight})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if updated == nil {
			t.Fatal("updated set is nil")
		}
		if updated.Weight != "235" {
			t.Errorf("weight = %q, want %q", updated.Weight, "235")
		}
		if updated.Reps != 5 {
			t.Errorf("reps = %d, want 5 (unsupplied field changed)", updated.Reps)
		}

		missing, err := st.UpdateSet("no-such-id", models.UpdateSet{Weight: &weight})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if missing != nil {
			t.Errorf("update of absent set = %+v, want nil", missing)
		}

		deleted, err := st.DeleteSet(s.ID)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !deleted {
			t.Error("delete reported no record")
		}
		again, err := st.DeleteSet(s.ID)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if again {
			t.Error("second delete reported a record")
		}
	})
}

// TestGetAllWorkoutsAssembled verifies every stored workout comes back
// fully assembled.
func TestGetAllWorkoutsAssembled(t *testing.T) {
	withBackends(t, func(t *testing.T, st Store) {
		a := mustCreateWorkout(t, st, "Day A", time.Now().Add(-48*time.Hour))
		b := mustCreateWorkout(t, st, "Day B", time.Now())
		e := mustCreateExercise(t, st, "Hack Squat", "Legs", "lower")
		we := mustLinkExercise(t, st, a.ID, e.ID, 1)
		mustAddSet(t, st, we.ID, 1, "180", 8)

		workouts, err := st.GetAllWorkouts()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(workouts) != 2 {
			t.Fatalf("workouts = %d, want 2", len(workouts))
		}

		byID := make(map[string]models.WorkoutWithDetails, 2)
		for _, w := range workouts {
			byID[w.ID] = w
		}
		if got := len(byID[a.ID].Exercises); got != 1 {
			t.Fatalf("day A exercises = %d, want 1", got)
		}
		if got := len(byID[a.ID].Exercises[0].Sets); got != 1 {
			t.Errorf("day A sets = %d, want 1", got)
		}
		if got := len(byID[b.ID].Exercises); got != 0 {
			t.Errorf("day B exercises = %d, want 0", got)
		}
	})
}

// TestWorkoutRoundTrip verifies optional fields survive storage, which
// exercises the sqlite time and null handling in particular.
func TestWorkoutRoundTrip(t *testing.T) {
	withBackends(t, func(t *testing.T, st Store) {
		start := time.Date(2025, 7, 12, 7, 30, 0, 0, time.UTC)
		end := start.Add(45 * time.Minute)
		duration := 2700
		notes := "felt strong"
		created, err := st.CreateWorkout(models.InsertWorkout{
			Name:        "Morning Session",
			StartTime:   start,
			EndTime:     &end,
			Duration:    &duration,
			TotalVolume: "1200.5",
			Notes:       &notes,
		})
		if err != nil {
			t.Fatalf("creating workout: %v", err)
		}

		got, err := st.GetWorkoutRow(created.ID)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got == nil {
			t.Fatal("workout not found")
		}
		if !got.StartTime.Equal(start) {
			t.Errorf("startTime = %v, want %v", got.StartTime, start)
		}
		if got.EndTime == nil || !got.EndTime.Equal(end) {
			t.Errorf("endTime = %v, want %v", got.EndTime, end)
		}
		if got.Duration == nil || *got.Duration != 2700 {
			t.Errorf("duration = %v, want 2700", got.Duration)
		}
		if got.TotalVolume != "1200.5" {
			t.Errorf("totalVolume = %q, want %q", got.TotalVolume, "1200.5")
		}
		if got.Notes == nil || *got.Notes != "felt strong" {
			t.Errorf("notes = %v, want %q", got.Notes, "felt strong")
		}
	})
}

// TestAccrueWorkoutVolume verifies accrual resolves the owning workout
// through the workout exercise and is a no-op for unknown references.
func TestAccrueWorkoutVolume(t *testing.T) {
	withBackends(t, func(t *testing.T, st Store) {
		w := mustCreateWorkout(t, st, "Accrual", time.Now())
		e := mustCreateExercise(t, st, "Press", "Shoulders", "upper")
		we := mustLinkExercise(t, st, w.ID, e.ID, 1)

		if err := st.AccrueWorkoutVolume(we.ID, 500); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if err := st.AccrueWorkoutVolume(we.ID, 250.5); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		got, err := st.GetWorkoutRow(w.ID)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got.TotalVolume != "750.5" {
			t.Errorf("totalVolume = %q, want %q", got.TotalVolume, "750.5")
		}

		if err := st.AccrueWorkoutVolume("no-such-id", 100); err != nil {
			t.Fatalf("accrual for unknown workout exercise: %v", err)
		}
		got, err = st.GetWorkoutRow(w.ID)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got.TotalVolume != "750.5" {
			t.Errorf("totalVolume after no-op = %q, want %q", got.TotalVolume, "750.5")
		}
	})
}

// TestAccrueWorkoutVolumeConcurrent verifies no accrual is lost when many
// goroutines accrue against the same workout at once.
func TestAccrueWorkoutVolumeConcurrent(t *testing.T) {
	withBackends(t, func(t *testing.T, st Store) {
		w := mustCreateWorkout(t, st, "Race", time.Now())
		e := mustCreateExercise(t, st, "Squat", "Legs", "lower")
		we := mustLinkExercise(t, st, w.ID, e.ID, 1)

		const workers = 100
		errs := make(chan error, workers)
		var wg sync.WaitGroup
		for i := 0; i < workers; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				errs <- st.AccrueWorkoutVolume(we.ID, 10)
			}()
		}
		wg.Wait()
		close(errs)
		for err := range errs {
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		}

		got, err := st.GetWorkoutRow(w.ID)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got.TotalVolume != "1000" {
			t.Errorf("totalVolume = %q, want %q (lost updates)", got.TotalVolume, "1000")
		}
	})
}
