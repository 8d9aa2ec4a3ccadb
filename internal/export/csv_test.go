package export

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"github.com/claude/liftlog/internal/models"
)

func TestWriteCSV(t *testing.T) {
	rest := 90
	workouts := []models.WorkoutWithDetails{
		{
			Workout: models.Workout{
				ID:        "w1",
				Name:      "Morning Session",
				StartTime: time.Date(2025, 3, 10, 7, 30, 0, 0, time.UTC),
			},
			Exercises: []models.ExerciseWithSets{
				{
					WorkoutExercise: models.WorkoutExercise{ID: "we1", WorkoutID: "w1", ExerciseID: "e1", Order: 1},
					Exercise:        models.Exercise{ID: "e1", Name: "Squat", BodyPart: "Legs", Category: "lower"},
					Sets: []models.Set{
						{ID: "s1", WorkoutExerciseID: "we1", SetNumber: 1, Weight: "100", Reps: 5, RestTime: &rest},
						{ID: "s2", WorkoutExerciseID: "we1", SetNumber: 2, Weight: "102.5", Reps: 3},
					},
				},
			},
		},
	}

	var buf bytes.Buffer
	if err := WriteCSV(&buf, workouts); err != nil {
		t.Fatalf("WriteCSV() error = %v", err)
	}

	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("parsing output: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("rows = %d, want 3", len(records))
	}

	wantHeader := []string{"Date", "Workout", "Exercise", "Body Part", "Set", "Weight", "Reps", "Volume"}
	for i, col := range wantHeader {
		if records[0][i] != col {
			t.Errorf("header[%d] = %q, want %q", i, records[0][i], col)
		}
	}

	wantRows := [][]string{
		{"2025-03-10", "Morning Session", "Squat", "Legs", "1", "100", "5", "500"},
		{"2025-03-10", "Morning Session", "Squat", "Legs", "2", "102.5", "3", "307.5"},
	}
	for i, want := range wantRows {
		got := records[i+1]
		for j := range want {
			if got[j] != want[j] {
				t.Errorf("row %d col %d = %q, want %q", i+1, j, got[j], want[j])
			}
		}
	}
}

func TestWriteCSVEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, nil); err != nil {
		t.Fatalf("WriteCSV() error = %v", err)
	}

	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("parsing output: %v", err)
	}
	if len(records) != 1 {
		t.Errorf("rows = %d, want header only", len(records))
	}
}
