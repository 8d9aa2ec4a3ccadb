// Package export renders stored workouts into flat export formats.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/claude/liftlog/internal/models"
)

// csvHeader is the column order of the denormalized export: one row per set.
var csvHeader = []string{"Date", "Workout", "Exercise", "Body Part", "Set", "Weight", "Reps", "Volume"}

// WriteCSV writes every set of every workout as one CSV row. The Volume
// column is weight multiplied by reps for that row.
func WriteCSV(w io.Writer, workouts []models.WorkoutWithDetails) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("writing csv header: %w", err)
	}

	for _, workout := range workouts {
		date := workout.StartTime.UTC().Format("2006-01-02")
		for _, exercise := range workout.Exercises {
			for _, set := range exercise.Sets {
				weight, _ := strconv.ParseFloat(set.Weight, 64)
				volume := weight * float64(set.Reps)
				row := []string{
					date,
					workout.Name,
					exercise.Exercise.Name,
					exercise.Exercise.BodyPart,
					strconv.Itoa(set.SetNumber),
					set.Weight,
					strconv.Itoa(set.Reps),
					strconv.FormatFloat(volume, 'f', -1, 64),
				}
				if err := cw.Write(row); err != nil {
					return fmt.Errorf("writing csv row: %w", err)
				}
			}
		}
	}

	cw.Flush()
	return cw.Error()
}
