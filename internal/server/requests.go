package server

import (
	"strconv"
	"time"

	"github.com/claude/liftlog/internal/models"
)

// FieldError is a single field-level validation failure.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func parseRFC3339(field, value string, errs *[]FieldError) *time.Time {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		*errs = append(*errs, FieldError{Field: field, Message: "must be an RFC 3339 timestamp"})
		return nil
	}
	return &t
}

func validDecimal(value string) (float64, bool) {
	v, err := strconv.ParseFloat(value, 64)
	return v, err == nil
}

type createWorkoutRequest struct {
	Name        string  `json:"name"`
	StartTime   string  `json:"startTime"`
	EndTime     string  `json:"endTime"`
	Duration    *int    `json:"duration"`
	TotalVolume string  `json:"totalVolume"`
	Notes       *string `json:"notes"`
}

func (r createWorkoutRequest) validate() (models.InsertWorkout, []FieldError) {
	var errs []FieldError
	var ins models.InsertWorkout

	if r.Name == "" {
		errs = append(errs, FieldError{Field: "name", Message: "is required"})
	}
	ins.Name = r.Name

	if r.StartTime == "" {
		errs = append(errs, FieldError{Field: "startTime", Message: "is required"})
	} else if t := parseRFC3339("startTime", r.StartTime, &errs); t != nil {
		ins.StartTime = *t
	}
	if r.EndTime != "" {
		ins.EndTime = parseRFC3339("endTime", r.EndTime, &errs)
	}
	if r.Duration != nil && *r.Duration < 0 {
		errs = append(errs, FieldError{Field: "duration", Message: "must not be negative"})
	}
	ins.Duration = r.Duration

	if r.TotalVolume != "" {
		if v, ok := validDecimal(r.TotalVolume); !ok || v < 0 {
			errs = append(errs, FieldError{Field: "totalVolume", Message: "must be a non-negative decimal"})
		}
	}
	ins.TotalVolume = r.TotalVolume
	ins.Notes = r.Notes

	return ins, errs
}

type patchWorkoutRequest struct {
	Name        *string `json:"name"`
	StartTime   *string `json:"startTime"`
	EndTime     *string `json:"endTime"`
	Duration    *int    `json:"duration"`
	TotalVolume *string `json:"totalVolume"`
	Notes       *string `json:"notes"`
}

func (r patchWorkoutRequest) validate() (models.UpdateWorkout, []FieldError) {
	var errs []FieldError
	var upd models.UpdateWorkout

	if r.Name != nil {
		if *r.Name == "" {
			errs = append(errs, FieldError{Field: "name", Message: "must not be empty"})
		}
		upd.Name = r.Name
	}
	if r.StartTime != nil {
		upd.StartTime = parseRFC3339("startTime", *r.StartTime, &errs)
	}
	if r.EndTime != nil {
		upd.EndTime = parseRFC3339("endTime", *r.EndTime, &errs)
	}
	if r.Duration != nil {
		if *r.Duration < 0 {
			errs = append(errs, FieldError{Field: "duration", Message: "must not be negative"})
		}
		upd.Duration = r.Duration
	}
	if r.TotalVolume != nil {
		if v, ok := validDecimal(*r.TotalVolume); !ok || v < 0 {
			errs = append(errs, FieldError{Field: "totalVolume", Message: "must be a non-negative decimal"})
		}
		upd.TotalVolume = r.TotalVolume
	}
	upd.Notes = r.Notes

	return upd, errs
}

type createExerciseRequest struct {
	Name     string `json:"name"`
	BodyPart string `json:"bodyPart"`
	Category string `json:"category"`
}

func (r createExerciseRequest) validate() (models.InsertExercise, []FieldError) {
	var errs []FieldError

	if r.Name == "" {
		errs = append(errs, FieldError{Field: "name", Message: "is required"})
	}
	if r.BodyPart == "" {
		errs = append(errs, FieldError{Field: "bodyPart", Message: "is required"})
	}
	if r.Category != "upper" && r.Category != "lower" {
		errs = append(errs, FieldError{Field: "category", Message: `must be "upper" or "lower"`})
	}

	return models.InsertExercise{
		Name:     r.Name,
		BodyPart: r.BodyPart,
		Category: r.Category,
		IsCustom: true, // user-created entries are always custom
	}, errs
}

type addWorkoutExerciseRequest struct {
	ExerciseID string `json:"exerciseId"`
	Order      int    `json:"order"`
}

func (r addWorkoutExerciseRequest) validate(workoutID string) (models.InsertWorkoutExercise, []FieldError) {
	var errs []FieldError

	if r.ExerciseID == "" {
		errs = append(errs, FieldError{Field: "exerciseId", Message: "is required"})
	}
	order := r.Order
	if order < 1 {
		order = 1
	}

	return models.InsertWorkoutExercise{
		WorkoutID:  workoutID,
		ExerciseID: r.ExerciseID,
		Order:      order,
	}, errs
}

type addSetRequest struct {
	SetNumber int    `json:"setNumber"`
	Weight    string `json:"weight"`
	Reps      int    `json:"reps"`
	RestTime  *int   `json:"restTime"`
}

func (r addSetRequest) validate(workoutExerciseID string) (models.InsertSet, []FieldError) {
	var errs []FieldError

	if r.SetNumber < 1 {
		errs = append(errs, FieldError{Field: "setNumber", Message: "must be at least 1"})
	}
	if r.Weight == "" {
		errs = append(errs, FieldError{Field: "weight", Message: "is required"})
	} else if v, ok := validDecimal(r.Weight); !ok || v < 0 {
		errs = append(errs, FieldError{Field: "weight", Message: "must be a non-negative decimal"})
	}
	if r.Reps < 1 {
		errs = append(errs, FieldError{Field: "reps", Message: "must be at least 1"})
	}
	if r.RestTime != nil && *r.RestTime < 0 {
		errs = append(errs, FieldError{Field: "restTime", Message: "must not be negative"})
	}

	return models.InsertSet{
		WorkoutExerciseID: workoutExerciseID,
		SetNumber:         r.SetNumber,
		Weight:            r.Weight,
		Reps:              r.Reps,
		RestTime:          r.RestTime,
	}, errs
}

type patchSetRequest struct {
	SetNumber *int    `json:"setNumber"`
	Weight    *string `json:"weight"`
	Reps      *int    `json:"reps"`
	RestTime  *int    `json:"restTime"`
}

func (r patchSetRequest) validate() (models.UpdateSet, []FieldError) {
	var errs []FieldError

	if r.SetNumber != nil && *r.SetNumber < 1 {
		errs = append(errs, FieldError{Field: "setNumber", Message: "must be at least 1"})
	}
	if r.Weight != nil {
		if v, ok := validDecimal(*r.Weight); !ok || v < 0 {
			errs = append(errs, FieldError{Field: "weight", Message: "must be a non-negative decimal"})
		}
	}
	if r.Reps != nil && *r.Reps < 1 {
		errs = append(errs, FieldError{Field: "reps", Message: "must be at least 1"})
	}
	if r.RestTime != nil && *r.RestTime < 0 {
		errs = append(errs, FieldError{Field: "restTime", Message: "must not be negative"})
	}

	return models.UpdateSet{
		SetNumber: r.SetNumber,
		Weight:    r.Weight,
		Reps:      r.Reps,
		RestTime:  r.RestTime,
	}, errs
}
