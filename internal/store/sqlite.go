package store

import (
	"database/sql"
	"embed"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/claude/liftlog/internal/models"
	"github.com/golang-migrate/migrate/v4"
	migratesqlite "github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// SQLite implements Store over an embedded SQLite database. The default
// path is ":memory:", so nothing survives the process unless a file path
// is configured.
type SQLite struct {
	db *sql.DB
}

// Compile-time check: *SQLite satisfies Store.
var _ Store = (*SQLite)(nil)

// OpenSQLite opens (or creates) the database at path, applies pending
// migrations, and seeds the default exercise catalog when the exercises
// table is empty.
func OpenSQLite(path string) (*SQLite, error) {
	if path == "" {
		path = ":memory:"
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	// An in-memory database exists per connection; a single connection
	// also serializes writers, which SQLite requires anyway.
	db.SetMaxOpenConns(1)

	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, err
	}

	s := &SQLite{db: db}
	if err := s.seedExercises(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// runMigrations applies embedded migrations over the existing connection,
// so ":memory:" databases are migrated in place.
func runMigrations(db *sql.DB) error {
	driver, err := migratesqlite.WithInstance(db, &migratesqlite.Config{})
	if err != nil {
		return fmt.Errorf("creating migration driver: %w", err)
	}
	src, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("loading embedded migrations: %w", err)
	}
	m, err := migrate.NewWithInstance("iofs", src, "sqlite", driver)
	if err != nil {
		return fmt.Errorf("creating migrator: %w", err)
	}
	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("running migrations: %w", err)
	}
	return nil
}

func (s *SQLite) seedExercises() error {
	var count int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM exercises`).Scan(&count); err != nil {
		return fmt.Errorf("counting exercises: %w", err)
	}
	if count > 0 {
		return nil
	}
	for _, e := range defaultExercises {
		if _, err := s.CreateExercise(e); err != nil {
			return fmt.Errorf("seeding exercises: %w", err)
		}
	}
	return nil
}

// Close closes the underlying database.
func (s *SQLite) Close() error {
	return s.db.Close()
}

func formatTime(t time.Time) string { return t.UTC().Format(time.RFC3339Nano) }

func formatTimePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	v := formatTime(*t)
	return &v
}

func parseTime(s string) time.Time {
	t, _ := time.Parse(time.RFC3339Nano, s)
	return t
}

func parseTimePtr(s *string) *time.Time {
	if s == nil {
		return nil
	}
	t := parseTime(*s)
	return &t
}

func (s *SQLite) CreateWorkout(w models.InsertWorkout) (models.Workout, error) {
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
	_, err := s.db.Exec(
		`INSERT INTO workouts (id, name, start_time, end_time, duration_sec, total_volume, notes)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		workout.ID, workout.Name, formatTime(workout.StartTime), formatTimePtr(workout.EndTime),
		workout.Duration, workout.TotalVolume, workout.Notes)
	if err != nil {
		return models.Workout{}, fmt.Errorf("inserting workout: %w", err)
	}
	return workout, nil
}

func (s *SQLite) scanWorkout(row *sql.Row) (*models.Workout, error) {
	var w models.Workout
	var start string
	var end *string
	err := row.Scan(&w.ID, &w.Name, &start, &end, &w.Duration, &w.TotalVolume, &w.Notes)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scanning workout: %w", err)
	}
	w.StartTime = parseTime(start)
	w.EndTime = parseTimePtr(end)
	return &w, nil
}

func (s *SQLite) GetWorkoutRow(id string) (*models.Workout, error) {
	row := s.db.QueryRow(
		`SELECT id, name, start_time, end_time, duration_sec, total_volume, notes
		 FROM workouts WHERE id = ?`, id)
	return s.scanWorkout(row)
}

func (s *SQLite) ListWorkoutRows() ([]models.Workout, error) {
	rows, err := s.db.Query(
		`SELECT id, name, start_time, end_time, duration_sec, total_volume, notes FROM workouts`)
	if err != nil {
		return nil, fmt.Errorf("querying workouts: %w", err)
	}
	defer rows.Close()

	result := make([]models.Workout, 0)
	for rows.Next() {
		var w models.Workout
		var start string
		var end *string
		if err := rows.Scan(&w.ID, &w.Name, &start, &end, &w.Duration, &w.TotalVolume, &w.Notes); err != nil {
			return nil, fmt.Errorf("scanning workout: %w", err)
		}
		w.StartTime = parseTime(start)
		w.EndTime = parseTimePtr(end)
		result = append(result, w)
	}
	return result, rows.Err()
}

func (s *SQLite) GetWorkout(id string) (*models.WorkoutWithDetails, error) {
	workout, err := s.GetWorkoutRow(id)
	if err != nil || workout == nil {
		return nil, err
	}

	workoutExercises, err := s.GetWorkoutExercises(id)
	if err != nil {
		return nil, err
	}
	sort.Slice(workoutExercises, func(i, j int) bool {
		return workoutExercises[i].Order < workoutExercises[j].Order
	})

	exercises := make([]models.ExerciseWithSets, 0, len(workoutExercises))
	for _, we := range workoutExercises {
		var exercise models.Exercise
		if e, err := s.GetExercise(we.ExerciseID); err != nil {
			return nil, err
		} else if e != nil {
			exercise = *e
		}
		sets, err := s.GetSetsByWorkoutExercise(we.ID)
		if err != nil {
			return nil, err
		}
		exercises = append(exercises, models.ExerciseWithSets{
			WorkoutExercise: we,
			Exercise:        exercise,
			Sets:            sets,
		})
	}

	return &models.WorkoutWithDetails{Workout: *workout, Exercises: exercises}, nil
}

func (s *SQLite) GetAllWorkouts() ([]models.WorkoutWithDetails, error) {
	workouts, err := s.ListWorkoutRows()
	if err != nil {
		return nil, err
	}
	result := make([]models.WorkoutWithDetails, 0, len(workouts))
	for _, w := range workouts {
		detail, err := s.GetWorkout(w.ID)
		if err != nil {
			return nil, err
		}
		if detail != nil {
			result = append(result, *detail)
		}
	}
	return result, nil
}

func (s *SQLite) UpdateWorkout(id string, upd models.UpdateWorkout) (*models.Workout, error) {
	existing, err := s.GetWorkoutRow(id)
	if err != nil || existing == nil {
		return nil, err
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
	_, err = s.db.Exec(
		`UPDATE workouts SET name = ?, start_time = ?, end_time = ?, duration_sec = ?, total_volume = ?, notes = ?
		 WHERE id = ?`,
		existing.Name, formatTime(existing.StartTime), formatTimePtr(existing.EndTime),
		existing.Duration, existing.TotalVolume, existing.Notes, id)
	if err != nil {
		return nil, fmt.Errorf("updating workout: %w", err)
	}
	return existing, nil
}

// DeleteWorkout removes the workout row only; dependent rows are kept.
func (s *SQLite) DeleteWorkout(id string) (bool, error) {
	res, err := s.db.Exec(`DELETE FROM workouts WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("deleting workout: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (s *SQLite) CreateExercise(e models.InsertExercise) (models.Exercise, error) {
	exercise := models.Exercise{
		ID:       uuid.NewString(),
		Name:     e.Name,
		BodyPart: e.BodyPart,
		Category: e.Category,
		IsCustom: e.IsCustom,
	}
	_, err := s.db.Exec(
		`INSERT INTO exercises (id, name, body_part, category, is_custom) VALUES (?, ?, ?, ?, ?)`,
		exercise.ID, exercise.Name, exercise.BodyPart, exercise.Category, exercise.IsCustom)
	if err != nil {
		return models.Exercise{}, fmt.Errorf("inserting exercise: %w", err)
	}
	return exercise, nil
}

func (s *SQLite) GetExercise(id string) (*models.Exercise, error) {
	var e models.Exercise
	err := s.db.QueryRow(
		`SELECT id, name, body_part, category, is_custom FROM exercises WHERE id = ?`, id).
		Scan(&e.ID, &e.Name, &e.BodyPart, &e.Category, &e.IsCustom)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("querying exercise: %w", err)
	}
	return &e, nil
}

func (s *SQLite) queryExercises(query string, args ...any) ([]models.Exercise, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying exercises: %w", err)
	}
	defer rows.Close()

	result := make([]models.Exercise, 0)
	for rows.Next() {
		var e models.Exercise
		if err := rows.Scan(&e.ID, &e.Name, &e.BodyPart, &e.Category, &e.IsCustom); err != nil {
			return nil, fmt.Errorf("scanning exercise: %w", err)
		}
		result = append(result, e)
	}
	return result, rows.Err()
}

func (s *SQLite) GetAllExercises() ([]models.Exercise, error) {
	return s.queryExercises(`SELECT id, name, body_part, category, is_custom FROM exercises`)
}

func (s *SQLite) GetExercisesByBodyPart(bodyPart string) ([]models.Exercise, error) {
	return s.queryExercises(
		`SELECT id, name, body_part, category, is_custom FROM exercises
		 WHERE LOWER(body_part) = LOWER(?)`, bodyPart)
}

func (s *SQLite) AddExerciseToWorkout(we models.InsertWorkoutExercise) (models.WorkoutExercise, error) {
	workoutExercise := models.WorkoutExercise{
		ID:         uuid.NewString(),
		WorkoutID:  we.WorkoutID,
		ExerciseID: we.ExerciseID,
		Order:      we.Order,
	}
	_, err := s.db.Exec(
		`INSERT INTO workout_exercises (id, workout_id, exercise_id, position) VALUES (?, ?, ?, ?)`,
		workoutExercise.ID, workoutExercise.WorkoutID, workoutExercise.ExerciseID, workoutExercise.Order)
	if err != nil {
		return models.WorkoutExercise{}, fmt.Errorf("inserting workout exercise: %w", err)
	}
	return workoutExercise, nil
}

// AccrueWorkoutVolume resolves the owning workout and adds delta to its
// volume inside one transaction. The pool holds a single connection, so
// the transaction serializes concurrent accruals.
func (s *SQLite) AccrueWorkoutVolume(workoutExerciseID string, delta float64) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning accrual: %w", err)
	}
	defer tx.Rollback()

	var workoutID, volume string
	err = tx.QueryRow(
		`SELECT w.id, w.total_volume FROM workouts w
		 JOIN workout_exercises we ON we.workout_id = w.id
		 WHERE we.id = ?`, workoutExerciseID).Scan(&workoutID, &volume)
	if err == sql.ErrNoRows {
		return nil
	}
	if err != nil {
		return fmt.Errorf("querying workout for accrual: %w", err)
	}

	current, _ := strconv.ParseFloat(volume, 64)
	updated := strconv.FormatFloat(current+delta, 'f', -1, 64)
	if _, err := tx.Exec(`UPDATE workouts SET total_volume = ? WHERE id = ?`, updated, workoutID); err != nil {
		return fmt.Errorf("updating workout volume: %w", err)
	}
	return tx.Commit()
}

func (s *SQLite) GetWorkoutExercise(id string) (*models.WorkoutExercise, error) {
	var we models.WorkoutExercise
	err := s.db.QueryRow(
		`SELECT id, workout_id, exercise_id, position FROM workout_exercises WHERE id = ?`, id).
		Scan(&we.ID, &we.WorkoutID, &we.ExerciseID, &we.Order)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("querying workout exercise: %w", err)
	}
	return &we, nil
}

func (s *SQLite) queryWorkoutExercises(query string, args ...any) ([]models.WorkoutExercise, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying workout exercises: %w", err)
	}
	defer rows.Close()

	result := make([]models.WorkoutExercise, 0)
	for rows.Next() {
		var we models.WorkoutExercise
		if err := rows.Scan(&we.ID, &we.WorkoutID, &we.ExerciseID, &we.Order); err != nil {
			return nil, fmt.Errorf("scanning workout exercise: %w", err)
		}
		result = append(result, we)
	}
	return result, rows.Err()
}

func (s *SQLite) GetWorkoutExercises(workoutID string) ([]models.WorkoutExercise, error) {
	return s.queryWorkoutExercises(
		`SELECT id, workout_id, exercise_id, position FROM workout_exercises WHERE workout_id = ?`,
		workoutID)
}

func (s *SQLite) GetWorkoutExercisesByExercise(exerciseID string) ([]models.WorkoutExercise, error) {
	return s.queryWorkoutExercises(
		`SELECT id, workout_id, exercise_id, position FROM workout_exercises WHERE exercise_id = ?`,
		exerciseID)
}

func (s *SQLite) AddSet(set models.InsertSet) (models.Set, error) {
	row := models.Set{
		ID:                uuid.NewString(),
		WorkoutExerciseID: set.WorkoutExerciseID,
		SetNumber:         set.SetNumber,
		Weight:            set.Weight,
		Reps:              set.Reps,
		RestTime:          set.RestTime,
	}
	_, err := s.db.Exec(
		`INSERT INTO sets (id, workout_exercise_id, set_number, weight, reps, rest_time_sec)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		row.ID, row.WorkoutExerciseID, row.SetNumber, row.Weight, row.Reps, row.RestTime)
	if err != nil {
		return models.Set{}, fmt.Errorf("inserting set: %w", err)
	}
	return row, nil
}

func (s *SQLite) GetSetsByWorkoutExercise(workoutExerciseID string) ([]models.Set, error) {
	rows, err := s.db.Query(
		`SELECT id, workout_exercise_id, set_number, weight, reps, rest_time_sec
		 FROM sets WHERE workout_exercise_id = ? ORDER BY set_number ASC`,
		workoutExerciseID)
	if err != nil {
		return nil, fmt.Errorf("querying sets: %w", err)
	}
	defer rows.Close()

	result := make([]models.Set, 0)
	for rows.Next() {
		var set models.Set
		if err := rows.Scan(&set.ID, &set.WorkoutExerciseID, &set.SetNumber, &set.Weight, &set.Reps, &set.RestTime); err != nil {
			return nil, fmt.Errorf("scanning set: %w", err)
		}
		result = append(result, set)
	}
	return result, rows.Err()
}

func (s *SQLite) getSet(id string) (*models.Set, error) {
	var set models.Set
	err := s.db.QueryRow(
		`SELECT id, workout_exercise_id, set_number, weight, reps, rest_time_sec FROM sets WHERE id = ?`, id).
		Scan(&set.ID, &set.WorkoutExerciseID, &set.SetNumber, &set.Weight, &set.Reps, &set.RestTime)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("querying set: %w", err)
	}
	return &set, nil
}

func (s *SQLite) UpdateSet(id string, upd models.UpdateSet) (*models.Set, error) {
	existing, err := s.getSet(id)
	if err != nil || existing == nil {
		return nil, err
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
	_, err = s.db.Exec(
		`UPDATE sets SET set_number = ?, weight = ?, reps = ?, rest_time_sec = ? WHERE id = ?`,
		existing.SetNumber, existing.Weight, existing.Reps, existing.RestTime, id)
	if err != nil {
		return nil, fmt.Errorf("updating set: %w", err)
	}
	return existing, nil
}

func (s *SQLite) DeleteSet(id string) (bool, error) {
	res, err := s.db.Exec(`DELETE FROM sets WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("deleting set: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
