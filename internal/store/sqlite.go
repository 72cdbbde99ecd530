// Package store persists users, weekly plans and workout history. The
// SQLite store backs production, the memory store serves tests and running
// without a writable disk.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/mattn/go-sqlite3"

	"github.com/mrezende/gymtotem/internal/plan"
	"github.com/mrezende/gymtotem/internal/profile"
	"github.com/mrezende/gymtotem/internal/sqlite"
	"github.com/mrezende/gymtotem/internal/workout"
)

// SQLiteStore implements workout.Store on the dual-pool SQLite database.
type SQLiteStore struct {
	db     *sqlite.Database
	logger *slog.Logger
}

// NewSQLiteStore creates a SQLite-backed store.
func NewSQLiteStore(db *sqlite.Database, logger *slog.Logger) *SQLiteStore {
	return &SQLiteStore{db: db, logger: logger}
}

// CreateUser inserts a new user with their workout types and goals.
func (s *SQLiteStore) CreateUser(ctx context.Context, p profile.UserProfile) (err error) {
	tx, err := s.db.ReadWrite.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if rollbackErr := tx.Rollback(); rollbackErr != nil && !errors.Is(rollbackErr, sql.ErrTxDone) {
			err = errors.Join(err, fmt.Errorf("rollback transaction: %w", rollbackErr))
		}
	}()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO users (
			cpf, name, age, weight_kg, height_cm, activity_level,
			practices_sport, current_frequency, current_intensity,
			desired_frequency, desired_intensity, physical_limitations,
			level, registered_at, last_login
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.CPF, p.Name, p.Age, p.WeightKg, p.HeightCm, p.ActivityLevel,
		boolToInt(p.PracticesSport), p.CurrentFrequency, string(p.CurrentIntensity),
		p.DesiredFrequency, string(p.DesiredIntensity), p.PhysicalLimitations,
		string(p.Level), formatTimestamp(p.RegisteredAt), formatTimestamp(p.LastLogin))
	if err != nil {
		var sqliteErr sqlite3.Error
		if errors.As(err, &sqliteErr) && errors.Is(sqliteErr.ExtendedCode, sqlite3.ErrConstraintPrimaryKey) {
			return workout.ErrDuplicateUser
		}
		return fmt.Errorf("insert user: %w", err)
	}

	if err = insertUserLists(ctx, tx, p); err != nil {
		return err
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// UpdateUser overwrites an existing user and their workout types and goals.
func (s *SQLiteStore) UpdateUser(ctx context.Context, p profile.UserProfile) (err error) {
	tx, err := s.db.ReadWrite.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if rollbackErr := tx.Rollback(); rollbackErr != nil && !errors.Is(rollbackErr, sql.ErrTxDone) {
			err = errors.Join(err, fmt.Errorf("rollback transaction: %w", rollbackErr))
		}
	}()

	result, err := tx.ExecContext(ctx, `
		UPDATE users SET
			name = ?, age = ?, weight_kg = ?, height_cm = ?, activity_level = ?,
			practices_sport = ?, current_frequency = ?, current_intensity = ?,
			desired_frequency = ?, desired_intensity = ?, physical_limitations = ?,
			level = ?, registered_at = ?, last_login = ?
		WHERE cpf = ?`,
		p.Name, p.Age, p.WeightKg, p.HeightCm, p.ActivityLevel,
		boolToInt(p.PracticesSport), p.CurrentFrequency, string(p.CurrentIntensity),
		p.DesiredFrequency, string(p.DesiredIntensity), p.PhysicalLimitations,
		string(p.Level), formatTimestamp(p.RegisteredAt), formatTimestamp(p.LastLogin),
		p.CPF)
	if err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return workout.ErrNotFound
	}

	if _, err = tx.ExecContext(ctx, `DELETE FROM user_workout_types WHERE user_cpf = ?`, p.CPF); err != nil {
		return fmt.Errorf("delete workout types: %w", err)
	}
	if _, err = tx.ExecContext(ctx, `DELETE FROM user_goals WHERE user_cpf = ?`, p.CPF); err != nil {
		return fmt.Errorf("delete goals: %w", err)
	}
	if err = insertUserLists(ctx, tx, p); err != nil {
		return err
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

func insertUserLists(ctx context.Context, tx *sql.Tx, p profile.UserProfile) error {
	for i, wt := range p.WorkoutTypes {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO user_workout_types (user_cpf, workout_type, position)
			VALUES (?, ?, ?)`, p.CPF, wt, i); err != nil {
			return fmt.Errorf("insert workout type %q: %w", wt, err)
		}
	}
	for i, goal := range p.Goals {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO user_goals (user_cpf, goal, position)
			VALUES (?, ?, ?)`, p.CPF, goal, i); err != nil {
			return fmt.Errorf("insert goal %q: %w", goal, err)
		}
	}
	return nil
}

// GetUser retrieves a user and their workout types and goals.
func (s *SQLiteStore) GetUser(ctx context.Context, cpf string) (profile.UserProfile, error) {
	var (
		p              profile.UserProfile
		practicesSport int
		registeredAt   string
		lastLogin      string
	)
	err := s.db.ReadOnly.QueryRowContext(ctx, `
		SELECT cpf, name, age, weight_kg, height_cm, activity_level,
			practices_sport, current_frequency, current_intensity,
			desired_frequency, desired_intensity, physical_limitations,
			level, registered_at, last_login
		FROM users WHERE cpf = ?`, cpf).Scan(
		&p.CPF, &p.Name, &p.Age, &p.WeightKg, &p.HeightCm, &p.ActivityLevel,
		&practicesSport, &p.CurrentFrequency, &p.CurrentIntensity,
		&p.DesiredFrequency, &p.DesiredIntensity, &p.PhysicalLimitations,
		&p.Level, &registeredAt, &lastLogin)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return profile.UserProfile{}, workout.ErrNotFound
		}
		return profile.UserProfile{}, fmt.Errorf("query user: %w", err)
	}

	p.PracticesSport = practicesSport != 0
	if p.RegisteredAt, err = parseTimestamp(registeredAt); err != nil {
		return profile.UserProfile{}, fmt.Errorf("parse registered_at: %w", err)
	}
	if p.LastLogin, err = parseTimestamp(lastLogin); err != nil {
		return profile.UserProfile{}, fmt.Errorf("parse last_login: %w", err)
	}

	if p.WorkoutTypes, err = s.loadUserList(ctx, cpf, "user_workout_types", "workout_type"); err != nil {
		return profile.UserProfile{}, err
	}
	if p.Goals, err = s.loadUserList(ctx, cpf, "user_goals", "goal"); err != nil {
		return profile.UserProfile{}, err
	}
	return p, nil
}

func (s *SQLiteStore) loadUserList(ctx context.Context, cpf, table, column string) (_ []string, err error) {
	//nolint:gosec // table and column come from the two call sites above.
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE user_cpf = ? ORDER BY position`, column, table)
	rows, err := s.db.ReadOnly.QueryContext(ctx, query, cpf)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", table, err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			err = errors.Join(err, fmt.Errorf("close rows: %w", closeErr))
		}
	}()

	var values []string
	for rows.Next() {
		var value string
		if err = rows.Scan(&value); err != nil {
			return nil, fmt.Errorf("scan %s row: %w", table, err)
		}
		values = append(values, value)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return values, nil
}

// TouchLastLogin stamps the user's last login time.
func (s *SQLiteStore) TouchLastLogin(ctx context.Context, cpf string, at time.Time) error {
	result, err := s.db.ReadWrite.ExecContext(ctx,
		`UPDATE users SET last_login = ? WHERE cpf = ?`, formatTimestamp(at), cpf)
	if err != nil {
		return fmt.Errorf("update last login: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return workout.ErrNotFound
	}
	return nil
}

// SaveWeeklyPlan stores a plan document for one user and week, replacing any
// existing one.
func (s *SQLiteStore) SaveWeeklyPlan(ctx context.Context, cpf, weekKey string, wp plan.WeeklyPlan) error {
	planJSON, err := json.Marshal(wp)
	if err != nil {
		return fmt.Errorf("marshal plan: %w", err)
	}
	_, err = s.db.ReadWrite.ExecContext(ctx, `
		INSERT INTO weekly_plans (user_cpf, week_key, plan_json, created_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (user_cpf, week_key) DO UPDATE SET
			plan_json = excluded.plan_json,
			created_at = excluded.created_at`,
		cpf, weekKey, string(planJSON), formatTimestamp(time.Now()))
	if err != nil {
		return fmt.Errorf("upsert weekly plan: %w", err)
	}
	return nil
}

// GetWeeklyPlan retrieves the stored plan for one user and week.
func (s *SQLiteStore) GetWeeklyPlan(ctx context.Context, cpf, weekKey string) (plan.WeeklyPlan, error) {
	var planJSON string
	err := s.db.ReadOnly.QueryRowContext(ctx, `
		SELECT plan_json FROM weekly_plans
		WHERE user_cpf = ? AND week_key = ?`, cpf, weekKey).Scan(&planJSON)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, workout.ErrNotFound
		}
		return nil, fmt.Errorf("query weekly plan: %w", err)
	}

	var wp plan.WeeklyPlan
	if err = json.Unmarshal([]byte(planJSON), &wp); err != nil {
		return nil, fmt.Errorf("unmarshal plan: %w", err)
	}
	return wp, nil
}

// DeleteWeeklyPlan removes the stored plan for one user and week.
func (s *SQLiteStore) DeleteWeeklyPlan(ctx context.Context, cpf, weekKey string) error {
	result, err := s.db.ReadWrite.ExecContext(ctx, `
		DELETE FROM weekly_plans WHERE user_cpf = ? AND week_key = ?`, cpf, weekKey)
	if err != nil {
		return fmt.Errorf("delete weekly plan: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return workout.ErrNotFound
	}
	return nil
}

// SaveHistoryRecord stores a finished workout session.
func (s *SQLiteStore) SaveHistoryRecord(ctx context.Context, rec workout.HistoryRecord) error {
	resultsJSON, err := json.Marshal(rec.Results)
	if err != nil {
		return fmt.Errorf("marshal results: %w", err)
	}
	_, err = s.db.ReadWrite.ExecContext(ctx, `
		INSERT INTO workout_history (
			id, user_cpf, week_key, day, workout_name,
			started_at, completed_at, duration_minutes,
			estimated_calories, results_json
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.UserCPF, rec.WeekKey, string(rec.Day), rec.WorkoutName,
		formatTimestamp(rec.StartedAt), formatTimestamp(rec.CompletedAt),
		rec.DurationMinutes, rec.EstimatedCalories, string(resultsJSON))
	if err != nil {
		return fmt.Errorf("insert history record: %w", err)
	}
	return nil
}

// ListHistory retrieves all finished workouts for a user, most recent first.
func (s *SQLiteStore) ListHistory(ctx context.Context, cpf string) (_ []workout.HistoryRecord, err error) {
	rows, err := s.db.ReadOnly.QueryContext(ctx, `
		SELECT id, user_cpf, week_key, day, workout_name,
			started_at, completed_at, duration_minutes,
			estimated_calories, results_json
		FROM workout_history
		WHERE user_cpf = ?
		ORDER BY completed_at DESC`, cpf)
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			err = errors.Join(err, fmt.Errorf("close rows: %w", closeErr))
		}
	}()

	var records []workout.HistoryRecord
	for rows.Next() {
		var (
			rec         workout.HistoryRecord
			day         string
			startedAt   string
			completedAt string
			resultsJSON string
		)
		if err = rows.Scan(&rec.ID, &rec.UserCPF, &rec.WeekKey, &day, &rec.WorkoutName,
			&startedAt, &completedAt, &rec.DurationMinutes,
			&rec.EstimatedCalories, &resultsJSON); err != nil {
			return nil, fmt.Errorf("scan history row: %w", err)
		}
		rec.Day = plan.Weekday(day)
		if rec.StartedAt, err = parseTimestamp(startedAt); err != nil {
			return nil, fmt.Errorf("parse started_at: %w", err)
		}
		if rec.CompletedAt, err = parseTimestamp(completedAt); err != nil {
			return nil, fmt.Errorf("parse completed_at: %w", err)
		}
		if err = json.Unmarshal([]byte(resultsJSON), &rec.Results); err != nil {
			return nil, fmt.Errorf("unmarshal results: %w", err)
		}
		records = append(records, rec)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return records, nil
}

const timestampFormat = time.RFC3339

func formatTimestamp(t time.Time) string {
	return t.UTC().Format(timestampFormat)
}

func parseTimestamp(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(timestampFormat, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse timestamp %q: %w", s, err)
	}
	return t, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
