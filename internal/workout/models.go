// Package workout runs workout sessions and records their results: a state
// machine that walks a day plan set by set, and a service that ties user
// profiles, weekly plans and workout history together.
package workout

import (
	"context"
	"time"

	"github.com/mrezende/gymtotem/internal/plan"
	"github.com/mrezende/gymtotem/internal/profile"
)

// ExerciseResult is the outcome of one exercise within a finished session.
type ExerciseResult struct {
	Name          string `json:"name"`
	SetsCompleted int    `json:"setsCompleted"`
	TotalSets     int    `json:"totalSets"`
	Skipped       bool   `json:"skipped"`
}

// HistoryRecord is one finished workout session. EstimatedCalories is the
// day plan's estimate, credited in full on completion regardless of skips.
type HistoryRecord struct {
	ID                string           `json:"id"`
	UserCPF           string           `json:"userCpf"`
	WeekKey           string           `json:"weekKey"`
	Day               plan.Weekday     `json:"day"`
	WorkoutName       string           `json:"workoutName"`
	StartedAt         time.Time        `json:"startedAt"`
	CompletedAt       time.Time        `json:"completedAt"`
	DurationMinutes   int              `json:"durationMinutes"`
	EstimatedCalories int              `json:"estimatedCalories"`
	Results           []ExerciseResult `json:"results"`
}

// Stats summarizes a user's workout history. LastWorkout is nil until the
// first workout completes.
type Stats struct {
	TotalWorkouts      int
	TotalMinutes       int
	TotalCalories      int
	AverageMinutes     int
	ExercisesCompleted int
	CurrentWeekKey     string
	WorkoutsThisWeek   int
	LastWorkout        *HistoryRecord
}

// Store persists users, weekly plans and workout history. Implementations
// live in the store package.
type Store interface {
	CreateUser(ctx context.Context, p profile.UserProfile) error
	GetUser(ctx context.Context, cpf string) (profile.UserProfile, error)
	UpdateUser(ctx context.Context, p profile.UserProfile) error
	TouchLastLogin(ctx context.Context, cpf string, at time.Time) error

	SaveWeeklyPlan(ctx context.Context, cpf, weekKey string, wp plan.WeeklyPlan) error
	GetWeeklyPlan(ctx context.Context, cpf, weekKey string) (plan.WeeklyPlan, error)
	DeleteWeeklyPlan(ctx context.Context, cpf, weekKey string) error

	SaveHistoryRecord(ctx context.Context, rec HistoryRecord) error
	ListHistory(ctx context.Context, cpf string) ([]HistoryRecord, error)
}
