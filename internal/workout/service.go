package workout

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/mrezende/gymtotem/internal/plan"
	"github.com/mrezende/gymtotem/internal/profile"
)

var (
	// ErrNotFound is returned when a user, plan or history record does not
	// exist. Store implementations return it.
	ErrNotFound = errors.New("not found")
	// ErrDuplicateUser is returned when registering a CPF that already has
	// an account.
	ErrDuplicateUser = errors.New("user already registered")
	// ErrNoActiveSession is returned by execution calls without a running
	// session.
	ErrNoActiveSession = errors.New("no active workout session")
)

// Service handles the business logic for registration, plan management and
// workout execution. Active sessions live in memory keyed by CPF, which
// suits a kiosk where one person exercises at a time per terminal.
type Service struct {
	store     Store
	generator *plan.Generator
	logger    *slog.Logger
	now       func() time.Time

	group singleflight.Group

	mu       sync.Mutex
	sessions map[string]*Engine
}

// NewService creates a new workout service.
func NewService(store Store, generator *plan.Generator, logger *slog.Logger) *Service {
	return &Service{
		store:     store,
		generator: generator,
		logger:    logger,
		now:       time.Now,
		sessions:  make(map[string]*Engine),
	}
}

// Register validates and persists a new user, then generates their first
// weekly plan. The CPF must already be normalized.
func (s *Service) Register(ctx context.Context, p profile.UserProfile) (profile.UserProfile, error) {
	if err := p.Validate(); err != nil {
		return profile.UserProfile{}, fmt.Errorf("validate profile: %w", err)
	}

	now := s.now()
	p.Level = p.DeriveLevel()
	p.RegisteredAt = now
	p.LastLogin = now

	if err := s.store.CreateUser(ctx, p); err != nil {
		return profile.UserProfile{}, fmt.Errorf("create user: %w", err)
	}

	if _, _, err := s.WeeklyPlan(ctx, p.CPF); err != nil {
		// The account exists even if the first plan could not be stored.
		s.logger.LogAttrs(ctx, slog.LevelWarn, "initial plan generation failed",
			slog.String("cpf", p.CPF), slog.String("error", err.Error()))
	}

	return p, nil
}

// Login looks up a user by normalized CPF and stamps their last login.
func (s *Service) Login(ctx context.Context, cpf string) (profile.UserProfile, error) {
	p, err := s.store.GetUser(ctx, cpf)
	if err != nil {
		return profile.UserProfile{}, fmt.Errorf("get user: %w", err)
	}
	if err := s.store.TouchLastLogin(ctx, cpf, s.now()); err != nil {
		return profile.UserProfile{}, fmt.Errorf("touch last login: %w", err)
	}
	return p, nil
}

// Profile returns the stored profile for a normalized CPF.
func (s *Service) Profile(ctx context.Context, cpf string) (profile.UserProfile, error) {
	p, err := s.store.GetUser(ctx, cpf)
	if err != nil {
		return profile.UserProfile{}, fmt.Errorf("get user: %w", err)
	}
	return p, nil
}

// WeeklyPlan returns the user's plan for the current week, generating and
// storing one if none exists yet. Concurrent calls for the same user and
// week share a single generation.
func (s *Service) WeeklyPlan(ctx context.Context, cpf string) (plan.WeeklyPlan, string, error) {
	weekKey := plan.WeekKey(s.now())

	wp, err := s.store.GetWeeklyPlan(ctx, cpf, weekKey)
	if err == nil {
		return wp, weekKey, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, "", fmt.Errorf("get weekly plan: %w", err)
	}

	wp, err = s.generatePlan(ctx, cpf, weekKey, plan.DistributionSequential)
	if err != nil {
		return nil, "", err
	}
	return wp, weekKey, nil
}

// Regenerate discards the current week's plan and builds a new one. A
// non-empty intensity updates the stored profile first, so the new plan and
// all future ones pick it up.
func (s *Service) Regenerate(
	ctx context.Context,
	cpf string,
	intensity profile.Intensity,
	dist plan.Distribution,
) (plan.WeeklyPlan, string, error) {
	weekKey := plan.WeekKey(s.now())

	// Only recognized intensities touch the stored profile. Anything else,
	// including the empty "keep current" value, leaves it as is.
	if profile.ParseIntensity(string(intensity)) != "" {
		p, err := s.store.GetUser(ctx, cpf)
		if err != nil {
			return nil, "", fmt.Errorf("get user: %w", err)
		}
		if p.PracticesSport {
			p.CurrentIntensity = intensity
		} else {
			p.DesiredIntensity = intensity
		}
		if err := s.store.UpdateUser(ctx, p); err != nil {
			return nil, "", fmt.Errorf("update user: %w", err)
		}
	}

	if err := s.store.DeleteWeeklyPlan(ctx, cpf, weekKey); err != nil && !errors.Is(err, ErrNotFound) {
		return nil, "", fmt.Errorf("delete weekly plan: %w", err)
	}

	s.group.Forget(cpf + "/" + weekKey)
	wp, err := s.generatePlan(ctx, cpf, weekKey, dist)
	if err != nil {
		return nil, "", err
	}
	return wp, weekKey, nil
}

// generatePlan builds and stores a plan for one user and week, deduplicating
// concurrent requests through singleflight.
func (s *Service) generatePlan(
	ctx context.Context,
	cpf, weekKey string,
	dist plan.Distribution,
) (plan.WeeklyPlan, error) {
	result, err, _ := s.group.Do(cpf+"/"+weekKey, func() (interface{}, error) {
		p, err := s.store.GetUser(ctx, cpf)
		if err != nil {
			return nil, fmt.Errorf("get user: %w", err)
		}

		wp := s.generator.Generate(ctx, p, dist)
		if err := s.store.SaveWeeklyPlan(ctx, cpf, weekKey, wp); err != nil {
			return nil, fmt.Errorf("save weekly plan: %w", err)
		}
		return wp, nil
	})
	if err != nil {
		return nil, err
	}
	wp, ok := result.(plan.WeeklyPlan)
	if !ok {
		return nil, errors.New("unexpected plan generation result type")
	}
	return wp, nil
}

// DayPlan returns one day of the user's current weekly plan.
func (s *Service) DayPlan(ctx context.Context, cpf string, day plan.Weekday) (plan.DayPlan, error) {
	wp, _, err := s.WeeklyPlan(ctx, cpf)
	if err != nil {
		return plan.DayPlan{}, err
	}
	dp, ok := wp[day]
	if !ok {
		return plan.DayPlan{}, fmt.Errorf("no workout scheduled for %s: %w", day, ErrNotFound)
	}
	return dp, nil
}

// StartWorkout begins an execution session over a scheduled day, replacing
// any session the user already had running.
func (s *Service) StartWorkout(ctx context.Context, cpf string, day plan.Weekday) (Progress, error) {
	dp, err := s.DayPlan(ctx, cpf, day)
	if err != nil {
		return Progress{}, err
	}

	engine, err := NewEngine(cpf, plan.WeekKey(s.now()), day, dp, s.now)
	if err != nil {
		return Progress{}, fmt.Errorf("start workout: %w", err)
	}

	s.mu.Lock()
	s.sessions[cpf] = engine
	s.mu.Unlock()

	return engine.Progress(), nil
}

// ActiveSession returns the progress of the user's running session, if any.
func (s *Service) ActiveSession(cpf string) (Progress, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	engine, ok := s.sessions[cpf]
	if !ok {
		return Progress{}, false
	}
	return engine.Progress(), true
}

// CompleteSet finishes the current set of the user's running session.
func (s *Service) CompleteSet(ctx context.Context, cpf string) (Progress, error) {
	return s.transition(ctx, cpf, (*Engine).CompleteSet)
}

// Tick advances the rest countdown of the user's running session.
func (s *Service) Tick(ctx context.Context, cpf string) (Progress, error) {
	return s.transition(ctx, cpf, (*Engine).Tick)
}

// SkipRest ends the current rest of the user's running session.
func (s *Service) SkipRest(ctx context.Context, cpf string) (Progress, error) {
	return s.transition(ctx, cpf, (*Engine).SkipRest)
}

// SkipExercise abandons the current exercise of the user's running session
// with partial credit.
func (s *Service) SkipExercise(ctx context.Context, cpf string) (Progress, error) {
	return s.transition(ctx, cpf, (*Engine).SkipExercise)
}

// transition applies a state change to the user's session and persists the
// history record once the session completes.
func (s *Service) transition(ctx context.Context, cpf string, step func(*Engine) error) (Progress, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	engine, ok := s.sessions[cpf]
	if !ok {
		return Progress{}, ErrNoActiveSession
	}

	if err := step(engine); err != nil {
		return engine.Progress(), err
	}

	progress := engine.Progress()
	if progress.Phase == PhaseComplete {
		record, err := engine.Record()
		if err != nil {
			return progress, fmt.Errorf("build history record: %w", err)
		}
		if err := s.store.SaveHistoryRecord(ctx, record); err != nil {
			return progress, fmt.Errorf("save history record: %w", err)
		}
		delete(s.sessions, cpf)
	}
	return progress, nil
}

// History lists the user's finished workouts, most recent first.
func (s *Service) History(ctx context.Context, cpf string) ([]HistoryRecord, error) {
	records, err := s.store.ListHistory(ctx, cpf)
	if err != nil {
		return nil, fmt.Errorf("list history: %w", err)
	}
	return records, nil
}

// Stats derives dashboard statistics from the user's history. An exercise
// counts as completed only when every prescribed set was finished.
func (s *Service) Stats(ctx context.Context, cpf string) (Stats, error) {
	records, err := s.store.ListHistory(ctx, cpf)
	if err != nil {
		return Stats{}, fmt.Errorf("list history: %w", err)
	}

	weekKey := plan.WeekKey(s.now())
	stats := Stats{CurrentWeekKey: weekKey}
	for _, rec := range records {
		stats.TotalWorkouts++
		stats.TotalMinutes += rec.DurationMinutes
		stats.TotalCalories += rec.EstimatedCalories
		if rec.WeekKey == weekKey {
			stats.WorkoutsThisWeek++
		}
		for _, result := range rec.Results {
			if result.TotalSets > 0 && result.SetsCompleted == result.TotalSets {
				stats.ExercisesCompleted++
			}
		}
	}
	if stats.TotalWorkouts > 0 {
		stats.AverageMinutes = int(math.Round(float64(stats.TotalMinutes) / float64(stats.TotalWorkouts)))
		// The store lists history most recent first.
		last := records[0]
		stats.LastWorkout = &last
	}
	return stats, nil
}

// HasCompletedToday reports whether the user already finished a workout on
// the current calendar day.
func (s *Service) HasCompletedToday(ctx context.Context, cpf string) (bool, error) {
	records, err := s.store.ListHistory(ctx, cpf)
	if err != nil {
		return false, fmt.Errorf("list history: %w", err)
	}
	today := s.now().Format(time.DateOnly)
	for _, rec := range records {
		if rec.CompletedAt.Format(time.DateOnly) == today {
			return true, nil
		}
	}
	return false, nil
}
