package workout

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/mrezende/gymtotem/internal/plan"
	"github.com/mrezende/gymtotem/internal/profile"
)

// fakeStore is a minimal in-memory Store for service tests.
type fakeStore struct {
	mu      sync.Mutex
	users   map[string]profile.UserProfile
	plans   map[string]plan.WeeklyPlan
	history []HistoryRecord

	planSaves int
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		users: make(map[string]profile.UserProfile),
		plans: make(map[string]plan.WeeklyPlan),
	}
}

func (f *fakeStore) CreateUser(_ context.Context, p profile.UserProfile) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.users[p.CPF]; ok {
		return ErrDuplicateUser
	}
	f.users[p.CPF] = p
	return nil
}

func (f *fakeStore) GetUser(_ context.Context, cpf string) (profile.UserProfile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.users[cpf]
	if !ok {
		return profile.UserProfile{}, ErrNotFound
	}
	return p, nil
}

func (f *fakeStore) UpdateUser(_ context.Context, p profile.UserProfile) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.users[p.CPF]; !ok {
		return ErrNotFound
	}
	f.users[p.CPF] = p
	return nil
}

func (f *fakeStore) TouchLastLogin(_ context.Context, cpf string, at time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.users[cpf]
	if !ok {
		return ErrNotFound
	}
	p.LastLogin = at
	f.users[cpf] = p
	return nil
}

func (f *fakeStore) SaveWeeklyPlan(_ context.Context, cpf, weekKey string, wp plan.WeeklyPlan) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.plans[cpf+"/"+weekKey] = wp
	f.planSaves++
	return nil
}

func (f *fakeStore) GetWeeklyPlan(_ context.Context, cpf, weekKey string) (plan.WeeklyPlan, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	wp, ok := f.plans[cpf+"/"+weekKey]
	if !ok {
		return nil, ErrNotFound
	}
	return wp, nil
}

func (f *fakeStore) DeleteWeeklyPlan(_ context.Context, cpf, weekKey string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.plans[cpf+"/"+weekKey]; !ok {
		return ErrNotFound
	}
	delete(f.plans, cpf+"/"+weekKey)
	return nil
}

func (f *fakeStore) SaveHistoryRecord(_ context.Context, rec HistoryRecord) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.history = append(f.history, rec)
	return nil
}

func (f *fakeStore) ListHistory(_ context.Context, cpf string) ([]HistoryRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var records []HistoryRecord
	for i := len(f.history) - 1; i >= 0; i-- {
		if f.history[i].UserCPF == cpf {
			records = append(records, f.history[i])
		}
	}
	return records, nil
}

const testCPF = "12345678901"

func registrationProfile() profile.UserProfile {
	return profile.UserProfile{
		CPF:              testCPF,
		Name:             "Maria Silva",
		Age:              28,
		WeightKg:         62.5,
		HeightCm:         165,
		ActivityLevel:    "moderate",
		PracticesSport:   false,
		DesiredFrequency: "3",
		DesiredIntensity: profile.IntensityModerate,
		WorkoutTypes:     []string{"strength"},
		Goals:            []string{"gain-muscle"},
	}
}

func newTestService(store Store) *Service {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := NewService(store, plan.NewGenerator("", logger), logger)
	svc.now = func() time.Time {
		return time.Date(2025, 6, 4, 10, 0, 0, 0, time.UTC) // Wednesday
	}
	return svc
}

func TestRegisterCreatesUserAndPlan(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store)
	ctx := context.Background()

	registered, err := svc.Register(ctx, registrationProfile())
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if registered.Level != profile.LevelBeginner {
		t.Errorf("derived level = %s, want beginner", registered.Level)
	}
	if registered.RegisteredAt.IsZero() || registered.LastLogin.IsZero() {
		t.Error("registration timestamps not set")
	}

	wp, weekKey, err := svc.WeeklyPlan(ctx, testCPF)
	if err != nil {
		t.Fatalf("WeeklyPlan: %v", err)
	}
	if weekKey != "2025-06-02" {
		t.Errorf("week key = %q, want 2025-06-02", weekKey)
	}
	if len(wp) != 3 {
		t.Errorf("plan has %d days, want 3", len(wp))
	}
	// Registration already generated the plan, so the lookup must not save
	// a second one.
	if store.planSaves != 1 {
		t.Errorf("plan saved %d times, want 1", store.planSaves)
	}
}

func TestRegisterDuplicate(t *testing.T) {
	svc := newTestService(newFakeStore())
	ctx := context.Background()

	if _, err := svc.Register(ctx, registrationProfile()); err != nil {
		t.Fatalf("first Register: %v", err)
	}
	if _, err := svc.Register(ctx, registrationProfile()); !errors.Is(err, ErrDuplicateUser) {
		t.Errorf("second Register = %v, want ErrDuplicateUser", err)
	}
}

func TestRegisterRejectsInvalidProfile(t *testing.T) {
	svc := newTestService(newFakeStore())

	invalid := registrationProfile()
	invalid.WorkoutTypes = nil

	if _, err := svc.Register(context.Background(), invalid); err == nil {
		t.Fatal("Register accepted a profile without workout types")
	}
}

func TestLoginTouchesLastLogin(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store)
	ctx := context.Background()

	if _, err := svc.Register(ctx, registrationProfile()); err != nil {
		t.Fatalf("Register: %v", err)
	}

	p, err := svc.Login(ctx, testCPF)
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if p.CPF != testCPF {
		t.Errorf("login returned CPF %q", p.CPF)
	}

	stored, _ := store.GetUser(ctx, testCPF)
	if !stored.LastLogin.Equal(svc.now()) {
		t.Errorf("last login = %v, want %v", stored.LastLogin, svc.now())
	}

	if _, err := svc.Login(ctx, "00000000000"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Login unknown user = %v, want ErrNotFound", err)
	}
}

func TestRegenerateReplacesPlanAndIntensity(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store)
	ctx := context.Background()

	if _, err := svc.Register(ctx, registrationProfile()); err != nil {
		t.Fatalf("Register: %v", err)
	}

	wp, _, err := svc.Regenerate(ctx, testCPF, profile.IntensityIntense, plan.DistributionAlternating)
	if err != nil {
		t.Fatalf("Regenerate: %v", err)
	}
	if len(wp) != 3 {
		t.Fatalf("plan has %d days, want 3", len(wp))
	}
	if _, ok := wp[plan.Wednesday]; !ok {
		t.Error("alternating plan is missing wednesday")
	}
	for day, dp := range wp {
		for _, ex := range dp.Exercises {
			if ex.Sets != 4 {
				t.Errorf("%s: %s has %d sets after intense regeneration, want 4", day, ex.Name, ex.Sets)
			}
		}
	}

	stored, _ := store.GetUser(ctx, testCPF)
	if stored.DesiredIntensity != profile.IntensityIntense {
		t.Errorf("stored intensity = %s, want intense", stored.DesiredIntensity)
	}
}

func TestRegenerateIgnoresUnknownIntensity(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store)
	ctx := context.Background()

	if _, err := svc.Register(ctx, registrationProfile()); err != nil {
		t.Fatalf("Register: %v", err)
	}

	// A tampered form value must not end up persisted in the profile.
	if _, _, err := svc.Regenerate(ctx, testCPF, profile.Intensity("ultra"), plan.DistributionSequential); err != nil {
		t.Fatalf("Regenerate: %v", err)
	}

	stored, _ := store.GetUser(ctx, testCPF)
	if stored.DesiredIntensity != profile.IntensityModerate {
		t.Errorf("stored intensity = %q, want the untouched moderate", stored.DesiredIntensity)
	}
}

func TestWorkoutExecutionFlow(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store)
	ctx := context.Background()

	if _, err := svc.Register(ctx, registrationProfile()); err != nil {
		t.Fatalf("Register: %v", err)
	}

	progress, err := svc.StartWorkout(ctx, testCPF, plan.Monday)
	if err != nil {
		t.Fatalf("StartWorkout: %v", err)
	}
	if progress.Phase != PhaseExercising {
		t.Fatalf("initial phase = %s", progress.Phase)
	}

	// Skip every exercise to drive the session to completion.
	for progress.Phase != PhaseComplete {
		progress, err = svc.SkipExercise(ctx, testCPF)
		if err != nil {
			t.Fatalf("SkipExercise: %v", err)
		}
	}

	// Completion persisted the record and dropped the session.
	if _, ok := svc.ActiveSession(testCPF); ok {
		t.Error("session still active after completion")
	}
	history, err := svc.History(ctx, testCPF)
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if len(history) != 1 {
		t.Fatalf("history has %d records, want 1", len(history))
	}
	if history[0].WeekKey != "2025-06-02" {
		t.Errorf("record week key = %q", history[0].WeekKey)
	}

	done, err := svc.HasCompletedToday(ctx, testCPF)
	if err != nil {
		t.Fatalf("HasCompletedToday: %v", err)
	}
	if !done {
		t.Error("HasCompletedToday = false after completing a workout")
	}

	if _, err := svc.CompleteSet(ctx, testCPF); !errors.Is(err, ErrNoActiveSession) {
		t.Errorf("CompleteSet without session = %v, want ErrNoActiveSession", err)
	}
}

func TestStartWorkoutUnscheduledDay(t *testing.T) {
	svc := newTestService(newFakeStore())
	ctx := context.Background()

	if _, err := svc.Register(ctx, registrationProfile()); err != nil {
		t.Fatalf("Register: %v", err)
	}

	// A 3-day sequential plan covers Monday through Wednesday only.
	if _, err := svc.StartWorkout(ctx, testCPF, plan.Friday); !errors.Is(err, ErrNotFound) {
		t.Errorf("StartWorkout on friday = %v, want ErrNotFound", err)
	}
}

func TestStats(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store)
	ctx := context.Background()

	if _, err := svc.Register(ctx, registrationProfile()); err != nil {
		t.Fatalf("Register: %v", err)
	}

	records := []HistoryRecord{
		{
			ID: "b", UserCPF: testCPF, WeekKey: "2025-05-26", Day: plan.Friday,
			CompletedAt: time.Date(2025, 5, 30, 11, 0, 0, 0, time.UTC), DurationMinutes: 40,
			EstimatedCalories: 288,
			Results: []ExerciseResult{
				{Name: "Squat", SetsCompleted: 3, TotalSets: 3},
			},
		},
		{
			ID: "a", UserCPF: testCPF, WeekKey: "2025-06-02", Day: plan.Monday,
			CompletedAt: time.Date(2025, 6, 2, 11, 0, 0, 0, time.UTC), DurationMinutes: 45,
			EstimatedCalories: 360,
			Results: []ExerciseResult{
				{Name: "Push-Up", SetsCompleted: 3, TotalSets: 3},
				{Name: "Row", SetsCompleted: 1, TotalSets: 3, Skipped: true},
			},
		},
	}
	for _, rec := range records {
		if err := store.SaveHistoryRecord(ctx, rec); err != nil {
			t.Fatalf("SaveHistoryRecord: %v", err)
		}
	}

	stats, err := svc.Stats(ctx, testCPF)
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if stats.TotalWorkouts != 2 {
		t.Errorf("total workouts = %d, want 2", stats.TotalWorkouts)
	}
	if stats.TotalMinutes != 85 {
		t.Errorf("total minutes = %d, want 85", stats.TotalMinutes)
	}
	// Only fully completed exercises count.
	if stats.ExercisesCompleted != 2 {
		t.Errorf("exercises completed = %d, want 2", stats.ExercisesCompleted)
	}
	if stats.WorkoutsThisWeek != 1 {
		t.Errorf("workouts this week = %d, want 1", stats.WorkoutsThisWeek)
	}
	if stats.TotalCalories != 648 {
		t.Errorf("total calories = %d, want 648", stats.TotalCalories)
	}
	// 85 minutes over 2 workouts rounds up.
	if stats.AverageMinutes != 43 {
		t.Errorf("average minutes = %d, want 43", stats.AverageMinutes)
	}
	if stats.LastWorkout == nil || stats.LastWorkout.ID != "a" {
		t.Errorf("last workout = %+v, want record a", stats.LastWorkout)
	}
}
