package store_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/mrezende/gymtotem/internal/plan"
	"github.com/mrezende/gymtotem/internal/profile"
	"github.com/mrezende/gymtotem/internal/sqlite"
	"github.com/mrezende/gymtotem/internal/store"
	"github.com/mrezende/gymtotem/internal/testhelpers"
	"github.com/mrezende/gymtotem/internal/workout"
)

// storeImplementations runs every test against both the SQLite and the
// memory store.
func storeImplementations(t *testing.T) map[string]workout.Store {
	t.Helper()

	ctx := context.Background()
	logger := testhelpers.NewLogger(testhelpers.NewWriter(t))
	db, err := sqlite.NewDatabase(ctx, ":memory:", logger)
	if err != nil {
		t.Fatalf("open in-memory database: %v", err)
	}
	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Errorf("close database: %v", err)
		}
	})

	return map[string]workout.Store{
		"sqlite": store.NewSQLiteStore(db, logger),
		"memory": store.NewMemoryStore(),
	}
}

func testUser(cpf string) profile.UserProfile {
	return profile.UserProfile{
		CPF:              cpf,
		Name:             "Maria Silva",
		Age:              28,
		WeightKg:         62.5,
		HeightCm:         165,
		ActivityLevel:    "moderate",
		PracticesSport:   false,
		DesiredFrequency: "3",
		DesiredIntensity: profile.IntensityModerate,
		WorkoutTypes:     []string{"strength", "functional"},
		Goals:            []string{"gain-muscle", "general-health"},
		Level:            profile.LevelIntermediate,
		RegisteredAt:     time.Date(2025, 5, 1, 9, 0, 0, 0, time.UTC),
		LastLogin:        time.Date(2025, 5, 1, 9, 0, 0, 0, time.UTC),
	}
}

func TestUserRoundtrip(t *testing.T) {
	for name, s := range storeImplementations(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			want := testUser("12345678901")

			if err := s.CreateUser(ctx, want); err != nil {
				t.Fatalf("CreateUser: %v", err)
			}

			got, err := s.GetUser(ctx, want.CPF)
			if err != nil {
				t.Fatalf("GetUser: %v", err)
			}
			if diff := cmp.Diff(want, got); diff != "" {
				t.Errorf("user mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestCreateUserDuplicate(t *testing.T) {
	for name, s := range storeImplementations(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			user := testUser("12345678901")

			if err := s.CreateUser(ctx, user); err != nil {
				t.Fatalf("CreateUser: %v", err)
			}
			if err := s.CreateUser(ctx, user); !errors.Is(err, workout.ErrDuplicateUser) {
				t.Errorf("second CreateUser = %v, want ErrDuplicateUser", err)
			}
		})
	}
}

func TestGetUserNotFound(t *testing.T) {
	for name, s := range storeImplementations(t) {
		t.Run(name, func(t *testing.T) {
			if _, err := s.GetUser(context.Background(), "00000000000"); !errors.Is(err, workout.ErrNotFound) {
				t.Errorf("GetUser = %v, want ErrNotFound", err)
			}
		})
	}
}

func TestUpdateUser(t *testing.T) {
	for name, s := range storeImplementations(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			user := testUser("12345678901")
			if err := s.CreateUser(ctx, user); err != nil {
				t.Fatalf("CreateUser: %v", err)
			}

			user.WeightKg = 64
			user.DesiredIntensity = profile.IntensityIntense
			user.Goals = []string{"strength"}
			if err := s.UpdateUser(ctx, user); err != nil {
				t.Fatalf("UpdateUser: %v", err)
			}

			got, err := s.GetUser(ctx, user.CPF)
			if err != nil {
				t.Fatalf("GetUser: %v", err)
			}
			if diff := cmp.Diff(user, got); diff != "" {
				t.Errorf("user mismatch (-want +got):\n%s", diff)
			}

			missing := testUser("99999999999")
			if err := s.UpdateUser(ctx, missing); !errors.Is(err, workout.ErrNotFound) {
				t.Errorf("UpdateUser missing = %v, want ErrNotFound", err)
			}
		})
	}
}

func TestTouchLastLogin(t *testing.T) {
	for name, s := range storeImplementations(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			user := testUser("12345678901")
			if err := s.CreateUser(ctx, user); err != nil {
				t.Fatalf("CreateUser: %v", err)
			}

			at := time.Date(2025, 6, 2, 7, 30, 0, 0, time.UTC)
			if err := s.TouchLastLogin(ctx, user.CPF, at); err != nil {
				t.Fatalf("TouchLastLogin: %v", err)
			}

			got, err := s.GetUser(ctx, user.CPF)
			if err != nil {
				t.Fatalf("GetUser: %v", err)
			}
			if !got.LastLogin.Equal(at) {
				t.Errorf("last login = %v, want %v", got.LastLogin, at)
			}

			if err := s.TouchLastLogin(ctx, "00000000000", at); !errors.Is(err, workout.ErrNotFound) {
				t.Errorf("TouchLastLogin missing = %v, want ErrNotFound", err)
			}
		})
	}
}

func testPlan() plan.WeeklyPlan {
	return plan.WeeklyPlan{
		plan.Monday: {
			Name: "Chest & Triceps",
			Exercises: []plan.Prescription{
				{Name: "Push-Up", Sets: 3, Reps: "10-12", RestSeconds: 60, MuscleGroups: []string{"chest"}},
			},
			Duration:          "45-50 min",
			EstimatedCalories: 280,
			TotalSets:         3,
			Difficulty:        "intermediate",
			Focus:             []string{"chest", "triceps"},
		},
	}
}

func TestWeeklyPlanRoundtrip(t *testing.T) {
	for name, s := range storeImplementations(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			user := testUser("12345678901")
			if err := s.CreateUser(ctx, user); err != nil {
				t.Fatalf("CreateUser: %v", err)
			}

			const weekKey = "2025-06-02"
			if _, err := s.GetWeeklyPlan(ctx, user.CPF, weekKey); !errors.Is(err, workout.ErrNotFound) {
				t.Fatalf("GetWeeklyPlan before save = %v, want ErrNotFound", err)
			}

			want := testPlan()
			if err := s.SaveWeeklyPlan(ctx, user.CPF, weekKey, want); err != nil {
				t.Fatalf("SaveWeeklyPlan: %v", err)
			}

			got, err := s.GetWeeklyPlan(ctx, user.CPF, weekKey)
			if err != nil {
				t.Fatalf("GetWeeklyPlan: %v", err)
			}
			if diff := cmp.Diff(want, got); diff != "" {
				t.Errorf("plan mismatch (-want +got):\n%s", diff)
			}

			// Saving again replaces the stored plan.
			want[plan.Monday] = plan.DayPlan{
				Name:      "Back & Biceps",
				Exercises: []plan.Prescription{{Name: "Row", Sets: 3, Reps: "10-12"}},
			}
			if err := s.SaveWeeklyPlan(ctx, user.CPF, weekKey, want); err != nil {
				t.Fatalf("SaveWeeklyPlan replace: %v", err)
			}
			got, err = s.GetWeeklyPlan(ctx, user.CPF, weekKey)
			if err != nil {
				t.Fatalf("GetWeeklyPlan after replace: %v", err)
			}
			if got[plan.Monday].Name != "Back & Biceps" {
				t.Errorf("replaced plan name = %q", got[plan.Monday].Name)
			}

			if err := s.DeleteWeeklyPlan(ctx, user.CPF, weekKey); err != nil {
				t.Fatalf("DeleteWeeklyPlan: %v", err)
			}
			if _, err := s.GetWeeklyPlan(ctx, user.CPF, weekKey); !errors.Is(err, workout.ErrNotFound) {
				t.Errorf("GetWeeklyPlan after delete = %v, want ErrNotFound", err)
			}
			if err := s.DeleteWeeklyPlan(ctx, user.CPF, weekKey); !errors.Is(err, workout.ErrNotFound) {
				t.Errorf("second DeleteWeeklyPlan = %v, want ErrNotFound", err)
			}
		})
	}
}

func TestHistoryOrdering(t *testing.T) {
	for name, s := range storeImplementations(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			user := testUser("12345678901")
			if err := s.CreateUser(ctx, user); err != nil {
				t.Fatalf("CreateUser: %v", err)
			}

			base := time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC)
			records := []workout.HistoryRecord{
				{
					ID: "a", UserCPF: user.CPF, WeekKey: "2025-06-02", Day: plan.Monday,
					WorkoutName: "Chest & Triceps", StartedAt: base, CompletedAt: base.Add(45 * time.Minute),
					DurationMinutes:   45,
					EstimatedCalories: 338,
					Results:           []workout.ExerciseResult{{Name: "Push-Up", SetsCompleted: 3, TotalSets: 3}},
				},
				{
					ID: "b", UserCPF: user.CPF, WeekKey: "2025-06-02", Day: plan.Wednesday,
					WorkoutName: "Back & Biceps", StartedAt: base.AddDate(0, 0, 2),
					CompletedAt: base.AddDate(0, 0, 2).Add(40 * time.Minute), DurationMinutes: 40,
					EstimatedCalories: 288,
					Results:           []workout.ExerciseResult{{Name: "Row", SetsCompleted: 2, TotalSets: 3, Skipped: true}},
				},
			}
			for _, rec := range records {
				if err := s.SaveHistoryRecord(ctx, rec); err != nil {
					t.Fatalf("SaveHistoryRecord %s: %v", rec.ID, err)
				}
			}

			got, err := s.ListHistory(ctx, user.CPF)
			if err != nil {
				t.Fatalf("ListHistory: %v", err)
			}
			if len(got) != 2 {
				t.Fatalf("history has %d records, want 2", len(got))
			}
			if got[0].ID != "b" || got[1].ID != "a" {
				t.Errorf("history order = %s, %s; want b, a", got[0].ID, got[1].ID)
			}
			if diff := cmp.Diff(records[1], got[0]); diff != "" {
				t.Errorf("record mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
