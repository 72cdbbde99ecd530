package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"os"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/mrezende/gymtotem/internal/e2etest"
	"github.com/mrezende/gymtotem/internal/logging"
	"github.com/mrezende/gymtotem/internal/testhelpers"
)

const (
	userRegistrationTimeout    = 30 * time.Second
	scenarioTimeout            = 30 * time.Second
	maxConcurrentRegistrations = 10
	maxConcurrentOperations    = 20
	successRateThreshold       = 95.0
	expectedArgsCount          = 3
	percentageMultiplier       = 100
	maxExerciseSkips           = 10
)

// AuthenticatedUser holds a client with valid session.
type AuthenticatedUser struct {
	Client *e2etest.Client
	CPF    string
}

func randomCPF() string {
	var sb strings.Builder
	for range 11 {
		fmt.Fprintf(&sb, "%d", rand.IntN(10))
	}
	return sb.String()
}

// RegisterUser creates a new kiosk member and leaves them logged in.
func RegisterUser(ctx context.Context, url string, userIndex int, logger *slog.Logger) (*AuthenticatedUser, error) {
	// Each user needs their own client for a separate session cookie.
	client, err := e2etest.NewClient(url)
	if err != nil {
		return nil, fmt.Errorf("creating client for user %d: %w", userIndex, err)
	}

	cpf := randomCPF()
	if _, err = client.Register(ctx, cpf, fmt.Sprintf("Load Tester %d", userIndex)); err != nil {
		return nil, fmt.Errorf("registering user %d: %w", userIndex, err)
	}

	logger.LogAttrs(ctx, slog.LevelInfo, "User registered and authenticated",
		slog.Int("user_index", userIndex))

	return &AuthenticatedUser{
		Client: client,
		CPF:    cpf,
	}, nil
}

// SetupUsers registers the specified number of users concurrently.
func SetupUsers(ctx context.Context, url string, numUsers int, logger *slog.Logger) ([]*AuthenticatedUser, error) {
	logger.LogAttrs(ctx, slog.LevelInfo, "Starting user registration", slog.Int("num_users", numUsers))

	var (
		users   = make([]*AuthenticatedUser, 0, numUsers)
		usersMu sync.Mutex
	)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentRegistrations)

	for i := range numUsers {
		g.Go(func() error {
			userCtx, cancel := context.WithTimeout(ctx, userRegistrationTimeout)
			defer cancel()

			user, err := RegisterUser(userCtx, url, i, logger)
			if err != nil {
				return fmt.Errorf("user %d: %w", i, err)
			}

			usersMu.Lock()
			users = append(users, user)
			usersMu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		logger.LogAttrs(ctx, slog.LevelError, "Some user registrations failed",
			slog.Int("successful_count", len(users)))
		return users, fmt.Errorf("registration failures: %w", err)
	}

	logger.LogAttrs(ctx, slog.LevelInfo, "All users registered successfully",
		slog.Int("total_users", len(users)))

	return users, nil
}

// WorkoutScenario exercises one user's kiosk flow: weekly plan, workout
// execution on Monday and the dashboard afterwards.
func WorkoutScenario(ctx context.Context, user *AuthenticatedUser) error {
	client := user.Client

	doc, err := client.GetDoc(ctx, "/plan")
	if err != nil {
		return fmt.Errorf("fetch weekly plan: %w", err)
	}

	if doc, err = client.GetDoc(ctx, "/workouts/monday"); err != nil {
		return fmt.Errorf("fetch monday workout: %w", err)
	}
	if doc, err = client.SubmitForm(ctx, doc, "/workouts/monday/start", nil); err != nil {
		return fmt.Errorf("start workout: %w", err)
	}

	// Skip through the whole session. The skip cap guards against a broken
	// state machine that never completes.
	for range maxExerciseSkips {
		if strings.Contains(doc.Text(), "Workout complete!") {
			break
		}
		if doc, err = client.SubmitForm(ctx, doc, "/workouts/monday/session/skip-exercise", nil); err != nil {
			return fmt.Errorf("skip exercise: %w", err)
		}
	}
	if !strings.Contains(doc.Text(), "Workout complete!") {
		return errors.New("workout did not complete after skipping all exercises")
	}

	if doc, err = client.GetDoc(ctx, "/dashboard"); err != nil {
		return fmt.Errorf("fetch dashboard: %w", err)
	}
	if !strings.Contains(doc.Text(), "Workout done for today") {
		return errors.New("dashboard does not show the completed workout")
	}

	return nil
}

// RunLoadTest runs the workout scenario for every user concurrently and
// fails when the success rate drops below the threshold.
func RunLoadTest(ctx context.Context, users []*AuthenticatedUser, logger *slog.Logger) error {
	var successCount atomic.Int64

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentOperations)

	for _, user := range users {
		g.Go(func() error {
			scenarioCtx, cancel := context.WithTimeout(ctx, scenarioTimeout)
			defer cancel()

			if err := WorkoutScenario(scenarioCtx, user); err != nil {
				logger.LogAttrs(ctx, slog.LevelWarn, "Scenario failed",
					slog.String("cpf", user.CPF), slog.Any("error", err))
				return nil // Failures count against the success rate instead of aborting.
			}
			successCount.Add(1)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return fmt.Errorf("run scenarios: %w", err)
	}

	userCount := len(users)
	successRate := float64(successCount.Load()) / float64(userCount) * percentageMultiplier
	logger.LogAttrs(ctx, slog.LevelInfo, "Load test finished",
		slog.Int("users", userCount),
		slog.Int64("successes", successCount.Load()),
		slog.Float64("success_rate", successRate))

	if successRate < successRateThreshold {
		return fmt.Errorf("load test failed: success rate %.1f%% below threshold", successRate)
	}
	return nil
}

func main() {
	logger := testhelpers.NewLogger(os.Stdout)
	ctx := context.Background()

	if len(os.Args) != expectedArgsCount {
		logger.LogAttrs(ctx, slog.LevelError, "usage: stresstest <hostname> <num_users>")
		os.Exit(1)
	}

	hostname := os.Args[1]
	numUsers, err := strconv.Atoi(os.Args[2])
	if err != nil || numUsers < 1 {
		logger.LogAttrs(ctx, slog.LevelError, "num_users must be a positive number")
		os.Exit(1)
	}

	ctx = logging.WithAttrs(ctx, slog.String("hostname", hostname))
	url := "https://" + hostname
	if strings.Contains(hostname, "localhost") {
		url = "http://" + hostname
	}

	client, err := e2etest.NewClient(url)
	if err != nil {
		logger.LogAttrs(ctx, slog.LevelError, "error creating client", slog.Any("error", err))
		os.Exit(1)
	}
	if err = client.WaitForReady(ctx, "/api/healthy"); err != nil {
		logger.LogAttrs(ctx, slog.LevelError, "server not ready in time", slog.Any("error", err))
		os.Exit(1)
	}

	start := time.Now()
	users, err := SetupUsers(ctx, url, numUsers, logger)
	if err != nil {
		logger.LogAttrs(ctx, slog.LevelError, "error setting up users", slog.Any("error", err))
		os.Exit(1)
	}
	if err = RunLoadTest(ctx, users, logger); err != nil {
		logger.LogAttrs(ctx, slog.LevelError, "load test failed", slog.Any("error", err))
		os.Exit(1)
	}

	logger.LogAttrs(ctx, slog.LevelInfo, "Stress test successful 🎉", slog.Duration("duration", time.Since(start)))
	os.Exit(0)
}
