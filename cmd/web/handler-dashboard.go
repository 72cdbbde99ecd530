package main

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/mrezende/gymtotem/internal/contexthelpers"
	"github.com/mrezende/gymtotem/internal/profile"
	"github.com/mrezende/gymtotem/internal/workout"
)

type dashboardTemplateData struct {
	BaseTemplateData
	Name             string
	FormattedCPF     string
	Level            profile.FitnessLevel
	Stats            workout.Stats
	CompletedToday   bool
	HasActiveSession bool
	ActiveSessionDay string
	RecentWorkouts   []workout.HistoryRecord
}

const recentWorkoutLimit = 5

func (app *application) dashboardGET(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	cpf := contexthelpers.CurrentUserCPF(ctx)

	p, err := app.workoutService.Profile(ctx, cpf)
	if err != nil {
		app.serverError(w, r, fmt.Errorf("load profile: %w", err))
		return
	}

	// History reads degrade to zero values so the kiosk stays usable when
	// the store is down.
	stats, err := app.workoutService.Stats(ctx, cpf)
	if err != nil {
		app.logger.LogAttrs(ctx, slog.LevelWarn, "stats unavailable", slog.Any("error", err))
		stats = workout.Stats{}
	}

	completedToday, err := app.workoutService.HasCompletedToday(ctx, cpf)
	if err != nil {
		app.logger.LogAttrs(ctx, slog.LevelWarn, "completed today unavailable", slog.Any("error", err))
		completedToday = false
	}

	history, err := app.workoutService.History(ctx, cpf)
	if err != nil {
		app.logger.LogAttrs(ctx, slog.LevelWarn, "history unavailable", slog.Any("error", err))
		history = nil
	}
	if len(history) > recentWorkoutLimit {
		history = history[:recentWorkoutLimit]
	}

	data := dashboardTemplateData{
		BaseTemplateData: newBaseTemplateData(r),
		Name:             p.Name,
		FormattedCPF:     profile.FormatCPF(p.CPF),
		Level:            p.Level,
		Stats:            stats,
		CompletedToday:   completedToday,
		RecentWorkouts:   history,
	}
	if progress, ok := app.workoutService.ActiveSession(cpf); ok {
		data.HasActiveSession = true
		data.ActiveSessionDay = string(progress.Day)
	}

	app.render(w, r, http.StatusOK, "dashboard", data)
}
