package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/mrezende/gymtotem/internal/contexthelpers"
	"github.com/mrezende/gymtotem/internal/plan"
	"github.com/mrezende/gymtotem/internal/workout"
)

type workoutTemplateData struct {
	BaseTemplateData
	Day         plan.Weekday
	DisplayName string
	Plan        plan.DayPlan
	InProgress  bool
}

// workoutGET shows the day's workout with its exercise prescriptions and a
// start button.
func (app *application) workoutGET(w http.ResponseWriter, r *http.Request) {
	day, ok := app.parseWeekdayParam(w, r)
	if !ok {
		return
	}

	ctx := r.Context()
	cpf := contexthelpers.CurrentUserCPF(ctx)

	dayPlan, err := app.workoutService.DayPlan(ctx, cpf, day)
	if err != nil {
		if errors.Is(err, workout.ErrNotFound) {
			app.notFound(w, r)
			return
		}
		app.serverError(w, r, fmt.Errorf("load day plan: %w", err))
		return
	}

	data := workoutTemplateData{
		BaseTemplateData: newBaseTemplateData(r),
		Day:              day,
		DisplayName:      day.DisplayName(),
		Plan:             dayPlan,
	}
	if progress, active := app.workoutService.ActiveSession(cpf); active && progress.Day == day {
		data.InProgress = true
	}

	app.render(w, r, http.StatusOK, "workout", data)
}

func (app *application) workoutStartPOST(w http.ResponseWriter, r *http.Request) {
	day, ok := app.parseWeekdayParam(w, r)
	if !ok {
		return
	}

	ctx := r.Context()
	cpf := contexthelpers.CurrentUserCPF(ctx)

	if _, err := app.workoutService.StartWorkout(ctx, cpf, day); err != nil {
		if errors.Is(err, workout.ErrNotFound) {
			app.notFound(w, r)
			return
		}
		app.serverError(w, r, fmt.Errorf("start workout: %w", err))
		return
	}

	redirect(w, r, fmt.Sprintf("/workouts/%s/session", day))
}

type executionTemplateData struct {
	BaseTemplateData
	Day      plan.Weekday
	Progress workout.Progress
}

// workoutSessionGET renders the execution screen for the active session.
// Without one it falls back to the day's workout overview.
func (app *application) workoutSessionGET(w http.ResponseWriter, r *http.Request) {
	day, ok := app.parseWeekdayParam(w, r)
	if !ok {
		return
	}

	cpf := contexthelpers.CurrentUserCPF(r.Context())
	progress, active := app.workoutService.ActiveSession(cpf)
	if !active || progress.Day != day {
		redirect(w, r, fmt.Sprintf("/workouts/%s", day))
		return
	}

	data := executionTemplateData{
		BaseTemplateData: newBaseTemplateData(r),
		Day:              day,
		Progress:         progress,
	}

	app.render(w, r, http.StatusOK, "execution", data)
}

type summaryTemplateData struct {
	BaseTemplateData
	Day    plan.Weekday
	Record workout.HistoryRecord
}

// workoutSummaryGET shows the result of the most recently finished session
// for the given day.
func (app *application) workoutSummaryGET(w http.ResponseWriter, r *http.Request) {
	day, ok := app.parseWeekdayParam(w, r)
	if !ok {
		return
	}

	ctx := r.Context()
	cpf := contexthelpers.CurrentUserCPF(ctx)

	history, err := app.workoutService.History(ctx, cpf)
	if err != nil {
		app.serverError(w, r, fmt.Errorf("load history: %w", err))
		return
	}
	for _, rec := range history {
		if rec.Day != day {
			continue
		}
		data := summaryTemplateData{
			BaseTemplateData: newBaseTemplateData(r),
			Day:              day,
			Record:           rec,
		}
		app.render(w, r, http.StatusOK, "summary", data)
		return
	}

	app.notFound(w, r)
}

func (app *application) completeSetPOST(w http.ResponseWriter, r *http.Request) {
	app.advanceSession(w, r, app.workoutService.CompleteSet)
}

func (app *application) skipRestPOST(w http.ResponseWriter, r *http.Request) {
	app.advanceSession(w, r, app.workoutService.SkipRest)
}

func (app *application) skipExercisePOST(w http.ResponseWriter, r *http.Request) {
	app.advanceSession(w, r, app.workoutService.SkipExercise)
}

func (app *application) tickPOST(w http.ResponseWriter, r *http.Request) {
	app.advanceSession(w, r, app.workoutService.Tick)
}

// advanceSession applies one state transition to the active session. A
// transition that completes the workout persists the history record and
// drops the session, so the client is pointed at the summary instead.
func (app *application) advanceSession(
	w http.ResponseWriter,
	r *http.Request,
	step func(ctx context.Context, cpf string) (workout.Progress, error),
) {
	day, ok := app.parseWeekdayParam(w, r)
	if !ok {
		return
	}

	ctx := r.Context()
	cpf := contexthelpers.CurrentUserCPF(ctx)

	progress, err := step(ctx, cpf)
	if err != nil {
		if errors.Is(err, workout.ErrNoActiveSession) {
			redirect(w, r, fmt.Sprintf("/workouts/%s", day))
			return
		}
		// A tick or skip that races the rest running out is harmless.
		if errors.Is(err, workout.ErrNotResting) {
			redirect(w, r, fmt.Sprintf("/workouts/%s/session", day))
			return
		}
		app.serverError(w, r, fmt.Errorf("advance session: %w", err))
		return
	}

	if progress.Phase == workout.PhaseComplete {
		redirect(w, r, fmt.Sprintf("/workouts/%s/summary", day))
		return
	}
	redirect(w, r, fmt.Sprintf("/workouts/%s/session", day))
}
