package main

import (
	"fmt"
	"net/http"

	"github.com/mrezende/gymtotem/internal/contexthelpers"
	"github.com/mrezende/gymtotem/internal/plan"
	"github.com/mrezende/gymtotem/internal/profile"
)

type planDayView struct {
	Day         plan.Weekday
	DisplayName string
	Plan        plan.DayPlan
}

type planTemplateData struct {
	BaseTemplateData
	WeekKey string
	Days    []planDayView
}

func (app *application) planGET(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	cpf := contexthelpers.CurrentUserCPF(ctx)

	weeklyPlan, weekKey, err := app.workoutService.WeeklyPlan(ctx, cpf)
	if err != nil {
		app.serverError(w, r, fmt.Errorf("load weekly plan: %w", err))
		return
	}

	days := make([]planDayView, 0, len(weeklyPlan))
	for _, day := range weeklyPlan.Days() {
		days = append(days, planDayView{
			Day:         day,
			DisplayName: day.DisplayName(),
			Plan:        weeklyPlan[day],
		})
	}

	data := planTemplateData{
		BaseTemplateData: newBaseTemplateData(r),
		WeekKey:          weekKey,
		Days:             days,
	}

	app.render(w, r, http.StatusOK, "plan", data)
}

func (app *application) planRegeneratePOST(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		app.serverError(w, r, fmt.Errorf("parse form: %w", err))
		return
	}

	ctx := r.Context()
	cpf := contexthelpers.CurrentUserCPF(ctx)
	intensity := profile.ParseIntensity(r.Form.Get("intensity"))
	distribution := plan.ParseDistribution(r.Form.Get("distribution"))

	if _, _, err := app.workoutService.Regenerate(ctx, cpf, intensity, distribution); err != nil {
		app.serverError(w, r, fmt.Errorf("regenerate plan: %w", err))
		return
	}

	redirect(w, r, "/plan")
}
