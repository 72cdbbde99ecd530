package main

import (
	"fmt"
	"net/http"
	"time"

	"github.com/mrezende/gymtotem/internal/contexthelpers"
)

type calendarDayView struct {
	Day       int
	Date      time.Time
	IsToday   bool
	Completed bool
	// WorkoutNames lists the workouts finished on this day.
	WorkoutNames []string
}

type calendarTemplateData struct {
	BaseTemplateData
	MonthName string
	Year      int
	PrevMonth string // yyyy-mm link target
	NextMonth string
	// Weeks is the month laid out as rows of seven cells. Leading and
	// trailing cells outside the month have Day zero.
	Weeks          [][]calendarDayView
	TotalThisMonth int
}

// calendarGET renders the monthly progress calendar. The month defaults to
// the current one and can be switched with a ?month=yyyy-mm query.
func (app *application) calendarGET(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	cpf := contexthelpers.CurrentUserCPF(ctx)

	now := time.Now()
	year, month := now.Year(), now.Month()
	if m := r.URL.Query().Get("month"); m != "" {
		if parsed, err := time.Parse("2006-01", m); err == nil {
			year, month = parsed.Year(), parsed.Month()
		}
	}

	history, err := app.workoutService.History(ctx, cpf)
	if err != nil {
		app.serverError(w, r, fmt.Errorf("load history: %w", err))
		return
	}

	completedByDay := map[int][]string{}
	for _, rec := range history {
		if rec.CompletedAt.Year() == year && rec.CompletedAt.Month() == month {
			completedByDay[rec.CompletedAt.Day()] = append(completedByDay[rec.CompletedAt.Day()], rec.WorkoutName)
		}
	}

	firstOfMonth := time.Date(year, month, 1, 0, 0, 0, 0, time.Local)
	data := calendarTemplateData{
		BaseTemplateData: newBaseTemplateData(r),
		MonthName:        month.String(),
		Year:             year,
		PrevMonth:        firstOfMonth.AddDate(0, -1, 0).Format("2006-01"),
		NextMonth:        firstOfMonth.AddDate(0, 1, 0).Format("2006-01"),
		Weeks:            buildCalendarWeeks(firstOfMonth, now, completedByDay),
	}
	for _, names := range completedByDay {
		data.TotalThisMonth += len(names)
	}

	app.render(w, r, http.StatusOK, "calendar", data)
}

const daysPerWeek = 7

// buildCalendarWeeks lays the month out in Monday-first rows.
func buildCalendarWeeks(firstOfMonth, today time.Time, completedByDay map[int][]string) [][]calendarDayView {
	daysInMonth := firstOfMonth.AddDate(0, 1, -1).Day()

	// Weekday returns Sunday as zero, shift so Monday leads the row.
	leading := (int(firstOfMonth.Weekday()) + 6) % daysPerWeek

	var weeks [][]calendarDayView
	week := make([]calendarDayView, leading, daysPerWeek)
	for day := 1; day <= daysInMonth; day++ {
		date := firstOfMonth.AddDate(0, 0, day-1)
		names := completedByDay[day]
		week = append(week, calendarDayView{
			Day:          day,
			Date:         date,
			IsToday:      sameDate(date, today),
			Completed:    len(names) > 0,
			WorkoutNames: names,
		})
		if len(week) == daysPerWeek {
			weeks = append(weeks, week)
			week = make([]calendarDayView, 0, daysPerWeek)
		}
	}
	if len(week) > 0 {
		for len(week) < daysPerWeek {
			week = append(week, calendarDayView{})
		}
		weeks = append(weeks, week)
	}
	return weeks
}

func sameDate(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}
