package main

import (
	"net/http"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/mrezende/gymtotem/internal/e2etest"
	"github.com/mrezende/gymtotem/internal/testhelpers"
)

func Test_application_workoutFlow(t *testing.T) {
	var (
		ctx = t.Context()
		doc *goquery.Document
	)
	server, err := e2etest.StartServer(t, testhelpers.NewWriter(t), testLookupEnv, run)
	if err != nil {
		t.Fatalf("Failed to start server: %v", err)
	}

	client := server.Client()
	if _, err = client.Register(ctx, "12345678901", "Joao Pereira"); err != nil {
		t.Fatalf("Failed to register: %v", err)
	}

	t.Run("Weekly plan lists three sequential days", func(t *testing.T) {
		doc, err = client.GetDoc(ctx, "/plan")
		if err != nil {
			t.Fatalf("Failed to get plan: %v", err)
		}
		for _, day := range []string{"Monday", "Tuesday", "Wednesday"} {
			if doc.Find("h2:contains('" + day + "')").Length() == 0 {
				t.Errorf("Expected plan to contain a workout for %s", day)
			}
		}
	})

	t.Run("Unscheduled day is not found", func(t *testing.T) {
		resp, getErr := client.Get(ctx, "/workouts/friday")
		if getErr != nil {
			t.Fatalf("Failed to get unscheduled day: %v", getErr)
		}
		defer func() { _ = resp.Body.Close() }()
		if resp.StatusCode != http.StatusNotFound {
			t.Errorf("Expected status 404 for unscheduled day, got %d", resp.StatusCode)
		}
	})

	t.Run("Start workout and rest between sets", func(t *testing.T) {
		doc, err = client.GetDoc(ctx, "/workouts/monday")
		if err != nil {
			t.Fatalf("Failed to get workout page: %v", err)
		}
		checkButtonPresence(t, doc, "Start workout", 1)

		doc, err = client.SubmitForm(ctx, doc, "/workouts/monday/start", nil)
		if err != nil {
			t.Fatalf("Failed to start workout: %v", err)
		}
		checkButtonPresence(t, doc, "Set done", 1)
		if !strings.Contains(doc.Text(), "Exercise 1 of 3") {
			t.Error("Expected execution page to show exercise progress")
		}

		doc, err = client.SubmitForm(ctx, doc, "/workouts/monday/session/complete-set", nil)
		if err != nil {
			t.Fatalf("Failed to complete set: %v", err)
		}
		if !strings.Contains(doc.Text(), "Rest:") {
			t.Error("Expected a rest countdown after completing a set")
		}

		doc, err = client.SubmitForm(ctx, doc, "/workouts/monday/session/skip-rest", nil)
		if err != nil {
			t.Fatalf("Failed to skip rest: %v", err)
		}
		if !strings.Contains(doc.Text(), "Set 2 of") {
			t.Error("Expected to be on the second set after skipping rest")
		}
	})

	t.Run("Skipping remaining exercises completes the workout", func(t *testing.T) {
		for range 3 {
			doc, err = client.SubmitForm(ctx, doc, "/workouts/monday/session/skip-exercise", nil)
			if err != nil {
				t.Fatalf("Failed to skip exercise: %v", err)
			}
			if strings.Contains(doc.Text(), "Workout complete!") {
				break
			}
		}
		if !strings.Contains(doc.Text(), "Workout complete!") {
			t.Fatal("Expected workout summary after skipping all exercises")
		}
		if !strings.Contains(doc.Text(), "kcal") {
			t.Error("Expected the calorie estimate on the summary")
		}
	})

	t.Run("Dashboard reflects the finished workout", func(t *testing.T) {
		doc, err = client.GetDoc(ctx, "/dashboard")
		if err != nil {
			t.Fatalf("Failed to get dashboard: %v", err)
		}
		if !strings.Contains(doc.Text(), "Workout done for today") {
			t.Error("Expected completed-today banner on dashboard")
		}
		if doc.Find(".history li").Length() == 0 {
			t.Error("Expected the finished workout in recent history")
		}
		if !strings.Contains(doc.Text(), "Calories burned") {
			t.Error("Expected the calorie stat on the dashboard")
		}
		if !strings.Contains(doc.Text(), "Last workout:") {
			t.Error("Expected the last workout line on the dashboard")
		}
	})

	t.Run("Calendar marks the completed day", func(t *testing.T) {
		doc, err = client.GetDoc(ctx, "/calendar")
		if err != nil {
			t.Fatalf("Failed to get calendar: %v", err)
		}
		if doc.Find("td.completed").Length() == 0 {
			t.Error("Expected at least one completed day on the calendar")
		}
	})
}
