package main

import (
	"strings"
	"testing"

	"github.com/mrezende/gymtotem/internal/e2etest"
	"github.com/mrezende/gymtotem/internal/testhelpers"
)

func Test_application_help(t *testing.T) {
	ctx := t.Context()
	server, err := e2etest.StartServer(t, testhelpers.NewWriter(t), testLookupEnv, run)
	if err != nil {
		t.Fatalf("Failed to start server: %v", err)
	}

	client := server.Client()

	t.Run("Library is browsable without login", func(t *testing.T) {
		doc, getErr := client.GetDoc(ctx, "/help")
		if getErr != nil {
			t.Fatalf("Failed to get help page: %v", getErr)
		}
		if doc.Find(".exercise-list li").Length() < 10 {
			t.Error("Expected the full exercise library on the help page")
		}
	})

	t.Run("Search narrows the library", func(t *testing.T) {
		doc, getErr := client.GetDoc(ctx, "/help?q=plank")
		if getErr != nil {
			t.Fatalf("Failed to search help: %v", getErr)
		}
		if count := doc.Find(".exercise-list li").Length(); count != 3 {
			t.Errorf("Expected 3 plank results, got %d", count)
		}
	})

	t.Run("Exercise page renders instructions", func(t *testing.T) {
		doc, getErr := client.GetDoc(ctx, "/help/chest-pushup")
		if getErr != nil {
			t.Fatalf("Failed to get exercise page: %v", getErr)
		}
		if !strings.Contains(doc.Text(), "Push-Up") {
			t.Error("Expected exercise name on the page")
		}
		if doc.Find(".instructions ol li").Length() == 0 {
			t.Error("Expected numbered instructions rendered from markdown")
		}
	})

	t.Run("Unknown exercise is not found", func(t *testing.T) {
		resp, getErr := client.Get(ctx, "/help/does-not-exist")
		if getErr != nil {
			t.Fatalf("Failed to get unknown exercise: %v", getErr)
		}
		defer func() { _ = resp.Body.Close() }()
		if resp.StatusCode != 404 {
			t.Errorf("Expected status 404, got %d", resp.StatusCode)
		}
	})
}
