package catalog_test

import (
	"testing"

	"github.com/mrezende/gymtotem/internal/catalog"
)

func TestByFocus(t *testing.T) {
	testCases := []struct {
		name    string
		groups  []string
		wantIDs []string
	}{
		{
			name:    "chest and triceps",
			groups:  []string{"chest", "triceps"},
			wantIDs: []string{"chest-pushup", "chest-bench-press", "triceps-chair-dip"},
		},
		{
			name:    "case insensitive",
			groups:  []string{"Shoulders"},
			wantIDs: []string{"triceps-chair-dip", "shoulders-lateral-raise"},
		},
		{
			name:   "unknown group",
			groups: []string{"neck"},
		},
		{
			name:   "empty groups",
			groups: nil,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := catalog.ByFocus(tc.groups)
			if len(got) != len(tc.wantIDs) {
				t.Fatalf("ByFocus returned %d exercises, want %d", len(got), len(tc.wantIDs))
			}
			for i, ex := range got {
				if ex.ID != tc.wantIDs[i] {
					t.Errorf("exercise %d = %s, want %s", i, ex.ID, tc.wantIDs[i])
				}
			}
		})
	}
}

func TestByFocusNoDuplicates(t *testing.T) {
	// Exercises with several matching focus tags must appear once.
	got := catalog.ByFocus([]string{"functional", "cardio"})
	seen := map[string]bool{}
	for _, ex := range got {
		if seen[ex.ID] {
			t.Errorf("exercise %s appears twice", ex.ID)
		}
		seen[ex.ID] = true
	}
}

func TestSearch(t *testing.T) {
	testCases := []struct {
		name      string
		query     string
		wantCount int
	}{
		{name: "empty query returns everything", query: "", wantCount: len(catalog.All())},
		{name: "by name", query: "push-up", wantCount: 1},
		{name: "case insensitive", query: "PLANK", wantCount: 3},
		{name: "no match", query: "swimming", wantCount: 0},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := catalog.Search(tc.query)
			if len(got) != tc.wantCount {
				ids := make([]string, len(got))
				for i, ex := range got {
					ids[i] = ex.ID
				}
				t.Errorf("Search(%q) returned %d exercises %v, want %d", tc.query, len(got), ids, tc.wantCount)
			}
		})
	}
}

func TestGet(t *testing.T) {
	ex, ok := catalog.Get("legs-squat")
	if !ok {
		t.Fatal("Get(legs-squat) not found")
	}
	if ex.Name == "" || len(ex.Instructions) == 0 {
		t.Errorf("exercise %s is missing name or instructions", ex.ID)
	}

	if _, ok := catalog.Get("nope"); ok {
		t.Error("Get(nope) found an exercise")
	}
}

func TestCatalogIntegrity(t *testing.T) {
	seen := map[string]bool{}
	for _, ex := range catalog.All() {
		if seen[ex.ID] {
			t.Errorf("duplicate exercise ID %s", ex.ID)
		}
		seen[ex.ID] = true
		if ex.Name == "" || ex.Description == "" {
			t.Errorf("exercise %s is missing name or description", ex.ID)
		}
		if len(ex.Focus) == 0 {
			t.Errorf("exercise %s has no focus tags", ex.ID)
		}
		if len(ex.MuscleGroups) == 0 {
			t.Errorf("exercise %s has no muscle groups", ex.ID)
		}
	}
}
