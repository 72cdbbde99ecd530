// Package catalog is the static exercise library. It feeds the plan
// synthesizer (selection by muscle focus) and the kiosk help screen
// (free-text search).
package catalog

import (
	"slices"
	"strings"
)

// Exercise is one catalog entry. Sets, Reps and RestTime are the exercise's
// own defaults; the synthesizer overrides them with the intensity
// configuration unless the exercise is timed.
type Exercise struct {
	ID           string
	Name         string
	Description  string // markdown, rendered on the help screen
	Focus        []string
	MuscleGroups []string
	Difficulty   string
	Equipment    []string
	Sets         int
	Reps         string
	RestTime     string
	// Timed exercises keep their own set count, duration-style rep spec
	// ("15-20 min", "30-60s") and rest time regardless of intensity.
	Timed bool
	// PerSide exercises get an "each side" qualifier appended to the
	// prescribed rep range.
	PerSide      bool
	Instructions []string
	Tips         []string
}

// ByFocus returns the exercises whose focus tags intersect the given groups,
// preserving catalog order. Matching is case-insensitive.
func ByFocus(groups []string) []Exercise {
	lowered := make([]string, len(groups))
	for i, g := range groups {
		lowered[i] = strings.ToLower(g)
	}
	var matched []Exercise
	for _, ex := range exercises {
		for _, f := range ex.Focus {
			if slices.Contains(lowered, strings.ToLower(f)) {
				matched = append(matched, ex)
				break
			}
		}
	}
	return matched
}

// All returns the full catalog in definition order.
func All() []Exercise {
	return slices.Clone(exercises)
}

// Search matches the query against exercise names, muscle groups and
// descriptions, case-insensitively. An empty query returns the full catalog.
func Search(query string) []Exercise {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return All()
	}
	var matched []Exercise
	for _, ex := range exercises {
		if strings.Contains(strings.ToLower(ex.Name), q) ||
			strings.Contains(strings.ToLower(ex.Description), q) {
			matched = append(matched, ex)
			continue
		}
		for _, mg := range ex.MuscleGroups {
			if strings.Contains(strings.ToLower(mg), q) {
				matched = append(matched, ex)
				break
			}
		}
	}
	return matched
}

// Get looks up an exercise by ID.
func Get(id string) (Exercise, bool) {
	for _, ex := range exercises {
		if ex.ID == id {
			return ex, true
		}
	}
	return Exercise{}, false
}
