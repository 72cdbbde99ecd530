package plan

import (
	"math"
	"strconv"
	"strings"

	"github.com/mrezende/gymtotem/internal/catalog"
	"github.com/mrezende/gymtotem/internal/profile"
)

// split names one day's muscle group focus and the catalog focus tags that
// serve it.
type split struct {
	name  string
	focus []string
}

// workoutSplits keys split rotations by weekly frequency. Frequencies without
// an entry fall back to the 3-day rotation.
var workoutSplits = map[int][]split{
	3: {
		{name: "Chest & Triceps", focus: []string{"chest", "triceps"}},
		{name: "Back & Biceps", focus: []string{"back", "biceps"}},
		{name: "Legs & Core", focus: []string{"legs", "core"}},
	},
	4: {
		{name: "Chest & Triceps", focus: []string{"chest", "triceps"}},
		{name: "Back & Biceps", focus: []string{"back", "biceps"}},
		{name: "Legs", focus: []string{"legs"}},
		{name: "Shoulders & Core", focus: []string{"shoulders", "core"}},
	},
	5: {
		{name: "Chest", focus: []string{"chest"}},
		{name: "Back", focus: []string{"back"}},
		{name: "Legs", focus: []string{"legs"}},
		{name: "Shoulders", focus: []string{"shoulders"}},
		{name: "Functional", focus: []string{"functional", "cardio"}},
	},
}

// intensityProfile holds the per-intensity prescription parameters.
type intensityProfile struct {
	sets       int
	reps       string
	rest       int
	calories   float64
	duration   string
	difficulty string
}

var intensityProfiles = map[Intensity]intensityProfile{
	IntensityLow:    {sets: 2, reps: "12-15", rest: 45, calories: 0.8, duration: "35-40 min", difficulty: "beginner"},
	IntensityMedium: {sets: 3, reps: "10-12", rest: 60, calories: 1.0, duration: "45-50 min", difficulty: "intermediate"},
	IntensityHigh:   {sets: 4, reps: "8-10", rest: 75, calories: 1.2, duration: "55-60 min", difficulty: "advanced"},
}

// exercisesPerDay caps how many catalog exercises a synthesized day carries.
const exercisesPerDay = 3

// Synthesizer builds weekly plans deterministically from the exercise
// catalog. The same profile always yields the same plan.
type Synthesizer struct{}

// NewSynthesizer returns a catalog-backed plan synthesizer.
func NewSynthesizer() *Synthesizer {
	return &Synthesizer{}
}

// Synthesize builds a weekly plan for the given profile.
func (s *Synthesizer) Synthesize(p profile.UserProfile, dist Distribution) WeeklyPlan {
	frequency := resolveFrequency(p)
	intensity := resolveIntensity(p)
	days := scheduleDays(frequency, dist)
	splits := splitsFor(frequency)
	cfg := intensityProfiles[intensity]

	wp := make(WeeklyPlan, len(days))
	for i, day := range days {
		sp := splits[i%len(splits)]
		wp[day] = s.buildDay(sp, cfg, p.WeightKg)
	}
	return wp
}

func (s *Synthesizer) buildDay(sp split, cfg intensityProfile, weightKg float64) DayPlan {
	var prescriptions []Prescription
	for _, ex := range catalog.ByFocus(sp.focus) {
		if len(prescriptions) == exercisesPerDay {
			break
		}
		sets := cfg.sets
		reps := cfg.reps
		rest := RestSeconds(cfg.rest)
		switch {
		case ex.Timed:
			// Timed exercises keep their catalog prescription. Scaling a
			// duration-style rep spec by intensity makes no sense.
			sets = ex.Sets
			reps = ex.Reps
			rest = RestSeconds(ParseRestSeconds(ex.RestTime))
		case ex.PerSide:
			reps = cfg.reps + " each side"
		}
		prescriptions = append(prescriptions, Prescription{
			Name:         ex.Name,
			Description:  ex.Description,
			Sets:         sets,
			Reps:         reps,
			RestSeconds:  rest,
			MuscleGroups: ex.MuscleGroups,
			Difficulty:   cfg.difficulty,
			Instructions: ex.Instructions,
			Tips:         ex.Tips,
		})
	}

	totalSets := 0
	for _, p := range prescriptions {
		totalSets += p.Sets
	}

	return DayPlan{
		Name:              sp.name,
		Exercises:         prescriptions,
		Duration:          cfg.duration,
		EstimatedCalories: estimateCalories(weightKg, cfg.calories),
		TotalSets:         totalSets,
		Difficulty:        cfg.difficulty,
		Focus:             sp.focus,
	}
}

// estimateCalories scales a base burn by body weight and intensity.
func estimateCalories(weightKg, multiplier float64) int {
	if weightKg <= 0 {
		weightKg = 70
	}
	return int(math.Round(weightKg * 4.5 * multiplier))
}

// resolveFrequency picks the weekly workout count from the profile,
// preferring the desired frequency, defaulting to 3 and clamping to the
// Monday-Friday window.
func resolveFrequency(p profile.UserProfile) int {
	raw := p.DesiredFrequency
	if raw == "" {
		raw = p.CurrentFrequency
	}
	n := parseFrequency(raw)
	if n < 1 {
		n = 3
	}
	if n > 5 {
		n = 5
	}
	return n
}

// parseFrequency reads the leading digit run from a free-form frequency
// answer such as "3x" or "4 times a week".
func parseFrequency(raw string) int {
	digits := leadingDigits(strings.TrimSpace(raw))
	if digits == "" {
		return 0
	}
	n, err := strconv.Atoi(digits)
	if err != nil {
		return 0
	}
	return n
}

func resolveIntensity(p profile.UserProfile) Intensity {
	raw := p.DesiredIntensity
	if raw == "" {
		raw = p.CurrentIntensity
	}
	switch raw {
	case profile.IntensityLight:
		return IntensityLow
	case profile.IntensityIntense:
		return IntensityHigh
	default:
		return IntensityMedium
	}
}

// scheduleDays places frequency workouts into the Monday-Friday window.
// Sequential packs them from Monday on. Alternating skips a day between
// workouts, which caps the effective count at three days.
func scheduleDays(frequency int, dist Distribution) []Weekday {
	if frequency > len(Weekdays) {
		frequency = len(Weekdays)
	}
	if dist != DistributionAlternating {
		return Weekdays[:frequency]
	}
	var days []Weekday
	for i := 0; i < len(Weekdays) && len(days) < frequency; i += 2 {
		days = append(days, Weekdays[i])
	}
	return days
}

// splitsFor returns the split rotation for a frequency, falling back to the
// 3-day rotation for frequencies without a dedicated table.
func splitsFor(frequency int) []split {
	if s, ok := workoutSplits[frequency]; ok {
		return s
	}
	return workoutSplits[3]
}

// ParseRestSeconds reads the first digit run from a rest prescription such
// as "60s" or "rest 90 seconds". Unparseable input means a minute.
func ParseRestSeconds(raw string) int {
	for i := 0; i < len(raw); i++ {
		if raw[i] >= '0' && raw[i] <= '9' {
			digits := leadingDigits(raw[i:])
			n, err := strconv.Atoi(digits)
			if err != nil {
				return 60
			}
			return n
		}
	}
	return 60
}

func leadingDigits(s string) string {
	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	return s[:end]
}
