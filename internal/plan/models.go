// Package plan generates weekly workout plans: a deterministic synthesizer
// built on the exercise catalog and a remote LLM-backed generator that falls
// back to the synthesizer on any failure.
package plan

import (
	"encoding/json"
	"fmt"
)

// Intensity parameterizes set counts, rep ranges, rest and calories.
type Intensity string

const (
	IntensityLow    Intensity = "low"
	IntensityMedium Intensity = "medium"
	IntensityHigh   Intensity = "high"
)

// ParseIntensity maps a form value to an Intensity, defaulting to medium.
func ParseIntensity(s string) Intensity {
	switch Intensity(s) {
	case IntensityLow, IntensityHigh:
		return Intensity(s)
	default:
		return IntensityMedium
	}
}

// Distribution selects which weekdays in the Monday-Friday window host
// workouts.
type Distribution string

const (
	DistributionSequential  Distribution = "sequential"
	DistributionAlternating Distribution = "alternating"
)

// ParseDistribution maps a form value to a Distribution, defaulting to
// sequential.
func ParseDistribution(s string) Distribution {
	if Distribution(s) == DistributionAlternating {
		return DistributionAlternating
	}
	return DistributionSequential
}

// Weekday is a plan weekday key. Plans only ever use Monday through Friday.
type Weekday string

const (
	Monday    Weekday = "monday"
	Tuesday   Weekday = "tuesday"
	Wednesday Weekday = "wednesday"
	Thursday  Weekday = "thursday"
	Friday    Weekday = "friday"
)

// Weekdays is the ordered window the distribution policies draw from.
var Weekdays = []Weekday{Monday, Tuesday, Wednesday, Thursday, Friday}

// DisplayName returns the human-readable weekday name.
func (d Weekday) DisplayName() string {
	names := map[Weekday]string{
		Monday:    "Monday",
		Tuesday:   "Tuesday",
		Wednesday: "Wednesday",
		Thursday:  "Thursday",
		Friday:    "Friday",
	}
	if n, ok := names[d]; ok {
		return n
	}
	return string(d)
}

// Prescription is one exercise inside a day plan with its prescribed volume.
// The JSON shape doubles as the wire contract with the remote generator.
type Prescription struct {
	Name         string      `json:"name"`
	Description  string      `json:"description"`
	Sets         int         `json:"sets"`
	Reps         string      `json:"reps"`
	RestSeconds  RestSeconds `json:"restTime"`
	MuscleGroups []string    `json:"muscleGroups"`
	Difficulty   string      `json:"difficulty"`
	Instructions []string    `json:"instructions"`
	Tips         []string    `json:"tips"`
}

// RestSeconds is a rest prescription in seconds. Remote generators send it
// either as a number or as free text such as "60s", so decoding is lenient.
type RestSeconds int

// UnmarshalJSON accepts a JSON number or a string with a digit run in it.
// Anything unparseable decodes as a minute.
func (r *RestSeconds) UnmarshalJSON(data []byte) error {
	var n int
	if err := json.Unmarshal(data, &n); err == nil {
		*r = RestSeconds(n)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("rest time must be a number or string: %w", err)
	}
	*r = RestSeconds(ParseRestSeconds(s))
	return nil
}

// DayPlan is one day's workout.
type DayPlan struct {
	Name              string         `json:"name"`
	Exercises         []Prescription `json:"exercises"`
	Duration          string         `json:"duration"`
	EstimatedCalories int            `json:"estimatedCalories"`
	TotalSets         int            `json:"totalSets"`
	Difficulty        string         `json:"difficulty"`
	Focus             []string       `json:"focus"`
}

// WeeklyPlan maps weekday keys to day plans. The key set is exactly the
// output of the distribution policy for the stored frequency.
type WeeklyPlan map[Weekday]DayPlan

// Days returns the plan's weekdays in Monday-to-Friday order.
func (wp WeeklyPlan) Days() []Weekday {
	var days []Weekday
	for _, d := range Weekdays {
		if _, ok := wp[d]; ok {
			days = append(days, d)
		}
	}
	return days
}
