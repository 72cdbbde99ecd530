// Package profile holds the user profile collected at kiosk registration and
// the validation applied at the storage boundary.
package profile

import (
	"fmt"
	"slices"
	"time"
)

// Intensity is the self-reported training intensity from the questionnaire.
type Intensity string

const (
	IntensityLight    Intensity = "light"
	IntensityModerate Intensity = "moderate"
	IntensityIntense  Intensity = "intense"
)

// ParseIntensity maps a form value to an Intensity. Unknown values map to
// the empty string, which callers treat as "keep the current intensity".
func ParseIntensity(s string) Intensity {
	switch Intensity(s) {
	case IntensityLight, IntensityModerate, IntensityIntense:
		return Intensity(s)
	default:
		return ""
	}
}

// FitnessLevel classifies the user for exercise difficulty selection.
type FitnessLevel string

const (
	LevelBeginner     FitnessLevel = "beginner"
	LevelIntermediate FitnessLevel = "intermediate"
	LevelAdvanced     FitnessLevel = "advanced"
)

// WorkoutTypes are the selectable workout preferences.
var WorkoutTypes = []string{"cardio", "strength", "hiit", "functional", "yoga", "crossfit"}

// Goals are the selectable training goals.
var Goals = []string{"lose-weight", "gain-muscle", "conditioning", "strength", "flexibility", "general-health"}

// ActivityLevels describe how active the user currently is.
var ActivityLevels = []string{"sedentary", "light", "moderate", "intense"}

// UserProfile is the complete registration record for one kiosk user, keyed
// by the canonical CPF.
type UserProfile struct {
	CPF      string
	Name     string
	Age      int
	WeightKg float64
	HeightCm float64

	// ActivityLevel is the self-assessed general activity level.
	ActivityLevel string
	// PracticesSport selects which frequency/intensity pair below is
	// populated: the current pair when true, the desired pair otherwise.
	PracticesSport bool

	// Frequencies are kept as the raw form values ("1".."7") and parsed
	// defensively by the plan synthesizer.
	CurrentFrequency string
	CurrentIntensity Intensity
	DesiredFrequency string
	DesiredIntensity Intensity

	WorkoutTypes        []string
	Goals               []string
	PhysicalLimitations string
	Level               FitnessLevel

	RegisteredAt time.Time
	LastLogin    time.Time
}

// ValidationError reports a form-level problem with a profile field. It is
// rendered inline next to the offending field and never escapes the
// presentation layer as a generic failure.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Validate enforces the registration invariants before a profile may be
// persisted. It returns the first violation found as a ValidationError.
func (p UserProfile) Validate() error {
	if _, err := NormalizeCPF(p.CPF); err != nil {
		return ValidationError{Field: "cpf", Message: "CPF must contain exactly 11 digits"}
	}
	if p.Name == "" {
		return ValidationError{Field: "name", Message: "name is required"}
	}
	if p.Age <= 0 {
		return ValidationError{Field: "age", Message: "age must be a positive number"}
	}
	if p.WeightKg <= 0 {
		return ValidationError{Field: "weight", Message: "weight must be a positive number"}
	}
	if p.HeightCm <= 0 {
		return ValidationError{Field: "height", Message: "height must be a positive number"}
	}
	if !slices.Contains(ActivityLevels, p.ActivityLevel) {
		return ValidationError{Field: "activityLevel", Message: "unknown activity level"}
	}
	// Exactly one of the frequency/intensity pairs is populated, selected by
	// the practices-sport flag.
	if p.PracticesSport {
		if p.CurrentFrequency == "" || p.CurrentIntensity == "" {
			return ValidationError{Field: "currentPractice", Message: "current frequency and intensity are required"}
		}
		if p.DesiredFrequency != "" || p.DesiredIntensity != "" {
			return ValidationError{Field: "desiredPractice", Message: "desired practice must be empty for active users"}
		}
	} else {
		if p.DesiredFrequency == "" || p.DesiredIntensity == "" {
			return ValidationError{Field: "desiredPractice", Message: "desired frequency and intensity are required"}
		}
		if p.CurrentFrequency != "" || p.CurrentIntensity != "" {
			return ValidationError{Field: "currentPractice", Message: "current practice must be empty for inactive users"}
		}
	}
	if len(p.WorkoutTypes) == 0 {
		return ValidationError{Field: "workoutTypes", Message: "select at least one workout type"}
	}
	for _, t := range p.WorkoutTypes {
		if !slices.Contains(WorkoutTypes, t) {
			return ValidationError{Field: "workoutTypes", Message: fmt.Sprintf("unknown workout type %q", t)}
		}
	}
	if len(p.Goals) == 0 {
		return ValidationError{Field: "goals", Message: "select at least one goal"}
	}
	for _, g := range p.Goals {
		if !slices.Contains(Goals, g) {
			return ValidationError{Field: "goals", Message: fmt.Sprintf("unknown goal %q", g)}
		}
	}
	return nil
}

// DeriveLevel classifies the user from the questionnaire answers. Sedentary
// or inactive users start as beginners; active users graduate by reported
// intensity; ambitious beginners asking for intense training start one tier
// up.
func (p UserProfile) DeriveLevel() FitnessLevel {
	if !p.PracticesSport || p.ActivityLevel == "sedentary" {
		if p.DesiredIntensity == IntensityIntense {
			return LevelIntermediate
		}
		return LevelBeginner
	}
	if p.CurrentIntensity == IntensityIntense && p.ActivityLevel == "intense" {
		return LevelAdvanced
	}
	if p.CurrentIntensity == IntensityModerate || p.ActivityLevel == "moderate" {
		return LevelIntermediate
	}
	return LevelBeginner
}
