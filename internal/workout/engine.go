package workout

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/mrezende/gymtotem/internal/plan"
)

// Phase is the execution phase of a running session.
type Phase string

const (
	PhaseExercising Phase = "exercising"
	PhaseResting    Phase = "resting"
	PhaseComplete   Phase = "complete"
)

var (
	// ErrSessionComplete is returned when a transition is attempted on a
	// finished session.
	ErrSessionComplete = errors.New("session is complete")
	// ErrNotResting is returned when a rest transition is attempted outside
	// the resting phase.
	ErrNotResting = errors.New("session is not resting")
	// ErrSessionNotComplete is returned when the record of an unfinished
	// session is requested.
	ErrSessionNotComplete = errors.New("session is not complete")
)

// Engine walks a day plan exercise by exercise and set by set. The current
// set number advances when a rest begins, so skipping an exercise mid-rest
// credits the set that was just finished.
type Engine struct {
	userCPF string
	weekKey string
	day     plan.Weekday
	dayPlan plan.DayPlan
	now     func() time.Time

	startedAt   time.Time
	completedAt time.Time

	phase         Phase
	exerciseIndex int
	setNumber     int
	restRemaining int

	results []ExerciseResult
}

// NewEngine starts a session over the given day plan. The clock defaults to
// time.Now when nil.
func NewEngine(userCPF, weekKey string, day plan.Weekday, dayPlan plan.DayPlan, now func() time.Time) (*Engine, error) {
	if len(dayPlan.Exercises) == 0 {
		return nil, fmt.Errorf("day plan %q has no exercises", dayPlan.Name)
	}
	if now == nil {
		now = time.Now
	}
	return &Engine{
		userCPF:   userCPF,
		weekKey:   weekKey,
		day:       day,
		dayPlan:   dayPlan,
		now:       now,
		startedAt: now(),
		phase:     PhaseExercising,
		setNumber: 1,
	}, nil
}

// Progress is a point-in-time view of a running session for rendering.
type Progress struct {
	Phase           Phase
	Exercise        plan.Prescription
	ExerciseIndex   int
	ExerciseCount   int
	SetNumber       int
	RestRemaining   int
	Results         []ExerciseResult
	WorkoutName     string
	Day             plan.Weekday
	CompletedSoFar  int
	TotalSetsInPlan int
}

// Progress reports the current state. After completion the exercise fields
// hold the last exercise of the plan.
func (e *Engine) Progress() Progress {
	idx := e.exerciseIndex
	if idx >= len(e.dayPlan.Exercises) {
		idx = len(e.dayPlan.Exercises) - 1
	}
	completed := 0
	for _, r := range e.results {
		completed += r.SetsCompleted
	}
	return Progress{
		Phase:           e.phase,
		Exercise:        e.dayPlan.Exercises[idx],
		ExerciseIndex:   idx,
		ExerciseCount:   len(e.dayPlan.Exercises),
		SetNumber:       e.setNumber,
		RestRemaining:   e.restRemaining,
		Results:         e.results,
		WorkoutName:     e.dayPlan.Name,
		Day:             e.day,
		CompletedSoFar:  completed,
		TotalSetsInPlan: e.dayPlan.TotalSets,
	}
}

// CompleteSet finishes the current set. Before the last set of an exercise
// it starts a rest, or moves straight to the next set when the prescription
// has no rest. On the last set it finishes the exercise with full credit.
func (e *Engine) CompleteSet() error {
	if e.phase == PhaseComplete {
		return ErrSessionComplete
	}
	if e.phase != PhaseExercising {
		return fmt.Errorf("complete set during %s phase", e.phase)
	}

	current := e.dayPlan.Exercises[e.exerciseIndex]
	if e.setNumber < current.Sets {
		e.setNumber++
		e.restRemaining = int(current.RestSeconds)
		if e.restRemaining > 0 {
			e.phase = PhaseResting
		}
		return nil
	}

	e.finishExercise(ExerciseResult{
		Name:          current.Name,
		SetsCompleted: current.Sets,
		TotalSets:     current.Sets,
	})
	return nil
}

// Tick advances a rest countdown by one second, ending the rest when it
// reaches zero.
func (e *Engine) Tick() error {
	if e.phase == PhaseComplete {
		return ErrSessionComplete
	}
	if e.phase != PhaseResting {
		return ErrNotResting
	}
	e.restRemaining--
	if e.restRemaining <= 0 {
		e.restRemaining = 0
		e.phase = PhaseExercising
	}
	return nil
}

// SkipRest ends the current rest immediately.
func (e *Engine) SkipRest() error {
	if e.phase == PhaseComplete {
		return ErrSessionComplete
	}
	if e.phase != PhaseResting {
		return ErrNotResting
	}
	e.restRemaining = 0
	e.phase = PhaseExercising
	return nil
}

// SkipExercise abandons the current exercise with credit for the sets
// already finished and moves on to the next one.
func (e *Engine) SkipExercise() error {
	if e.phase == PhaseComplete {
		return ErrSessionComplete
	}
	current := e.dayPlan.Exercises[e.exerciseIndex]
	e.finishExercise(ExerciseResult{
		Name:          current.Name,
		SetsCompleted: e.setNumber - 1,
		TotalSets:     current.Sets,
		Skipped:       true,
	})
	return nil
}

func (e *Engine) finishExercise(result ExerciseResult) {
	e.results = append(e.results, result)
	e.exerciseIndex++
	e.setNumber = 1
	e.restRemaining = 0
	if e.exerciseIndex >= len(e.dayPlan.Exercises) {
		e.phase = PhaseComplete
		e.completedAt = e.now()
		return
	}
	e.phase = PhaseExercising
}

// Record builds the history record of a finished session.
func (e *Engine) Record() (HistoryRecord, error) {
	if e.phase != PhaseComplete {
		return HistoryRecord{}, ErrSessionNotComplete
	}
	minutes := int(math.Round(e.completedAt.Sub(e.startedAt).Minutes()))
	return HistoryRecord{
		ID:                uuid.NewString(),
		UserCPF:           e.userCPF,
		WeekKey:           e.weekKey,
		Day:               e.day,
		WorkoutName:       e.dayPlan.Name,
		StartedAt:         e.startedAt,
		CompletedAt:       e.completedAt,
		DurationMinutes:   minutes,
		EstimatedCalories: e.dayPlan.EstimatedCalories,
		Results:           e.results,
	}, nil
}
