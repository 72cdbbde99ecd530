package plan

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"

	"github.com/mrezende/gymtotem/internal/profile"
)

// completionAPI is the slice of the chat completion client the generator
// needs. Tests substitute a stub.
type completionAPI interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// openaiAPI adapts the OpenAI chat completion client to completionAPI.
type openaiAPI struct {
	client openai.Client
}

func newOpenAIAPI(apiKey string) *openaiAPI {
	return &openaiAPI{client: openai.NewClient(option.WithAPIKey(apiKey))}
}

func (a *openaiAPI) Complete(ctx context.Context, prompt string) (string, error) {
	chat, err := a.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
		Model: openai.ChatModelGPT4o,
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(chat.Choices) == 0 {
		return "", errors.New("chat completion returned no choices")
	}
	return chat.Choices[0].Message.Content, nil
}

// Generator produces weekly plans through a remote language model and falls
// back to the deterministic synthesizer when the remote path fails for any
// reason. Callers always get a plan.
type Generator struct {
	api         completionAPI
	synthesizer *Synthesizer
	logger      *slog.Logger
}

// NewGenerator returns a generator backed by the OpenAI API. An empty API
// key disables the remote path so every plan comes from the synthesizer.
func NewGenerator(apiKey string, logger *slog.Logger) *Generator {
	var api completionAPI
	if apiKey != "" {
		api = newOpenAIAPI(apiKey)
	}
	return &Generator{
		api:         api,
		synthesizer: NewSynthesizer(),
		logger:      logger,
	}
}

// Generate builds a weekly plan for the profile. The remote generator is
// attempted first; any failure logs a warning and yields the synthesized
// plan instead, so the caller never sees an error from the remote path.
func (g *Generator) Generate(ctx context.Context, p profile.UserProfile, dist Distribution) WeeklyPlan {
	if g.api == nil {
		return g.synthesizer.Synthesize(p, dist)
	}

	wp, err := g.generateRemote(ctx, p, dist)
	if err != nil {
		g.logger.LogAttrs(ctx, slog.LevelWarn, "remote plan generation failed, using synthesized plan",
			slog.String("cpf", p.CPF), slog.String("error", err.Error()))
		return g.synthesizer.Synthesize(p, dist)
	}
	return wp
}

func (g *Generator) generateRemote(ctx context.Context, p profile.UserProfile, dist Distribution) (WeeklyPlan, error) {
	prompt := buildPrompt(p, dist)

	raw, err := g.api.Complete(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("complete: %w", err)
	}

	payload, err := extractJSON(raw)
	if err != nil {
		return nil, fmt.Errorf("extract JSON: %w", err)
	}

	wp, err := parseWeeklyPlan(payload)
	if err != nil {
		return nil, fmt.Errorf("parse weekly plan: %w", err)
	}
	return wp, nil
}

// buildPrompt renders the user profile into the generation prompt. The
// response contract matches the WeeklyPlan JSON shape.
func buildPrompt(p profile.UserProfile, dist Distribution) string {
	frequency := resolveFrequency(p)
	intensity := resolveIntensity(p)
	days := scheduleDays(frequency, dist)

	dayNames := make([]string, len(days))
	for i, d := range days {
		dayNames[i] = string(d)
	}

	var b strings.Builder
	fmt.Fprintf(&b, `Create a personalized weekly workout plan as a JSON object.

User profile:
- Age: %d
- Weight: %.1f kg
- Height: %.1f cm
- Fitness level: %s
- Weekly frequency: %d workouts
- Training intensity: %s
- Preferred workout types: %s
- Goals: %s
`, p.Age, p.WeightKg, p.HeightCm, p.Level, frequency, intensity,
		strings.Join(p.WorkoutTypes, ", "), strings.Join(p.Goals, ", "))

	if p.PhysicalLimitations != "" {
		fmt.Fprintf(&b, "- Physical limitations: %s\n", p.PhysicalLimitations)
	}

	fmt.Fprintf(&b, `
Respond with only a JSON object whose keys are exactly these weekdays: %s.
Each day value must have this shape:
{
  "name": "workout name",
  "exercises": [
    {
      "name": "exercise name",
      "description": "short description",
      "sets": 3,
      "reps": "10-12",
      "restTime": 60,
      "muscleGroups": ["chest"],
      "difficulty": "intermediate",
      "instructions": ["step one"],
      "tips": ["tip one"]
    }
  ],
  "duration": "45-50 min",
  "estimatedCalories": 300,
  "totalSets": 9,
  "difficulty": "intermediate",
  "focus": ["chest", "triceps"]
}
`, strings.Join(dayNames, ", "))

	return b.String()
}

// extractJSON cuts the substring from the first opening brace to the last
// closing brace, tolerating prose and markdown fences around the payload.
func extractJSON(raw string) (string, error) {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start == -1 || end == -1 || end < start {
		return "", errors.New("response contains no JSON object")
	}
	return raw[start : end+1], nil
}

// parseWeeklyPlan decodes and validates a generated plan. Unknown weekday
// keys, empty days and empty exercise lists all reject the payload.
func parseWeeklyPlan(payload string) (WeeklyPlan, error) {
	var wp WeeklyPlan
	if err := json.Unmarshal([]byte(payload), &wp); err != nil {
		return nil, fmt.Errorf("unmarshal: %w", err)
	}
	if len(wp) == 0 {
		return nil, errors.New("plan has no days")
	}

	valid := make(map[Weekday]bool, len(Weekdays))
	for _, d := range Weekdays {
		valid[d] = true
	}

	for day, dp := range wp {
		if !valid[day] {
			return nil, fmt.Errorf("unknown weekday %q", day)
		}
		if dp.Name == "" {
			return nil, fmt.Errorf("day %s has no name", day)
		}
		if len(dp.Exercises) == 0 {
			return nil, fmt.Errorf("day %s has no exercises", day)
		}
		for i, ex := range dp.Exercises {
			if ex.Name == "" {
				return nil, fmt.Errorf("day %s exercise %d has no name", day, i)
			}
			if ex.Sets < 1 {
				return nil, fmt.Errorf("day %s exercise %q has invalid sets", day, ex.Name)
			}
			if ex.RestSeconds < 0 {
				return nil, fmt.Errorf("day %s exercise %q has invalid rest", day, ex.Name)
			}
		}
	}
	return wp, nil
}
