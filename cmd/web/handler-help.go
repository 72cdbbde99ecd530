package main

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/mrezende/gymtotem/internal/catalog"
)

type helpTemplateData struct {
	BaseTemplateData
	Query     string
	Exercises []catalog.Exercise
}

// helpGET lists the exercise library with optional free-text search.
func (app *application) helpGET(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")

	data := helpTemplateData{
		BaseTemplateData: newBaseTemplateData(r),
		Query:            query,
		Exercises:        catalog.Search(query),
	}

	app.render(w, r, http.StatusOK, "help", data)
}

type helpExerciseTemplateData struct {
	BaseTemplateData
	Exercise catalog.Exercise
	// InstructionsMarkdown is the numbered step list as markdown, rendered
	// with mdToHTML in the template.
	InstructionsMarkdown string
	TipsMarkdown         string
}

// helpExerciseGET shows a single exercise with its execution instructions.
func (app *application) helpExerciseGET(w http.ResponseWriter, r *http.Request) {
	exercise, ok := catalog.Get(r.PathValue("id"))
	if !ok {
		app.notFound(w, r)
		return
	}

	var instructions strings.Builder
	for i, step := range exercise.Instructions {
		fmt.Fprintf(&instructions, "%d. %s\n", i+1, step)
	}
	var tips strings.Builder
	for _, tip := range exercise.Tips {
		fmt.Fprintf(&tips, "- %s\n", tip)
	}

	data := helpExerciseTemplateData{
		BaseTemplateData:     newBaseTemplateData(r),
		Exercise:             exercise,
		InstructionsMarkdown: instructions.String(),
		TipsMarkdown:         tips.String(),
	}

	app.render(w, r, http.StatusOK, "help-exercise", data)
}
