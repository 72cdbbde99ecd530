package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/mrezende/gymtotem/internal/profile"
	"github.com/mrezende/gymtotem/internal/workout"
)

// sessionKeyPendingRegistration parks the personal-data step of the
// registration wizard until the questionnaire is submitted.
const sessionKeyPendingRegistration = "pendingRegistration"

// pendingRegistration is the first wizard step serialized into the session.
type pendingRegistration struct {
	CPF      string  `json:"cpf"`
	Name     string  `json:"name"`
	Age      int     `json:"age"`
	WeightKg float64 `json:"weightKg"`
	HeightCm float64 `json:"heightCm"`
}

type registerTemplateData struct {
	BaseTemplateData
	Form         pendingRegistration
	FieldErrors  map[string]string
	ErrorMessage string
}

func (app *application) registerGET(w http.ResponseWriter, r *http.Request) {
	data := registerTemplateData{
		BaseTemplateData: newBaseTemplateData(r),
		FieldErrors:      map[string]string{},
	}

	app.render(w, r, http.StatusOK, "register", data)
}

func (app *application) registerPOST(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		app.serverError(w, r, fmt.Errorf("parse form: %w", err))
		return
	}

	form := pendingRegistration{
		CPF:      r.Form.Get("cpf"),
		Name:     r.Form.Get("name"),
		Age:      parseFormInt(r.Form.Get("age")),
		WeightKg: parseFormFloat(r.Form.Get("weight")),
		HeightCm: parseFormFloat(r.Form.Get("height")),
	}

	fieldErrors := map[string]string{}
	cpf, err := profile.NormalizeCPF(form.CPF)
	if err != nil {
		fieldErrors["cpf"] = "CPF must contain exactly 11 digits."
	} else {
		form.CPF = cpf
	}
	if form.Name == "" {
		fieldErrors["name"] = "Name is required."
	}
	if form.Age <= 0 {
		fieldErrors["age"] = "Age must be a positive number."
	}
	if form.WeightKg <= 0 {
		fieldErrors["weight"] = "Weight must be a positive number."
	}
	if form.HeightCm <= 0 {
		fieldErrors["height"] = "Height must be a positive number."
	}

	if len(fieldErrors) > 0 {
		data := registerTemplateData{
			BaseTemplateData: newBaseTemplateData(r),
			Form:             form,
			FieldErrors:      fieldErrors,
		}
		app.render(w, r, http.StatusUnprocessableEntity, "register", data)
		return
	}

	encoded, err := json.Marshal(form)
	if err != nil {
		app.serverError(w, r, fmt.Errorf("marshal pending registration: %w", err))
		return
	}
	app.sessionManager.Put(r.Context(), sessionKeyPendingRegistration, string(encoded))

	redirect(w, r, "/questionnaire")
}

type questionnaireTemplateData struct {
	BaseTemplateData
	Name           string
	WorkoutTypes   []string
	Goals          []string
	ActivityLevels []string
	ErrorMessage   string
}

func (app *application) questionnaireGET(w http.ResponseWriter, r *http.Request) {
	pending, ok := app.pendingRegistration(r)
	if !ok {
		redirect(w, r, "/register")
		return
	}

	data := questionnaireTemplateData{
		BaseTemplateData: newBaseTemplateData(r),
		Name:             pending.Name,
		WorkoutTypes:     profile.WorkoutTypes,
		Goals:            profile.Goals,
		ActivityLevels:   profile.ActivityLevels,
	}

	app.render(w, r, http.StatusOK, "questionnaire", data)
}

func (app *application) questionnairePOST(w http.ResponseWriter, r *http.Request) {
	pending, ok := app.pendingRegistration(r)
	if !ok {
		redirect(w, r, "/register")
		return
	}

	if err := r.ParseForm(); err != nil {
		app.serverError(w, r, fmt.Errorf("parse form: %w", err))
		return
	}

	p := profile.UserProfile{
		CPF:                 pending.CPF,
		Name:                pending.Name,
		Age:                 pending.Age,
		WeightKg:            pending.WeightKg,
		HeightCm:            pending.HeightCm,
		ActivityLevel:       r.Form.Get("activityLevel"),
		PracticesSport:      r.Form.Get("practicesSport") == "yes",
		WorkoutTypes:        r.Form["workoutTypes"],
		Goals:               r.Form["goals"],
		PhysicalLimitations: r.Form.Get("physicalLimitations"),
	}
	if p.PracticesSport {
		p.CurrentFrequency = r.Form.Get("frequency")
		p.CurrentIntensity = profile.Intensity(r.Form.Get("intensity"))
	} else {
		p.DesiredFrequency = r.Form.Get("frequency")
		p.DesiredIntensity = profile.Intensity(r.Form.Get("intensity"))
	}

	registered, err := app.workoutService.Register(r.Context(), p)
	if err != nil {
		var validationErr profile.ValidationError
		switch {
		case errors.Is(err, workout.ErrDuplicateUser):
			app.renderQuestionnaireError(w, r, pending.Name, "This CPF is already registered. Please log in instead.")
		case errors.As(err, &validationErr):
			app.renderQuestionnaireError(w, r, pending.Name, validationErr.Message)
		default:
			app.serverError(w, r, fmt.Errorf("register: %w", err))
		}
		return
	}

	app.sessionManager.Remove(r.Context(), sessionKeyPendingRegistration)
	if err = app.sessionManager.RenewToken(r.Context()); err != nil {
		app.serverError(w, r, fmt.Errorf("renew session token: %w", err))
		return
	}
	app.sessionManager.Put(r.Context(), sessionKeyUserCPF, registered.CPF)

	redirect(w, r, "/dashboard")
}

func (app *application) renderQuestionnaireError(w http.ResponseWriter, r *http.Request, name, message string) {
	data := questionnaireTemplateData{
		BaseTemplateData: newBaseTemplateData(r),
		Name:             name,
		WorkoutTypes:     profile.WorkoutTypes,
		Goals:            profile.Goals,
		ActivityLevels:   profile.ActivityLevels,
		ErrorMessage:     message,
	}
	app.render(w, r, http.StatusUnprocessableEntity, "questionnaire", data)
}

// pendingRegistration decodes the parked wizard step from the session.
func (app *application) pendingRegistration(r *http.Request) (pendingRegistration, bool) {
	encoded := app.sessionManager.GetString(r.Context(), sessionKeyPendingRegistration)
	if encoded == "" {
		return pendingRegistration{}, false
	}
	var pending pendingRegistration
	if err := json.Unmarshal([]byte(encoded), &pending); err != nil {
		return pendingRegistration{}, false
	}
	return pending, true
}

func parseFormInt(value string) int {
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0
	}
	return n
}

func parseFormFloat(value string) float64 {
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0
	}
	return f
}
