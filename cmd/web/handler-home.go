package main

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/mrezende/gymtotem/internal/profile"
	"github.com/mrezende/gymtotem/internal/workout"
)

type homeTemplateData struct {
	BaseTemplateData
	// CPF echoes the submitted login value back into the form.
	CPF string
	// ErrorMessage is shown above the login form when a login attempt fails.
	ErrorMessage string
}

// home renders the kiosk login screen. Logged-in members go straight to
// their dashboard.
func (app *application) home(w http.ResponseWriter, r *http.Request) {
	if app.sessionManager.GetString(r.Context(), sessionKeyUserCPF) != "" {
		redirect(w, r, "/dashboard")
		return
	}

	data := homeTemplateData{
		BaseTemplateData: newBaseTemplateData(r),
	}

	app.render(w, r, http.StatusOK, "home", data)
}

func (app *application) loginPOST(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		app.serverError(w, r, fmt.Errorf("parse form: %w", err))
		return
	}

	rawCPF := r.Form.Get("cpf")
	cpf, err := profile.NormalizeCPF(rawCPF)
	if err != nil {
		data := homeTemplateData{
			BaseTemplateData: newBaseTemplateData(r),
			CPF:              rawCPF,
			ErrorMessage:     "CPF must contain exactly 11 digits.",
		}
		app.render(w, r, http.StatusUnprocessableEntity, "home", data)
		return
	}

	if _, err = app.workoutService.Login(r.Context(), cpf); err != nil {
		if errors.Is(err, workout.ErrNotFound) {
			data := homeTemplateData{
				BaseTemplateData: newBaseTemplateData(r),
				CPF:              rawCPF,
				ErrorMessage:     "CPF not registered. Please register first.",
			}
			app.render(w, r, http.StatusUnprocessableEntity, "home", data)
			return
		}
		app.serverError(w, r, fmt.Errorf("login: %w", err))
		return
	}

	// Renew the token on privilege change to avoid session fixation.
	if err = app.sessionManager.RenewToken(r.Context()); err != nil {
		app.serverError(w, r, fmt.Errorf("renew session token: %w", err))
		return
	}
	app.sessionManager.Put(r.Context(), sessionKeyUserCPF, cpf)

	redirect(w, r, "/dashboard")
}

func (app *application) logoutPOST(w http.ResponseWriter, r *http.Request) {
	if err := app.sessionManager.Destroy(r.Context()); err != nil {
		app.serverError(w, r, fmt.Errorf("destroy session: %w", err))
		return
	}

	redirect(w, r, "/")
}
