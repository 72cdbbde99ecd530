package main

import (
	"fmt"
	"net/http"
)

func (app *application) routes() (*http.ServeMux, error) {
	mux := http.NewServeMux()

	var (
		shared = func(next http.Handler) http.Handler {
			return app.logAndTraceRequest(secureHeaders(app.crossOriginProtection(
				commonContext(app.timeout(next)))))
		}
		noAuth = func(next http.Handler) http.Handler {
			return app.recoverPanic(shared(next))
		}
		session = func(next http.Handler) http.Handler {
			return app.recoverPanic(noCache(app.sessionManager.LoadAndSave(
				app.authenticate(shared(next)))))
		}
		mustSession = func(next http.Handler) http.Handler {
			return session(app.mustAuthenticate(next))
		}
	)

	mux.Handle("POST /login", session(http.HandlerFunc(app.loginPOST)))
	mux.Handle("POST /logout", session(http.HandlerFunc(app.logoutPOST)))

	mux.Handle("GET /register", session(http.HandlerFunc(app.registerGET)))
	mux.Handle("POST /register", session(http.HandlerFunc(app.registerPOST)))
	mux.Handle("GET /questionnaire", session(http.HandlerFunc(app.questionnaireGET)))
	mux.Handle("POST /questionnaire", session(http.HandlerFunc(app.questionnairePOST)))

	mux.Handle("GET /dashboard", mustSession(http.HandlerFunc(app.dashboardGET)))

	mux.Handle("GET /plan", mustSession(http.HandlerFunc(app.planGET)))
	mux.Handle("POST /plan/regenerate", mustSession(http.HandlerFunc(app.planRegeneratePOST)))

	mux.Handle("GET /workouts/{day}", mustSession(http.HandlerFunc(app.workoutGET)))
	mux.Handle("POST /workouts/{day}/start", mustSession(http.HandlerFunc(app.workoutStartPOST)))
	mux.Handle("GET /workouts/{day}/session", mustSession(http.HandlerFunc(app.workoutSessionGET)))
	mux.Handle("GET /workouts/{day}/summary", mustSession(http.HandlerFunc(app.workoutSummaryGET)))
	mux.Handle("POST /workouts/{day}/session/complete-set", mustSession(http.HandlerFunc(app.completeSetPOST)))
	mux.Handle("POST /workouts/{day}/session/skip-rest", mustSession(http.HandlerFunc(app.skipRestPOST)))
	mux.Handle("POST /workouts/{day}/session/skip-exercise", mustSession(http.HandlerFunc(app.skipExercisePOST)))
	mux.Handle("POST /workouts/{day}/session/tick", mustSession(http.HandlerFunc(app.tickPOST)))

	mux.Handle("GET /calendar", mustSession(http.HandlerFunc(app.calendarGET)))

	mux.Handle("GET /help", session(http.HandlerFunc(app.helpGET)))
	mux.Handle("GET /help/{id}", session(http.HandlerFunc(app.helpExerciseGET)))

	mux.Handle("GET /api/healthy", session(http.HandlerFunc(app.healthy)))
	mux.Handle("GET /api/test/timeout", noAuth(http.HandlerFunc(app.testTimeout)))

	// Home route (most specific)
	mux.Handle("GET /{$}", session(http.HandlerFunc(app.home)))

	// File server with custom 404 handling
	fileServerHandler, err := app.fileServerHandler()
	if err != nil {
		return nil, fmt.Errorf("fileServerHandler: %w", err)
	}
	mux.Handle("/", fileServerHandler)

	return mux, nil
}
