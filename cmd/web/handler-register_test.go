package main

import (
	"strings"
	"testing"

	"github.com/mrezende/gymtotem/internal/e2etest"
	"github.com/mrezende/gymtotem/internal/testhelpers"
)

func Test_application_register(t *testing.T) {
	ctx := t.Context()
	server, err := e2etest.StartServer(t, testhelpers.NewWriter(t), testLookupEnv, run)
	if err != nil {
		t.Fatalf("Failed to start server: %v", err)
	}

	client := server.Client()

	t.Run("Malformed CPF is rejected on step one", func(t *testing.T) {
		doc, getErr := client.GetDoc(ctx, "/register")
		if getErr != nil {
			t.Fatalf("Failed to get registration page: %v", getErr)
		}
		doc, getErr = client.SubmitForm(ctx, doc, "/register", map[string]string{
			"CPF":    "123",
			"Name":   "Ana Souza",
			"Age":    "28",
			"Weight": "60",
			"Height": "165",
		})
		if getErr != nil {
			t.Fatalf("Failed to submit registration form: %v", getErr)
		}
		if !strings.Contains(doc.Text(), "CPF must contain exactly 11 digits") {
			t.Error("Expected CPF validation message")
		}
	})

	t.Run("Questionnaire without step one redirects to register", func(t *testing.T) {
		doc, getErr := client.GetDoc(ctx, "/questionnaire")
		if getErr != nil {
			t.Fatalf("Failed to get questionnaire: %v", getErr)
		}
		// Redirected back to step one.
		if _, findErr := e2etest.FindForm(doc, "/register"); findErr != nil {
			t.Errorf("Expected registration form after redirect: %v", findErr)
		}
	})

	t.Run("Duplicate CPF is reported", func(t *testing.T) {
		if _, regErr := client.Register(ctx, "11144477735", "Ana Souza"); regErr != nil {
			t.Fatalf("Failed to register: %v", regErr)
		}
		if _, logoutErr := client.Logout(ctx); logoutErr != nil {
			t.Fatalf("Failed to logout: %v", logoutErr)
		}

		doc, regErr := client.Register(ctx, "11144477735", "Ana Impostora")
		if regErr != nil {
			t.Fatalf("Failed to submit duplicate registration: %v", regErr)
		}
		if !strings.Contains(doc.Text(), "already registered") {
			t.Error("Expected duplicate CPF message")
		}
	})
}
