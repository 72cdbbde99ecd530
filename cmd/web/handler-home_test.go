package main

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/mrezende/gymtotem/internal/e2etest"
	"github.com/mrezende/gymtotem/internal/testhelpers"
)

func testLookupEnv(key string) (string, bool) {
	switch key {
	case "GYMTOTEM_SQLITE_URL":
		return ":memory:", true
	case "GYMTOTEM_ADDR":
		return "localhost:0", true
	default:
		return "", false
	}
}

func Test_application_home(t *testing.T) {
	var (
		ctx = t.Context()
		doc *goquery.Document
	)
	server, err := e2etest.StartServer(t, testhelpers.NewWriter(t), testLookupEnv, run)
	if err != nil {
		t.Fatalf("Failed to start server: %v", err)
	}

	client := server.Client()

	t.Run("Initial state", func(t *testing.T) {
		doc, err = client.GetDoc(ctx, "/")
		if err != nil {
			t.Fatalf("Failed to get document: %v", err)
		}

		checkButtonPresence(t, doc, "Log in", 1)
		checkButtonPresence(t, doc, "Log out", 0)
	})

	t.Run("Login with unknown CPF shows error", func(t *testing.T) {
		doc, err = client.GetDoc(ctx, "/")
		if err != nil {
			t.Fatalf("Failed to get document: %v", err)
		}
		doc, err = client.SubmitForm(ctx, doc, "/login", map[string]string{
			"CPF": "98765432100",
		})
		if err != nil {
			t.Fatalf("Failed to submit login form: %v", err)
		}
		if !strings.Contains(doc.Text(), "CPF not registered") {
			t.Error("Expected unknown CPF message on login page")
		}
	})

	t.Run("After registration", func(t *testing.T) {
		doc, err = client.Register(ctx, "39053344705", "Maria Silva")
		if err != nil {
			t.Fatalf("Failed to register: %v", err)
		}

		checkButtonPresence(t, doc, "Log in", 0)
		checkButtonPresence(t, doc, "Log out", 1)
		if !strings.Contains(doc.Text(), "Maria Silva") {
			t.Error("Expected dashboard to greet the new member by name")
		}
	})

	t.Run("After logout", func(t *testing.T) {
		doc, err = client.Logout(ctx)
		if err != nil {
			t.Fatalf("Failed to logout: %v", err)
		}

		checkButtonPresence(t, doc, "Log in", 1)
		checkButtonPresence(t, doc, "Log out", 0)
	})

	t.Run("After login", func(t *testing.T) {
		doc, err = client.Login(ctx, "39053344705")
		if err != nil {
			t.Fatalf("Failed to login: %v", err)
		}

		checkButtonPresence(t, doc, "Log in", 0)
		checkButtonPresence(t, doc, "Log out", 1)
	})
}

func checkButtonPresence(t *testing.T, doc *goquery.Document, buttonText string, expectedCount int) {
	t.Helper()
	count := doc.Find("button:contains('" + buttonText + "')").Length()
	if count != expectedCount {
		t.Errorf("Expected %d '%s' button(s), but found %d", expectedCount, buttonText, count)
	}
}

func Test_crossOriginProtection(t *testing.T) {
	ctx := t.Context()
	server, err := e2etest.StartServer(t, testhelpers.NewWriter(t), testLookupEnv, run)
	if err != nil {
		t.Fatalf("Failed to start server: %v", err)
	}

	// Create a malicious client that simulates cross-origin requests
	maliciousClient, err := e2etest.NewClientWithSecFetchSite(server.URL(), "cross-site")
	if err != nil {
		t.Fatalf("Failed to create malicious client: %v", err)
	}

	doc, err := maliciousClient.GetDoc(ctx, "/")
	if err != nil {
		t.Fatalf("Failed to get home page: %v", err)
	}

	// The login form submission should be blocked by the cross-origin check.
	_, err = maliciousClient.SubmitForm(ctx, doc, "/login", map[string]string{
		"CPF": "39053344705",
	})
	if err == nil {
		t.Error("Expected cross-origin form submission to be blocked, but it succeeded")
	}
}
