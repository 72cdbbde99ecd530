package e2etest

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	neturl "net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

type Client struct {
	client *http.Client
	url    string
}

// NewClient creates an HTTP client with a cookie jar for session-based flows.
func NewClient(url string) (*Client, error) {
	jar, err := newUnsafeCookieJar()
	if err != nil {
		return nil, fmt.Errorf("create unsafe cookie jar: %w", err)
	}
	return &Client{
		client: &http.Client{Jar: jar},
		url:    url,
	}, nil
}

// secFetchSiteTransport stamps a Sec-Fetch-Site header on every request to
// simulate browser fetch metadata, e.g. a cross-site form submission.
type secFetchSiteTransport struct {
	site string
}

func (t *secFetchSiteTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req.Header.Set("Sec-Fetch-Site", t.site)
	resp, err := http.DefaultTransport.RoundTrip(req)
	if err != nil {
		return nil, fmt.Errorf("round trip: %w", err)
	}
	return resp, nil
}

// NewClientWithSecFetchSite creates a client whose requests carry the given
// Sec-Fetch-Site value. Use "cross-site" to exercise cross-origin rejection.
func NewClientWithSecFetchSite(url, site string) (*Client, error) {
	jar, err := newUnsafeCookieJar()
	if err != nil {
		return nil, fmt.Errorf("create unsafe cookie jar: %w", err)
	}
	return &Client{
		client: &http.Client{
			Jar:       jar,
			Transport: &secFetchSiteTransport{site: site},
		},
		url: url,
	}, nil
}

// WaitForReady calls the specified endpoint until it gets a HTTP 200 Success
// response or until the context is cancelled or the 1-second timeout is reached.
func (c *Client) WaitForReady(ctx context.Context, urlPath string) error {
	timeout := 1 * time.Second
	startTime := time.Now()
	var (
		err  error
		req  *http.Request
		resp *http.Response
	)
	for {
		if req, err = http.NewRequestWithContext(
			ctx,
			http.MethodGet,
			c.url+urlPath,
			nil,
		); err != nil {
			return fmt.Errorf("create request: %w", err)
		}

		if resp, err = c.client.Do(req); err == nil {
			if resp.StatusCode == http.StatusOK {
				if err = resp.Body.Close(); err != nil {
					return fmt.Errorf("close response body: %w", err)
				}
				return nil
			}
			if err = resp.Body.Close(); err != nil {
				return fmt.Errorf("close response body: %w", err)
			}
		}
		select {
		case <-ctx.Done():
			return fmt.Errorf("context cancelled: %w", ctx.Err())
		default:
			if time.Since(startTime) >= timeout {
				return errors.New("timeout waiting for endpoint to be ready")
			}
			time.Sleep(100 * time.Millisecond) //nolint:mnd // 100ms
		}
	}
}

// Get fetches a URL and returns the response.
func (c *Client) Get(ctx context.Context, urlPath string) (*http.Response, error) {
	var (
		err  error
		req  *http.Request
		resp *http.Response
	)
	if req, err = c.newRequestWithContext(ctx, http.MethodGet, urlPath, nil); err != nil {
		return nil, fmt.Errorf("create request with context: %w", err)
	}
	if resp, err = c.client.Do(req); err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}
	return resp, nil
}

// GetDoc fetches a URL and returns a goquery document.
func (c *Client) GetDoc(ctx context.Context, urlPath string) (*goquery.Document, error) {
	var (
		err  error
		resp *http.Response
		doc  *goquery.Document
	)
	if resp, err = c.Get(ctx, urlPath); err != nil {
		return nil, fmt.Errorf("client get: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	if http.StatusOK != resp.StatusCode {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}
	if doc, err = goquery.NewDocumentFromReader(resp.Body); err != nil {
		return nil, fmt.Errorf("create document from reader: %w", err)
	}
	doc.Url = resp.Request.URL
	return doc, nil
}

// newRequestWithContext creates a new HTTP request to the server that respects the given context.
func (c *Client) newRequestWithContext(
	ctx context.Context,
	method, urlPath string,
	body io.Reader,
) (*http.Request, error) {
	var (
		req *http.Request
		err error
	)
	if req, err = http.NewRequest(method, c.url+urlPath, body); err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	return req.WithContext(ctx), nil
}

// Register walks a new member through the two-step registration wizard and
// returns the dashboard document. The questionnaire is submitted with fixed
// moderate answers.
func (c *Client) Register(ctx context.Context, cpf, name string) (*goquery.Document, error) {
	doc, err := c.GetDoc(ctx, "/register")
	if err != nil {
		return nil, fmt.Errorf("get registration page: %w", err)
	}

	if doc, err = c.SubmitForm(ctx, doc, "/register", map[string]string{
		"CPF":    cpf,
		"Name":   name,
		"Age":    "30",
		"Weight": "75",
		"Height": "178",
	}); err != nil {
		return nil, fmt.Errorf("submit personal data: %w", err)
	}

	if doc, err = c.SubmitForm(ctx, doc, "/questionnaire", map[string]string{
		"Activity level":                    "moderate",
		"Do you currently practice sports?": "no",
		"Workouts per week":                 "3",
		"Intensity":                         "moderate",
		"Preferred workout types":           "strength",
		"Goals":                             "general-health",
	}); err != nil {
		return nil, fmt.Errorf("submit questionnaire: %w", err)
	}
	return doc, nil
}

// Login logs a registered member in by CPF and returns the dashboard document.
func (c *Client) Login(ctx context.Context, cpf string) (*goquery.Document, error) {
	doc, err := c.GetDoc(ctx, "/")
	if err != nil {
		return nil, fmt.Errorf("get login page: %w", err)
	}
	if doc, err = c.SubmitForm(ctx, doc, "/login", map[string]string{
		"CPF": cpf,
	}); err != nil {
		return nil, fmt.Errorf("submit login form: %w", err)
	}
	return doc, nil
}

// Logout ends the session and returns the login page document.
func (c *Client) Logout(ctx context.Context) (*goquery.Document, error) {
	doc, err := c.GetDoc(ctx, "/dashboard")
	if err != nil {
		return nil, fmt.Errorf("get dashboard: %w", err)
	}
	if doc, err = c.SubmitForm(ctx, doc, "/logout", nil); err != nil {
		return nil, fmt.Errorf("submit logout form: %w", err)
	}
	return doc, nil
}

// SubmitForm submits a form in the doc identified with action formActionUrlPath and returns the response document.
// formFields is a map of label text to value. The function will find the field by label and set its value.
func (c *Client) SubmitForm(
	ctx context.Context,
	doc *goquery.Document,
	formActionURLPath string,
	formFields map[string]string,
) (*goquery.Document, error) {
	form, err := FindForm(doc, formActionURLPath)
	if err != nil {
		return nil, fmt.Errorf("find form: %w", err)
	}

	// Build form data by finding each field based on its label.
	formData := neturl.Values{}
	for labelText, value := range formFields {
		name, fieldErr := findFieldName(form, labelText)
		if fieldErr != nil {
			return nil, fmt.Errorf("find field for label %s: %w", labelText, fieldErr)
		}
		formData.Add(name, value)
	}

	// Submit the form
	data := strings.NewReader(formData.Encode())
	req, err := c.newRequestWithContext(ctx, http.MethodPost, formActionURLPath, data)
	if err != nil {
		return nil, fmt.Errorf("new request with context: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	if http.StatusOK != resp.StatusCode && http.StatusUnprocessableEntity != resp.StatusCode {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	// Parse the response
	newDoc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("create document from reader: %w", err)
	}
	newDoc.Url = resp.Request.URL
	return newDoc, nil
}

// findFieldName resolves a label text to the name attribute of the input,
// textarea or select it points at.
func findFieldName(form *goquery.Selection, labelText string) (string, error) {
	if input, err := FindInputForLabel(form, labelText); err == nil {
		if name, exists := input.Attr("name"); exists {
			return name, nil
		}
		return "", fmt.Errorf("input has no name attribute (label: %s)", labelText)
	}
	selectElement, err := FindSelectForLabel(form, labelText)
	if err != nil {
		return "", fmt.Errorf("find select for label: %w", err)
	}
	if name, exists := selectElement.Attr("name"); exists {
		return name, nil
	}
	return "", fmt.Errorf("select has no name attribute (label: %s)", labelText)
}
