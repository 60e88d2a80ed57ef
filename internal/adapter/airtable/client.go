// Package airtable provides a minimal client for the Airtable REST API,
// scoped to the waitlist signups table.
package airtable

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/comptlabs/waitlist/internal/domain"
)

// Field names in the signups table.
const (
	fieldEmail                = "Email"
	fieldFirstName            = "First Name"
	fieldBetaTester           = "Beta Tester"
	fieldSource               = "Source"
	fieldSignupDate           = "Signup Date"
	fieldNotes                = "Notes"
	fieldStatus               = "Status"
	fieldWelcomeEmailSent     = "Welcome Email Sent"
	fieldWelcomeEmailSentDate = "Welcome Email Sent Date"
)

// Client talks to one Airtable base/table.
type Client struct {
	baseURL    string
	apiKey     string
	baseID     string
	table      string
	httpClient *http.Client
}

// NewClient creates an Airtable client. baseURL is overridable for tests;
// empty means the public API.
func NewClient(baseURL, apiKey, baseID, table string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = "https://api.airtable.com"
	}
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		apiKey:  apiKey,
		baseID:  baseID,
		table:   table,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Configured reports whether the client has everything needed to make calls.
func (c *Client) Configured() bool {
	return c.apiKey != "" && c.baseID != "" && c.table != ""
}

type recordPayload struct {
	ID          string         `json:"id,omitempty"`
	Fields      map[string]any `json:"fields"`
	CreatedTime string         `json:"createdTime,omitempty"`
}

type listResponse struct {
	Records []recordPayload `json:"records"`
}

type errorResponse struct {
	Error struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

// FindByEmail returns the record ID of an existing signup for email, or an
// empty string when none exists.
func (c *Client) FindByEmail(ctx context.Context, email string) (string, error) {
	formula := fmt.Sprintf(`LOWER({%s}) = %q`, fieldEmail, strings.ToLower(email))
	q := url.Values{}
	q.Set("filterByFormula", formula)
	q.Set("maxRecords", "1")

	var out listResponse
	if err := c.do(ctx, http.MethodGet, c.tableURL()+"?"+q.Encode(), nil, &out); err != nil {
		return "", err
	}
	if len(out.Records) == 0 {
		return "", nil
	}
	return out.Records[0].ID, nil
}

// CreateSignup creates one signup record and returns its record ID.
func (c *Client) CreateSignup(ctx context.Context, rec *domain.SignupRecord) (string, error) {
	fields := map[string]any{
		fieldEmail:            rec.Email,
		fieldBetaTester:       rec.IsBetaTester,
		fieldSource:           rec.Source,
		fieldSignupDate:       rec.SignupDate.UTC().Format(time.RFC3339),
		fieldStatus:           string(rec.Status),
		fieldWelcomeEmailSent: rec.WelcomeEmailSent,
	}
	if rec.FirstName != "" {
		fields[fieldFirstName] = rec.FirstName
	}
	if rec.Notes != "" {
		fields[fieldNotes] = rec.Notes
	}

	var out recordPayload
	if err := c.do(ctx, http.MethodPost, c.tableURL(), recordPayload{Fields: fields}, &out); err != nil {
		return "", err
	}
	return out.ID, nil
}

// MarkWelcomeEmailSent patches a record's welcome-email flag and date.
func (c *Client) MarkWelcomeEmailSent(ctx context.Context, recordID string, sentAt time.Time) error {
	body := recordPayload{Fields: map[string]any{
		fieldWelcomeEmailSent:     true,
		fieldWelcomeEmailSentDate: sentAt.UTC().Format(time.RFC3339),
	}}
	return c.do(ctx, http.MethodPatch, c.tableURL()+"/"+recordID, body, nil)
}

func (c *Client) tableURL() string {
	return fmt.Sprintf("%s/v0/%s/%s", c.baseURL, c.baseID, url.PathEscape(c.table))
}

func (c *Client) do(ctx context.Context, method, rawURL string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, rawURL, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		detail := string(respBody)
		var errResp errorResponse
		if err := json.Unmarshal(respBody, &errResp); err == nil && errResp.Error.Message != "" {
			detail = errResp.Error.Message
		}
		return &domain.UpstreamError{
			Service: "airtable",
			Detail:  fmt.Sprintf("[%d] %s", resp.StatusCode, detail),
		}
	}

	if out != nil {
		if err := json.Unmarshal(respBody, out); err != nil {
			return fmt.Errorf("failed to unmarshal response: %w", err)
		}
	}
	return nil
}
