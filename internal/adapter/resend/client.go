// Package resend provides a minimal client for the Resend transactional
// email API.
package resend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/comptlabs/waitlist/internal/domain"
)

// Email is one outbound message.
type Email struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html,omitempty"`
	Text    string   `json:"text,omitempty"`
	ReplyTo string   `json:"reply_to,omitempty"`
}

// Client talks to the Resend API.
type Client struct {
	baseURL    string
	apiKey     string
	from       string
	replyTo    string
	httpClient *http.Client
}

// NewClient creates a Resend client. baseURL is overridable for tests; empty
// means the public API. from and replyTo are defaults applied to messages
// that leave them blank.
func NewClient(baseURL, apiKey, from, replyTo string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = "https://api.resend.com"
	}
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		apiKey:  apiKey,
		from:    from,
		replyTo: replyTo,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Configured reports whether the client can send mail.
func (c *Client) Configured() bool {
	return c.apiKey != "" && c.from != ""
}

// From returns the default sender address.
func (c *Client) From() string { return c.from }

type sendResponse struct {
	ID string `json:"id"`
}

type errorResponse struct {
	Name    string `json:"name"`
	Message string `json:"message"`
}

// Send delivers one email and returns the provider's message ID.
func (c *Client) Send(ctx context.Context, email Email) (string, error) {
	if email.From == "" {
		email.From = c.from
	}
	if email.ReplyTo == "" {
		email.ReplyTo = c.replyTo
	}

	body, err := json.Marshal(email)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/emails", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		detail := string(respBody)
		var errResp errorResponse
		if err := json.Unmarshal(respBody, &errResp); err == nil && errResp.Message != "" {
			detail = errResp.Message
		}
		return "", &domain.UpstreamError{
			Service: "resend",
			Detail:  fmt.Sprintf("[%d] %s", resp.StatusCode, detail),
		}
	}

	var out sendResponse
	if err := json.Unmarshal(respBody, &out); err != nil {
		return "", fmt.Errorf("failed to unmarshal response: %w", err)
	}
	return out.ID, nil
}
