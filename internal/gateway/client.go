// Package gateway is the HTTP client for the assistant gateway. It keeps a
// very small surface area tailored to the console's needs: chat, meetings,
// email and a health probe.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"aida-console/internal/logger"
)

type Client struct {
	httpClient *http.Client
	baseURL    string
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    strings.TrimRight(baseURL, "/"),
	}
}

// StatusError reports a non-2xx gateway response. Detail carries the
// server-supplied message when the body had one.
type StatusError struct {
	Code   int
	Detail string
}

func (e *StatusError) Error() string {
	if e.Detail != "" {
		return e.Detail
	}
	return fmt.Sprintf("gateway returned status %d", e.Code)
}

// ---- Helpers ----

func (c *Client) do(ctx context.Context, method, path string, payload any) (*http.Response, error) {
	var body io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("marshal request: %w", err)
		}
		body = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, err
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	return c.httpClient.Do(req)
}

// roundTrip issues the request and decodes a 2xx body into out (out may be
// nil). Non-2xx responses become a *StatusError with any detail field from
// the body preserved.
func (c *Client) roundTrip(ctx context.Context, method, path string, payload, out any) error {
	l := logger.WithRequest()
	l.Debug().Str("method", method).Str("path", path).Msg("gateway request")

	resp, err := c.do(ctx, method, path, payload)
	if err != nil {
		l.Error().Err(err).Str("path", path).Msg("gateway request failed")
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		serr := &StatusError{Code: resp.StatusCode}
		var er errorResponse
		if b, err := io.ReadAll(resp.Body); err == nil {
			if json.Unmarshal(b, &er) == nil {
				serr.Detail = strings.TrimSpace(er.Detail)
			}
		}
		l.Warn().Int("status", resp.StatusCode).Str("path", path).Str("detail", serr.Detail).Msg("gateway error response")
		return serr
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		l.Error().Err(err).Str("path", path).Msg("gateway response decode failed")
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// ---- Operations ----

// Chat sends one user message and returns the assistant's reply. An empty
// reply is not an error; the caller decides how to present "no response".
func (c *Client) Chat(ctx context.Context, message string) (string, error) {
	var resp ChatResponse
	if err := c.roundTrip(ctx, http.MethodPost, "/chat", ChatRequest{Message: message}, &resp); err != nil {
		return "", err
	}
	return resp.Response, nil
}

// Meetings fetches the upcoming-meetings snapshot in gateway order. An absent
// meetings field decodes as an empty list.
func (c *Client) Meetings(ctx context.Context) ([]Meeting, error) {
	var resp meetingsResponse
	if err := c.roundTrip(ctx, http.MethodGet, "/meetings", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Meetings, nil
}

// SendEmail submits a composed draft. Success is signaled purely by HTTP
// status; a failure carries the gateway's detail message via *StatusError.
func (c *Client) SendEmail(ctx context.Context, req EmailRequest) error {
	return c.roundTrip(ctx, http.MethodPost, "/email", req, nil)
}

// Health probes the gateway's uptime endpoint.
func (c *Client) Health(ctx context.Context) error {
	return c.roundTrip(ctx, http.MethodGet, "/health", nil, nil)
}
