package form

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

var ErrMalformedReply = errors.New("reply is not a JSON object")

// Sender performs the single request/response exchange of a submission.
type Sender interface {
	Send(ctx context.Context, payload Payload) (Result, error)
}

// Client posts payloads as JSON to a fixed endpoint.
type Client struct {
	endpoint   string
	httpClient *http.Client
}

// NewClient returns a Client for endpoint. A nil httpClient uses
// http.DefaultClient, which has no timeout.
func NewClient(endpoint string, httpClient *http.Client) *Client {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		endpoint:   endpoint,
		httpClient: httpClient,
	}
}

func (c *Client) Endpoint() string {
	return c.endpoint
}

// Send posts payload and decodes the reply body as a Result whatever the
// status code; the endpoint reports application failures in the body.
func (c *Client) Send(ctx context.Context, payload Payload) (Result, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return Result{}, fmt.Errorf("failed to marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return Result{}, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Result{}, fmt.Errorf("failed to post submission: %w", err)
	}
	defer resp.Body.Close()

	var raw json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return Result{}, fmt.Errorf("failed to decode response (status %d): %w", resp.StatusCode, err)
	}
	result, err := decodeResult(raw)
	if err != nil {
		return Result{}, fmt.Errorf("failed to decode response (status %d): %w", resp.StatusCode, err)
	}
	return result, nil
}

// decodeResult reads a reply the way a loosely typed page script would:
// success counts when truthy and a non-string message is shown as its JSON
// text. Anything other than an object is malformed.
func decodeResult(raw json.RawMessage) (Result, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return Result{}, ErrMalformedReply
	}

	var wire struct {
		Success      json.RawMessage `json:"success"`
		Message      json.RawMessage `json:"message"`
		SubmissionID json.RawMessage `json:"submissionId"`
	}
	if err := json.Unmarshal(trimmed, &wire); err != nil {
		return Result{}, err
	}

	return Result{
		Success:      truthy(wire.Success),
		Message:      text(wire.Message),
		SubmissionID: text(wire.SubmissionID),
	}, nil
}

func truthy(raw json.RawMessage) bool {
	if len(raw) == 0 {
		return false
	}
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return false
	}
	switch x := v.(type) {
	case nil:
		return false
	case bool:
		return x
	case float64:
		return x != 0
	case string:
		return x != ""
	default:
		// objects and arrays
		return true
	}
}

// text returns a string value as is, absent and null as empty, and any other
// value as its JSON text.
func text(raw json.RawMessage) string {
	if len(raw) == 0 || string(raw) == "null" {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return string(raw)
}
