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

	"github.com/google/uuid"

	"github.com/thecoder93/openclaw/internal/logging/events"
	"github.com/thecoder93/openclaw/internal/session"
)

const defaultBaseURL = "http://127.0.0.1:18789"

// Client talks to the OpenClaw gateway control channel over HTTP.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

// New returns a client for the given gateway base URL. An empty baseURL falls
// back to the local gateway default.
func New(baseURL, token string) *Client {
	trimmed := strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if trimmed == "" {
		trimmed = defaultBaseURL
	}
	return &Client{
		baseURL: trimmed,
		token:   token,
		http: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// BaseURL exposes the resolved gateway endpoint for trace logging.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// FetchSessions retrieves a point-in-time snapshot of the session store,
// bounded to limit rows.
func (c *Client) FetchSessions(ctx context.Context, limit int) (session.Snapshot, error) {
	var resp sessionsResponse
	path := fmt.Sprintf("/v1/sessions?limit=%d", limit)
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return session.Snapshot{}, err
	}
	rows := make([]session.Row, 0, len(resp.Sessions))
	for _, r := range resp.Sessions {
		if strings.TrimSpace(r.Key) == "" {
			continue
		}
		rows = append(rows, r.toRow())
	}
	return session.Snapshot{Rows: rows, StorePath: resp.StorePath}, nil
}

// Patch sets or clears a single session field. A nil value clears the
// override on the gateway side.
func (c *Client) Patch(ctx context.Context, key, field string, value *string) error {
	req := patchRequest{Key: key, Field: field, Value: value}
	return c.doJSON(ctx, http.MethodPatch, "/v1/sessions", req, nil)
}

// Reset issues a fresh session id for the given key.
func (c *Client) Reset(ctx context.Context, key string) error {
	return c.doJSON(ctx, http.MethodPost, "/v1/sessions/reset", keyRequest{Key: key}, nil)
}

// Compact truncates the session transcript to maxLines, archiving the
// remainder on the gateway.
func (c *Client) Compact(ctx context.Context, key string, maxLines int) error {
	return c.doJSON(ctx, http.MethodPost, "/v1/sessions/compact", compactRequest{Key: key, MaxLines: maxLines}, nil)
}

// Delete removes the session entry and archives its transcript.
func (c *Client) Delete(ctx context.Context, key string) error {
	return c.doJSON(ctx, http.MethodDelete, "/v1/sessions", keyRequest{Key: key}, nil)
}

// Health probes the gateway liveness endpoint.
func (c *Client) Health(ctx context.Context) error {
	var resp healthResponse
	if err := c.doJSON(ctx, http.MethodGet, "/health", nil, &resp); err != nil {
		return err
	}
	if !resp.OK {
		return fmt.Errorf("%w: gateway reported not ok", ErrGatewayUnavailable)
	}
	return nil
}

func (c *Client) doJSON(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	requestID := uuid.NewString()
	req.Header.Set("X-Request-ID", requestID)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	events.Gateway.Request(method, path, requestID)

	resp, err := c.http.Do(req)
	if err != nil {
		events.Gateway.Failure(path, err)
		return fmt.Errorf("%w: %v", ErrGatewayUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		err := fmt.Errorf("%w: %s %s: status %d: %s", ErrGatewayUnavailable, method, path, resp.StatusCode, strings.TrimSpace(string(data)))
		events.Gateway.Failure(path, err)
		return err
	}
	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		events.Gateway.Failure(path, err)
		return fmt.Errorf("%w: %v", ErrDecodeFailed, err)
	}
	return nil
}
