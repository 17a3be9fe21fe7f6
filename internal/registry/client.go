package registry

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"github.com/oklog/ulid/v2"

	"github.com/agentmesh/agentmesh-mcp/internal/errors"
)

// Client issues requests against the AgentMesh registry HTTP API.
//
// Every call is a single round-trip with no retries. The bearer token is
// read from the injected session on each request, so a fresh registration
// takes effect immediately without rebuilding the client.
type Client struct {
	baseURL string
	http    *http.Client
	session *Session
	log     *slog.Logger
}

// NewClient creates a registry client bound to a session.
//
// httpClient may be nil, in which case http.DefaultClient is used. The
// client imposes no timeout of its own; cancellation comes from the
// request context.
func NewClient(baseURL string, session *Session, httpClient *http.Client, log *slog.Logger) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	return &Client{
		baseURL: baseURL,
		http:    httpClient,
		session: session,
		log:     log,
	}
}

// BaseURL returns the configured registry base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Do performs one request and returns the raw JSON body.
//
// Non-2xx statuses are not errors at this layer: registry-reported
// failures arrive as JSON bodies and pass through to the typed decoders.
// Only transport failures and non-JSON bodies produce errors.
func (c *Client) Do(ctx context.Context, method, endpoint string, body any) (json.RawMessage, error) {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshal request body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+endpoint, reqBody)
	if err != nil {
		return nil, &errors.RequestError{Method: method, Endpoint: endpoint, Err: err}
	}

	requestID := ulid.Make().String()
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", requestID)
	if token := c.session.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	c.log.Debug("registry request",
		"method", method,
		"endpoint", endpoint,
		"request_id", requestID,
	)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &errors.RequestError{Method: method, Endpoint: endpoint, Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &errors.RequestError{Method: method, Endpoint: endpoint, Err: err}
	}

	if !json.Valid(data) {
		return nil, &errors.DecodeError{
			Endpoint: endpoint,
			RawBody:  string(data),
			Err:      fmt.Errorf("registry returned non-JSON body (status %d)", resp.StatusCode),
		}
	}

	c.log.Debug("registry response",
		"endpoint", endpoint,
		"status", resp.StatusCode,
		"request_id", requestID,
	)

	return json.RawMessage(data), nil
}

// Register announces a handle to the registry and returns its decision.
func (c *Client) Register(ctx context.Context, handle, workingOn string) (*RegisterResult, error) {
	payload := map[string]any{
		"action":   "register",
		"username": NormalizeHandle(handle),
	}
	if workingOn != "" {
		payload["workingOn"] = workingOn
	}

	raw, err := c.Do(ctx, http.MethodPost, "/api/presence", payload)
	if err != nil {
		return nil, err
	}

	return decodeRegister(raw)
}

// Presence lists participants currently online.
func (c *Client) Presence(ctx context.Context) (*PresenceResult, error) {
	raw, err := c.Do(ctx, http.MethodGet, "/api/presence", nil)
	if err != nil {
		return nil, err
	}

	return decodePresence(raw)
}

// Heartbeat refreshes the session's presence record. The registry's
// response passes through untyped.
func (c *Client) Heartbeat(ctx context.Context) (json.RawMessage, error) {
	return c.Do(ctx, http.MethodPost, "/api/presence", map[string]any{
		"action":   "heartbeat",
		"username": c.session.Handle(),
	})
}

// SendMessage delivers a message to another participant. The registry's
// response passes through untyped.
func (c *Client) SendMessage(ctx context.Context, to, text, msgType string) (json.RawMessage, error) {
	return c.Do(ctx, http.MethodPost, "/api/messages", map[string]any{
		"from": c.session.Handle(),
		"to":   NormalizeHandle(to),
		"text": text,
		"type": msgType,
	})
}

// Messages fetches queued messages for the session's handle. since is an
// optional timestamp cursor; empty means everything.
func (c *Client) Messages(ctx context.Context, since string) (*MessagesResult, error) {
	q := url.Values{}
	q.Set("user", c.session.Handle())
	if since != "" {
		q.Set("since", since)
	}

	raw, err := c.Do(ctx, http.MethodGet, "/api/messages?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}

	return decodeMessages(raw)
}

// Consent records an accept or block decision for another handle. The
// registry's response passes through untyped.
func (c *Client) Consent(ctx context.Context, handle, action string) (json.RawMessage, error) {
	return c.Do(ctx, http.MethodPost, "/api/consent", map[string]any{
		"action": action,
		"from":   c.session.Handle(),
		"handle": NormalizeHandle(handle),
	})
}

// DiscoverFilters narrow an agent discovery query. Zero-valued fields are
// omitted from the query string; Available and Limit always carry their
// defaults (true, 10) when unset.
type DiscoverFilters struct {
	Capability string
	Type       string
	Model      string
	Query      string
	Available  *bool
	Limit      int
}

// DiscoverAgents queries the registry's agent directory.
func (c *Client) DiscoverAgents(ctx context.Context, f DiscoverFilters) (*AgentsResult, error) {
	q := url.Values{}
	if f.Capability != "" {
		q.Set("capability", f.Capability)
	}
	if f.Type != "" {
		q.Set("type", f.Type)
	}
	if f.Model != "" {
		q.Set("model", f.Model)
	}
	if f.Query != "" {
		q.Set("q", f.Query)
	}

	// Explicit-false-only semantics: absence means available-only.
	available := true
	if f.Available != nil {
		available = *f.Available
	}
	q.Set("available", strconv.FormatBool(available))

	limit := f.Limit
	if limit <= 0 {
		limit = 10
	}
	q.Set("limit", strconv.Itoa(limit))

	raw, err := c.Do(ctx, http.MethodGet, "/api/agents?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}

	return decodeAgents(raw)
}

// AgentCapabilities fetches the identity record for one handle.
func (c *Client) AgentCapabilities(ctx context.Context, handle string) (*CapabilitiesResult, error) {
	raw, err := c.Do(ctx, http.MethodGet, "/api/identity/"+url.PathEscape(NormalizeHandle(handle))+"/capabilities", nil)
	if err != nil {
		return nil, err
	}

	return decodeCapabilities(raw)
}
