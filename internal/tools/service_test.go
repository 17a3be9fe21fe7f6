package tools

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/agentmesh/agentmesh-mcp/internal/registry"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// newTestService builds a service against an httptest registry that replies
// with fixed JSON, and returns a counter of requests actually issued.
func newTestService(t *testing.T, response string) (*Service, *atomic.Int64) {
	t.Helper()

	var requests atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		requests.Add(1)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(response))
	}))
	t.Cleanup(srv.Close)

	session := registry.NewSession()
	client := registry.NewClient(srv.URL, session, nil, testLogger())

	return NewService(client, session, testLogger()), &requests
}

func TestGatedOperationsBeforeRegistration(t *testing.T) {
	svc, requests := newTestService(t, `{}`)
	ctx := context.Background()

	gated := map[string]func() (any, error){
		"send_message":   func() (any, error) { return svc.SendMessage(ctx, "@a", "hi", "") },
		"check_messages": func() (any, error) { return svc.CheckMessages(ctx, "") },
		"heartbeat":      func() (any, error) { return svc.Heartbeat(ctx) },
		"consent":        func() (any, error) { return svc.Consent(ctx, "@a", "accept") },
	}

	for name, op := range gated {
		t.Run(name, func(t *testing.T) {
			result, err := op()
			require.NoError(t, err)

			failure, ok := result.(opFailure)
			require.True(t, ok, "expected a structured failure value")
			require.False(t, failure.Success)
			require.Contains(t, failure.Error, "Not registered")
		})
	}

	require.Zero(t, requests.Load(), "gated operations must not touch the network before registration")
}

func TestRegisterSuccessEstablishesSession(t *testing.T) {
	svc, _ := newTestService(t, `{"success":true,"token":"T"}`)

	result, err := svc.Register(context.Background(), "bob", "")
	require.NoError(t, err)

	outcome, ok := result.(registerOutcome)
	require.True(t, ok)
	require.True(t, outcome.Success)
	require.Equal(t, "Registered as @bob", outcome.Message)

	snap := svc.Session().Snapshot()
	require.Equal(t, registry.SessionState{Handle: "bob", Token: "T", Registered: true}, snap)
}

func TestRegisterRejectionLeavesSessionUnchanged(t *testing.T) {
	svc, _ := newTestService(t, `{"success":false,"error":"taken"}`)

	result, err := svc.Register(context.Background(), "bob", "")
	require.NoError(t, err)

	failure, ok := result.(opFailure)
	require.True(t, ok)
	require.False(t, failure.Success)
	require.Equal(t, "taken", failure.Error)
	require.False(t, svc.Session().Registered())
}

func TestRegisterMissingTokenIsFailure(t *testing.T) {
	svc, _ := newTestService(t, `{"success":true}`)

	result, err := svc.Register(context.Background(), "bob", "")
	require.NoError(t, err)

	failure, ok := result.(opFailure)
	require.True(t, ok)
	require.False(t, failure.Success)
	require.Contains(t, failure.Error, "no token")
	require.False(t, svc.Session().Registered())
}

func TestCheckMessagesEmptyResponseIsEmptyList(t *testing.T) {
	svc, _ := newTestService(t, `{}`)
	svc.Session().Establish("bob", "T")

	result, err := svc.CheckMessages(context.Background(), "")
	require.NoError(t, err)

	messages, ok := result.(*registry.MessagesResult)
	require.True(t, ok)
	require.NotNil(t, messages.Messages)
	require.Empty(t, messages.Messages)
}

func TestSendMessageDefaultsType(t *testing.T) {
	var gotType string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		_ = jsonDecodeBody(r, &body)
		gotType, _ = body["type"].(string)
		_, _ = w.Write([]byte(`{"success":true}`))
	}))
	t.Cleanup(srv.Close)

	session := registry.NewSession()
	session.Establish("bob", "T")
	svc := NewService(registry.NewClient(srv.URL, session, nil, testLogger()), session, testLogger())

	_, err := svc.SendMessage(context.Background(), "@carol", "hi", "")
	require.NoError(t, err)
	require.Equal(t, "text", gotType)
}

func TestConsentRejectsUnknownAction(t *testing.T) {
	svc, requests := newTestService(t, `{}`)
	svc.Session().Establish("bob", "T")

	result, err := svc.Consent(context.Background(), "@a", "mute")
	require.NoError(t, err)

	failure, ok := result.(opFailure)
	require.True(t, ok)
	require.False(t, failure.Success)
	require.Contains(t, failure.Error, "mute")
	require.Zero(t, requests.Load())
}

func TestDiscoverAgentsNoMatchesSuggestion(t *testing.T) {
	svc, _ := newTestService(t, `{"success":true,"agents":[],"total":0}`)

	result, err := svc.DiscoverAgents(context.Background(), registry.DiscoverFilters{})
	require.NoError(t, err)

	outcome, ok := result.(discoverOutcome)
	require.True(t, ok)
	require.Contains(t, outcome.Suggestion, "No agents found")
	require.NotNil(t, outcome.Agents)
}

func TestDiscoverAgentsMatchesSuggestion(t *testing.T) {
	svc, _ := newTestService(t, `{"success":true,"agents":[{"handle":"zed","status":"online"}],"total":1}`)

	result, err := svc.DiscoverAgents(context.Background(), registry.DiscoverFilters{})
	require.NoError(t, err)

	outcome := result.(discoverOutcome)
	require.Equal(t, 1, outcome.Total)
	require.Equal(t, "@zed", outcome.Agents[0].Handle)
	require.Contains(t, outcome.Suggestion, "Found 1 agent")
}

func TestGetCapabilitiesDefaults(t *testing.T) {
	svc, _ := newTestService(t, `{"handle":"x","is_agent":true}`)

	result, err := svc.GetCapabilities(context.Background(), "@x")
	require.NoError(t, err)

	outcome, ok := result.(capabilitiesOutcome)
	require.True(t, ok)
	require.Equal(t, "@x", outcome.Handle)
	require.Equal(t, []string{"text"}, outcome.Capabilities.Supported)
	require.Equal(t, "unknown", outcome.Availability.Status)
	require.True(t, outcome.Availability.AcceptsMessages)
	require.Contains(t, outcome.Suggestion, "send_message")
}

func TestGetCapabilitiesOfflineSuggestion(t *testing.T) {
	svc, _ := newTestService(t, `{"handle":"x","availability":{"status":"offline"}}`)

	result, err := svc.GetCapabilities(context.Background(), "x")
	require.NoError(t, err)

	outcome := result.(capabilitiesOutcome)
	require.Contains(t, outcome.Suggestion, "offline")
}

func TestGetCapabilitiesRegistryErrorPassesThrough(t *testing.T) {
	svc, _ := newTestService(t, `{"error":"not_found","message":"no such handle"}`)

	result, err := svc.GetCapabilities(context.Background(), "ghost")
	require.NoError(t, err)

	payload, ok := result.(map[string]any)
	require.True(t, ok)
	require.Equal(t, "not_found", payload["error"])
	require.Equal(t, "no such handle", payload["message"])
}
