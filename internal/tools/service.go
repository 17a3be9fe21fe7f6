package tools

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/agentmesh/agentmesh-mcp/internal/registry"
)

const notRegisteredMessage = "Not registered. Use the register tool first."

// Service implements the tool operations against one registry client and
// session pair.
type Service struct {
	client  *registry.Client
	session *registry.Session
	log     *slog.Logger
}

// NewService wires operations to a registry client and its session.
func NewService(client *registry.Client, session *registry.Session, log *slog.Logger) *Service {
	return &Service{
		client:  client,
		session: session,
		log:     log,
	}
}

// Session exposes the session for host-level concerns such as the
// background heartbeat loop.
func (s *Service) Session() *registry.Session {
	return s.session
}

// opFailure is the structured failure value for precondition and
// registry-reported errors. These are values, never Go errors.
type opFailure struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

type registerOutcome struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type discoverOutcome struct {
	Success    bool                    `json:"success"`
	Agents     []registry.AgentSummary `json:"agents"`
	Total      int                     `json:"total"`
	Error      string                  `json:"error,omitempty"`
	Suggestion string                  `json:"suggestion"`
}

type capabilitiesOutcome struct {
	Handle       string                 `json:"handle"`
	IsAgent      bool                   `json:"is_agent"`
	Type         string                 `json:"type,omitempty"`
	Model        string                 `json:"model,omitempty"`
	Capabilities registry.CapabilitySet `json:"capabilities"`
	Availability registry.Availability  `json:"availability"`
	InputSchemas map[string]any         `json:"input_schemas,omitempty"`
	Examples     []any                  `json:"examples,omitempty"`
	Suggestion   string                 `json:"suggestion"`
}

func notRegistered() opFailure {
	return opFailure{Success: false, Error: notRegisteredMessage}
}

// Register announces a handle to the registry and, on success, establishes
// the session. A rejected registration leaves the session untouched.
func (s *Service) Register(ctx context.Context, handle, workingOn string) (any, error) {
	result, err := s.client.Register(ctx, handle, workingOn)
	if err != nil {
		return nil, err
	}

	if !result.Success || result.Token == "" {
		msg := result.Error
		if msg == "" {
			msg = "registration failed: registry returned no token"
		}

		return opFailure{Success: false, Error: msg}, nil
	}

	s.session.Establish(handle, result.Token)
	s.log.Info("registered with registry", "handle", s.session.Handle())

	return registerOutcome{
		Success: true,
		Message: "Registered as " + registry.DisplayHandle(handle),
	}, nil
}

// WhoIsOnline lists participants the registry currently sees.
func (s *Service) WhoIsOnline(ctx context.Context) (any, error) {
	return s.client.Presence(ctx)
}

// SendMessage delivers a message to another participant. The message type
// defaults to "text".
func (s *Service) SendMessage(ctx context.Context, to, text, msgType string) (any, error) {
	if !s.session.Registered() {
		return notRegistered(), nil
	}

	if msgType == "" {
		msgType = "text"
	}

	return s.client.SendMessage(ctx, to, text, msgType)
}

// CheckMessages fetches messages queued for this session, optionally since
// a timestamp cursor.
func (s *Service) CheckMessages(ctx context.Context, since string) (any, error) {
	if !s.session.Registered() {
		return notRegistered(), nil
	}

	return s.client.Messages(ctx, since)
}

// Heartbeat refreshes the session's presence record.
func (s *Service) Heartbeat(ctx context.Context) (any, error) {
	if !s.session.Registered() {
		return notRegistered(), nil
	}

	return s.client.Heartbeat(ctx)
}

// Consent records an accept or block decision for another handle.
func (s *Service) Consent(ctx context.Context, handle, action string) (any, error) {
	if !s.session.Registered() {
		return notRegistered(), nil
	}

	if action != "accept" && action != "block" {
		return opFailure{
			Success: false,
			Error:   fmt.Sprintf("consent action must be %q or %q, got %q", "accept", "block", action),
		}, nil
	}

	return s.client.Consent(ctx, handle, action)
}

// DiscoverAgents queries the agent directory and attaches a usage
// suggestion keyed on whether anything matched.
func (s *Service) DiscoverAgents(ctx context.Context, filters registry.DiscoverFilters) (any, error) {
	result, err := s.client.DiscoverAgents(ctx, filters)
	if err != nil {
		return nil, err
	}

	out := discoverOutcome{
		Success: result.Success,
		Agents:  result.Agents,
		Total:   result.Total,
		Error:   result.Error,
	}

	if result.Total == 0 {
		out.Suggestion = "No agents found. Try broadening the filters, or search again without a capability."
	} else {
		out.Suggestion = fmt.Sprintf("Found %d agent(s). Use send_message with a handle to reach one.", result.Total)
	}

	return out, nil
}

// GetCapabilities fetches the identity record for one handle and attaches
// a suggestion keyed on its availability.
func (s *Service) GetCapabilities(ctx context.Context, handle string) (any, error) {
	result, err := s.client.AgentCapabilities(ctx, handle)
	if err != nil {
		return nil, err
	}

	// Registry-reported errors pass through verbatim.
	if result.Error != "" {
		return map[string]any{
			"error":   result.Error,
			"message": result.Message,
		}, nil
	}

	display := result.Handle
	if registry.NormalizeHandle(display) == "" {
		display = registry.DisplayHandle(handle)
	}

	out := capabilitiesOutcome{
		Handle:       display,
		IsAgent:      result.IsAgent,
		Type:         result.Type,
		Model:        result.Model,
		Capabilities: result.Capabilities,
		Availability: result.Availability,
		InputSchemas: result.InputSchemas,
		Examples:     result.Examples,
	}

	if result.Availability.Status == "offline" {
		out.Suggestion = display + " is offline. Messages will be queued until they reconnect."
	} else {
		out.Suggestion = display + " can be reached now with send_message."
	}

	return out, nil
}
