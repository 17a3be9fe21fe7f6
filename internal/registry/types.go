package registry

import "encoding/json"

// RegisterResult is the registry's answer to a presence registration.
type RegisterResult struct {
	Success bool   `json:"success"`
	Token   string `json:"token,omitempty"`
	Error   string `json:"error,omitempty"`
}

// PresenceResult lists the participants the registry currently sees online.
type PresenceResult struct {
	Users []map[string]any `json:"users"`
}

// MessagesResult holds messages queued for a participant.
type MessagesResult struct {
	Messages []map[string]any `json:"messages"`
}

// AgentSummary is the caller-facing shape of one discovered agent.
type AgentSummary struct {
	Handle       string   `json:"handle"`
	Type         string   `json:"type,omitempty"`
	Model        string   `json:"model,omitempty"`
	Capabilities []string `json:"capabilities"`
	Status       string   `json:"status"`
	WorkingOn    string   `json:"working_on,omitempty"`
}

// AgentsResult is the registry's answer to an agent discovery query.
type AgentsResult struct {
	Success bool           `json:"success"`
	Agents  []AgentSummary `json:"agents"`
	Total   int            `json:"total"`
	Error   string         `json:"error,omitempty"`
}

// CapabilitySet describes what message kinds an agent understands.
type CapabilitySet struct {
	Supported []string `json:"supported"`
	Primary   string   `json:"primary,omitempty"`
}

// Availability describes whether an agent can currently be reached.
type Availability struct {
	Status          string `json:"status"`
	AcceptsMessages bool   `json:"accepts_messages"`
}

// CapabilitiesResult is the registry's identity record for one handle.
type CapabilitiesResult struct {
	Handle       string         `json:"handle"`
	IsAgent      bool           `json:"is_agent"`
	Type         string         `json:"type,omitempty"`
	Model        string         `json:"model,omitempty"`
	Capabilities CapabilitySet  `json:"capabilities"`
	Availability Availability   `json:"availability"`
	InputSchemas map[string]any `json:"input_schemas,omitempty"`
	Examples     []any          `json:"examples,omitempty"`
	Error        string         `json:"error,omitempty"`
	Message      string         `json:"message,omitempty"`
}

// Wire shapes mirror the registry's JSON exactly. Pointer fields capture
// the absent-vs-explicit-false distinction that the caller-facing types
// resolve with defaults.

type agentWire struct {
	Handle       string   `json:"handle"`
	Type         string   `json:"type"`
	Model        string   `json:"model"`
	Capabilities []string `json:"capabilities"`
	Status       string   `json:"status"`
	WorkingOn    string   `json:"working_on"`
}

type agentsWire struct {
	Success bool        `json:"success"`
	Agents  []agentWire `json:"agents"`
	Total   int         `json:"total"`
	Error   string      `json:"error"`
}

type capabilitiesWire struct {
	Handle       string `json:"handle"`
	IsAgent      bool   `json:"is_agent"`
	Type         string `json:"type"`
	Model        string `json:"model"`
	Capabilities *struct {
		Supported []string `json:"supported"`
		Primary   string   `json:"primary"`
	} `json:"capabilities"`
	Availability *struct {
		Status          string `json:"status"`
		AcceptsMessages *bool  `json:"accepts_messages"`
	} `json:"availability"`
	InputSchemas map[string]any `json:"input_schemas"`
	Examples     []any          `json:"examples"`
	Error        string         `json:"error"`
	Message      string         `json:"message"`
}

func decodeRegister(raw json.RawMessage) (*RegisterResult, error) {
	var out RegisterResult
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, err
	}

	return &out, nil
}

func decodePresence(raw json.RawMessage) (*PresenceResult, error) {
	var out PresenceResult
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, err
	}

	if out.Users == nil {
		out.Users = []map[string]any{}
	}

	return &out, nil
}

func decodeMessages(raw json.RawMessage) (*MessagesResult, error) {
	var out MessagesResult
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, err
	}

	if out.Messages == nil {
		out.Messages = []map[string]any{}
	}

	return &out, nil
}

func decodeAgents(raw json.RawMessage) (*AgentsResult, error) {
	var wire agentsWire
	if err := json.Unmarshal(raw, &wire); err != nil {
		return nil, err
	}

	out := &AgentsResult{
		Success: wire.Success,
		Agents:  make([]AgentSummary, 0, len(wire.Agents)),
		Total:   wire.Total,
		Error:   wire.Error,
	}

	for _, a := range wire.Agents {
		caps := a.Capabilities
		if caps == nil {
			caps = []string{}
		}

		status := a.Status
		if status == "" {
			status = "unknown"
		}

		out.Agents = append(out.Agents, AgentSummary{
			Handle:       DisplayHandle(a.Handle),
			Type:         a.Type,
			Model:        a.Model,
			Capabilities: caps,
			Status:       status,
			WorkingOn:    a.WorkingOn,
		})
	}

	return out, nil
}

func decodeCapabilities(raw json.RawMessage) (*CapabilitiesResult, error) {
	var wire capabilitiesWire
	if err := json.Unmarshal(raw, &wire); err != nil {
		return nil, err
	}

	out := &CapabilitiesResult{
		Handle:       DisplayHandle(wire.Handle),
		IsAgent:      wire.IsAgent,
		Type:         wire.Type,
		Model:        wire.Model,
		Capabilities: CapabilitySet{Supported: []string{"text"}},
		Availability: Availability{Status: "unknown", AcceptsMessages: true},
		InputSchemas: wire.InputSchemas,
		Examples:     wire.Examples,
		Error:        wire.Error,
		Message:      wire.Message,
	}

	if wire.Capabilities != nil {
		if len(wire.Capabilities.Supported) > 0 {
			out.Capabilities.Supported = wire.Capabilities.Supported
		}
		out.Capabilities.Primary = wire.Capabilities.Primary
	}

	if wire.Availability != nil {
		if wire.Availability.Status != "" {
			out.Availability.Status = wire.Availability.Status
		}
		// Absent means true; only an explicit false turns messages off.
		if wire.Availability.AcceptsMessages != nil {
			out.Availability.AcceptsMessages = *wire.Availability.AcceptsMessages
		}
	}

	return out, nil
}
