package tools

import (
	"context"

	"github.com/google/jsonschema-go/jsonschema"

	"github.com/agentmesh/agentmesh-mcp/internal/registry"
)

// Catalog builds the canonical tool catalog: six communication tools and
// two discovery tools, all bound to one service.
func Catalog(svc *Service) []*Tool {
	return []*Tool{
		{
			Name:        "register",
			Description: "Register a handle with the AgentMesh registry. Required before sending or receiving messages.",
			InputSchema: objectSchema(map[string]*jsonschema.Schema{
				"handle":     {Type: "string", Description: "Handle to register, with or without a leading @"},
				"working_on": {Type: "string", Description: "Optional note about what you are currently doing"},
			}, "handle"),
			Handler: func(ctx context.Context, args map[string]any) (any, error) {
				return svc.Register(ctx, stringArg(args, "handle"), stringArg(args, "working_on"))
			},
		},
		{
			Name:        "who_is_online",
			Description: "List participants the registry currently sees online.",
			InputSchema: objectSchema(nil),
			Handler: func(ctx context.Context, _ map[string]any) (any, error) {
				return svc.WhoIsOnline(ctx)
			},
		},
		{
			Name:        "send_message",
			Description: "Send a message to another participant by handle.",
			InputSchema: objectSchema(map[string]*jsonschema.Schema{
				"to":   {Type: "string", Description: "Recipient handle, with or without a leading @"},
				"text": {Type: "string", Description: "Message body"},
				"type": {
					Type:        "string",
					Description: "Message type; defaults to text",
					Enum:        []any{"text", "task", "result"},
				},
			}, "to", "text"),
			Handler: func(ctx context.Context, args map[string]any) (any, error) {
				return svc.SendMessage(ctx, stringArg(args, "to"), stringArg(args, "text"), stringArg(args, "type"))
			},
		},
		{
			Name:        "check_messages",
			Description: "Fetch messages queued for your handle.",
			InputSchema: objectSchema(map[string]*jsonschema.Schema{
				"since": {Type: "string", Description: "Only return messages after this timestamp"},
			}),
			Handler: func(ctx context.Context, args map[string]any) (any, error) {
				return svc.CheckMessages(ctx, stringArg(args, "since"))
			},
		},
		{
			Name:        "heartbeat",
			Description: "Keep your presence record alive. Call roughly every 30 seconds while active.",
			InputSchema: objectSchema(nil),
			Handler: func(ctx context.Context, _ map[string]any) (any, error) {
				return svc.Heartbeat(ctx)
			},
		},
		{
			Name:        "consent",
			Description: "Accept or block messages from another handle.",
			InputSchema: objectSchema(map[string]*jsonschema.Schema{
				"handle": {Type: "string", Description: "Handle the decision applies to"},
				"action": {
					Type:        "string",
					Description: "accept or block",
					Enum:        []any{"accept", "block"},
				},
			}, "handle", "action"),
			Handler: func(ctx context.Context, args map[string]any) (any, error) {
				return svc.Consent(ctx, stringArg(args, "handle"), stringArg(args, "action"))
			},
		},
		{
			Name:        "discover_agents",
			Description: "Search the agent directory by capability, type, model, or free text.",
			InputSchema: objectSchema(map[string]*jsonschema.Schema{
				"capability": {Type: "string", Description: "Required capability, e.g. code or translation"},
				"type":       {Type: "string", Description: "Agent type filter"},
				"model":      {Type: "string", Description: "Model name filter"},
				"query":      {Type: "string", Description: "Free-text search"},
				"available":  {Type: "boolean", Description: "Only agents available now; defaults to true"},
				"limit":      {Type: "integer", Description: "Maximum results; defaults to 10"},
			}),
			Handler: func(ctx context.Context, args map[string]any) (any, error) {
				return svc.DiscoverAgents(ctx, registry.DiscoverFilters{
					Capability: stringArg(args, "capability"),
					Type:       stringArg(args, "type"),
					Model:      stringArg(args, "model"),
					Query:      stringArg(args, "query"),
					Available:  optionalBoolArg(args, "available"),
					Limit:      intArg(args, "limit"),
				})
			},
		},
		{
			Name:        "get_capabilities",
			Description: "Fetch an agent's identity record: supported message types, availability, and input schemas.",
			InputSchema: objectSchema(map[string]*jsonschema.Schema{
				"handle": {Type: "string", Description: "Handle to look up, with or without a leading @"},
			}, "handle"),
			Handler: func(ctx context.Context, args map[string]any) (any, error) {
				return svc.GetCapabilities(ctx, stringArg(args, "handle"))
			},
		},
	}
}

func objectSchema(properties map[string]*jsonschema.Schema, required ...string) *jsonschema.Schema {
	if properties == nil {
		properties = map[string]*jsonschema.Schema{}
	}

	return &jsonschema.Schema{
		Type:       "object",
		Properties: properties,
		Required:   required,
	}
}

func stringArg(args map[string]any, key string) string {
	s, _ := args[key].(string)

	return s
}

// optionalBoolArg preserves the absent-vs-explicit-false distinction.
func optionalBoolArg(args map[string]any, key string) *bool {
	if v, ok := args[key].(bool); ok {
		return &v
	}

	return nil
}

// intArg reads a JSON number argument; zero means unset.
func intArg(args map[string]any, key string) int {
	if v, ok := args[key].(float64); ok {
		return int(v)
	}

	return 0
}
