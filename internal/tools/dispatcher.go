package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/agentmesh/agentmesh-mcp/internal/errors"
)

// Handler executes one tool operation. The returned value is serialized as
// JSON text into the result envelope; a non-nil error becomes an
// error-flagged envelope at the dispatcher boundary.
type Handler func(ctx context.Context, args map[string]any) (any, error)

// Tool is one immutable catalog entry: static metadata plus its handler.
type Tool struct {
	Name        string
	Description string
	InputSchema *jsonschema.Schema
	Handler     Handler
}

// Dispatcher routes named tool calls to their operations and wraps every
// outcome in the MCP result envelope. It is the only place operation
// errors are caught.
type Dispatcher struct {
	mu    sync.RWMutex
	order []string
	tools map[string]*Tool
	log   *slog.Logger
}

// NewDispatcher creates an empty dispatcher.
func NewDispatcher(log *slog.Logger) *Dispatcher {
	return &Dispatcher{
		tools: make(map[string]*Tool, 8),
		log:   log,
	}
}

// Add registers tools, preserving insertion order for the catalog.
func (d *Dispatcher) Add(tools ...*Tool) {
	d.mu.Lock()
	defer d.mu.Unlock()

	for _, t := range tools {
		if _, exists := d.tools[t.Name]; !exists {
			d.order = append(d.order, t.Name)
		}
		d.tools[t.Name] = t
	}
}

// Tools returns the catalog in registration order.
func (d *Dispatcher) Tools() []*Tool {
	d.mu.RLock()
	defer d.mu.RUnlock()

	result := make([]*Tool, 0, len(d.order))
	for _, name := range d.order {
		result = append(result, d.tools[name])
	}

	return result
}

// Invoke looks up a tool by name, runs it, and wraps the outcome.
//
// Unknown tools, operation errors, and serialization failures all produce
// an error-flagged envelope rather than a Go error, so the host transport
// never sees a failed call crash the process.
func (d *Dispatcher) Invoke(ctx context.Context, name string, args map[string]any) *mcp.CallToolResult {
	d.mu.RLock()
	tool, exists := d.tools[name]
	d.mu.RUnlock()

	if !exists {
		return errorResult(fmt.Sprintf("%v: %s", errors.ErrUnknownTool, name))
	}

	payload, err := tool.Handler(ctx, args)
	if err != nil {
		d.log.Warn("tool call failed", "tool", name, "error", err)

		return errorResult(err.Error())
	}

	text, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return errorResult(fmt.Sprintf("failed to serialize %s result: %v", name, err))
	}

	return textResult(string(text))
}

// Bind registers every catalog entry with an MCP server, adapting the
// SDK's request type to the dispatcher's map-based arguments.
func (d *Dispatcher) Bind(server *mcp.Server) {
	for _, t := range d.Tools() {
		tool := t
		server.AddTool(
			&mcp.Tool{
				Name:        tool.Name,
				Description: tool.Description,
				InputSchema: tool.InputSchema,
			},
			func(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
				args, err := ParseArguments(req)
				if err != nil {
					return errorResult(err.Error()), nil
				}

				return d.Invoke(ctx, tool.Name, args), nil
			},
		)
	}
}

// ParseArguments unmarshals a tool call's raw arguments into a map.
func ParseArguments(req *mcp.CallToolRequest) (map[string]any, error) {
	if req == nil || req.Params == nil || len(req.Params.Arguments) == 0 {
		return make(map[string]any), nil
	}

	var args map[string]any
	if err := json.Unmarshal(req.Params.Arguments, &args); err != nil {
		return nil, fmt.Errorf("failed to unmarshal arguments: %w", err)
	}

	return args, nil
}

func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
	}
}

func errorResult(message string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: message}},
		IsError: true,
	}
}
