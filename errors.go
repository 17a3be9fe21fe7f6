package agentmesh

import "github.com/agentmesh/agentmesh-mcp/internal/errors"

// Re-export error types from the internal package.

// RequestError indicates a registry HTTP request failed at the network layer.
type RequestError = errors.RequestError

// DecodeError indicates the registry returned a body that is not valid JSON.
type DecodeError = errors.DecodeError

// AgentMeshError is the base interface for all bridge errors.
type AgentMeshError = errors.AgentMeshError

// Re-export sentinel errors from the internal package.
var (
	// ErrNotRegistered indicates an operation that requires a registered
	// session was invoked before registration.
	ErrNotRegistered = errors.ErrNotRegistered

	// ErrUnknownTool indicates a tool call named a tool that is not in the catalog.
	ErrUnknownTool = errors.ErrUnknownTool
)
