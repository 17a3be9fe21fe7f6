package errors

import (
	"errors"
	"fmt"
)

// AgentMeshError is the base interface for all bridge errors.
type AgentMeshError interface {
	error
	IsAgentMeshError() bool
}

// Compile-time verification that all error types implement AgentMeshError.
var (
	_ AgentMeshError = (*RequestError)(nil)
	_ AgentMeshError = (*DecodeError)(nil)
)

// Sentinel errors for commonly checked conditions.
var (
	// ErrNotRegistered indicates an operation that requires a registered
	// session was invoked before registration.
	ErrNotRegistered = errors.New("not registered: use the register tool first")

	// ErrUnknownTool indicates a tool call named a tool that is not in the catalog.
	ErrUnknownTool = errors.New("unknown tool")
)

// RequestError indicates a registry HTTP request failed at the network layer.
type RequestError struct {
	Method   string
	Endpoint string
	Err      error
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("registry request %s %s failed: %v", e.Method, e.Endpoint, e.Err)
}

func (e *RequestError) Unwrap() error {
	return e.Err
}

// IsAgentMeshError implements AgentMeshError.
func (e *RequestError) IsAgentMeshError() bool { return true }

// DecodeError indicates the registry returned a body that is not valid JSON.
// This error preserves the raw body that failed to parse.
type DecodeError struct {
	Endpoint string
	RawBody  string
	Err      error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("failed to decode registry response from %s: %v", e.Endpoint, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// IsAgentMeshError implements AgentMeshError.
func (e *DecodeError) IsAgentMeshError() bool { return true }
