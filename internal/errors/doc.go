// Package errors defines error types for the AgentMesh bridge.
//
// This package provides structured error types for failures on the registry
// HTTP boundary. All error types support error unwrapping and can be checked
// using errors.Is, errors.As, and errors.AsType.
package errors
