// Package tools defines the bridge's tool catalog and dispatch layer.
//
// Each tool operation is a pure mapping from validated arguments plus the
// current session to one registry client call. Operations that require a
// registered session short-circuit with a structured failure value before
// any network I/O happens.
//
// The dispatcher is the single failure boundary: operation errors (network
// failures, non-JSON bodies) are converted into error-flagged MCP result
// envelopes exactly once, here. Operations never catch those errors
// themselves, and nothing is retried.
package tools
