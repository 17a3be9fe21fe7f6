// Package agentmesh bridges the Model Context Protocol to the AgentMesh
// registry HTTP API.
//
// The bridge exposes eight tools over MCP (register, who_is_online,
// send_message, check_messages, heartbeat, consent, discover_agents, and
// get_capabilities) and translates each invocation into one HTTP request
// against a configurable registry host. Registration establishes a
// process-lifetime session whose bearer token authenticates every
// subsequent call.
//
// # Basic Usage
//
// Construct a server and run it over stdio until the host closes the
// transport:
//
//	srv := agentmesh.New(
//	    agentmesh.WithLogger(logger),
//	    agentmesh.WithRegistryURL("http://localhost:8787"),
//	)
//	if err := srv.Run(ctx); err != nil {
//	    log.Fatal(err)
//	}
//
// # Configuration
//
// The registry base URL has a single configuration point. The binary reads
// AGENTMESH_REGISTRY_URL from the environment; library callers use
// WithRegistryURL. Absent both, the documented default host applies.
//
// # Heartbeats
//
// The registry expects a heartbeat roughly every 30 seconds to keep a
// presence record alive. Callers can drive this themselves through the
// heartbeat tool, or enable the background loop with WithHeartbeat.
//
// # Error Handling
//
// Precondition failures ("not registered") and registry-reported failures
// are structured JSON values in the tool result. Network failures and
// non-JSON bodies surface as error-flagged result envelopes; the process
// never crashes on a failed call, and nothing is retried.
package agentmesh
