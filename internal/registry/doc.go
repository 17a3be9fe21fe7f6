// Package registry implements the HTTP client for the AgentMesh registry.
//
// The client issues single round-trip requests against a configurable base
// URL, attaching bearer-token authentication once a session is established.
// Each endpoint has a typed result so that defensive defaults for absent
// fields live in one place, next to the decoder, rather than scattered
// across call sites.
//
// The package holds no retry, backoff, or caching logic. Network failures
// and non-JSON bodies surface as typed errors; registry-reported failures
// ({success:false, error:...}) are values on the typed results and pass
// through to callers verbatim.
package registry
