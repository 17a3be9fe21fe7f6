package registry

import "sync"

// Session holds the mutable registration state for one bridge process.
//
// It is an explicit object injected into the client and every tool
// operation, not package-global state, so tests and future multi-session
// hosts can construct as many as they need. The host transport may
// interleave independent tool calls, so access is guarded; concurrent
// registrations race and the last write wins.
type Session struct {
	mu         sync.RWMutex
	handle     string
	token      string
	registered bool
}

// SessionState is a point-in-time copy of a session's fields.
type SessionState struct {
	Handle     string
	Token      string
	Registered bool
}

// NewSession returns an unregistered session.
func NewSession() *Session {
	return &Session{}
}

// Establish records a successful registration. The handle is stored
// normalized (no @ prefix).
func (s *Session) Establish(handle, token string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.handle = NormalizeHandle(handle)
	s.token = token
	s.registered = true
}

// Registered reports whether a registration has been accepted.
func (s *Session) Registered() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.registered
}

// Handle returns the normalized handle, or "" before registration.
func (s *Session) Handle() string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.handle
}

// Token returns the opaque credential, or "" before registration.
func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.token
}

// Snapshot returns a consistent copy of all fields.
func (s *Session) Snapshot() SessionState {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return SessionState{
		Handle:     s.handle,
		Token:      s.token,
		Registered: s.registered,
	}
}
