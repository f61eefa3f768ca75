package history

// Session holds per-run advisor state: identifiers the operator asked to
// stop hearing about. It lives for one attended run and is owned by the
// caller, so its reset semantics are explicit; nothing here is persisted.
type Session struct {
	suppressed map[string]struct{}
}

// NewSession creates an empty session.
func NewSession() *Session {
	return &Session{suppressed: make(map[string]struct{})}
}

// Suppress marks an identifier so later removals in this run are silent.
func (s *Session) Suppress(identifier string) {
	s.suppressed[identifier] = struct{}{}
}

// Suppressed reports whether the identifier was suppressed this run.
func (s *Session) Suppressed(identifier string) bool {
	_, ok := s.suppressed[identifier]
	return ok
}
