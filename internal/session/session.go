// Package session implements the server-side session store backing
// authentication, flash messages, and post-login redirect targets.
// Sessions are opaque UUID identifiers handed to the client in a cookie;
// all state lives in Redis under that identifier.
package session

// CookieName is the session cookie handed to clients.
const CookieName = "campstead_session"

// Flash message kinds, mirrored in redirect targets rendered by the client.
const (
	FlashSuccess = "success"
	FlashError   = "error"
)

// Message is a one-shot notification consumed on the next read.
type Message struct {
	Kind string `json:"kind"`
	Text string `json:"text"`
}

type payload struct {
	UserID   uint      `json:"user_id,omitempty"`
	Flash    []Message `json:"flash,omitempty"`
	ReturnTo string    `json:"return_to,omitempty"`
}

// Session is one client's server-side state for the lifetime of a request.
// Mutations mark it dirty; the middleware persists dirty sessions after the
// handler runs.
type Session struct {
	id    string
	data  payload
	fresh bool
	dirty bool
}

// ID returns the opaque session identifier.
func (s *Session) ID() string { return s.id }

// Fresh reports whether the session was created during this request and
// the cookie still needs to be set.
func (s *Session) Fresh() bool { return s.fresh }

// Dirty reports whether the session has unsaved changes.
func (s *Session) Dirty() bool { return s.dirty }

// UserID returns the bound principal's ID, or zero for anonymous sessions.
func (s *Session) UserID() uint { return s.data.UserID }

// Bind attaches the session to a principal after login or registration.
func (s *Session) Bind(userID uint) {
	s.data.UserID = userID
	s.dirty = true
}

// Unbind clears the principal binding at logout. Flash messages queued on
// the way out survive so the farewell can still be shown.
func (s *Session) Unbind() {
	s.data.UserID = 0
	s.data.ReturnTo = ""
	s.dirty = true
}

// AddFlash queues a one-shot message for the next page view.
func (s *Session) AddFlash(kind, text string) {
	s.data.Flash = append(s.data.Flash, Message{Kind: kind, Text: text})
	s.dirty = true
}

// ConsumeFlash returns and clears all pending messages.
func (s *Session) ConsumeFlash() []Message {
	msgs := s.data.Flash
	if len(msgs) > 0 {
		s.data.Flash = nil
		s.dirty = true
	}
	return msgs
}

// SetReturnTo remembers the URL an anonymous client tried to reach, so the
// login flow can send them back afterwards.
func (s *Session) SetReturnTo(target string) {
	s.data.ReturnTo = target
	s.dirty = true
}

// ConsumeReturnTo returns and clears the remembered redirect target.
// The target is used exactly once.
func (s *Session) ConsumeReturnTo() string {
	target := s.data.ReturnTo
	if target != "" {
		s.data.ReturnTo = ""
		s.dirty = true
	}
	return target
}
