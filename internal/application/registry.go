package application

import (
	"fmt"

	"github.com/kmdb/kmdb-cli/internal/domain"
)

// Registry is the ordered set of open sessions and the active pointer. It is
// not safe for concurrent use; the multiplexer loop owns it.
type Registry struct {
	sessions []*Session
	active   domain.SessionID
}

func NewRegistry() *Registry {
	return &Registry{}
}

// Add appends a session. It becomes active when it is the first one or when
// activate is set.
func (r *Registry) Add(s *Session, activate bool) error {
	if s == nil || s.ID == "" {
		return fmt.Errorf("add session: %w", domain.ErrSessionNotFound)
	}
	if _, ok := r.Get(s.ID); ok {
		return fmt.Errorf("add session %s: %w", s.ID, domain.ErrDuplicateSession)
	}

	r.sessions = append(r.sessions, s)
	if activate || r.active == "" {
		r.active = s.ID
	}
	return nil
}

// Remove drops a session. When it was active, the most recently added
// remaining session takes over.
func (r *Registry) Remove(id domain.SessionID) (*Session, bool) {
	for i, s := range r.sessions {
		if s.ID != id {
			continue
		}

		r.sessions = append(r.sessions[:i:i], r.sessions[i+1:]...)
		wasActive := r.active == id
		if wasActive {
			r.active = ""
			if n := len(r.sessions); n > 0 {
				r.active = r.sessions[n-1].ID
			}
		}
		return s, wasActive
	}

	return nil, false
}

func (r *Registry) SetActive(id domain.SessionID) bool {
	if _, ok := r.Get(id); !ok {
		return false
	}
	r.active = id
	return true
}

// UpdateConnected flips the connected flag. Unknown ids are ignored since
// socket events may arrive after the session was removed.
func (r *Registry) UpdateConnected(id domain.SessionID, connected bool) bool {
	s, ok := r.Get(id)
	if !ok {
		return false
	}

	s.connected = connected
	switch {
	case connected:
		s.state = domain.SessionConnected
	case s.state == domain.SessionConnected:
		s.state = domain.SessionDisconnected
	}
	return true
}

// markDisconnected records a socket failure, including one that happens
// before the socket ever opened.
func (r *Registry) markDisconnected(id domain.SessionID) bool {
	s, ok := r.Get(id)
	if !ok {
		return false
	}

	s.connected = false
	if s.state != domain.SessionClosed {
		s.state = domain.SessionDisconnected
	}
	return true
}

// NextIndex returns the display ordinal for a new session to the asset:
// one more than the highest ordinal in use.
func (r *Registry) NextIndex(assetID domain.AssetID) int {
	highest := 0
	for _, s := range r.sessions {
		if s.Asset.ID == assetID && s.Index > highest {
			highest = s.Index
		}
	}
	return highest + 1
}

func (r *Registry) Get(id domain.SessionID) (*Session, bool) {
	for _, s := range r.sessions {
		if s.ID == id {
			return s, true
		}
	}
	return nil, false
}

func (r *Registry) Active() *Session {
	if r.active == "" {
		return nil
	}
	s, _ := r.Get(r.active)
	return s
}

func (r *Registry) ActiveID() domain.SessionID {
	return r.active
}

// Sessions returns the sessions in insertion order.
func (r *Registry) Sessions() []*Session {
	out := make([]*Session, len(r.sessions))
	copy(out, r.sessions)
	return out
}

func (r *Registry) Len() int {
	return len(r.sessions)
}

// contains reports whether s is the registered session for its id.
func (r *Registry) contains(s *Session) bool {
	current, ok := r.Get(s.ID)
	return ok && current == s
}
