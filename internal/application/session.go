package application

import (
	"context"
	"fmt"
	"sync"

	"github.com/kmdb/kmdb-cli/internal/domain"
	"github.com/kmdb/kmdb-cli/internal/ports"
)

// Session is one server-side terminal session and the local resources bound
// to it. Fields are only mutated from the multiplexer loop.
type Session struct {
	ID           domain.SessionID
	Asset        domain.Asset
	CredentialID domain.CredentialID
	Username     string
	Index        int
	Terminal     ports.Terminal

	// password is kept in memory for Clone and never persisted.
	password  string
	socket    ports.ConnectResponse
	conn      ports.Conn
	state     domain.SessionState
	connected bool
	cancel    context.CancelFunc
	teardown  sync.Once
}

func newSession(resp ports.ConnectResponse, target domain.Target, terminal ports.Terminal) *Session {
	return &Session{
		ID:           resp.SessionID,
		Asset:        target.Asset,
		CredentialID: target.CredentialID,
		Username:     target.Username,
		Terminal:     terminal,
		password:     target.Password,
		socket:       resp,
		state:        domain.SessionConnecting,
	}
}

// Connected is true only between the socket open event and its close or
// error. It is never true without an open socket.
func (s *Session) Connected() bool {
	return s.connected && s.conn != nil
}

func (s *Session) State() domain.SessionState {
	return s.state
}

func (s *Session) Label() string {
	if s.Index <= 0 {
		return s.Asset.Label()
	}
	return fmt.Sprintf("%s #%d", s.Asset.Label(), s.Index)
}

// Target returns what is needed to open another session to the same asset
// with the same identity.
func (s *Session) Target() domain.Target {
	return domain.Target{
		Asset:        s.Asset,
		CredentialID: s.CredentialID,
		Username:     s.Username,
		Password:     s.password,
	}
}

// SessionInfo is a read-only snapshot used outside the multiplexer loop.
type SessionInfo struct {
	ID        domain.SessionID
	Label     string
	Asset     domain.Asset
	Index     int
	State     domain.SessionState
	Connected bool
	Active    bool
}

func (s *Session) info(active bool) SessionInfo {
	return SessionInfo{
		ID:        s.ID,
		Label:     s.Label(),
		Asset:     s.Asset,
		Index:     s.Index,
		State:     s.state,
		Connected: s.Connected(),
		Active:    active,
	}
}
