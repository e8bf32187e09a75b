package domain

import (
	"fmt"
	"time"
)

type SessionID string

type SessionState string

const (
	SessionConnecting   SessionState = "connecting"
	SessionConnected    SessionState = "connected"
	SessionDisconnected SessionState = "disconnected"
	SessionClosed       SessionState = "closed"
)

// Target identifies what a session connects to and how it authenticates.
// Either CredentialID or Username must be set.
type Target struct {
	Asset        Asset
	CredentialID CredentialID
	Username     string
	Password     string
}

func (t Target) Validate() error {
	if t.Asset.ID == "" {
		return fmt.Errorf("asset id is required")
	}
	if t.CredentialID == "" && t.Username == "" {
		return ErrAuthRequired
	}
	return nil
}

// HistoryEntry is a previously used connection target. Passwords are never
// part of history.
type HistoryEntry struct {
	Asset        Asset
	CredentialID CredentialID
	Username     string
	LastUsedAt   time.Time
	UseCount     int
}

func (h HistoryEntry) Target() Target {
	return Target{
		Asset:        h.Asset,
		CredentialID: h.CredentialID,
		Username:     h.Username,
	}
}

// Key identifies a history entry: the same asset reached with a different
// identity is a different entry.
func (h HistoryEntry) Key() string {
	return fmt.Sprintf("%s|%s|%s", h.Asset.ID, h.CredentialID, h.Username)
}
