package domain

import (
	"errors"
	"fmt"
)

var (
	ErrConnectionRejected         = errors.New("connection rejected")
	ErrTransportError             = errors.New("connection error")
	ErrTransportClosed            = errors.New("connection lost")
	ErrTeardownNotificationFailed = errors.New("teardown notification failed")
	ErrSessionNotFound            = errors.New("session not found")
	ErrDuplicateSession           = errors.New("session already registered")
	ErrAssetNotFound              = errors.New("asset not found")
	ErrAuthRequired               = errors.New("a credential or a username is required")
	ErrTokenMissing               = errors.New("api token not configured")
	ErrHistoryEmpty               = errors.New("no connection history")
	ErrAmbiguousAsset             = errors.New("asset reference is ambiguous")
)

// ConnectionRejectedError carries the server-supplied reason for a refused
// connect handshake.
type ConnectionRejectedError struct {
	Status  int
	Message string
}

func (e *ConnectionRejectedError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%s: HTTP %d", ErrConnectionRejected, e.Status)
	}
	return fmt.Sprintf("%s: %s", ErrConnectionRejected, e.Message)
}

func (e *ConnectionRejectedError) Is(target error) bool {
	return target == ErrConnectionRejected
}
