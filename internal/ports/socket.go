package ports

import (
	"context"
	"errors"
	"fmt"
)

type FrameKind byte

const (
	FrameData    FrameKind = 0x01
	FrameControl FrameKind = 0x02
)

type Frame struct {
	Kind    FrameKind
	Payload []byte
}

// ResizeControl is the JSON body of a resize control frame.
type ResizeControl struct {
	Type string `json:"type"`
	Cols int    `json:"cols"`
	Rows int    `json:"rows"`
}

// ErrConnClosed is returned by Conn.Send once the socket is closed.
var ErrConnClosed = errors.New("socket is closed")

const (
	CloseNormal    = 1000
	CloseGoingAway = 1001
	CloseAbnormal  = 1006
)

// CloseError reports how the remote end closed the socket.
type CloseError struct {
	Code   int
	Reason string
}

func (e *CloseError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("socket closed with status %d", e.Code)
	}
	return fmt.Sprintf("socket closed with status %d: %s", e.Code, e.Reason)
}

// Normal reports a clean shutdown initiated by the server, typically the
// remote shell exiting.
func (e *CloseError) Normal() bool {
	return e.Code == CloseNormal || e.Code == CloseGoingAway
}

type Dialer interface {
	Dial(ctx context.Context, url string) (Conn, error)
}

// Conn is one open terminal socket. Send never blocks and frames are written
// in call order. Close starts the close handshake and returns without waiting
// for the peer.
type Conn interface {
	Send(frame Frame) error
	Receive(ctx context.Context) (Frame, error)
	Close(code int, reason string) error
}
