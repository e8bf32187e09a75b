package websocket

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/coder/websocket"
	"github.com/kmdb/kmdb-cli/internal/ports"
	"github.com/rs/zerolog"
)

const (
	defaultReadLimit    = 1 << 20
	defaultQueueSize    = 256
	defaultWriteTimeout = 10 * time.Second
	drainTimeout        = 2 * time.Second
)

var (
	ErrConnClosed = ports.ErrConnClosed
	ErrQueueFull  = errors.New("socket send queue is full")
)

type Dialer struct {
	HTTPClient   *http.Client
	ReadLimit    int64
	QueueSize    int
	WriteTimeout time.Duration
	Logger       zerolog.Logger
}

var _ ports.Dialer = (*Dialer)(nil)

func (d *Dialer) Dial(ctx context.Context, url string) (ports.Conn, error) {
	ws, _, err := websocket.Dial(ctx, url, &websocket.DialOptions{HTTPClient: d.HTTPClient})
	if err != nil {
		return nil, fmt.Errorf("dial terminal socket: %w", err)
	}

	readLimit := d.ReadLimit
	if readLimit <= 0 {
		readLimit = defaultReadLimit
	}
	ws.SetReadLimit(readLimit)

	queueSize := d.QueueSize
	if queueSize <= 0 {
		queueSize = defaultQueueSize
	}
	writeTimeout := d.WriteTimeout
	if writeTimeout <= 0 {
		writeTimeout = defaultWriteTimeout
	}

	return newConn(ws, queueSize, writeTimeout, d.Logger), nil
}

// Conn frames every message with a leading type byte and writes them from a
// single goroutine.
type Conn struct {
	ws           *websocket.Conn
	outbound     chan ports.Frame
	writeTimeout time.Duration
	logger       zerolog.Logger

	ctx    context.Context
	cancel context.CancelFunc
	done   chan struct{}

	mu     sync.Mutex
	closed bool
}

var _ ports.Conn = (*Conn)(nil)

func newConn(ws *websocket.Conn, queueSize int, writeTimeout time.Duration, logger zerolog.Logger) *Conn {
	ctx, cancel := context.WithCancel(context.Background())
	c := &Conn{
		ws:           ws,
		outbound:     make(chan ports.Frame, queueSize),
		writeTimeout: writeTimeout,
		logger:       logger,
		ctx:          ctx,
		cancel:       cancel,
		done:         make(chan struct{}),
	}
	go c.writeLoop()
	return c
}

func (c *Conn) Send(frame ports.Frame) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return ErrConnClosed
	}

	select {
	case c.outbound <- frame:
		return nil
	default:
		return ErrQueueFull
	}
}

func (c *Conn) Receive(ctx context.Context) (ports.Frame, error) {
	for {
		typ, data, err := c.ws.Read(ctx)
		if err != nil {
			return ports.Frame{}, translateReadError(err)
		}

		if typ == websocket.MessageText {
			return ports.Frame{Kind: ports.FrameData, Payload: data}, nil
		}
		if len(data) == 0 {
			continue
		}

		switch kind := ports.FrameKind(data[0]); kind {
		case ports.FrameData, ports.FrameControl:
			return ports.Frame{Kind: kind, Payload: data[1:]}, nil
		default:
			return ports.Frame{Kind: ports.FrameData, Payload: data}, nil
		}
	}
}

func (c *Conn) Close(code int, reason string) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true
	close(c.outbound)
	c.mu.Unlock()

	go func() {
		defer c.cancel()

		timer := time.NewTimer(drainTimeout)
		defer timer.Stop()
		select {
		case <-c.done:
		case <-timer.C:
			c.logger.Debug().Msg("socket send queue not drained before close")
		}

		if err := c.ws.Close(websocket.StatusCode(code), reason); err != nil {
			c.logger.Debug().Err(err).Int("code", code).Msg("close terminal socket")
		}
	}()

	return nil
}

func (c *Conn) writeLoop() {
	defer close(c.done)

	for frame := range c.outbound {
		message := make([]byte, 0, len(frame.Payload)+1)
		message = append(message, byte(frame.Kind))
		message = append(message, frame.Payload...)

		ctx, cancel := context.WithTimeout(c.ctx, c.writeTimeout)
		err := c.ws.Write(ctx, websocket.MessageBinary, message)
		cancel()
		if err != nil {
			c.logger.Debug().Err(err).Msg("write terminal frame")
			c.discard()
			return
		}
	}
}

// discard drops queued frames after a write failure; the read side reports
// the failure to the session.
func (c *Conn) discard() {
	for range c.outbound {
	}
}

func translateReadError(err error) error {
	var closeErr websocket.CloseError
	if errors.As(err, &closeErr) {
		return &ports.CloseError{Code: int(closeErr.Code), Reason: closeErr.Reason}
	}
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return &ports.CloseError{Code: ports.CloseAbnormal, Reason: "connection dropped"}
	}
	return err
}
