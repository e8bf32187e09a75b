package application

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/kmdb/kmdb-cli/internal/domain"
	"github.com/kmdb/kmdb-cli/internal/ports"
	"github.com/rs/zerolog"
)

const (
	// MaxInputFrame caps the payload of one data frame.
	MaxInputFrame          = 64 * 1024
	defaultTeardownTimeout = 5 * time.Second
)

// SocketHandler receives socket events from the per-session reader goroutine.
type SocketHandler interface {
	SocketOpened(s *Session, conn ports.Conn)
	SocketFrame(s *Session, frame ports.Frame)
	SocketClosed(s *Session, err error)
}

// Transport runs the connect, relay, resize and teardown protocol for
// sessions. Apart from Connect and Open, its methods run on the
// multiplexer loop.
type Transport struct {
	api             ports.WebSSHAPI
	dialer          ports.Dialer
	terminals       ports.TerminalFactory
	registry        *Registry
	teardownTimeout time.Duration
	logger          zerolog.Logger

	pending sync.WaitGroup
}

type TransportConfig struct {
	API             ports.WebSSHAPI
	Dialer          ports.Dialer
	Terminals       ports.TerminalFactory
	Registry        *Registry
	TeardownTimeout time.Duration
	Logger          zerolog.Logger
}

func NewTransport(cfg TransportConfig) *Transport {
	timeout := cfg.TeardownTimeout
	if timeout <= 0 {
		timeout = defaultTeardownTimeout
	}

	return &Transport{
		api:             cfg.API,
		dialer:          cfg.Dialer,
		terminals:       cfg.Terminals,
		registry:        cfg.Registry,
		teardownTimeout: timeout,
		logger:          cfg.Logger.With().Str("component", "transport").Logger(),
	}
}

// Connect performs the REST handshake. The returned session is not yet
// registered and its socket is not open.
func (t *Transport) Connect(ctx context.Context, target domain.Target, geom domain.Geometry) (*Session, error) {
	if err := target.Validate(); err != nil {
		return nil, err
	}

	terminal, err := t.terminals.NewTerminal(target.Asset.Label())
	if err != nil {
		return nil, fmt.Errorf("create terminal: %w", err)
	}
	terminal.Fit(geom)

	req := ports.ConnectRequest{
		AssetID:      target.Asset.ID,
		CredentialID: target.CredentialID,
		Geometry:     terminal.Geometry().Clamp(),
	}
	if target.CredentialID == "" {
		req.Username = target.Username
		req.Password = target.Password
	}

	resp, err := t.api.Connect(ctx, req)
	if err != nil {
		terminal.Dispose()
		return nil, fmt.Errorf("connect %s: %w", target.Asset.Label(), err)
	}

	t.logger.Info().
		Str("session", string(resp.SessionID)).
		Str("asset", string(target.Asset.ID)).
		Msg("session acknowledged")

	return newSession(resp, target, terminal), nil
}

// Open dials the session socket in the background and reports every event
// to handler in order.
func (t *Transport) Open(s *Session, handler SocketHandler) {
	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	socket := s.socket

	go func() {
		url, err := t.api.SocketURL(ctx, socket)
		if err != nil {
			handler.SocketClosed(s, fmt.Errorf("%w: %w", domain.ErrTransportError, err))
			return
		}

		conn, err := t.dialer.Dial(ctx, url)
		if err != nil {
			handler.SocketClosed(s, fmt.Errorf("%w: %w", domain.ErrTransportError, err))
			return
		}
		defer func() {
			if ctx.Err() != nil {
				_ = conn.Close(ports.CloseNormal, "session closed")
			}
		}()
		handler.SocketOpened(s, conn)

		for {
			frame, err := conn.Receive(ctx)
			if err != nil {
				handler.SocketClosed(s, err)
				return
			}
			handler.SocketFrame(s, frame)
		}
	}()
}

// HandleOpen marks the session connected and pushes the current geometry so
// the remote PTY matches the local fit.
func (t *Transport) HandleOpen(s *Session, conn ports.Conn) bool {
	if !t.registry.contains(s) || s.state == domain.SessionClosed {
		_ = conn.Close(ports.CloseNormal, "session closed")
		return false
	}

	s.conn = conn
	t.registry.UpdateConnected(s.ID, true)
	t.logger.Info().Str("session", string(s.ID)).Msg("socket open")

	t.Resize(s, s.Terminal.Geometry())
	return true
}

// HandleFrame writes server output into the session terminal. Frames for
// sessions that are gone are dropped.
func (t *Transport) HandleFrame(s *Session, frame ports.Frame) {
	if !t.registry.contains(s) || s.Terminal.Disposed() {
		return
	}

	switch frame.Kind {
	case ports.FrameData:
		if _, err := s.Terminal.Write(frame.Payload); err != nil {
			t.logger.Debug().Err(err).Str("session", string(s.ID)).Msg("write terminal output")
		}
	default:
		t.logger.Debug().Str("session", string(s.ID)).RawJSON("control", jsonOrNull(frame.Payload)).Msg("control frame ignored")
	}
}

// HandleClose reacts to the end of a socket. It reports whether the session
// ended cleanly and must be torn down; otherwise the session stays as a dead
// tab and the classified error is returned.
func (t *Transport) HandleClose(s *Session, err error) (bool, error) {
	if !t.registry.contains(s) || s.state == domain.SessionClosed {
		return false, nil
	}

	s.conn = nil
	logger := t.logger.With().Str("session", string(s.ID)).Logger()

	var closeErr *ports.CloseError
	switch {
	case errors.As(err, &closeErr) && closeErr.Normal():
		logger.Info().Int("code", closeErr.Code).Msg("socket closed by server")
		s.Terminal.Notice(ports.NoticeInfo, "session closed")
		return true, nil
	case errors.As(err, &closeErr):
		t.registry.markDisconnected(s.ID)
		logger.Warn().Int("code", closeErr.Code).Str("reason", closeErr.Reason).Msg("socket lost")
		s.Terminal.Notice(ports.NoticeError, "connection lost")
		return false, fmt.Errorf("%s: %w: %w", s.Label(), domain.ErrTransportClosed, err)
	default:
		t.registry.markDisconnected(s.ID)
		logger.Warn().Err(err).Msg("socket error")
		s.Terminal.Notice(ports.NoticeError, "connection error")
		if errors.Is(err, domain.ErrTransportError) {
			return false, fmt.Errorf("%s: %w", s.Label(), err)
		}
		return false, fmt.Errorf("%s: %w: %w", s.Label(), domain.ErrTransportError, err)
	}
}

// Relay forwards keyboard input verbatim while the socket is open. Input for
// a session without an open socket, or whose socket turns out to be closed,
// is dropped and the session is flagged as disconnected.
func (t *Transport) Relay(s *Session, p []byte) bool {
	if len(p) == 0 {
		return true
	}
	if !s.Connected() {
		t.registry.UpdateConnected(s.ID, false)
		return false
	}

	for start := 0; start < len(p); start += MaxInputFrame {
		end := min(start+MaxInputFrame, len(p))
		chunk := make([]byte, end-start)
		copy(chunk, p[start:end])

		if err := s.conn.Send(ports.Frame{Kind: ports.FrameData, Payload: chunk}); err != nil {
			t.logger.Warn().Err(err).Str("session", string(s.ID)).Msg("relay input")
			if errors.Is(err, ports.ErrConnClosed) {
				t.registry.UpdateConnected(s.ID, false)
			}
			return false
		}
	}

	s.Terminal.RecordInput(p)
	return true
}

// Resize propagates geometry to the server. It is skipped while the socket
// is not open or the geometry is degenerate, and clamped to the server
// limits otherwise.
func (t *Transport) Resize(s *Session, geom domain.Geometry) bool {
	if !s.Connected() || !geom.Valid() {
		return false
	}

	clamped := geom.Clamp()
	payload, err := json.Marshal(ports.ResizeControl{Type: "resize", Cols: clamped.Cols, Rows: clamped.Rows})
	if err != nil {
		return false
	}

	if err := s.conn.Send(ports.Frame{Kind: ports.FrameControl, Payload: payload}); err != nil {
		t.logger.Debug().Err(err).Str("session", string(s.ID)).Msg("send resize")
		return false
	}
	return true
}

// Close releases everything the session holds. It runs once per session; the
// server is notified in the background and a failed notification never
// blocks local teardown.
func (t *Transport) Close(s *Session) {
	s.teardown.Do(func() {
		if s.cancel != nil {
			s.cancel()
		}
		if s.conn != nil {
			if err := s.conn.Close(ports.CloseNormal, "session closed"); err != nil {
				t.logger.Debug().Err(err).Str("session", string(s.ID)).Msg("close socket")
			}
		}
		s.conn = nil
		s.connected = false
		s.state = domain.SessionClosed
		s.password = ""
		s.Terminal.Dispose()

		t.pending.Add(1)
		go func(id domain.SessionID) {
			defer t.pending.Done()

			ctx, cancel := context.WithTimeout(context.Background(), t.teardownTimeout)
			defer cancel()

			if err := t.api.DeleteSession(ctx, id); err != nil {
				t.logger.Warn().
					Err(fmt.Errorf("%w: %w", domain.ErrTeardownNotificationFailed, err)).
					Str("session", string(id)).
					Msg("notify server of teardown")
				return
			}
			t.logger.Info().Str("session", string(id)).Msg("session deleted")
		}(s.ID)
	})
}

// Wait blocks until outstanding teardown notifications finish or ctx ends.
func (t *Transport) Wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		t.pending.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func jsonOrNull(payload []byte) []byte {
	if json.Valid(payload) {
		return payload
	}
	return []byte("null")
}
