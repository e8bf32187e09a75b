package application

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/kmdb/kmdb-cli/internal/domain"
	"github.com/kmdb/kmdb-cli/internal/ports"
	"github.com/rs/zerolog"
)

var ErrMultiplexerStopped = errors.New("multiplexer stopped")

// SessionListRenderer formats the session list shown by the list key.
type SessionListRenderer func([]SessionInfo) string

type MultiplexerConfig struct {
	Transport *Transport
	Registry  *Registry
	Binding   *Binding
	Viewport  ports.Viewport
	Notifier  ports.Notifier
	History   *HistoryService
	Keymap    *Keymap
	Render    SessionListRenderer
	Logger    zerolog.Logger
}

// Multiplexer serializes every registry mutation, socket event, keystroke and
// resize on one goroutine. Public methods are safe to call from any
// goroutine.
type Multiplexer struct {
	transport *Transport
	registry  *Registry
	binding   *Binding
	viewport  ports.Viewport
	notifier  ports.Notifier
	history   *HistoryService
	keymap    *Keymap
	render    SessionListRenderer
	logger    zerolog.Logger

	events   chan func()
	closing  chan struct{}
	done     chan struct{}
	quit     chan struct{}
	quitOnce sync.Once
	idle     chan struct{}
	idleOnce sync.Once
	running  sync.Once
}

func NewMultiplexer(cfg MultiplexerConfig) *Multiplexer {
	render := cfg.Render
	if render == nil {
		render = PlainSessionList
	}
	keymap := cfg.Keymap
	if keymap == nil {
		keymap = NewKeymap(DefaultPrefixKey)
	}

	return &Multiplexer{
		transport: cfg.Transport,
		registry:  cfg.Registry,
		binding:   cfg.Binding,
		viewport:  cfg.Viewport,
		notifier:  cfg.Notifier,
		history:   cfg.History,
		keymap:    keymap,
		render:    render,
		logger:    cfg.Logger.With().Str("component", "multiplexer").Logger(),
		events:    make(chan func(), 64),
		closing:   make(chan struct{}),
		done:      make(chan struct{}),
		quit:      make(chan struct{}),
		idle:      make(chan struct{}),
	}
}

// Run processes events until ctx ends, Quit is called, or the last session
// goes away. Every remaining session is torn down before Run returns.
func (m *Multiplexer) Run(ctx context.Context) error {
	started := false
	m.running.Do(func() { started = true })
	if !started {
		return errors.New("multiplexer already running")
	}

	m.binding.Watch(ctx, func(geom domain.Geometry) {
		m.post(func() { m.handleResize(geom) })
	})

	defer close(m.done)
	for {
		select {
		case fn := <-m.events:
			fn()
		case <-ctx.Done():
			m.shutdown()
			return nil
		case <-m.quit:
			m.shutdown()
			return nil
		case <-m.idle:
			m.shutdown()
			return nil
		}
	}
}

// Done is closed once Run has returned.
func (m *Multiplexer) Done() <-chan struct{} {
	return m.done
}

func (m *Multiplexer) Quit() {
	m.quitOnce.Do(func() { close(m.quit) })
}

// Open connects a new session and registers it. The REST handshake runs on
// the caller's goroutine.
func (m *Multiplexer) Open(ctx context.Context, target domain.Target, activate bool) (SessionInfo, error) {
	var geom domain.Geometry
	if err := m.call(func() { geom = m.viewport.Size() }); err != nil {
		return SessionInfo{}, err
	}

	s, err := m.transport.Connect(ctx, target, geom)
	if err != nil {
		return SessionInfo{}, err
	}

	var info SessionInfo
	var addErr error
	err = m.call(func() {
		s.Index = m.registry.NextIndex(s.Asset.ID)
		if addErr = m.registry.Add(s, activate); addErr != nil {
			s.Terminal.Dispose()
			return
		}
		m.transport.Open(s, m)
		if m.registry.ActiveID() == s.ID {
			m.show(s, m.binding.Activate)
		}
		info = s.info(m.registry.ActiveID() == s.ID)
		m.logger.Info().Str("session", string(s.ID)).Str("label", s.Label()).Msg("session registered")
	})
	if err != nil {
		m.transport.Close(s)
		return SessionInfo{}, err
	}
	if addErr != nil {
		return SessionInfo{}, addErr
	}

	if m.history != nil {
		if err := m.history.Record(ctx, target); err != nil {
			m.logger.Warn().Err(err).Msg("record connection history")
		}
	}

	return info, nil
}

// Clone opens another session to the same asset with the same identity.
func (m *Multiplexer) Clone(ctx context.Context, id domain.SessionID) (SessionInfo, error) {
	var target domain.Target
	var found bool
	if err := m.call(func() {
		var s *Session
		if s, found = m.registry.Get(id); found {
			target = s.Target()
		}
	}); err != nil {
		return SessionInfo{}, err
	}
	if !found {
		return SessionInfo{}, fmt.Errorf("clone session %s: %w", id, domain.ErrSessionNotFound)
	}

	return m.Open(ctx, target, true)
}

func (m *Multiplexer) Activate(id domain.SessionID) error {
	var ok bool
	if err := m.call(func() { ok = m.activate(id) }); err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("activate session %s: %w", id, domain.ErrSessionNotFound)
	}
	return nil
}

// CloseSession tears a session down and hands the viewport to the next
// active session.
func (m *Multiplexer) CloseSession(id domain.SessionID) error {
	var ok bool
	if err := m.call(func() { ok = m.closeSession(id) }); err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("close session %s: %w", id, domain.ErrSessionNotFound)
	}
	return nil
}

// Input relays keystrokes to the focused session.
func (m *Multiplexer) Input(p []byte) {
	data := append([]byte(nil), p...)
	m.post(func() { m.relay(data) })
}

// HandleKeys routes a raw keyboard chunk through the prefix keymap.
func (m *Multiplexer) HandleKeys(ctx context.Context, chunk []byte) {
	for _, action := range m.keymap.Feed(chunk) {
		switch action.Kind {
		case KeyInput:
			m.Input(action.Data)
		case KeySwitch:
			position := action.Position
			m.post(func() { m.activatePosition(position) })
		case KeyNext:
			m.post(func() { m.cycle(1) })
		case KeyPrevious:
			m.post(func() { m.cycle(-1) })
		case KeyClose:
			m.post(func() {
				if active := m.registry.Active(); active != nil {
					m.closeSession(active.ID)
				}
			})
		case KeyList:
			m.post(m.showList)
		case KeyQuit:
			m.Quit()
		case KeyClone:
			go m.cloneActive(ctx)
		}
	}
}

func (m *Multiplexer) Sessions() ([]SessionInfo, error) {
	var infos []SessionInfo
	err := m.call(func() { infos = m.snapshot() })
	return infos, err
}

// Wait blocks until teardown notifications sent to the server settle.
func (m *Multiplexer) Wait(ctx context.Context) error {
	return m.transport.Wait(ctx)
}

func (m *Multiplexer) SocketOpened(s *Session, conn ports.Conn) {
	m.post(func() {
		if m.binding.Pending() == s.ID {
			s.Terminal.Fit(m.viewport.Size())
		}
		if !m.transport.HandleOpen(s, conn) {
			return
		}
		m.show(s, m.settle)
	})
}

func (m *Multiplexer) SocketFrame(s *Session, frame ports.Frame) {
	m.post(func() { m.transport.HandleFrame(s, frame) })
}

func (m *Multiplexer) SocketClosed(s *Session, err error) {
	m.post(func() {
		teardown, failure := m.transport.HandleClose(s, err)
		if teardown {
			m.closeSession(s.ID)
			return
		}
		if failure == nil {
			return
		}

		m.logger.Warn().Err(failure).Str("session", string(s.ID)).Msg("session failed")
		m.show(s, m.settle)
		if m.notifier != nil {
			m.notifier.Notify(ports.NoticeError, failure.Error())
		}
	})
}

func (m *Multiplexer) activate(id domain.SessionID) bool {
	if !m.registry.SetActive(id) {
		return false
	}
	s, _ := m.registry.Get(id)
	m.show(s, m.binding.Activate)
	return true
}

// show runs a binding change for s and pushes the terminal's size to the
// server when mounting refit it.
func (m *Multiplexer) show(s *Session, bind func(*Session)) {
	before := s.Terminal.Geometry()
	bind(s)
	if m.binding.Focused() != s {
		return
	}
	if after := s.Terminal.Geometry(); after != before {
		m.transport.Resize(s, after)
	}
}

func (m *Multiplexer) settle(s *Session) {
	m.binding.Settled(s)
}

func (m *Multiplexer) activatePosition(position int) {
	sessions := m.registry.Sessions()
	if position < 1 || position > len(sessions) {
		return
	}
	m.activate(sessions[position-1].ID)
}

func (m *Multiplexer) cycle(step int) {
	sessions := m.registry.Sessions()
	if len(sessions) == 0 {
		return
	}

	current := 0
	for i, s := range sessions {
		if s.ID == m.registry.ActiveID() {
			current = i
			break
		}
	}
	next := (current + step + len(sessions)) % len(sessions)
	m.activate(sessions[next].ID)
}

func (m *Multiplexer) closeSession(id domain.SessionID) bool {
	s, ok := m.registry.Get(id)
	if !ok {
		return false
	}

	if m.binding.Focused() == s || m.binding.Pending() == s.ID {
		m.binding.Detach()
	}
	m.transport.Close(s)

	_, wasActive := m.registry.Remove(id)
	m.logger.Info().Str("session", string(id)).Int("remaining", m.registry.Len()).Msg("session closed")

	if wasActive {
		if next := m.registry.Active(); next != nil {
			m.show(next, m.binding.Activate)
		}
	}
	if m.registry.Len() == 0 {
		m.viewport.Placeholder("no open sessions")
		m.idleOnce.Do(func() { close(m.idle) })
	}
	return true
}

func (m *Multiplexer) relay(p []byte) {
	s := m.binding.Focused()
	if s == nil {
		return
	}
	if !m.transport.Relay(s, p) {
		m.logger.Debug().Str("session", string(s.ID)).Int("bytes", len(p)).Msg("input dropped")
	}
}

func (m *Multiplexer) handleResize(geom domain.Geometry) {
	s := m.binding.Refit(geom)
	if s == nil {
		return
	}
	m.transport.Resize(s, s.Terminal.Geometry())
}

func (m *Multiplexer) showList() {
	if m.notifier == nil {
		return
	}
	m.notifier.Notify(ports.NoticeInfo, m.render(m.snapshot()))
}

func (m *Multiplexer) cloneActive(ctx context.Context) {
	var id domain.SessionID
	if err := m.call(func() { id = m.registry.ActiveID() }); err != nil || id == "" {
		return
	}

	if _, err := m.Clone(ctx, id); err != nil {
		m.logger.Warn().Err(err).Str("session", string(id)).Msg("clone session")
		if m.notifier != nil {
			m.notifier.Notify(ports.NoticeError, err.Error())
		}
	}
}

func (m *Multiplexer) snapshot() []SessionInfo {
	sessions := m.registry.Sessions()
	infos := make([]SessionInfo, 0, len(sessions))
	for _, s := range sessions {
		infos = append(infos, s.info(s.ID == m.registry.ActiveID()))
	}
	return infos
}

// shutdown tears down every session, the same as a page unload.
func (m *Multiplexer) shutdown() {
	close(m.closing)
	m.binding.Dispose()

	if m.binding.Focused() != nil || m.binding.Pending() != "" {
		m.binding.Detach()
	}
	for _, s := range m.registry.Sessions() {
		m.transport.Close(s)
		m.registry.Remove(s.ID)
	}
}

func (m *Multiplexer) post(fn func()) bool {
	select {
	case <-m.closing:
		return false
	default:
	}

	select {
	case m.events <- fn:
		return true
	case <-m.closing:
		return false
	}
}

func (m *Multiplexer) call(fn func()) error {
	result := make(chan struct{})
	if !m.post(func() {
		defer close(result)
		fn()
	}) {
		return ErrMultiplexerStopped
	}

	select {
	case <-result:
		return nil
	case <-m.done:
		select {
		case <-result:
			return nil
		default:
			return ErrMultiplexerStopped
		}
	}
}

// PlainSessionList is the default session list format.
func PlainSessionList(infos []SessionInfo) string {
	if len(infos) == 0 {
		return "no open sessions"
	}

	lines := make([]string, 0, len(infos))
	for i, info := range infos {
		marker := " "
		if info.Active {
			marker = "*"
		}
		lines = append(lines, fmt.Sprintf("%s %d %s [%s]", marker, i+1, info.Label, info.State))
	}
	return strings.Join(lines, "\r\n")
}
