package application

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/kmdb/kmdb-cli/internal/domain"
	"github.com/kmdb/kmdb-cli/internal/ports"
	"github.com/rs/zerolog"
)

const defaultResizeDebounce = 150 * time.Millisecond

// Binding keeps exactly the active session's terminal mounted in the shared
// viewport. Mount and detach run on the multiplexer loop; the resize watcher
// runs on its own goroutine.
type Binding struct {
	viewport ports.Viewport
	debounce time.Duration
	logger   zerolog.Logger

	mounted *Session
	pending domain.SessionID

	stopOnce sync.Once
	stop     context.CancelFunc
	stopped  chan struct{}
}

func NewBinding(viewport ports.Viewport, debounce time.Duration, logger zerolog.Logger) *Binding {
	if debounce <= 0 {
		debounce = defaultResizeDebounce
	}

	return &Binding{
		viewport: viewport,
		debounce: debounce,
		logger:   logger.With().Str("component", "binding").Logger(),
	}
}

// Activate mounts the session's terminal in place of whatever is shown. A
// session still connecting is not mounted: a placeholder is shown and the
// mount happens once its socket settles.
func (b *Binding) Activate(s *Session) {
	b.Detach()
	if s == nil {
		return
	}

	if s.State() == domain.SessionConnecting {
		b.pending = s.ID
		b.viewport.Placeholder(fmt.Sprintf("connecting to %s ...", s.Label()))
		return
	}

	b.viewport.Clear()
	s.Terminal.Fit(b.viewport.Size())
	s.Terminal.Attach(b.viewport.Output())
	b.mounted = s
	b.logger.Debug().Str("session", string(s.ID)).Msg("mounted")
}

// Detach clears the viewport and drops keyboard focus.
func (b *Binding) Detach() {
	if b.mounted != nil {
		b.mounted.Terminal.Detach()
		b.mounted = nil
	}
	b.pending = ""
	b.viewport.Clear()
}

// Settled mounts a session whose activation was deferred while it connected.
func (b *Binding) Settled(s *Session) bool {
	if b.pending == "" || b.pending != s.ID {
		return false
	}
	b.Activate(s)
	return true
}

// Focused is the session that receives keyboard input.
func (b *Binding) Focused() *Session {
	return b.mounted
}

func (b *Binding) Pending() domain.SessionID {
	return b.pending
}

// Refit fits only the mounted terminal to geom and returns it. Inactive
// terminals are left untouched.
func (b *Binding) Refit(geom domain.Geometry) *Session {
	if b.mounted == nil || !geom.Valid() {
		return nil
	}
	b.mounted.Terminal.Fit(geom)
	return b.mounted
}

// Watch subscribes to viewport resizes and calls emit with the last size of
// each burst once the debounce window has passed.
func (b *Binding) Watch(ctx context.Context, emit func(domain.Geometry)) {
	ctx, cancel := context.WithCancel(ctx)
	b.stop = cancel
	b.stopped = make(chan struct{})

	go func() {
		defer close(b.stopped)
		b.watch(ctx, b.viewport.Resizes(), emit)
	}()
}

func (b *Binding) watch(ctx context.Context, resizes <-chan domain.Geometry, emit func(domain.Geometry)) {
	var timer *time.Timer
	var fire <-chan time.Time
	var last domain.Geometry

	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case geom, ok := <-resizes:
			if !ok {
				return
			}
			last = geom
			if timer == nil {
				timer = time.NewTimer(b.debounce)
			} else {
				timer.Reset(b.debounce)
			}
			fire = timer.C
		case <-fire:
			fire = nil
			emit(last)
		}
	}
}

// Dispose stops the resize subscription.
func (b *Binding) Dispose() {
	b.stopOnce.Do(func() {
		if b.stop == nil {
			return
		}
		b.stop()
		<-b.stopped
	})
}
