package terminal

import (
	"errors"
	"io"
	"sync"

	"github.com/kmdb/kmdb-cli/internal/adapters/recording"
	"github.com/kmdb/kmdb-cli/internal/domain"
	"github.com/kmdb/kmdb-cli/internal/ports"
	"github.com/rs/zerolog"
)

var ErrDisposed = errors.New("terminal is disposed")

// Terminal is the virtual terminal of one session. Output always lands in
// the scrollback and is forwarded to the viewport only while attached.
type Terminal struct {
	label  string
	logger zerolog.Logger

	mu         sync.Mutex
	scrollback *Scrollback
	out        io.Writer
	geometry   domain.Geometry
	cast       *recording.Cast
	disposed   bool
}

var _ ports.Terminal = (*Terminal)(nil)

func New(label string, scrollbackBytes int, cast *recording.Cast, logger zerolog.Logger) *Terminal {
	return &Terminal{
		label:      label,
		logger:     logger,
		scrollback: NewScrollback(scrollbackBytes),
		cast:       cast,
	}
}

func (t *Terminal) Write(p []byte) (int, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.disposed {
		return 0, ErrDisposed
	}

	t.scrollback.Write(p)
	if t.cast != nil {
		if err := t.cast.Output(p); err != nil {
			t.logger.Warn().Err(err).Msg("record terminal output")
		}
	}
	if t.out == nil {
		return len(p), nil
	}

	return t.out.Write(p)
}

func (t *Terminal) RecordInput(p []byte) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.disposed || t.cast == nil {
		return
	}
	if err := t.cast.Input(p); err != nil {
		t.logger.Warn().Err(err).Msg("record terminal input")
	}
}

// Notice writes a banner into the session's own output so that it survives
// tab switches. Notices are not recorded.
func (t *Terminal) Notice(level ports.NoticeLevel, text string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.disposed {
		return
	}

	banner := []byte(RenderNotice(level, text))
	t.scrollback.Write(banner)
	if t.out != nil {
		_, _ = t.out.Write(banner)
	}
}

// Attach binds the terminal to a display and replays its scrollback.
func (t *Terminal) Attach(out io.Writer) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.disposed || out == nil {
		return
	}

	t.out = out
	if snapshot := t.scrollback.Snapshot(); len(snapshot) > 0 {
		if _, err := out.Write(snapshot); err != nil {
			t.logger.Debug().Err(err).Msg("replay scrollback")
		}
	}
}

func (t *Terminal) Detach() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.out = nil
}

func (t *Terminal) Fit(geom domain.Geometry) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.disposed || !geom.Valid() || geom == t.geometry {
		return
	}

	t.geometry = geom
	if t.cast != nil {
		if err := t.cast.Resize(geom); err != nil {
			t.logger.Warn().Err(err).Msg("record terminal resize")
		}
	}
}

func (t *Terminal) Geometry() domain.Geometry {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.geometry
}

func (t *Terminal) Dispose() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.disposed {
		return
	}
	t.disposed = true
	t.out = nil
	t.scrollback.Reset()

	if t.cast != nil {
		if err := t.cast.Close(); err != nil {
			t.logger.Warn().Err(err).Msg("close terminal recording")
		}
	}
}

func (t *Terminal) Disposed() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.disposed
}

func (t *Terminal) Label() string {
	return t.label
}
