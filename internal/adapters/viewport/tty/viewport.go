// Package tty binds the multiplexer to the local controlling terminal.
package tty

import (
	"context"
	"io"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/kmdb/kmdb-cli/internal/adapters/terminal"
	"github.com/kmdb/kmdb-cli/internal/domain"
	"github.com/kmdb/kmdb-cli/internal/ports"
	"github.com/rs/zerolog"
	"golang.org/x/term"
)

const (
	clearScreen = "\x1b[H\x1b[2J\x1b[3J"
	resetModes  = "\x1b[0m\x1b[?25h"
)

var (
	fallbackSize     = domain.Geometry{Cols: 80, Rows: 24}
	placeholderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Italic(true)
)

// Viewport is the single screen every session terminal is mounted into.
// All writes go through one lock so a notice never interleaves with
// session output.
type Viewport struct {
	out    io.Writer
	fd     int
	logger zerolog.Logger

	mu      sync.Mutex
	resizes chan domain.Geometry
}

var (
	_ ports.Viewport = (*Viewport)(nil)
	_ ports.Notifier = (*Viewport)(nil)
)

// New wraps out. fd is the descriptor queried for the window size; a
// descriptor that is not a terminal reports 80x24.
func New(out io.Writer, fd int, logger zerolog.Logger) *Viewport {
	return &Viewport{
		out:     out,
		fd:      fd,
		logger:  logger.With().Str("component", "viewport").Logger(),
		resizes: make(chan domain.Geometry, 8),
	}
}

func (v *Viewport) Clear() {
	v.write([]byte(resetModes + clearScreen))
}

func (v *Viewport) Output() io.Writer {
	return lockedWriter{v}
}

func (v *Viewport) Size() domain.Geometry {
	if !term.IsTerminal(v.fd) {
		return fallbackSize
	}
	cols, rows, err := term.GetSize(v.fd)
	if err != nil || cols <= 0 || rows <= 0 {
		return fallbackSize
	}
	return domain.Geometry{Cols: cols, Rows: rows}
}

func (v *Viewport) Placeholder(text string) {
	v.write([]byte(resetModes + clearScreen + placeholderStyle.Render(text) + "\r\n"))
}

// Notify prints a transient notice over whatever is mounted.
func (v *Viewport) Notify(level ports.NoticeLevel, text string) {
	v.write([]byte(terminal.RenderNotice(level, text)))
}

func (v *Viewport) Resizes() <-chan domain.Geometry {
	return v.resizes
}

// Watch forwards window size changes to Resizes until ctx ends.
func (v *Viewport) Watch(ctx context.Context) {
	signals, stop := notifyResize()
	go func() {
		defer stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-signals:
				v.resized(v.Size())
			}
		}
	}()
}

func (v *Viewport) resized(geom domain.Geometry) {
	select {
	case v.resizes <- geom:
	default:
		v.logger.Debug().Stringer("size", geom).Msg("resize dropped")
	}
}

func (v *Viewport) write(p []byte) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if _, err := v.out.Write(p); err != nil {
		v.logger.Debug().Err(err).Msg("write viewport")
	}
}

type lockedWriter struct {
	v *Viewport
}

func (w lockedWriter) Write(p []byte) (int, error) {
	w.v.mu.Lock()
	defer w.v.mu.Unlock()
	return w.v.out.Write(p)
}

// MakeRaw puts fd into raw mode. The returned func restores it and is a
// no-op when fd is not a terminal.
func MakeRaw(fd int) (func(), error) {
	if !term.IsTerminal(fd) {
		return func() {}, nil
	}
	state, err := term.MakeRaw(fd)
	if err != nil {
		return nil, err
	}
	return func() { _ = term.Restore(fd, state) }, nil
}
