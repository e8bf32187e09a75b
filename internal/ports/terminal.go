package ports

import (
	"io"

	"github.com/kmdb/kmdb-cli/internal/domain"
)

type NoticeLevel int

const (
	NoticeInfo NoticeLevel = iota
	NoticeWarning
	NoticeError
)

// Terminal is a per-session virtual terminal. It buffers output while
// detached and replays it when attached to a viewport.
type Terminal interface {
	Write(p []byte) (int, error)
	// RecordInput observes keystrokes relayed to the remote shell.
	RecordInput(p []byte)
	Notice(level NoticeLevel, text string)
	Attach(out io.Writer)
	Detach()
	Fit(geom domain.Geometry)
	Geometry() domain.Geometry
	Dispose()
	Disposed() bool
}

type TerminalFactory interface {
	NewTerminal(label string) (Terminal, error)
}

// Viewport is the single shared display surface all sessions take turns on.
type Viewport interface {
	Clear()
	Output() io.Writer
	Size() domain.Geometry
	Placeholder(text string)
	Resizes() <-chan domain.Geometry
}

// Notifier shows transient messages outside any session's terminal.
type Notifier interface {
	Notify(level NoticeLevel, text string)
}
