package recording

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/kmdb/kmdb-cli/internal/domain"
	"github.com/kmdb/kmdb-cli/internal/ports"
)

const (
	recordDirMode  = 0o700
	recordFileMode = 0o600
)

var ErrClosed = errors.New("recording is closed")

type castHeader struct {
	Version   int               `json:"version"`
	Width     int               `json:"width"`
	Height    int               `json:"height"`
	Timestamp int64             `json:"timestamp"`
	Title     string            `json:"title,omitempty"`
	Env       map[string]string `json:"env,omitempty"`
}

// Cast writes an asciinema v2 recording. The header is written with the
// first event so that it carries the fitted geometry.
type Cast struct {
	mu      sync.Mutex
	out     io.WriteCloser
	clock   ports.Clock
	header  castHeader
	started time.Time
	written bool
	closed  bool
}

func NewCast(out io.WriteCloser, title string, clock ports.Clock) *Cast {
	if clock == nil {
		clock = ports.SystemClock{}
	}

	now := clock.Now()
	return &Cast{
		out:   out,
		clock: clock,
		header: castHeader{
			Version:   2,
			Width:     80,
			Height:    24,
			Timestamp: now.Unix(),
			Title:     title,
			Env:       map[string]string{"TERM": "xterm-256color"},
		},
		started: now,
	}
}

// Create opens a new cast file in dir named after the session title.
func Create(dir string, title string, clock ports.Clock) (*Cast, string, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, "", errors.New("recording directory is empty")
	}
	if err := os.MkdirAll(dir, recordDirMode); err != nil {
		return nil, "", fmt.Errorf("create recording directory: %w", err)
	}
	if clock == nil {
		clock = ports.SystemClock{}
	}

	name := fmt.Sprintf("%s-%s-%s.cast", clock.Now().UTC().Format("20060102T150405Z"), sanitize(title), uuid.NewString()[:8])
	path := filepath.Join(dir, name)

	file, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, recordFileMode)
	if err != nil {
		return nil, "", fmt.Errorf("create recording file: %w", err)
	}

	return NewCast(file, title, clock), path, nil
}

func (c *Cast) Resize(geom domain.Geometry) error {
	if !geom.Valid() {
		return nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return ErrClosed
	}
	if !c.written {
		c.header.Width = geom.Cols
		c.header.Height = geom.Rows
		return nil
	}

	return c.writeEventLocked("r", geom.String())
}

func (c *Cast) Output(p []byte) error {
	return c.event("o", p)
}

func (c *Cast) Input(p []byte) error {
	return c.event("i", p)
}

func (c *Cast) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil
	}
	c.closed = true

	return c.out.Close()
}

func (c *Cast) event(kind string, p []byte) error {
	if len(p) == 0 {
		return nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return ErrClosed
	}

	return c.writeEventLocked(kind, string(p))
}

func (c *Cast) writeEventLocked(kind string, data string) error {
	if !c.written {
		header, err := json.Marshal(c.header)
		if err != nil {
			return fmt.Errorf("encode recording header: %w", err)
		}
		if _, err := c.out.Write(append(header, '\n')); err != nil {
			return fmt.Errorf("write recording header: %w", err)
		}
		c.written = true
	}

	elapsed := c.clock.Now().Sub(c.started).Seconds()
	elapsed = math.Round(elapsed*1e6) / 1e6

	line, err := json.Marshal([]any{elapsed, kind, data})
	if err != nil {
		return fmt.Errorf("encode recording event: %w", err)
	}
	if _, err := c.out.Write(append(line, '\n')); err != nil {
		return fmt.Errorf("write recording event: %w", err)
	}

	return nil
}

func sanitize(value string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		default:
			return '_'
		}
	}, value)
}
