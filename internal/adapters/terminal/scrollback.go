package terminal

import "sync"

const defaultScrollbackSize = 1024 * 1024

// Scrollback keeps the most recent terminal output for replay when a
// session is mounted again. Older bytes are trimmed from the front.
type Scrollback struct {
	mu     sync.Mutex
	data   []byte
	maxLen int
}

func NewScrollback(maxLen int) *Scrollback {
	if maxLen <= 0 {
		maxLen = defaultScrollbackSize
	}
	return &Scrollback{maxLen: maxLen}
}

func (s *Scrollback) Write(p []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data = append(s.data, p...)
	if len(s.data) > s.maxLen {
		trimmed := make([]byte, s.maxLen)
		copy(trimmed, s.data[len(s.data)-s.maxLen:])
		s.data = trimmed
	}
}

func (s *Scrollback) Snapshot() []byte {
	s.mu.Lock()
	defer s.mu.Unlock()

	result := make([]byte, len(s.data))
	copy(result, s.data)
	return result
}

func (s *Scrollback) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.data)
}

func (s *Scrollback) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = nil
}
