package terminal

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/kmdb/kmdb-cli/internal/domain"
	"github.com/kmdb/kmdb-cli/internal/ports"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScrollbackTrimsFromFront(t *testing.T) {
	t.Parallel()

	sb := NewScrollback(8)
	sb.Write([]byte("abcdef"))
	sb.Write([]byte("ghij"))

	assert.Equal(t, "cdefghij", string(sb.Snapshot()))
	assert.Equal(t, 8, sb.Len())

	sb.Reset()
	assert.Zero(t, sb.Len())
}

func TestScrollbackDefaultSize(t *testing.T) {
	t.Parallel()

	assert.Equal(t, defaultScrollbackSize, NewScrollback(0).maxLen)
}

func TestDetachedTerminalBuffersUntilAttached(t *testing.T) {
	t.Parallel()

	term := New("srv-1 #1", 0, nil, zerolog.Nop())
	_, err := term.Write([]byte("motd\r\n"))
	require.NoError(t, err)

	var screen bytes.Buffer
	term.Attach(&screen)
	assert.Equal(t, "motd\r\n", screen.String())

	_, err = term.Write([]byte("$ "))
	require.NoError(t, err)
	assert.Equal(t, "motd\r\n$ ", screen.String())

	term.Detach()
	_, err = term.Write([]byte("ls\r\n"))
	require.NoError(t, err)
	assert.Equal(t, "motd\r\n$ ", screen.String())

	var second bytes.Buffer
	term.Attach(&second)
	assert.Equal(t, "motd\r\n$ ls\r\n", second.String())
}

func TestNoticeIsReplayedOnReattach(t *testing.T) {
	t.Parallel()

	term := New("srv-1 #1", 0, nil, zerolog.Nop())
	term.Notice(ports.NoticeError, "connection lost")

	var screen bytes.Buffer
	term.Attach(&screen)
	assert.Contains(t, screen.String(), "[kmdb] connection lost")
	assert.True(t, strings.HasPrefix(screen.String(), "\r\n"))
}

func TestFitIgnoresDegenerateGeometry(t *testing.T) {
	t.Parallel()

	term := New("srv-1 #1", 0, nil, zerolog.Nop())
	term.Fit(domain.Geometry{Cols: 100, Rows: 30})
	term.Fit(domain.Geometry{Cols: 0, Rows: 30})

	assert.Equal(t, domain.Geometry{Cols: 100, Rows: 30}, term.Geometry())
}

func TestDisposeReleasesTerminal(t *testing.T) {
	t.Parallel()

	term := New("srv-1 #1", 0, nil, zerolog.Nop())
	var screen bytes.Buffer
	term.Attach(&screen)
	_, _ = term.Write([]byte("before"))

	term.Dispose()
	term.Dispose()
	assert.True(t, term.Disposed())

	_, err := term.Write([]byte("after"))
	assert.ErrorIs(t, err, ErrDisposed)
	term.Notice(ports.NoticeInfo, "ignored")
	term.Attach(&screen)
	assert.Equal(t, "before", screen.String())
}

func TestFactoryRecordsWhenDirectoryConfigured(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	factory := &Factory{RecordDir: dir, Logger: zerolog.Nop()}

	created, err := factory.NewTerminal("srv-1 #1")
	require.NoError(t, err)

	created.Fit(domain.Geometry{Cols: 90, Rows: 20})
	_, err = created.Write([]byte("hello"))
	require.NoError(t, err)
	created.RecordInput([]byte("exit\r"))
	created.Dispose()

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)

	data, err := os.ReadFile(filepath.Join(dir, entries[0].Name()))
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], `"width":90`)
	assert.Contains(t, lines[1], `"o","hello"`)
	assert.Contains(t, lines[2], `"i","exit\r"`)
}

func TestFactoryWithoutRecordDirDoesNotRecord(t *testing.T) {
	t.Parallel()

	factory := &Factory{Logger: zerolog.Nop()}
	created, err := factory.NewTerminal("srv-1 #1")
	require.NoError(t, err)

	term, ok := created.(*Terminal)
	require.True(t, ok)
	assert.Nil(t, term.cast)
	assert.Equal(t, "srv-1 #1", term.Label())
}
