package websocket

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/coder/websocket"
	"github.com/kmdb/kmdb-cli/internal/ports"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type serverMessage struct {
	typ  websocket.MessageType
	data []byte
}

// startServer runs handler for the single accepted socket.
func startServer(t *testing.T, handler func(ctx context.Context, conn *websocket.Conn)) string {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := websocket.Accept(w, r, nil)
		if err != nil {
			return
		}
		defer conn.CloseNow()
		handler(r.Context(), conn)
	}))
	t.Cleanup(server.Close)

	return "ws" + strings.TrimPrefix(server.URL, "http")
}

func dial(t *testing.T, url string) *Conn {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	dialer := &Dialer{Logger: zerolog.Nop()}
	conn, err := dialer.Dial(ctx, url)
	require.NoError(t, err)
	return conn.(*Conn)
}

func TestSendFramesArriveInOrderWithTypeByte(t *testing.T) {
	t.Parallel()

	received := make(chan serverMessage, 3)
	url := startServer(t, func(ctx context.Context, conn *websocket.Conn) {
		for i := 0; i < 3; i++ {
			typ, data, err := conn.Read(ctx)
			if err != nil {
				return
			}
			received <- serverMessage{typ: typ, data: data}
		}
		_ = conn.Close(websocket.StatusNormalClosure, "")
	})

	conn := dial(t, url)
	defer conn.Close(ports.CloseNormal, "")

	require.NoError(t, conn.Send(ports.Frame{Kind: ports.FrameData, Payload: []byte("ls\r")}))
	require.NoError(t, conn.Send(ports.Frame{Kind: ports.FrameControl, Payload: []byte(`{"type":"resize","cols":80,"rows":24}`)}))
	require.NoError(t, conn.Send(ports.Frame{Kind: ports.FrameData, Payload: []byte("pwd\r")}))

	want := []string{"\x01ls\r", "\x02{\"type\":\"resize\",\"cols\":80,\"rows\":24}", "\x01pwd\r"}
	for _, expected := range want {
		select {
		case msg := <-received:
			assert.Equal(t, websocket.MessageBinary, msg.typ)
			assert.Equal(t, expected, string(msg.data))
		case <-time.After(5 * time.Second):
			t.Fatal("timed out waiting for frame")
		}
	}
}

func TestReceiveDecodesTypedAndTextMessages(t *testing.T) {
	t.Parallel()

	url := startServer(t, func(ctx context.Context, conn *websocket.Conn) {
		_ = conn.Write(ctx, websocket.MessageBinary, append([]byte{byte(ports.FrameData)}, "hello"...))
		_ = conn.Write(ctx, websocket.MessageBinary, []byte{})
		_ = conn.Write(ctx, websocket.MessageText, []byte("plain text"))
		_ = conn.Write(ctx, websocket.MessageBinary, append([]byte{byte(ports.FrameControl)}, `{"type":"ping"}`...))
		_ = conn.Write(ctx, websocket.MessageBinary, []byte("raw"))
		_ = conn.Close(websocket.StatusNormalClosure, "shell exited")
	})

	conn := dial(t, url)
	defer conn.Close(ports.CloseNormal, "")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	want := []ports.Frame{
		{Kind: ports.FrameData, Payload: []byte("hello")},
		{Kind: ports.FrameData, Payload: []byte("plain text")},
		{Kind: ports.FrameControl, Payload: []byte(`{"type":"ping"}`)},
		{Kind: ports.FrameData, Payload: []byte("raw")},
	}
	for _, expected := range want {
		frame, err := conn.Receive(ctx)
		require.NoError(t, err)
		assert.Equal(t, expected, frame)
	}

	_, err := conn.Receive(ctx)
	var closeErr *ports.CloseError
	require.True(t, errors.As(err, &closeErr), "got %v", err)
	assert.Equal(t, ports.CloseNormal, closeErr.Code)
	assert.Equal(t, "shell exited", closeErr.Reason)
	assert.True(t, closeErr.Normal())
}

func TestReceiveReportsAbnormalClose(t *testing.T) {
	t.Parallel()

	url := startServer(t, func(_ context.Context, conn *websocket.Conn) {
		_ = conn.Close(websocket.StatusInternalError, "ssh upstream failed")
	})

	conn := dial(t, url)
	defer conn.Close(ports.CloseNormal, "")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err := conn.Receive(ctx)
	var closeErr *ports.CloseError
	require.True(t, errors.As(err, &closeErr), "got %v", err)
	assert.Equal(t, int(websocket.StatusInternalError), closeErr.Code)
	assert.False(t, closeErr.Normal())
}

func TestCloseSendsStatusToServer(t *testing.T) {
	t.Parallel()

	status := make(chan websocket.StatusCode, 1)
	url := startServer(t, func(ctx context.Context, conn *websocket.Conn) {
		_, _, err := conn.Read(ctx)
		status <- websocket.CloseStatus(err)
	})

	conn := dial(t, url)
	require.NoError(t, conn.Close(ports.CloseNormal, "tab closed"))
	require.NoError(t, conn.Close(ports.CloseNormal, "tab closed"))

	select {
	case got := <-status:
		assert.Equal(t, websocket.StatusNormalClosure, got)
	case <-time.After(5 * time.Second):
		t.Fatal("server never saw the close frame")
	}

	assert.ErrorIs(t, conn.Send(ports.Frame{Kind: ports.FrameData, Payload: []byte("x")}), ErrConnClosed)
}

func TestDialFailsForNonSocketEndpoint(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "not found", http.StatusNotFound)
	}))
	t.Cleanup(server.Close)

	dialer := &Dialer{}
	_, err := dialer.Dial(context.Background(), "ws"+strings.TrimPrefix(server.URL, "http"))
	require.Error(t, err)
	assert.ErrorContains(t, err, "dial terminal socket")
}
