package network

import (
	"bufio"
	"context"
	"errors"
	"io"
	"net"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/vt-tetris/terminal"
)

func startTransport(t *testing.T, kind Kind, maxPending int) *Transport {
	t.Helper()
	cfg := DefaultConfig()
	cfg.Kind = kind
	cfg.Address = "127.0.0.1:0"
	cfg.MaxPending = maxPending
	tr := NewTransport(cfg)
	require.NoError(t, tr.Start())
	t.Cleanup(func() { tr.Stop() })
	return tr
}

func acceptSoon(t *testing.T, tr *Transport) *Session {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	s, err := tr.Accept(ctx)
	require.NoError(t, err)
	return s
}

func readOnce(t *testing.T, b terminal.Backend) []byte {
	t.Helper()
	stop := make(chan struct{})
	timer := time.AfterFunc(2*time.Second, func() { close(stop) })
	defer timer.Stop()
	data, err := b.Read(stop)
	require.NoError(t, err)
	return data
}

func TestTCPSessionRoundTrip(t *testing.T) {
	tr := startTransport(t, KindTCP, 1)

	client, err := net.Dial("tcp", tr.Addr().String())
	require.NoError(t, err)
	defer client.Close()

	s := acceptSoon(t, tr)
	assert.Equal(t, uint32(1), s.ID)
	require.NoError(t, s.Backend.Init())
	defer s.Backend.Fini()

	_, err = client.Write([]byte("\x1b[C"))
	require.NoError(t, err)
	assert.Equal(t, []byte("\x1b[C"), readOnce(t, s.Backend))

	require.NoError(t, s.Backend.Write([]byte("\x1b[2J")))
	client.SetReadDeadline(time.Now().Add(2 * time.Second))
	buf := make([]byte, 4)
	_, err = io.ReadFull(client, buf)
	require.NoError(t, err)
	assert.Equal(t, "\x1b[2J", string(buf))
}

func TestTCPClientHangupReadsEOF(t *testing.T) {
	tr := startTransport(t, KindTCP, 1)

	client, err := net.Dial("tcp", tr.Addr().String())
	require.NoError(t, err)

	s := acceptSoon(t, tr)
	require.NoError(t, s.Backend.Init())
	defer s.Backend.Fini()

	client.Close()
	_, err = s.Backend.Read(make(chan struct{}))
	assert.ErrorIs(t, err, io.EOF)
}

func TestTCPBusyWhenQueueFull(t *testing.T) {
	tr := startTransport(t, KindTCP, 1)

	first, err := net.Dial("tcp", tr.Addr().String())
	require.NoError(t, err)
	defer first.Close()

	// Let the first connection reach the queue before the second arrives
	require.Eventually(t, func() bool { return len(tr.pending) == 1 }, 2*time.Second, 10*time.Millisecond)

	second, err := net.Dial("tcp", tr.Addr().String())
	require.NoError(t, err)
	defer second.Close()

	second.SetReadDeadline(time.Now().Add(2 * time.Second))
	line, err := io.ReadAll(bufio.NewReader(second))
	require.NoError(t, err)
	assert.Equal(t, busyMessage, string(line))
}

func TestWebSocketSession(t *testing.T) {
	tr := startTransport(t, KindWebSocket, 1)

	client, _, err := websocket.DefaultDialer.Dial("ws://"+tr.Addr().String()+"/", nil)
	require.NoError(t, err)
	defer client.Close()

	s := acceptSoon(t, tr)
	require.NoError(t, s.Backend.Init())

	require.NoError(t, client.WriteMessage(websocket.TextMessage, []byte("W")))
	assert.Equal(t, []byte("W"), readOnce(t, s.Backend))

	require.NoError(t, s.Backend.Write([]byte("\x1b[H")))
	client.SetReadDeadline(time.Now().Add(2 * time.Second))
	mt, data, err := client.ReadMessage()
	require.NoError(t, err)
	assert.Equal(t, websocket.BinaryMessage, mt)
	assert.Equal(t, "\x1b[H", string(data))

	s.Backend.Fini()
	_, _, err = client.ReadMessage()
	assert.True(t, websocket.IsCloseError(err, websocket.CloseNormalClosure), "got %v", err)
}

func TestWebSocketClientCloseReadsEOF(t *testing.T) {
	tr := startTransport(t, KindWebSocket, 1)

	client, _, err := websocket.DefaultDialer.Dial("ws://"+tr.Addr().String()+"/", nil)
	require.NoError(t, err)

	s := acceptSoon(t, tr)
	require.NoError(t, s.Backend.Init())
	defer s.Backend.Fini()

	msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
	require.NoError(t, client.WriteControl(websocket.CloseMessage, msg, time.Now().Add(time.Second)))

	_, err = s.Backend.Read(make(chan struct{}))
	assert.ErrorIs(t, err, io.EOF)
	client.Close()
}

func TestAcceptStopAndCancel(t *testing.T) {
	tr := startTransport(t, KindTCP, 1)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := tr.Accept(ctx)
	assert.ErrorIs(t, err, context.Canceled)

	require.NoError(t, tr.Stop())
	assert.False(t, tr.IsRunning())
	_, err = tr.Accept(context.Background())
	assert.True(t, errors.Is(err, ErrStopped))

	// Second stop is a no-op
	assert.NoError(t, tr.Stop())
}

func TestStartBindError(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()

	cfg := DefaultConfig()
	cfg.Address = ln.Addr().String()
	tr := NewTransport(cfg)
	assert.Error(t, tr.Start())
	assert.False(t, tr.IsRunning())
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "tcp", KindTCP.String())
	assert.Equal(t, "ws", KindWebSocket.String())
}
