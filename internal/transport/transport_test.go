package transport

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestLoopback(t *testing.T) {
	l := NewLoopback()
	_, err := l.ReadByte()
	assert.ErrorIs(t, err, ErrNoData)

	l.Feed('a', 'b')
	assert.Equal(t, 2, l.Buffered())
	b, err := l.ReadByte()
	require.NoError(t, err)
	assert.EqualValues(t, 'a', b)

	require.NoError(t, l.WriteByte(7))
	assert.Equal(t, []byte{7}, l.Written())
	l.Reset()
	assert.Empty(t, l.Written())

	require.NoError(t, l.Close())
	assert.ErrorIs(t, l.WriteByte(1), ErrClosed)
	_, _ = l.ReadByte()
	_, err = l.ReadByte()
	assert.ErrorIs(t, err, ErrClosed)
}

func TestStreamPumpsWithoutBlocking(t *testing.T) {
	defer goleak.VerifyNone(t)

	pr, pw := io.Pipe()
	var out strings.Builder
	s := NewStream("pipe", pr, &out, pr, 8)

	_, err := s.ReadByte()
	assert.ErrorIs(t, err, ErrNoData)

	go func() { _, _ = pw.Write([]byte("10x")) }()
	require.Eventually(t, func() bool { return s.Buffered() == 3 }, time.Second, time.Millisecond)

	var got []byte
	for s.Buffered() > 0 {
		b, err := s.ReadByte()
		require.NoError(t, err)
		got = append(got, b)
	}
	assert.Equal(t, []byte("10x"), got)

	require.NoError(t, s.WriteByte('k'))
	assert.Equal(t, "k", out.String())

	require.NoError(t, s.Close())
	assert.ErrorIs(t, s.WriteByte('k'), ErrClosed)
	_, err = s.ReadByte()
	assert.ErrorIs(t, err, ErrClosed)
	_ = pw.Close()
}

func TestStreamEndOfInput(t *testing.T) {
	defer goleak.VerifyNone(t)

	s := NewStream("text", strings.NewReader("1"), io.Discard, nil, 0)
	require.Eventually(t, func() bool { return s.Err() != nil }, time.Second, time.Millisecond)
	assert.ErrorIs(t, s.Err(), io.EOF)
	b, err := s.ReadByte()
	require.NoError(t, err)
	assert.EqualValues(t, '1', b)
	require.NoError(t, s.Close())
}

func TestWebSocketRoundTrip(t *testing.T) {
	defer goleak.VerifyNone(t)

	link := NewWebSocket(16)
	srv := httptest.NewServer(link)
	defer srv.Close()

	assert.ErrorIs(t, link.WriteByte(1), ErrNoPeer)

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	peer, _, err := websocket.DefaultDialer.DialContext(context.Background(), url, nil)
	require.NoError(t, err)
	defer peer.Close()

	require.NoError(t, peer.WriteMessage(websocket.BinaryMessage, []byte{'1', 0x42}))
	require.Eventually(t, func() bool { return link.Buffered() == 2 }, time.Second, time.Millisecond)

	b, err := link.ReadByte()
	require.NoError(t, err)
	assert.EqualValues(t, '1', b)

	require.Eventually(t, link.Connected, time.Second, time.Millisecond)
	require.NoError(t, link.WriteByte(0))
	_ = peer.SetReadDeadline(time.Now().Add(time.Second))
	_, msg, err := peer.ReadMessage()
	require.NoError(t, err)
	assert.Equal(t, []byte{0}, msg)

	require.NoError(t, link.Close())
	assert.ErrorIs(t, link.WriteByte(0), ErrClosed)
}

func TestDialWebSocket(t *testing.T) {
	defer goleak.VerifyNone(t)

	server := NewWebSocket(16)
	srv := httptest.NewServer(server)
	defer srv.Close()
	defer server.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	client, err := DialWebSocket(context.Background(), url, 16)
	require.NoError(t, err)
	defer client.Close()

	require.Eventually(t, server.Connected, time.Second, time.Millisecond)
	require.NoError(t, client.WriteByte('0'))
	require.Eventually(t, func() bool { return server.Buffered() == 1 }, time.Second, time.Millisecond)
}

func TestWebSocketRefusesPeerAfterClose(t *testing.T) {
	defer goleak.VerifyNone(t)

	link := NewWebSocket(16)
	require.NoError(t, link.Close())

	// the upgrade has already happened when the link closes
	peers := make(chan *websocket.Conn, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		up := websocket.Upgrader{}
		conn, err := up.Upgrade(w, r, nil)
		if err == nil {
			peers <- conn
		}
	}))
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	client, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer client.Close()

	assert.False(t, link.attach(<-peers))
	assert.False(t, link.Connected())

	_ = client.SetReadDeadline(time.Now().Add(time.Second))
	_, _, err = client.ReadMessage()
	assert.Error(t, err, "refused conn is closed")
	require.NoError(t, link.Close())
}
