package transport

import (
	"net"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/palemoky/mine-sweeper/internal/game/board"
	"github.com/palemoky/mine-sweeper/internal/network/protocol"
	"github.com/palemoky/mine-sweeper/internal/network/protocol/codec"
)

func TestNetwork(t *testing.T) {
	t.Parallel()

	n, err := Network(IPv4)
	require.NoError(t, err)
	assert.Equal(t, "tcp4", n)

	n, err = Network(IPv6)
	require.NoError(t, err)
	assert.Equal(t, "tcp6", n)

	_, err = Network("v5")
	assert.Error(t, err)
}

func TestBindAddr(t *testing.T) {
	t.Parallel()

	addr, err := BindAddr(IPv4, 51511)
	require.NoError(t, err)
	assert.Equal(t, "0.0.0.0:51511", addr)

	addr, err = BindAddr(IPv6, 51511)
	require.NoError(t, err)
	assert.Equal(t, "[::]:51511", addr)

	_, err = BindAddr("ipx", 1)
	assert.Error(t, err)
}

func TestListen_UnknownTransport(t *testing.T) {
	t.Parallel()

	_, err := Listen("carrier-pigeon", IPv4, 0)
	assert.Error(t, err)
}

func TestConn_PipeRoundTrip(t *testing.T) {
	t.Parallel()

	a, b := net.Pipe()
	client, server := NewConn(a), NewConn(b)
	defer client.Close()
	defer server.Close()

	go func() {
		_ = client.WriteAction(protocol.NewCellAction(protocol.ActionReveal, 1, 2))
	}()

	got, err := server.ReadAction()
	require.NoError(t, err)
	assert.Equal(t, protocol.NewCellAction(protocol.ActionReveal, 1, 2), got)
}

func TestConn_ClosedPeerIsConnectionLost(t *testing.T) {
	t.Parallel()

	a, b := net.Pipe()
	server := NewConn(b)
	_ = a.Close()

	_, err := server.ReadAction()
	assert.ErrorIs(t, err, ErrConnectionLost)
}

func TestConn_PartialFrameIsConnectionLost(t *testing.T) {
	t.Parallel()

	a, b := net.Pipe()
	server := NewConn(b)

	go func() {
		data := codec.Encode(protocol.NewAction(protocol.ActionStart))
		_, _ = a.Write(data[:20])
		_ = a.Close()
	}()

	_, err := server.ReadAction()
	assert.ErrorIs(t, err, ErrConnectionLost)
}

func TestConn_CloseIsIdempotent(t *testing.T) {
	t.Parallel()

	a, b := net.Pipe()
	defer b.Close()
	c := NewConn(a)

	assert.NoError(t, c.Close())
	assert.NoError(t, c.Close())
}

func TestTCP_ListenDialLoopback(t *testing.T) {
	t.Parallel()

	ln, err := Listen(KindTCP, IPv4, 0)
	require.NoError(t, err)
	defer ln.Close()

	port := ln.Addr().(*net.TCPAddr).Port

	accepted := make(chan Conn, 1)
	go func() {
		c, err := ln.Accept()
		if err == nil {
			accepted <- c
		}
	}()

	client, err := Dial(KindTCP, "127.0.0.1", port)
	require.NoError(t, err)
	defer client.Close()

	server := <-accepted
	defer server.Close()

	vis := board.NewVisible()
	vis[0][0] = 0
	require.NoError(t, server.WriteAction(protocol.NewBoardAction(protocol.ActionState, vis)))

	got, err := client.ReadAction()
	require.NoError(t, err)
	assert.Equal(t, protocol.ActionState, got.Type)
	assert.Equal(t, vis, got.Board)
	assert.NotEmpty(t, server.RemoteAddr())
}

func TestTCP_ListenIPv6Loopback(t *testing.T) {
	t.Parallel()

	ln, err := Listen(KindTCP, IPv6, 0)
	if err != nil {
		t.Skipf("ipv6 unavailable: %v", err)
	}
	defer ln.Close()

	port := ln.Addr().(*net.TCPAddr).Port
	go func() {
		c, err := ln.Accept()
		if err == nil {
			_ = c.WriteAction(protocol.NewAction(protocol.ActionState))
			_ = c.Close()
		}
	}()

	client, err := DialTCP("::1", port)
	if err != nil {
		t.Skipf("ipv6 loopback unavailable: %v", err)
	}
	defer client.Close()

	got, err := client.ReadAction()
	require.NoError(t, err)
	assert.Equal(t, protocol.ActionState, got.Type)
}

func TestDial_Refused(t *testing.T) {
	t.Parallel()

	ln, err := net.Listen("tcp4", "127.0.0.1:0")
	require.NoError(t, err)
	port := ln.Addr().(*net.TCPAddr).Port
	require.NoError(t, ln.Close())

	_, err = DialTCP("127.0.0.1", port)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), strconv.Itoa(port))
}
