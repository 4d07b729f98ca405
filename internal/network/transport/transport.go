// Package transport 承载定长 Action 帧的连接：原生 TCP（IPv4/IPv6）或 WebSocket 二进制消息
package transport

import (
	"errors"
	"fmt"
	"net"
	"strconv"

	"github.com/palemoky/mine-sweeper/internal/network/protocol"
)

// ErrConnectionLost 对端断开或只收到半个帧，会话应直接结束
var ErrConnectionLost = errors.New("connection lost")

// IP 版本
const (
	IPv4 = "v4"
	IPv6 = "v6"
)

// 传输方式
const (
	KindTCP       = "tcp"
	KindWebSocket = "websocket"
)

// Conn 一条可收发 Action 的连接
type Conn interface {
	ReadAction() (protocol.Action, error)
	WriteAction(a protocol.Action) error
	RemoteAddr() string
	Close() error
}

// Listener 逐个接受连接
type Listener interface {
	Accept() (Conn, error)
	Addr() net.Addr
	Close() error
}

// Network 将 v4/v6 映射为 tcp4/tcp6
func Network(ipVersion string) (string, error) {
	switch ipVersion {
	case IPv4:
		return "tcp4", nil
	case IPv6:
		return "tcp6", nil
	default:
		return "", fmt.Errorf("unknown ip version %q (want v4 or v6)", ipVersion)
	}
}

// BindAddr 监听所有地址
func BindAddr(ipVersion string, port int) (string, error) {
	switch ipVersion {
	case IPv4:
		return net.JoinHostPort("0.0.0.0", strconv.Itoa(port)), nil
	case IPv6:
		return net.JoinHostPort("::", strconv.Itoa(port)), nil
	default:
		return "", fmt.Errorf("unknown ip version %q (want v4 or v6)", ipVersion)
	}
}

// Listen 按传输方式监听
func Listen(kind, ipVersion string, port int) (Listener, error) {
	network, err := Network(ipVersion)
	if err != nil {
		return nil, err
	}
	addr, err := BindAddr(ipVersion, port)
	if err != nil {
		return nil, err
	}

	ln, err := net.Listen(network, addr)
	if err != nil {
		return nil, fmt.Errorf("listen %s %s: %w", network, addr, err)
	}

	switch kind {
	case "", KindTCP:
		return &tcpListener{ln: ln}, nil
	case KindWebSocket:
		return newWSListener(ln), nil
	default:
		_ = ln.Close()
		return nil, fmt.Errorf("unknown transport %q", kind)
	}
}

// Dial 连接服务端
func Dial(kind, host string, port int) (Conn, error) {
	switch kind {
	case "", KindTCP:
		return DialTCP(host, port)
	case KindWebSocket:
		return DialWebSocket(host, port)
	default:
		return nil, fmt.Errorf("unknown transport %q", kind)
	}
}
