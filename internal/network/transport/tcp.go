package transport

import (
	"errors"
	"fmt"
	"io"
	"net"
	"strconv"
	"sync"

	"github.com/palemoky/mine-sweeper/internal/network/protocol"
	"github.com/palemoky/mine-sweeper/internal/network/protocol/codec"
)

// tcpConn 直接在字节流上读写 76 字节帧
type tcpConn struct {
	conn      net.Conn
	closeOnce sync.Once
	closeErr  error
}

// NewConn 包装一条已建立的流式连接
func NewConn(c net.Conn) Conn {
	return &tcpConn{conn: c}
}

// DialTCP 连接 host:port，host 可以是 IPv4、IPv6 地址或主机名
func DialTCP(host string, port int) (Conn, error) {
	addr := net.JoinHostPort(host, strconv.Itoa(port))
	c, err := net.Dial("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("connect %s: %w", addr, err)
	}
	return NewConn(c), nil
}

func (c *tcpConn) ReadAction() (protocol.Action, error) {
	a, err := codec.ReadAction(c.conn)
	if err != nil {
		return protocol.Action{}, lost(err)
	}
	return a, nil
}

func (c *tcpConn) WriteAction(a protocol.Action) error {
	if err := codec.WriteAction(c.conn, a); err != nil {
		return lost(err)
	}
	return nil
}

func (c *tcpConn) RemoteAddr() string {
	return c.conn.RemoteAddr().String()
}

func (c *tcpConn) Close() error {
	c.closeOnce.Do(func() {
		c.closeErr = c.conn.Close()
	})
	return c.closeErr
}

// lost 把 EOF、半帧和已关闭连接统一成 ErrConnectionLost
func lost(err error) error {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, net.ErrClosed) {
		return fmt.Errorf("%w: %v", ErrConnectionLost, err)
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return fmt.Errorf("%w: %v", ErrConnectionLost, err)
	}
	return err
}

type tcpListener struct {
	ln net.Listener
}

func (l *tcpListener) Accept() (Conn, error) {
	c, err := l.ln.Accept()
	if err != nil {
		return nil, err
	}
	return NewConn(c), nil
}

func (l *tcpListener) Addr() net.Addr { return l.ln.Addr() }

func (l *tcpListener) Close() error { return l.ln.Close() }
