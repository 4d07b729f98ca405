package transport

import (
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/palemoky/mine-sweeper/internal/logger"
	"github.com/palemoky/mine-sweeper/internal/network/protocol"
	"github.com/palemoky/mine-sweeper/internal/network/protocol/codec"
)

// WebSocketPath WebSocket 端点
const WebSocketPath = "/ws"

const handshakeTimeout = 10 * time.Second

var upgrader = websocket.Upgrader{
	ReadBufferSize:  codec.FrameSize * 4,
	WriteBufferSize: codec.FrameSize * 4,
	CheckOrigin: func(r *http.Request) bool {
		return true // 终端客户端不带 Origin
	},
}

// wsConn 每个二进制消息恰好是一个帧
type wsConn struct {
	conn      *websocket.Conn
	closeOnce sync.Once
	closeErr  error
}

// DialWebSocket 连接 ws://host:port/ws
func DialWebSocket(host string, port int) (Conn, error) {
	u := url.URL{Scheme: "ws", Host: net.JoinHostPort(host, strconv.Itoa(port)), Path: WebSocketPath}
	dialer := websocket.Dialer{
		HandshakeTimeout: handshakeTimeout,
	}

	c, _, err := dialer.Dial(u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("connect %s: %w", u.String(), err)
	}
	return &wsConn{conn: c}, nil
}

func (c *wsConn) ReadAction() (protocol.Action, error) {
	mt, data, err := c.conn.ReadMessage()
	if err != nil {
		return protocol.Action{}, fmt.Errorf("%w: %v", ErrConnectionLost, err)
	}
	if mt != websocket.BinaryMessage {
		return protocol.Action{}, fmt.Errorf("%w: unexpected message type %d", ErrConnectionLost, mt)
	}

	a, err := codec.Decode(data)
	if err != nil {
		return protocol.Action{}, fmt.Errorf("%w: %v", ErrConnectionLost, err)
	}
	return a, nil
}

func (c *wsConn) WriteAction(a protocol.Action) error {
	buf := codec.GetFrame()
	defer codec.PutFrame(buf)

	codec.Put(buf, a)
	if err := c.conn.WriteMessage(websocket.BinaryMessage, buf[:]); err != nil {
		return fmt.Errorf("%w: %v", ErrConnectionLost, err)
	}
	return nil
}

func (c *wsConn) RemoteAddr() string {
	return c.conn.RemoteAddr().String()
}

func (c *wsConn) Close() error {
	c.closeOnce.Do(func() {
		_ = c.conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
			time.Now().Add(time.Second))
		c.closeErr = c.conn.Close()
	})
	return c.closeErr
}

// wsListener 把升级后的连接通过无缓冲 channel 交给 Accept，
// 在上一局结束前新连接会阻塞在握手处理函数里排队。
type wsListener struct {
	ln     net.Listener
	server *http.Server
	conns  chan Conn
	done   chan struct{}
	once   sync.Once
}

func newWSListener(ln net.Listener) *wsListener {
	l := &wsListener{
		ln:    ln,
		conns: make(chan Conn),
		done:  make(chan struct{}),
	}

	mux := http.NewServeMux()
	mux.HandleFunc(WebSocketPath, l.handleWebSocket)
	l.server = &http.Server{
		Handler:           mux,
		ReadHeaderTimeout: handshakeTimeout,
	}

	go func() {
		if err := l.server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.LogError("websocket server stopped: %v", err)
		}
	}()
	return l
}

func (l *wsListener) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	c, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.LogError("websocket upgrade failed: %v", err)
		return
	}

	conn := &wsConn{conn: c}
	select {
	case l.conns <- conn:
	case <-l.done:
		_ = conn.Close()
	}
}

func (l *wsListener) Accept() (Conn, error) {
	select {
	case c := <-l.conns:
		return c, nil
	case <-l.done:
		return nil, net.ErrClosed
	}
}

func (l *wsListener) Addr() net.Addr { return l.ln.Addr() }

func (l *wsListener) Close() error {
	var err error
	l.once.Do(func() {
		close(l.done)
		err = l.server.Close()
	})
	return err
}
