// Package client 终端客户端的请求/回复：解析命令、本地预校验、发送并等待恰好一条回复
package client

import (
	"errors"
	"fmt"

	"github.com/palemoky/mine-sweeper/internal/apperrors"
	"github.com/palemoky/mine-sweeper/internal/game/board"
	"github.com/palemoky/mine-sweeper/internal/logger"
	"github.com/palemoky/mine-sweeper/internal/network/protocol"
	"github.com/palemoky/mine-sweeper/internal/network/transport"
)

// ErrClosed 连接已关闭（退出或对局结束）
var ErrClosed = errors.New("client is closed")

// Result 一次请求的结果
type Result struct {
	Reply  protocol.Action
	Status board.Status
	// Err 服务端以 ActionError 回复时不为 nil
	Err *apperrors.GameError
	// Exited 发送 exit 后不等待回复
	Exited bool
}

// Client 同步客户端，缓存最近一次收到的可见棋盘
type Client struct {
	conn    transport.Conn
	board   board.Grid
	started bool
	closed  bool
}

// New 包装一条已建立的连接
func New(conn transport.Conn) *Client {
	return &Client{
		conn:  conn,
		board: board.NewVisible(),
	}
}

// Dial 连接服务端
func Dial(kind, host string, port int) (*Client, error) {
	conn, err := transport.Dial(kind, host, port)
	if err != nil {
		return nil, err
	}
	logger.LogInfo("已连接到服务器 %s", conn.RemoteAddr())
	return New(conn), nil
}

// Board 缓存的棋盘
func (c *Client) Board() board.Grid { return c.board }

// Started 是否已开始对局
func (c *Client) Started() bool { return c.started }

// Closed 连接是否已关闭
func (c *Client) Closed() bool { return c.closed }

// Precheck 用缓存的棋盘做本地校验，失败时不产生网络请求
func (c *Client) Precheck(cmd Command) error {
	if !cmd.Kind.HasCoordinates() {
		return nil
	}
	if !c.started {
		return apperrors.ErrGameNotStarted
	}
	if !board.InBounds(cmd.Row, cmd.Col) {
		return apperrors.ErrInvalidCell
	}

	cell := c.board[cmd.Row][cmd.Col]
	switch cmd.Kind {
	case CmdReveal:
		if cell.IsRevealed() {
			return apperrors.ErrAlreadyRevealed
		}
	case CmdFlag:
		if cell == board.Flagged {
			return apperrors.ErrAlreadyFlagged
		}
		if cell.IsRevealed() {
			return apperrors.ErrFlagRevealed
		}
	}
	return nil
}

// Execute 预校验、发送并阻塞等待一条回复；exit 发送后立即关闭连接
func (c *Client) Execute(cmd Command) (*Result, error) {
	if c.closed {
		return nil, ErrClosed
	}

	req, ok := cmd.Action()
	if !ok {
		return nil, fmt.Errorf("local command %d has no request", cmd.Kind)
	}
	if err := c.Precheck(cmd); err != nil {
		return nil, err
	}

	if err := c.conn.WriteAction(req); err != nil {
		c.close()
		return nil, err
	}
	if cmd.Kind == CmdExit {
		c.close()
		return &Result{Exited: true}, nil
	}

	reply, err := c.conn.ReadAction()
	if err != nil {
		c.close()
		return nil, err
	}
	return c.apply(cmd, reply)
}

// apply 根据回复更新缓存
func (c *Client) apply(cmd Command, reply protocol.Action) (*Result, error) {
	res := &Result{Reply: reply, Status: board.Continue}

	switch reply.Type {
	case protocol.ActionState:
		c.board = reply.Board
		if cmd.Kind == CmdStart || cmd.Kind == CmdReset {
			c.started = true
		}
	case protocol.ActionError:
		c.board = reply.Board
		res.Err = apperrors.FromCode(reply.ErrorCode())
		if reply.ErrorCode() == protocol.ErrCodeGameNotStarted {
			c.started = false
		}
	case protocol.ActionWin:
		res.Status = board.Won
		c.close()
	case protocol.ActionGameOver:
		res.Status = board.Lost
		c.close()
	default:
		c.close()
		return nil, fmt.Errorf("unexpected reply %s", reply.Type)
	}
	return res, nil
}

// --- 便捷方法 ---

// Start 开始对局
func (c *Client) Start() (*Result, error) {
	return c.Execute(Command{Kind: CmdStart})
}

// Reveal 揭开格子
func (c *Client) Reveal(row, col int) (*Result, error) {
	return c.Execute(Command{Kind: CmdReveal, Row: row, Col: col})
}

// Flag 插旗
func (c *Client) Flag(row, col int) (*Result, error) {
	return c.Execute(Command{Kind: CmdFlag, Row: row, Col: col})
}

// RemoveFlag 拔旗
func (c *Client) RemoveFlag(row, col int) (*Result, error) {
	return c.Execute(Command{Kind: CmdRemoveFlag, Row: row, Col: col})
}

// Reset 重新开始
func (c *Client) Reset() (*Result, error) {
	return c.Execute(Command{Kind: CmdReset})
}

// Exit 通知服务端并关闭连接
func (c *Client) Exit() error {
	_, err := c.Execute(Command{Kind: CmdExit})
	return err
}

// Close 关闭连接
func (c *Client) Close() error {
	if c.closed {
		return nil
	}
	c.closed = true
	return c.conn.Close()
}

func (c *Client) close() {
	if err := c.Close(); err != nil {
		logger.LogError("关闭连接失败: %v", err)
	}
}
