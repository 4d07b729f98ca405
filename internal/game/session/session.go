// Package session 服务端单连接对局状态机
package session

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/palemoky/mine-sweeper/internal/apperrors"
	"github.com/palemoky/mine-sweeper/internal/game/board"
	"github.com/palemoky/mine-sweeper/internal/network/protocol"
)

// State 会话状态
type State int

const (
	StateNotStarted State = iota
	StateInProgress
	StateWon
	StateLost
	StateDisconnected
)

func (s State) String() string {
	switch s {
	case StateNotStarted:
		return "not_started"
	case StateInProgress:
		return "in_progress"
	case StateWon:
		return "won"
	case StateLost:
		return "lost"
	case StateDisconnected:
		return "disconnected"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// IsTerminal 终态不再处理任何消息
func (s State) IsTerminal() bool {
	return s == StateWon || s == StateLost || s == StateDisconnected
}

// ErrSessionOver 会话已进入终态
var ErrSessionOver = errors.New("session is over")

// Session 一个连接对应的对局
type Session struct {
	ID string

	source board.Source
	state  State
	ref    board.Grid
	vis    board.Grid

	createdAt time.Time
	startedAt time.Time
	endedAt   time.Time
	moves     int
}

// New 创建会话，棋盘在 Start 或 Reset 时才加载
func New(source board.Source) *Session {
	return &Session{
		ID:        uuid.New().String(),
		source:    source,
		state:     StateNotStarted,
		vis:       board.NewVisible(),
		createdAt: time.Now(),
	}
}

// State 当前状态
func (s *Session) State() State { return s.state }

// Visible 可见棋盘快照
func (s *Session) Visible() board.Grid { return s.vis }

// Reference 参考棋盘快照
func (s *Session) Reference() board.Grid { return s.ref }

// Status 对局状态，未进入终态时总是 Continue
func (s *Session) Status() board.Status {
	switch s.state {
	case StateWon:
		return board.Won
	case StateLost:
		return board.Lost
	default:
		return board.Continue
	}
}

// Handle 处理一条请求，返回需要发送的回复（Exit 无回复）。
// 校验失败以 ActionError 回复；只有棋盘加载失败或会话已结束才返回 error。
func (s *Session) Handle(a protocol.Action) (*protocol.Action, error) {
	if s.state.IsTerminal() {
		return nil, ErrSessionOver
	}

	var err error
	switch a.Type {
	case protocol.ActionStart:
		err = s.Start()
	case protocol.ActionReset:
		err = s.Reset()
	case protocol.ActionState:
	case protocol.ActionReveal:
		err = s.Reveal(a.Row(), a.Col())
	case protocol.ActionFlag:
		err = s.Flag(a.Row(), a.Col())
	case protocol.ActionRemoveFlag:
		err = s.RemoveFlag(a.Row(), a.Col())
	case protocol.ActionExit:
		s.Exit()
		return nil, nil
	default:
		err = apperrors.ErrUnknownCommand
	}

	var gameErr *apperrors.GameError
	if errors.As(err, &gameErr) {
		reply := protocol.NewErrorAction(gameErr.Code, s.vis)
		return &reply, nil
	}
	if err != nil {
		return nil, err
	}

	reply := s.reply()
	return &reply, nil
}

// reply 终局发送参考棋盘，否则发送可见棋盘
func (s *Session) reply() protocol.Action {
	switch s.state {
	case StateWon:
		return protocol.NewBoardAction(protocol.ActionWin, s.ref)
	case StateLost:
		return protocol.NewBoardAction(protocol.ActionGameOver, s.ref)
	default:
		return protocol.NewBoardAction(protocol.ActionState, s.vis)
	}
}

// Start 首次开始时加载棋盘，重复 Start 不做任何事
func (s *Session) Start() error {
	if s.state != StateNotStarted {
		return nil
	}
	return s.load()
}

// Reset 重新加载棋盘并清空可见棋盘
func (s *Session) Reset() error {
	if s.state.IsTerminal() {
		return ErrSessionOver
	}
	return s.load()
}

func (s *Session) load() error {
	ref, err := s.source.Load()
	if err != nil {
		return fmt.Errorf("reload board: %w", err)
	}
	s.ref = ref
	s.vis = board.NewVisible()
	s.state = StateInProgress
	s.startedAt = time.Now()
	s.moves = 0
	return nil
}

// checkCell 公共前置校验：已开始且坐标合法
func (s *Session) checkCell(row, col int) error {
	if s.state.IsTerminal() {
		return ErrSessionOver
	}
	if s.state != StateInProgress {
		return apperrors.ErrGameNotStarted
	}
	if !board.InBounds(row, col) {
		return apperrors.ErrInvalidCell
	}
	return nil
}

// Reveal 揭开格子并重新计算对局状态
func (s *Session) Reveal(row, col int) error {
	if err := s.checkCell(row, col); err != nil {
		return err
	}
	if s.vis[row][col].IsRevealed() {
		return apperrors.ErrAlreadyRevealed
	}

	board.Reveal(&s.ref, &s.vis, row, col)
	s.moves++

	switch board.Evaluate(&s.ref, &s.vis) {
	case board.Won:
		s.finish(StateWon)
	case board.Lost:
		s.finish(StateLost)
	}
	return nil
}

// Flag 在未揭开的格子上插旗
func (s *Session) Flag(row, col int) error {
	if err := s.checkCell(row, col); err != nil {
		return err
	}
	switch cell := s.vis[row][col]; {
	case cell == board.Flagged:
		return apperrors.ErrAlreadyFlagged
	case cell.IsRevealed():
		return apperrors.ErrFlagRevealed
	}

	board.Flag(&s.vis, row, col)
	s.moves++
	return nil
}

// RemoveFlag 拔旗，格子没有旗时什么也不做
func (s *Session) RemoveFlag(row, col int) error {
	if err := s.checkCell(row, col); err != nil {
		return err
	}
	if s.vis[row][col] != board.Flagged {
		return nil
	}

	board.Unflag(&s.vis, row, col)
	s.moves++
	return nil
}

// Exit 客户端主动退出或连接断开
func (s *Session) Exit() {
	if s.state.IsTerminal() {
		return
	}
	s.finish(StateDisconnected)
}

func (s *Session) finish(state State) {
	s.state = state
	s.endedAt = time.Now()
}

// Summary 会话摘要，用于日志和统计
type Summary struct {
	ID        string
	State     State
	Moves     int
	StartedAt time.Time
	Duration  time.Duration
	Reference board.Grid
	Visible   board.Grid
}

// Summary 返回当前会话摘要
func (s *Session) Summary() Summary {
	start := s.startedAt
	if start.IsZero() {
		start = s.createdAt
	}
	end := s.endedAt
	if end.IsZero() {
		end = time.Now()
	}
	return Summary{
		ID:        s.ID,
		State:     s.state,
		Moves:     s.moves,
		StartedAt: start,
		Duration:  end.Sub(start),
		Reference: s.ref,
		Visible:   s.vis,
	}
}
