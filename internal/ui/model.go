// Package ui 客户端的 bubbletea 界面：一行命令、一次请求、一次渲染
package ui

import (
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/palemoky/mine-sweeper/internal/apperrors"
	"github.com/palemoky/mine-sweeper/internal/game/board"
	"github.com/palemoky/mine-sweeper/internal/logger"
	"github.com/palemoky/mine-sweeper/internal/network/client"
	"github.com/palemoky/mine-sweeper/internal/sound"
	"github.com/palemoky/mine-sweeper/internal/ui/common"
	"github.com/palemoky/mine-sweeper/internal/ui/view"
)

// GameClient 界面依赖的客户端能力
type GameClient interface {
	Execute(cmd client.Command) (*client.Result, error)
	Precheck(cmd client.Command) error
	Board() board.Grid
	Close() error
}

// Player 播放音效
type Player interface {
	Play(name string)
}

// replyMsg 一次请求的结果
type replyMsg struct {
	cmd client.Command
	res *client.Result
	err error
}

// Model 客户端界面
type Model struct {
	client GameClient
	sound  Player
	input  textinput.Model

	board    board.Grid
	status   board.Status
	message  string
	isError  bool
	showHelp bool
	pending  bool // 等待回复时不接受输入
	done     bool
}

// NewModel 创建界面，sound 可以为 nil
func NewModel(c GameClient, sound Player) *Model {
	ti := textinput.New()
	ti.Placeholder = "start | reveal r,c | flag r,c | remove_flag r,c | reset | exit"
	ti.CharLimit = 32
	ti.Width = 40
	ti.Prompt = "> "
	ti.Focus()

	return &Model{
		client:  c,
		sound:   sound,
		input:   ti,
		board:   c.Board(),
		status:  board.Continue,
		message: "type 'start' to begin, 'help' for commands",
	}
}

// Board 当前显示的棋盘
func (m *Model) Board() board.Grid { return m.board }

// Status 对局结果
func (m *Model) Status() board.Status { return m.status }

// Message 最近一条提示
func (m *Model) Message() string { return m.message }

// Pending 是否在等待服务端回复
func (m *Model) Pending() bool { return m.pending }

// Done 界面是否已退出
func (m *Model) Done() bool { return m.done }

func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC:
			return m.quit()
		case tea.KeyEnter:
			if m.pending || m.done {
				return m, nil
			}
			line := m.input.Value()
			m.input.Reset()
			return m.submit(line)
		}
	case replyMsg:
		return m.handleReply(msg)
	}

	if m.pending || m.done {
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// submit 解析、本地命令、预校验，通过后异步发送
func (m *Model) submit(line string) (tea.Model, tea.Cmd) {
	m.showHelp = false

	cmd, err := client.ParseCommand(line)
	if err != nil {
		if strings.TrimSpace(line) == "" {
			return m, nil
		}
		m.setError(err)
		return m, nil
	}

	switch cmd.Kind {
	case client.CmdHelp:
		m.showHelp = true
		m.message, m.isError = "", false
		return m, nil
	case client.CmdBoard:
		m.board = m.client.Board()
		m.message, m.isError = "", false
		return m, nil
	}

	if err := m.client.Precheck(cmd); err != nil {
		m.setError(err)
		return m, nil
	}

	m.pending = true
	m.message, m.isError = "", false
	return m, execute(m.client, cmd)
}

func execute(c GameClient, cmd client.Command) tea.Cmd {
	return func() tea.Msg {
		res, err := c.Execute(cmd)
		return replyMsg{cmd: cmd, res: res, err: err}
	}
}

func (m *Model) handleReply(msg replyMsg) (tea.Model, tea.Cmd) {
	m.pending = false

	if msg.err != nil {
		var gameErr *apperrors.GameError
		if errors.As(msg.err, &gameErr) {
			m.setError(gameErr)
			return m, nil
		}
		logger.LogError("请求失败: %v", msg.err)
		m.message, m.isError = "connection lost: "+msg.err.Error(), true
		m.done = true
		return m, tea.Quit
	}

	res := msg.res
	if res.Exited {
		m.message, m.isError = "bye", false
		m.done = true
		return m, tea.Quit
	}

	if res.Err != nil {
		m.board = m.client.Board()
		m.setError(res.Err)
		return m, nil
	}

	m.board = res.Reply.Board
	m.status = res.Status
	switch res.Status {
	case board.Won:
		m.play(sound.Win)
		m.done = true
		return m, tea.Quit
	case board.Lost:
		m.play(sound.Lose)
		m.done = true
		return m, tea.Quit
	}

	switch msg.cmd.Kind {
	case client.CmdReveal:
		m.play(sound.Reveal)
	case client.CmdFlag, client.CmdRemoveFlag:
		m.play(sound.Flag)
	}
	return m, nil
}

func (m *Model) setError(err error) {
	m.message, m.isError = err.Error(), true
	m.play(sound.Error)
}

func (m *Model) play(name string) {
	if m.sound != nil {
		m.sound.Play(name)
	}
}

// quit Ctrl+C 时直接断开，服务端按断线处理
func (m *Model) quit() (tea.Model, tea.Cmd) {
	if err := m.client.Close(); err != nil {
		logger.LogError("关闭连接失败: %v", err)
	}
	m.done = true
	return m, tea.Quit
}

func (m *Model) View() string {
	var sb strings.Builder

	sb.WriteString(view.TitleStyle("💣 Minesweeper"))
	sb.WriteString("\n")
	sb.WriteString(view.RenderBoard(m.board))
	sb.WriteString("\n")

	if outcome := view.RenderOutcome(m.status); outcome != "" {
		sb.WriteString(outcome)
		sb.WriteString("\n")
	}
	if m.showHelp {
		sb.WriteString(view.RenderHelp())
		sb.WriteString("\n")
	}
	if m.message != "" {
		if m.isError {
			sb.WriteString(view.RenderError(m.message))
		} else {
			sb.WriteString(common.InfoStyle.Render(m.message))
		}
		sb.WriteString("\n")
	}

	if !m.done {
		prompt := m.input.View()
		if m.pending {
			prompt = common.InfoStyle.Render("waiting for server...")
		}
		sb.WriteString(common.PromptStyle.Render(prompt))
	}

	return lipgloss.NewStyle().Margin(0, 1).Render(sb.String()) + "\n"
}
