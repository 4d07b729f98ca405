package client

import (
	"strconv"
	"strings"

	"github.com/palemoky/mine-sweeper/internal/apperrors"
	"github.com/palemoky/mine-sweeper/internal/network/protocol"
)

// CommandKind 用户命令
type CommandKind int

const (
	CmdStart CommandKind = iota
	CmdReveal
	CmdFlag
	CmdRemoveFlag
	CmdReset
	CmdExit
	CmdHelp  // 本地命令，不发请求
	CmdBoard // 本地命令，不发请求
)

var commandNames = map[string]CommandKind{
	"start":       CmdStart,
	"reveal":      CmdReveal,
	"flag":        CmdFlag,
	"remove_flag": CmdRemoveFlag,
	"reset":       CmdReset,
	"exit":        CmdExit,
	"help":        CmdHelp,
	"board":       CmdBoard,
}

// HelpText 命令帮助
const HelpText = `commands:
  start            start the game
  reveal r,c       reveal the cell at row r, column c (0-3)
  flag r,c         put a flag on a hidden cell
  remove_flag r,c  remove a flag
  reset            restart the game with a fresh board
  board            show the current board
  help             show this help
  exit             leave the game`

// Command 解析后的命令
type Command struct {
	Kind CommandKind
	Row  int
	Col  int
}

// HasCoordinates 是否带坐标
func (k CommandKind) HasCoordinates() bool {
	return k == CmdReveal || k == CmdFlag || k == CmdRemoveFlag
}

// IsLocal 本地命令不产生网络请求
func (k CommandKind) IsLocal() bool {
	return k == CmdHelp || k == CmdBoard
}

// ParseCommand 解析一行输入，如 "reveal 1,2"。
// 未知命令返回 ErrUnknownCommand，坐标缺失或不是整数返回 ErrInvalidArgs。
func ParseCommand(line string) (Command, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return Command{}, apperrors.ErrUnknownCommand
	}

	kind, ok := commandNames[strings.ToLower(fields[0])]
	if !ok {
		return Command{}, apperrors.ErrUnknownCommand
	}

	cmd := Command{Kind: kind}
	args := strings.Join(fields[1:], "")
	if !kind.HasCoordinates() {
		if args != "" {
			return Command{}, apperrors.ErrInvalidArgs
		}
		return cmd, nil
	}

	parts := strings.Split(args, ",")
	if len(parts) != 2 {
		return Command{}, apperrors.ErrInvalidArgs
	}
	row, err := strconv.Atoi(parts[0])
	if err != nil {
		return Command{}, apperrors.ErrInvalidArgs
	}
	col, err := strconv.Atoi(parts[1])
	if err != nil {
		return Command{}, apperrors.ErrInvalidArgs
	}
	cmd.Row, cmd.Col = row, col
	return cmd, nil
}

// Action 转成协议消息，本地命令返回 false
func (c Command) Action() (protocol.Action, bool) {
	switch c.Kind {
	case CmdStart:
		return protocol.NewAction(protocol.ActionStart), true
	case CmdReveal:
		return protocol.NewCellAction(protocol.ActionReveal, c.Row, c.Col), true
	case CmdFlag:
		return protocol.NewCellAction(protocol.ActionFlag, c.Row, c.Col), true
	case CmdRemoveFlag:
		return protocol.NewCellAction(protocol.ActionRemoveFlag, c.Row, c.Col), true
	case CmdReset:
		return protocol.NewAction(protocol.ActionReset), true
	case CmdExit:
		return protocol.NewAction(protocol.ActionExit), true
	default:
		return protocol.Action{}, false
	}
}
