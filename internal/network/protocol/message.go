// Package protocol 客户端与服务端之间交换的定长 Action 消息
package protocol

import (
	"fmt"

	"github.com/palemoky/mine-sweeper/internal/game/board"
)

// ActionType 消息类型码（服务端为准）
type ActionType int32

// 客户端 ↔ 服务端 消息类型
const (
	ActionStart      ActionType = 0 // 开始游戏
	ActionReveal     ActionType = 1 // 揭开格子
	ActionFlag       ActionType = 2 // 插旗
	ActionState      ActionType = 3 // 棋盘状态（请求 / 更新）
	ActionRemoveFlag ActionType = 4 // 拔旗
	ActionReset      ActionType = 5 // 重新开始
	ActionWin        ActionType = 6 // 胜利（终局）
	ActionExit       ActionType = 7 // 退出
	ActionGameOver   ActionType = 8 // 失败（终局）

	// ActionError 扩展类型，仅服务端 → 客户端：Coordinates[0] 为错误码
	ActionError ActionType = 9
)

var actionNames = map[ActionType]string{
	ActionStart:      "start",
	ActionReveal:     "reveal",
	ActionFlag:       "flag",
	ActionState:      "state",
	ActionRemoveFlag: "remove_flag",
	ActionReset:      "reset",
	ActionWin:        "win",
	ActionExit:       "exit",
	ActionGameOver:   "game_over",
	ActionError:      "error",
}

func (t ActionType) String() string {
	if name, ok := actionNames[t]; ok {
		return name
	}
	return fmt.Sprintf("unknown(%d)", int32(t))
}

// HasCoordinates 该类型是否携带坐标
func (t ActionType) HasCoordinates() bool {
	return t == ActionReveal || t == ActionFlag || t == ActionRemoveFlag
}

// IsTerminal 回复类型是否表示对局结束
func (t ActionType) IsTerminal() bool {
	return t == ActionWin || t == ActionGameOver
}

// Action 双向通用的定长消息
type Action struct {
	Type        ActionType
	Coordinates [2]int32
	Board       board.Grid
}

// NewAction 创建不带坐标的请求
func NewAction(t ActionType) Action {
	return Action{Type: t}
}

// NewCellAction 创建带坐标的请求
func NewCellAction(t ActionType, row, col int) Action {
	return Action{Type: t, Coordinates: [2]int32{int32(row), int32(col)}}
}

// NewBoardAction 创建携带棋盘快照的回复
func NewBoardAction(t ActionType, g board.Grid) Action {
	return Action{Type: t, Board: g}
}

// NewErrorAction 创建错误回复，附带当前可见棋盘
func NewErrorAction(code int, vis board.Grid) Action {
	return Action{Type: ActionError, Coordinates: [2]int32{int32(code), 0}, Board: vis}
}

// Row 行坐标
func (a Action) Row() int { return int(a.Coordinates[0]) }

// Col 列坐标
func (a Action) Col() int { return int(a.Coordinates[1]) }

// ErrorCode 错误回复中的错误码
func (a Action) ErrorCode() int {
	if a.Type != ActionError {
		return 0
	}
	return int(a.Coordinates[0])
}

func (a Action) String() string {
	if a.Type.HasCoordinates() {
		return fmt.Sprintf("%s %d,%d", a.Type, a.Row(), a.Col())
	}
	if a.Type == ActionError {
		return fmt.Sprintf("error %d", a.ErrorCode())
	}
	return a.Type.String()
}
