// Package board 扫雷棋盘模型：参考棋盘（真值）与玩家可见棋盘。
package board

import "strings"

// Size 棋盘边长
const Size = 4

// CellCount 棋盘格子总数
const CellCount = Size * Size

// Cell 一个格子的值：0..8 为已揭开的周围雷数，负数为哨兵值
type Cell int32

// 哨兵值
const (
	Mine    Cell = -1 // 雷（参考棋盘，或可见棋盘上踩中的雷）
	Hidden  Cell = -2 // 未揭开
	Flagged Cell = -3 // 未揭开且插旗
)

// IsRevealed 格子是否已揭开
func (c Cell) IsRevealed() bool {
	return c != Hidden && c != Flagged
}

// IsCovered 格子是否仍被覆盖（未揭开或插旗）
func (c Cell) IsCovered() bool {
	return !c.IsRevealed()
}

// Glyph 返回格子的终端显示字符
func (c Cell) Glyph() string {
	switch c {
	case Mine:
		return "*"
	case Hidden:
		return "-"
	case Flagged:
		return ">"
	default:
		return string(rune('0' + c))
	}
}

// Grid 4×4 棋盘，按行优先
type Grid [Size][Size]Cell

// Status 由两张棋盘推导出的对局状态
type Status int

const (
	Continue Status = iota
	Won
	Lost
)

func (s Status) String() string {
	switch s {
	case Won:
		return "won"
	case Lost:
		return "lost"
	default:
		return "continue"
	}
}

// NewVisible 返回全部未揭开的可见棋盘
func NewVisible() Grid {
	var g Grid
	for r := range Size {
		for c := range Size {
			g[r][c] = Hidden
		}
	}
	return g
}

// InBounds 坐标是否在棋盘内
func InBounds(row, col int) bool {
	return row >= 0 && row < Size && col >= 0 && col < Size
}

// Reveal 把参考值写入可见棋盘。调用方负责越界和状态校验。
func Reveal(ref, vis *Grid, row, col int) {
	vis[row][col] = ref[row][col]
}

// Flag 插旗
func Flag(vis *Grid, row, col int) {
	vis[row][col] = Flagged
}

// Unflag 拔旗
func Unflag(vis *Grid, row, col int) {
	vis[row][col] = Hidden
}

// Evaluate 计算对局状态。
// 剩余覆盖格数（含插旗）等于雷数即胜，安全格上还插着旗时不会获胜。
func Evaluate(ref, vis *Grid) Status {
	if vis.Contains(Mine) {
		return Lost
	}
	if vis.Covered() == ref.MineCount() {
		return Won
	}
	return Continue
}

// Contains 棋盘中是否存在指定值
func (g *Grid) Contains(v Cell) bool {
	for r := range Size {
		for c := range Size {
			if g[r][c] == v {
				return true
			}
		}
	}
	return false
}

// MineCount 雷的数量
func (g *Grid) MineCount() int {
	n := 0
	for r := range Size {
		for c := range Size {
			if g[r][c] == Mine {
				n++
			}
		}
	}
	return n
}

// Covered 未揭开（含插旗）的格子数量
func (g *Grid) Covered() int {
	n := 0
	for r := range Size {
		for c := range Size {
			if g[r][c].IsCovered() {
				n++
			}
		}
	}
	return n
}

// String 每行以制表符分隔，与服务端启动时打印的格式一致
func (g Grid) String() string {
	var sb strings.Builder
	for r := range Size {
		for c := range Size {
			sb.WriteString(g[r][c].Glyph())
			sb.WriteByte('\t')
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
