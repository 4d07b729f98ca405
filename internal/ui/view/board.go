// Package view provides UI rendering functions.
package view

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/palemoky/mine-sweeper/internal/game/board"
	"github.com/palemoky/mine-sweeper/internal/network/client"
	"github.com/palemoky/mine-sweeper/internal/ui/common"
)

// Re-export styles for use in this package
var (
	BoxStyle   = common.BoxStyle
	TitleStyle = common.TitleStyle
)

// CellStyle returns the style for a cell glyph.
func CellStyle(c board.Cell) lipgloss.Style {
	switch {
	case c == board.Hidden:
		return common.HiddenStyle
	case c == board.Flagged:
		return common.FlagStyle
	case c == board.Mine:
		return common.MineStyle
	case int(c) >= 0 && int(c) < len(common.NumberStyles):
		return common.NumberStyles[c]
	default:
		return lipgloss.NewStyle()
	}
}

// RenderBoard renders the grid with row and column indices.
func RenderBoard(g board.Grid) string {
	var sb strings.Builder

	sb.WriteString("  ")
	for col := range board.Size {
		sb.WriteString(" " + common.HeaderStyle.Render(strconv.Itoa(col)))
	}
	sb.WriteString("\n")

	for row := range board.Size {
		sb.WriteString(common.HeaderStyle.Render(strconv.Itoa(row)) + " ")
		for col := range board.Size {
			c := g[row][col]
			sb.WriteString(" " + CellStyle(c).Render(c.Glyph()))
		}
		if row < board.Size-1 {
			sb.WriteString("\n")
		}
	}

	return BoxStyle.Render(sb.String())
}

// RenderOutcome renders the final banner.
func RenderOutcome(status board.Status) string {
	switch status {
	case board.Won:
		return common.WinStyle.Render("YOU WIN!")
	case board.Lost:
		return common.LoseStyle.Render("GAME OVER!")
	default:
		return ""
	}
}

// RenderHelp renders the command list.
func RenderHelp() string {
	return common.InfoStyle.Render(client.HelpText)
}

// RenderError renders an error line.
func RenderError(msg string) string {
	return common.ErrorStyle.Render("error: " + msg)
}
