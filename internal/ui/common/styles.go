// Package common provides shared styles for the UI.
package common

import (
	"github.com/charmbracelet/lipgloss"
)

// Lipgloss Styles
var (
	DocStyle    = lipgloss.NewStyle().Margin(1, 2)
	TitleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("228")).Bold(true).Render
	BoxStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	PromptStyle = lipgloss.NewStyle().MarginTop(1)
	ErrorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	InfoStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	WinStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
	LoseStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
)

// Cell styles
var (
	HiddenStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	FlagStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true)
	MineStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#CD0000")).Bold(true)
	ZeroStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
	HeaderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))

	// NumberStyles 按邻居雷数着色，下标即数字
	NumberStyles = []lipgloss.Style{
		ZeroStyle,
		lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
		lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
		lipgloss.NewStyle().Foreground(lipgloss.Color("4")),
		lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
		lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
		lipgloss.NewStyle().Foreground(lipgloss.Color("0")),
		lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
	}
)
