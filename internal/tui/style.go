package tui

import "github.com/charmbracelet/lipgloss"

const (
	Black     = lipgloss.Color("#000000")
	Red       = lipgloss.Color("#FF5353")
	Orange    = lipgloss.Color("214")
	Yellow    = lipgloss.Color("#DBBD70")
	Green     = lipgloss.Color("34")
	DeepBlue  = lipgloss.Color("39")
	LightBlue = lipgloss.Color("81")
	Blue      = lipgloss.Color("63")
	Grey      = lipgloss.Color("#737373")
	LightGrey = lipgloss.Color("245")
	White     = lipgloss.Color("#ffffff")
)

var (
	Regular = lipgloss.NewStyle()
	Bold    = Regular.Copy().Bold(true)
	Faint   = Regular.Copy().Faint(true)

	TitleStyle = Bold.Copy().Foreground(DeepBlue)

	ActiveTabStyle   = Bold.Copy().Foreground(White).Background(DeepBlue).Padding(0, 1)
	InactiveTabStyle = Regular.Copy().Foreground(LightGrey).Padding(0, 1)

	SelectedBackground = lipgloss.Color("110")
	SelectedForeground = Black
	CursorBorderColor  = Orange
	FlashBorderColor   = Yellow

	ErrorStyle = Regular.Copy().Foreground(Red)
	InfoStyle  = Regular.Copy().Foreground(Green)
)
