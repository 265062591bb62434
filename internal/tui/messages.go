package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/camdeck/darkroom/internal/photo"
)

// InfoMsg is an informational message for display in the footer.
type InfoMsg string

// ErrorMsg is an error for display in the footer.
type ErrorMsg struct {
	Error   error
	Message string
	Args    []any
}

// OpenDetailMsg asks the shell to open the detail view for a photo.
type OpenDetailMsg struct {
	Photo *photo.Photo
}

// CmdHandler wraps a message in a bubbletea command.
func CmdHandler(msg tea.Msg) tea.Cmd {
	return func() tea.Msg {
		return msg
	}
}

func ReportInfo(msg string, args ...any) tea.Cmd {
	return CmdHandler(InfoMsg(fmt.Sprintf(msg, args...)))
}

func ReportError(err error, msg string, args ...any) tea.Cmd {
	return CmdHandler(ErrorMsg{
		Error:   err,
		Message: msg,
		Args:    args,
	})
}
