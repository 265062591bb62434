package app

import (
	"net/url"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/exp/teatest"
	"github.com/stretchr/testify/require"

	"github.com/camdeck/darkroom/internal/logging"
	"github.com/camdeck/darkroom/internal/photo"
	"github.com/camdeck/darkroom/internal/tui/top"
)

func setup(t *testing.T, startURL string) *teatest.TestModel {
	t.Helper()

	svc := photo.NewService(photo.ServiceOptions{Logger: logging.Discard})
	photo.Seed(svc, 60)

	start, err := url.Parse(startURL)
	require.NoError(t, err)

	m, err := top.New(top.Options{
		Service:  svc,
		Logger:   logging.Discard,
		StartURL: start,
		PageSize: 12,
	})
	require.NoError(t, err)

	return teatest.NewTestModel(
		t,
		m,
		teatest.WithInitialTermSize(100, 50),
	)
}

func waitFor(t *testing.T, tm *teatest.TestModel, cond func(s string) bool) {
	t.Helper()

	teatest.WaitFor(
		t,
		tm.Output(),
		func(b []byte) bool {
			return cond(string(b))
		},
		teatest.WithCheckInterval(time.Millisecond*100),
		teatest.WithDuration(time.Second*10),
	)
}

func sendKey(tm *teatest.TestModel, s string) {
	switch s {
	case "esc":
		tm.Send(tea.KeyMsg{Type: tea.KeyEscape})
	case "tab":
		tm.Send(tea.KeyMsg{Type: tea.KeyTab})
	case "enter":
		tm.Send(tea.KeyMsg{Type: tea.KeyEnter})
	default:
		tm.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
	}
}
