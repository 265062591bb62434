package top

import (
	"path/filepath"

	"github.com/charmbracelet/lipgloss"
	prettyjson "github.com/hokaccha/go-prettyjson"

	"github.com/camdeck/darkroom/internal/photo"
	"github.com/camdeck/darkroom/internal/tui"
)

// detailModel shows a single photo's full record, replacing the grid until
// dismissed.
type detailModel struct {
	photo *photo.Photo

	width  int
	height int
}

func newDetailModel(p *photo.Photo) *detailModel {
	return &detailModel{photo: p}
}

func (m *detailModel) setSize(width, height int) {
	m.width = width
	m.height = height
}

func (m *detailModel) view() string {
	body, err := prettyjson.Marshal(m.photo)
	if err != nil {
		body = []byte(err.Error())
	}

	title := tui.TitleStyle.Render(filepath.Base(m.photo.Path))
	hint := tui.Faint.Render("esc to close")

	content := lipgloss.JoinVertical(lipgloss.Left, title, "", string(body), "", hint)
	return tui.Regular.
		Margin(0, 1).
		MaxWidth(max(0, m.width)).
		MaxHeight(max(0, m.height)).
		Render(content)
}
