package top

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/camdeck/darkroom/internal/nav"
	"github.com/camdeck/darkroom/internal/photo"
	"github.com/camdeck/darkroom/internal/selection"
	"github.com/camdeck/darkroom/internal/tui"
	"github.com/camdeck/darkroom/internal/tui/keys"
)

// keywordsModel is the library/keywords pane: a keyboard-driven keyword list
// whose contiguous selection feeds the admin side panel.
type keywordsModel struct {
	svc *photo.Service

	// order is shared by pointer so the engine's order provider tracks the
	// refreshed keyword list across model copies.
	order  *[]string
	engine *selection.Engine[string]
	cursor int

	batch textinput.Model

	width  int
	height int
}

func newKeywordsModel(svc *photo.Service) keywordsModel {
	order := svc.Keywords()
	orderPtr := &order

	batch := textinput.New()
	batch.Prompt = "Apply keyword: "

	return keywordsModel{
		svc:    svc,
		order:  orderPtr,
		engine: selection.New(func() []string { return *orderPtr }),
		batch:  batch,
	}
}

func (m keywordsModel) refresh() keywordsModel {
	*m.order = m.svc.Keywords()
	m.cursor = clamp(m.cursor, 0, len(*m.order)-1)
	return m
}

func (m keywordsModel) setSize(width, height int) keywordsModel {
	m.width = width
	m.height = height
	return m
}

// update handles keys for the pane. The admin panel mode decides whether the
// batch input owns the keyboard.
func (m keywordsModel) update(msg tea.KeyMsg, panel nav.AdminPanel) (keywordsModel, tea.Cmd) {
	if panel == nav.AdminPanelBatch && m.batch.Focused() {
		switch msg.String() {
		case "esc":
			m.batch.Blur()
			return m, nil
		case "enter":
			m.batch.Blur()
			return m, m.applyBatch()
		default:
			var cmd tea.Cmd
			m.batch, cmd = m.batch.Update(msg)
			return m, cmd
		}
	}

	switch {
	case key.Matches(msg, keys.Navigation.Up):
		m.cursor = clamp(m.cursor-1, 0, len(*m.order)-1)
		if m.engine.Active() {
			m.engine.SelectHover(m.cursor)
		}
	case key.Matches(msg, keys.Navigation.Down):
		m.cursor = clamp(m.cursor+1, 0, len(*m.order)-1)
		if m.engine.Active() {
			m.engine.SelectHover(m.cursor)
		}
	case msg.String() == " ":
		if m.engine.Active() {
			m.engine.EndSession()
		} else if len(*m.order) > 0 {
			// Anchor a range at the cursor; moving the cursor extends it.
			m.engine.Clear()
			m.cursorStart()
		}
	case key.Matches(msg, keys.Global.SelectClear):
		m.engine.EndSession()
		m.engine.Clear()
	case key.Matches(msg, keys.Global.Enter):
		if panel == nav.AdminPanelBatch {
			cmd := m.batch.Focus()
			return m, cmd
		}
	}
	return m, nil
}

// cursorStart anchors a selection session at the cursor row, promoting
// immediately rather than waiting out the long-press delay.
func (m *keywordsModel) cursorStart() {
	kw := (*m.order)[m.cursor]
	m.engine.PointerDown(m.cursor, kw, selection.Point{}, true)
	m.engine.SelectStart()
}

// applyBatch tags every photo carrying a selected keyword with the entered
// keyword.
func (m keywordsModel) applyBatch() tea.Cmd {
	kw := strings.TrimSpace(m.batch.Value())
	if kw == "" {
		return nil
	}
	selected := m.engine.Selected()
	if len(selected) == 0 && len(*m.order) > 0 {
		selected = []string{(*m.order)[m.cursor]}
	}

	var ids []photo.ID
	seen := make(map[photo.ID]struct{})
	for _, sel := range selected {
		page := m.svc.List(photo.Filter{Keyword: sel}, 0, math.MaxInt)
		for _, p := range page.Photos {
			if _, ok := seen[p.ID]; ok {
				continue
			}
			seen[p.ID] = struct{}{}
			ids = append(ids, p.ID)
		}
	}
	if len(ids) == 0 {
		return tui.ReportInfo("no photos carry the selected keywords")
	}
	if err := m.svc.Tag(ids, kw); err != nil {
		return tui.ReportError(err, "batch tagging")
	}
	return tui.ReportInfo("tagged %d photos with %q", len(ids), kw)
}

func (m keywordsModel) view(panel nav.AdminPanel) string {
	list := m.listView()
	side := m.panelView(panel)

	listWidth := m.width - lipgloss.Width(side)
	listStyle := tui.Regular.Width(max(0, listWidth)).Margin(0, 1)
	return lipgloss.JoinHorizontal(lipgloss.Top, listStyle.Render(list), side)
}

func (m keywordsModel) listView() string {
	if len(*m.order) == 0 {
		return tui.Faint.Render("no keywords yet")
	}
	lines := make([]string, 0, len(*m.order))
	for i, kw := range *m.order {
		line := kw
		style := tui.Regular
		if m.engine.IsSelected(kw) {
			style = style.Copy().Background(tui.SelectedBackground).Foreground(tui.SelectedForeground)
		}
		if i == m.cursor {
			line = "> " + line
			style = style.Copy().Bold(true)
		} else {
			line = "  " + line
		}
		lines = append(lines, style.Render(line))
	}
	return strings.Join(lines, "\n")
}

func (m keywordsModel) panelView(panel nav.AdminPanel) string {
	style := tui.Regular.
		Border(lipgloss.NormalBorder(), false, false, false, true).
		Padding(0, 1).
		Width(32)

	var b strings.Builder
	switch panel {
	case nav.AdminPanelList:
		b.WriteString(tui.Bold.Render("Selected keywords") + "\n\n")
		selected := m.engine.Selected()
		if len(selected) == 0 {
			b.WriteString(tui.Faint.Render("none selected"))
			break
		}
		for _, kw := range selected {
			n := m.svc.List(photo.Filter{Keyword: kw}, 0, -1).Total
			b.WriteString(fmt.Sprintf("%s (%d)\n", kw, n))
		}
	case nav.AdminPanelBatch:
		b.WriteString(tui.Bold.Render("Batch tagging") + "\n\n")
		b.WriteString(fmt.Sprintf("%d keywords selected\n\n", len(m.engine.Selected())))
		b.WriteString(m.batch.View())
	default:
		return ""
	}
	return style.Render(b.String())
}
