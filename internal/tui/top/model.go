// Package top is the console shell: it owns the tab bar, routes input to the
// active pane, and keeps navigation state, history, and per-tab view state in
// sync.
package top

import (
	"errors"
	"fmt"
	"io"
	"net/url"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/davecgh/go-spew/spew"
	zone "github.com/lrstanley/bubblezone"
	"github.com/muesli/reflow/truncate"

	"github.com/camdeck/darkroom/internal/logging"
	"github.com/camdeck/darkroom/internal/nav"
	"github.com/camdeck/darkroom/internal/photo"
	"github.com/camdeck/darkroom/internal/pubsub"
	"github.com/camdeck/darkroom/internal/tui"
	"github.com/camdeck/darkroom/internal/tui/grid"
	"github.com/camdeck/darkroom/internal/tui/keys"
	"github.com/camdeck/darkroom/internal/viewstate"
)

// shellState carries the shell's navigation snapshot and implements the
// machine's store contract.
type shellState struct {
	snap nav.Snapshot
}

func (s *shellState) NavSnapshot() nav.Snapshot {
	return s.snap
}

func (s *shellState) ApplyNavSnapshot(snap nav.Snapshot) {
	s.snap = snap
}

type Options struct {
	Service *photo.Service
	Logger  logging.Interface

	// StartURL is the location the console was opened on. Its query string
	// seeds the initial navigation state.
	StartURL *url.URL

	PageSize         int
	LongPressDelay   time.Duration
	MoveThreshold    int
	DragSelectOnMove bool

	// Debug, if non-nil, receives a dump of every message.
	Debug io.Writer
}

type model struct {
	svc    *photo.Service
	logger logging.Interface

	shell   *shellState
	history *nav.History
	machine *nav.Machine
	cache   *viewstate.Cache
	zones   *zone.Manager

	grids    map[viewstate.Key]grid.Model
	keywords keywordsModel
	admin    adminModel
	detail   *detailModel

	longPressDelay   time.Duration
	moveThreshold    int
	dragSelectOnMove bool

	showHelp    bool
	confirmQuit bool
	info        string
	err         error

	dump io.Writer

	width  int
	height int
}

// New builds the shell, replaying the start URL through the navigation
// machine so deep links land on the right pane.
func New(opts Options) (tea.Model, error) {
	logger := opts.Logger
	if logger == nil {
		logger = logging.Discard
	}
	start := opts.StartURL
	if start == nil {
		start = &url.URL{Path: "/"}
	}

	pageSize := opts.PageSize
	if pageSize <= 0 {
		pageSize = 24
	}

	shell := &shellState{}
	history := nav.NewHistory(start)
	machine := nav.NewMachine(history, shell, logger)
	machine.Initialize()

	cache := viewstate.NewCache(func(viewstate.Key) viewstate.State {
		return viewstate.State{
			Filters:    make(map[string]string),
			Pagination: viewstate.Pagination{Limit: pageSize},
		}
	})

	m := model{
		svc:              opts.Service,
		logger:           logger,
		shell:            shell,
		history:          history,
		machine:          machine,
		cache:            cache,
		zones:            zone.New(),
		grids:            make(map[viewstate.Key]grid.Model),
		keywords:         newKeywordsModel(opts.Service),
		admin:            newAdminModel(opts.Service),
		longPressDelay:   opts.LongPressDelay,
		moveThreshold:    opts.MoveThreshold,
		dragSelectOnMove: opts.DragSelectOnMove,
		dump:             opts.Debug,
	}
	return m, nil
}

func (m model) Init() tea.Cmd {
	return m.restoreCurrent()
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.dump != nil {
		spew.Fdump(m.dump, msg)
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		for k, g := range m.grids {
			m.grids[k] = g.SetSize(m.contentWidth(), m.contentHeight())
		}
		m.keywords = m.keywords.setSize(m.contentWidth(), m.contentHeight())
		m.admin = m.admin.setSize(m.contentWidth(), m.contentHeight())
		if m.detail != nil {
			m.detail.setSize(m.contentWidth(), m.contentHeight())
		}
		return m, nil

	case tui.InfoMsg:
		m.info = string(msg)
		m.err = nil
		return m, nil

	case tui.ErrorMsg:
		m.err = msg.Error
		m.info = fmt.Sprintf(msg.Message, msg.Args...)
		m.logger.Error(m.info, "error", msg.Error)
		return m, nil

	case tui.OpenDetailMsg:
		m.detail = newDetailModel(msg.Photo)
		m.detail.setSize(m.contentWidth(), m.contentHeight())
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		if m.detail != nil {
			return m, nil
		}
		return m, m.updateCurrentGrid(msg)

	case pubsub.Event[*photo.Photo]:
		// A photo changed; the visible page may be stale.
		cmd := m.refetchCurrent()
		return m, cmd

	case pubsub.Event[logging.Message]:
		if msg.Payload.Level == "ERROR" {
			m.info = ""
			m.err = errors.New(msg.Payload.Message)
		}
		return m, nil
	}

	// Timer and fetch messages carry their own sub-tab key; each grid keeps
	// only its own.
	return m, m.updateGrids(msg)
}

func (m model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.detail != nil {
		switch msg.String() {
		case "esc", "q", "enter":
			m.detail = nil
		}
		return m, nil
	}

	if m.confirmQuit {
		switch msg.String() {
		case "y", "Y":
			m.machine.Close()
			return m, tea.Quit
		default:
			m.confirmQuit = false
		}
		return m, nil
	}

	if m.paneOwnsKeyboard() {
		// A focused text input swallows everything except its own exit keys.
		cmd := m.routeKey(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	switch {
	case key.Matches(msg, keys.Global.Quit):
		m.confirmQuit = true
	case key.Matches(msg, keys.Global.Help):
		m.showHelp = !m.showHelp
	case key.Matches(msg, keys.Global.Back):
		cmd = m.navigateBack()
	case key.Matches(msg, keys.Global.Forward):
		cmd = m.navigateForward()
	case key.Matches(msg, keys.Global.Library):
		cmd = m.switchTab(nav.TabLibrary)
	case key.Matches(msg, keys.Global.Search):
		cmd = m.switchTab(nav.TabSearch)
	case key.Matches(msg, keys.Global.Curate):
		cmd = m.switchTab(nav.TabCurate)
	case key.Matches(msg, keys.Global.Admin):
		cmd = m.switchTab(nav.TabAdmin)
	case key.Matches(msg, keys.Global.NextSubTab):
		cmd = m.cycleSubTab(1)
	case key.Matches(msg, keys.Global.PrevSubTab):
		cmd = m.cycleSubTab(-1)
	case key.Matches(msg, keys.Global.AdminPanel):
		cmd = m.toggleAdminPanel()
	default:
		cmd = m.routeKey(msg)
	}
	return m, cmd
}

// paneOwnsKeyboard reports whether the active pane has a focused text input,
// in which case global bindings step aside.
func (m model) paneOwnsKeyboard() bool {
	snap := m.shell.snap
	if m.keywordsVisible() {
		return m.keywords.batch.Focused()
	}
	if g, ok := m.grids[viewstate.Key(snap.ViewKey())]; ok {
		return g.FilterFocused()
	}
	return false
}

func (m model) keywordsVisible() bool {
	return m.shell.snap.Tab == nav.TabLibrary && m.shell.snap.SubTab == nav.SubTabKeywords
}

// routeKey sends a key to whichever pane is showing.
func (m *model) routeKey(msg tea.KeyMsg) tea.Cmd {
	snap := m.shell.snap
	if m.keywordsVisible() {
		var cmd tea.Cmd
		m.keywords, cmd = m.keywords.update(msg, snap.Admin)
		return cmd
	}
	if snap.Tab == nav.TabAdmin {
		return nil
	}
	return m.updateCurrentGrid(msg)
}

func (m *model) updateCurrentGrid(msg tea.Msg) tea.Cmd {
	key := viewstate.Key(m.shell.snap.ViewKey())
	g, ok := m.grids[key]
	if !ok {
		return nil
	}
	g, cmd := g.Update(msg)
	m.grids[key] = g
	return cmd
}

func (m *model) updateGrids(msg tea.Msg) tea.Cmd {
	var cmds []tea.Cmd
	for k, g := range m.grids {
		updated, cmd := g.Update(msg)
		m.grids[k] = updated
		cmds = append(cmds, cmd)
	}
	return tea.Batch(cmds...)
}

// switchTab jumps to a top-level tab's default sub-tab.
func (m *model) switchTab(tab nav.Tab) tea.Cmd {
	return m.switchTo(nav.Normalize(string(tab), "", ""))
}

// cycleSubTab moves to the adjacent sub-tab within the current tab, wrapping
// at the ends.
func (m *model) cycleSubTab(delta int) tea.Cmd {
	snap := m.shell.snap
	subs := nav.SubTabs(snap.Tab)
	i := 0
	for j, st := range subs {
		if st == snap.SubTab {
			i = j
			break
		}
	}
	i = ((i+delta)%len(subs) + len(subs)) % len(subs)
	return m.switchTo(nav.Normalize(string(snap.Tab), string(subs[i]), string(snap.Admin)))
}

// toggleAdminPanel flips the keyword admin panel between its list and batch
// modes. It only exists under library/keywords.
func (m *model) toggleAdminPanel() tea.Cmd {
	snap := m.shell.snap
	if !m.keywordsVisible() {
		return nil
	}
	next := nav.AdminPanelBatch
	if snap.Admin == nav.AdminPanelBatch {
		next = nav.AdminPanelList
	}
	return m.switchTo(nav.Normalize(string(snap.Tab), string(snap.SubTab), string(next)))
}

// switchTo stashes the departing pane's view state, applies the new
// navigation snapshot, records it in history, and restores the arriving
// pane's state.
func (m *model) switchTo(next nav.Snapshot) tea.Cmd {
	if next == m.shell.snap {
		return nil
	}
	m.stashCurrent()
	m.shell.snap = next
	m.machine.Sync(nav.FieldTab, nav.FieldSubTab, nav.FieldAdmin)
	return m.restoreCurrent()
}

func (m *model) navigateBack() tea.Cmd {
	m.stashCurrent()
	before := m.shell.snap
	if !m.history.Back() {
		return nil
	}
	// Syncing even on a no-change pop consumes the machine's suppress flag,
	// so a later tab switch still pushes.
	m.machine.Sync(nav.FieldTab, nav.FieldSubTab, nav.FieldAdmin)
	if m.shell.snap == before {
		return nil
	}
	return m.restoreCurrent()
}

func (m *model) navigateForward() tea.Cmd {
	m.stashCurrent()
	before := m.shell.snap
	if !m.history.Forward() {
		return nil
	}
	m.machine.Sync(nav.FieldTab, nav.FieldSubTab, nav.FieldAdmin)
	if m.shell.snap == before {
		return nil
	}
	return m.restoreCurrent()
}

// stashCurrent snapshots the active grid's live state before leaving it.
func (m *model) stashCurrent() {
	snap := m.shell.snap
	if snap.Tab == nav.TabAdmin || m.keywordsVisible() {
		return
	}
	key := viewstate.Key(snap.ViewKey())
	if g, ok := m.grids[key]; ok {
		m.cache.Snapshot(key, g.LiveState())
	}
}

// restoreCurrent brings the arriving pane's cached state back and re-fetches
// its listing when the photo cache came back empty.
func (m *model) restoreCurrent() tea.Cmd {
	snap := m.shell.snap
	if snap.Tab == nav.TabAdmin {
		return nil
	}
	if m.keywordsVisible() {
		m.keywords = m.keywords.refresh()
		return nil
	}

	key := viewstate.Key(snap.ViewKey())
	st, refetch := m.cache.Restore(key)
	g, ok := m.grids[key]
	if !ok {
		g = grid.New(grid.Options{
			Key:              key,
			Service:          m.svc,
			Zones:            m.zones,
			Logger:           m.logger,
			State:            st,
			LongPressDelay:   m.longPressDelay,
			MoveThreshold:    m.moveThreshold,
			DragSelectOnMove: m.dragSelectOnMove,
		})
		g = g.SetSize(m.contentWidth(), m.contentHeight())
	} else {
		g = g.SetState(st)
	}
	m.grids[key] = g
	if refetch {
		return g.Fetch()
	}
	return nil
}

// refetchCurrent reloads the visible grid's page without touching its other
// view state.
func (m *model) refetchCurrent() tea.Cmd {
	if m.shell.snap.Tab == nav.TabAdmin {
		return nil
	}
	if m.keywordsVisible() {
		m.keywords = m.keywords.refresh()
		return nil
	}
	if g, ok := m.grids[viewstate.Key(m.shell.snap.ViewKey())]; ok {
		return g.Fetch()
	}
	return nil
}

func (m model) contentWidth() int {
	return m.width
}

func (m model) contentHeight() int {
	// Tab bar, sub-tab bar, footer.
	return max(0, m.height-3)
}

func (m model) View() string {
	if m.width == 0 {
		return "loading..."
	}

	var content string
	switch {
	case m.detail != nil:
		content = m.detail.view()
	case m.showHelp:
		content = m.helpView()
	case m.keywordsVisible():
		content = m.keywords.view(m.shell.snap.Admin)
	case m.shell.snap.Tab == nav.TabAdmin:
		content = m.admin.view(m.shell.snap.SubTab)
	default:
		key := viewstate.Key(m.shell.snap.ViewKey())
		if g, ok := m.grids[key]; ok {
			content = g.View()
		}
	}

	content = tui.Regular.
		Width(m.contentWidth()).
		Height(m.contentHeight()).
		MaxHeight(m.contentHeight()).
		Render(content)

	page := lipgloss.JoinVertical(lipgloss.Left,
		m.tabBarView(),
		m.subTabBarView(),
		content,
		m.footerView(),
	)
	// Scanning the final frame records every marked zone's bounds for
	// pointer hit testing.
	return m.zones.Scan(page)
}

func (m model) tabBarView() string {
	cells := make([]string, 0, len(nav.Tabs))
	for _, tab := range nav.Tabs {
		style := tui.InactiveTabStyle
		if tab == m.shell.snap.Tab {
			style = tui.ActiveTabStyle
		}
		cells = append(cells, style.Render(strings.ToUpper(string(tab[0]))+string(tab[1:])))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cells...)
}

func (m model) subTabBarView() string {
	cells := make([]string, 0, 4)
	for _, st := range nav.SubTabs(m.shell.snap.Tab) {
		style := tui.InactiveTabStyle
		if st == m.shell.snap.SubTab {
			style = tui.ActiveTabStyle
		}
		cells = append(cells, style.Render(string(st)))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cells...)
}

func (m model) footerView() string {
	hint := tui.Faint.Render("? help · q quit")

	if m.confirmQuit {
		return tui.Bold.Render("Quit darkroom (y/N)? ")
	}

	var status string
	switch {
	case m.err != nil && m.info != "":
		status = tui.ErrorStyle.Render(m.info + ": " + m.err.Error())
	case m.err != nil:
		status = tui.ErrorStyle.Render(m.err.Error())
	case m.info != "":
		status = tui.InfoStyle.Render(m.info)
	}
	// Keep the footer to a single line however long the error is.
	status = truncate.StringWithTail(status, uint(max(0, m.width-lipgloss.Width(hint)-1)), "…")

	gap := max(1, m.width-lipgloss.Width(status)-lipgloss.Width(hint))
	return status + strings.Repeat(" ", gap) + hint
}

func (m model) helpView() string {
	bindings := append(
		keys.KeyMapToSlice(keys.Global),
		keys.KeyMapToSlice(keys.Navigation)...,
	)
	lines := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		lines = append(lines, tui.Bold.Width(14).Render(h.Key)+tui.Regular.Render(h.Desc))
	}
	return tui.Regular.Margin(0, 1).Render(strings.Join(lines, "\n"))
}

func clamp(v, low, high int) int {
	if high < low {
		low, high = high, low
	}
	return min(high, max(low, v))
}
