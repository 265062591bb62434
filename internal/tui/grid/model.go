// Package grid renders one sub-tab's page of image cards and drives its
// pointer selection engine: long-press or drag on a card starts a range
// selection, hovering extends it, and rating/tagging keys apply to the
// selection.
package grid

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"
	"github.com/mattn/go-runewidth"

	"github.com/camdeck/darkroom/internal/logging"
	"github.com/camdeck/darkroom/internal/photo"
	"github.com/camdeck/darkroom/internal/selection"
	"github.com/camdeck/darkroom/internal/tui"
	"github.com/camdeck/darkroom/internal/tui/keys"
	"github.com/camdeck/darkroom/internal/viewstate"
)

const (
	cardWidth  = 24
	cardHeight = 3

	// keeperKeyword is the quick-tag keyword bound to a single key.
	keeperKeyword = "keeper"

	// flashDuration is how long the promotion feedback highlight lasts.
	flashDuration = 300 * time.Millisecond
)

type fetchMsg struct {
	key  viewstate.Key
	page photo.Page
}

type pressTimerMsg struct {
	key viewstate.Key
	seq int
}

type flashClearMsg struct {
	key viewstate.Key
	seq int
}

// flash is the transient promotion highlight. Shared by pointer across model
// copies so the engine's feedback callback can reach the live value.
type flash struct {
	id  photo.ID
	seq int
	on  bool
}

type Options struct {
	Key     viewstate.Key
	Service *photo.Service
	Zones   *zone.Manager
	Logger  logging.Interface
	State   viewstate.State

	LongPressDelay   time.Duration
	MoveThreshold    int
	DragSelectOnMove bool
}

// Model is the grid page for one sub-tab. It owns that sub-tab's live view
// state and selection domain.
type Model struct {
	key    viewstate.Key
	svc    *photo.Service
	zones  *zone.Manager
	logger logging.Interface

	// state is shared by pointer so the engine's order provider always sees
	// the current display order.
	state  *viewstate.State
	engine *selection.Engine[photo.ID]

	fl           *flash
	lastFlashSeq int

	filter textinput.Model
	cursor int

	width  int
	height int
}

func New(opts Options) Model {
	st := opts.State
	if st.Filters == nil {
		st.Filters = make(map[string]string)
	}
	statePtr := &st

	fl := &flash{}
	engineOpts := []selection.Option[photo.ID]{
		selection.WithFeedback[photo.ID](func(id photo.ID) {
			fl.id = id
			fl.seq++
			fl.on = true
		}),
		selection.WithDragSelectOnMove[photo.ID](opts.DragSelectOnMove),
	}
	if opts.LongPressDelay > 0 {
		engineOpts = append(engineOpts, selection.WithLongPressDelay[photo.ID](opts.LongPressDelay))
	}
	if opts.MoveThreshold > 0 {
		engineOpts = append(engineOpts, selection.WithMoveThreshold[photo.ID](opts.MoveThreshold))
	}
	engine := selection.New(func() []photo.ID {
		return statePtr.DisplayOrder
	}, engineOpts...)
	engine.SetSelected(st.Selection)

	filter := textinput.New()
	filter.Prompt = "Filter: "
	filter.SetValue(st.Filters["query"])

	logger := opts.Logger
	if logger == nil {
		logger = logging.Discard
	}

	return Model{
		key:    opts.Key,
		svc:    opts.Service,
		zones:  opts.Zones,
		logger: logger,
		state:  statePtr,
		engine: engine,
		fl:     fl,
		filter: filter,
	}
}

// Key returns the sub-tab key this grid serves.
func (m Model) Key() viewstate.Key {
	return m.key
}

// FilterFocused reports whether the filter input owns the keyboard.
func (m Model) FilterFocused() bool {
	return m.filter.Focused()
}

// LiveState returns the live view state for snapshotting. The cache deep
// copies it; the returned value still aliases the live state.
func (m Model) LiveState() viewstate.State {
	return *m.state
}

// SetState replaces the live state wholesale with a restored snapshot.
func (m Model) SetState(st viewstate.State) Model {
	if st.Filters == nil {
		st.Filters = make(map[string]string)
	}
	*m.state = st
	m.engine.SetSelected(st.Selection)
	m.cursor = 0
	m.filter.SetValue(st.Filters["query"])
	return m
}

// Fetch returns a command that loads the page of photos matching the live
// filters and pagination.
func (m Model) Fetch() tea.Cmd {
	var (
		key    = m.key
		svc    = m.svc
		f      = photo.FromFields(m.state.Filters)
		offset = m.state.Pagination.Offset
		limit  = m.state.Pagination.Limit
	)
	return func() tea.Msg {
		return fetchMsg{key: key, page: svc.List(f, offset, limit)}
	}
}

func (m Model) SetSize(width, height int) Model {
	m.width = width
	m.height = height
	return m
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case fetchMsg:
		if msg.key != m.key {
			return m, nil
		}
		m.state.Photos = msg.page.Photos
		m.state.Pagination.Offset = msg.page.Offset
		m.state.Pagination.Limit = msg.page.Limit
		m.state.Pagination.Total = msg.page.Total
		order := make([]photo.ID, len(msg.page.Photos))
		for i, p := range msg.page.Photos {
			order[i] = p.ID
		}
		m.state.DisplayOrder = order
		m.cursor = clamp(m.cursor, 0, len(order)-1)
		return m, nil

	case pressTimerMsg:
		if msg.key != m.key {
			return m, nil
		}
		m.engine.TimerFired(msg.seq)
		m.syncSelection()
		cmd := m.flashCmd()
		return m, cmd

	case flashClearMsg:
		if msg.key == m.key && msg.seq == m.fl.seq {
			m.fl.on = false
		}
		return m, nil

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

// handleMouse dispatches a pointer event. Card-level press handling must
// observe the event before the outside-press clear; both live in this one
// dispatch, in that order.
func (m Model) handleMouse(msg tea.MouseMsg) (Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return m, nil
		}
		if idx, id, ok := m.hit(msg); ok {
			m.cursor = idx
			seq, delay := m.engine.PointerDown(idx, id, selection.Point{X: msg.X, Y: msg.Y}, true)
			if seq != 0 {
				cmds = append(cmds, pressTick(m.key, seq, delay))
			}
		} else if !msg.Shift && !msg.Alt && !msg.Ctrl {
			// A press outside every card clears the selection, unless a
			// modifier is held.
			m.engine.Clear()
			m.syncSelection()
		}

	case tea.MouseActionMotion:
		if m.engine.Active() {
			if idx, _, ok := m.hit(msg); ok {
				m.engine.SelectHover(idx)
			}
		} else {
			m.engine.PointerMove(selection.Point{X: msg.X, Y: msg.Y})
		}
		m.syncSelection()

	case tea.MouseActionRelease:
		if m.engine.Active() {
			m.engine.EndSession()
			// The release is the click that follows promotion; swallow it.
			m.engine.ConsumeSuppressedClick()
			m.syncSelection()
		} else {
			m.engine.CancelPress()
			if _, id, ok := m.hit(msg); ok && !m.engine.ConsumeSuppressedClick() {
				if p, err := m.svc.Get(id); err == nil {
					cmds = append(cmds, tui.CmdHandler(tui.OpenDetailMsg{Photo: p}))
				}
			}
		}
	}

	cmds = append(cmds, m.flashCmd())
	return m, tea.Batch(cmds...)
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	// Any key press ends an in-flight drag session; the selection persists.
	if m.engine.Active() {
		m.engine.EndSession()
		m.syncSelection()
	}

	if m.filter.Focused() {
		switch msg.String() {
		case "enter", "esc":
			m.filter.Blur()
			return m, m.applyFilter()
		default:
			var cmd tea.Cmd
			m.filter, cmd = m.filter.Update(msg)
			return m, cmd
		}
	}

	switch {
	case key.Matches(msg, keys.Global.Filter):
		cmd := m.filter.Focus()
		return m, cmd
	case key.Matches(msg, keys.Global.SelectClear):
		m.engine.Clear()
		m.syncSelection()
	case key.Matches(msg, keys.Global.Enter):
		if p, ok := m.cursorPhoto(); ok {
			return m, tui.CmdHandler(tui.OpenDetailMsg{Photo: p})
		}
	case key.Matches(msg, keys.Navigation.Left):
		m.cursor = clamp(m.cursor-1, 0, len(m.state.Photos)-1)
	case key.Matches(msg, keys.Navigation.Right):
		m.cursor = clamp(m.cursor+1, 0, len(m.state.Photos)-1)
	case key.Matches(msg, keys.Navigation.Up):
		m.cursor = clamp(m.cursor-m.cols(), 0, len(m.state.Photos)-1)
	case key.Matches(msg, keys.Navigation.Down):
		m.cursor = clamp(m.cursor+m.cols(), 0, len(m.state.Photos)-1)
	case key.Matches(msg, keys.Navigation.NextPage):
		p := &m.state.Pagination
		if p.Offset+p.Limit < p.Total {
			p.Offset += p.Limit
			return m, m.Fetch()
		}
	case key.Matches(msg, keys.Navigation.PrevPage):
		p := &m.state.Pagination
		if p.Offset > 0 {
			p.Offset = max(0, p.Offset-p.Limit)
			return m, m.Fetch()
		}
	case key.Matches(msg, keys.Navigation.Rate):
		return m, m.rate(int(msg.String()[0] - '0'))
	case key.Matches(msg, keys.Navigation.Keeper):
		return m, m.toggleKeeper()
	}
	return m, nil
}

// targets returns the ids an action applies to: the selection, or failing
// that the photo under the cursor.
func (m Model) targets() []photo.ID {
	if ids := m.engine.Selected(); len(ids) > 0 {
		return ids
	}
	if p, ok := m.cursorPhoto(); ok {
		return []photo.ID{p.ID}
	}
	return nil
}

func (m Model) cursorPhoto() (*photo.Photo, bool) {
	if m.cursor < 0 || m.cursor >= len(m.state.Photos) {
		return nil, false
	}
	return m.state.Photos[m.cursor], true
}

// rate applies a rating optimistically and reloads the page to reflect it.
func (m Model) rate(rating int) tea.Cmd {
	ids := m.targets()
	if len(ids) == 0 {
		return nil
	}
	if err := m.svc.Rate(ids, rating); err != nil {
		return tui.ReportError(err, "rating %d photos", len(ids))
	}
	return tea.Batch(
		tui.ReportInfo("rated %d photos %d★", len(ids), rating),
		m.Fetch(),
	)
}

func (m Model) toggleKeeper() tea.Cmd {
	ids := m.targets()
	if len(ids) == 0 {
		return nil
	}
	// The first target decides the direction for the whole batch.
	first, err := m.svc.Get(ids[0])
	if err != nil {
		return tui.ReportError(err, "tagging photos")
	}
	if first.HasKeyword(keeperKeyword) {
		err = m.svc.Untag(ids, keeperKeyword)
	} else {
		err = m.svc.Tag(ids, keeperKeyword)
	}
	if err != nil {
		return tui.ReportError(err, "tagging photos")
	}
	return tea.Batch(
		tui.ReportInfo("toggled %q on %d photos", keeperKeyword, len(ids)),
		m.Fetch(),
	)
}

func (m Model) applyFilter() tea.Cmd {
	m.state.Filters["query"] = m.filter.Value()
	m.state.Pagination.Offset = 0
	return m.Fetch()
}

// flashCmd schedules clearing of a freshly triggered feedback highlight.
func (m *Model) flashCmd() tea.Cmd {
	if m.fl.seq == m.lastFlashSeq {
		return nil
	}
	m.lastFlashSeq = m.fl.seq
	var (
		key = m.key
		seq = m.fl.seq
	)
	return tea.Tick(flashDuration, func(time.Time) tea.Msg {
		return flashClearMsg{key: key, seq: seq}
	})
}

func pressTick(key viewstate.Key, seq int, delay time.Duration) tea.Cmd {
	return tea.Tick(delay, func(time.Time) tea.Msg {
		return pressTimerMsg{key: key, seq: seq}
	})
}

func (m *Model) syncSelection() {
	m.state.Selection = m.engine.Selected()
}

// hit resolves a mouse event to the card under the pointer.
func (m Model) hit(msg tea.MouseMsg) (int, photo.ID, bool) {
	for i, id := range m.state.DisplayOrder {
		if z := m.zones.Get(m.zoneID(i)); z != nil && z.InBounds(msg) {
			return i, id, true
		}
	}
	return 0, photo.ID{}, false
}

func (m Model) zoneID(i int) string {
	return fmt.Sprintf("%s/%d", m.key, i)
}

func (m Model) cols() int {
	return max(1, m.width/cardWidth)
}

func (m Model) filterVisible() bool {
	return m.filter.Focused() || m.filter.Value() != ""
}

func (m Model) View() string {
	var components []string

	components = append(components, m.headerView())
	if m.filterVisible() {
		components = append(components, tui.Regular.Margin(0, 1).Render(m.filter.View()))
	}

	if len(m.state.Photos) == 0 {
		components = append(components, tui.Faint.Margin(1, 2).Render("no photos match"))
		return lipgloss.JoinVertical(lipgloss.Left, components...)
	}

	cols := m.cols()
	var rows []string
	for start := 0; start < len(m.state.Photos); start += cols {
		end := min(start+cols, len(m.state.Photos))
		cards := make([]string, 0, end-start)
		for i := start; i < end; i++ {
			cards = append(cards, m.zones.Mark(m.zoneID(i), m.renderCard(i)))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cards...))
	}
	components = append(components, lipgloss.JoinVertical(lipgloss.Left, rows...))

	return lipgloss.JoinVertical(lipgloss.Left, components...)
}

func (m Model) headerView() string {
	p := m.state.Pagination
	first := 0
	if len(m.state.Photos) > 0 {
		first = p.Offset + 1
	}
	info := fmt.Sprintf("%d-%d of %d", first, p.Offset+len(m.state.Photos), p.Total)
	if n := len(m.state.Selection); n > 0 {
		info += fmt.Sprintf(" · %d selected", n)
	}
	return tui.Faint.Margin(0, 1).Render(info)
}

func (m Model) renderCard(i int) string {
	p := m.state.Photos[i]

	name := runewidth.Truncate(filepath.Base(p.Path), cardWidth-4, "…")
	stars := strings.Repeat("★", p.Rating) + strings.Repeat("·", 5-p.Rating)
	kws := runewidth.Truncate(strings.Join(p.Keywords, ","), cardWidth-4, "…")

	content := lipgloss.JoinVertical(lipgloss.Left, name, stars, kws)

	style := lipgloss.NewStyle().
		Width(cardWidth - 2).
		Height(cardHeight).
		Border(lipgloss.NormalBorder())

	switch {
	case m.fl.on && m.fl.id == p.ID:
		style = style.BorderForeground(tui.FlashBorderColor)
	case i == m.cursor:
		style = style.BorderForeground(tui.CursorBorderColor)
	}
	if m.engine.IsSelected(p.ID) {
		style = style.Background(tui.SelectedBackground).Foreground(tui.SelectedForeground)
	}
	return style.Render(content)
}

func clamp(v, low, high int) int {
	if high < low {
		low, high = high, low
	}
	return min(high, max(low, v))
}
