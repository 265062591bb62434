package grid

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/camdeck/darkroom/internal/logging"
	"github.com/camdeck/darkroom/internal/photo"
	"github.com/camdeck/darkroom/internal/tui"
	"github.com/camdeck/darkroom/internal/viewstate"
)

func setupTest(t *testing.T) (Model, *zone.Manager) {
	t.Helper()

	svc := photo.NewService(photo.ServiceOptions{Logger: logging.Discard})
	photo.Seed(svc, 30)

	zones := zone.New()
	t.Cleanup(zones.Close)

	m := New(Options{
		Key:     "library/photos",
		Service: svc,
		Zones:   zones,
		Logger:  logging.Discard,
		State: viewstate.State{
			Filters:    map[string]string{},
			Pagination: viewstate.Pagination{Limit: 12},
		},
		LongPressDelay: time.Millisecond,
	})
	m = m.SetSize(100, 40)

	// Load the first page synchronously.
	msg := m.Fetch()()
	m, _ = m.Update(msg)
	require.Len(t, m.state.Photos, 12)

	scanZones(t, zones, m)
	return m, zones
}

// scanZones renders the grid and waits for the zone manager to record every
// card's bounds.
func scanZones(t *testing.T, zones *zone.Manager, m Model) {
	t.Helper()

	zones.Scan(m.View())
	require.Eventually(t, func() bool {
		for i := range m.state.Photos {
			if zones.Get(m.zoneID(i)).IsZero() {
				return false
			}
		}
		return true
	}, time.Second, 10*time.Millisecond)
}

func mouseAt(t *testing.T, zones *zone.Manager, m Model, index int, action tea.MouseAction) tea.MouseMsg {
	t.Helper()

	z := zones.Get(m.zoneID(index))
	require.False(t, z.IsZero())
	return tea.MouseMsg{
		X:      z.StartX,
		Y:      z.StartY,
		Action: action,
		Button: tea.MouseButtonLeft,
	}
}

// press pushes the pointer down on a card and fires its long-press timer.
func press(t *testing.T, zones *zone.Manager, m Model, index int) Model {
	t.Helper()

	m, cmd := m.Update(mouseAt(t, zones, m, index, tea.MouseActionPress))
	require.NotNil(t, cmd, "expected a long-press timer to be scheduled")

	timer, ok := cmd().(pressTimerMsg)
	require.True(t, ok)
	m, _ = m.Update(timer)
	require.True(t, m.engine.Active())
	return m
}

func TestGrid_longPressSelects(t *testing.T) {
	m, zones := setupTest(t)

	m = press(t, zones, m, 0)
	assert.Equal(t, []photo.ID{m.state.Photos[0].ID}, m.state.Selection)

	// Release ends the gesture; the selection persists.
	m, _ = m.Update(mouseAt(t, zones, m, 0, tea.MouseActionRelease))
	assert.False(t, m.engine.Active())
	assert.Len(t, m.state.Selection, 1)
}

func TestGrid_dragExtendsSelection(t *testing.T) {
	m, zones := setupTest(t)

	m = press(t, zones, m, 1)
	m, _ = m.Update(mouseAt(t, zones, m, 4, tea.MouseActionMotion))

	want := []photo.ID{
		m.state.Photos[1].ID,
		m.state.Photos[2].ID,
		m.state.Photos[3].ID,
		m.state.Photos[4].ID,
	}
	assert.Equal(t, want, m.state.Selection)

	// Dragging back towards the anchor shrinks the range.
	m, _ = m.Update(mouseAt(t, zones, m, 2, tea.MouseActionMotion))
	assert.Equal(t, want[:2], m.state.Selection)
}

func TestGrid_releaseAfterSelectionIsNotAClick(t *testing.T) {
	m, zones := setupTest(t)

	m = press(t, zones, m, 0)
	m, cmd := m.Update(mouseAt(t, zones, m, 0, tea.MouseActionRelease))

	// The release that ends a selection gesture must not open the detail
	// view.
	if cmd != nil {
		_, ok := cmd().(tui.OpenDetailMsg)
		assert.False(t, ok)
	}
}

func TestGrid_clickOpensDetail(t *testing.T) {
	m, zones := setupTest(t)

	// Press and release without the timer firing: a plain click.
	m, _ = m.Update(mouseAt(t, zones, m, 3, tea.MouseActionPress))
	m, cmd := m.Update(mouseAt(t, zones, m, 3, tea.MouseActionRelease))
	require.NotNil(t, cmd)

	msg, ok := cmd().(tui.OpenDetailMsg)
	require.True(t, ok)
	assert.Equal(t, m.state.Photos[3].ID, msg.Photo.ID)
}

func TestGrid_outsidePressClears(t *testing.T) {
	m, zones := setupTest(t)

	m = press(t, zones, m, 0)
	m, _ = m.Update(mouseAt(t, zones, m, 0, tea.MouseActionRelease))
	require.Len(t, m.state.Selection, 1)

	// Well below the rendered cards.
	m, _ = m.Update(tea.MouseMsg{X: 99, Y: 399, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	assert.Empty(t, m.state.Selection)
}

func TestGrid_outsidePressWithModifierKeepsSelection(t *testing.T) {
	m, zones := setupTest(t)

	m = press(t, zones, m, 0)
	m, _ = m.Update(mouseAt(t, zones, m, 0, tea.MouseActionRelease))

	m, _ = m.Update(tea.MouseMsg{X: 99, Y: 399, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft, Shift: true})
	assert.Len(t, m.state.Selection, 1)
}

func TestGrid_keyEndsSession(t *testing.T) {
	m, zones := setupTest(t)

	m = press(t, zones, m, 0)
	require.True(t, m.engine.Active())

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("j")})
	assert.False(t, m.engine.Active())
	assert.Len(t, m.state.Selection, 1)
}

func TestGrid_rateAppliesToSelection(t *testing.T) {
	m, zones := setupTest(t)

	m = press(t, zones, m, 0)
	m, _ = m.Update(mouseAt(t, zones, m, 2, tea.MouseActionMotion))
	m, _ = m.Update(mouseAt(t, zones, m, 2, tea.MouseActionRelease))
	ids := append([]photo.ID(nil), m.state.Selection...)
	require.Len(t, ids, 3)

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("4")})
	require.NotNil(t, cmd)

	for _, id := range ids {
		p, err := m.svc.Get(id)
		require.NoError(t, err)
		assert.Equal(t, 4, p.Rating)
	}
}

func TestGrid_paging(t *testing.T) {
	m, _ := setupTest(t)

	first := m.state.Photos[0].ID
	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("n")})
	require.NotNil(t, cmd)
	m, _ = m.Update(cmd())

	assert.Equal(t, 12, m.state.Pagination.Offset)
	assert.NotEqual(t, first, m.state.Photos[0].ID)
}

func TestGrid_restoreRoundTrip(t *testing.T) {
	m, zones := setupTest(t)

	m = press(t, zones, m, 0)
	m, _ = m.Update(mouseAt(t, zones, m, 1, tea.MouseActionMotion))
	m, _ = m.Update(mouseAt(t, zones, m, 1, tea.MouseActionRelease))

	cache := viewstate.NewCache(nil)
	cache.Snapshot(m.key, m.LiveState())

	// Wipe the live state, then bring the snapshot back.
	m = m.SetState(viewstate.State{Filters: map[string]string{}})
	require.Empty(t, m.state.Selection)

	restored, refetch := cache.Restore(m.key)
	assert.False(t, refetch)
	m = m.SetState(restored)

	assert.Len(t, m.state.Selection, 2)
	assert.True(t, m.engine.IsSelected(m.state.Selection[0]))
}
