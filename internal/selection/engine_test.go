package selection

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTest builds an engine over a fixed display order of five ids.
func setupTest(opts ...Option[int]) (*Engine[int], *[]int) {
	order := []int{10, 11, 12, 13, 14}
	e := New(func() []int { return order }, opts...)
	return e, &order
}

// press starts a press on the item at index and promotes it via the timer.
func press(t *testing.T, e *Engine[int], index, id int) {
	t.Helper()

	seq, delay := e.PointerDown(index, id, Point{X: 5, Y: 5}, true)
	require.NotZero(t, seq)
	require.Equal(t, DefaultLongPressDelay, delay)
	e.TimerFired(seq)
	require.True(t, e.Active())
}

func TestEngine_HoverExtendsRange(t *testing.T) {
	e, _ := setupTest()

	press(t, e, 1, 11)
	assert.Equal(t, []int{11}, e.Selected())

	e.SelectHover(3)
	assert.Equal(t, []int{11, 12, 13}, e.Selected())

	// Hovering back above the anchor reverses the range.
	e.SelectHover(0)
	assert.Equal(t, []int{10, 11}, e.Selected())
}

func TestEngine_MovementCancelsPress(t *testing.T) {
	e, _ := setupTest()

	seq, _ := e.PointerDown(1, 11, Point{X: 5, Y: 5}, true)
	require.NotZero(t, seq)

	// dx+dy = 10 exceeds the default threshold of 6.
	e.PointerMove(Point{X: 12, Y: 8})
	assert.False(t, e.Pressed())

	// The timer still fires, but the press was cancelled so nothing is
	// promoted.
	e.TimerFired(seq)
	assert.False(t, e.Active())
	assert.Empty(t, e.Selected())
}

func TestEngine_MovementWithinThresholdKeepsPress(t *testing.T) {
	e, _ := setupTest()

	seq, _ := e.PointerDown(1, 11, Point{X: 5, Y: 5}, true)
	e.PointerMove(Point{X: 7, Y: 8})

	e.TimerFired(seq)
	assert.True(t, e.Active())
	assert.Equal(t, []int{11}, e.Selected())
}

func TestEngine_DragSelectOnMove(t *testing.T) {
	e, _ := setupTest(WithDragSelectOnMove[int](true))

	seq, _ := e.PointerDown(2, 12, Point{X: 5, Y: 5}, true)
	e.PointerMove(Point{X: 20, Y: 5})

	// Movement promoted the press; the original timer is now stale.
	assert.True(t, e.Active())
	e.TimerFired(seq)
	assert.Equal(t, []int{12}, e.Selected())
}

func TestEngine_NonPrimaryButtonIgnored(t *testing.T) {
	e, _ := setupTest()

	seq, _ := e.PointerDown(1, 11, Point{}, false)
	assert.Zero(t, seq)
	assert.False(t, e.Pressed())
}

func TestEngine_RepressSelectedSuppressesClick(t *testing.T) {
	e, _ := setupTest()

	press(t, e, 1, 11)
	e.SelectHover(2)
	e.EndSession()

	// Pressing an already-selected id never starts a new session but still
	// arms the suppress-click flag.
	seq, _ := e.PointerDown(2, 12, Point{}, true)
	assert.Zero(t, seq)
	assert.False(t, e.Pressed())
	assert.True(t, e.ConsumeSuppressedClick())
	// Consuming clears the flag.
	assert.False(t, e.ConsumeSuppressedClick())
}

func TestEngine_PromotionSetsSuppressClickAndFeedback(t *testing.T) {
	var flashed []int
	e, _ := setupTest(WithFeedback[int](func(id int) {
		flashed = append(flashed, id)
	}))

	press(t, e, 3, 13)

	assert.Equal(t, []int{13}, flashed)
	assert.True(t, e.ConsumeSuppressedClick())
}

func TestEngine_StaleTimerIgnored(t *testing.T) {
	e, _ := setupTest()

	seq1, _ := e.PointerDown(1, 11, Point{}, true)
	e.CancelPress()
	e.TimerFired(seq1)
	assert.False(t, e.Active())

	// A second press invalidates the first press's timer by sequence.
	seq2, _ := e.PointerDown(2, 12, Point{}, true)
	require.NotEqual(t, seq1, seq2)
	e.TimerFired(seq1)
	assert.False(t, e.Active())
	e.TimerFired(seq2)
	assert.True(t, e.Active())
}

func TestEngine_OrderReadOnEveryRecompute(t *testing.T) {
	e, order := setupTest()

	press(t, e, 1, 11)
	e.SelectHover(3)
	require.Equal(t, []int{11, 12, 13}, e.Selected())

	// The caller's list is filtered mid-gesture: ids are taken from whatever
	// order now exists at those indices.
	*order = []int{10, 12, 14}
	e.SelectHover(2)
	assert.Equal(t, []int{12, 14}, e.Selected())
}

func TestEngine_OutOfRangeBoundsTolerated(t *testing.T) {
	e, order := setupTest()

	press(t, e, 4, 14)
	e.SelectHover(9)
	assert.Equal(t, []int{14}, e.Selected())

	// Shrinking the order below both bounds yields zero ids, not an error.
	*order = []int{10, 11}
	e.SelectHover(8)
	assert.Empty(t, e.Selected())
}

func TestEngine_ClearIdempotent(t *testing.T) {
	e, _ := setupTest()

	press(t, e, 1, 11)
	e.Clear()
	e.Clear()

	assert.False(t, e.Active())
	assert.Empty(t, e.Selected())
}

func TestEngine_CancelPressIdempotent(t *testing.T) {
	e, _ := setupTest()

	// Safe with nothing pending.
	e.CancelPress()
	e.CancelPress()
	assert.False(t, e.Pressed())
}

func TestEngine_PressDuringActiveSessionIgnored(t *testing.T) {
	e, _ := setupTest()

	press(t, e, 1, 11)
	seq, _ := e.PointerDown(3, 13, Point{}, true)
	assert.Zero(t, seq)
	assert.True(t, e.Active())
	assert.Equal(t, []int{11}, e.Selected())
}

func TestEngine_SelectStart(t *testing.T) {
	e, _ := setupTest()

	// Explicit promotion without waiting for the timer.
	seq, _ := e.PointerDown(2, 12, Point{}, true)
	e.SelectStart()
	assert.True(t, e.Active())
	assert.Equal(t, []int{12}, e.Selected())

	// The timer arriving afterwards changes nothing.
	e.TimerFired(seq)
	assert.Equal(t, []int{12}, e.Selected())
}

func TestEngine_SetSelected(t *testing.T) {
	e, _ := setupTest()

	e.SetSelected([]int{12, 13})
	assert.False(t, e.Active())
	assert.True(t, e.IsSelected(12))
	assert.Equal(t, []int{12, 13}, e.Selected())

	// A restored selection still suppresses the click on re-press.
	seq, _ := e.PointerDown(2, 12, Point{}, true)
	assert.Zero(t, seq)
	assert.True(t, e.ConsumeSuppressedClick())
}

func TestEngine_CustomDelayAndThreshold(t *testing.T) {
	e, _ := setupTest(
		WithLongPressDelay[int](100*time.Millisecond),
		WithMoveThreshold[int](2),
	)

	seq, delay := e.PointerDown(0, 10, Point{X: 0, Y: 0}, true)
	require.NotZero(t, seq)
	assert.Equal(t, 100*time.Millisecond, delay)

	e.PointerMove(Point{X: 2, Y: 1})
	assert.False(t, e.Pressed())
}
