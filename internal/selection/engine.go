// Package selection turns a stream of pointer events into a contiguous range
// selection over a caller-supplied display order. One engine owns one
// selection domain; grids with several independent selection domains
// instantiate one engine each.
package selection

import (
	"time"

	"slices"
)

const (
	// DefaultLongPressDelay is how long a press must be held before it is
	// promoted to a selection session.
	DefaultLongPressDelay = 250 * time.Millisecond
	// DefaultMoveThreshold is the Manhattan distance a pressed pointer may
	// travel before the press is either promoted or cancelled.
	DefaultMoveThreshold = 6
)

// Point is a pointer coordinate.
type Point struct {
	X, Y int
}

// OrderProvider produces the current display order of the domain's item ids.
// It is re-read on every selection recomputation and never cached, so a
// filter applied mid-gesture simply changes which ids the indices resolve to.
type OrderProvider[ID comparable] func() []ID

// Feedback is invoked with the anchor id when a press is promoted, to trigger
// a transient highlight. Timing and removal of the highlight belong to the
// caller.
type Feedback[ID comparable] func(ID)

type pressState[ID comparable] struct {
	active    bool
	at        Point
	index     int
	id        ID
	longPress bool
}

// Engine is a pointer-driven range selection engine. All methods are silent
// no-ops when called out of order; there is no error channel. Not safe for
// concurrent use: all events for a domain must arrive on one goroutine, in
// order.
type Engine[ID comparable] struct {
	order    OrderProvider[ID]
	feedback Feedback[ID]

	delay            time.Duration
	threshold        int
	dragSelectOnMove bool

	press pressState[ID]
	// pressSeq identifies the pending promotion timer. The caller schedules
	// delivery of TimerFired(seq); bumping the sequence is how a pending
	// timer is cleared, so a new press always invalidates the previous
	// press's timer before arming its own.
	pressSeq int

	active     bool
	start, end int
	ids        []ID
	selected   map[ID]struct{}

	suppressClick bool
}

type Option[ID comparable] func(*Engine[ID])

// WithFeedback sets the promotion feedback callback.
func WithFeedback[ID comparable](fn Feedback[ID]) Option[ID] {
	return func(e *Engine[ID]) {
		e.feedback = fn
	}
}

// WithLongPressDelay overrides the press promotion delay.
func WithLongPressDelay[ID comparable](d time.Duration) Option[ID] {
	return func(e *Engine[ID]) {
		e.delay = d
	}
}

// WithMoveThreshold overrides the movement threshold.
func WithMoveThreshold[ID comparable](n int) Option[ID] {
	return func(e *Engine[ID]) {
		e.threshold = n
	}
}

// WithDragSelectOnMove promotes a press as soon as the pointer moves beyond
// the threshold, instead of cancelling it.
func WithDragSelectOnMove[ID comparable](enabled bool) Option[ID] {
	return func(e *Engine[ID]) {
		e.dragSelectOnMove = enabled
	}
}

// New constructs an engine bound to the given order provider.
func New[ID comparable](order OrderProvider[ID], opts ...Option[ID]) *Engine[ID] {
	e := &Engine[ID]{
		order:     order,
		delay:     DefaultLongPressDelay,
		threshold: DefaultMoveThreshold,
		start:     -1,
		end:       -1,
		selected:  make(map[ID]struct{}),
	}
	for _, fn := range opts {
		fn(e)
	}
	return e
}

// PointerDown starts a tentative press on the item at the given index. The
// returned sequence number is non-zero when a promotion timer should be
// scheduled by the caller: deliver TimerFired(seq) after the returned delay.
//
// The press is ignored, returning zero, if a session is already active, if
// the button is not the primary button, or if the item is already selected.
// In the last case the suppress-click flag is set so the stray click
// following the press does not open a detail view.
func (e *Engine[ID]) PointerDown(index int, id ID, at Point, primary bool) (seq int, delay time.Duration) {
	if e.active {
		return 0, 0
	}
	if !primary {
		return 0, 0
	}
	if e.IsSelected(id) {
		e.suppressClick = true
		return 0, 0
	}

	// A new press always clears the previous press's pending timer first.
	e.CancelPress()

	e.press = pressState[ID]{
		active: true,
		at:     at,
		index:  index,
		id:     id,
	}
	e.pressSeq++
	return e.pressSeq, e.delay
}

// PointerMove tracks pointer movement during a tentative press. Movement
// beyond the threshold before the timer fires either promotes the press
// (drag-select-on-move mode) or cancels it outright.
func (e *Engine[ID]) PointerMove(at Point) {
	if !e.press.active || e.active {
		return
	}
	if manhattan(e.press.at, at) <= e.threshold {
		return
	}
	if e.dragSelectOnMove {
		e.promote()
	} else {
		e.CancelPress()
	}
}

// TimerFired delivers a promotion timer. Stale sequence numbers, from timers
// logically cleared since scheduling, are ignored.
func (e *Engine[ID]) TimerFired(seq int) {
	if seq != e.pressSeq {
		return
	}
	if !e.press.active || e.active {
		return
	}
	e.promote()
}

// SelectStart promotes the current press explicitly, without waiting for the
// timer. No-op without an active press.
func (e *Engine[ID]) SelectStart() {
	if !e.press.active || e.active {
		return
	}
	e.promote()
}

// promote transitions the tentative press into an active selection session
// anchored on the pressed item.
func (e *Engine[ID]) promote() {
	// Clear the pending timer; promotion may arrive via movement before the
	// timer fires.
	e.pressSeq++
	e.press.longPress = true

	e.active = true
	e.start = e.press.index
	e.end = e.press.index
	e.suppressClick = true

	if e.feedback != nil {
		e.feedback(e.press.id)
	}
	e.recompute()
}

// SelectHover extends the active session to the given index. Only meaningful
// while a session is active.
func (e *Engine[ID]) SelectHover(index int) {
	if !e.active {
		return
	}
	if index == e.end {
		return
	}
	e.end = index
	e.recompute()
}

// EndSession ends the drag gesture on pointer-up or key-up. The selected ids
// persist for subsequent actions; only the gesture stops extending.
func (e *Engine[ID]) EndSession() {
	e.active = false
	e.CancelPress()
}

// Clear resets the session to empty. Idempotent.
func (e *Engine[ID]) Clear() {
	e.active = false
	e.start = -1
	e.end = -1
	e.ids = nil
	e.selected = make(map[ID]struct{})
}

// CancelPress clears any pending promotion timer and resets the press state.
// Idempotent, safe to call with nothing pending.
func (e *Engine[ID]) CancelPress() {
	e.pressSeq++
	e.press = pressState[ID]{}
}

// recompute rebuilds the selected ids as the contiguous slice of the current
// display order between the session bounds. It is always recomputed from the
// order provider, never patched incrementally; out-of-range bounds yield
// fewer or zero ids.
func (e *Engine[ID]) recompute() {
	var ord []ID
	if e.order != nil {
		ord = e.order()
	}

	lo, hi := e.start, e.end
	if lo > hi {
		lo, hi = hi, lo
	}
	lo = max(lo, 0)
	hi = min(hi, len(ord)-1)

	if lo > hi {
		e.ids = nil
		e.selected = make(map[ID]struct{})
		return
	}

	e.ids = slices.Clone(ord[lo : hi+1])
	e.selected = make(map[ID]struct{}, len(e.ids))
	for _, id := range e.ids {
		e.selected[id] = struct{}{}
	}
}

// SetSelected replaces the selection with the given ids without starting a
// session, for restoring a view-state snapshot. The ids are adopted as-is;
// they are not re-anchored to indices, so a subsequent session starts afresh.
func (e *Engine[ID]) SetSelected(ids []ID) {
	e.Clear()
	e.ids = slices.Clone(ids)
	e.selected = make(map[ID]struct{}, len(ids))
	for _, id := range ids {
		e.selected[id] = struct{}{}
	}
}

// Selected returns the selected ids in display order.
func (e *Engine[ID]) Selected() []ID {
	return slices.Clone(e.ids)
}

// IsSelected reports whether the id is currently selected.
func (e *Engine[ID]) IsSelected(id ID) bool {
	_, ok := e.selected[id]
	return ok
}

// Active reports whether a selection session is in progress.
func (e *Engine[ID]) Active() bool {
	return e.active
}

// Pressed reports whether a tentative press is being tracked.
func (e *Engine[ID]) Pressed() bool {
	return e.press.active
}

// ConsumeSuppressedClick returns whether the next click should be suppressed,
// clearing the flag.
func (e *Engine[ID]) ConsumeSuppressedClick() bool {
	v := e.suppressClick
	e.suppressClick = false
	return v
}

func manhattan(a, b Point) int {
	return abs(a.X-b.X) + abs(a.Y-b.Y)
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
