package nav

import (
	"net/url"
)

// State is the payload the Machine attaches to history entries it creates.
// The App marker distinguishes app-owned entries from foreign ones; entries
// without it are ignored on restore.
type State struct {
	App      bool
	Snapshot Snapshot
}

type entry struct {
	url   *url.URL
	state any
}

// History models the browser history collaborator: an ordered list of
// entries with a current index. Push and Replace write entries; Back and
// Forward move the index and notify pop subscribers with the state attached
// to the entry arrived at, mirroring the popstate contract.
type History struct {
	entries []entry
	index   int

	onPop   map[int]func(state any)
	nextSub int
}

// NewHistory seeds a history with a single entry at the given location,
// carrying no state: the entry the user arrived on.
func NewHistory(location *url.URL) *History {
	return &History{
		entries: []entry{{url: cloneURL(location)}},
		onPop:   make(map[int]func(state any)),
	}
}

// Location returns a copy of the current entry's URL.
func (h *History) Location() *url.URL {
	return cloneURL(h.entries[h.index].url)
}

// CurrentState returns the state attached to the current entry.
func (h *History) CurrentState() any {
	return h.entries[h.index].state
}

// Push appends a new entry after the current one, discarding any forward
// entries, and makes it current.
func (h *History) Push(u *url.URL, state any) {
	h.entries = append(h.entries[:h.index+1], entry{url: cloneURL(u), state: state})
	h.index = len(h.entries) - 1
}

// Replace overwrites the current entry in place.
func (h *History) Replace(u *url.URL, state any) {
	h.entries[h.index] = entry{url: cloneURL(u), state: state}
}

// Back moves to the previous entry, firing pop subscribers with its state.
// Returns false, without firing, when already at the oldest entry.
func (h *History) Back() bool {
	if h.index == 0 {
		return false
	}
	h.index--
	h.pop()
	return true
}

// Forward moves to the next entry, firing pop subscribers with its state.
// Returns false, without firing, when already at the newest entry.
func (h *History) Forward() bool {
	if h.index == len(h.entries)-1 {
		return false
	}
	h.index++
	h.pop()
	return true
}

func (h *History) pop() {
	state := h.entries[h.index].state
	for _, fn := range h.onPop {
		fn(state)
	}
}

// OnPop subscribes to pop events. The returned function removes the
// subscription; subscribers register on mount and must deregister on unmount.
func (h *History) OnPop(fn func(state any)) (unsubscribe func()) {
	id := h.nextSub
	h.nextSub++
	h.onPop[id] = fn
	return func() {
		delete(h.onPop, id)
	}
}

// PriorAppEntry reports whether any entry before the current one carries the
// app marker.
func (h *History) PriorAppEntry() bool {
	for _, e := range h.entries[:h.index] {
		if s, ok := e.state.(State); ok && s.App {
			return true
		}
	}
	return false
}

// Len returns the number of entries.
func (h *History) Len() int {
	return len(h.entries)
}

// Index returns the current entry's position, oldest first.
func (h *History) Index() int {
	return h.index
}

func cloneURL(u *url.URL) *url.URL {
	c := *u
	return &c
}
