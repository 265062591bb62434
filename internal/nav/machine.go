package nav

import (
	"github.com/camdeck/darkroom/internal/logging"
)

// Store is the application state the machine reads navigation fields from
// and applies snapshots to. Ownership of validating and persisting those
// fields stays with the shell.
type Store interface {
	// NavSnapshot returns the current navigation fields.
	NavSnapshot() Snapshot
	// ApplyNavSnapshot overwrites the navigation fields.
	ApplyNavSnapshot(Snapshot)
}

// Field names a piece of application state. Sync ignores changes that touch
// none of the navigation fields.
type Field string

const (
	FieldTab    Field = "tab"
	FieldSubTab Field = "subtab"
	FieldAdmin  Field = "admin"
)

var navFields = map[Field]struct{}{
	FieldTab:    {},
	FieldSubTab: {},
	FieldAdmin:  {},
}

// Machine synchronizes the store's navigation state with the history. There
// is exactly one canonical snapshot at a time; every transition normalizes
// its raw input, so the machine never fails on malformed navigation state.
type Machine struct {
	history *History
	store   Store
	logger  logging.Interface

	// suppressPush is set when history already moved (a pop, or programmatic
	// navigation); the next Sync then replaces instead of pushing.
	suppressPush bool
	// lastKey is the serialized key of the last snapshot recorded in history.
	lastKey string

	unsub func()
}

// NewMachine constructs a machine and subscribes it to the history's pop
// events. Call Close on unmount to deregister.
func NewMachine(history *History, store Store, logger logging.Interface) *Machine {
	if logger == nil {
		logger = logging.Discard
	}
	m := &Machine{
		history: history,
		store:   store,
		logger:  logger,
	}
	m.unsub = history.OnPop(m.handlePop)
	return m
}

// Close deregisters the machine's history subscription.
func (m *Machine) Close() {
	if m.unsub != nil {
		m.unsub()
		m.unsub = nil
	}
}

// Initialize reads the current location, normalizes it into a snapshot,
// applies it to the store, and rewrites the current history entry in place
// with the app marker. On a fresh navigation into the app - no prior entry
// carries the marker - an extra guard entry is pushed so the user's first
// back-navigation lands on an app-owned entry instead of leaving the app.
func (m *Machine) Initialize() {
	loc := m.history.Location()
	snap := FromQuery(loc.Query())
	m.store.ApplyNavSnapshot(snap)

	// Whether the current entry was app-owned before we claim it.
	_, wasApp := appState(m.history.CurrentState())

	u := snap.RewriteURL(loc)
	m.history.Replace(u, State{App: true, Snapshot: snap})
	if !wasApp && !m.history.PriorAppEntry() {
		m.history.Push(u, State{App: true, Snapshot: snap})
	}
	m.lastKey = snap.Key()

	m.logger.Debug("initialized navigation", "tab", snap.Tab, "subtab", snap.SubTab)
}

// handlePop is invoked when history traversal lands on an entry. Entries
// without the app marker are foreign and ignored entirely; app entries have
// their snapshot applied to the store without touching history, which has
// already moved.
func (m *Machine) handlePop(state any) {
	s, ok := appState(state)
	if !ok {
		return
	}
	m.suppressPush = true
	m.store.ApplyNavSnapshot(s.Snapshot)
}

// SuppressNext marks the next Sync as following a programmatic navigation,
// so it replaces the current entry rather than pushing a spurious one.
func (m *Machine) SuppressNext() {
	m.suppressPush = true
}

// Sync records a change to application state. Changes touching none of the
// navigation fields are ignored. Otherwise the current snapshot is computed;
// if its key differs from the last recorded key, the location is rewritten -
// by replace when the suppress flag is set, by push otherwise.
func (m *Machine) Sync(changed ...Field) {
	if !touchesNav(changed) {
		return
	}

	snap := m.store.NavSnapshot()
	snap = Normalize(string(snap.Tab), string(snap.SubTab), string(snap.Admin))
	key := snap.Key()

	if m.suppressPush {
		m.suppressPush = false
		if key != m.lastKey {
			m.history.Replace(snap.RewriteURL(m.history.Location()), State{App: true, Snapshot: snap})
			m.lastKey = key
		}
		return
	}

	if key == m.lastKey {
		return
	}
	m.history.Push(snap.RewriteURL(m.history.Location()), State{App: true, Snapshot: snap})
	m.lastKey = key
}

func touchesNav(changed []Field) bool {
	for _, f := range changed {
		if _, ok := navFields[f]; ok {
			return true
		}
	}
	return false
}

func appState(state any) (State, bool) {
	s, ok := state.(State)
	if !ok || !s.App {
		return State{}, false
	}
	return s, true
}
