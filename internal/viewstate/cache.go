package viewstate

// DefaultsFunc generates the fresh state for a sub-tab's first-ever visit:
// zeroed pagination, empty selection, and the sub-tab's static default
// filters.
type DefaultsFunc func(Key) State

// Cache is a tab-keyed store of view-state snapshots. It lives for the app
// session; snapshots go in on sub-tab departure and come back out, as deep
// copies, on return.
type Cache struct {
	entries  map[Key]State
	defaults DefaultsFunc
}

func NewCache(defaults DefaultsFunc) *Cache {
	if defaults == nil {
		defaults = func(Key) State {
			return State{Filters: make(map[string]string)}
		}
	}
	return &Cache{
		entries:  make(map[Key]State),
		defaults: defaults,
	}
}

// Default returns a fresh default state for the sub-tab.
func (c *Cache) Default(key Key) State {
	return c.defaults(key).clone()
}

// Snapshot stores a deep copy of the live state under the key, overwriting
// any previous snapshot.
func (c *Cache) Snapshot(key Key, live State) {
	c.entries[key] = live.clone()
}

// Restore returns a deep copy of the sub-tab's stored state. On a first-ever
// visit the default state is stored and returned. The second return value
// reports whether the caller needs to re-fetch the photo listing: true iff
// the restored photo cache is empty.
func (c *Cache) Restore(key Key) (State, bool) {
	stored, ok := c.entries[key]
	if !ok {
		stored = c.defaults(key)
		c.entries[key] = stored.clone()
	}
	restored := stored.clone()
	return restored, len(restored.Photos) == 0
}

// Forget drops the snapshot for the key, if any. The next restore starts
// from defaults again.
func (c *Cache) Forget(key Key) {
	delete(c.entries, key)
}
