// Package viewstate snapshots and restores a sub-tab's filter, pagination
// and selection state across sub-tab switches, so returning to a sub-tab
// shows it exactly as it was left.
package viewstate

import (
	"slices"

	"github.com/camdeck/darkroom/internal/photo"
	"golang.org/x/exp/maps"
)

// Key identifies a sub-tab's view state, e.g. "library/photos".
type Key string

type Pagination struct {
	Offset int
	Limit  int
	Total  int
}

// State is everything a sub-tab view carries that must survive a sub-tab
// switch. It is created lazily on first visit, overwritten wholesale on every
// departure, and restored by replacement, never merged.
type State struct {
	// Filters are the view's filter fields by name.
	Filters map[string]string
	// Photos is the cached page of photos. May be stale; an empty cache
	// signals the caller to re-fetch on restore.
	Photos []*photo.Photo
	// Pagination of the listing.
	Pagination Pagination
	// Selection holds the selected photo ids.
	Selection []photo.ID
	// DisplayOrder is the id sequence the selection indices refer to.
	DisplayOrder []photo.ID
}

// clone deep-copies the state: a restored state must be independent of any
// later mutation of the live state it was snapshotted from, and vice versa.
func (s State) clone() State {
	c := State{
		Filters:      maps.Clone(s.Filters),
		Pagination:   s.Pagination,
		Selection:    slices.Clone(s.Selection),
		DisplayOrder: slices.Clone(s.DisplayOrder),
	}
	if s.Photos != nil {
		c.Photos = make([]*photo.Photo, len(s.Photos))
		for i, p := range s.Photos {
			cp := *p
			cp.Keywords = slices.Clone(p.Keywords)
			c.Photos[i] = &cp
		}
	}
	return c
}
