// Package nav keeps the console's tab navigation state in lock-step with a
// browser-style history: snapshots of {tab, sub-tab, admin panel} are
// normalized into a closed set of valid combinations, serialized into the
// location's query string, and restored exactly on back/forward traversal.
package nav

import (
	"net/url"
	"slices"
)

// Tab is a top-level console tab.
type Tab string

const (
	TabLibrary Tab = "library"
	TabSearch  Tab = "search"
	TabCurate  Tab = "curate"
	TabAdmin   Tab = "admin"
)

// DefaultTab is where unknown or missing tabs land.
const DefaultTab = TabLibrary

// SubTab is a sub-tab within a top-level tab. Validity is tab-dependent.
type SubTab string

const (
	// library
	SubTabPhotos   SubTab = "photos"
	SubTabKeywords SubTab = "keywords"
	SubTabAlbums   SubTab = "albums"
	// search
	SubTabHome    SubTab = "home"
	SubTabResults SubTab = "results"
	SubTabSaved   SubTab = "saved"
	// curate
	SubTabRate    SubTab = "rate"
	SubTabCompare SubTab = "compare"
	// admin
	SubTabTenants SubTab = "tenants"
	SubTabStorage SubTab = "storage"
)

// AdminPanel is the keyword-administration sub-panel, meaningful only under
// library/keywords.
type AdminPanel string

const (
	AdminPanelNone  AdminPanel = ""
	AdminPanelList  AdminPanel = "list"
	AdminPanelBatch AdminPanel = "batch"
)

// Tabs lists the top-level tabs in display order.
var Tabs = []Tab{TabLibrary, TabSearch, TabCurate, TabAdmin}

// subTabs is the per-tab allow-list. The first entry is the tab's default.
var subTabs = map[Tab][]SubTab{
	TabLibrary: {SubTabPhotos, SubTabKeywords, SubTabAlbums},
	TabSearch:  {SubTabHome, SubTabResults, SubTabSaved},
	TabCurate:  {SubTabRate, SubTabCompare},
	TabAdmin:   {SubTabTenants, SubTabStorage},
}

var adminPanels = []AdminPanel{AdminPanelList, AdminPanelBatch}

// SubTabs returns the allow-list of sub-tabs for a tab, defaults first.
func SubTabs(tab Tab) []SubTab {
	return slices.Clone(subTabs[tab])
}

// Query parameter names in the location's query string.
const (
	paramTab    = "tab"
	paramSubTab = "subtab"
	paramAdmin  = "admin"
)

// Snapshot is a normalized navigation state. Every snapshot produced by
// Normalize is a member of the closed valid set.
type Snapshot struct {
	Tab    Tab
	SubTab SubTab
	Admin  AdminPanel
}

// Normalize maps raw tab/sub-tab/admin strings to a valid snapshot. It is
// total and idempotent: unknown or missing inputs map to defaults, never to
// an error.
func Normalize(tab, subTab, admin string) Snapshot {
	t := Tab(tab)
	allowed, ok := subTabs[t]
	if !ok {
		t = DefaultTab
		allowed = subTabs[t]
	}

	st := SubTab(subTab)
	if !slices.Contains(allowed, st) {
		st = allowed[0]
	}

	// The admin panel only means something under library/keywords; it is
	// dropped everywhere else.
	var ap AdminPanel
	if t == TabLibrary && st == SubTabKeywords {
		ap = AdminPanel(admin)
		if !slices.Contains(adminPanels, ap) {
			ap = AdminPanelList
		}
	}

	return Snapshot{Tab: t, SubTab: st, Admin: ap}
}

// FromQuery normalizes the navigation parameters of a query string.
func FromQuery(q url.Values) Snapshot {
	return Normalize(q.Get(paramTab), q.Get(paramSubTab), q.Get(paramAdmin))
}

// Key is the canonical serialized form of the snapshot, used to detect
// whether navigation state actually changed.
func (s Snapshot) Key() string {
	q := url.Values{}
	q.Set(paramTab, string(s.Tab))
	q.Set(paramSubTab, string(s.SubTab))
	if s.Admin != AdminPanelNone {
		q.Set(paramAdmin, string(s.Admin))
	}
	return q.Encode()
}

// RewriteURL returns a copy of u with the navigation parameters rewritten to
// this snapshot. All other query parameters and the fragment are preserved
// verbatim.
func (s Snapshot) RewriteURL(u *url.URL) *url.URL {
	rewritten := *u
	q := rewritten.Query()
	q.Set(paramTab, string(s.Tab))
	q.Set(paramSubTab, string(s.SubTab))
	if s.Admin != AdminPanelNone {
		q.Set(paramAdmin, string(s.Admin))
	} else {
		q.Del(paramAdmin)
	}
	rewritten.RawQuery = q.Encode()
	return &rewritten
}

// ViewKey identifies the sub-tab for view-state caching purposes.
func (s Snapshot) ViewKey() string {
	return string(s.Tab) + "/" + string(s.SubTab)
}
