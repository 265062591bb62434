package nav

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name              string
		tab, subTab, admin string
		want              Snapshot
	}{
		{
			name: "empty input lands on defaults",
			want: Snapshot{Tab: TabLibrary, SubTab: SubTabPhotos},
		},
		{
			name: "garbage everywhere lands on defaults",
			tab:  "zzz", subTab: "���", admin: "nope",
			want: Snapshot{Tab: TabLibrary, SubTab: SubTabPhotos},
		},
		{
			name: "valid combination is retained",
			tab:  "search", subTab: "saved",
			want: Snapshot{Tab: TabSearch, SubTab: SubTabSaved},
		},
		{
			name: "subtab outside tab's allow-list falls back to tab default",
			tab:  "curate", subTab: "photos",
			want: Snapshot{Tab: TabCurate, SubTab: SubTabRate},
		},
		{
			name: "admin panel dropped outside library/keywords",
			tab:  "search", subTab: "home", admin: "batch",
			want: Snapshot{Tab: TabSearch, SubTab: SubTabHome},
		},
		{
			name: "admin panel retained under library/keywords",
			tab:  "library", subTab: "keywords", admin: "batch",
			want: Snapshot{Tab: TabLibrary, SubTab: SubTabKeywords, Admin: AdminPanelBatch},
		},
		{
			name: "unknown admin panel under library/keywords defaults",
			tab:  "library", subTab: "keywords", admin: "wat",
			want: Snapshot{Tab: TabLibrary, SubTab: SubTabKeywords, Admin: AdminPanelList},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize(tt.tab, tt.subTab, tt.admin)
			assert.Equal(t, tt.want, got)

			// Idempotence: normalizing a normalized snapshot is a fixpoint.
			again := Normalize(string(got.Tab), string(got.SubTab), string(got.Admin))
			assert.Equal(t, got, again)
		})
	}
}

func TestSnapshot_QueryRoundTrip(t *testing.T) {
	// The snapshot/query-string mapping is a bijection restricted to the
	// valid snapshot set.
	for _, tab := range Tabs {
		for _, sub := range SubTabs(tab) {
			snap := Normalize(string(tab), string(sub), "list")
			u := snap.RewriteURL(&url.URL{Path: "/"})
			back := FromQuery(u.Query())
			assert.Equal(t, snap, back, "round-trip of %s", snap.Key())
		}
	}
}

func TestSnapshot_KeyCanonical(t *testing.T) {
	a := Normalize("library", "keywords", "list")
	b := Normalize("library", "keywords", "")
	assert.Equal(t, a.Key(), b.Key())

	c := Normalize("library", "photos", "")
	assert.NotEqual(t, a.Key(), c.Key())
}

func TestSnapshot_RewriteURLPreservesForeignParts(t *testing.T) {
	u, err := url.Parse("https://console.local/app?tenant=acme&tab=library&zoom=2#grid")
	require.NoError(t, err)

	snap := Normalize("search", "results", "")
	got := snap.RewriteURL(u)

	q := got.Query()
	assert.Equal(t, "acme", q.Get("tenant"), "foreign query param preserved")
	assert.Equal(t, "2", q.Get("zoom"), "foreign query param preserved")
	assert.Equal(t, "search", q.Get("tab"))
	assert.Equal(t, "results", q.Get("subtab"))
	assert.Equal(t, "grid", got.Fragment, "fragment preserved")

	// The input URL is untouched.
	assert.Equal(t, "library", u.Query().Get("tab"))
}

func TestSnapshot_ViewKey(t *testing.T) {
	assert.Equal(t, "search/home", Normalize("search", "home", "").ViewKey())
}
