package photo

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTest(t *testing.T) (*Service, []*Photo) {
	t.Helper()

	svc := NewService(ServiceOptions{})
	base := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	photos := []*Photo{
		New(Options{Path: "street/IMG_0001.raw", Rating: 2, Keywords: []string{"bw"}, Taken: base}),
		New(Options{Path: "street/IMG_0002.raw", Rating: 5, Keywords: []string{"bw", "keeper"}, Taken: base.Add(time.Hour)}),
		New(Options{Path: "alps/IMG_0003.raw", Rating: 4, Keywords: []string{"landscape"}, Taken: base.Add(2 * time.Hour)}),
		New(Options{Path: "alps/IMG_0004.raw", Rating: 0, Taken: base.Add(3 * time.Hour)}),
	}
	for _, p := range photos {
		svc.Add(p)
	}
	return svc, photos
}

func TestService_ListNewestFirst(t *testing.T) {
	svc, photos := setupTest(t)

	page := svc.List(Filter{}, 0, 10)

	require.Len(t, page.Photos, 4)
	assert.Equal(t, 4, page.Total)
	assert.Equal(t, photos[3].ID, page.Photos[0].ID)
	assert.Equal(t, photos[0].ID, page.Photos[3].ID)
}

func TestService_ListFiltered(t *testing.T) {
	svc, _ := setupTest(t)

	tests := []struct {
		name   string
		filter Filter
		want   int
	}{
		{"by keyword", Filter{Keyword: "bw"}, 2},
		{"by min rating", Filter{MinRating: 4}, 2},
		{"by path query, case-insensitive", Filter{Query: "ALPS"}, 2},
		{"combined", Filter{Keyword: "bw", MinRating: 5}, 1},
		{"no match", Filter{Keyword: "missing"}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page := svc.List(tt.filter, 0, 10)
			assert.Equal(t, tt.want, page.Total)
			assert.Len(t, page.Photos, tt.want)
		})
	}
}

func TestService_ListPaging(t *testing.T) {
	svc, _ := setupTest(t)

	page := svc.List(Filter{}, 2, 2)
	assert.Len(t, page.Photos, 2)
	assert.Equal(t, 4, page.Total)

	// An offset beyond the end returns an empty page, not an error.
	page = svc.List(Filter{}, 10, 2)
	assert.Empty(t, page.Photos)
	assert.Equal(t, 4, page.Total)
}

func TestService_Rate(t *testing.T) {
	svc, photos := setupTest(t)

	err := svc.Rate([]ID{photos[0].ID, photos[3].ID}, 3)
	require.NoError(t, err)

	for _, id := range []ID{photos[0].ID, photos[3].ID} {
		got, err := svc.Get(id)
		require.NoError(t, err)
		assert.Equal(t, 3, got.Rating)
	}

	assert.Error(t, svc.Rate([]ID{photos[0].ID}, 6))
}

func TestService_TagUntag(t *testing.T) {
	svc, photos := setupTest(t)

	err := svc.Tag([]ID{photos[0].ID, photos[1].ID}, "client")
	require.NoError(t, err)

	// Tagging is idempotent per photo.
	require.NoError(t, svc.Tag([]ID{photos[0].ID}, "client"))
	got, err := svc.Get(photos[0].ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"bw", "client"}, got.Keywords)

	require.NoError(t, svc.Untag([]ID{photos[0].ID}, "client"))
	got, err = svc.Get(photos[0].ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"bw"}, got.Keywords)
}

func TestService_Keywords(t *testing.T) {
	svc, _ := setupTest(t)

	assert.Equal(t, []string{"bw", "keeper", "landscape"}, svc.Keywords())
}
