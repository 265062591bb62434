package photo

import (
	"context"
	"fmt"
	"slices"

	"github.com/camdeck/darkroom/internal/logging"
	"github.com/camdeck/darkroom/internal/pubsub"
)

// Service fronts the remote photo library. Mutations are optimistic: the
// local cache is updated immediately and events published; reconciliation
// with the remote store is the request layer's concern, not the UI's.
type Service struct {
	table  *table
	broker *pubsub.Broker[*Photo]

	logger logging.Interface
}

type ServiceOptions struct {
	Logger logging.Interface
}

func NewService(opts ServiceOptions) *Service {
	logger := opts.Logger
	if logger == nil {
		logger = logging.Discard
	}
	broker := pubsub.NewBroker[*Photo](logger)
	return &Service{
		table:  newTable(broker),
		broker: broker,
		logger: logger,
	}
}

// Page is one page of a listing.
type Page struct {
	Photos []*Photo
	Offset int
	Limit  int
	// Total photos matching the filter, across all pages.
	Total int
}

// List returns the page of photos matching the filter, ordered by capture
// time, newest first. An offset beyond the end returns an empty page rather
// than an error.
func (s *Service) List(f Filter, offset, limit int) Page {
	matched := make([]*Photo, 0)
	for _, p := range s.table.list() {
		if f.match(p) {
			matched = append(matched, p)
		}
	}
	slices.SortFunc(matched, func(a, b *Photo) int {
		if c := b.Taken.Compare(a.Taken); c != 0 {
			return c
		}
		// Stable tiebreak so paging never straddles duplicates.
		if a.Path < b.Path {
			return -1
		}
		return 1
	})

	page := Page{Offset: offset, Limit: limit, Total: len(matched)}
	if limit <= 0 || offset < 0 || offset >= len(matched) {
		return page
	}
	page.Photos = matched[offset:min(offset+limit, len(matched))]
	return page
}

// Get retrieves a single photo.
func (s *Service) Get(id ID) (*Photo, error) {
	return s.table.get(id)
}

// Rate sets the rating on each photo.
func (s *Service) Rate(ids []ID, rating int) error {
	if rating < 0 || rating > 5 {
		return fmt.Errorf("rating must be between 0 and 5: %d", rating)
	}
	for _, id := range ids {
		if _, err := s.table.update(id, func(p *Photo) error {
			p.Rating = rating
			return nil
		}); err != nil {
			return fmt.Errorf("rating photo: %w", err)
		}
	}
	s.logger.Info("rated photos", "count", len(ids), "rating", rating)
	return nil
}

// Tag adds a keyword to each photo. Adding a keyword a photo already carries
// is a no-op.
func (s *Service) Tag(ids []ID, keyword string) error {
	if keyword == "" {
		return fmt.Errorf("keyword cannot be empty")
	}
	for _, id := range ids {
		if _, err := s.table.update(id, func(p *Photo) error {
			if !p.HasKeyword(keyword) {
				p.Keywords = append(p.Keywords, keyword)
			}
			return nil
		}); err != nil {
			return fmt.Errorf("tagging photo: %w", err)
		}
	}
	s.logger.Info("tagged photos", "count", len(ids), "keyword", keyword)
	return nil
}

// Untag removes a keyword from each photo.
func (s *Service) Untag(ids []ID, keyword string) error {
	for _, id := range ids {
		if _, err := s.table.update(id, func(p *Photo) error {
			p.Keywords = slices.DeleteFunc(p.Keywords, func(k string) bool {
				return k == keyword
			})
			return nil
		}); err != nil {
			return fmt.Errorf("untagging photo: %w", err)
		}
	}
	return nil
}

// Add inserts a photo into the cache.
func (s *Service) Add(p *Photo) {
	s.table.add(p.ID, p)
}

// Keywords returns the distinct keywords across the library, sorted.
func (s *Service) Keywords() []string {
	seen := make(map[string]struct{})
	for _, p := range s.table.list() {
		for _, k := range p.Keywords {
			seen[k] = struct{}{}
		}
	}
	kws := make([]string, 0, len(seen))
	for k := range seen {
		kws = append(kws, k)
	}
	slices.Sort(kws)
	return kws
}

// Subscribe to photo events.
func (s *Service) Subscribe(ctx context.Context) <-chan pubsub.Event[*Photo] {
	return s.broker.Subscribe(ctx)
}
