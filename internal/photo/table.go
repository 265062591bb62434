package photo

import (
	"errors"
	"fmt"
	"sync"

	"github.com/camdeck/darkroom/internal/pubsub"
	"golang.org/x/exp/maps"
)

var ErrNotFound = errors.New("photo not found")

// table is an in-memory store of photos that emits events upon changes. It
// stands in for the remote library's client-side cache.
type table struct {
	rows map[ID]*Photo
	mu   sync.RWMutex

	pub *pubsub.Broker[*Photo]
}

func newTable(pub *pubsub.Broker[*Photo]) *table {
	return &table{
		rows: make(map[ID]*Photo),
		pub:  pub,
	}
}

func (t *table) add(id ID, row *Photo) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.rows[id] = row
	t.pub.Publish(pubsub.CreatedEvent, row)
}

func (t *table) update(id ID, updater func(existing *Photo) error) (*Photo, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	row, ok := t.rows[id]
	if !ok {
		return nil, ErrNotFound
	}
	if err := updater(row); err != nil {
		return nil, err
	}
	t.rows[id] = row

	t.pub.Publish(pubsub.UpdatedEvent, row)
	return row, nil
}

func (t *table) delete(id ID) {
	t.mu.Lock()
	defer t.mu.Unlock()

	row := t.rows[id]
	delete(t.rows, id)
	t.pub.Publish(pubsub.DeletedEvent, row)
}

func (t *table) get(id ID) (*Photo, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	row, ok := t.rows[id]
	if !ok {
		return nil, fmt.Errorf("%s: %w", id, ErrNotFound)
	}
	return row, nil
}

func (t *table) list() []*Photo {
	t.mu.RLock()
	defer t.mu.RUnlock()

	return maps.Values(t.rows)
}
