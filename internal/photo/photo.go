package photo

import (
	"time"

	"github.com/google/uuid"
)

// ID uniquely identifies a photo within a tenant's library.
type ID = uuid.UUID

// Photo is a single image in the library, as cached from the remote store.
type Photo struct {
	ID ID

	// Path of the original within the tenant's storage provider.
	Path string

	// Rating from 0 (unrated) to 5.
	Rating int

	// Keywords assigned to the photo.
	Keywords []string

	// Taken is the capture time from the image metadata.
	Taken time.Time

	// Size of the original in bytes.
	Size int64
}

type Options struct {
	Path     string
	Rating   int
	Keywords []string
	Taken    time.Time
	Size     int64
}

// New constructs a photo with a freshly minted ID.
func New(opts Options) *Photo {
	return &Photo{
		ID:       uuid.New(),
		Path:     opts.Path,
		Rating:   opts.Rating,
		Keywords: opts.Keywords,
		Taken:    opts.Taken,
		Size:     opts.Size,
	}
}

// HasKeyword reports whether the photo carries the given keyword.
func (p *Photo) HasKeyword(kw string) bool {
	for _, k := range p.Keywords {
		if k == kw {
			return true
		}
	}
	return false
}
