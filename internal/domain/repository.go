package domain

import (
	"context"
	"time"
)

// ListingRepository persists waste listings. Update and Delete verify ownership
// before writing and return ErrNotOwned when the id does not belong to ownerID.
type ListingRepository interface {
	Create(ctx context.Context, listing *Listing) (string, error)
	FindByOwner(ctx context.Context, ownerID string) ([]*Listing, error)
	Update(ctx context.Context, id, ownerID string, patch ListingPatch) (bool, error)
	Delete(ctx context.Context, id, ownerID string) (bool, error)
}

// TenderRepository reads the marketplace tender feed.
type TenderRepository interface {
	FindAll(ctx context.Context) ([]*Tender, error)
}

// ImageStore keeps listing photos. Store returns nil when nothing was stored.
type ImageStore interface {
	Store(ctx context.Context, dataURI string) *StoredImage
}

// Classifier sends a prompt, optionally with an image, and returns the model's free text.
type Classifier interface {
	Classify(ctx context.Context, prompt string, image *InlineImage) (string, error)
}

// EventPublisher emits listing lifecycle events.
type EventPublisher interface {
	Publish(ctx context.Context, subject string, data interface{}) error
}

// CacheRepository is a byte-oriented cache. Get returns ErrCacheMiss when the key is absent.
type CacheRepository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}
