package usecase

import (
	"context"
	"time"

	"github.com/Abdurahmanit/GroupProject/agrilink-service/internal/domain"
	"github.com/stretchr/testify/mock"
)

type MockListingRepository struct{ mock.Mock }

func (m *MockListingRepository) Create(ctx context.Context, listing *domain.Listing) (string, error) {
	args := m.Called(ctx, listing)
	return args.String(0), args.Error(1)
}
func (m *MockListingRepository) FindByOwner(ctx context.Context, ownerID string) ([]*domain.Listing, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Listing), args.Error(1)
}
func (m *MockListingRepository) Update(ctx context.Context, id, ownerID string, patch domain.ListingPatch) (bool, error) {
	args := m.Called(ctx, id, ownerID, patch)
	return args.Bool(0), args.Error(1)
}
func (m *MockListingRepository) Delete(ctx context.Context, id, ownerID string) (bool, error) {
	args := m.Called(ctx, id, ownerID)
	return args.Bool(0), args.Error(1)
}

type MockImageStore struct{ mock.Mock }

func (m *MockImageStore) Store(ctx context.Context, dataURI string) *domain.StoredImage {
	args := m.Called(ctx, dataURI)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).(*domain.StoredImage)
}

type MockPublisher struct{ mock.Mock }

func (m *MockPublisher) Publish(ctx context.Context, subject string, data interface{}) error {
	args := m.Called(ctx, subject, data)
	return args.Error(0)
}

type MockClassifier struct{ mock.Mock }

func (m *MockClassifier) Classify(ctx context.Context, prompt string, image *domain.InlineImage) (string, error) {
	args := m.Called(ctx, prompt, image)
	return args.String(0), args.Error(1)
}

type MockTenderRepository struct{ mock.Mock }

func (m *MockTenderRepository) FindAll(ctx context.Context) ([]*domain.Tender, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Tender), args.Error(1)
}

type MockCacheRepository struct{ mock.Mock }

func (m *MockCacheRepository) Get(ctx context.Context, key string) ([]byte, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}
func (m *MockCacheRepository) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	args := m.Called(ctx, key, value, ttl)
	return args.Error(0)
}
func (m *MockCacheRepository) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}
