package router

import (
	"context"

	"github.com/Abdurahmanit/GroupProject/agrilink-service/internal/domain"
	"github.com/Abdurahmanit/GroupProject/agrilink-service/internal/insights"
	"github.com/Abdurahmanit/GroupProject/agrilink-service/internal/usecase"
	"github.com/Abdurahmanit/GroupProject/agrilink-service/internal/valuation"
	"github.com/stretchr/testify/mock"
)

type MockListingService struct{ mock.Mock }

func (m *MockListingService) SubmitListing(ctx context.Context, in usecase.SubmitInput) (*usecase.SubmitResult, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*usecase.SubmitResult), args.Error(1)
}

func (m *MockListingService) UpdateListing(ctx context.Context, id, userID string, patch domain.ListingPatch) (*usecase.MutationResult, error) {
	args := m.Called(ctx, id, userID, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*usecase.MutationResult), args.Error(1)
}

func (m *MockListingService) DeleteListing(ctx context.Context, id, userID string) (*usecase.MutationResult, error) {
	args := m.Called(ctx, id, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*usecase.MutationResult), args.Error(1)
}

func (m *MockListingService) ListingsByUser(ctx context.Context, userID string, q insights.Query) ([]*domain.Listing, error) {
	args := m.Called(ctx, userID, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Listing), args.Error(1)
}

type MockValuationService struct{ mock.Mock }

func (m *MockValuationService) Analyze(ctx context.Context, req valuation.Request) (*domain.Classification, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Classification), args.Error(1)
}

type MockDashboardService struct{ mock.Mock }

func (m *MockDashboardService) Portfolio(ctx context.Context, userID string, q insights.Query) (*usecase.PortfolioView, error) {
	args := m.Called(ctx, userID, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*usecase.PortfolioView), args.Error(1)
}

func (m *MockDashboardService) CarbonWallet(ctx context.Context, userID string) (*usecase.WalletView, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*usecase.WalletView), args.Error(1)
}

type MockTenderService struct{ mock.Mock }

func (m *MockTenderService) ListTenders(ctx context.Context, q insights.TenderQuery) ([]*domain.Tender, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Tender), args.Error(1)
}

type MockHealth struct{ mock.Mock }

func (m *MockHealth) Ping(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}
