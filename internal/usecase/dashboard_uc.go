package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Abdurahmanit/GroupProject/agrilink-service/internal/domain"
	"github.com/Abdurahmanit/GroupProject/agrilink-service/internal/insights"
	"github.com/Abdurahmanit/GroupProject/agrilink-service/internal/platform/logger"
	"go.uber.org/zap"
)

// DashboardUsecase recomputes the seller dashboards from stored listings on every call.
type DashboardUsecase struct {
	repo   domain.ListingRepository
	logger *logger.Logger
	now    func() time.Time
}

func NewDashboardUsecase(repo domain.ListingRepository, log *logger.Logger) *DashboardUsecase {
	return &DashboardUsecase{repo: repo, logger: log.Named("DashboardUsecase"), now: time.Now}
}

// PortfolioView is the portfolio page: stats over all listings plus the filtered sales list.
type PortfolioView struct {
	Stats insights.Portfolio
	Sales []*domain.Listing
}

// WalletView is the carbon wallet page.
type WalletView struct {
	Wallet       insights.Wallet
	Transactions []insights.Transaction
}

func (uc *DashboardUsecase) Portfolio(ctx context.Context, userID string, q insights.Query) (*PortfolioView, error) {
	ctx, span := tracer.Start(ctx, "DashboardUsecase.Portfolio")
	defer span.End()

	listings, err := uc.listings(ctx, userID)
	if err != nil {
		return nil, err
	}
	view := &PortfolioView{
		Stats: insights.PortfolioStats(listings),
		Sales: insights.FilterListings(listings, q),
	}
	uc.logger.Debug("Portfolio computed", zap.String("user_id", userID), zap.Int("transactions", view.Stats.Transactions))
	return view, nil
}

func (uc *DashboardUsecase) CarbonWallet(ctx context.Context, userID string) (*WalletView, error) {
	ctx, span := tracer.Start(ctx, "DashboardUsecase.CarbonWallet")
	defer span.End()

	listings, err := uc.listings(ctx, userID)
	if err != nil {
		return nil, err
	}
	view := &WalletView{
		Wallet:       insights.CarbonWallet(listings, uc.now()),
		Transactions: insights.TransactionHistory(listings),
	}
	uc.logger.Debug("Carbon wallet computed", zap.String("user_id", userID), zap.Int64("tokens", view.Wallet.TotalTokens))
	return view, nil
}

func (uc *DashboardUsecase) listings(ctx context.Context, userID string) ([]*domain.Listing, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, requiredField("userId")
	}
	listings, err := uc.repo.FindByOwner(ctx, userID)
	if err != nil {
		uc.logger.Error("Failed to load listings for dashboard", zap.String("user_id", userID), zap.Error(err))
		return nil, fmt.Errorf("find listings: %w", err)
	}
	return listings, nil
}
