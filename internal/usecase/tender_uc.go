package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Abdurahmanit/GroupProject/agrilink-service/internal/domain"
	"github.com/Abdurahmanit/GroupProject/agrilink-service/internal/insights"
	"github.com/Abdurahmanit/GroupProject/agrilink-service/internal/platform/logger"
	"go.uber.org/zap"
)

const (
	tendersCacheKey        = "tenders:all"
	defaultTendersCacheTTL = 5 * time.Minute
)

// TenderUsecase serves the marketplace feed through a cache-aside layer.
type TenderUsecase struct {
	repo     domain.TenderRepository
	cache    domain.CacheRepository
	cacheTTL time.Duration
	logger   *logger.Logger
}

// NewTenderUsecase creates the marketplace usecase. cache may be nil.
func NewTenderUsecase(repo domain.TenderRepository, cache domain.CacheRepository, ttl time.Duration, log *logger.Logger) *TenderUsecase {
	if ttl <= 0 {
		ttl = defaultTendersCacheTTL
	}
	return &TenderUsecase{repo: repo, cache: cache, cacheTTL: ttl, logger: log.Named("TenderUsecase")}
}

// ListTenders returns the stored tenders. A zero query returns them unchanged in store order.
func (uc *TenderUsecase) ListTenders(ctx context.Context, q insights.TenderQuery) ([]*domain.Tender, error) {
	ctx, span := tracer.Start(ctx, "TenderUsecase.ListTenders")
	defer span.End()

	if tenders, ok := uc.fromCache(ctx); ok {
		return insights.FilterTenders(tenders, q), nil
	}

	tenders, err := uc.repo.FindAll(ctx)
	if err != nil {
		span.RecordError(err)
		uc.logger.Error("Failed to load tenders", zap.Error(err))
		return nil, fmt.Errorf("find tenders: %w", err)
	}
	uc.toCache(ctx, tenders)
	return insights.FilterTenders(tenders, q), nil
}

func (uc *TenderUsecase) fromCache(ctx context.Context) ([]*domain.Tender, bool) {
	if uc.cache == nil {
		return nil, false
	}
	cached, err := uc.cache.Get(ctx, tendersCacheKey)
	if err != nil {
		if !errors.Is(err, domain.ErrCacheMiss) {
			uc.logger.Warn("Failed to get tenders from cache (not a cache miss)", zap.Error(err))
		}
		return nil, false
	}
	var tenders []*domain.Tender
	if err := json.Unmarshal(cached, &tenders); err != nil {
		uc.logger.Error("Failed to unmarshal tenders from cache", zap.Error(err))
		if delErr := uc.cache.Delete(ctx, tendersCacheKey); delErr != nil {
			uc.logger.Warn("Failed to delete corrupted data from cache", zap.Error(delErr))
		}
		return nil, false
	}
	uc.logger.Debug("Tenders fetched from cache", zap.Int("count", len(tenders)))
	return tenders, true
}

func (uc *TenderUsecase) toCache(ctx context.Context, tenders []*domain.Tender) {
	if uc.cache == nil {
		return
	}
	data, err := json.Marshal(tenders)
	if err != nil {
		uc.logger.Warn("Failed to marshal tenders for caching", zap.Error(err))
		return
	}
	if err := uc.cache.Set(ctx, tendersCacheKey, data, uc.cacheTTL); err != nil {
		uc.logger.Warn("Failed to set tenders in cache", zap.Error(err))
	}
}
