package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	redisAdapter "github.com/Abdurahmanit/GroupProject/agrilink-service/internal/adapter/cache/redis"
	"github.com/Abdurahmanit/GroupProject/agrilink-service/internal/config"
	"github.com/Abdurahmanit/GroupProject/agrilink-service/internal/domain"
	"github.com/Abdurahmanit/GroupProject/agrilink-service/internal/insights"
	"github.com/Abdurahmanit/GroupProject/agrilink-service/internal/platform/logger"
	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func seedTenders() []*domain.Tender {
	return []*domain.Tender{
		{ID: "1", Title: "Straw for boilers", WasteType: "straw", PricePerTon: 1800, Status: "open"},
		{ID: "2", Title: "Bagasse needed", WasteType: "bagasse", PricePerTon: 2500, Status: "open"},
	}
}

func TestListTenders_PassthroughThenCache(t *testing.T) {
	mr := miniredis.RunT(t)
	client, err := redisAdapter.NewRedisClient(context.Background(), config.RedisConfig{Address: mr.Addr()}, logger.NewNop())
	require.NoError(t, err)
	defer client.Close()

	repo := new(MockTenderRepository)
	repo.On("FindAll", mock.Anything).Return(seedTenders(), nil).Once()
	uc := NewTenderUsecase(repo, redisAdapter.NewRedisCacheRepository(client, "agrilink:", logger.NewNop()), time.Minute, logger.NewNop())

	first, err := uc.ListTenders(context.Background(), insights.TenderQuery{})
	require.NoError(t, err)
	assert.Equal(t, seedTenders(), first)
	assert.True(t, mr.Exists("agrilink:tenders:all"))

	second, err := uc.ListTenders(context.Background(), insights.TenderQuery{})
	require.NoError(t, err)
	assert.Equal(t, seedTenders(), second)

	sorted, err := uc.ListTenders(context.Background(), insights.TenderQuery{SortBy: insights.TenderSortPriceHigh})
	require.NoError(t, err)
	assert.Equal(t, "2", sorted[0].ID)
	repo.AssertNumberOfCalls(t, "FindAll", 1)
}

func TestListTenders_CacheErrorsAreBypassed(t *testing.T) {
	repo := new(MockTenderRepository)
	cache := new(MockCacheRepository)
	repo.On("FindAll", mock.Anything).Return(seedTenders(), nil)
	cache.On("Get", mock.Anything, "tenders:all").Return(nil, errors.New("connection refused"))
	cache.On("Set", mock.Anything, "tenders:all", mock.Anything, 5*time.Minute).Return(errors.New("connection refused"))

	uc := NewTenderUsecase(repo, cache, 0, logger.NewNop())
	out, err := uc.ListTenders(context.Background(), insights.TenderQuery{})
	require.NoError(t, err)
	assert.Len(t, out, 2)
	cache.AssertExpectations(t)
}

func TestListTenders_CorruptCacheEntryIsDropped(t *testing.T) {
	repo := new(MockTenderRepository)
	cache := new(MockCacheRepository)
	repo.On("FindAll", mock.Anything).Return(seedTenders(), nil)
	cache.On("Get", mock.Anything, "tenders:all").Return([]byte("{not json"), nil)
	cache.On("Delete", mock.Anything, "tenders:all").Return(nil)
	cache.On("Set", mock.Anything, "tenders:all", mock.MatchedBy(func(b []byte) bool {
		var ts []*domain.Tender
		return json.Unmarshal(b, &ts) == nil && len(ts) == 2
	}), 5*time.Minute).Return(nil)

	uc := NewTenderUsecase(repo, cache, 0, logger.NewNop())
	_, err := uc.ListTenders(context.Background(), insights.TenderQuery{})
	require.NoError(t, err)
	cache.AssertExpectations(t)
}

func TestListTenders_StorageError(t *testing.T) {
	repo := new(MockTenderRepository)
	repo.On("FindAll", mock.Anything).Return(nil, &domain.StorageError{Collection: "marketplaceWasteData", Message: "down"})

	uc := NewTenderUsecase(repo, nil, 0, logger.NewNop())
	_, err := uc.ListTenders(context.Background(), insights.TenderQuery{})
	assert.ErrorIs(t, err, domain.ErrStorage)
}
