package mongodb

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/Abdurahmanit/GroupProject/agrilink-service/internal/config"
	"github.com/Abdurahmanit/GroupProject/agrilink-service/internal/domain"
	"github.com/Abdurahmanit/GroupProject/agrilink-service/internal/platform/logger"
	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// startMongo runs a throwaway MongoDB container and returns a connected gateway.
func startMongo(t *testing.T) *Gateway {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping MongoDB integration test in -short mode")
	}

	pool, err := dockertest.NewPool("")
	if err != nil {
		t.Skipf("docker unavailable: %v", err)
	}
	if err := pool.Client.Ping(); err != nil {
		t.Skipf("docker unavailable: %v", err)
	}
	pool.MaxWait = 90 * time.Second

	resource, err := pool.RunWithOptions(&dockertest.RunOptions{
		Repository: "mongo",
		Tag:        "6.0",
		Env: []string{
			"MONGO_INITDB_ROOT_USERNAME=root",
			"MONGO_INITDB_ROOT_PASSWORD=password",
		},
	}, func(hc *docker.HostConfig) {
		hc.AutoRemove = true
		hc.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	require.NoError(t, err, "could not start MongoDB resource")
	t.Cleanup(func() { _ = pool.Purge(resource) })

	cfg := config.MongoConfig{
		URI:            fmt.Sprintf("mongodb://root:password@%s/?authSource=admin", resource.GetHostPort("27017/tcp")),
		Database:       "agrilink_it",
		ConnectTimeout: 5 * time.Second,
	}

	var g *Gateway
	require.NoError(t, pool.Retry(func() error {
		var errRetry error
		g, errRetry = Connect(context.Background(), cfg, logger.NewNop())
		return errRetry
	}), "could not connect to MongoDB")
	t.Cleanup(func() { _ = g.Close(context.Background()) })
	return g
}

func TestListingRepository_Integration(t *testing.T) {
	g := startMongo(t)
	ctx := context.Background()
	repo := NewListingRepository(g, "", logger.NewNop())
	require.NoError(t, repo.EnsureIndexes(ctx))
	require.NoError(t, g.Ping(ctx))

	older := &domain.Listing{
		OwnerID: "farmer-1", OwnerDisplayName: "Asha", CropType: "Rice", WasteDescription: "straw",
		Quantity: 2, QuantityUnit: domain.UnitTon,
		Classification: &domain.Classification{CropType: "Rice", WasteType: "straw", EstimatedValue: 1850, Extra: map[string]any{"region": "Punjab"}},
	}
	olderID, err := repo.Create(ctx, older)
	require.NoError(t, err)
	time.Sleep(5 * time.Millisecond)
	newerID, err := repo.Create(ctx, &domain.Listing{OwnerID: "farmer-1", CropType: "Wheat", Quantity: 500, QuantityUnit: domain.UnitKg})
	require.NoError(t, err)

	listings, err := repo.FindByOwner(ctx, "farmer-1")
	require.NoError(t, err)
	require.Len(t, listings, 2)
	assert.Equal(t, newerID, listings[0].ID)
	assert.Equal(t, olderID, listings[1].ID)
	assert.Equal(t, listings[1].CreatedAt, listings[1].LastUpdated)
	assert.Equal(t, "Punjab", listings[1].Classification.Extra["region"])

	qty := 3.0
	_, err = repo.Update(ctx, olderID, "intruder", domain.ListingPatch{Quantity: &qty})
	assert.ErrorIs(t, err, domain.ErrNotOwned)

	modified, err := repo.Update(ctx, olderID, "farmer-1", domain.ListingPatch{Quantity: &qty})
	require.NoError(t, err)
	assert.True(t, modified)

	listings, err = repo.FindByOwner(ctx, "farmer-1")
	require.NoError(t, err)
	assert.Equal(t, 3.0, listings[1].Quantity)
	assert.True(t, !listings[1].LastUpdated.Before(listings[1].CreatedAt))

	deleted, err := repo.Delete(ctx, olderID, "farmer-1")
	require.NoError(t, err)
	assert.True(t, deleted)
	deleted, err = repo.Delete(ctx, olderID, "farmer-1")
	assert.ErrorIs(t, err, domain.ErrNotOwned)
	assert.False(t, deleted)
}
