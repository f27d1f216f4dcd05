package mongodb

import (
	"testing"
	"time"

	"github.com/Abdurahmanit/GroupProject/agrilink-service/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientOptions(t *testing.T) {
	opts := clientOptions(config.MongoConfig{
		URI:         "mongodb://localhost:27017",
		Username:    "agri",
		Password:    "secret",
		MaxPoolSize: 50,
	}, "agrilink-test")

	require.NoError(t, opts.Validate())
	assert.Equal(t, "agrilink-test", *opts.AppName)
	assert.Equal(t, 10*time.Second, *opts.ConnectTimeout)
	assert.Equal(t, 10*time.Second, *opts.ServerSelectionTimeout)
	assert.Equal(t, uint64(50), *opts.MaxPoolSize)
	assert.Nil(t, opts.MinPoolSize)
	require.NotNil(t, opts.Auth)
	assert.Equal(t, "agri", opts.Auth.Username)
}

func TestClientOptions_NoCredentialsWithoutPassword(t *testing.T) {
	opts := clientOptions(config.MongoConfig{URI: "mongodb://localhost:27017", Username: "agri", ConnectTimeout: 2 * time.Second}, "agrilink-test")
	assert.Nil(t, opts.Auth)
	assert.Equal(t, 2*time.Second, *opts.ConnectTimeout)
}
