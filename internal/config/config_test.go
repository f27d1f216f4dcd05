package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, "agrilink-service", cfg.ServiceName)
	assert.Equal(t, "8080", cfg.HTTP.Port)
	assert.Equal(t, "agrilink", cfg.Mongo.Database)
	assert.Equal(t, "wasteMaterial", cfg.Mongo.ListingsColl)
	assert.Equal(t, "marketplaceWasteData", cfg.Mongo.TendersColl)
	assert.Equal(t, "waste-bucket", cfg.Storage.Bucket)
	assert.Equal(t, "wasteMaterialImage", cfg.Storage.PathPrefix)
	assert.Equal(t, "gemini-1.5-flash", cfg.Gemini.Model)
	assert.InDelta(t, 0.7, cfg.Gemini.Temperature, 1e-6)
	assert.InDelta(t, 0.9, cfg.Gemini.TopP, 1e-6)
	assert.Equal(t, 45*time.Second, cfg.Gemini.Timeout)
	assert.Equal(t, 5*time.Minute, cfg.Redis.TenderTTL)
}

func TestLoadConfig_EnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	yaml := []byte(`
http:
  port: "9000"
mongo:
  uri: mongodb://file-host:27017
  database: fromfile
storage:
  bucket: photos
`)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), yaml, 0o600))
	t.Setenv("AGRILINK_MONGO_URI", "mongodb://env-host:27017")
	t.Setenv("AGRILINK_GEMINI_API_KEY", "secret")

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)
	assert.Equal(t, "9000", cfg.HTTP.Port)
	assert.Equal(t, "mongodb://env-host:27017", cfg.Mongo.URI)
	assert.Equal(t, "fromfile", cfg.Mongo.Database)
	assert.Equal(t, "photos", cfg.Storage.Bucket)
	assert.Equal(t, "secret", cfg.Gemini.APIKey)
}

func TestLoadConfig_MissingPathFallsBackToDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "agrilink", cfg.Mongo.Database)
}

func TestLoadConfig_BrokenFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("http: [unclosed"), 0o600))
	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	valid := Config{
		HTTP:    HTTPConfig{Port: "8080"},
		Mongo:   MongoConfig{URI: "mongodb://x", Database: "agrilink"},
		Storage: StorageConfig{Bucket: "waste-bucket"},
	}
	require.NoError(t, valid.Validate())

	noURI := valid
	noURI.Mongo.URI = ""
	assert.EqualError(t, noURI.Validate(), "mongo.uri is required")

	noBucket := valid
	noBucket.Storage.Bucket = ""
	assert.EqualError(t, noBucket.Validate(), "storage.bucket is required")
}
