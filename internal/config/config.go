package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const envPrefix = "AGRILINK"

type Config struct {
	ServiceName string        `mapstructure:"service_name"`
	HTTP        HTTPConfig    `mapstructure:"http"`
	Mongo       MongoConfig   `mapstructure:"mongo"`
	Storage     StorageConfig `mapstructure:"storage"`
	Gemini      GeminiConfig  `mapstructure:"gemini"`
	NATS        NATSConfig    `mapstructure:"nats"`
	Redis       RedisConfig   `mapstructure:"redis"`
	Auth        AuthConfig    `mapstructure:"auth"`
	Metrics     MetricsConfig `mapstructure:"metrics"`
	Tracing     TracingConfig `mapstructure:"tracing"`
}

type HTTPConfig struct {
	Port            string        `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	MaxBodyBytes    int64         `mapstructure:"max_body_bytes"`
}

// MongoConfig describes the single document-store connection.
type MongoConfig struct {
	URI            string        `mapstructure:"uri"`
	Username       string        `mapstructure:"username"`
	Password       string        `mapstructure:"password"`
	Database       string        `mapstructure:"database"`
	ConnectTimeout time.Duration `mapstructure:"connect_timeout"`
	MinPoolSize    uint64        `mapstructure:"min_pool_size"`
	MaxPoolSize    uint64        `mapstructure:"max_pool_size"`
	ListingsColl   string        `mapstructure:"listings_collection"`
	TendersColl    string        `mapstructure:"tenders_collection"`
}

// StorageConfig is the S3-compatible object store used for listing photos.
type StorageConfig struct {
	Endpoint      string `mapstructure:"endpoint"`
	AccessKey     string `mapstructure:"access_key"`
	SecretKey     string `mapstructure:"secret_key"`
	UseSSL        bool   `mapstructure:"use_ssl"`
	Bucket        string `mapstructure:"bucket"`
	PathPrefix    string `mapstructure:"path_prefix"`
	PublicBaseURL string `mapstructure:"public_base_url"`
	CacheMaxAge   int    `mapstructure:"cache_max_age"`
}

type GeminiConfig struct {
	APIKey      string        `mapstructure:"api_key"`
	Model       string        `mapstructure:"model"`
	Temperature float32       `mapstructure:"temperature"`
	TopP        float32       `mapstructure:"top_p"`
	Timeout     time.Duration `mapstructure:"timeout"`
}

type NATSConfig struct {
	URL            string        `mapstructure:"url"`
	ConnectTimeout time.Duration `mapstructure:"connect_timeout"`
}

type RedisConfig struct {
	Address   string        `mapstructure:"address"`
	Password  string        `mapstructure:"password"`
	DB        int           `mapstructure:"db"`
	KeyPrefix string        `mapstructure:"key_prefix"`
	TenderTTL time.Duration `mapstructure:"tender_ttl"`
}

type AuthConfig struct {
	JWTSecret string `mapstructure:"jwt_secret"`
}

type MetricsConfig struct {
	Port string `mapstructure:"port"`
}

type TracingConfig struct {
	OTLPEndpoint string  `mapstructure:"otlp_endpoint"`
	SampleRatio  float64 `mapstructure:"sample_ratio"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("service_name", "agrilink-service")

	v.SetDefault("http.port", "8080")
	v.SetDefault("http.read_timeout", "15s")
	v.SetDefault("http.write_timeout", "60s")
	v.SetDefault("http.shutdown_timeout", "15s")
	v.SetDefault("http.max_body_bytes", 12<<20)

	v.SetDefault("mongo.uri", "mongodb://localhost:27017")
	v.SetDefault("mongo.username", "")
	v.SetDefault("mongo.password", "")
	v.SetDefault("mongo.database", "agrilink")
	v.SetDefault("mongo.connect_timeout", "10s")
	v.SetDefault("mongo.min_pool_size", 0)
	v.SetDefault("mongo.max_pool_size", 100)
	v.SetDefault("mongo.listings_collection", "wasteMaterial")
	v.SetDefault("mongo.tenders_collection", "marketplaceWasteData")

	v.SetDefault("storage.endpoint", "localhost:9000")
	v.SetDefault("storage.access_key", "minioadmin")
	v.SetDefault("storage.secret_key", "minioadmin")
	v.SetDefault("storage.use_ssl", false)
	v.SetDefault("storage.bucket", "waste-bucket")
	v.SetDefault("storage.path_prefix", "wasteMaterialImage")
	v.SetDefault("storage.public_base_url", "")
	v.SetDefault("storage.cache_max_age", 3600)

	v.SetDefault("gemini.api_key", "")
	v.SetDefault("gemini.model", "gemini-1.5-flash")
	v.SetDefault("gemini.temperature", 0.7)
	v.SetDefault("gemini.top_p", 0.9)
	v.SetDefault("gemini.timeout", "45s")

	v.SetDefault("nats.url", "nats://localhost:4222")
	v.SetDefault("nats.connect_timeout", "5s")

	v.SetDefault("redis.address", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.key_prefix", "agrilink:")
	v.SetDefault("redis.tender_ttl", "5m")

	v.SetDefault("auth.jwt_secret", "")
	v.SetDefault("metrics.port", "9093")
	v.SetDefault("tracing.otlp_endpoint", "")
	v.SetDefault("tracing.sample_ratio", 1.0)
}

// LoadConfig reads defaults, then the optional YAML file at path, then AGRILINK_* env vars.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if path != "" {
		if fi, err := os.Stat(path); err == nil {
			if fi.IsDir() {
				v.AddConfigPath(path)
				v.SetConfigName("config")
				v.SetConfigType("yaml")
			} else {
				v.SetConfigFile(path)
			}
			if err := v.ReadInConfig(); err != nil {
				var notFound viper.ConfigFileNotFoundError
				if !errors.As(err, &notFound) {
					return nil, fmt.Errorf("read config %s: %w", path, err)
				}
			}
		}
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the settings the service cannot start without.
func (c *Config) Validate() error {
	if c.Mongo.URI == "" {
		return errors.New("mongo.uri is required")
	}
	if c.Mongo.Database == "" {
		return errors.New("mongo.database is required")
	}
	if c.Storage.Bucket == "" {
		return errors.New("storage.bucket is required")
	}
	if c.HTTP.Port == "" {
		return errors.New("http.port is required")
	}
	return nil
}
