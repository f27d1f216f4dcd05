package mongodb

import (
	"context"
	"fmt"
	"time"

	"github.com/Abdurahmanit/GroupProject/agrilink-service/internal/config"
	"github.com/Abdurahmanit/GroupProject/agrilink-service/internal/platform/logger"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"
)

const defaultConnectTimeout = 10 * time.Second

// clientOptions translates cfg into driver options. Credentials are only set when both parts
// are present so a URI with embedded credentials keeps working.
func clientOptions(cfg config.MongoConfig, appName string) *options.ClientOptions {
	timeout := cfg.ConnectTimeout
	if timeout <= 0 {
		timeout = defaultConnectTimeout
	}
	opts := options.Client().
		ApplyURI(cfg.URI).
		SetAppName(appName).
		SetConnectTimeout(timeout).
		SetServerSelectionTimeout(timeout)

	if cfg.Username != "" && cfg.Password != "" {
		opts.SetAuth(options.Credential{Username: cfg.Username, Password: cfg.Password})
	}
	if cfg.MinPoolSize > 0 {
		opts.SetMinPoolSize(cfg.MinPoolSize)
	}
	if cfg.MaxPoolSize > 0 {
		opts.SetMaxPoolSize(cfg.MaxPoolSize)
	}
	return opts
}

// Connect opens the process-wide client, waits for the primary and returns a gateway bound
// to cfg.Database. The client is created once per process and released by Gateway.Close.
func Connect(ctx context.Context, cfg config.MongoConfig, log *logger.Logger) (*Gateway, error) {
	opts := clientOptions(cfg, "agrilink-service")
	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("connect to mongo: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, *opts.ConnectTimeout)
	defer cancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongo primary: %w", err)
	}
	log.Info("Connected to MongoDB", zap.String("database", cfg.Database))
	return NewGateway(client.Database(cfg.Database), log), nil
}
