package mongodb

import (
	"context"

	"github.com/Abdurahmanit/GroupProject/agrilink-service/internal/domain"
	"github.com/Abdurahmanit/GroupProject/agrilink-service/internal/platform/logger"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"
)

// Gateway is the single shared handle to the document store. Repositories run every
// operation through WithCollection so driver errors never leave this package raw.
type Gateway struct {
	client *mongo.Client
	db     *mongo.Database
	logger *logger.Logger
}

// NewGateway wraps an already selected database.
func NewGateway(db *mongo.Database, log *logger.Logger) *Gateway {
	return &Gateway{
		client: db.Client(),
		db:     db,
		logger: log.Named("StorageGateway"),
	}
}

// WithCollection runs op against the named collection.
func (g *Gateway) WithCollection(ctx context.Context, name string, op func(ctx context.Context, c *mongo.Collection) error) error {
	return g.withCollectionOp(ctx, name, "", op)
}

func (g *Gateway) withCollectionOp(ctx context.Context, name, opName string, op func(ctx context.Context, c *mongo.Collection) error) error {
	if err := op(ctx, g.db.Collection(name)); err != nil {
		g.logger.Error("Database operation failed",
			zap.String("collection", name),
			zap.String("op", opName),
			zap.Error(err),
		)
		return &domain.StorageError{Collection: name, Op: opName, Message: err.Error()}
	}
	return nil
}

// Ping checks that the primary is reachable.
func (g *Gateway) Ping(ctx context.Context) error {
	if err := g.client.Ping(ctx, readpref.Primary()); err != nil {
		return &domain.StorageError{Collection: g.db.Name(), Op: "ping", Message: err.Error()}
	}
	return nil
}

// Close disconnects the client. It is only called once, at process shutdown.
func (g *Gateway) Close(ctx context.Context) error {
	if g.client == nil {
		return nil
	}
	g.logger.Info("Disconnecting from MongoDB")
	return g.client.Disconnect(ctx)
}
