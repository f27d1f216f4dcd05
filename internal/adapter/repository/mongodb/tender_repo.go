package mongodb

import (
	"context"

	"github.com/Abdurahmanit/GroupProject/agrilink-service/internal/domain"
	"github.com/Abdurahmanit/GroupProject/agrilink-service/internal/platform/logger"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// DefaultTendersCollection holds the read-only marketplace seed data.
const DefaultTendersCollection = "marketplaceWasteData"

type TenderRepository struct {
	gateway    *Gateway
	collection string
	logger     *logger.Logger
}

func NewTenderRepository(g *Gateway, collection string, log *logger.Logger) *TenderRepository {
	if collection == "" {
		collection = DefaultTendersCollection
	}
	return &TenderRepository{gateway: g, collection: collection, logger: log.Named("TenderRepository")}
}

// FindAll returns every tender in store order, without transformation.
func (r *TenderRepository) FindAll(ctx context.Context) ([]*domain.Tender, error) {
	var docs []*tenderDocument
	err := r.gateway.withCollectionOp(ctx, r.collection, "find", func(ctx context.Context, c *mongo.Collection) error {
		cursor, err := c.Find(ctx, bson.M{})
		if err != nil {
			return err
		}
		defer cursor.Close(ctx)
		return cursor.All(ctx, &docs)
	})
	if err != nil {
		return nil, err
	}

	tenders := make([]*domain.Tender, 0, len(docs))
	for _, d := range docs {
		tenders = append(tenders, d.toDomainTender())
	}
	r.logger.Debug("Tenders fetched", zap.Int("count", len(tenders)))
	return tenders, nil
}
