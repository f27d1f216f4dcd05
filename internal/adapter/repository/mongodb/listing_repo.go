package mongodb

import (
	"context"
	"errors"
	"time"

	"github.com/Abdurahmanit/GroupProject/agrilink-service/internal/domain"
	"github.com/Abdurahmanit/GroupProject/agrilink-service/internal/platform/logger"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// DefaultListingsCollection holds waste listings.
const DefaultListingsCollection = "wasteMaterial"

// ListingRepository implements domain.ListingRepository on top of the Gateway.
type ListingRepository struct {
	gateway    *Gateway
	collection string
	logger     *logger.Logger
	now        func() time.Time
}

// NewListingRepository creates a listing repository. An empty collection name selects
// DefaultListingsCollection.
func NewListingRepository(g *Gateway, collection string, log *logger.Logger) *ListingRepository {
	if collection == "" {
		collection = DefaultListingsCollection
	}
	return &ListingRepository{
		gateway:    g,
		collection: collection,
		logger:     log.Named("ListingRepository"),
		now:        func() time.Time { return time.Now().UTC().Truncate(time.Millisecond) },
	}
}

// EnsureIndexes creates the owner/createdAt index used by FindByOwner.
func (r *ListingRepository) EnsureIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "userId", Value: 1}, {Key: "createdAt", Value: -1}}},
	}
	err := r.gateway.withCollectionOp(ctx, r.collection, "createIndexes", func(ctx context.Context, c *mongo.Collection) error {
		_, err := c.Indexes().CreateMany(ctx, indexes)
		return err
	})
	if err != nil {
		return err
	}
	r.logger.Info("Successfully ensured indexes for listings collection", zap.String("collection", r.collection))
	return nil
}

// Create inserts a pending listing and returns its generated id. The id and timestamps
// are written back onto listing.
func (r *ListingRepository) Create(ctx context.Context, listing *domain.Listing) (string, error) {
	now := r.now()
	listing.ID = ""
	listing.Status = domain.StatusPending
	listing.CreatedAt = now
	listing.LastUpdated = now

	doc, err := fromDomainListing(listing)
	if err != nil {
		r.logger.Error("Failed to convert domain.Listing to document for Create", zap.Error(err))
		return "", err
	}
	doc.ID = primitive.NewObjectID()

	err = r.gateway.withCollectionOp(ctx, r.collection, "insert", func(ctx context.Context, c *mongo.Collection) error {
		_, err := c.InsertOne(ctx, doc)
		return err
	})
	if err != nil {
		return "", err
	}

	listing.ID = doc.ID.Hex()
	r.logger.Info("Listing created in DB", zap.String("listing_id", listing.ID), zap.String("user_id", listing.OwnerID))
	return listing.ID, nil
}

// FindByOwner returns the owner's listings, newest first. No listings is an empty slice.
func (r *ListingRepository) FindByOwner(ctx context.Context, ownerID string) ([]*domain.Listing, error) {
	var docs []*listingDocument
	err := r.gateway.withCollectionOp(ctx, r.collection, "find", func(ctx context.Context, c *mongo.Collection) error {
		opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
		cursor, err := c.Find(ctx, bson.M{"userId": ownerID}, opts)
		if err != nil {
			return err
		}
		defer cursor.Close(ctx)
		return cursor.All(ctx, &docs)
	})
	if err != nil {
		return nil, err
	}

	listings := make([]*domain.Listing, 0, len(docs))
	for _, d := range docs {
		listings = append(listings, d.toDomainListing())
	}
	r.logger.Debug("Listings fetched by owner", zap.String("user_id", ownerID), zap.Int("count", len(listings)))
	return listings, nil
}

// Update applies patch to a listing owned by ownerID and refreshes lastUpdated.
// It returns domain.ErrNotOwned, without writing, when no such listing exists.
func (r *ListingRepository) Update(ctx context.Context, id, ownerID string, patch domain.ListingPatch) (bool, error) {
	filter, ok := ownedFilter(id, ownerID)
	if !ok {
		return false, domain.ErrNotOwned
	}

	set := patchToSet(patch)
	set["lastUpdated"] = r.now()

	var found, modified bool
	err := r.gateway.withCollectionOp(ctx, r.collection, "update", func(ctx context.Context, c *mongo.Collection) error {
		var err error
		if found, err = exists(ctx, c, filter); err != nil || !found {
			return err
		}
		res, err := c.UpdateOne(ctx, filter, bson.M{"$set": set})
		if err != nil {
			return err
		}
		modified = res.ModifiedCount == 1
		return nil
	})
	if err != nil {
		return false, err
	}
	if !found {
		r.logger.Warn("Listing not found or not owned for update", zap.String("listing_id", id), zap.String("user_id", ownerID))
		return false, domain.ErrNotOwned
	}
	r.logger.Info("Listing updated in DB", zap.String("listing_id", id), zap.Bool("modified", modified))
	return modified, nil
}

// Delete removes a listing owned by ownerID. Same ownership pre-check as Update.
func (r *ListingRepository) Delete(ctx context.Context, id, ownerID string) (bool, error) {
	filter, ok := ownedFilter(id, ownerID)
	if !ok {
		return false, domain.ErrNotOwned
	}

	var found, deleted bool
	err := r.gateway.withCollectionOp(ctx, r.collection, "delete", func(ctx context.Context, c *mongo.Collection) error {
		var err error
		if found, err = exists(ctx, c, filter); err != nil || !found {
			return err
		}
		res, err := c.DeleteOne(ctx, filter)
		if err != nil {
			return err
		}
		deleted = res.DeletedCount == 1
		return nil
	})
	if err != nil {
		return false, err
	}
	if !found {
		r.logger.Warn("Listing not found or not owned for delete", zap.String("listing_id", id), zap.String("user_id", ownerID))
		return false, domain.ErrNotOwned
	}
	r.logger.Info("Listing deleted from DB", zap.String("listing_id", id), zap.Bool("deleted", deleted))
	return deleted, nil
}

// ownedFilter builds {_id, userId}. A malformed id cannot match anything.
func ownedFilter(id, ownerID string) (bson.M, bool) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil || ownerID == "" {
		return nil, false
	}
	return bson.M{"_id": oid, "userId": ownerID}, true
}

func exists(ctx context.Context, c *mongo.Collection, filter bson.M) (bool, error) {
	err := c.FindOne(ctx, filter, options.FindOne().SetProjection(bson.M{"_id": 1})).Err()
	if errors.Is(err, mongo.ErrNoDocuments) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func patchToSet(p domain.ListingPatch) bson.M {
	set := bson.M{}
	if p.CropType != nil {
		set["cropType"] = *p.CropType
	}
	if p.WasteDescription != nil {
		set["wasteDescription"] = *p.WasteDescription
	}
	if p.Quantity != nil {
		set["quantity"] = *p.Quantity
	}
	if p.QuantityUnit != nil {
		set["quantityUnit"] = string(*p.QuantityUnit)
	}
	if p.MoistureLevel != nil {
		set["moistureLevel"] = string(*p.MoistureLevel)
	}
	if p.AgeOfWaste != nil {
		set["ageOfWaste"] = string(*p.AgeOfWaste)
	}
	if p.Location != nil {
		set["location"] = *p.Location
	}
	if p.IntendedUse != nil {
		set["intendedUse"] = *p.IntendedUse
	}
	if p.AdditionalNotes != nil {
		set["additionalNotes"] = *p.AdditionalNotes
	}
	return set
}
