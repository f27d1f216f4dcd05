package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	natsAdapter "github.com/Abdurahmanit/GroupProject/agrilink-service/internal/adapter/messaging/nats"
	"github.com/Abdurahmanit/GroupProject/agrilink-service/internal/domain"
	"github.com/Abdurahmanit/GroupProject/agrilink-service/internal/insights"
	"github.com/Abdurahmanit/GroupProject/agrilink-service/internal/platform/logger"
	"github.com/Abdurahmanit/GroupProject/agrilink-service/internal/platform/metrics"
	"github.com/Abdurahmanit/GroupProject/agrilink-service/internal/valuation"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

var tracer = otel.Tracer("agrilink-service/usecase")

// ListingUsecase implements listing submission and owner-scoped mutations.
type ListingUsecase struct {
	repo      domain.ListingRepository
	images    domain.ImageStore
	publisher domain.EventPublisher
	metrics   *metrics.MetricsManager
	logger    *logger.Logger
}

// NewListingUsecase wires the listing workflow. images, publisher and m may be nil.
func NewListingUsecase(repo domain.ListingRepository, images domain.ImageStore, publisher domain.EventPublisher, m *metrics.MetricsManager, log *logger.Logger) *ListingUsecase {
	return &ListingUsecase{
		repo:      repo,
		images:    images,
		publisher: publisher,
		metrics:   m,
		logger:    log.Named("ListingUsecase"),
	}
}

// SubmitInput is a farmer's listing submission.
type SubmitInput struct {
	Classification *domain.Classification
	Form           domain.ListingForm
	ImageBase64    string
	UserID         string
	UserName       string
}

type SubmitResult struct {
	Success    bool   `json:"success"`
	InsertedID string `json:"insertedId"`
}

// MutationResult reports the outcome of an update or delete.
type MutationResult struct {
	Success bool
	Count   int64
}

// SubmitListing validates the form, stores the optional image and persists a pending listing.
// A failed image upload does not fail the submission.
func (uc *ListingUsecase) SubmitListing(ctx context.Context, in SubmitInput) (*SubmitResult, error) {
	ctx, span := tracer.Start(ctx, "ListingUsecase.SubmitListing")
	defer span.End()

	if err := in.Form.Validate(); err != nil {
		uc.logger.Warn("Rejected listing submission", zap.Error(err))
		return nil, err
	}

	classification := in.Classification
	if classification == nil {
		classification = &domain.Classification{CropType: in.Form.CropType}
	}
	valuation.ApplyFallbackPricing(classification)

	listing := domain.NewListing(in.Form, in.UserID, in.UserName, classification)
	uc.logger.Info("Submitting listing",
		zap.String("user_id", listing.OwnerID),
		zap.String("crop_type", listing.CropType),
		zap.Bool("has_image", strings.TrimSpace(in.ImageBase64) != ""),
	)

	if uc.images != nil {
		if stored := uc.images.Store(ctx, in.ImageBase64); stored != nil {
			listing.ImageURL = stored.ImageURL
			listing.ImageName = stored.ImageName
		}
	}

	id, err := uc.repo.Create(ctx, listing)
	if err != nil {
		span.RecordError(err)
		uc.logger.Error("Failed to save listing to repository", zap.Error(err))
		return nil, fmt.Errorf("create listing: %w", err)
	}
	span.SetAttributes(attribute.String("listing.id", id))
	if uc.metrics != nil {
		uc.metrics.ListingsCreatedTotal.Inc()
	}

	uc.publish(ctx, natsAdapter.SubjectListingCreated, map[string]interface{}{
		"listing_id":      id,
		"user_id":         listing.OwnerID,
		"crop_type":       listing.CropType,
		"quantity":        listing.Quantity,
		"quantity_unit":   listing.QuantityUnit,
		"estimated_value": listing.EstimatedValue(),
		"has_image":       listing.ImageURL != "",
		"created_at":      listing.CreatedAt.Format(time.RFC3339Nano),
	})

	uc.logger.Info("Listing created successfully", zap.String("listing_id", id))
	return &SubmitResult{Success: true, InsertedID: id}, nil
}

// UpdateListing applies an owner's patch. Success is false when nothing was modified.
func (uc *ListingUsecase) UpdateListing(ctx context.Context, id, userID string, patch domain.ListingPatch) (*MutationResult, error) {
	ctx, span := tracer.Start(ctx, "ListingUsecase.UpdateListing")
	defer span.End()

	if err := requireIdentity(id, userID); err != nil {
		return nil, err
	}
	if err := patch.Validate(); err != nil {
		return nil, err
	}

	uc.logger.Info("Updating listing", zap.String("listing_id", id), zap.String("user_id", userID))
	modified, err := uc.repo.Update(ctx, id, userID, patch)
	if err != nil {
		if errors.Is(err, domain.ErrNotOwned) {
			uc.logger.Warn("Update rejected: listing not found or not owned", zap.String("listing_id", id), zap.String("user_id", userID))
			return &MutationResult{}, err
		}
		span.RecordError(err)
		uc.logger.Error("Failed to update listing", zap.String("listing_id", id), zap.Error(err))
		return nil, fmt.Errorf("update listing: %w", err)
	}

	res := &MutationResult{Success: modified}
	if modified {
		res.Count = 1
		if uc.metrics != nil {
			uc.metrics.ListingUpdatesTotal.Inc()
		}
		uc.publish(ctx, natsAdapter.SubjectListingUpdated, map[string]interface{}{
			"listing_id": id,
			"user_id":    userID,
			"updated_at": time.Now().UTC().Format(time.RFC3339Nano),
		})
	}
	return res, nil
}

// DeleteListing removes an owner's listing. Deleting twice yields ErrNotOwned with a zero result.
func (uc *ListingUsecase) DeleteListing(ctx context.Context, id, userID string) (*MutationResult, error) {
	ctx, span := tracer.Start(ctx, "ListingUsecase.DeleteListing")
	defer span.End()

	if err := requireIdentity(id, userID); err != nil {
		return nil, err
	}

	uc.logger.Info("Deleting listing", zap.String("listing_id", id), zap.String("user_id", userID))
	deleted, err := uc.repo.Delete(ctx, id, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotOwned) {
			uc.logger.Warn("Delete rejected: listing not found or not owned", zap.String("listing_id", id), zap.String("user_id", userID))
			return &MutationResult{}, err
		}
		span.RecordError(err)
		uc.logger.Error("Failed to delete listing", zap.String("listing_id", id), zap.Error(err))
		return nil, fmt.Errorf("delete listing: %w", err)
	}

	res := &MutationResult{Success: deleted}
	if deleted {
		res.Count = 1
		if uc.metrics != nil {
			uc.metrics.ListingDeletesTotal.Inc()
		}
		uc.publish(ctx, natsAdapter.SubjectListingDeleted, map[string]interface{}{
			"listing_id": id,
			"user_id":    userID,
		})
	}
	return res, nil
}

// ListingsByUser returns a user's listings filtered and ordered by q.
func (uc *ListingUsecase) ListingsByUser(ctx context.Context, userID string, q insights.Query) ([]*domain.Listing, error) {
	ctx, span := tracer.Start(ctx, "ListingUsecase.ListingsByUser")
	defer span.End()

	if strings.TrimSpace(userID) == "" {
		return nil, requiredField("userId")
	}
	listings, err := uc.repo.FindByOwner(ctx, userID)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("find listings: %w", err)
	}
	return insights.FilterListings(listings, q), nil
}

func (uc *ListingUsecase) publish(ctx context.Context, subject string, data map[string]interface{}) {
	if uc.publisher == nil {
		return
	}
	if err := uc.publisher.Publish(ctx, subject, data); err != nil {
		uc.logger.Warn("Failed to publish event to NATS", zap.String("subject", subject), zap.Error(err))
	}
}

func requireIdentity(id, userID string) error {
	verr := &domain.ValidationError{}
	if strings.TrimSpace(id) == "" {
		verr.Add("id", "is required")
	}
	if strings.TrimSpace(userID) == "" {
		verr.Add("userId", "is required")
	}
	return verr.OrNil()
}

func requiredField(name string) error {
	verr := &domain.ValidationError{}
	verr.Add(name, "is required")
	return verr
}
