package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/Abdurahmanit/GroupProject/agrilink-service/internal/domain"
	"github.com/Abdurahmanit/GroupProject/agrilink-service/internal/insights"
	"github.com/Abdurahmanit/GroupProject/agrilink-service/internal/platform/logger"
	"github.com/Abdurahmanit/GroupProject/agrilink-service/internal/usecase"
	"github.com/Abdurahmanit/GroupProject/agrilink-service/internal/valuation"
	"go.uber.org/zap"
)

// ListingService is the listing workflow as seen by the HTTP layer.
type ListingService interface {
	SubmitListing(ctx context.Context, in usecase.SubmitInput) (*usecase.SubmitResult, error)
	UpdateListing(ctx context.Context, id, userID string, patch domain.ListingPatch) (*usecase.MutationResult, error)
	DeleteListing(ctx context.Context, id, userID string) (*usecase.MutationResult, error)
	ListingsByUser(ctx context.Context, userID string, q insights.Query) ([]*domain.Listing, error)
}

type ValuationService interface {
	Analyze(ctx context.Context, req valuation.Request) (*domain.Classification, error)
}

type DashboardService interface {
	Portfolio(ctx context.Context, userID string, q insights.Query) (*usecase.PortfolioView, error)
	CarbonWallet(ctx context.Context, userID string) (*usecase.WalletView, error)
}

type TenderService interface {
	ListTenders(ctx context.Context, q insights.TenderQuery) ([]*domain.Tender, error)
}

// HealthChecker is satisfied by the storage gateway.
type HealthChecker interface {
	Ping(ctx context.Context) error
}

// Handler serves the REST API.
type Handler struct {
	listings     ListingService
	valuation    ValuationService
	dashboard    DashboardService
	tenders      TenderService
	health       HealthChecker
	maxBodyBytes int64
	logger       *logger.Logger
}

// Deps groups the services a Handler needs.
type Deps struct {
	Listings     ListingService
	Valuation    ValuationService
	Dashboard    DashboardService
	Tenders      TenderService
	Health       HealthChecker
	MaxBodyBytes int64
}

func NewHandler(d Deps, log *logger.Logger) *Handler {
	return &Handler{
		listings:     d.Listings,
		valuation:    d.Valuation,
		dashboard:    d.Dashboard,
		tenders:      d.Tenders,
		health:       d.Health,
		maxBodyBytes: d.MaxBodyBytes,
		logger:       log.Named("HTTPHandler"),
	}
}

var errBadBody = errors.New("invalid request body")

// decodeJSON reads a size-limited JSON body into dst. An empty body leaves dst untouched.
func (h *Handler) decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	body := r.Body
	if h.maxBodyBytes > 0 {
		body = http.MaxBytesReader(w, r.Body, h.maxBodyBytes)
	}
	if err := json.NewDecoder(body).Decode(dst); err != nil && !errors.Is(err, io.EOF) {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return fmt.Errorf("%w: body exceeds %d bytes", errBadBody, tooLarge.Limit)
		}
		return fmt.Errorf("%w: %v", errBadBody, err)
	}
	return nil
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Error("Failed to encode response", zap.Error(err))
	}
}

// Healthz pings the document store.
func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	if h.health != nil {
		if err := h.health.Ping(r.Context()); err != nil {
			h.logger.Error("Health check failed", zap.Error(err))
			h.writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
			return
		}
	}
	h.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
