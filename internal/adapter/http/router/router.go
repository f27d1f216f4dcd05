package router

import (
	"net/http"

	"github.com/Abdurahmanit/GroupProject/agrilink-service/internal/adapter/http/handler"
	"github.com/Abdurahmanit/GroupProject/agrilink-service/internal/adapter/http/middleware"
	"github.com/Abdurahmanit/GroupProject/agrilink-service/internal/platform/logger"
	"github.com/Abdurahmanit/GroupProject/agrilink-service/internal/platform/metrics"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

// New wires the REST routes. Metrics may be nil.
func New(h *handler.Handler, m *metrics.MetricsManager, jwtSecret string, log *logger.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLogger(log))
	r.Use(chimw.Recoverer)
	r.Use(middleware.Metrics(m))

	r.Get("/healthz", h.Healthz)

	r.Group(func(api chi.Router) {
		api.Use(middleware.JWTAuth(jwtSecret, log))

		api.Post("/api/analysis", h.HandleAnalyze)

		api.Post("/api/listings", h.HandleSubmitListing)
		api.Patch("/api/listings/{id}", h.HandleUpdateListing)
		api.Delete("/api/listings/{id}", h.HandleDeleteListing)

		api.Get("/api/users/{userId}/listings", h.HandleListingsByUser)
		api.Get("/api/users/{userId}/portfolio", h.HandlePortfolio)
		api.Get("/api/users/{userId}/carbon-wallet", h.HandleCarbonWallet)

		api.Get("/api/tenders", h.HandleTenders)
	})
	return r
}
