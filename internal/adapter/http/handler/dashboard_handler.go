package handler

import (
	"net/http"

	"github.com/Abdurahmanit/GroupProject/agrilink-service/internal/domain"
	"github.com/go-chi/chi/v5"
)

func (h *Handler) HandlePortfolio(w http.ResponseWriter, r *http.Request) {
	view, err := h.dashboard.Portfolio(r.Context(), chi.URLParam(r, "userId"), listingQuery(r.URL.Query().Get))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, portfolioResponse{Stats: view.Stats, Sales: toListingResponses(view.Sales)})
}

func (h *Handler) HandleCarbonWallet(w http.ResponseWriter, r *http.Request) {
	view, err := h.dashboard.CarbonWallet(r.Context(), chi.URLParam(r, "userId"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, walletResponse{Wallet: view.Wallet, Transactions: view.Transactions})
}

// HandleTenders serves the marketplace feed filtered by q, wasteType, status and sort.
func (h *Handler) HandleTenders(w http.ResponseWriter, r *http.Request) {
	tenders, err := h.tenders.ListTenders(r.Context(), tenderQuery(r.URL.Query().Get))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if tenders == nil {
		tenders = []*domain.Tender{}
	}
	h.writeJSON(w, http.StatusOK, tendersResponse{Tenders: tenders, Count: len(tenders)})
}
