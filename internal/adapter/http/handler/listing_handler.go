package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/Abdurahmanit/GroupProject/agrilink-service/internal/adapter/http/middleware"
	"github.com/Abdurahmanit/GroupProject/agrilink-service/internal/domain"
	"github.com/Abdurahmanit/GroupProject/agrilink-service/internal/usecase"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// HandleSubmitListing creates a pending listing. An authenticated identity replaces any userId
// in the body; without one the body identity or the anonymous owner is used.
func (h *Handler) HandleSubmitListing(w http.ResponseWriter, r *http.Request) {
	var req submitListingRequest
	if err := h.decodeJSON(w, r, &req); err != nil {
		h.logger.Warn("Invalid request body for SubmitListing", zap.Error(err))
		h.writeError(w, r, err)
		return
	}

	in := usecase.SubmitInput{
		Classification: req.ClassificationResult,
		Form:           req.FormData,
		ImageBase64:    req.ImageBase64,
		UserID:         req.UserID,
		UserName:       req.UserName,
	}
	if id, name, ok := middleware.Identity(r.Context()); ok {
		in.UserID = id
		if name != "" {
			in.UserName = name
		}
	}

	res, err := h.listings.SubmitListing(r.Context(), in)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, res)
}

// HandleUpdateListing applies an owner patch and answers {success, modifiedCount}.
func (h *Handler) HandleUpdateListing(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var req updateListingRequest
	if err := h.decodeJSON(w, r, &req); err != nil {
		h.logger.Warn("Invalid request body for UpdateListing", zap.String("id", id), zap.Error(err))
		h.writeError(w, r, err)
		return
	}

	userID := requesterID(r, req.UserID)
	if userID == "" {
		h.unauthenticated(w)
		return
	}

	res, err := h.listings.UpdateListing(r.Context(), id, userID, req.ListingPatch)
	h.writeMutation(w, r, "modifiedCount", res, err)
}

// HandleDeleteListing removes an owned listing and answers {success, deletedCount}.
// The requester comes from the token, the userId query parameter or the body.
func (h *Handler) HandleDeleteListing(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var req deleteListingRequest
	if err := h.decodeJSON(w, r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	if req.UserID == "" {
		req.UserID = r.URL.Query().Get("userId")
	}

	userID := requesterID(r, req.UserID)
	if userID == "" {
		h.unauthenticated(w)
		return
	}

	res, err := h.listings.DeleteListing(r.Context(), id, userID)
	h.writeMutation(w, r, "deletedCount", res, err)
}

// HandleListingsByUser lists a user's listings filtered by q, status, sort and order.
func (h *Handler) HandleListingsByUser(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userId")
	listings, err := h.listings.ListingsByUser(r.Context(), userID, listingQuery(r.URL.Query().Get))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, toListingResponses(listings))
}

func (h *Handler) writeMutation(w http.ResponseWriter, r *http.Request, countKey string, res *usecase.MutationResult, err error) {
	if err != nil && !errors.Is(err, domain.ErrNotOwned) {
		h.writeError(w, r, err)
		return
	}
	if res == nil {
		res = &usecase.MutationResult{}
	}
	status := http.StatusOK
	if err != nil {
		status = http.StatusNotFound
	}
	h.writeJSON(w, status, map[string]interface{}{"success": res.Success, countKey: res.Count})
}

// requesterID prefers the authenticated identity over a client-supplied one.
func requesterID(r *http.Request, supplied string) string {
	if id, _, ok := middleware.Identity(r.Context()); ok {
		return id
	}
	return strings.TrimSpace(supplied)
}
