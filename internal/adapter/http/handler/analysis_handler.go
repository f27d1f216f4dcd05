package handler

import (
	"errors"
	"net/http"

	"github.com/Abdurahmanit/GroupProject/agrilink-service/internal/domain"
	"github.com/Abdurahmanit/GroupProject/agrilink-service/internal/valuation"
	"go.uber.org/zap"
)

// HandleAnalyze classifies a photo or description and returns the classification with a
// fallback price filled in.
func (h *Handler) HandleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req valuation.Request
	if err := h.decodeJSON(w, r, &req); err != nil {
		h.logger.Warn("Invalid request body for Analyze", zap.Error(err))
		h.writeError(w, r, err)
		return
	}

	classification, err := h.valuation.Analyze(r.Context(), req)
	if err != nil {
		var verr *domain.ValidationError
		if errors.As(err, &verr) {
			h.writeJSON(w, http.StatusBadRequest, errorResponse{
				Error:          domain.ErrInvalidInput.Error(),
				Fields:         verr.Fields,
				RequiredFields: valuation.RequiredFields,
			})
			return
		}
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, classification)
}
