package handler

import (
	"errors"
	"net/http"

	"github.com/Abdurahmanit/GroupProject/agrilink-service/internal/domain"
	"go.uber.org/zap"
)

const analysisFailedMessage = "analysis failed, please retry"

type errorResponse struct {
	Error          string              `json:"error"`
	Fields         []domain.FieldError `json:"fields,omitempty"`
	RequiredFields []string            `json:"required_fields,omitempty"`
	RawResponse    string              `json:"rawResponse,omitempty"`
}

// writeError maps a usecase error to its status code and body. Storage details never leave
// the service.
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		verr *domain.ValidationError
		cerr *domain.ClassificationError
	)
	switch {
	case errors.Is(err, errBadBody):
		h.writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
	case errors.As(err, &verr):
		h.writeJSON(w, http.StatusBadRequest, errorResponse{Error: domain.ErrInvalidInput.Error(), Fields: verr.Fields})
	case errors.Is(err, domain.ErrInvalidInput):
		h.writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
	case errors.Is(err, domain.ErrNotOwned):
		h.writeJSON(w, http.StatusNotFound, errorResponse{Error: domain.ErrNotOwned.Error()})
	case errors.As(err, &cerr):
		h.writeJSON(w, http.StatusBadGateway, errorResponse{Error: analysisFailedMessage, RawResponse: cerr.Raw})
	case errors.Is(err, domain.ErrClassifierUnavailable):
		h.writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: analysisFailedMessage})
	default:
		h.logger.Error("Request failed", zap.String("path", r.URL.Path), zap.Error(err))
		h.writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal server error"})
	}
}

func (h *Handler) unauthenticated(w http.ResponseWriter) {
	h.writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "authentication required"})
}
