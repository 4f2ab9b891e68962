package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/clintonMF/smilecook/internal/core/domain"
)

type errorResponse struct {
	Message string            `json:"message"`
	Errors  map[string]string `json:"errors,omitempty"`
}

func respondJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		_ = json.NewEncoder(w).Encode(v)
	}
}

// respondError maps the domain error taxonomy onto HTTP statuses. Unknown
// errors are reported as a generic service error without leaking details.
func respondError(w http.ResponseWriter, err error) {
	var validation *domain.ValidationError
	if errors.As(err, &validation) {
		respondJSON(w, http.StatusBadRequest, errorResponse{
			Message: "validation failed",
			Errors:  validation.Fields,
		})
		return
	}

	var status int
	switch {
	case errors.Is(err, domain.ErrRecipeNotFound), errors.Is(err, domain.ErrUserNotFound):
		status = http.StatusNotFound
	case errors.Is(err, domain.ErrUnauthorized),
		errors.Is(err, domain.ErrInvalidCredentials),
		errors.Is(err, domain.ErrInvalidToken),
		errors.Is(err, domain.ErrTokenRevoked):
		status = http.StatusUnauthorized
	case errors.Is(err, domain.ErrForbidden), errors.Is(err, domain.ErrInactiveAccount):
		status = http.StatusForbidden
	case errors.Is(err, domain.ErrUsernameTaken), errors.Is(err, domain.ErrEmailTaken):
		status = http.StatusConflict
	case errors.Is(err, domain.ErrRateLimited):
		status = http.StatusTooManyRequests
	default:
		respondJSON(w, http.StatusInternalServerError, errorResponse{Message: domain.ErrInternal.Error()})
		return
	}
	respondJSON(w, status, errorResponse{Message: err.Error()})
}
