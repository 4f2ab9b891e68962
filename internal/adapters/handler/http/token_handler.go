package http

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/clintonMF/smilecook/internal/core/domain"
	"github.com/clintonMF/smilecook/internal/core/ports"
)

type TokenHandler struct {
	service ports.AuthService
}

func NewTokenHandler(service ports.AuthService) *TokenHandler {
	return &TokenHandler{service: service}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login godoc
// @Summary      Exchanges email and password for a token pair
// @Tags         auth
// @Accept       json
// @Success      200
// @Failure      401
// @Failure      403
// @Router       /token [post]
func (h *TokenHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	pair, err := h.service.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, pair)
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type refreshResponse struct {
	AccessToken string `json:"access_token"`
}

// Refresh godoc
// @Summary      Exchanges a refresh token for a new access token
// @Tags         auth
// @Accept       json
// @Success      200
// @Failure      401
// @Router       /refresh [post]
func (h *TokenHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	var req refreshRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	accessToken, err := h.service.Refresh(r.Context(), req.RefreshToken)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, refreshResponse{AccessToken: accessToken})
}

// Revoke godoc
// @Summary      Revokes the presented access token
// @Tags         auth
// @Success      200
// @Failure      401
// @Router       /revoke [post]
func (h *TokenHandler) Revoke(w http.ResponseWriter, r *http.Request) {
	token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
	if !ok {
		respondError(w, domain.ErrUnauthorized)
		return
	}

	if err := h.service.Revoke(r.Context(), token); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "successfully logged out"})
}
