package httpapi

import (
	"net/http"

	"github.com/kaypiton/billing-backend/internal/logging"
	"github.com/kaypiton/billing-backend/internal/services"
)

type authHandler struct {
	svc    *services.AuthService
	logger logging.Logger
}

func (h *authHandler) signIn(w http.ResponseWriter, r *http.Request) {
	var req services.AuthenticateRequest
	if !decodeBody(w, r, &req) {
		return
	}
	pair, err := h.svc.Authenticate(r.Context(), &req)
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}
	respondData(w, r, pair)
}

type refreshTokenRequest struct {
	RefreshToken string `json:"refreshToken"`
}

func (h *authHandler) refresh(w http.ResponseWriter, r *http.Request) {
	var req refreshTokenRequest
	if !decodeBody(w, r, &req) {
		return
	}
	pair, err := h.svc.Refresh(r.Context(), req.RefreshToken)
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}
	respondData(w, r, pair)
}

func (h *authHandler) revoke(w http.ResponseWriter, r *http.Request) {
	var req refreshTokenRequest
	if !decodeBody(w, r, &req) {
		return
	}
	revoked, err := h.svc.Revoke(r.Context(), req.RefreshToken)
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}
	respondData(w, r, revoked)
}
