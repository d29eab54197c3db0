package httpapi

import (
	"net/http"

	"github.com/kaypiton/billing-backend/internal/logging"
	"github.com/kaypiton/billing-backend/internal/services"
)

// userHandler mirrors the generic CRUD handler but keeps create and update
// requests distinct: the password is required on create and optional on
// update.
type userHandler struct {
	svc    *services.UserService
	logger logging.Logger
}

func (h *userHandler) create(w http.ResponseWriter, r *http.Request) {
	var req services.CreateUserRequest
	if !decodeBody(w, r, &req) {
		return
	}
	resp, err := h.svc.Create(r.Context(), &req)
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}
	respondData(w, r, resp)
}

func (h *userHandler) getByID(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	resp, err := h.svc.GetByID(r.Context(), id)
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}
	respondData(w, r, resp)
}

func (h *userHandler) getAll(w http.ResponseWriter, r *http.Request) {
	resp, err := h.svc.GetAll(r.Context())
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}
	respondData(w, r, resp)
}

func (h *userHandler) update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req services.UpdateUserRequest
	if !decodeBody(w, r, &req) {
		return
	}
	resp, err := h.svc.Update(r.Context(), id, &req)
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}
	respondData(w, r, resp)
}

func (h *userHandler) delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := h.svc.Delete(r.Context(), id); err != nil {
		respondError(w, r, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
