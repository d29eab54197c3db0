package httpapi

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/kaypiton/billing-backend/internal/logging"
)

// crudService is the shape every entity service shares. The user service
// differs (separate create/update requests) and gets its own handler.
type crudService[Req any, Resp any] interface {
	Create(ctx context.Context, req *Req) (*Resp, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Resp, error)
	GetAll(ctx context.Context) ([]*Resp, error)
	Update(ctx context.Context, id uuid.UUID, req *Req) (*Resp, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type crudHandler[Req any, Resp any] struct {
	svc    crudService[Req, Resp]
	logger logging.Logger
}

func (h *crudHandler[Req, Resp]) create(w http.ResponseWriter, r *http.Request) {
	var req Req
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

func (h *crudHandler[Req, Resp]) getByID(w http.ResponseWriter, r *http.Request) {
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

func (h *crudHandler[Req, Resp]) getAll(w http.ResponseWriter, r *http.Request) {
	resp, err := h.svc.GetAll(r.Context())
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}
	respondData(w, r, resp)
}

func (h *crudHandler[Req, Resp]) update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req Req
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

func (h *crudHandler[Req, Resp]) delete(w http.ResponseWriter, r *http.Request) {
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

// registerCRUD mounts the five routes for an entity under /api/<name>,
// each guarded by the auth middleware.
func registerCRUD[Req any, Resp any](mux *http.ServeMux, name string, svc crudService[Req, Resp], logger logging.Logger, guard func(http.Handler) http.Handler) {
	h := &crudHandler[Req, Resp]{svc: svc, logger: logger}
	mux.Handle("POST /api/"+name, guard(http.HandlerFunc(h.create)))
	mux.Handle("GET /api/"+name, guard(http.HandlerFunc(h.getAll)))
	mux.Handle("GET /api/"+name+"/{id}", guard(http.HandlerFunc(h.getByID)))
	mux.Handle("PUT /api/"+name+"/{id}", guard(http.HandlerFunc(h.update)))
	mux.Handle("DELETE /api/"+name+"/{id}", guard(http.HandlerFunc(h.delete)))
}

func pathID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeJSON(w, r, http.StatusBadRequest, envelope{Errors: []string{"Invalid id."}})
		return uuid.Nil, false
	}
	return id, true
}
