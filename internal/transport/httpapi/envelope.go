// Package httpapi is the REST surface of the server. Every response body is
// wrapped in the same envelope: {trace_id, data, errors}.
package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/kaypiton/billing-backend/internal/common"
	"github.com/kaypiton/billing-backend/internal/logging"
)

type envelope struct {
	TraceID string   `json:"trace_id"`
	Data    any      `json:"data"`
	Errors  []string `json:"errors"`
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, env envelope) {
	env.TraceID = traceIDFrom(r.Context())
	if env.Errors == nil {
		env.Errors = []string{}
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(env)
}

func respondData(w http.ResponseWriter, r *http.Request, data any) {
	writeJSON(w, r, http.StatusOK, envelope{Data: data})
}

// respondError translates the service error taxonomy to HTTP statuses:
// validation and business errors are 400, authentication failures are 401,
// anything else is a generic 400 that leaks no detail.
func respondError(w http.ResponseWriter, r *http.Request, logger logging.Logger, err error) {
	var ve *common.ValidationError
	if errors.As(err, &ve) {
		logger.Warn(r.Context(), "validation failed", "errors", ve.Violations)
		writeJSON(w, r, http.StatusBadRequest, envelope{Errors: ve.Violations})
		return
	}

	var nf *common.NotFoundError
	if errors.As(err, &nf) {
		writeJSON(w, r, http.StatusBadRequest, envelope{Errors: []string{nf.Error() + "."}})
		return
	}

	var conflict *common.ConflictError
	if errors.As(err, &conflict) {
		writeJSON(w, r, http.StatusBadRequest, envelope{Errors: []string{conflict.Error() + "."}})
		return
	}

	if errors.Is(err, common.ErrUnauthenticated) {
		writeJSON(w, r, http.StatusUnauthorized, envelope{Errors: []string{"Invalid credentials or token."}})
		return
	}

	logger.Error(r.Context(), "unexpected error", "error", err)
	writeJSON(w, r, http.StatusBadRequest, envelope{Errors: []string{"An unexpected error occurred."}})
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeJSON(w, r, http.StatusBadRequest, envelope{Errors: []string{"Invalid request body."}})
		return false
	}
	return true
}
