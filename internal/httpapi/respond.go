// internal/httpapi/respond.go
//
// JSON response and error-mapping helpers.
//
// Context
// -------
// The core reports expected failures as sentinel errors; this file is the
// single place they become transport statuses:
//
//	employee.ErrNotFound      → 404
//	employee.ErrConflict      → 409
//	employee.ErrInvalidInput  → 400
//	validator.ValidationErrors→ 400 (field detail included)
//	anything else             → 500, detail suppressed unless dev mode
//
// Keeping the mapping here means handlers never inspect error strings and
// the core never imports net/http.
package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/JMLOSP/UserManagementAPI/internal/employee"
)

// errorBody is the uniform error envelope.
type errorBody struct {
	Error  string `json:"error"`
	Detail string `json:"detail,omitempty"`
}

// writeJSON encodes v with the given status.  Encoding failures are logged
// and abandoned; the status line has already gone out.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if v == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zap.S().Errorw("response encode failed", "err", err)
	}
}

// writeError maps err onto the response per the table above.  devMode
// controls whether internal error detail leaks to the client.
func writeError(w http.ResponseWriter, err error, devMode bool) {
	var vErrs validator.ValidationErrors

	switch {
	case errors.Is(err, employee.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorBody{Error: "not found"})
	case errors.Is(err, employee.ErrConflict):
		writeJSON(w, http.StatusConflict, errorBody{Error: "email already in use"})
	case errors.Is(err, employee.ErrInvalidInput):
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "invalid input"})
	case errors.As(err, &vErrs):
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "invalid input", Detail: vErrs.Error()})
	default:
		zap.S().Errorw("internal error", "err", err)
		body := errorBody{Error: "internal server error"}
		if devMode {
			body.Detail = err.Error()
		}
		writeJSON(w, http.StatusInternalServerError, body)
	}
}
