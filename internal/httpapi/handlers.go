// internal/httpapi/handlers.go
//
// HTTP handlers for the user-management operation surface.
//
// Context
// -------
// Handlers are thin on purpose: decode, sanitize, validate, call the
// service, map the outcome.  Every business rule lives behind the service
// façade; nothing here inspects records beyond rendering them.
package httpapi

import (
	"crypto/subtle"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/JMLOSP/UserManagementAPI/internal/auth"
	"github.com/JMLOSP/UserManagementAPI/internal/config"
	"github.com/JMLOSP/UserManagementAPI/internal/employee"
	"github.com/JMLOSP/UserManagementAPI/internal/sanitize"
)

// API bundles the service and config the handlers need.
type API struct {
	svc *employee.Service
	cfg *config.Config
}

// New returns an API ready for Routes().
func New(svc *employee.Service, cfg *config.Config) *API {
	return &API{svc: svc, cfg: cfg}
}

/*──────────────────────────── auth ─────────────────────────────────────────*/

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token     string `json:"token"`
	ExpiresIn int64  `json:"expiresIn"` // seconds
}

// handleLogin exchanges the bootstrap credential for a bearer token.
func (a *API) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "malformed request body"})
		return
	}

	userOK := subtle.ConstantTimeCompare([]byte(req.Username), []byte(a.cfg.Auth.AdminUser)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(req.Password), []byte(a.cfg.Auth.AdminPassword)) == 1
	if !userOK || !passOK {
		writeJSON(w, http.StatusUnauthorized, errorBody{Error: "invalid credentials"})
		return
	}

	ttl := a.cfg.Auth.TokenTTL
	if ttl <= 0 {
		ttl = auth.DefaultTokenTTL
	}
	token, err := auth.GenerateToken(req.Username, []byte(a.cfg.Auth.JWTSecret), ttl)
	if err != nil {
		writeError(w, err, a.cfg.HTTP.DevMode)
		return
	}
	writeJSON(w, http.StatusOK, loginResponse{Token: token, ExpiresIn: int64(ttl.Seconds())})
}

/*──────────────────────────── reads ────────────────────────────────────────*/

// handleQuery serves GET /api/v1/users with pagination, filtering, and
// sorting.  Page and pageSize must be positive integers when supplied; the
// engine clamps pageSize to its maximum.
func (a *API) handleQuery(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	params := employee.QueryParams{
		SortBy:     q.Get("sortBy"),
		SortDir:    q.Get("sortDirection"),
		Filter:     q.Get("filter"),
		Department: q.Get("department"),
	}

	var err error
	if params.Page, err = positiveInt(q.Get("page"), 1); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "page must be a positive integer"})
		return
	}
	if params.PageSize, err = positiveInt(q.Get("pageSize"), employee.DefaultPageSize); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "pageSize must be a positive integer"})
		return
	}
	if raw := q.Get("isActive"); raw != "" {
		active, err := strconv.ParseBool(raw)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorBody{Error: "isActive must be true or false"})
			return
		}
		params.IsActive = &active
	}

	writeJSON(w, http.StatusOK, a.svc.Query(params))
}

// handleListAll serves GET /api/v1/users/all: every active record, default
// order, no pagination.
func (a *API) handleListAll(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, a.svc.List())
}

func (a *API) handleGetByID(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err, a.cfg.HTTP.DevMode)
		return
	}
	e, err := a.svc.GetByID(id)
	if err != nil {
		writeError(w, err, a.cfg.HTTP.DevMode)
		return
	}
	writeJSON(w, http.StatusOK, e)
}

func (a *API) handleExists(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err, a.cfg.HTTP.DevMode)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"exists": a.svc.Exists(id)})
}

func (a *API) handleGetByEmail(w http.ResponseWriter, r *http.Request) {
	email := strings.TrimSpace(r.URL.Query().Get("email"))
	if email == "" {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "email query parameter is required"})
		return
	}
	e, err := a.svc.GetByEmail(email)
	if err != nil {
		writeError(w, err, a.cfg.HTTP.DevMode)
		return
	}
	writeJSON(w, http.StatusOK, e)
}

func (a *API) handleByDepartment(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	writeJSON(w, http.StatusOK, a.svc.GetByDepartment(name))
}

/*──────────────────────────── mutations ────────────────────────────────────*/

func (a *API) handleCreate(w http.ResponseWriter, r *http.Request) {
	var in employee.CreateInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "malformed request body"})
		return
	}
	sanitize.CleanCreate(&in)
	if err := sanitize.Validate(in); err != nil {
		writeError(w, err, a.cfg.HTTP.DevMode)
		return
	}

	e, err := a.svc.Create(in)
	if err != nil {
		writeError(w, err, a.cfg.HTTP.DevMode)
		return
	}
	w.Header().Set("Location", fmt.Sprintf("/api/v1/users/%d", e.ID))
	writeJSON(w, http.StatusCreated, e)
}

func (a *API) handleUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err, a.cfg.HTTP.DevMode)
		return
	}

	var in employee.UpdateInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "malformed request body"})
		return
	}
	sanitize.CleanUpdate(&in)
	if err := sanitize.Validate(in); err != nil {
		writeError(w, err, a.cfg.HTTP.DevMode)
		return
	}

	e, err := a.svc.Update(id, in)
	if err != nil {
		writeError(w, err, a.cfg.HTTP.DevMode)
		return
	}
	writeJSON(w, http.StatusOK, e)
}

func (a *API) handleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err, a.cfg.HTTP.DevMode)
		return
	}
	if err := a.svc.Delete(id); err != nil {
		writeError(w, err, a.cfg.HTTP.DevMode)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

/*──────────────────────────── misc ─────────────────────────────────────────*/

func (a *API) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// pathID parses the {id} route parameter.  Non-numeric or non-positive
// values are invalid input, not not-found.
func pathID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, employee.ErrInvalidInput
	}
	return id, nil
}

// positiveInt parses s as a positive integer, returning def for empty
// input.
func positiveInt(s string, def int) (int, error) {
	if s == "" {
		return def, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return 0, employee.ErrInvalidInput
	}
	return n, nil
}
