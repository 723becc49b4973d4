// internal/httpapi/router.go
//
// Route table and middleware chain.
//
// Chain order matters: requestinfo first so audit has UA/geo, audit second
// so even unauthenticated rejections leave a trail, security headers on
// everything, and RequireAuth only around the record routes — /healthz,
// /metrics, and the login endpoint stay open.
package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/JMLOSP/UserManagementAPI/internal/audit"
	"github.com/JMLOSP/UserManagementAPI/internal/auth"
	"github.com/JMLOSP/UserManagementAPI/internal/middleware"
	"github.com/JMLOSP/UserManagementAPI/internal/requestinfo"
)

// Routes builds the full handler tree.
func (a *API) Routes() http.Handler {
	r := chi.NewRouter()

	r.Use(requestinfo.Enrich)
	r.Use(middleware.Security)

	r.Get("/healthz", a.handleHealthz)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(audit.Log)

		r.Post("/auth/login", a.handleLogin)

		r.Group(func(r chi.Router) {
			r.Use(auth.RequireAuth([]byte(a.cfg.Auth.JWTSecret)))

			r.Route("/users", func(r chi.Router) {
				r.Get("/", a.handleQuery)
				r.Get("/all", a.handleListAll)
				r.Get("/by-email", a.handleGetByEmail)
				r.Get("/department/{name}", a.handleByDepartment)
				r.Post("/", a.handleCreate)

				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", a.handleGetByID)
					r.Get("/exists", a.handleExists)
					r.Put("/", a.handleUpdate)
					r.Delete("/", a.handleDelete)
				})
			})
		})
	})

	return r
}
