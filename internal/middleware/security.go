// internal/middleware/security.go
//
// Security-header middleware.
//
// Injects standard hardening headers on every response:
//
//   • Strict-Transport-Security  –  forces HTTPS (2 years + preload)
//   • X-Content-Type-Options     –  MIME-sniffing defence
//   • X-Frame-Options            –  click-jacking defence
//   • Referrer-Policy            –  drops path/query from Referer
//   • Cache-Control              –  API responses are never cacheable by
//                                   intermediaries; freshness is the job of
//                                   the in-process result cache
//
// Notes
// -----
// • Headers are set *before* next.ServeHTTP: net/http snapshots the header
//   map on WriteHeader, so anything added afterwards never leaves the
//   process.  Handlers that need a different value overwrite the default
//   before writing.
// • If the service runs behind a TLS-terminating proxy, HSTS is still
//   useful because clients see the public domain as HTTPS.

package middleware

import "net/http"

// Security sets security headers for every response.
func Security(next http.Handler) http.Handler {
	const (
		hsts  = "max-age=63072000; includeSubDomains; preload"
		xfo   = "DENY"
		nosn  = "nosniff"
		refer = "strict-origin-when-cross-origin"
		cache = "no-store"
	)

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		add := w.Header().Add // shorthand

		if w.Header().Get("Strict-Transport-Security") == "" {
			add("Strict-Transport-Security", hsts)
		}
		if w.Header().Get("X-Content-Type-Options") == "" {
			add("X-Content-Type-Options", nosn)
		}
		if w.Header().Get("X-Frame-Options") == "" {
			add("X-Frame-Options", xfo)
		}
		if w.Header().Get("Referrer-Policy") == "" {
			add("Referrer-Policy", refer)
		}
		if w.Header().Get("Cache-Control") == "" {
			add("Cache-Control", cache)
		}

		next.ServeHTTP(w, r)
	})
}
