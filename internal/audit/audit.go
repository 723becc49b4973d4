// internal/audit/audit.go
//
// Request/response audit middleware.
//
// Context
// -------
// Every API request gets one structured audit record: who (authenticated
// subject, when known), what (method, path, status), from where (IP, UA,
// geo), and how long it took.  The record goes to the shared zap sink under
// the "audit" logger name, which makes audit lines trivially filterable in
// the daily JSON logs.
//
// The wrapper observes only.  It never reads the request body and never
// alters what the handler writes; the status is captured through a thin
// ResponseWriter shim.
package audit

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/JMLOSP/UserManagementAPI/internal/auth"
	"github.com/JMLOSP/UserManagementAPI/internal/metrics"
	"github.com/JMLOSP/UserManagementAPI/internal/requestinfo"
)

// statusRecorder captures the status code written by the handler.  A
// handler that never calls WriteHeader implicitly writes 200.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// Log wraps next with audit recording.  Place it after requestinfo.Enrich
// so UA and geo fields are available, and outside RequireAuth so rejected
// requests are audited too.
func Log(next http.Handler) http.Handler {
	logger := zap.L().Named("audit")

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		requestID := uuid.NewString()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		subject, _ := auth.Subject(r.Context())

		fields := []zap.Field{
			zap.String("request_id", requestID),
			zap.String("actor", subject),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.String("query", r.URL.RawQuery),
			zap.Int("status", rec.status),
			zap.Duration("duration", time.Since(start)),
		}
		if info := requestinfo.FromContext(r.Context()); info != nil {
			fields = append(fields,
				zap.String("ip", info.Geo.IP.String()),
				zap.String("country", info.Geo.CountryISO),
				zap.String("city", info.Geo.City),
				zap.String("browser", info.UA.Browser),
				zap.String("device", info.UA.Device),
				zap.Bool("bot", info.UA.IsBot),
			)
		}

		logger.Info("api request", fields...)
		metrics.AuditEventsTotal.Inc()
	})
}
