// ABOUTME: HTTP router wiring all nine dashboard collections plus health
// ABOUTME: Applies CORS and request logging around the resource handlers

package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/cleverdash/dash-gateway/internal/model"
	"github.com/cleverdash/dash-gateway/internal/store"
)

// Collection path segments. The client resource layer builds its URLs from
// the same names, so the two sides can never drift apart.
const (
	PathTeam      = "team"
	PathContacts  = "contacts"
	PathInvoices  = "invoices"
	PathProducts  = "products"
	PathCalendar  = "calendar"
	PathBarChart  = "barChart"
	PathPieChart  = "pieChart"
	PathLineChart = "lineChart"
	PathGeography = "geographyChart"
)

// NewRouter builds the full dashboard API over the given store. Every
// collection gets the same five operations from the generic resource
// controller; origins configures CORS for the browser client.
func NewRouter(s store.Store, origins []string) http.Handler {
	mux := http.NewServeMux()

	NewResource[model.TeamMember](s, PathTeam).Mount(mux)
	NewResource[model.Contact](s, PathContacts).Mount(mux)
	NewResource[model.Invoice](s, PathInvoices).Mount(mux)
	NewResource[model.Product](s, PathProducts).Mount(mux)
	NewResource[model.Event](s, PathCalendar).Mount(mux)
	NewResource[model.BarEntry](s, PathBarChart).Mount(mux)
	NewResource[model.PieEntry](s, PathPieChart).Mount(mux)
	NewResource[model.LineEntry](s, PathLineChart).Mount(mux)
	NewResource[model.GeographyEntry](s, PathGeography).Mount(mux)

	mux.HandleFunc("GET /health", handleHealth)

	return withCORS(origins, withRequestLog(mux))
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// withCORS answers preflight requests and stamps the allow headers on
// responses. An empty origin list allows any origin, matching a dashboard
// served from a dev server on a different port.
func withCORS(origins []string, next http.Handler) http.Handler {
	allowed := make(map[string]bool, len(origins))
	for _, o := range origins {
		allowed[o] = true
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if origin != "" {
			if len(allowed) == 0 {
				w.Header().Set("Access-Control-Allow-Origin", "*")
			} else if allowed[origin] {
				w.Header().Set("Access-Control-Allow-Origin", origin)
				w.Header().Add("Vary", "Origin")
			}
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		}

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// statusRecorder captures the response code for the request log line.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (sr *statusRecorder) WriteHeader(code int) {
	sr.status = code
	sr.ResponseWriter.WriteHeader(code)
}

func withRequestLog(next http.Handler) http.Handler {
	logger := slog.Default().With("component", "api")
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration", time.Since(start),
		)
	})
}
