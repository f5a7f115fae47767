package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	apperrors "capex-entry/internal/common/errors"
	"capex-entry/internal/common/logger"
	mw "capex-entry/internal/common/middleware"
	submitentry "capex-entry/internal/handlers/submit-entry"
)

type Options struct {
	Logger      logger.Logger
	SubmitEntry http.Handler

	// MissingConfig reports credential settings that are still absent.
	MissingConfig func() []string

	MetricsEnabled bool
	MetricsPath    string
}

func New(opts Options) *chi.Mux {
	r := chi.NewRouter()

	r.Use(mw.RequestID(opts.Logger))
	r.Use(mw.Logger(opts.Logger))
	r.Use(mw.Metrics)
	r.Use(mw.Recovery(opts.Logger))

	// Method dispatch happens inside the handler so that every verb gets CORS headers.
	r.Handle(submitentry.Route, opts.SubmitEntry)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		apperrors.WriteJSON(w, http.StatusOK, map[string]string{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	r.Get("/ready", func(w http.ResponseWriter, r *http.Request) {
		var missing []string
		if opts.MissingConfig != nil {
			missing = opts.MissingConfig()
		}
		if len(missing) > 0 {
			apperrors.WriteJSON(w, http.StatusServiceUnavailable, map[string]interface{}{
				"status":  "not ready",
				"missing": missing,
				"time":    time.Now().Format(time.RFC3339),
			})
			return
		}
		apperrors.WriteJSON(w, http.StatusOK, map[string]interface{}{
			"status": "ready",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	if opts.MetricsEnabled {
		path := opts.MetricsPath
		if path == "" {
			path = "/metrics"
		}
		r.Handle(path, promhttp.Handler())
	}

	return r
}
