package router

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"capex-entry/internal/common/logger"
	"capex-entry/internal/common/middleware"
)

func newTestRouter(t *testing.T, missing []string) http.Handler {
	entry := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Method-Seen", r.Method)
		w.WriteHeader(http.StatusTeapot)
	})
	return New(Options{
		Logger:         logger.NewTestLogger(t),
		SubmitEntry:    entry,
		MissingConfig:  func() []string { return missing },
		MetricsEnabled: true,
		MetricsPath:    "/metrics",
	})
}

func TestRouter_SubmitEntryAcceptsEveryMethod(t *testing.T) {
	h := newTestRouter(t, nil)

	for _, method := range []string{http.MethodGet, http.MethodPost, http.MethodOptions, http.MethodDelete} {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(method, "/api/submit-entry", nil))

		assert.Equal(t, http.StatusTeapot, rec.Code, method)
		assert.Equal(t, method, rec.Header().Get("X-Method-Seen"))
		assert.NotEmpty(t, rec.Header().Get(middleware.RequestIDHeader))
	}
}

func TestRouter_Health(t *testing.T) {
	h := newTestRouter(t, nil)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "healthy", body["status"])
}

func TestRouter_Ready(t *testing.T) {
	t.Run("configured", func(t *testing.T) {
		rec := httptest.NewRecorder()
		newTestRouter(t, nil).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"ready"`)
	})

	t.Run("credentials missing", func(t *testing.T) {
		rec := httptest.NewRecorder()
		newTestRouter(t, []string{"GOOGLE_SHEET_ID"}).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))

		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
		assert.Contains(t, rec.Body.String(), "GOOGLE_SHEET_ID")
	})
}

func TestRouter_Metrics(t *testing.T) {
	h := newTestRouter(t, nil)

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/api/submit-entry", nil))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), "capex_http_requests_total"))
}

func TestRouter_MetricsDisabled(t *testing.T) {
	h := New(Options{Logger: logger.NewNoOpLogger(), SubmitEntry: http.NotFoundHandler()})

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
