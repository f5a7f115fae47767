package errors

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingLogger struct {
	messages []string
	fields   []map[string]interface{}
}

func (l *recordingLogger) Error(msg string, fields map[string]interface{}) {
	l.messages = append(l.messages, msg)
	l.fields = append(l.fields, fields)
}

func TestNewConfigurationMissingError(t *testing.T) {
	err := NewConfigurationMissingError([]string{"GOOGLE_PRIVATE_KEY", "GOOGLE_SHEET_ID"})

	assert.Equal(t, ErrCodeConfigurationMissing, err.Code)
	assert.Equal(t, "Missing Google Sheets configuration: GOOGLE_PRIVATE_KEY, GOOGLE_SHEET_ID", err.Message)
	assert.Equal(t, http.StatusInternalServerError, err.HTTPStatus())
	assert.False(t, err.Retryable)
}

func TestNewRequestBodyError(t *testing.T) {
	t.Run("size limit", func(t *testing.T) {
		err := NewRequestBodyError(1024, fmt.Errorf("read: %w", &http.MaxBytesError{Limit: 1024}))

		assert.Equal(t, ErrCodePayloadTooLarge, err.Code)
		assert.Equal(t, "Request body exceeds 1024 bytes", err.Message)
		assert.Equal(t, http.StatusRequestEntityTooLarge, err.HTTPStatus())
	})

	t.Run("read failure", func(t *testing.T) {
		err := NewRequestBodyError(1024, stderrors.New("connection reset"))

		assert.Equal(t, ErrCodeUnreadableBody, err.Code)
		assert.Equal(t, http.StatusBadRequest, err.HTTPStatus())
		assert.Equal(t, "connection reset", err.Details)
	})
}

func TestNewMethodNotAllowedError(t *testing.T) {
	err := NewMethodNotAllowedError(http.MethodGet)
	assert.Equal(t, http.StatusMethodNotAllowed, err.HTTPStatus())
	assert.Equal(t, "Method not allowed", err.Message)
}

func TestNewExternalServiceError_KeepsUpstreamMessage(t *testing.T) {
	upstream := stderrors.New("googleapi: Error 403: The caller does not have permission")
	err := NewExternalServiceError("google-sheets", upstream)

	assert.Equal(t, upstream.Error(), err.Message)
	assert.True(t, stderrors.Is(err, upstream))
	assert.True(t, err.Retryable)
}

func TestNewTimeoutError(t *testing.T) {
	err := NewTimeoutError("google-sheets", 2*time.Second, context.DeadlineExceeded)
	assert.Equal(t, "google-sheets request timed out after 2s", err.Message)
	assert.True(t, stderrors.Is(err, context.DeadlineExceeded))
}

func TestAsStandardError(t *testing.T) {
	t.Run("passes through wrapped standard errors", func(t *testing.T) {
		orig := NewConfigurationMissingError([]string{"GOOGLE_SHEET_ID"})
		wrapped := fmt.Errorf("submit: %w", orig)
		assert.Same(t, orig, AsStandardError(wrapped))
		assert.True(t, IsCode(wrapped, ErrCodeConfigurationMissing))
	})

	t.Run("wraps unknown errors", func(t *testing.T) {
		got := AsStandardError(stderrors.New("boom"))
		assert.Equal(t, ErrCodeInternal, got.Code)
		assert.Equal(t, "boom", got.Message)
		assert.False(t, IsCode(stderrors.New("boom"), ErrCodeInternal))
	})
}

func TestErrorHandler_HandleHTTPError(t *testing.T) {
	log := &recordingLogger{}
	h := NewErrorHandler(log)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/submit-entry", nil)

	stdErr := h.HandleHTTPError(rec, req, NewExternalServiceError("google-sheets", stderrors.New("quota exceeded")))

	assert.Equal(t, ErrCodeExternalServiceError, stdErr.Code)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "quota exceeded", body["error"])
	assert.Equal(t, "Failed to save data to Google Sheets", body["details"])

	require.Len(t, log.messages, 1)
	assert.Equal(t, ErrCodeExternalServiceError, log.fields[0]["errorCode"])
	assert.Equal(t, "/api/submit-entry", log.fields[0]["path"])
}

func TestErrorHandler_NilLogger(t *testing.T) {
	h := NewErrorHandler(nil)
	rec := httptest.NewRecorder()
	assert.NotPanics(t, func() {
		h.HandleHTTPError(rec, nil, stderrors.New("boom"))
	})
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
