package errors

import (
	"encoding/json"
	"net/http"
)

// FailureDetails is the fixed details text of every failed submission.
const FailureDetails = "Failed to save data to Google Sheets"

// FailureResponse is the body written for any failure after the method gate.
type FailureResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Details string `json:"details"`
}

// ErrorHandler converts errors into the failure response shape.
type ErrorHandler struct {
	logger Logger
}

type Logger interface {
	Error(msg string, fields map[string]interface{})
}

func NewErrorHandler(logger Logger) *ErrorHandler {
	return &ErrorHandler{logger: logger}
}

// HandleHTTPError logs err and writes the 500 failure body. It returns the
// normalized error so callers can record its code.
func (h *ErrorHandler) HandleHTTPError(w http.ResponseWriter, r *http.Request, err error) *StandardError {
	stdErr := AsStandardError(err)
	h.logError(r, stdErr)

	WriteJSON(w, stdErr.HTTPStatus(), FailureResponse{
		Success: false,
		Error:   stdErr.Message,
		Details: FailureDetails,
	})
	return stdErr
}

func (h *ErrorHandler) logError(r *http.Request, stdErr *StandardError) {
	if h.logger == nil {
		return
	}
	fields := map[string]interface{}{
		"errorCode":    stdErr.Code,
		"errorMessage": stdErr.Message,
		"errorDetails": stdErr.Details,
		"retryable":    stdErr.Retryable,
	}
	if r != nil {
		fields["method"] = r.Method
		fields["path"] = r.URL.Path
	}
	if stdErr.cause != nil {
		fields["cause"] = stdErr.cause
	}
	for k, v := range stdErr.Metadata {
		fields[k] = v
	}
	h.logger.Error("Error saving to Google Sheets", fields)
}

// WriteJSON writes v with the given status code.
func WriteJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
