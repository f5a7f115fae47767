// internal/handlers/submit-entry/handler.go
package submitentry

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	apperrors "capex-entry/internal/common/errors"
	"capex-entry/internal/common/logger"
	"capex-entry/internal/common/metrics"
	"capex-entry/internal/common/observability"
	"capex-entry/internal/common/sheets"
)

const (
	Route = "/api/submit-entry"

	maxBodyBytes = 1 << 20
)

var corsHeaders = map[string]string{
	"Access-Control-Allow-Credentials": "true",
	"Access-Control-Allow-Origin":      "*",
	"Access-Control-Allow-Methods":     "GET,OPTIONS,PATCH,DELETE,POST,PUT",
	"Access-Control-Allow-Headers":     "X-CSRF-Token, X-Requested-With, Accept, Accept-Version, Content-Length, Content-MD5, Content-Type, Date, X-Api-Version",
}

type Handler struct {
	config    *Config
	newClient sheets.ClientFactory
	logger    logger.Logger
	obs       *observability.Observability
	tracer    trace.Tracer
	now       func() time.Time
}

func NewHandler(config *Config, newClient sheets.ClientFactory, log logger.Logger, obs *observability.Observability) *Handler {
	if config == nil {
		config = DefaultConfig()
	}
	return &Handler{
		config:    config,
		newClient: newClient,
		logger:    log.WithFields(map[string]interface{}{"handler": "submit-entry"}),
		obs:       obs,
		tracer:    otel.Tracer("capex-entry/submit-entry"),
		now:       time.Now,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	setCORSHeaders(w)

	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusOK)
		return
	}

	log := logger.FromContext(r.Context(), h.logger)

	if r.Method != http.MethodPost {
		stdErr := apperrors.NewMethodNotAllowedError(r.Method)
		log.Warn("rejected request", map[string]interface{}{"errorCode": stdErr.Code, "errorDetails": stdErr.Details})
		h.record(r.Context(), metrics.OutcomeMethodNotAllowed)
		apperrors.WriteJSON(w, stdErr.HTTPStatus(), MethodNotAllowedResponse{Error: stdErr.Message})
		return
	}

	payload, err := h.decodePayload(w, r, log)
	if err != nil {
		stdErr := apperrors.NewErrorHandler(log).HandleHTTPError(w, r, err)
		h.record(r.Context(), outcomeFor(stdErr.Code))
		return
	}
	log.Info("Received data", map[string]interface{}{"payload": map[string]interface{}(payload)})

	resp, err := h.Execute(r.Context(), payload)
	if err != nil {
		stdErr := apperrors.NewErrorHandler(log).HandleHTTPError(w, r, err)
		h.record(r.Context(), outcomeFor(stdErr.Code))
		return
	}

	h.record(r.Context(), metrics.OutcomeSuccess)
	apperrors.WriteJSON(w, http.StatusOK, resp)
}

// Execute runs the configuration check, row mapping, authentication and append
// for one submission.
func (h *Handler) Execute(ctx context.Context, payload Payload) (*SuccessResponse, error) {
	log := logger.FromContext(ctx, h.logger)

	if err := h.config.Validate(); err != nil {
		return nil, err
	}

	if problems := checkPayload(payload); len(problems) > 0 {
		log.Warn("payload does not match expected shape, coercing", map[string]interface{}{
			"problems": problems,
		})
	}

	row := BuildRow(payload, h.now())

	ctx, cancel := context.WithTimeout(ctx, h.config.Timeout)
	defer cancel()

	ctx, span := h.tracer.Start(ctx, "sheets.append",
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("sheets.range", h.config.Range),
			attribute.String("sheets.insert_data_option", h.config.InsertDataOption),
		),
	)
	defer span.End()

	start := time.Now()
	result, err := h.append(ctx, row)
	outcome := metrics.OutcomeSuccess
	if err != nil {
		outcome = outcomeFor(apperrors.AsStandardError(err).Code)
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	elapsed := time.Since(start)
	metrics.SheetsAppendDuration.WithLabelValues(outcome).Observe(elapsed.Seconds())
	h.obs.RecordAppendDuration(ctx, elapsed, outcome)
	if err != nil {
		return nil, err
	}

	var rowNumber *string
	if result != nil && result.UpdatedRange != "" {
		updated := result.UpdatedRange
		rowNumber = &updated
		span.SetAttributes(attribute.String("sheets.updated_range", updated))
	}

	log.Info("Successfully saved to Google Sheets", map[string]interface{}{
		"updatedRange": result.UpdatedRange,
		"updatedRows":  result.UpdatedRows,
		"tableRange":   result.TableRange,
	})

	return &SuccessResponse{
		Success:   true,
		Message:   SuccessMessage,
		RowNumber: rowNumber,
	}, nil
}

func (h *Handler) append(ctx context.Context, row Row) (*sheets.AppendResult, error) {
	client, err := h.newClient(ctx, h.config.credential())
	if err != nil {
		if isTimeout(ctx, err) {
			return nil, apperrors.NewTimeoutError(sheets.ServiceName, h.config.Timeout, err)
		}
		return nil, apperrors.NewAuthenticationError(sheets.ServiceName, err)
	}

	result, err := client.AppendRow(ctx, &sheets.AppendRequest{
		SpreadsheetID:    h.config.SheetID,
		Range:            h.config.Range,
		Values:           row,
		ValueInputOption: h.config.ValueInputOption,
		InsertDataOption: h.config.InsertDataOption,
	})
	if err != nil {
		if isTimeout(ctx, err) {
			return nil, apperrors.NewTimeoutError(sheets.ServiceName, h.config.Timeout, err)
		}
		return nil, apperrors.NewExternalServiceError(sheets.ServiceName, err)
	}
	if result == nil {
		result = &sheets.AppendResult{}
	}
	return result, nil
}

// decodePayload reads the body as JSON or a urlencoded form. A body that cannot
// be read in full is an error; an empty or non-object body is an empty payload.
func (h *Handler) decodePayload(w http.ResponseWriter, r *http.Request, log logger.Logger) (Payload, error) {
	if r.Body == nil {
		return Payload{}, nil
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "application/x-www-form-urlencoded" {
		if err := r.ParseForm(); err != nil {
			return nil, apperrors.NewRequestBodyError(maxBodyBytes, err)
		}
		payload := Payload{}
		for key, values := range r.PostForm {
			if len(values) > 0 {
				payload[key] = values[0]
			}
		}
		return payload, nil
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		return nil, apperrors.NewRequestBodyError(maxBodyBytes, err)
	}
	if len(strings.TrimSpace(string(body))) == 0 {
		return Payload{}, nil
	}

	var decoded interface{}
	if err := json.Unmarshal(body, &decoded); err != nil {
		log.Warn("request body is not JSON, using empty payload", map[string]interface{}{"error": err})
		return Payload{}, nil
	}
	obj, ok := decoded.(map[string]interface{})
	if !ok {
		log.Warn("request body is not a JSON object, using empty payload", nil)
		return Payload{}, nil
	}
	return Payload(obj), nil
}

func (h *Handler) record(ctx context.Context, outcome string) {
	metrics.SubmissionsTotal.WithLabelValues(outcome).Inc()
	h.obs.RecordSubmission(ctx, outcome)
}

func setCORSHeaders(w http.ResponseWriter) {
	for k, v := range corsHeaders {
		w.Header().Set(k, v)
	}
}

func isTimeout(ctx context.Context, err error) bool {
	return errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded)
}

func outcomeFor(code apperrors.ErrorCode) string {
	switch code {
	case apperrors.ErrCodeConfigurationMissing:
		return metrics.OutcomeConfigMissing
	case apperrors.ErrCodeAuthenticationFailed:
		return metrics.OutcomeAuthFailed
	case apperrors.ErrCodeTimeout:
		return metrics.OutcomeTimeout
	case apperrors.ErrCodePayloadTooLarge, apperrors.ErrCodeUnreadableBody:
		return metrics.OutcomeBodyRejected
	default:
		return metrics.OutcomeAppendFailed
	}
}
