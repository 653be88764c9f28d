package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/kjstillabower/weather-widget/internal/client"
	"github.com/kjstillabower/weather-widget/internal/health"
	"github.com/kjstillabower/weather-widget/internal/models"
	"github.com/kjstillabower/weather-widget/internal/observability"
	"github.com/kjstillabower/weather-widget/internal/service"
	"github.com/kjstillabower/weather-widget/internal/validation"
)

// Version is reported by /health. Overridden at build time via -ldflags.
var Version = "dev"

// Handler holds dependencies for HTTP handlers.
type Handler struct {
	widgets          *service.WidgetService
	monitor          *health.Monitor
	logger           *zap.Logger
	healthStatusMu   sync.Mutex
	healthStatusPrev health.Status
}

// NewHandler returns a new Handler.
func NewHandler(widgets *service.WidgetService, monitor *health.Monitor, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		widgets: widgets,
		monitor: monitor,
		logger:  logger,
	}
}

// GetWeather handles GET /weather/{location}.
// Query: units=metric|imperial|scientific (default from config), raw=true for the untouched payload.
func (h *Handler) GetWeather(w http.ResponseWriter, r *http.Request) {
	location := mux.Vars(r)["location"]
	q := r.URL.Query()

	units, err := models.ParseUnitSystem(q.Get("units"), h.widgets.DefaultUnits())
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "INVALID_UNITS", "units must be one of metric, imperial, scientific")
		return
	}
	raw := false
	if v := q.Get("raw"); v != "" {
		if raw, err = strconv.ParseBool(v); err != nil {
			writeError(w, r, http.StatusBadRequest, "INVALID_PARAMETER", "raw must be a boolean")
			return
		}
	}

	var result interface{}
	if raw {
		result, err = h.widgets.GetForecast(r.Context(), location, units)
	} else {
		result, err = h.widgets.GetCurrent(r.Context(), location, units)
	}
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	h.recordOutcome(true)
	writeJSON(w, http.StatusOK, result)
}

func (h *Handler) recordOutcome(ok bool) {
	if h.monitor == nil {
		return
	}
	if ok {
		h.monitor.RecordSuccess()
	} else {
		h.monitor.RecordFailure()
	}
}

// GetHealth handles GET /health.
func (h *Handler) GetHealth(w http.ResponseWriter, r *http.Request) {
	report := health.Report{Status: health.StatusHealthy, KeyValid: true}
	if h.monitor != nil {
		report = h.monitor.Evaluate(r.Context())
	}

	h.healthStatusMu.Lock()
	prev := h.healthStatusPrev
	if prev != "" && prev != report.Status {
		h.logger.Info("health status transition",
			zap.String("previous_status", string(prev)),
			zap.String("current_status", string(report.Status)),
			zap.String("reason", report.Reason))
	}
	h.healthStatusPrev = report.Status
	h.healthStatusMu.Unlock()

	checks := map[string]string{"weatherApi": "healthy"}
	if !report.KeyValid || report.Reason == "error_rate_breach" {
		checks["weatherApi"] = "unhealthy"
	}
	statusCode := http.StatusOK
	if !report.Status.Serving() {
		statusCode = http.StatusServiceUnavailable
	}
	resp := map[string]interface{}{
		"status":    report.Status,
		"service":   observability.ServiceName,
		"version":   Version,
		"checks":    checks,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	}
	if report.Reason != "" {
		resp["reason"] = report.Reason
	}
	writeJSON(w, statusCode, resp)
}

// writeJSON writes a JSON response with the specified HTTP status code.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError writes an error response in the standard error format with code, message,
// and requestId (correlation ID) if available in request context.
func writeError(w http.ResponseWriter, r *http.Request, status int, code, message string) {
	writeJSON(w, status, map[string]interface{}{
		"error": map[string]string{
			"code":      code,
			"message":   message,
			"requestId": observability.CorrelationID(r.Context()),
		},
	})
}

// writeServiceError maps a widget lookup failure to a status code and error envelope.
// Upstream failures carry the fetch error text so the caller sees the HTTP status and reason.
func (h *Handler) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	if logger := observability.LoggerFromContext(r.Context()); logger != nil {
		logger.Debug("widget lookup failed", zap.Error(err))
	}

	switch {
	case errors.Is(err, validation.ErrLocationEmpty),
		errors.Is(err, validation.ErrLocationTooShort),
		errors.Is(err, validation.ErrLocationTooLong),
		errors.Is(err, validation.ErrLocationInvalidChars):
		writeError(w, r, http.StatusBadRequest, "INVALID_LOCATION", locationMessage(err))
		return
	case errors.Is(err, client.ErrInvalidParams):
		writeError(w, r, http.StatusBadRequest, "INVALID_PARAMETER", "Invalid forecast request")
		return
	}

	if upstreamFault(err) {
		h.recordOutcome(false)
	}

	message := "Unable to fetch weather data"
	var fe *client.FetchError
	if errors.As(err, &fe) {
		message = fe.Error()
	}
	switch {
	case errors.Is(err, client.ErrLocationNotFound):
		writeError(w, r, http.StatusNotFound, "LOCATION_NOT_FOUND", message)
	case errors.Is(err, client.ErrInvalidAPIKey):
		writeError(w, r, http.StatusBadGateway, "UPSTREAM_AUTH", message)
	case errors.Is(err, context.DeadlineExceeded):
		writeError(w, r, http.StatusGatewayTimeout, "UPSTREAM_TIMEOUT", "Weather provider did not respond in time")
	case errors.Is(err, client.ErrMalformedPayload):
		writeError(w, r, http.StatusBadGateway, "UPSTREAM_MALFORMED", "Weather provider returned an unreadable response")
	default:
		writeError(w, r, http.StatusBadGateway, "UPSTREAM_UNAVAILABLE", message)
	}
}

// upstreamFault reports whether err counts against provider health. Unknown
// locations and callers that hang up are not the provider's doing.
func upstreamFault(err error) bool {
	if errors.Is(err, context.Canceled) {
		return false
	}
	switch client.CategorizeError(err) {
	case client.ErrorCategoryTimeout,
		client.ErrorCategoryNetwork,
		client.ErrorCategoryInvalidAPIKey,
		client.ErrorCategoryRateLimited,
		client.ErrorCategoryUpstream,
		client.ErrorCategoryParsing:
		return true
	}
	return false
}

func locationMessage(err error) string {
	for _, target := range []error{
		validation.ErrLocationEmpty,
		validation.ErrLocationTooShort,
		validation.ErrLocationTooLong,
		validation.ErrLocationInvalidChars,
	} {
		if errors.Is(err, target) {
			return target.Error()
		}
	}
	return "invalid location"
}
