package http

import (
	"encoding/json"
	"errors"
	"math"
	"net/http"
	"strconv"

	"currency-gateway/internal/domain/model"
	"currency-gateway/internal/domain/ports"
	"currency-gateway/internal/metrics"
	"currency-gateway/pkg/logger"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

type Handler struct {
	fiat    ports.FiatService
	crypto  ports.CryptoService
	log     *logger.Logger
	metrics *metrics.Metrics
}

func NewHandler(fiat ports.FiatService, crypto ports.CryptoService, log *logger.Logger, metrics *metrics.Metrics) *Handler {
	return &Handler{
		fiat:    fiat,
		crypto:  crypto,
		log:     log,
		metrics: metrics,
	}
}

func (h *Handler) RootHandler(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		h.sendError(w, http.StatusNotFound, "not found")
		return
	}

	h.sendJSON(w, http.StatusOK, map[string]string{
		"message": "Currency & Crypto Converter API is running.",
	})
}

func (h *Handler) ConvertHandler(w http.ResponseWriter, r *http.Request) {
	h.metrics.FiatConversionsTotal.Inc()

	from := r.URL.Query().Get("from_currency")
	to := r.URL.Query().Get("to_currency")

	if from == "" || to == "" {
		h.sendError(w, http.StatusBadRequest, "missing required parameters: from_currency and to_currency")
		return
	}

	amount, ok := h.parseAmount(w, r)
	if !ok {
		return
	}

	request := model.ConversionRequest{
		From:   model.NormalizeCurrency(from),
		To:     model.NormalizeCurrency(to),
		Amount: amount,
	}

	result, err := h.fiat.Convert(r.Context(), request)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.sendJSON(w, http.StatusOK, result)
}

func (h *Handler) CryptoHandler(w http.ResponseWriter, r *http.Request) {
	h.metrics.CryptoConversionsTotal.Inc()

	symbol := r.URL.Query().Get("symbol")
	if symbol == "" {
		h.sendError(w, http.StatusBadRequest, "missing required parameter: symbol")
		return
	}

	vsCurrency := r.URL.Query().Get("vs_currency")
	if vsCurrency == "" {
		vsCurrency = "usd"
	}

	amount, ok := h.parseAmount(w, r)
	if !ok {
		return
	}

	request := model.CryptoConversionRequest{
		Symbol:     model.NormalizeTicker(symbol),
		VsCurrency: model.NormalizeCurrency(vsCurrency),
		Amount:     amount,
	}

	result, err := h.crypto.Convert(r.Context(), request)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.sendJSON(w, http.StatusOK, result)
}

// parseAmount reads the optional amount parameter, defaulting to 1.0.
// A false return means the response has already been written.
func (h *Handler) parseAmount(w http.ResponseWriter, r *http.Request) (float64, bool) {
	amountStr := r.URL.Query().Get("amount")
	if amountStr == "" {
		return 1.0, true
	}

	// ParseFloat accepts NaN and the infinities; none of them is a
	// convertible amount.
	amount, err := strconv.ParseFloat(amountStr, 64)
	if err != nil || math.IsNaN(amount) || math.IsInf(amount, 0) {
		h.sendError(w, http.StatusBadRequest, "invalid amount parameter")
		return 0, false
	}

	return amount, true
}

// sendJSON marshals before touching the ResponseWriter so an encode
// failure can still change the status line.
func (h *Handler) sendJSON(w http.ResponseWriter, statusCode int, data any) {
	body, err := json.Marshal(data)
	if err != nil {
		h.log.Error("Failed to encode response", "error", err)
		statusCode = http.StatusInternalServerError
		body = []byte(`{"error":"internal server error"}`)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if _, err := w.Write(body); err != nil {
		h.log.Error("Failed to write response", "error", err)
	}
}

func (h *Handler) sendError(w http.ResponseWriter, statusCode int, message string) {
	h.sendJSON(w, statusCode, ErrorResponse{Error: message})
}

// handleServiceError maps each domain error kind to its own status.
// Specific kinds are never collapsed into a generic failure.
func (h *Handler) handleServiceError(w http.ResponseWriter, err error) {
	statusCode := http.StatusInternalServerError
	message := "internal server error"

	switch {
	case errors.Is(err, model.ErrInvalidCurrency),
		errors.Is(err, model.ErrInvalidAmount):
		statusCode = http.StatusBadRequest
		message = err.Error()
	case errors.Is(err, model.ErrSymbolNotFound):
		statusCode = http.StatusNotFound
		message = err.Error()
	case errors.Is(err, model.ErrRateLimited):
		statusCode = http.StatusTooManyRequests
		message = err.Error()
	case errors.Is(err, model.ErrUpstreamProtocol),
		errors.Is(err, model.ErrUpstreamUnavailable):
		statusCode = http.StatusBadGateway
		message = err.Error()
	case errors.Is(err, model.ErrNetworkTimeout):
		statusCode = http.StatusGatewayTimeout
		message = err.Error()
	}

	h.log.Error("Service error", "error", err, "status_code", statusCode)
	h.sendError(w, statusCode, message)
}
