package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/goccy/go-json"

	"github.com/mediashelf/collection-helper/internal/domain"
	"github.com/mediashelf/collection-helper/internal/llm"
)

// POST /recommendations
func (h *Handler) GenerateRecommendations(w http.ResponseWriter, r *http.Request) {
	var req domain.RecommendationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "Request body must be valid JSON")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_parameter", validationMessage(err))
		return
	}

	resp, err := h.recommender.Generate(r.Context(), req)
	if err != nil {
		h.writeRecommendationError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// writeRecommendationError maps pipeline failures to stable error codes.
func (h *Handler) writeRecommendationError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		writeError(w, http.StatusBadRequest, "invalid_parameter", err.Error())
	case errors.Is(err, domain.ErrNoDataAvailable):
		writeError(w, http.StatusServiceUnavailable, "no_data_available",
			"No catalog items are available to recommend from")
	case llm.IsAuthError(err):
		writeError(w, http.StatusBadGateway, "llm_auth_error",
			"The LLM provider rejected the configured credentials")
	case llm.IsRateLimitError(err):
		writeError(w, http.StatusBadGateway, "llm_rate_limited",
			"The LLM provider is rate limiting requests")
	case llm.IsTimeoutError(err), errors.Is(err, context.DeadlineExceeded):
		writeError(w, http.StatusGatewayTimeout, "llm_timeout",
			"The LLM provider did not respond in time")
	case llm.IsProviderError(err):
		writeError(w, http.StatusBadGateway, "llm_provider_error",
			"The LLM provider returned an error")
	default:
		h.log.Error().Err(err).Msg("recommendation request failed")
		writeError(w, http.StatusInternalServerError, "internal_error", "An unexpected error occurred")
	}
}
