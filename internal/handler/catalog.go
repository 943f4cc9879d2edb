package handler

import (
	"net/http"
	"strconv"

	"github.com/goccy/go-json"

	"github.com/mediashelf/collection-helper/internal/domain"
)

const serviceVersion = "0.1.0"

// GET /
func (h *Handler) Root(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, InfoResponse{
		Message: "Personal Collection Helper API",
		Version: serviceVersion,
	})
}

// GET /health
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	health := h.catalog.Health(r.Context())

	resp := HealthResponse{Emby: health["emby"], Booklore: health["booklore"]}
	if !resp.Emby && !resp.Booklore {
		writeJSON(w, http.StatusServiceUnavailable, resp)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// POST /search
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	var req SearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "Request body must be valid JSON")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_parameter", validationMessage(err))
		return
	}

	includeVideo := req.Emby == nil || *req.Emby
	includeBooks := req.Booklore == nil || *req.Booklore

	results := h.catalog.SearchAll(r.Context(), req.Query, includeVideo, includeBooks)
	writeJSON(w, http.StatusOK, results)
}

// GET /stats
func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.catalog.CollectionStats(r.Context()))
}

// GET /videos/libraries
func (h *Handler) ListVideoLibraries(w http.ResponseWriter, r *http.Request) {
	libraries, err := h.catalog.VideoLibraries(r.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("library listing failed")
		writeError(w, http.StatusBadGateway, "upstream_error",
			"The video backend could not be reached")
		return
	}
	writeJSON(w, http.StatusOK, LibrariesResponse{Libraries: libraries})
}

// GET /videos/items
func (h *Handler) ListVideoItems(w http.ResponseWriter, r *http.Request) {
	h.listItems(w, r, domain.CategoryVideo)
}

// GET /books
func (h *Handler) ListBooks(w http.ResponseWriter, r *http.Request) {
	h.listItems(w, r, domain.CategoryBook)
}

func (h *Handler) listItems(w http.ResponseWriter, r *http.Request, category domain.Category) {
	limit := 100
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		parsed, err := strconv.Atoi(limitStr)
		if err != nil || parsed < 1 || parsed > 1000 {
			writeError(w, http.StatusBadRequest, "invalid_parameter", "Invalid limit parameter")
			return
		}
		limit = parsed
	}

	var items []domain.CatalogItem
	var err error
	if library := r.URL.Query().Get("library"); library != "" && category == domain.CategoryVideo {
		items, err = h.catalog.FetchLibraryItems(r.Context(), library)
	} else {
		items, err = h.catalog.FetchAllItems(r.Context(), category)
	}
	if err != nil {
		h.log.Error().Err(err).Str("category", string(category)).Msg("item listing failed")
		writeError(w, http.StatusBadGateway, "upstream_error",
			"The "+string(category)+" backend could not be reached")
		return
	}

	if len(items) > limit {
		items = items[:limit]
	}
	writeJSON(w, http.StatusOK, ItemsResponse{Items: items, Count: len(items)})
}
