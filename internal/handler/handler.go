package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/mediashelf/collection-helper/internal/catalog"
	"github.com/mediashelf/collection-helper/internal/domain"
)

// RecommendationService generates the recommendation envelope for one
// validated request.
type RecommendationService interface {
	Generate(ctx context.Context, req domain.RecommendationRequest) (*domain.RecommendationResponse, error)
}

// CatalogService is the slice of the catalog facade the handlers expose.
type CatalogService interface {
	FetchAllItems(ctx context.Context, category domain.Category) ([]domain.CatalogItem, error)
	FetchLibraryItems(ctx context.Context, libraryName string) ([]domain.CatalogItem, error)
	VideoLibraries(ctx context.Context) ([]catalog.LibraryInfo, error)
	SearchAll(ctx context.Context, query string, includeVideo, includeBooks bool) catalog.SearchResults
	CollectionStats(ctx context.Context) catalog.Stats
	Health(ctx context.Context) map[string]bool
}

type Handler struct {
	recommender RecommendationService
	catalog     CatalogService
	validate    *validator.Validate
	log         zerolog.Logger
}

func NewHandler(recommender RecommendationService, cat CatalogService, log zerolog.Logger) *Handler {
	return &Handler{
		recommender: recommender,
		catalog:     cat,
		validate:    validator.New(validator.WithRequiredStructEnabled()),
		log:         log,
	}
}

// write JSON response
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writes JSON error response.
func writeError(w http.ResponseWriter, status int, errCode, message string) {
	writeJSON(w, status, ErrorResponse{
		Error:   errCode,
		Message: message,
	})
}

// validationMessage names the first failed request field instead of
// guessing which one it was.
func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		switch verrs[0].Field() {
		case "Count":
			return "count must be between 1 and 20"
		case "UserPreferences":
			return "user_preferences must be at most 2000 characters"
		case "Query":
			return "query is required and must be at most 500 characters"
		}
	}
	return "invalid request parameters"
}
