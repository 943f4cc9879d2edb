package domain

import "time"

// Recommendation source values, keyed by category.
const (
	SourceSuggestedBook  = "suggested_book"
	SourceSuggestedVideo = "suggested_video"
)

// Recommendation is a single LLM-suggested item. Produced fresh per
// request, never persisted.
type Recommendation struct {
	Name       string   `json:"name"`
	Source     string   `json:"source"`
	MediaType  Category `json:"media_type"`
	Reason     string   `json:"reason"`
	MatchScore float64  `json:"match_score"`
	Surprise   bool     `json:"surprise"`
}

// RecommendationRequest is the validated input for one recommendation run.
// Count is the number of pattern-based recommendations per category; each
// category additionally gets exactly one surprise recommendation.
type RecommendationRequest struct {
	Count           int    `json:"count" validate:"required,min=1,max=20"`
	UserPreferences string `json:"user_preferences,omitempty" validate:"omitempty,max=2000"`
}

// DiagnosticStage identifies which pipeline step degraded.
type DiagnosticStage string

const (
	StageCatalog DiagnosticStage = "catalog"
	StageLLM     DiagnosticStage = "llm"
	StageParse   DiagnosticStage = "parse"
)

// Diagnostic records a non-fatal, per-category degradation so that
// partial responses are never silently lossy.
type Diagnostic struct {
	Category Category        `json:"category"`
	Stage    DiagnosticStage `json:"stage"`
	Message  string          `json:"message"`
}

// RecommendationResponse is the envelope returned for one request.
// Recommendations are grouped by category (books first), pattern records
// sorted by descending match score, the surprise record last in its group.
type RecommendationResponse struct {
	Date                 time.Time        `json:"date"`
	Recommendations      []Recommendation `json:"recommendations"`
	TotalItemsConsidered int              `json:"total_items_considered"`
	LLMProvider          string           `json:"llm_provider"`
	Diagnostics          []Diagnostic     `json:"diagnostics,omitempty"`
}
