// Package recommend implements the LLM recommendation pipeline: sampling
// catalog items, building category prompts, calling the gateway, parsing
// the structured response and merging both categories into one envelope.
package recommend

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/mediashelf/collection-helper/internal/domain"
	"github.com/mediashelf/collection-helper/internal/llm"
)

// ItemFetcher is the slice of the catalog facade the engine needs.
type ItemFetcher interface {
	FetchAllItems(ctx context.Context, category domain.Category) ([]domain.CatalogItem, error)
}

// Engine orchestrates one recommendation request. Stateless between
// requests: every call fetches fresh catalog data and makes single-shot
// LLM calls.
type Engine struct {
	catalog     ItemFetcher
	llm         llm.Client
	callTimeout time.Duration
	validate    *validator.Validate
	log         zerolog.Logger
}

func NewEngine(catalog ItemFetcher, client llm.Client, callTimeout time.Duration, log zerolog.Logger) *Engine {
	return &Engine{
		catalog:     catalog,
		llm:         client,
		callTimeout: callTimeout,
		validate:    validator.New(validator.WithRequiredStructEnabled()),
		log:         log,
	}
}

// categoryResult is the outcome of one category pipeline.
type categoryResult struct {
	recommendations []domain.Recommendation
	sampled         int
	diagnostics     []domain.Diagnostic
	gatewayErr      error
}

// Generate runs both category pipelines concurrently and merges them.
//
// Degradation policy: a category whose catalog fetch, LLM call or parse
// fails contributes zero recommendations plus a diagnostics entry; the
// other category proceeds. The request fails outright only when neither
// category produced a single item (NoDataAvailable), or when items
// existed but every attempted LLM call failed - then the first gateway
// error surfaces so callers can map it to a stable status. Parse
// failures are never fatal: if every category's response is unparseable
// the envelope goes out empty with one diagnostics entry per category.
//
// Ordering contract: books group first, then videos; within a group the
// pattern records sort by match score descending and the surprise record
// comes last.
func (e *Engine) Generate(ctx context.Context, req domain.RecommendationRequest) (*domain.RecommendationResponse, error) {
	if err := e.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}

	results := make([]categoryResult, len(domain.Categories))

	g, gctx := errgroup.WithContext(ctx)
	for i, category := range domain.Categories {
		i, category := i, category
		g.Go(func() error {
			results[i] = e.runCategory(gctx, category, req)
			return nil
		})
	}
	// Pipelines report failures through their result, never as group errors.
	_ = g.Wait()

	totalSampled := 0
	recommendations := make([]domain.Recommendation, 0, 2*(req.Count+1))
	var diagnostics []domain.Diagnostic
	var firstGatewayErr error

	for _, res := range results {
		totalSampled += res.sampled
		recommendations = append(recommendations, res.recommendations...)
		diagnostics = append(diagnostics, res.diagnostics...)
		if firstGatewayErr == nil && res.gatewayErr != nil {
			firstGatewayErr = res.gatewayErr
		}
	}

	if totalSampled == 0 {
		return nil, domain.ErrNoDataAvailable
	}
	if len(recommendations) == 0 && firstGatewayErr != nil {
		return nil, firstGatewayErr
	}

	return &domain.RecommendationResponse{
		Date:                 time.Now().UTC(),
		Recommendations:      recommendations,
		TotalItemsConsidered: totalSampled,
		LLMProvider:          e.llm.Provider(),
		Diagnostics:          diagnostics,
	}, nil
}

// runCategory executes the fetch -> sample -> prompt -> complete -> parse
// pipeline for one category. All failures degrade to diagnostics.
func (e *Engine) runCategory(ctx context.Context, category domain.Category, req domain.RecommendationRequest) categoryResult {
	var res categoryResult

	items, err := e.catalog.FetchAllItems(ctx, category)
	if err != nil {
		e.log.Error().Err(err).Str("category", string(category)).Msg("catalog fetch failed")
		res.diagnostics = append(res.diagnostics, diag(category, domain.StageCatalog, err.Error()))
		return res
	}
	if len(items) == 0 {
		// Empty category: zero contribution, not an error.
		return res
	}

	sample := SampleItems(items)
	res.sampled = len(sample)

	prompt, err := BuildPrompt(category, sample, req.Count, req.UserPreferences)
	if err != nil {
		res.diagnostics = append(res.diagnostics, diag(category, domain.StageLLM, err.Error()))
		return res
	}

	callCtx, cancel := context.WithTimeout(ctx, e.callTimeout)
	defer cancel()

	raw, err := e.llm.Complete(callCtx, prompt)
	if err != nil {
		e.log.Error().Err(err).Str("category", string(category)).Msg("llm call failed")
		res.gatewayErr = err
		res.diagnostics = append(res.diagnostics, diag(category, domain.StageLLM, err.Error()))
		return res
	}

	parsed, err := Parse(raw, category)
	if err != nil {
		e.log.Error().Err(err).Str("category", string(category)).Msg("llm response unparseable")
		res.diagnostics = append(res.diagnostics, diag(category, domain.StageParse, err.Error()))
		return res
	}
	if parsed.Dropped > 0 {
		res.diagnostics = append(res.diagnostics, diag(category, domain.StageParse,
			fmt.Sprintf("dropped %d malformed record(s)", parsed.Dropped)))
	}

	res.recommendations = orderRecommendations(parsed.Recommendations)
	return res
}

// orderRecommendations sorts pattern records by match score descending and
// moves surprise records to the end of the group.
func orderRecommendations(recs []domain.Recommendation) []domain.Recommendation {
	pattern := make([]domain.Recommendation, 0, len(recs))
	var surprises []domain.Recommendation
	for _, r := range recs {
		if r.Surprise {
			surprises = append(surprises, r)
		} else {
			pattern = append(pattern, r)
		}
	}

	sort.SliceStable(pattern, func(i, j int) bool {
		return pattern[i].MatchScore > pattern[j].MatchScore
	})

	return append(pattern, surprises...)
}

func diag(category domain.Category, stage domain.DiagnosticStage, msg string) domain.Diagnostic {
	return domain.Diagnostic{Category: category, Stage: stage, Message: msg}
}
