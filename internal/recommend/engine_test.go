package recommend

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mediashelf/collection-helper/internal/domain"
	"github.com/mediashelf/collection-helper/internal/llm"
)

// stubCatalog serves canned items per category and counts calls.
type stubCatalog struct {
	mu    sync.Mutex
	items map[domain.Category][]domain.CatalogItem
	errs  map[domain.Category]error
	calls int
}

func (s *stubCatalog) FetchAllItems(ctx context.Context, category domain.Category) ([]domain.CatalogItem, error) {
	s.mu.Lock()
	s.calls++
	s.mu.Unlock()
	if err := s.errs[category]; err != nil {
		return nil, err
	}
	return s.items[category], nil
}

// stubCompleter returns a canned response per category (detected from the
// prompt wording) and counts calls.
type stubCompleter struct {
	mu        sync.Mutex
	responses map[domain.Category]string
	errs      map[domain.Category]error
	calls     int
}

func (s *stubCompleter) Provider() string { return "stub" }

func (s *stubCompleter) Complete(ctx context.Context, prompt string) (string, error) {
	s.mu.Lock()
	s.calls++
	s.mu.Unlock()

	category := domain.CategoryVideo
	if strings.Contains(prompt, "Current Books") {
		category = domain.CategoryBook
	}
	if err := s.errs[category]; err != nil {
		return "", err
	}
	return s.responses[category], nil
}

// llmBlock renders a valid response with count pattern records plus one
// surprise record, scores descending from 0.9.
func llmBlock(count int) string {
	var b strings.Builder
	b.WriteString(`{"recommendations": [`)
	for i := 0; i < count; i++ {
		if i > 0 {
			b.WriteString(",")
		}
		fmt.Fprintf(&b, `{"name": "Pick %d", "reason": "Fits the collection.", "match_score": %.2f, "surprise": false}`, i, 0.9-float64(i)*0.1)
	}
	if count > 0 {
		b.WriteString(",")
	}
	b.WriteString(`{"name": "Wildcard", "reason": "Off-pattern pick.", "match_score": 0.3, "surprise": true}]}`)
	return b.String()
}

func catalogItems(category domain.Category, n int) []domain.CatalogItem {
	items := make([]domain.CatalogItem, 0, n)
	for i := 0; i < n; i++ {
		items = append(items, domain.CatalogItem{
			ID:       fmt.Sprintf("%s_%d", category, i),
			Name:     fmt.Sprintf("%s item %d", category, i),
			Category: category,
			Source:   "test",
			AddedAt:  time.Date(2025, 1, 1+i, 0, 0, 0, 0, time.UTC),
		})
	}
	return items
}

func newTestEngine(cat *stubCatalog, comp llm.Client) *Engine {
	return NewEngine(cat, comp, time.Minute, zerolog.Nop())
}

func TestGenerateBothCategories(t *testing.T) {
	const count = 4

	cat := &stubCatalog{items: map[domain.Category][]domain.CatalogItem{
		domain.CategoryBook:  catalogItems(domain.CategoryBook, 10),
		domain.CategoryVideo: catalogItems(domain.CategoryVideo, 7),
	}}
	comp := &stubCompleter{responses: map[domain.Category]string{
		domain.CategoryBook:  llmBlock(count),
		domain.CategoryVideo: llmBlock(count),
	}}

	resp, err := newTestEngine(cat, comp).Generate(context.Background(), domain.RecommendationRequest{Count: count})
	require.NoError(t, err)

	// 2*(N+1) recommendations when both categories have items.
	require.Len(t, resp.Recommendations, 2*(count+1))
	assert.Equal(t, 17, resp.TotalItemsConsidered)
	assert.Equal(t, "stub", resp.LLMProvider)
	assert.Empty(t, resp.Diagnostics)
	assert.False(t, resp.Date.IsZero())

	// Books group first, then videos.
	for i := 0; i < count+1; i++ {
		assert.Equal(t, domain.CategoryBook, resp.Recommendations[i].MediaType)
	}
	for i := count + 1; i < 2*(count+1); i++ {
		assert.Equal(t, domain.CategoryVideo, resp.Recommendations[i].MediaType)
	}

	// Within a group: pattern records by descending score, surprise last.
	books := resp.Recommendations[:count+1]
	for i := 1; i < count; i++ {
		assert.GreaterOrEqual(t, books[i-1].MatchScore, books[i].MatchScore)
	}
	assert.True(t, books[count].Surprise)
}

func TestGenerateRejectsCountBeforeAnyCall(t *testing.T) {
	for _, count := range []int{0, -3, 21, 100} {
		cat := &stubCatalog{}
		comp := &stubCompleter{}

		_, err := newTestEngine(cat, comp).Generate(context.Background(), domain.RecommendationRequest{Count: count})
		require.ErrorIs(t, err, domain.ErrInvalidInput, "count=%d", count)
		assert.Zero(t, cat.calls, "catalog must not be called for count=%d", count)
		assert.Zero(t, comp.calls, "llm must not be called for count=%d", count)
	}
}

func TestGenerateEmptyVideoCategoryDegrades(t *testing.T) {
	const count = 3

	cat := &stubCatalog{items: map[domain.Category][]domain.CatalogItem{
		domain.CategoryBook:  catalogItems(domain.CategoryBook, 5),
		domain.CategoryVideo: nil,
	}}
	comp := &stubCompleter{responses: map[domain.Category]string{
		domain.CategoryBook: llmBlock(count),
	}}

	resp, err := newTestEngine(cat, comp).Generate(context.Background(), domain.RecommendationRequest{Count: count})
	require.NoError(t, err)

	require.Len(t, resp.Recommendations, count+1)
	for _, rec := range resp.Recommendations {
		assert.Equal(t, domain.CategoryBook, rec.MediaType)
	}
	assert.Equal(t, 5, resp.TotalItemsConsidered)
	assert.Equal(t, 1, comp.calls, "no llm call for the empty category")
}

func TestGenerateBothCategoriesEmpty(t *testing.T) {
	cat := &stubCatalog{}
	comp := &stubCompleter{}

	_, err := newTestEngine(cat, comp).Generate(context.Background(), domain.RecommendationRequest{Count: 2})
	require.ErrorIs(t, err, domain.ErrNoDataAvailable)
	assert.Zero(t, comp.calls)
}

func TestGenerateBothCatalogsFailing(t *testing.T) {
	cat := &stubCatalog{errs: map[domain.Category]error{
		domain.CategoryBook:  fmt.Errorf("%w: connection refused", domain.ErrUpstreamUnavailable),
		domain.CategoryVideo: fmt.Errorf("%w: connection refused", domain.ErrUpstreamUnavailable),
	}}

	_, err := newTestEngine(cat, &stubCompleter{}).Generate(context.Background(), domain.RecommendationRequest{Count: 2})
	require.ErrorIs(t, err, domain.ErrNoDataAvailable)
}

func TestGenerateSingleLLMFailureDegrades(t *testing.T) {
	const count = 2

	cat := &stubCatalog{items: map[domain.Category][]domain.CatalogItem{
		domain.CategoryBook:  catalogItems(domain.CategoryBook, 4),
		domain.CategoryVideo: catalogItems(domain.CategoryVideo, 4),
	}}
	comp := &stubCompleter{
		responses: map[domain.Category]string{domain.CategoryBook: llmBlock(count)},
		errs:      map[domain.Category]error{domain.CategoryVideo: &llm.ProviderError{Provider: "stub", Status: 500}},
	}

	resp, err := newTestEngine(cat, comp).Generate(context.Background(), domain.RecommendationRequest{Count: count})
	require.NoError(t, err)

	require.Len(t, resp.Recommendations, count+1)
	for _, rec := range resp.Recommendations {
		assert.Equal(t, domain.CategoryBook, rec.MediaType)
	}

	require.Len(t, resp.Diagnostics, 1)
	assert.Equal(t, domain.CategoryVideo, resp.Diagnostics[0].Category)
	assert.Equal(t, domain.StageLLM, resp.Diagnostics[0].Stage)
}

func TestGenerateAllLLMCallsFailingSurfacesGatewayError(t *testing.T) {
	cat := &stubCatalog{items: map[domain.Category][]domain.CatalogItem{
		domain.CategoryBook:  catalogItems(domain.CategoryBook, 3),
		domain.CategoryVideo: catalogItems(domain.CategoryVideo, 3),
	}}
	comp := &stubCompleter{errs: map[domain.Category]error{
		domain.CategoryBook:  &llm.AuthError{Provider: "stub", Status: 401},
		domain.CategoryVideo: &llm.AuthError{Provider: "stub", Status: 401},
	}}

	_, err := newTestEngine(cat, comp).Generate(context.Background(), domain.RecommendationRequest{Count: 2})
	require.Error(t, err)
	assert.True(t, llm.IsAuthError(err))
}

func TestGenerateAllParseFailuresReturnEmptyEnvelope(t *testing.T) {
	cat := &stubCatalog{items: map[domain.Category][]domain.CatalogItem{
		domain.CategoryBook:  catalogItems(domain.CategoryBook, 3),
		domain.CategoryVideo: catalogItems(domain.CategoryVideo, 3),
	}}
	comp := &stubCompleter{responses: map[domain.Category]string{
		domain.CategoryBook:  "I'm sorry, I cannot produce JSON today.",
		domain.CategoryVideo: "Here are some thoughts, in prose only.",
	}}

	// The provider answered, so there is no gateway error to surface; both
	// parse failures degrade to diagnostics and the envelope goes out empty.
	resp, err := newTestEngine(cat, comp).Generate(context.Background(), domain.RecommendationRequest{Count: 2})
	require.NoError(t, err)

	assert.Empty(t, resp.Recommendations)
	assert.Equal(t, 6, resp.TotalItemsConsidered)
	require.Len(t, resp.Diagnostics, 2)
	for _, d := range resp.Diagnostics {
		assert.Equal(t, domain.StageParse, d.Stage)
	}
}

func TestGenerateMalformedRecordsReported(t *testing.T) {
	raw := `{"recommendations": [
		{"name": "Kept", "reason": "r", "match_score": 0.8, "surprise": false},
		{"name": "Dropped", "reason": "missing score"},
		{"name": "Wild", "reason": "r", "match_score": 0.2, "surprise": true}
	]}`

	cat := &stubCatalog{items: map[domain.Category][]domain.CatalogItem{
		domain.CategoryBook: catalogItems(domain.CategoryBook, 3),
	}}
	comp := &stubCompleter{responses: map[domain.Category]string{domain.CategoryBook: raw}}

	resp, err := newTestEngine(cat, comp).Generate(context.Background(), domain.RecommendationRequest{Count: 2})
	require.NoError(t, err)

	assert.Len(t, resp.Recommendations, 2)
	require.Len(t, resp.Diagnostics, 1)
	assert.Equal(t, domain.StageParse, resp.Diagnostics[0].Stage)
	assert.Contains(t, resp.Diagnostics[0].Message, "1")
}

// End-to-end scenario from the service contract: count 2, three books,
// no videos, model returns a valid 3-record block for books.
func TestGenerateEndToEndScenario(t *testing.T) {
	cat := &stubCatalog{items: map[domain.Category][]domain.CatalogItem{
		domain.CategoryBook:  catalogItems(domain.CategoryBook, 3),
		domain.CategoryVideo: nil,
	}}
	comp := &stubCompleter{responses: map[domain.Category]string{
		domain.CategoryBook: llmBlock(2),
	}}

	resp, err := newTestEngine(cat, comp).Generate(context.Background(), domain.RecommendationRequest{Count: 2})
	require.NoError(t, err)

	assert.Len(t, resp.Recommendations, 3)
	assert.Equal(t, 3, resp.TotalItemsConsidered)
	for _, rec := range resp.Recommendations {
		assert.Equal(t, domain.CategoryBook, rec.MediaType)
		assert.Equal(t, domain.SourceSuggestedBook, rec.Source)
	}
}
