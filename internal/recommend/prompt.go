package recommend

import (
	"fmt"
	"sort"
	"strings"

	"github.com/mediashelf/collection-helper/internal/domain"
)

// maxSampleItems bounds prompt size per category.
const maxSampleItems = 30

// maxGenresPerItem keeps item lines short.
const maxGenresPerItem = 3

// SampleItems picks the subset of a category's items that goes into the
// prompt. The policy is deterministic: most recently added first (items
// with no known date sort last), name ascending as tiebreak, at most 30
// taken. The same catalog always yields the same sample.
func SampleItems(items []domain.CatalogItem) []domain.CatalogItem {
	sorted := make([]domain.CatalogItem, len(items))
	copy(sorted, items)

	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if !a.AddedAt.Equal(b.AddedAt) {
			if a.AddedAt.IsZero() || b.AddedAt.IsZero() {
				return b.AddedAt.IsZero()
			}
			return a.AddedAt.After(b.AddedAt)
		}
		return a.Name < b.Name
	})

	if len(sorted) > maxSampleItems {
		sorted = sorted[:maxSampleItems]
	}
	return sorted
}

// categoryLabels carries the human wording per category.
var categoryLabels = map[domain.Category]struct {
	collection string
	kind       string
}{
	domain.CategoryBook:  {collection: "Books", kind: "books"},
	domain.CategoryVideo: {collection: "Movies & TV Shows", kind: "movies and TV shows"},
}

// BuildPrompt renders the recommendation prompt for one category. items
// should already be sampled via SampleItems; anything beyond the sample
// bound is ignored. The instructed response schema is the contract the
// parser in this package decodes; keep them in lockstep.
func BuildPrompt(category domain.Category, items []domain.CatalogItem, count int, userPreferences string) (string, error) {
	if len(items) == 0 {
		return "", fmt.Errorf("%w: no items to build a %s prompt from", domain.ErrInvalidInput, category)
	}
	labels, ok := categoryLabels[category]
	if !ok {
		return "", fmt.Errorf("%w: unknown category %q", domain.ErrInvalidInput, category)
	}

	if len(items) > maxSampleItems {
		items = items[:maxSampleItems]
	}

	var b strings.Builder
	fmt.Fprintf(&b, "You are a media recommendation expert. Analyze the user's current %s below and suggest NEW %s they might enjoy acquiring.\n\n", labels.collection, labels.kind)
	fmt.Fprintf(&b, "Their Current %s:\n", labels.collection)
	for _, item := range items {
		b.WriteString(itemLine(item))
		b.WriteByte('\n')
	}

	fmt.Fprintf(&b, "\nBased on their collection's themes, genres, and authors, suggest %d NEW %s they DON'T have but would likely enjoy.\n", count, labels.kind)
	b.WriteString("Then, suggest 1 ADDITIONAL recommendation that is DIFFERENT from their usual patterns - something that would diversify their collection and expose them to a new genre, style, or perspective they haven't explored much.\n")
	b.WriteString("\nIMPORTANT:\n")
	b.WriteString("- Suggest items NOT listed above (new discoveries for them)\n")
	b.WriteString("- Consider patterns in their collection (genres, authors, themes)\n")
	b.WriteString("- Be specific with titles - these should be real, well-known works\n")

	if userPreferences != "" {
		fmt.Fprintf(&b, "\nAdditional Context:\n%s\n", userPreferences)
	}

	fmt.Fprintf(&b, `
Provide recommendations in this JSON format:
{
  "recommendations": [
    {
      "name": "Title of the %s",
      "reason": "Why they would like this based on their collection patterns (1-2 sentences)",
      "match_score": 0.85,
      "surprise": false
    }
  ]
}

Mark exactly ONE recommendation with "surprise": true - the diversifying one - and place it LAST in the array. All pattern-based recommendations carry "surprise": false.

Respond ONLY with valid JSON.`, labels.kind)

	return b.String(), nil
}

func itemLine(item domain.CatalogItem) string {
	var b strings.Builder
	b.WriteString("- ")
	b.WriteString(item.Name)
	if item.Creator != "" {
		b.WriteString(" by ")
		b.WriteString(item.Creator)
	}
	if item.Year > 0 {
		fmt.Fprintf(&b, " (%d)", item.Year)
	}
	if len(item.Genres) > 0 {
		genres := item.Genres
		if len(genres) > maxGenresPerItem {
			genres = genres[:maxGenresPerItem]
		}
		b.WriteString(" - ")
		b.WriteString(strings.Join(genres, ", "))
	}
	return b.String()
}
