package catalog

import (
	"strings"
	"time"

	"github.com/mediashelf/collection-helper/internal/booklore"
	"github.com/mediashelf/collection-helper/internal/domain"
	"github.com/mediashelf/collection-helper/internal/emby"
)

// Mapping is pure: the same raw item always yields the same CatalogItem.

// MapVideoItem converts an Emby wire item into the normalized form.
func MapVideoItem(m emby.MediaItem) domain.CatalogItem {
	var creator string
	if len(m.Studios) > 0 {
		creator = m.Studios[0].Name
	}

	return domain.CatalogItem{
		ID:          "emby_" + m.ID,
		Name:        m.Name,
		Category:    domain.CategoryVideo,
		Source:      "emby",
		Genres:      cloneStrings(m.Genres),
		Creator:     creator,
		Year:        m.ProductionYear,
		Description: m.Overview,
		AddedAt:     parseTimestamp(m.DateCreated),
	}
}

// MapBook converts a Booklore wire book into the normalized form.
func MapBook(b booklore.Book) domain.CatalogItem {
	genres := cloneStrings(b.Categories)
	genres = append(genres, b.Tags...)

	return domain.CatalogItem{
		ID:          "booklore_" + b.ID,
		Name:        b.Title,
		Category:    domain.CategoryBook,
		Source:      "booklore",
		Genres:      genres,
		Creator:     strings.Join(b.Authors, ", "),
		Description: b.Description,
		AddedAt:     parseTimestamp(b.AddedAt),
	}
}

// parseTimestamp accepts the formats the backends emit; unknown or empty
// values map to the zero time, which the sampler sorts last.
func parseTimestamp(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC()
		}
	}
	return time.Time{}
}

func cloneStrings(in []string) []string {
	if len(in) == 0 {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}
