package catalog

import (
	"context"
)

// searchLimit bounds per-backend search results.
const searchLimit = 20

// SearchResults holds per-platform matches in normalized form. A backend
// that failed contributes an empty slice and an entry in Errors.
type SearchResults struct {
	Query  string            `json:"query"`
	Emby   []SearchHit       `json:"emby"`
	Books  []SearchHit       `json:"booklore"`
	Errors map[string]string `json:"errors,omitempty"`
}

// SearchHit is one search result in a platform-neutral shape.
type SearchHit struct {
	ID      string   `json:"id"`
	Name    string   `json:"name"`
	Type    string   `json:"type"`
	Year    int      `json:"year,omitempty"`
	Creator string   `json:"creator,omitempty"`
	Genres  []string `json:"genres,omitempty"`
}

// SearchAll queries the selected backends. One backend failing does not
// fail the search; the error is recorded per platform instead.
func (f *Facade) SearchAll(ctx context.Context, query string, includeVideo, includeBooks bool) SearchResults {
	results := SearchResults{
		Query:  query,
		Emby:   []SearchHit{},
		Books:  []SearchHit{},
		Errors: map[string]string{},
	}

	if includeVideo {
		hits, err := f.video.Search(ctx, query, searchLimit)
		if err != nil {
			f.log.Error().Err(err).Str("query", query).Msg("emby search failed")
			results.Errors["emby"] = err.Error()
		} else {
			for _, m := range hits {
				item := MapVideoItem(m)
				results.Emby = append(results.Emby, SearchHit{
					ID:      item.ID,
					Name:    item.Name,
					Type:    m.Type,
					Year:    item.Year,
					Creator: item.Creator,
					Genres:  item.Genres,
				})
			}
		}
	}

	if includeBooks {
		hits, err := f.books.Search(ctx, query, searchLimit)
		if err != nil {
			f.log.Error().Err(err).Str("query", query).Msg("booklore search failed")
			results.Errors["booklore"] = err.Error()
		} else {
			for _, b := range hits {
				item := MapBook(b)
				results.Books = append(results.Books, SearchHit{
					ID:      item.ID,
					Name:    item.Name,
					Type:    "Book",
					Creator: item.Creator,
					Genres:  item.Genres,
				})
			}
		}
	}

	if len(results.Errors) == 0 {
		results.Errors = nil
	}
	return results
}
