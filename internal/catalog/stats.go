package catalog

import (
	"context"
)

// Stats summarizes both collections. Backends that failed report zero
// counts; partial numbers are better than no stats page.
type Stats struct {
	Emby     EmbyStats     `json:"emby"`
	Booklore BookloreStats `json:"booklore"`
}

type EmbyStats struct {
	Libraries  []string `json:"libraries"`
	TotalItems int      `json:"total_items"`
}

type BookloreStats struct {
	TotalBooks  int      `json:"total_books"`
	Collections []string `json:"collections"`
}

// CollectionStats walks both backends and counts their holdings.
func (f *Facade) CollectionStats(ctx context.Context) Stats {
	stats := Stats{
		Emby:     EmbyStats{Libraries: []string{}},
		Booklore: BookloreStats{Collections: []string{}},
	}

	libraries, err := f.video.Libraries(ctx)
	if err != nil {
		f.log.Error().Err(err).Msg("emby stats failed")
	} else {
		total := 0
		for _, lib := range libraries {
			stats.Emby.Libraries = append(stats.Emby.Libraries, lib.Name)
			items, err := f.video.LibraryItems(ctx, lib.ID, fetchLimit)
			if err != nil {
				f.log.Error().Err(err).Str("library", lib.Name).Msg("emby library count failed")
				continue
			}
			total += len(items)
		}
		stats.Emby.TotalItems = total
	}

	books, err := f.books.Books(ctx, fetchLimit, 0)
	if err != nil {
		f.log.Error().Err(err).Msg("booklore stats failed")
	} else {
		stats.Booklore.TotalBooks = len(books)
	}

	collections, err := f.books.Collections(ctx)
	if err != nil {
		f.log.Error().Err(err).Msg("booklore collections failed")
	} else {
		for _, col := range collections {
			stats.Booklore.Collections = append(stats.Booklore.Collections, col.Name)
		}
	}

	return stats
}
