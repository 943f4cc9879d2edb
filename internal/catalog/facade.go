// Package catalog aggregates the two media backends behind one facade that
// serves normalized CatalogItems plus cross-backend search, statistics and
// health checks.
package catalog

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/mediashelf/collection-helper/internal/booklore"
	"github.com/mediashelf/collection-helper/internal/domain"
	"github.com/mediashelf/collection-helper/internal/emby"
)

// fetchLimit bounds how many raw items one call pulls per backend/library.
const fetchLimit = 1000

// VideoBackend is the slice of the Emby client the facade needs.
type VideoBackend interface {
	Libraries(ctx context.Context) ([]emby.Library, error)
	LibraryItems(ctx context.Context, libraryID string, limit int) ([]emby.MediaItem, error)
	Search(ctx context.Context, query string, limit int) ([]emby.MediaItem, error)
	Ping(ctx context.Context) error
}

// BookBackend is the slice of the Booklore client the facade needs.
type BookBackend interface {
	Books(ctx context.Context, limit, offset int) ([]booklore.Book, error)
	Search(ctx context.Context, query string, limit int) ([]booklore.Book, error)
	Collections(ctx context.Context) ([]booklore.Collection, error)
	Ping(ctx context.Context) error
}

// Facade fronts both catalog backends. Items are fetched fresh on every
// call; nothing is cached or persisted.
type Facade struct {
	video VideoBackend
	books BookBackend
	log   zerolog.Logger
}

func NewFacade(video VideoBackend, books BookBackend, log zerolog.Logger) *Facade {
	return &Facade{video: video, books: books, log: log}
}

// FetchAllItems returns every catalog item of one category, mapped to the
// normalized form. A failed backend surfaces its error to the caller; the
// orchestrator decides whether that degrades or aborts the request.
func (f *Facade) FetchAllItems(ctx context.Context, category domain.Category) ([]domain.CatalogItem, error) {
	switch category {
	case domain.CategoryVideo:
		return f.fetchVideoItems(ctx)
	case domain.CategoryBook:
		return f.fetchBookItems(ctx)
	default:
		return nil, fmt.Errorf("%w: unknown category %q", domain.ErrInvalidInput, category)
	}
}

func (f *Facade) fetchVideoItems(ctx context.Context) ([]domain.CatalogItem, error) {
	libraries, err := f.video.Libraries(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch video libraries: %w", err)
	}

	var items []domain.CatalogItem
	for _, lib := range libraries {
		raw, err := f.video.LibraryItems(ctx, lib.ID, fetchLimit)
		if err != nil {
			return nil, fmt.Errorf("fetch items from library %s: %w", lib.Name, err)
		}
		for _, m := range raw {
			items = append(items, MapVideoItem(m))
		}
	}

	f.log.Debug().Int("count", len(items)).Msg("fetched video items")
	return items, nil
}

// LibraryInfo is one video library in a backend-neutral shape.
type LibraryInfo struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Type string `json:"type,omitempty"`
}

// VideoLibraries lists the video backend's libraries.
func (f *Facade) VideoLibraries(ctx context.Context) ([]LibraryInfo, error) {
	libraries, err := f.video.Libraries(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch video libraries: %w", err)
	}

	infos := make([]LibraryInfo, 0, len(libraries))
	for _, lib := range libraries {
		infos = append(infos, LibraryInfo{ID: lib.ID, Name: lib.Name, Type: lib.CollectionType})
	}
	return infos, nil
}

// FetchLibraryItems returns the items of the video library with the given
// name. An unknown name yields an empty slice, not an error.
func (f *Facade) FetchLibraryItems(ctx context.Context, libraryName string) ([]domain.CatalogItem, error) {
	libraries, err := f.video.Libraries(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch video libraries: %w", err)
	}

	for _, lib := range libraries {
		if lib.Name != libraryName {
			continue
		}
		raw, err := f.video.LibraryItems(ctx, lib.ID, fetchLimit)
		if err != nil {
			return nil, fmt.Errorf("fetch items from library %s: %w", lib.Name, err)
		}
		items := make([]domain.CatalogItem, 0, len(raw))
		for _, m := range raw {
			items = append(items, MapVideoItem(m))
		}
		return items, nil
	}

	f.log.Warn().Str("library", libraryName).Msg("library not found")
	return []domain.CatalogItem{}, nil
}

func (f *Facade) fetchBookItems(ctx context.Context) ([]domain.CatalogItem, error) {
	raw, err := f.books.Books(ctx, fetchLimit, 0)
	if err != nil {
		return nil, fmt.Errorf("fetch books: %w", err)
	}

	items := make([]domain.CatalogItem, 0, len(raw))
	for _, b := range raw {
		items = append(items, MapBook(b))
	}

	f.log.Debug().Int("count", len(items)).Msg("fetched book items")
	return items, nil
}

// Health reports reachability per backend.
func (f *Facade) Health(ctx context.Context) map[string]bool {
	health := map[string]bool{
		"emby":     f.video.Ping(ctx) == nil,
		"booklore": f.books.Ping(ctx) == nil,
	}
	return health
}
