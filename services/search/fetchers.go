package search

import (
	"context"

	"reelview/models"
)

// Catalog is the subset of the catalog client the fetchers need.
type Catalog interface {
	Search(ctx context.Context, query string, page int) (models.ResultPage, error)
	SearchMovies(ctx context.Context, query string, page int) (models.ResultPage, error)
	SearchTv(ctx context.Context, query string, page int) (models.ResultPage, error)
	Trending(ctx context.Context, mediaType models.MediaType, page int) (models.ResultPage, error)
}

// TrendingCategory is the category name that lists trending titles instead
// of searching for the name.
const TrendingCategory = "trending"

// QueryFetcher pages through a movie and TV multi search.
func QueryFetcher(c Catalog) PageFetcher {
	return PageFetcherFunc(c.Search)
}

// CategoryFetcher pages through a category of one media type: "trending"
// lists trending titles and any other name is searched as free text.
func CategoryFetcher(c Catalog, mediaType models.MediaType) PageFetcher {
	return PageFetcherFunc(func(ctx context.Context, name string, page int) (models.ResultPage, error) {
		if name == TrendingCategory {
			return c.Trending(ctx, mediaType, page)
		}
		if mediaType == models.MediaTypeTv {
			return c.SearchTv(ctx, name, page)
		}
		return c.SearchMovies(ctx, name, page)
	})
}
