package home

import (
	"context"
	"fmt"
	"log"

	"github.com/sourcegraph/conc/pool"

	"reelview/models"
	"reelview/services/catalog"
)

// Catalog is the subset of the catalog client the home page needs.
type Catalog interface {
	Trending(ctx context.Context, mediaType models.MediaType, page int) (models.ResultPage, error)
	Movie(ctx context.Context, id int64) (*models.MovieDetails, error)
	TvShow(ctx context.Context, id int64) (*models.TvDetails, error)
}

// Page is everything the home view renders. At most one of FeaturedMovie
// and FeaturedTv is set.
type Page struct {
	FeaturedMovie *models.MovieDetails
	FeaturedTv    *models.TvDetails
	Movies        models.ResultPage
	Tv            models.ResultPage
}

type Service struct {
	catalog Catalog
	pick    func(int) int
}

// NewService builds the home page assembler. pick chooses the featured
// title; pass math/rand/v2.IntN in production.
func NewService(c Catalog, pick func(int) int) *Service {
	return &Service{catalog: c, pick: pick}
}

// Load fetches trending movies and trending TV concurrently, then the
// details of one randomly featured title. Any failure fails the whole page.
func (s *Service) Load(ctx context.Context) (*Page, error) {
	page := &Page{}

	p := pool.New().WithContext(ctx).WithCancelOnError().WithFirstError()
	p.Go(func(ctx context.Context) error {
		movies, err := s.catalog.Trending(ctx, models.MediaTypeMovie, 1)
		if err != nil {
			return fmt.Errorf("trending movies: %w", err)
		}
		page.Movies = movies
		return nil
	})
	p.Go(func(ctx context.Context) error {
		tv, err := s.catalog.Trending(ctx, models.MediaTypeTv, 1)
		if err != nil {
			return fmt.Errorf("trending tv: %w", err)
		}
		page.Tv = tv
		return nil
	})
	if err := p.Wait(); err != nil {
		return nil, err
	}

	featured, ok := catalog.RandomMedia(s.pick, page.Movies, page.Tv)
	if !ok {
		log.Printf("[home] no trending titles to feature")
		return page, nil
	}

	switch featured.MediaType {
	case models.MediaTypeTv:
		details, err := s.catalog.TvShow(ctx, featured.ID)
		if err != nil {
			return nil, fmt.Errorf("featured tv %d: %w", featured.ID, err)
		}
		page.FeaturedTv = details
	default:
		details, err := s.catalog.Movie(ctx, featured.ID)
		if err != nil {
			return nil, fmt.Errorf("featured movie %d: %w", featured.ID, err)
		}
		page.FeaturedMovie = details
	}
	return page, nil
}
