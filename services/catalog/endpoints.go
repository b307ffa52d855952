package catalog

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"reelview/models"
)

// MaxPage is the highest page the catalog will serve for any listing.
const MaxPage = 500

// Search runs a multi search across movies and TV. People and other
// non-title entries are dropped from the page.
func (c *Client) Search(ctx context.Context, query string, page int) (models.ResultPage, error) {
	if err := checkPage(page); err != nil {
		return models.ResultPage{}, err
	}
	q := url.Values{}
	q.Set("query", query)
	q.Set("page", strconv.Itoa(page))
	q.Set("include_adult", "false")

	result, err := c.listing(ctx, "/search/multi", q, page)
	if err != nil {
		return models.ResultPage{}, err
	}
	kept := result.Results[:0]
	for _, item := range result.Results {
		if _, ok := models.ParseMediaType(string(item.MediaType)); ok {
			kept = append(kept, item)
		}
	}
	result.Results = kept
	return result, nil
}

// SearchMovies runs a movie-only search.
func (c *Client) SearchMovies(ctx context.Context, query string, page int) (models.ResultPage, error) {
	return c.searchTyped(ctx, models.MediaTypeMovie, query, page)
}

// SearchTv runs a TV-only search.
func (c *Client) SearchTv(ctx context.Context, query string, page int) (models.ResultPage, error) {
	return c.searchTyped(ctx, models.MediaTypeTv, query, page)
}

func (c *Client) searchTyped(ctx context.Context, mediaType models.MediaType, query string, page int) (models.ResultPage, error) {
	if err := checkPage(page); err != nil {
		return models.ResultPage{}, err
	}
	q := url.Values{}
	q.Set("query", query)
	q.Set("page", strconv.Itoa(page))
	q.Set("include_adult", "false")

	result, err := c.listing(ctx, "/search/"+string(mediaType), q, page)
	if err != nil {
		return models.ResultPage{}, err
	}
	forceMediaType(result.Results, mediaType)
	return result, nil
}

// Trending returns this week's trending titles of one media type.
func (c *Client) Trending(ctx context.Context, mediaType models.MediaType, page int) (models.ResultPage, error) {
	if err := checkMediaType(mediaType); err != nil {
		return models.ResultPage{}, err
	}
	if err := checkPage(page); err != nil {
		return models.ResultPage{}, err
	}
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))

	result, err := c.listing(ctx, fmt.Sprintf("/trending/%s/week", mediaType), q, page)
	if err != nil {
		return models.ResultPage{}, err
	}
	forceMediaType(result.Results, mediaType)
	return result, nil
}

// Movie fetches the detail record of one movie.
func (c *Client) Movie(ctx context.Context, id int64) (*models.MovieDetails, error) {
	if id <= 0 {
		return nil, invalidArgument("movie id %d", id)
	}
	var details models.MovieDetails
	if err := c.getJSON(ctx, fmt.Sprintf("/movie/%d", id), nil, detailSchema, &details); err != nil {
		return nil, err
	}
	details.MediaType = models.MediaTypeMovie
	return &details, nil
}

// TvShow fetches the detail record of one TV show.
func (c *Client) TvShow(ctx context.Context, id int64) (*models.TvDetails, error) {
	if id <= 0 {
		return nil, invalidArgument("tv id %d", id)
	}
	var details models.TvDetails
	if err := c.getJSON(ctx, fmt.Sprintf("/tv/%d", id), nil, detailSchema, &details); err != nil {
		return nil, err
	}
	details.MediaType = models.MediaTypeTv
	return &details, nil
}

// GetByID returns the summary of a single title.
func (c *Client) GetByID(ctx context.Context, mediaType models.MediaType, id int64) (models.Media, error) {
	switch mediaType {
	case models.MediaTypeMovie:
		details, err := c.Movie(ctx, id)
		if err != nil {
			return models.Media{}, err
		}
		return details.Media, nil
	case models.MediaTypeTv:
		details, err := c.TvShow(ctx, id)
		if err != nil {
			return models.Media{}, err
		}
		return details.Media, nil
	}
	return models.Media{}, checkMediaType(mediaType)
}

// listing fetches one result page and coerces the pagination fields so
// callers can rely on 1 <= Page and 1 <= TotalPages.
func (c *Client) listing(ctx context.Context, path string, q url.Values, requested int) (models.ResultPage, error) {
	var result models.ResultPage
	if err := c.getJSON(ctx, path, q, pageSchema, &result); err != nil {
		return models.ResultPage{}, err
	}
	if result.Page < 1 {
		result.Page = requested
	}
	if result.TotalPages < 1 {
		result.TotalPages = 1
	}
	if result.TotalPages > MaxPage {
		result.TotalPages = MaxPage
	}
	if result.Results == nil {
		result.Results = []models.Media{}
	}
	for i := range result.Results {
		result.Results[i].MediaType = models.MediaType(strings.ToLower(string(result.Results[i].MediaType)))
	}
	return result, nil
}

func forceMediaType(items []models.Media, mediaType models.MediaType) {
	for i := range items {
		items[i].MediaType = mediaType
	}
}

func checkPage(page int) error {
	if page < 1 || page > MaxPage {
		return invalidArgument("page %d outside 1..%d", page, MaxPage)
	}
	return nil
}

func checkMediaType(mediaType models.MediaType) error {
	if _, ok := models.ParseMediaType(string(mediaType)); !ok {
		return invalidArgument("media type %q", mediaType)
	}
	return nil
}
