package search

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"

	"reelview/models"
)

var (
	// ErrFetchInFlight is returned when a next-page fetch is already running.
	ErrFetchInFlight = errors.New("search: next page already loading")
	// ErrSessionNotFound is returned for unknown or expired session ids.
	ErrSessionNotFound = errors.New("search: session not found")
)

// PageFetcher loads one page of results for a query.
type PageFetcher interface {
	FetchPage(ctx context.Context, query string, page int) (models.ResultPage, error)
}

// PageFetcherFunc adapts a function to PageFetcher.
type PageFetcherFunc func(ctx context.Context, query string, page int) (models.ResultPage, error)

func (f PageFetcherFunc) FetchPage(ctx context.Context, query string, page int) (models.ResultPage, error) {
	return f(ctx, query, page)
}

// State is a point-in-time copy of a session.
type State struct {
	ID          string
	Query       string
	CurrentPage int
	TotalPages  int
	Items       []models.Media
}

// HasMore reports whether another page can be requested.
func (s State) HasMore() bool {
	return s.CurrentPage < s.TotalPages
}

// Session accumulates the pages of one query for "load more" pagination.
//
// Items is always the concatenation, in fetch order, of every page fetched
// since the last Initialize. Pages are only appended by RequestNextPage, one
// fetch at a time.
type Session struct {
	id      string
	fetcher PageFetcher

	mu          sync.Mutex
	query       string
	currentPage int
	totalPages  int
	items       []models.Media
	inFlight    bool
	generation  uint64
}

// NewSession returns an empty session; call Initialize with the first page.
func NewSession(id string, fetcher PageFetcher) *Session {
	return &Session{id: id, fetcher: fetcher, currentPage: 1, totalPages: 1}
}

func (s *Session) ID() string {
	return s.id
}

// Initialize starts the session over for query with its already fetched
// first page. A fetch still running for a previous query is discarded when
// it completes.
func (s *Session) Initialize(query string, first models.ResultPage) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.generation++
	s.inFlight = false
	s.query = query
	s.currentPage = 1
	s.totalPages = max(first.TotalPages, 1)
	s.items = append([]models.Media(nil), first.Results...)
}

// RequestNextPage fetches page currentPage+1 and appends its items.
//
// At or past the last page it does nothing and returns (nil, nil). While a
// fetch is running further calls fail with ErrFetchInFlight. A failed fetch
// leaves the session unchanged.
func (s *Session) RequestNextPage(ctx context.Context) ([]models.Media, error) {
	return s.advance(ctx, 0)
}

// RequestPage is RequestNextPage for callers that may repeat themselves, such
// as a reloaded link: it fetches only when page is currentPage+1 and is a
// no-op returning (nil, nil) for any other page.
func (s *Session) RequestPage(ctx context.Context, page int) ([]models.Media, error) {
	if page < 1 {
		return nil, nil
	}
	return s.advance(ctx, page)
}

// advance fetches the next page. A non-zero want must equal that page.
func (s *Session) advance(ctx context.Context, want int) ([]models.Media, error) {
	s.mu.Lock()
	if s.currentPage >= s.totalPages || (want != 0 && want != s.currentPage+1) {
		s.mu.Unlock()
		return nil, nil
	}
	if s.inFlight {
		s.mu.Unlock()
		return nil, ErrFetchInFlight
	}
	s.inFlight = true
	gen := s.generation
	query := s.query
	next := s.currentPage + 1
	s.mu.Unlock()

	page, err := s.fetcher.FetchPage(ctx, query, next)

	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.generation {
		// Initialize ran while we were fetching; this page belongs to the old query.
		log.Printf("[search] discarded stale page session=%s query=%q page=%d", s.id, query, next)
		return nil, nil
	}
	s.inFlight = false
	if err != nil {
		return nil, fmt.Errorf("load page %d of %q: %w", next, query, err)
	}

	s.items = append(s.items, page.Results...)
	s.currentPage = next
	return append([]models.Media(nil), page.Results...), nil
}

// State returns a copy of the session's current state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return State{
		ID:          s.id,
		Query:       s.query,
		CurrentPage: s.currentPage,
		TotalPages:  s.totalPages,
		Items:       append([]models.Media(nil), s.items...),
	}
}

func (s *Session) HasMore() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.currentPage < s.totalPages
}
