package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	"reelview/models"
	"reelview/services/home"
	"reelview/services/search"
	"reelview/utils"
)

// Catalog is what the page handlers need from the catalog client.
type Catalog interface {
	search.Catalog
	Movie(ctx context.Context, id int64) (*models.MovieDetails, error)
	TvShow(ctx context.Context, id int64) (*models.TvDetails, error)
}

type homeLoader interface {
	Load(ctx context.Context) (*home.Page, error)
}

type sessionStore interface {
	Start(fetcher search.PageFetcher, query string, first models.ResultPage) *search.Session
	Get(id string) (*search.Session, error)
}

const (
	noticeLoadFailed = "Could not load more results. Try again."
	noticeInFlight   = "Still loading the next page..."
)

// PagesHandler serves the html pages and their JSON pagination endpoints.
type PagesHandler struct {
	catalog  Catalog
	home     homeLoader
	sessions sessionStore
	render   *Renderer
}

func NewPagesHandler(c Catalog, h homeLoader, sessions sessionStore, render *Renderer) *PagesHandler {
	return &PagesHandler{catalog: c, home: h, sessions: sessions, render: render}
}

type carouselData struct {
	Title string
	Link  string
	Items []models.Media
}

type homeData struct {
	*home.Page
	Carousels []carouselData
}

type gridData struct {
	Items   []models.Media
	MoreURL string
	Notice  string
}

type searchData struct {
	Query    string
	Searched bool
	Grid     gridData
}

type categoryData struct {
	MediaType models.MediaType
	Name      string
	Title     string
	Grid      gridData
}

// Home renders the featured title and both trending carousels.
func (h *PagesHandler) Home(w http.ResponseWriter, r *http.Request) {
	page, err := h.home.Load(r.Context())
	if err != nil {
		redirectNotFound(w, r, err)
		return
	}
	h.render.Page(w, http.StatusOK, "home", view{
		Title: "Reelview",
		Data: homeData{
			Page: page,
			Carousels: []carouselData{
				{
					Title: utils.ListTitle(search.TrendingCategory, models.MediaTypeMovie),
					Link:  categoryPath(models.MediaTypeMovie, search.TrendingCategory),
					Items: page.Movies.Results,
				},
				{
					Title: utils.ListTitle(search.TrendingCategory, models.MediaTypeTv),
					Link:  categoryPath(models.MediaTypeTv, search.TrendingCategory),
					Items: page.Tv.Results,
				},
			},
		},
	})
}

// Search renders the first page of a multi search and opens a session for
// loading more.
func (h *PagesHandler) Search(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("query"))
	if query == "" {
		h.render.Page(w, http.StatusOK, "search", view{Title: "Search", Data: searchData{}})
		return
	}

	fetcher := search.QueryFetcher(h.catalog)
	first, err := fetcher.FetchPage(r.Context(), query, 1)
	if err != nil {
		redirectNotFound(w, r, err)
		return
	}
	session := h.sessions.Start(fetcher, query, first)
	h.renderSearch(w, http.StatusOK, session.State(), "")
}

// SearchAPI returns one page of multi search results as JSON.
func (h *PagesHandler) SearchAPI(w http.ResponseWriter, r *http.Request) {
	values := r.URL.Query()
	page, err := parsePage(values)
	if err != nil {
		redirectNotFound(w, r, err)
		return
	}
	query := strings.TrimSpace(values.Get("query"))
	result, err := search.QueryFetcher(h.catalog).FetchPage(r.Context(), query, page)
	if err != nil {
		redirectNotFound(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// Category renders page 1 of a movie or TV category.
func (h *PagesHandler) Category(w http.ResponseWriter, r *http.Request) {
	mediaType, name, ok := categoryVars(r)
	if !ok {
		redirectNotFound(w, r, fmt.Errorf("unknown category %q", r.URL.Path))
		return
	}

	fetcher := search.CategoryFetcher(h.catalog, mediaType)
	first, err := fetcher.FetchPage(r.Context(), name, 1)
	if err != nil {
		redirectNotFound(w, r, err)
		return
	}
	session := h.sessions.Start(fetcher, name, first)
	h.renderCategory(w, http.StatusOK, mediaType, session.State(), "")
}

// CategoryAPI returns one page of a category as JSON. "trending" lists the
// trending titles; any other name is searched for within the media type.
func (h *PagesHandler) CategoryAPI(w http.ResponseWriter, r *http.Request) {
	mediaType, name, ok := categoryVars(r)
	if !ok {
		redirectNotFound(w, r, fmt.Errorf("unknown category %q", r.URL.Path))
		return
	}
	page, err := parsePage(r.URL.Query())
	if err != nil {
		redirectNotFound(w, r, err)
		return
	}
	result, err := search.CategoryFetcher(h.catalog, mediaType).FetchPage(r.Context(), name, page)
	if err != nil {
		redirectNotFound(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// More advances a session to the page named in the link. htmx requests get
// only the new cards and the next trigger; everything else gets the whole
// accumulated page. Repeating a request, for example by reloading the page,
// renders the current state without fetching again.
func (h *PagesHandler) More(w http.ResponseWriter, r *http.Request) {
	session, err := h.sessions.Get(mux.Vars(r)["session"])
	if err != nil {
		redirectNotFound(w, r, err)
		return
	}

	next, err := parsePage(r.URL.Query())
	if err != nil {
		log.Printf("[handlers] load more session=%s: %v", session.ID(), err)
		next = 0
	}
	added, err := session.RequestPage(r.Context(), next)
	status, notice := http.StatusOK, ""
	switch {
	case errors.Is(err, search.ErrFetchInFlight):
		status, notice = http.StatusConflict, noticeInFlight
	case err != nil:
		log.Printf("[handlers] load more session=%s: %v", session.ID(), err)
		status, notice = http.StatusBadGateway, noticeLoadFailed
	}

	state := session.State()
	mediaType, isCategory := models.ParseMediaType(r.URL.Query().Get("type"))

	if r.Header.Get("HX-Request") == "true" {
		grid := gridData{Items: added, Notice: notice}
		if state.HasMore() {
			grid.MoreURL = moreURL(state, mediaType, isCategory)
		}
		h.render.Partial(w, status, "grid_append", grid)
		return
	}

	if isCategory {
		h.renderCategory(w, status, mediaType, state, notice)
		return
	}
	h.renderSearch(w, status, state, notice)
}

// Movie renders a movie detail page.
func (h *PagesHandler) Movie(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(mux.Vars(r)["id"])
	if err != nil {
		redirectNotFound(w, r, err)
		return
	}
	movie, err := h.catalog.Movie(r.Context(), id)
	if err != nil {
		redirectNotFound(w, r, err)
		return
	}
	h.render.Page(w, http.StatusOK, "movie", view{Title: movie.DisplayName(), Data: movie})
}

// Tv renders a TV show detail page.
func (h *PagesHandler) Tv(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(mux.Vars(r)["id"])
	if err != nil {
		redirectNotFound(w, r, err)
		return
	}
	show, err := h.catalog.TvShow(r.Context(), id)
	if err != nil {
		redirectNotFound(w, r, err)
		return
	}
	h.render.Page(w, http.StatusOK, "tv", view{Title: show.DisplayName(), Data: show})
}

func (h *PagesHandler) NotFound(w http.ResponseWriter, r *http.Request) {
	h.render.Page(w, http.StatusNotFound, "notfound", view{Title: "Not found"})
}

func (h *PagesHandler) renderSearch(w http.ResponseWriter, status int, state search.State, notice string) {
	h.render.Page(w, status, "search", view{
		Title: "Search: " + state.Query,
		Query: state.Query,
		Data: searchData{
			Query:    state.Query,
			Searched: true,
			Grid:     gridFromState(state, "", false, notice),
		},
	})
}

func (h *PagesHandler) renderCategory(w http.ResponseWriter, status int, mediaType models.MediaType, state search.State, notice string) {
	title := utils.ListTitle(state.Query, mediaType)
	h.render.Page(w, status, "category", view{
		Title: title,
		Data: categoryData{
			MediaType: mediaType,
			Name:      state.Query,
			Title:     title,
			Grid:      gridFromState(state, mediaType, true, notice),
		},
	})
}

func gridFromState(state search.State, mediaType models.MediaType, isCategory bool, notice string) gridData {
	grid := gridData{Items: state.Items, Notice: notice}
	if state.HasMore() {
		grid.MoreURL = moreURL(state, mediaType, isCategory)
	}
	return grid
}

// moreURL links to the next page of a session. The page number makes the
// link safe to repeat. Category sessions carry their media type so a full
// page reload can render the category view again.
func moreURL(state search.State, mediaType models.MediaType, isCategory bool) string {
	q := url.Values{}
	q.Set("page", strconv.Itoa(state.CurrentPage+1))
	if isCategory {
		q.Set("type", string(mediaType))
	}
	return "/more/" + url.PathEscape(state.ID) + "?" + q.Encode()
}

func categoryVars(r *http.Request) (models.MediaType, string, bool) {
	vars := mux.Vars(r)
	mediaType, ok := models.ParseMediaType(vars["type"])
	if !ok {
		return "", "", false
	}
	return mediaType, vars["name"], true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("[handlers] encode response: %v", err)
	}
}
