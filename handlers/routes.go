package handlers

import (
	"net/http"

	"github.com/gorilla/mux"
)

// Register mounts every page, JSON and asset route on r.
func Register(r *mux.Router, pages *PagesHandler, static *StaticHandler) {
	get := http.MethodGet

	r.HandleFunc("/", pages.Home).Methods(get)
	r.HandleFunc("/search", pages.Search).Methods(get)
	r.HandleFunc("/search/api", pages.SearchAPI).Methods(get)
	r.HandleFunc("/more/{session}", pages.More).Methods(get)

	r.HandleFunc("/{type:movie|tv}/categories/{name}/api", pages.CategoryAPI).Methods(get)
	r.HandleFunc("/{type:movie|tv}/categories/{name}", pages.Category).Methods(get)
	r.HandleFunc("/movie/{id}", pages.Movie).Methods(get)
	r.HandleFunc("/tv/{id}", pages.Tv).Methods(get)

	r.HandleFunc(NotFoundPath, pages.NotFound).Methods(get)
	r.PathPrefix("/static/").Handler(http.StripPrefix("/static/", static)).Methods(get)

	r.NotFoundHandler = http.HandlerFunc(pages.NotFound)
}
