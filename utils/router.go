package utils

import (
	"net/http"

	"github.com/gorilla/mux"
)

// corsMiddleware lets allowed origins read responses. The site itself is
// read-only, so only GET and OPTIONS are advertised.
func corsMiddleware(policy *OriginPolicy) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			if origin != "" && policy.Allows(origin) {
				w.Header().Set("Access-Control-Allow-Origin", origin)
				w.Header().Set("Vary", "Origin")
				w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
				w.Header().Set("Access-Control-Allow-Headers", "Content-Type, HX-Request")
			}

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// NewRouter constructs the base mux router with CORS and a health route.
func NewRouter(policy *OriginPolicy) *mux.Router {
	r := mux.NewRouter()
	r.StrictSlash(true)

	r.Use(corsMiddleware(policy))
	// Routes only match GET, and mux skips middleware on a method mismatch,
	// so preflights are answered here.
	r.MethodNotAllowedHandler = corsMiddleware(policy)(http.HandlerFunc(methodNotAllowed))

	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods(http.MethodGet)
	return r
}

func methodNotAllowed(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Allow", "GET, OPTIONS")
	http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
}
