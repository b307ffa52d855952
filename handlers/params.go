package handlers

import (
	"fmt"
	"log"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

// NotFoundPath is where every invalid or failed page request is sent.
const NotFoundPath = "/404"

// ValidationError reports a malformed request parameter.
type ValidationError struct {
	Field  string
	Value  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s %q: %s", e.Field, e.Value, e.Reason)
}

// parsePage reads the "page" parameter: absent means 1, otherwise it must be
// a whole number >= 1. Integral decimals such as "2.0" are accepted.
func parsePage(values url.Values) (int, error) {
	if _, ok := values["page"]; !ok {
		return 1, nil
	}
	raw := values.Get("page")
	n, err := parseWholeNumber("page", raw)
	if err != nil {
		return 0, err
	}
	if n < 1 {
		return 0, &ValidationError{Field: "page", Value: raw, Reason: "must be at least 1"}
	}
	return int(n), nil
}

// parseID reads a title id path segment: a whole number >= 0.
func parseID(raw string) (int64, error) {
	n, err := parseWholeNumber("id", raw)
	if err != nil {
		return 0, err
	}
	if n < 0 {
		return 0, &ValidationError{Field: "id", Value: raw, Reason: "must not be negative"}
	}
	return n, nil
}

func parseWholeNumber(field, raw string) (int64, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return 0, &ValidationError{Field: field, Value: raw, Reason: "must be a number"}
	}
	if n, err := strconv.ParseInt(trimmed, 10, 64); err == nil {
		if n > math.MaxInt32 || n < math.MinInt32 {
			return 0, &ValidationError{Field: field, Value: raw, Reason: "out of range"}
		}
		return n, nil
	}
	f, err := strconv.ParseFloat(trimmed, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, &ValidationError{Field: field, Value: raw, Reason: "must be a number"}
	}
	if f != math.Trunc(f) {
		return 0, &ValidationError{Field: field, Value: raw, Reason: "must be a whole number"}
	}
	if f > math.MaxInt32 || f < math.MinInt32 {
		return 0, &ValidationError{Field: field, Value: raw, Reason: "out of range"}
	}
	return int64(f), nil
}

// redirectNotFound is the single exit for invalid input and upstream
// failures on page and JSON routes alike; the cause is only logged.
func redirectNotFound(w http.ResponseWriter, r *http.Request, cause error) {
	log.Printf("[handlers] %s %s -> %s: %v", r.Method, r.URL.Path, NotFoundPath, cause)
	http.Redirect(w, r, NotFoundPath, http.StatusFound)
}
