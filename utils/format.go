package utils

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"reelview/models"
)

// ListTitle names a listing, e.g. "Trending Movies" or "Godzilla TV Shows".
func ListTitle(query string, mediaType models.MediaType) string {
	kind := "Movies"
	if mediaType == models.MediaTypeTv {
		kind = "TV Shows"
	}
	query = strings.TrimSpace(query)
	if query == "" {
		return kind
	}
	// A Caser is stateful; never share one between requests.
	return cases.Title(language.English).String(query) + " " + kind
}

// Year extracts the year of a YYYY-MM-DD date, or "" when absent.
func Year(date string) string {
	if len(date) < 4 {
		return ""
	}
	if _, err := strconv.Atoi(date[:4]); err != nil {
		return ""
	}
	return date[:4]
}

// RatingPercent converts a 0-10 vote average to a 0-100 width percentage.
func RatingPercent(vote float64) int {
	if vote <= 0 || math.IsNaN(vote) {
		return 0
	}
	if vote >= 10 {
		return 100
	}
	return int(math.Round(vote * 10))
}

// Runtime renders minutes as "2h 7m".
func Runtime(minutes int) string {
	switch {
	case minutes <= 0:
		return ""
	case minutes < 60:
		return fmt.Sprintf("%dm", minutes)
	case minutes%60 == 0:
		return fmt.Sprintf("%dh", minutes/60)
	}
	return fmt.Sprintf("%dh %dm", minutes/60, minutes%60)
}

// Rating renders a vote average with one decimal.
func Rating(vote float64) string {
	return strconv.FormatFloat(vote, 'f', 1, 64)
}
