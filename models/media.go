package models

import "strings"

// MediaType distinguishes movies from TV shows.
type MediaType string

const (
	MediaTypeMovie MediaType = "movie"
	MediaTypeTv    MediaType = "tv"
)

// ParseMediaType accepts "movie" and "tv" (case-insensitive).
func ParseMediaType(value string) (MediaType, bool) {
	switch MediaType(strings.ToLower(strings.TrimSpace(value))) {
	case MediaTypeMovie:
		return MediaTypeMovie, true
	case MediaTypeTv:
		return MediaTypeTv, true
	}
	return "", false
}

// Media is one movie or TV show entry of a catalog listing.
// JSON tags follow the catalog's field names so pages pass through unchanged.
type Media struct {
	ID            int64     `json:"id"`
	MediaType     MediaType `json:"media_type"`
	Title         string    `json:"title,omitempty"`          // movies
	OriginalTitle string    `json:"original_title,omitempty"` // movies
	Name          string    `json:"name,omitempty"`           // tv
	OriginalName  string    `json:"original_name,omitempty"`  // tv
	Overview      string    `json:"overview,omitempty"`
	PosterPath    string    `json:"poster_path,omitempty"`
	BackdropPath  string    `json:"backdrop_path,omitempty"`
	ReleaseDate   string    `json:"release_date,omitempty"`   // YYYY-MM-DD
	FirstAirDate  string    `json:"first_air_date,omitempty"` // YYYY-MM-DD
	VoteAverage   float64   `json:"vote_average"`
	VoteCount     int       `json:"vote_count"`
	Popularity    float64   `json:"popularity,omitempty"`
	GenreIDs      []int     `json:"genre_ids,omitempty"`
	Adult         bool      `json:"adult,omitempty"`
}

// DisplayName returns the best available human title.
func (m Media) DisplayName() string {
	for _, v := range []string{m.Title, m.Name, m.OriginalTitle, m.OriginalName} {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}

// Date returns the release date for movies and first air date for TV.
func (m Media) Date() string {
	if m.ReleaseDate != "" {
		return m.ReleaseDate
	}
	return m.FirstAirDate
}

// ResultPage is one page of a paginated catalog listing.
type ResultPage struct {
	Page         int     `json:"page"`
	Results      []Media `json:"results"`
	TotalPages   int     `json:"total_pages"`
	TotalResults int     `json:"total_results"`
}

// HasMore reports whether pages after Page exist.
func (p ResultPage) HasMore() bool {
	return p.Page < p.TotalPages
}
