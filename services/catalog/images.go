package catalog

import (
	"strconv"
	"strings"

	"reelview/models"
)

const defaultImageBaseURL = "https://image.tmdb.org/t/p"

// Image sizes served by the catalog's image CDN.
const (
	PosterSizeSmall  = "w185"
	PosterSizeMedium = "w342"
	PosterSizeLarge  = "w780"
	BackdropSizeHero = "w1280"
	ProfileSize      = "w185"
)

var backdropWidths = []int{300, 780, 1280}

// Images builds image CDN URLs from catalog image paths.
type Images struct {
	baseURL string
}

func NewImages(baseURL string) Images {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		baseURL = defaultImageBaseURL
	}
	return Images{baseURL: baseURL}
}

// URL joins size and path; an empty path yields "".
func (i Images) URL(path, size string) string {
	path = strings.TrimSpace(path)
	if path == "" {
		return ""
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	if size == "" {
		size = "original"
	}
	return i.baseURL + "/" + size + path
}

func (i Images) Poster(m models.Media, size string) string {
	return i.URL(m.PosterPath, size)
}

// Backdrop falls back to the poster when a title has no backdrop.
func (i Images) Backdrop(m models.Media, size string) string {
	if m.BackdropPath == "" {
		return i.URL(m.PosterPath, size)
	}
	return i.URL(m.BackdropPath, size)
}

// BackdropSrcSet renders a srcset attribute value for responsive heroes.
func (i Images) BackdropSrcSet(m models.Media) string {
	path := m.BackdropPath
	if path == "" {
		path = m.PosterPath
	}
	if path == "" {
		return ""
	}
	entries := make([]string, 0, len(backdropWidths))
	for _, w := range backdropWidths {
		entries = append(entries, i.URL(path, "w"+strconv.Itoa(w))+" "+strconv.Itoa(w)+"w")
	}
	return strings.Join(entries, ", ")
}

func (i Images) Profile(path string) string {
	return i.URL(path, ProfileSize)
}
