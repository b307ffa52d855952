package handlers

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"log"
	"net/http"
	"strconv"

	"reelview/models"
	"reelview/services/catalog"
	"reelview/utils"
)

//go:embed templates/*.html
var templateFS embed.FS

var pageNames = []string{"home", "search", "category", "movie", "tv", "notfound"}

// Renderer executes the embedded html templates.
type Renderer struct {
	pages    map[string]*template.Template
	partials *template.Template
}

// view is the data every page template receives.
type view struct {
	Title string
	Query string
	Data  any
}

func NewRenderer(images catalog.Images) (*Renderer, error) {
	funcs := templateFuncs(images)

	pages := make(map[string]*template.Template, len(pageNames))
	for _, name := range pageNames {
		tmpl, err := template.New(name).Funcs(funcs).ParseFS(templateFS,
			"templates/layout.html",
			"templates/partials.html",
			"templates/"+name+".html",
		)
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", name, err)
		}
		pages[name] = tmpl
	}

	partials, err := template.New("partials").Funcs(funcs).ParseFS(templateFS, "templates/partials.html")
	if err != nil {
		return nil, fmt.Errorf("parse partials: %w", err)
	}
	return &Renderer{pages: pages, partials: partials}, nil
}

// Page renders a full page inside the layout.
func (r *Renderer) Page(w http.ResponseWriter, status int, name string, data view) {
	tmpl, ok := r.pages[name]
	if !ok {
		log.Printf("[render] unknown page %q", name)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	r.write(w, status, tmpl, "layout", data)
}

// Partial renders one named block without the layout.
func (r *Renderer) Partial(w http.ResponseWriter, status int, block string, data any) {
	r.write(w, status, r.partials, block, data)
}

func (r *Renderer) write(w http.ResponseWriter, status int, tmpl *template.Template, name string, data any) {
	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		log.Printf("[render] execute %s: %v", name, err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	buf.WriteTo(w)
}

func templateFuncs(images catalog.Images) template.FuncMap {
	return template.FuncMap{
		"poster": func(m models.Media) string {
			return images.Poster(m, catalog.PosterSizeMedium)
		},
		"posterLarge": func(m models.Media) string {
			return images.Poster(m, catalog.PosterSizeLarge)
		},
		"backdrop": func(m models.Media) string {
			return images.Backdrop(m, "w300")
		},
		"srcset":  images.BackdropSrcSet,
		"profile": images.Profile,
		"image":   images.URL,
		"mediaPath": func(m models.Media) string {
			return mediaPath(m.MediaType, m.ID)
		},
		"categoryPath":  categoryPath,
		"listTitle":     utils.ListTitle,
		"year":          utils.Year,
		"rating":        utils.Rating,
		"ratingPercent": utils.RatingPercent,
		"runtime":       utils.Runtime,
	}
}

func mediaPath(mediaType models.MediaType, id int64) string {
	if mediaType == "" {
		mediaType = models.MediaTypeMovie
	}
	return "/" + string(mediaType) + "/" + strconv.FormatInt(id, 10)
}

func categoryPath(mediaType models.MediaType, name string) string {
	return "/" + string(mediaType) + "/categories/" + template.URLQueryEscaper(name)
}
