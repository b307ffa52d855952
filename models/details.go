package models

type Genre struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type ProductionCompany struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	LogoPath string `json:"logo_path,omitempty"`
}

// MovieDetails is the full record behind GET /movie/{id}.
type MovieDetails struct {
	Media
	Tagline             string              `json:"tagline,omitempty"`
	Runtime             int                 `json:"runtime,omitempty"` // minutes
	Status              string              `json:"status,omitempty"`
	Budget              int64               `json:"budget,omitempty"`
	Revenue             int64               `json:"revenue,omitempty"`
	IMDBID              string              `json:"imdb_id,omitempty"`
	Homepage            string              `json:"homepage,omitempty"`
	Genres              []Genre             `json:"genres,omitempty"`
	ProductionCompanies []ProductionCompany `json:"production_companies,omitempty"`
}

// Season summarises one season of a TV show.
type Season struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	SeasonNumber int    `json:"season_number"`
	EpisodeCount int    `json:"episode_count"`
	AirDate      string `json:"air_date,omitempty"`
	PosterPath   string `json:"poster_path,omitempty"`
	Overview     string `json:"overview,omitempty"`
}

type Creator struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	ProfilePath string `json:"profile_path,omitempty"`
}

// TvDetails is the full record behind GET /tv/{id}.
type TvDetails struct {
	Media
	Tagline          string    `json:"tagline,omitempty"`
	Status           string    `json:"status,omitempty"`
	LastAirDate      string    `json:"last_air_date,omitempty"`
	NumberOfSeasons  int       `json:"number_of_seasons,omitempty"`
	NumberOfEpisodes int       `json:"number_of_episodes,omitempty"`
	EpisodeRunTime   []int     `json:"episode_run_time,omitempty"`
	Homepage         string    `json:"homepage,omitempty"`
	Genres           []Genre   `json:"genres,omitempty"`
	Seasons          []Season  `json:"seasons,omitempty"`
	CreatedBy        []Creator `json:"created_by,omitempty"`
	Networks         []Network `json:"networks,omitempty"`
}

type Network struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	LogoPath string `json:"logo_path,omitempty"`
}
