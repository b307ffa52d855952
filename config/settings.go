package config

// Settings is the on-disk configuration for the web front end.
type Settings struct {
	Server  ServerSettings  `json:"server"`
	Catalog CatalogSettings `json:"catalog"`
	Search  SearchSettings  `json:"search"`
	CORS    CORSSettings    `json:"cors"`
	Logging LoggingSettings `json:"logging"`
}

type ServerSettings struct {
	Host                string `json:"host"`
	Port                int    `json:"port"`
	ReadTimeoutSeconds  int    `json:"readTimeoutSeconds"`
	WriteTimeoutSeconds int    `json:"writeTimeoutSeconds"`
}

// CatalogSettings configures the upstream TMDB client.
type CatalogSettings struct {
	APIKey         string `json:"apiKey"`
	BaseURL        string `json:"baseUrl"`
	ImageBaseURL   string `json:"imageBaseUrl"`
	Language       string `json:"language"`
	TimeoutSeconds int    `json:"timeoutSeconds"`
	RetryAttempts  int    `json:"retryAttempts"` // 1 disables retries
}

// SearchSettings bounds the in-memory "load more" session registry.
type SearchSettings struct {
	MaxSessions       int `json:"maxSessions"`
	SessionTTLMinutes int `json:"sessionTtlMinutes"`
}

type CORSSettings struct {
	AllowedOrigins []string `json:"allowedOrigins"`
}

type LoggingSettings struct {
	File       string `json:"file"` // empty logs to stderr only
	MaxSizeMB  int    `json:"maxSizeMb"`
	MaxBackups int    `json:"maxBackups"`
	MaxAgeDays int    `json:"maxAgeDays"`
	Compress   bool   `json:"compress"`
}

// DefaultSettings returns the settings used when no file exists.
func DefaultSettings() Settings {
	return Settings{
		Server: ServerSettings{
			Host:                "0.0.0.0",
			Port:                3000,
			ReadTimeoutSeconds:  15,
			WriteTimeoutSeconds: 30,
		},
		Catalog: CatalogSettings{
			BaseURL:        "https://api.themoviedb.org/3",
			ImageBaseURL:   "https://image.tmdb.org/t/p",
			Language:       "en-US",
			TimeoutSeconds: 10,
			RetryAttempts:  3,
		},
		Search: SearchSettings{
			MaxSessions:       1000,
			SessionTTLMinutes: 30,
		},
		Logging: LoggingSettings{
			MaxSizeMB:  50,
			MaxBackups: 3,
			MaxAgeDays: 28,
			Compress:   true,
		},
	}
}

// applyDefaults fills zero values left behind by a partial settings file.
func (s *Settings) applyDefaults() {
	def := DefaultSettings()
	if s.Server.Host == "" {
		s.Server.Host = def.Server.Host
	}
	if s.Server.Port <= 0 {
		s.Server.Port = def.Server.Port
	}
	if s.Server.ReadTimeoutSeconds <= 0 {
		s.Server.ReadTimeoutSeconds = def.Server.ReadTimeoutSeconds
	}
	if s.Server.WriteTimeoutSeconds <= 0 {
		s.Server.WriteTimeoutSeconds = def.Server.WriteTimeoutSeconds
	}
	if s.Catalog.BaseURL == "" {
		s.Catalog.BaseURL = def.Catalog.BaseURL
	}
	if s.Catalog.ImageBaseURL == "" {
		s.Catalog.ImageBaseURL = def.Catalog.ImageBaseURL
	}
	if s.Catalog.Language == "" {
		s.Catalog.Language = def.Catalog.Language
	}
	if s.Catalog.TimeoutSeconds <= 0 {
		s.Catalog.TimeoutSeconds = def.Catalog.TimeoutSeconds
	}
	if s.Catalog.RetryAttempts <= 0 {
		s.Catalog.RetryAttempts = def.Catalog.RetryAttempts
	}
	if s.Search.MaxSessions <= 0 {
		s.Search.MaxSessions = def.Search.MaxSessions
	}
	if s.Search.SessionTTLMinutes <= 0 {
		s.Search.SessionTTLMinutes = def.Search.SessionTTLMinutes
	}
	if s.Logging.MaxSizeMB <= 0 {
		s.Logging.MaxSizeMB = def.Logging.MaxSizeMB
	}
}

// Redacted returns a copy that is safe to print.
func (s Settings) Redacted() Settings {
	if s.Catalog.APIKey != "" {
		s.Catalog.APIKey = "********"
	}
	s.CORS.AllowedOrigins = append([]string(nil), s.CORS.AllowedOrigins...)
	return s
}
