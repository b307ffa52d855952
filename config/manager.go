package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"github.com/spf13/afero"
)

// Manager loads and saves Settings as a JSON file.
type Manager struct {
	mu     sync.RWMutex
	fs     afero.Fs
	path   string
	getenv func(string) string
}

// NewManager returns a Manager backed by the OS filesystem.
func NewManager(path string) *Manager {
	return NewManagerWithFs(afero.NewOsFs(), path)
}

// NewManagerWithFs returns a Manager backed by fs. Tests pass afero.NewMemMapFs().
func NewManagerWithFs(fs afero.Fs, path string) *Manager {
	return &Manager{fs: fs, path: path, getenv: os.Getenv}
}

// Path returns the settings file location.
func (m *Manager) Path() string {
	return m.path
}

// Exists reports whether the settings file is present.
func (m *Manager) Exists() (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return afero.Exists(m.fs, m.path)
}

// Load reads the settings file, falling back to defaults when it does not
// exist, and applies environment overrides.
func (m *Manager) Load() (Settings, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	settings := DefaultSettings()
	data, err := afero.ReadFile(m.fs, m.path)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return Settings{}, fmt.Errorf("read settings %s: %w", m.path, err)
	default:
		if err := json.Unmarshal(data, &settings); err != nil {
			return Settings{}, fmt.Errorf("parse settings %s: %w", m.path, err)
		}
	}

	settings.applyDefaults()
	m.applyEnv(&settings)
	return settings, nil
}

// Save writes settings atomically (temp file + rename).
func (m *Manager) Save(settings Settings) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if dir := filepath.Dir(m.path); dir != "" {
		if err := m.fs.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create settings dir: %w", err)
		}
	}
	data, err := json.MarshalIndent(settings, "", "  ")
	if err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}
	tmp := m.path + ".tmp"
	if err := afero.WriteFile(m.fs, tmp, data, 0o600); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}
	if err := m.fs.Rename(tmp, m.path); err != nil {
		_ = m.fs.Remove(tmp)
		return fmt.Errorf("replace settings: %w", err)
	}
	return nil
}

func (m *Manager) applyEnv(s *Settings) {
	for _, key := range []string{"REELVIEW_TMDB_API_KEY", "TMDB_API_KEY"} {
		if v := strings.TrimSpace(m.getenv(key)); v != "" {
			s.Catalog.APIKey = v
			break
		}
	}
	if v := strings.TrimSpace(m.getenv("REELVIEW_HOST")); v != "" {
		s.Server.Host = v
	}
	if v := strings.TrimSpace(m.getenv("REELVIEW_PORT")); v != "" {
		if port, err := strconv.Atoi(v); err == nil && port > 0 {
			s.Server.Port = port
		}
	}
}
