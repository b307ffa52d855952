package search

import (
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/golang-lru/v2/expirable"

	"reelview/models"
)

// Registry holds the live sessions of the server. Sessions expire after ttl
// without being started again, and the least recently used ones are evicted
// once size is reached. Both stand in for "the user left the page".
type Registry struct {
	sessions *expirable.LRU[string, *Session]
	newID    func() string
}

func NewRegistry(size int, ttl time.Duration) *Registry {
	if size <= 0 {
		size = 1000
	}
	return &Registry{
		sessions: expirable.NewLRU[string, *Session](size, nil, ttl),
		newID:    uuid.NewString,
	}
}

// Start creates and registers a session already initialized with its first page.
func (r *Registry) Start(fetcher PageFetcher, query string, first models.ResultPage) *Session {
	session := NewSession(r.newID(), fetcher)
	session.Initialize(query, first)
	r.sessions.Add(session.ID(), session)
	return session
}

// Get returns the session for id. A hit refreshes both its recency and its
// TTL, so a session stays alive while it is being paged through.
func (r *Registry) Get(id string) (*Session, error) {
	if id == "" {
		return nil, ErrSessionNotFound
	}
	session, ok := r.sessions.Get(id)
	if !ok {
		return nil, ErrSessionNotFound
	}
	r.sessions.Add(id, session)
	return session, nil
}

func (r *Registry) Remove(id string) {
	r.sessions.Remove(id)
}

func (r *Registry) Len() int {
	return r.sessions.Len()
}
