// Package contests lists creative contests. Backend contest records are
// heterogeneous, so every fetch runs through Normalize before anything
// is cached.
package contests

import (
	"context"
	"net/url"
	"sync"
	"time"

	"github.com/creativityverse/verse-cli/internal/api"
)

// Store fetches and normalizes contest listings.
type Store struct {
	client *api.Client

	mu       sync.Mutex
	contests []Contest
	loading  bool
	err      string

	now func() time.Time
}

// New creates a contests store.
func New(client *api.Client) *Store {
	return &Store{client: client, now: time.Now}
}

// Contests returns the cached normalized listing.
func (s *Store) Contests() []Contest {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.contests
}

// Loading reports whether a contest call is in flight.
func (s *Store) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// Err returns the last recorded error message.
func (s *Store) Err() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

// Fetch replaces the contest listing, optionally filtered by category.
func (s *Store) Fetch(ctx context.Context, category string) error {
	s.setLoading(true)
	defer s.setLoading(false)

	var query url.Values
	if category != "" {
		query = url.Values{"category": []string{category}}
	}

	var records []map[string]any
	if err := s.client.Get(ctx, "/contest/get", query, &records); err != nil {
		s.fail(api.Message(err))
		return err
	}

	now := s.now()
	normalized := make([]Contest, 0, len(records))
	for _, record := range records {
		normalized = append(normalized, Normalize(record, now))
	}

	s.mu.Lock()
	s.contests = normalized
	s.err = ""
	s.mu.Unlock()
	return nil
}

// Contest fetches and normalizes a single contest by id.
func (s *Store) Contest(ctx context.Context, id string) (*Contest, error) {
	var record map[string]any
	if err := s.client.Get(ctx, "/contest/get/"+id, nil, &record); err != nil {
		s.fail(api.Message(err))
		return nil, err
	}
	contest := Normalize(record, s.now())
	return &contest, nil
}

func (s *Store) fail(msg string) {
	s.mu.Lock()
	s.err = msg
	s.mu.Unlock()
}

func (s *Store) setLoading(v bool) {
	s.mu.Lock()
	s.loading = v
	s.mu.Unlock()
}
