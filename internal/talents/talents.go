// Package talents lists verified talents. The backend returns generic
// user records; this store projects them into the Talent shape.
package talents

import (
	"context"
	"net/url"
	"strings"
	"sync"

	"github.com/creativityverse/verse-cli/internal/api"
)

// Subscription plans a talent can hold. The backend only exposes a
// premium boolean, so the projection produces "elite" or "free"; "rise"
// and "plus" exist in the type but are never derived.
const (
	PlanFree  = "free"
	PlanRise  = "rise"
	PlanPlus  = "plus"
	PlanElite = "elite"
)

// Talent is the projected listing record.
type Talent struct {
	ID               string   `json:"id"`
	FirstName        string   `json:"firstname"`
	LastName         string   `json:"lastname"`
	Avatar           string   `json:"avatar,omitempty"`
	Headline         string   `json:"headline,omitempty"`
	Category         string   `json:"category,omitempty"`
	Skills           []string `json:"skills"`
	ProjectsApproved int      `json:"projectsApproved"`
	Plan             string   `json:"plan"`
	Location         string   `json:"location,omitempty"`
}

// Options filters the verified-talent listing.
type Options struct {
	Search string
	Skills []string
}

// Store fetches the verified-talent listing.
type Store struct {
	client *api.Client

	mu      sync.Mutex
	talents []Talent
	loading bool
	err     string
}

// New creates a talents store.
func New(client *api.Client) *Store {
	return &Store{client: client}
}

// Talents returns the cached listing.
func (s *Store) Talents() []Talent {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.talents
}

// Loading reports whether a talent call is in flight.
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

// Fetch replaces the listing from the verified endpoint, projecting
// each user record into a Talent.
func (s *Store) Fetch(ctx context.Context, opts Options) error {
	s.setLoading(true)
	defer s.setLoading(false)

	query := url.Values{}
	if opts.Search != "" {
		query.Set("search", opts.Search)
	}
	if len(opts.Skills) > 0 {
		query.Set("skills", strings.Join(opts.Skills, ","))
	}

	var records []map[string]any
	if err := s.client.Get(ctx, "/talent/verified", query, &records); err != nil {
		s.fail(api.Message(err))
		return err
	}

	projected := make([]Talent, 0, len(records))
	for _, record := range records {
		projected = append(projected, Project(record))
	}

	s.mu.Lock()
	s.talents = projected
	s.err = ""
	s.mu.Unlock()
	return nil
}

// Project maps a generic backend user record into a Talent. The premium
// boolean collapses to elite-or-free.
func Project(record map[string]any) Talent {
	talent := Talent{
		ID:               asString(first(record, "id", "_id")),
		FirstName:        asString(first(record, "firstname", "firstName")),
		LastName:         asString(first(record, "lastname", "lastName")),
		Avatar:           asString(record["avatar"]),
		Headline:         asString(first(record, "headline", "bio")),
		Category:         asString(record["category"]),
		Skills:           asStrings(record["skills"]),
		ProjectsApproved: asInt(first(record, "projectsApproved", "projects_approved")),
		Location:         asString(record["location"]),
		Plan:             PlanFree,
	}
	if premium, _ := first(record, "isPremiumUser", "premium").(bool); premium {
		talent.Plan = PlanElite
	}
	return talent
}

func first(record map[string]any, keys ...string) any {
	for _, key := range keys {
		if v, ok := record[key]; ok && v != nil {
			return v
		}
	}
	return nil
}

func asString(v any) string {
	s, _ := v.(string)
	return s
}

func asInt(v any) int {
	switch n := v.(type) {
	case float64:
		return int(n)
	case int:
		return n
	default:
		return 0
	}
}

func asStrings(v any) []string {
	raw, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, entry := range raw {
		if s := asString(entry); s != "" {
			out = append(out, s)
		}
	}
	return out
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
