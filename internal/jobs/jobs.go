// Package jobs lists job postings and submits applications. Applied
// state is tracked client-side in the state directory rather than by
// refetching, so the listing itself never mutates after an apply.
package jobs

import (
	"context"
	"os"
	"path/filepath"
	"sync"

	"github.com/creativityverse/verse-cli/internal/api"
	"github.com/creativityverse/verse-cli/internal/storage"
)

// Store fetches job listings and submits applications.
type Store struct {
	client *api.Client
	state  *storage.Store

	mu      sync.Mutex
	jobs    []Listing
	applied []Listing
	loading bool
	err     string
}

// New creates a jobs store. The state store records applied job ids
// locally; it may be nil, in which case applied tracking is disabled.
func New(client *api.Client, state *storage.Store) *Store {
	return &Store{client: client, state: state}
}

// Jobs returns the cached listing.
func (s *Store) Jobs() []Listing {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.jobs
}

// Applied returns the cached applied-jobs listing.
func (s *Store) Applied() []Listing {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.applied
}

// Loading reports whether a jobs call is in flight.
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

// Fetch replaces the job listing from the backend. No cache: callers
// control freshness by choosing when to call.
func (s *Store) Fetch(ctx context.Context) error {
	s.setLoading(true)
	defer s.setLoading(false)

	var listings []Listing
	if err := s.client.Get(ctx, "/job/get-jobs", nil, &listings); err != nil {
		s.fail(api.Message(err))
		return err
	}

	s.mu.Lock()
	s.jobs = listings
	s.err = ""
	s.mu.Unlock()
	return nil
}

// FetchApplied replaces the applied-jobs listing. The endpoint spelling
// is the backend's.
func (s *Store) FetchApplied(ctx context.Context) error {
	s.setLoading(true)
	defer s.setLoading(false)

	var listings []Listing
	if err := s.client.Get(ctx, "/job/get-interal-applied-jobs", nil, &listings); err != nil {
		s.fail(api.Message(err))
		return err
	}

	s.mu.Lock()
	s.applied = listings
	s.err = ""
	s.mu.Unlock()
	return nil
}

// Job fetches a single listing by id.
func (s *Store) Job(ctx context.Context, id string) (*Listing, error) {
	var listing Listing
	if err := s.client.Get(ctx, "/job/get-job/"+id, nil, &listing); err != nil {
		s.fail(api.Message(err))
		return nil, err
	}
	return &listing, nil
}

// Apply submits an application. When the form carries a résumé file the
// request goes out as multipart, otherwise plain JSON. The cached
// listing is not mutated; the job id is recorded in local applied state
// on success.
func (s *Store) Apply(ctx context.Context, jobID string, form ApplicationForm) error {
	if err := form.Validate(); err != nil {
		s.fail(err.Error())
		return err
	}

	s.setLoading(true)
	defer s.setLoading(false)

	path := "/job/apply-job/" + jobID
	var err error
	if form.ResumePath != "" {
		err = s.applyMultipart(ctx, path, form)
	} else {
		err = s.client.Post(ctx, path, &form, nil)
	}
	if err != nil {
		s.fail(api.Message(err))
		return err
	}

	s.fail("")
	if s.state != nil {
		if recordErr := MarkApplied(s.state, jobID); recordErr != nil {
			s.fail(recordErr.Error())
		}
	}
	return nil
}

func (s *Store) applyMultipart(ctx context.Context, path string, form ApplicationForm) error {
	file, err := os.Open(form.ResumePath)
	if err != nil {
		return err
	}
	defer func() { _ = file.Close() }()

	fields := map[string]string{
		"name":  form.Name,
		"email": form.Email,
	}
	if form.CoverLetter != "" {
		fields["coverLetter"] = form.CoverLetter
	}
	files := []api.File{{Field: "resume", Name: filepath.Base(form.ResumePath), Content: file}}
	return s.client.PostMultipart(ctx, path, fields, files, nil)
}

// HasApplied reports whether the job id is in the local applied record.
func (s *Store) HasApplied(jobID string) bool {
	if s.state == nil {
		return false
	}
	ids, err := LoadAppliedIDs(s.state)
	if err != nil {
		return false
	}
	for _, id := range ids {
		if id == jobID {
			return true
		}
	}
	return false
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
