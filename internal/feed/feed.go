// Package feed lists and mutates community posts. Reads go through a
// short-lived cache; every write invalidates the cache and refetches the
// full list, so displayed like and comment counts always reflect server
// truth rather than optimistic local patches.
package feed

import (
	"context"
	"sync"
	"time"

	"github.com/creativityverse/verse-cli/internal/api"
)

// CacheTTL is how long a fetched list is served without a new request.
const CacheTTL = 2 * time.Minute

// Store caches the community post list.
type Store struct {
	client *api.Client

	mu          sync.Mutex
	posts       []Post
	lastFetched time.Time
	loading     bool
	err         string

	now func() time.Time
}

// New creates a feed store over the given client.
func New(client *api.Client) *Store {
	return &Store{client: client, now: time.Now}
}

// Posts returns the cached post list.
func (s *Store) Posts() []Post {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.posts
}

// Loading reports whether a feed call is in flight.
func (s *Store) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// Err returns the last recorded error message. Concurrent failures
// overwrite each other; last write wins.
func (s *Store) Err() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

// Fetch loads the post list. When the cached list is non-empty and
// fresher than CacheTTL this is a no-op; otherwise the whole list is
// replaced and the fetch time stamped. There is no incremental fetch.
func (s *Store) Fetch(ctx context.Context) error {
	s.mu.Lock()
	if len(s.posts) > 0 && !s.lastFetched.IsZero() && s.now().Sub(s.lastFetched) < CacheTTL {
		s.mu.Unlock()
		return nil
	}
	s.loading = true
	s.mu.Unlock()
	defer s.setLoading(false)

	var posts []Post
	if err := s.client.Get(ctx, "/feed/posts", nil, &posts); err != nil {
		s.fail(api.Message(err))
		return err
	}

	s.mu.Lock()
	s.posts = posts
	s.lastFetched = s.now()
	s.err = ""
	s.mu.Unlock()
	return nil
}

// Invalidate clears the cache stamp so the next Fetch goes to the wire.
func (s *Store) Invalidate() {
	s.mu.Lock()
	s.lastFetched = time.Time{}
	s.mu.Unlock()
}

// CreatePost publishes a new post, then invalidates and refetches so the
// list includes the authoritative server copy. Attachments pass through
// as given; uploading happens elsewhere.
func (s *Store) CreatePost(ctx context.Context, req CreatePostRequest) error {
	if err := req.Validate(); err != nil {
		s.fail(err.Error())
		return err
	}

	s.setLoading(true)
	defer s.setLoading(false)

	if err := s.client.Post(ctx, "/feed/posts", &req, nil); err != nil {
		s.fail(api.Message(err))
		return err
	}

	s.Invalidate()
	return s.Fetch(ctx)
}

// Like records a like on a post and refetches the full list.
func (s *Store) Like(ctx context.Context, postID string) error {
	if err := s.client.Post(ctx, "/feed/posts/"+postID+"/like", nil, nil); err != nil {
		s.fail(api.Message(err))
		return err
	}
	s.Invalidate()
	return s.Fetch(ctx)
}

// Comment adds a comment to a post and refetches the full list.
func (s *Store) Comment(ctx context.Context, postID, content string) error {
	body := map[string]string{"content": content}
	if err := s.client.Post(ctx, "/feed/posts/"+postID+"/comments", body, nil); err != nil {
		s.fail(api.Message(err))
		return err
	}
	s.Invalidate()
	return s.Fetch(ctx)
}

// Follow follows a user. Fire-and-forget: the cached post list is not
// touched.
func (s *Store) Follow(ctx context.Context, userID string) error {
	if err := s.client.Post(ctx, "/user/follow/"+userID, nil, nil); err != nil {
		s.fail(api.Message(err))
		return err
	}
	return nil
}

// Unfollow unfollows a user. Fire-and-forget, like Follow.
func (s *Store) Unfollow(ctx context.Context, userID string) error {
	if err := s.client.Post(ctx, "/user/unfollow/"+userID, nil, nil); err != nil {
		s.fail(api.Message(err))
		return err
	}
	return nil
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
