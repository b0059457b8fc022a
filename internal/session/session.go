// Package session owns the session lifecycle: sign-in, registration,
// email confirmation, password reset, and logout. The store is the sole
// writer of the session token; the API client reads it through the
// TokenSource interface on every request.
package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/creativityverse/verse-cli/internal/api"
	"github.com/creativityverse/verse-cli/internal/storage"
)

// SessionCookie is the durable cookie the token is mirrored into so a
// restart can restore the session.
const SessionCookie = "auth_token"

// CookieTTL matches the backend token lifetime.
const CookieTTL = 7 * 24 * time.Hour

// Store holds the session state. Zero value is not usable; construct
// with New and wire the API client with SetClient.
type Store struct {
	state *storage.Store

	mu       sync.Mutex
	client   *api.Client
	token    string
	user     *User
	loggedIn bool
	loading  bool
	err      string
}

// New creates an anonymous session over the given state store.
func New(state *storage.Store) *Store {
	return &Store{state: state}
}

// SetClient wires the API client used for auth calls. Separate from New
// because the client itself needs the store as its token source.
func (s *Store) SetClient(client *api.Client) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.client = client
}

// Token implements api.TokenSource.
func (s *Store) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

// User returns the authenticated identity, or nil when anonymous.
func (s *Store) User() *User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.user
}

// LoggedIn reports whether the session is authenticated.
func (s *Store) LoggedIn() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loggedIn
}

// Loading reports whether an auth call is in flight.
func (s *Store) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// Err returns the last recorded auth error message, "" when none.
func (s *Store) Err() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

// Restore loads a previously persisted token from the session cookie.
// Expired cookies and JWTs past their exp claim are discarded. The
// session stays unauthenticated until CurrentUser confirms the token.
func (s *Store) Restore() bool {
	token, err := s.state.Cookie(SessionCookie)
	if err != nil || token == "" {
		return false
	}
	if tokenExpired(token) {
		_ = s.state.DeleteCookie(SessionCookie)
		return false
	}
	s.mu.Lock()
	s.token = token
	s.mu.Unlock()
	return true
}

// Login posts credentials. On success the token is held in memory and
// mirrored into the durable cookie; on failure the error message is
// recorded and the session stays anonymous.
func (s *Store) Login(ctx context.Context, email, password string) error {
	req := LoginRequest{Email: email, Password: password}
	if err := req.Validate(); err != nil {
		s.fail(err.Error())
		return err
	}

	s.setLoading(true)
	defer s.setLoading(false)

	var payload authPayload
	if err := s.client.Post(ctx, "/auth/sign-in", &req, &payload); err != nil {
		s.fail(api.Message(err))
		return err
	}

	token := payload.token()
	if token == "" {
		err := fmt.Errorf("sign-in response missing access token")
		s.fail(err.Error())
		return err
	}

	s.establish(token, payload.User)
	return nil
}

// Register posts registration data. A successful registration does NOT
// authenticate: the user object is kept but loggedIn stays false until
// the email is confirmed. Errors are both recorded and returned so
// callers can render inline form feedback.
func (s *Store) Register(ctx context.Context, req RegisterRequest) (*User, error) {
	if err := req.Validate(); err != nil {
		s.fail(err.Error())
		return nil, err
	}

	s.setLoading(true)
	defer s.setLoading(false)

	var payload authPayload
	if err := s.client.Post(ctx, "/auth/sign-up", &req, &payload); err != nil {
		s.fail(api.Message(err))
		return nil, err
	}

	s.mu.Lock()
	s.user = payload.User
	s.err = ""
	s.mu.Unlock()
	return payload.User, nil
}

// ConfirmEmail submits the confirmation code. When the response carries
// an access token the session becomes authenticated and the token is
// persisted; otherwise the verified user object is kept but the session
// stays unauthenticated.
func (s *Store) ConfirmEmail(ctx context.Context, req ConfirmEmailRequest) error {
	if err := req.Validate(); err != nil {
		s.fail(err.Error())
		return err
	}

	s.setLoading(true)
	defer s.setLoading(false)

	var payload authPayload
	if err := s.client.Post(ctx, "/auth/confirm-email", &req, &payload); err != nil {
		s.fail(api.Message(err))
		return err
	}

	if token := payload.token(); token != "" {
		s.establish(token, payload.User)
		return nil
	}

	s.mu.Lock()
	s.user = payload.User
	s.err = ""
	s.mu.Unlock()
	return nil
}

// ForgotPassword requests a reset email. Loading and error flags only,
// no state transition.
func (s *Store) ForgotPassword(ctx context.Context, email string) error {
	s.setLoading(true)
	defer s.setLoading(false)

	body := map[string]string{"email": email}
	if err := s.client.Post(ctx, "/auth/request-password-reset", body, nil); err != nil {
		s.fail(api.Message(err))
		return err
	}
	s.fail("")
	return nil
}

// ResetPassword completes a reset flow. The error is recorded and
// returned, matching ForgotPassword.
func (s *Store) ResetPassword(ctx context.Context, req ResetPasswordRequest) error {
	if err := req.Validate(); err != nil {
		s.fail(err.Error())
		return err
	}

	s.setLoading(true)
	defer s.setLoading(false)

	if err := s.client.Post(ctx, "/auth/reset-password", &req, nil); err != nil {
		s.fail(api.Message(err))
		return err
	}
	s.fail("")
	return nil
}

// CurrentUser pulls the authenticated identity using whatever token the
// client attaches. On success the user is refreshed and the session is
// marked authenticated. On any failure it returns nil and leaves prior
// state untouched; only the client's 401 hook forces a logout.
func (s *Store) CurrentUser(ctx context.Context) *User {
	var user User
	if err := s.client.Get(ctx, "/auth/current-user", nil, &user); err != nil {
		return nil
	}

	s.mu.Lock()
	s.user = &user
	s.loggedIn = true
	s.mu.Unlock()
	return &user
}

// Logout clears the token and user unconditionally, memory and cookie
// both. No network call is made. Safe to call from the client's 401
// hook mid-request.
func (s *Store) Logout() {
	s.mu.Lock()
	s.token = ""
	s.user = nil
	s.loggedIn = false
	s.mu.Unlock()
	_ = s.state.DeleteCookie(SessionCookie)
}

func (s *Store) establish(token string, user *User) {
	s.mu.Lock()
	s.token = token
	s.user = user
	s.loggedIn = true
	s.err = ""
	s.mu.Unlock()
	_ = s.state.SetCookie(SessionCookie, token, CookieTTL)
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

// tokenExpired inspects a JWT exp claim without verifying the signature;
// the client holds no signing key. Opaque tokens rely on the cookie
// expiry alone.
func tokenExpired(token string) bool {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.Before(time.Now())
}
