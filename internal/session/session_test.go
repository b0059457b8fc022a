package session

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/creativityverse/verse-cli/internal/api"
	"github.com/creativityverse/verse-cli/internal/storage"
)

func newTestSession(t *testing.T, handler http.HandlerFunc) (*Store, *storage.Store) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	state, err := storage.New(t.TempDir())
	require.NoError(t, err)

	sess := New(state)
	client := api.New(server.URL, &api.Options{Tokens: sess, OnUnauthorized: sess.Logout})
	sess.SetClient(client)
	return sess, state
}

func authSuccessBody(token string) string {
	user := `{"_id":"u1","firstname":"Ada","lastname":"Lovelace","email":"ada@verse.dev"}`
	if token == "" {
		return fmt.Sprintf(`{"status":"success","statusCode":200,"message":"ok","payload":{"user":%s}}`, user)
	}
	return fmt.Sprintf(`{"status":"success","statusCode":200,"message":"ok","payload":{"user":%s,"accessToken":%q}}`, user, token)
}

func TestLoginSuccess(t *testing.T) {
	sess, state := newTestSession(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/auth/sign-in", r.URL.Path)
		fmt.Fprint(w, authSuccessBody("tok-1"))
	})

	require.NoError(t, sess.Login(context.Background(), "ada@verse.dev", "hunter22"))

	assert.True(t, sess.LoggedIn())
	assert.Equal(t, "tok-1", sess.Token())
	assert.Equal(t, "u1", sess.User().ID, "user id should be normalized from _id")
	assert.Empty(t, sess.Err())

	cookie, err := state.Cookie(SessionCookie)
	require.NoError(t, err)
	assert.Equal(t, "tok-1", cookie, "token should be mirrored into the durable cookie")
}

func TestLoginFailureStaysAnonymous(t *testing.T) {
	sess, _ := newTestSession(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"status":"error","statusCode":422,"message":"invalid email or password"}`)
	})

	err := sess.Login(context.Background(), "ada@verse.dev", "wrong")
	require.Error(t, err)

	assert.False(t, sess.LoggedIn())
	assert.Empty(t, sess.Token())
	assert.Equal(t, "invalid email or password", sess.Err())
}

func TestLoginRejectsInvalidEmailLocally(t *testing.T) {
	requests := 0
	sess, _ := newTestSession(t, func(w http.ResponseWriter, r *http.Request) {
		requests++
	})

	err := sess.Login(context.Background(), "not-an-email", "hunter22")
	require.Error(t, err)
	assert.Zero(t, requests, "validation failures should not reach the wire")
	assert.NotEmpty(t, sess.Err())
}

func TestRegisterDoesNotAuthenticate(t *testing.T) {
	sess, _ := newTestSession(t, func(w http.ResponseWriter, r *http.Request) {
		// The backend returns a user object on sign-up; the contract is
		// still registered-but-unauthenticated until email confirmation.
		fmt.Fprint(w, authSuccessBody(""))
	})

	user, err := sess.Register(context.Background(), RegisterRequest{
		FirstName: "Ada", LastName: "Lovelace",
		Email: "ada@verse.dev", Password: "hunter2222",
	})
	require.NoError(t, err)
	require.NotNil(t, user)

	assert.False(t, sess.LoggedIn())
	assert.Empty(t, sess.Token())
	assert.Equal(t, "Ada", sess.User().FirstName)
}

func TestConfirmEmailWithTokenAuthenticates(t *testing.T) {
	sess, state := newTestSession(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, authSuccessBody("tok-confirmed"))
	})

	err := sess.ConfirmEmail(context.Background(), ConfirmEmailRequest{Email: "ada@verse.dev", Code: "123456"})
	require.NoError(t, err)

	assert.True(t, sess.LoggedIn())
	assert.Equal(t, "tok-confirmed", sess.Token())

	cookie, err := state.Cookie(SessionCookie)
	require.NoError(t, err)
	assert.Equal(t, "tok-confirmed", cookie)
}

func TestConfirmEmailWithoutTokenKeepsUserUnauthenticated(t *testing.T) {
	sess, _ := newTestSession(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, authSuccessBody(""))
	})

	err := sess.ConfirmEmail(context.Background(), ConfirmEmailRequest{Email: "ada@verse.dev", Code: "123456"})
	require.NoError(t, err)

	assert.False(t, sess.LoggedIn())
	assert.Empty(t, sess.Token())
	require.NotNil(t, sess.User())
	assert.Equal(t, "u1", sess.User().ID)
}

func TestCurrentUserRefreshesIdentity(t *testing.T) {
	sess, _ := newTestSession(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"status":"success","statusCode":200,"message":"ok","payload":{"_id":"u1","firstname":"Ada","lastname":"Lovelace"}}`)
	})

	user := sess.CurrentUser(context.Background())
	require.NotNil(t, user)
	assert.Equal(t, "u1", user.ID)
	assert.True(t, sess.LoggedIn())
}

func TestCurrentUserFailureLeavesStateUntouched(t *testing.T) {
	sess, _ := newTestSession(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"status":"error","statusCode":500,"message":"boom"}`)
	})

	user := sess.CurrentUser(context.Background())
	assert.Nil(t, user)
	assert.False(t, sess.LoggedIn())
	assert.Empty(t, sess.Err(), "current-user failures are silent")
}

func TestLogoutClearsAllSessionState(t *testing.T) {
	sess, state := newTestSession(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, authSuccessBody("tok-1"))
	})
	require.NoError(t, sess.Login(context.Background(), "ada@verse.dev", "hunter22"))

	sess.Logout()

	assert.Empty(t, sess.Token())
	assert.Nil(t, sess.User())
	assert.False(t, sess.LoggedIn())

	cookie, err := state.Cookie(SessionCookie)
	require.NoError(t, err)
	assert.Empty(t, cookie, "logout should clear the durable cookie")
}

func TestUnauthorizedAnywhereForcesLogout(t *testing.T) {
	authenticated := true
	sess, _ := newTestSession(t, func(w http.ResponseWriter, r *http.Request) {
		if authenticated {
			fmt.Fprint(w, authSuccessBody("tok-1"))
			return
		}
		w.WriteHeader(http.StatusUnauthorized)
		fmt.Fprint(w, `{"status":"error","statusCode":401,"message":"token expired"}`)
	})

	require.NoError(t, sess.Login(context.Background(), "ada@verse.dev", "hunter22"))
	require.True(t, sess.LoggedIn())

	authenticated = false
	user := sess.CurrentUser(context.Background())
	assert.Nil(t, user)
	assert.False(t, sess.LoggedIn(), "a 401 on any request invalidates the session globally")
	assert.Empty(t, sess.Token())
}

func TestRestoreReadsPersistedToken(t *testing.T) {
	state, err := storage.New(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, state.SetCookie(SessionCookie, "tok-persisted", CookieTTL))

	sess := New(state)
	assert.True(t, sess.Restore())
	assert.Equal(t, "tok-persisted", sess.Token())
	assert.False(t, sess.LoggedIn(), "restore alone does not authenticate")
}

func TestRestoreDiscardsExpiredJWT(t *testing.T) {
	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "u1",
		"exp": time.Now().Add(-time.Hour).Unix(),
	})
	signed, err := expired.SignedString([]byte("test-secret"))
	require.NoError(t, err)

	state, err := storage.New(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, state.SetCookie(SessionCookie, signed, CookieTTL))

	sess := New(state)
	assert.False(t, sess.Restore())
	assert.Empty(t, sess.Token())

	cookie, err := state.Cookie(SessionCookie)
	require.NoError(t, err)
	assert.Empty(t, cookie, "the expired cookie should be deleted")
}

func TestForgotPasswordRecordsFailure(t *testing.T) {
	sess, _ := newTestSession(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"status":"error","statusCode":404,"message":"account not found"}`)
	})

	err := sess.ForgotPassword(context.Background(), "ghost@verse.dev")
	require.Error(t, err)
	assert.Equal(t, "account not found", sess.Err())
	assert.False(t, sess.LoggedIn())
}
