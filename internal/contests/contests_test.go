package contests

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/creativityverse/verse-cli/internal/api"
)

func newTestContests(t *testing.T, handler http.HandlerFunc) *Store {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	store := New(api.New(server.URL, nil))
	store.now = func() time.Time { return testNow }
	return store
}

func TestFetchNormalizesEveryRecord(t *testing.T) {
	store := newTestContests(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/contest/get", r.URL.Path)
		fmt.Fprint(w, `{"status":"success","statusCode":200,"message":"ok","payload":[
			{"_id":"c1","title":"Poster Jam","entryFee":"0","tags":["design"]},
			{"_id":"c2","title":"Reel Rush","entryFee":25,"status":"live"}
		]}`)
	})

	require.NoError(t, store.Fetch(context.Background(), ""))

	contests := store.Contests()
	require.Len(t, contests, 2)
	assert.Equal(t, []string{"Design", "Free"}, contests[0].Tags)
	assert.Equal(t, StatusLive, contests[1].Status)
	assert.Contains(t, contests[1].Tags, TagPaid)
}

func TestFetchPassesCategoryFilter(t *testing.T) {
	var gotCategory string
	store := newTestContests(t, func(w http.ResponseWriter, r *http.Request) {
		gotCategory = r.URL.Query().Get("category")
		fmt.Fprint(w, `{"status":"success","statusCode":200,"message":"ok","payload":[]}`)
	})

	require.NoError(t, store.Fetch(context.Background(), "illustration"))
	assert.Equal(t, "illustration", gotCategory)
}

func TestContestByID(t *testing.T) {
	store := newTestContests(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/contest/get/c9", r.URL.Path)
		fmt.Fprint(w, `{"status":"success","statusCode":200,"message":"ok","payload":{"_id":"c9","title":"X","entryFee":"0","tags":["free"],"deadline":null}}`)
	})

	contest, err := store.Contest(context.Background(), "c9")
	require.NoError(t, err)
	assert.Equal(t, "c9", contest.ID)
	assert.Equal(t, []string{"Free"}, contest.Tags)
	assert.Equal(t, StatusUpcoming, contest.Status)
}

func TestFetchFailureRecordsError(t *testing.T) {
	store := newTestContests(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"status":"error","statusCode":500,"message":"contests unavailable"}`)
	})

	err := store.Fetch(context.Background(), "")
	require.Error(t, err)
	assert.Equal(t, "contests unavailable", store.Err())
	assert.Empty(t, store.Contests())
}
