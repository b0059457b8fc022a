package jobs

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/creativityverse/verse-cli/internal/api"
	"github.com/creativityverse/verse-cli/internal/storage"
)

const jobListBody = `{"status":"success","statusCode":200,"message":"ok","payload":[
	{"_id":"j1","title":"Product Designer","company":"Verse Studio","employmentType":"full-time",
	 "skillsRequired":["Figma","Prototyping"],"applicationMethod":"internal","createdAt":"2026-08-10T09:00:00Z"},
	{"id":"j2","title":"Motion Artist","company":"Orbital","applicationMethod":"external",
	 "applicationLink":"https://orbital.example/jobs/7"}
]}`

func newTestJobs(t *testing.T, handler http.HandlerFunc) (*Store, *storage.Store) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	state, err := storage.New(t.TempDir())
	require.NoError(t, err)
	return New(api.New(server.URL, nil), state), state
}

func TestFetchNormalizesIDs(t *testing.T) {
	store, _ := newTestJobs(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/job/get-jobs", r.URL.Path)
		fmt.Fprint(w, jobListBody)
	})

	require.NoError(t, store.Fetch(context.Background()))

	listings := store.Jobs()
	require.Len(t, listings, 2)
	assert.Equal(t, "j1", listings[0].ID, "id should be normalized from _id")
	assert.Equal(t, "j2", listings[1].ID, "a plain id passes through untouched")
	assert.Equal(t, []string{"Figma", "Prototyping"}, listings[0].SkillsRequired)
}

func TestFetchAppliedUsesBackendSpelling(t *testing.T) {
	var gotPath string
	store, _ := newTestJobs(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		fmt.Fprint(w, jobListBody)
	})

	require.NoError(t, store.FetchApplied(context.Background()))
	assert.Equal(t, "/api/v1/job/get-interal-applied-jobs", gotPath)
	assert.Len(t, store.Applied(), 2)
}

func TestJobByID(t *testing.T) {
	store, _ := newTestJobs(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/job/get-job/j1", r.URL.Path)
		fmt.Fprint(w, `{"status":"success","statusCode":200,"message":"ok","payload":{"_id":"j1","title":"Product Designer"}}`)
	})

	listing, err := store.Job(context.Background(), "j1")
	require.NoError(t, err)
	assert.Equal(t, "j1", listing.ID)
}

func TestApplyJSONRecordsAppliedLocally(t *testing.T) {
	store, state := newTestJobs(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/job/apply-job/j1", r.URL.Path)
		assert.Contains(t, r.Header.Get("Content-Type"), "application/json")
		fmt.Fprint(w, `{"status":"success","statusCode":200,"message":"applied"}`)
	})

	form := ApplicationForm{Name: "Ada", Email: "ada@verse.dev"}
	require.NoError(t, store.Apply(context.Background(), "j1", form))

	assert.True(t, store.HasApplied("j1"))
	assert.False(t, store.HasApplied("j2"))

	ids, err := LoadAppliedIDs(state)
	require.NoError(t, err)
	assert.Equal(t, []string{"j1"}, ids)
}

func TestApplyWithResumeGoesMultipart(t *testing.T) {
	var gotFile string
	store, _ := newTestJobs(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "Ada", r.FormValue("name"))
		_, header, err := r.FormFile("resume")
		require.NoError(t, err)
		gotFile = header.Filename
		fmt.Fprint(w, `{"status":"success","statusCode":200,"message":"applied"}`)
	})

	resume := filepath.Join(t.TempDir(), "resume.pdf")
	require.NoError(t, os.WriteFile(resume, []byte("%PDF-1.4"), 0o600))

	form := ApplicationForm{Name: "Ada", Email: "ada@verse.dev", ResumePath: resume}
	require.NoError(t, store.Apply(context.Background(), "j1", form))
	assert.Equal(t, "resume.pdf", gotFile)
}

func TestApplyDoesNotMutateListing(t *testing.T) {
	store, _ := newTestJobs(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			fmt.Fprint(w, jobListBody)
			return
		}
		fmt.Fprint(w, `{"status":"success","statusCode":200,"message":"applied"}`)
	})

	require.NoError(t, store.Fetch(context.Background()))
	before := store.Jobs()
	require.NoError(t, store.Apply(context.Background(), "j1", ApplicationForm{Name: "Ada", Email: "ada@verse.dev"}))
	assert.Equal(t, before, store.Jobs(), "applying must not touch the cached list")
}

func TestApplyFailureRecordsError(t *testing.T) {
	store, state := newTestJobs(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"status":"error","statusCode":409,"message":"already applied"}`)
	})

	err := store.Apply(context.Background(), "j1", ApplicationForm{Name: "Ada", Email: "ada@verse.dev"})
	require.Error(t, err)
	assert.Equal(t, "already applied", store.Err())

	ids, loadErr := LoadAppliedIDs(state)
	require.NoError(t, loadErr)
	assert.Empty(t, ids, "a failed apply should not be recorded locally")
}

func TestMarkAppliedIsIdempotent(t *testing.T) {
	state, err := storage.New(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, MarkApplied(state, "j1"))
	require.NoError(t, MarkApplied(state, "j1"))
	require.NoError(t, MarkApplied(state, "j2"))

	ids, err := LoadAppliedIDs(state)
	require.NoError(t, err)
	assert.Equal(t, []string{"j1", "j2"}, ids)
}

func TestLoadAppliedIDsRejectsCorruptRecord(t *testing.T) {
	state, err := storage.New(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, state.SaveJSON("applied_jobs", map[string]any{"job_ids": "not-a-list"}))

	_, err = LoadAppliedIDs(state)
	assert.Error(t, err)
}
