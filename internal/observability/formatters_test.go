package observability

import (
	"bytes"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"

	"github.com/creativityverse/verse-cli/internal/contests"
	"github.com/creativityverse/verse-cli/internal/feed"
	"github.com/creativityverse/verse-cli/internal/jobs"
)

func TestPrintPosts(t *testing.T) {
	var buf bytes.Buffer
	printer := NewPrinter(&buf)

	printer.PrintPosts([]feed.Post{{
		ID:      "p1",
		Author:  &feed.UserSummary{FirstName: "Grace", LastName: "Hopper"},
		Content: "hello verse",
		Likes:   []string{"u2", "u3"},
	}})

	out := buf.String()
	assert.Contains(t, out, "Grace Hopper")
	assert.Contains(t, out, "2 likes")
	assert.Contains(t, out, "hello verse")
}

func TestPrintJobsShowsExternalLink(t *testing.T) {
	var buf bytes.Buffer
	printer := NewPrinter(&buf)

	printer.PrintJobs("Jobs", []jobs.Listing{{
		ID: "j2", Title: "Motion Artist", Company: "Orbital",
		ApplicationMethod: jobs.ApplyExternal,
		ApplicationLink:   "https://orbital.example/jobs/7",
	}})

	assert.Contains(t, buf.String(), "apply: https://orbital.example/jobs/7")
}

func TestPrintContests(t *testing.T) {
	var buf bytes.Buffer
	printer := NewPrinter(&buf)

	printer.PrintContests([]contests.Contest{{
		ID: "c1", Title: "Poster Jam", Status: contests.StatusLive,
		Tags: []string{"Design", "Free"},
	}})

	out := buf.String()
	assert.Contains(t, out, "Poster Jam")
	assert.Contains(t, out, "tags: Design, Free")
}

func TestPreviewTruncatesLongContent(t *testing.T) {
	var buf bytes.Buffer
	printer := NewPrinter(&buf)

	printer.PrintPosts([]feed.Post{{ID: "p1", Content: strings.Repeat("a", 300)}})
	assert.Contains(t, buf.String(), "...")
	assert.NotContains(t, buf.String(), strings.Repeat("a", 200))
}

func TestPreviewKeepsMultiByteRunesIntact(t *testing.T) {
	out := preview(strings.Repeat("é", 300))

	assert.True(t, utf8.ValidString(out), "truncation must not split a rune")
	assert.Equal(t, maxPreviewLen-3, strings.Count(out, "é"))
	assert.True(t, strings.HasSuffix(out, "..."))
}
