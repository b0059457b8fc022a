package contests

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var testNow = time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

func TestNormalizeCoercesStringNumerics(t *testing.T) {
	record := map[string]any{
		"_id":             "c1",
		"title":           "Poster Jam",
		"entryFee":        "25",
		"prizePool":       "1500.50",
		"participants":    "42",
		"maxParticipants": float64(100),
	}

	contest := Normalize(record, testNow)

	assert.Equal(t, "c1", contest.ID)
	assert.Equal(t, 25.0, contest.EntryFee)
	assert.Equal(t, 1500.5, contest.PrizePool)
	assert.Equal(t, 42, contest.Participants)
	assert.Equal(t, 100, contest.MaxParticipants)
}

func TestNormalizeAlternateFieldNames(t *testing.T) {
	record := map[string]any{
		"id":         "c2",
		"prize":      float64(500),
		"entry_fee":  "10",
		"end_date":   "2026-09-15T00:00:00Z",
		"coverImage": "https://cdn.example/c2.png",
	}

	contest := Normalize(record, testNow)

	assert.Equal(t, 500.0, contest.PrizePool)
	assert.Equal(t, 10.0, contest.EntryFee)
	assert.Equal(t, "2026-09-15T00:00:00Z", contest.Deadline)
	assert.Equal(t, "https://cdn.example/c2.png", contest.Cover)
}

func TestNormalizeBadNumbersFallBackToZero(t *testing.T) {
	record := map[string]any{
		"_id":       "c3",
		"entryFee":  "free",
		"prizePool": nil,
	}

	contest := Normalize(record, testNow)

	assert.Zero(t, contest.EntryFee)
	assert.Zero(t, contest.PrizePool)
	assert.Contains(t, contest.Tags, TagFree, "an unparseable fee coerces to 0 and reads as free")
}

func TestNormalizeTagCleanup(t *testing.T) {
	record := map[string]any{
		"_id":      "c4",
		"entryFee": float64(25),
		"tags":     []any{" design ", "Design", "motion graphics", "DESIGN"},
	}

	contest := Normalize(record, testNow)

	assert.Equal(t, []string{"Design", "Motion Graphics", "Paid"}, contest.Tags)
	assert.NotContains(t, contest.Tags, TagFree)
}

func TestNormalizeFreePaidDeterminism(t *testing.T) {
	free := Normalize(map[string]any{"_id": "a", "entryFee": float64(0)}, testNow)
	paid := Normalize(map[string]any{"_id": "b", "entryFee": float64(25)}, testNow)

	assert.Contains(t, free.Tags, TagFree)
	assert.NotContains(t, free.Tags, TagPaid)
	assert.Contains(t, paid.Tags, TagPaid)
	assert.NotContains(t, paid.Tags, TagFree)
}

func TestNormalizeSyntheticTagNotDuplicated(t *testing.T) {
	record := map[string]any{
		"_id":      "c5",
		"entryFee": float64(0),
		"tags":     []any{"free"},
	}

	contest := Normalize(record, testNow)
	assert.Equal(t, []string{"Free"}, contest.Tags)
}

func TestNormalizeStatusDefaultsToUpcoming(t *testing.T) {
	tests := []struct {
		name     string
		status   any
		expected string
	}{
		{"missing", nil, StatusUpcoming},
		{"live", "live", StatusLive},
		{"mixed case", "Ended", StatusEnded},
		{"unknown", "paused", StatusUpcoming},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			contest := Normalize(map[string]any{"_id": "c", "status": tt.status}, testNow)
			assert.Equal(t, tt.expected, contest.Status)
		})
	}
}

// Mirrors the canonical normalization example: a sparse record with a
// string fee and no deadline.
func TestNormalizeSparseRecord(t *testing.T) {
	record := map[string]any{
		"_id":      "c9",
		"title":    "X",
		"entryFee": "0",
		"tags":     []any{"free"},
		"deadline": nil,
	}

	contest := Normalize(record, testNow)

	assert.Equal(t, "c9", contest.ID)
	assert.Equal(t, "X", contest.Title)
	assert.Equal(t, 0.0, contest.EntryFee)
	assert.Equal(t, []string{"Free"}, contest.Tags)
	assert.Equal(t, testNow.Format(time.RFC3339), contest.Deadline)
	assert.Equal(t, StatusUpcoming, contest.Status)
}
