package contests

import (
	"strconv"
	"strings"
	"time"
	"unicode"
)

// Normalize maps a raw backend contest record into the stable Contest
// shape: ids unified, numerics coerced with a 0 fallback, the deadline
// coerced to an ISO timestamp defaulting to now, tags cleaned up, and a
// synthetic Free/Paid tag appended from the entry fee.
func Normalize(record map[string]any, now time.Time) Contest {
	contest := Contest{
		ID:              asString(first(record, "id", "_id")),
		Title:           asString(record["title"]),
		Cover:           asString(first(record, "cover", "coverImage", "image")),
		Description:     asString(record["description"]),
		PrizePool:       asNumber(first(record, "prizePool", "prize_pool", "prize")),
		EntryFee:        asNumber(first(record, "entryFee", "entry_fee", "fee")),
		Participants:    int(asNumber(first(record, "participants", "participantsCount", "participants_count"))),
		MaxParticipants: int(asNumber(first(record, "maxParticipants", "max_participants"))),
		Deadline:        asDeadline(first(record, "deadline", "endDate", "end_date"), now),
		Status:          asStatus(record["status"]),
	}

	tags := cleanTags(record["tags"])
	if contest.Free() {
		tags = appendUnique(tags, TagFree)
	} else {
		tags = appendUnique(tags, TagPaid)
	}
	contest.Tags = tags

	return contest
}

// first returns the value under the first key present and non-nil.
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

// asNumber coerces float64, int, and numeric strings; anything else
// falls back to 0.
func asNumber(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case int:
		return float64(n)
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0
		}
		return parsed
	default:
		return 0
	}
}

// asDeadline coerces the deadline to RFC 3339, falling back to now when
// absent or unparseable.
func asDeadline(v any, now time.Time) string {
	raw := strings.TrimSpace(asString(v))
	if raw == "" {
		return now.UTC().Format(time.RFC3339)
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05.000Z07:00", "2006-01-02"} {
		if parsed, err := time.Parse(layout, raw); err == nil {
			return parsed.UTC().Format(time.RFC3339)
		}
	}
	return now.UTC().Format(time.RFC3339)
}

// asStatus lowercases a known status, defaulting to upcoming.
func asStatus(v any) string {
	switch strings.ToLower(strings.TrimSpace(asString(v))) {
	case StatusLive:
		return StatusLive
	case StatusEnded:
		return StatusEnded
	case StatusUpcoming:
		return StatusUpcoming
	default:
		return StatusUpcoming
	}
}

// cleanTags trims, title-cases and de-duplicates the tag list,
// preserving first-seen order.
func cleanTags(v any) []string {
	raw, ok := v.([]any)
	if !ok {
		return nil
	}
	tags := make([]string, 0, len(raw))
	seen := make(map[string]bool, len(raw))
	for _, entry := range raw {
		tag := titleCase(strings.TrimSpace(asString(entry)))
		if tag == "" || seen[tag] {
			continue
		}
		seen[tag] = true
		tags = append(tags, tag)
	}
	return tags
}

func appendUnique(tags []string, tag string) []string {
	for _, existing := range tags {
		if existing == tag {
			return tags
		}
	}
	return append(tags, tag)
}

// titleCase upper-cases the first letter of each word and lower-cases
// the rest.
func titleCase(s string) string {
	words := strings.Fields(s)
	for i, word := range words {
		runes := []rune(strings.ToLower(word))
		runes[0] = unicode.ToUpper(runes[0])
		words[i] = string(runes)
	}
	return strings.Join(words, " ")
}
