package contests

// Contest statuses.
const (
	StatusLive     = "live"
	StatusUpcoming = "upcoming"
	StatusEnded    = "ended"
)

// Synthetic tags injected from the entry fee.
const (
	TagFree = "Free"
	TagPaid = "Paid"
)

// Contest is one normalized contest record. Numeric fields may arrive
// from the backend as strings or under alternate names; Normalize maps
// them all into this shape.
type Contest struct {
	ID              string   `json:"id"`
	Title           string   `json:"title"`
	Cover           string   `json:"cover,omitempty"`
	Description     string   `json:"description,omitempty"`
	PrizePool       float64  `json:"prizePool"`
	EntryFee        float64  `json:"entryFee"`
	Participants    int      `json:"participants"`
	MaxParticipants int      `json:"maxParticipants"`
	Deadline        string   `json:"deadline"`
	Status          string   `json:"status"`
	Tags            []string `json:"tags"`
}

// Free reports whether the contest has no entry fee.
func (c *Contest) Free() bool { return c.EntryFee == 0 }
