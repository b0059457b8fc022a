// Package profile holds the user-editable profile draft. It is purely
// local: every mutation is synchronous against the state directory, and
// nothing is pushed to the backend except through the explicit Publish
// call, which is a separate concern from the draft itself.
package profile

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/creativityverse/verse-cli/internal/api"
	"github.com/creativityverse/verse-cli/internal/schemas"
	"github.com/creativityverse/verse-cli/internal/storage"
)

// profileKey is the fixed local-storage key for the draft.
const profileKey = "profile"

// ErrDuplicateSkill is recorded when a skill is added twice.
var ErrDuplicateSkill = errors.New("Skill already exists")

// SocialLinks holds per-platform profile URLs.
type SocialLinks struct {
	Twitter   string `json:"twitter,omitempty"`
	LinkedIn  string `json:"linkedin,omitempty"`
	GitHub    string `json:"github,omitempty"`
	Instagram string `json:"instagram,omitempty"`
}

// Profile is the locally persisted draft.
type Profile struct {
	Bio         string      `json:"bio,omitempty"`
	Skills      []string    `json:"skills,omitempty"`
	Location    string      `json:"location,omitempty"`
	Website     string      `json:"website,omitempty"`
	SocialLinks SocialLinks `json:"socialLinks,omitempty"`
}

// Changes is a partial profile for shallow merges; nil fields are left
// untouched.
type Changes struct {
	Bio      *string
	Location *string
	Website  *string
	Skills   *[]string
}

// Store owns the draft. Construct with New, which loads and validates
// any persisted copy.
type Store struct {
	state *storage.Store

	mu      sync.Mutex
	profile Profile
	err     string
}

// New loads the persisted draft, validating it against the profile
// schema first. A corrupt file is an error; a missing one yields an
// empty draft.
func New(state *storage.Store) (*Store, error) {
	store := &Store{state: state}

	data, found, err := state.LoadRaw(profileKey)
	if err != nil {
		return nil, err
	}
	if found {
		if err := schemas.ValidateProfile(data); err != nil {
			return nil, fmt.Errorf("local profile is corrupt: %w", err)
		}
		if _, err := state.LoadJSON(profileKey, &store.profile); err != nil {
			return nil, err
		}
	}
	return store, nil
}

// Profile returns a copy of the current draft.
func (s *Store) Profile() Profile {
	s.mu.Lock()
	defer s.mu.Unlock()

	copied := s.profile
	copied.Skills = append([]string(nil), s.profile.Skills...)
	return copied
}

// Err returns the last recorded profile error message.
func (s *Store) Err() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

// Update shallow-merges the changes into the draft and persists it.
func (s *Store) Update(changes Changes) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if changes.Bio != nil {
		s.profile.Bio = *changes.Bio
	}
	if changes.Location != nil {
		s.profile.Location = *changes.Location
	}
	if changes.Website != nil {
		s.profile.Website = *changes.Website
	}
	if changes.Skills != nil {
		s.profile.Skills = *changes.Skills
	}
	return s.persistLocked()
}

// AddSkill appends a skill with set semantics: a duplicate records
// ErrDuplicateSkill into the error field instead of mutating.
func (s *Store) AddSkill(skill string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.profile.Skills {
		if existing == skill {
			s.err = ErrDuplicateSkill.Error()
			return ErrDuplicateSkill
		}
	}
	s.profile.Skills = append(s.profile.Skills, skill)
	s.err = ""
	return s.persistLocked()
}

// RemoveSkill filters a skill out; removing an absent skill is a no-op.
func (s *Store) RemoveSkill(skill string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	filtered := make([]string, 0, len(s.profile.Skills))
	for _, existing := range s.profile.Skills {
		if existing != skill {
			filtered = append(filtered, existing)
		}
	}
	s.profile.Skills = filtered
	s.err = ""
	return s.persistLocked()
}

// SetSocialLink updates one platform link inside the nested map.
func (s *Store) SetSocialLink(platform, link string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch platform {
	case "twitter":
		s.profile.SocialLinks.Twitter = link
	case "linkedin":
		s.profile.SocialLinks.LinkedIn = link
	case "github":
		s.profile.SocialLinks.GitHub = link
	case "instagram":
		s.profile.SocialLinks.Instagram = link
	default:
		err := fmt.Errorf("unknown social platform %q", platform)
		s.err = err.Error()
		return err
	}
	s.err = ""
	return s.persistLocked()
}

// Publish pushes the current draft to the backend. This is the explicit
// commit action; the local draft and the server copy are otherwise
// never reconciled.
func (s *Store) Publish(ctx context.Context, client *api.Client) error {
	draft := s.Profile()
	if err := client.Post(ctx, "/users/update-profile", &draft, nil); err != nil {
		s.mu.Lock()
		s.err = api.Message(err)
		s.mu.Unlock()
		return err
	}
	return nil
}

func (s *Store) persistLocked() error {
	return s.state.SaveJSON(profileKey, s.profile)
}
