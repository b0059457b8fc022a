package jobs

import (
	"encoding/json"

	"github.com/go-playground/validator/v10"
)

// Application methods a listing can declare.
const (
	ApplyInternal = "internal"
	ApplyExternal = "external"
)

// Listing is one job posting, immutable once fetched.
type Listing struct {
	ID                string   `json:"id"`
	Title             string   `json:"title"`
	Description       string   `json:"description"`
	Company           string   `json:"company"`
	EmploymentType    string   `json:"employmentType,omitempty"`
	SkillsRequired    []string `json:"skillsRequired,omitempty"`
	SkillLevel        string   `json:"skillLevel,omitempty"`
	ApplicationMethod string   `json:"applicationMethod,omitempty"`
	ApplicationLink   string   `json:"applicationLink,omitempty"`
	PostedBy          string   `json:"postedBy,omitempty"`
	CreatedAt         string   `json:"createdAt,omitempty"`
}

// UnmarshalJSON normalizes the backend's `_id` into ID so every listing
// carries one stable identifier.
func (l *Listing) UnmarshalJSON(data []byte) error {
	type alias Listing
	aux := struct {
		*alias
		MongoID string `json:"_id"`
	}{alias: (*alias)(l)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if l.ID == "" {
		l.ID = aux.MongoID
	}
	return nil
}

// ApplicationForm is the payload for an internal application. ResumePath
// is local; when set, the request is sent as multipart with the file
// attached.
type ApplicationForm struct {
	Name        string `json:"name" validate:"required,min=1"`
	Email       string `json:"email" validate:"required,email"`
	CoverLetter string `json:"coverLetter,omitempty"`
	ResumePath  string `json:"-"`
}

// Validate validates the ApplicationForm using the validator.
func (f *ApplicationForm) Validate() error {
	validate := validator.New()
	return validate.Struct(f)
}
