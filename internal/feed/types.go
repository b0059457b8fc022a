package feed

import (
	"encoding/json"

	"github.com/go-playground/validator/v10"
)

// UserSummary is the embedded author record on a post.
type UserSummary struct {
	ID        string `json:"id"`
	FirstName string `json:"firstname"`
	LastName  string `json:"lastname"`
	Avatar    string `json:"avatar,omitempty"`
}

// UnmarshalJSON normalizes the backend's `_id` into ID.
func (u *UserSummary) UnmarshalJSON(data []byte) error {
	type alias UserSummary
	aux := struct {
		*alias
		MongoID string `json:"_id"`
	}{alias: (*alias)(u)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if u.ID == "" {
		u.ID = aux.MongoID
	}
	return nil
}

// Attachment is a pre-uploaded media reference on a post.
type Attachment struct {
	URL  string `json:"url"`
	Type string `json:"type"`
}

// Post is one community feed entry. Likes and comments are counted by
// list length; the client never adjusts them locally.
type Post struct {
	ID          string       `json:"id"`
	Author      *UserSummary `json:"author"`
	Content     string       `json:"content"`
	Type        string       `json:"type,omitempty"`
	Category    string       `json:"category,omitempty"`
	Likes       []string     `json:"likes"`
	Comments    []string     `json:"comments"`
	Attachments []Attachment `json:"attachments,omitempty"`
	CreatedAt   string       `json:"createdAt"`
}

// UnmarshalJSON normalizes the backend's `_id` into ID.
func (p *Post) UnmarshalJSON(data []byte) error {
	type alias Post
	aux := struct {
		*alias
		MongoID string `json:"_id"`
	}{alias: (*alias)(p)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if p.ID == "" {
		p.ID = aux.MongoID
	}
	return nil
}

// LikeCount is the number of users who liked the post.
func (p *Post) LikeCount() int { return len(p.Likes) }

// CommentCount is the number of comments on the post.
func (p *Post) CommentCount() int { return len(p.Comments) }

// CreatePostRequest is the payload for publishing a post.
type CreatePostRequest struct {
	Content     string       `json:"content" validate:"required,min=1"`
	Type        string       `json:"type,omitempty"`
	Category    string       `json:"category,omitempty"`
	Attachments []Attachment `json:"attachments,omitempty"`
}

// Validate validates the CreatePostRequest using the validator.
func (r *CreatePostRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}
