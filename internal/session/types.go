package session

import (
	"encoding/json"

	"github.com/go-playground/validator/v10"
)

// User is the authenticated identity as the backend reports it.
type User struct {
	ID        string `json:"id"`
	FirstName string `json:"firstname"`
	LastName  string `json:"lastname"`
	Email     string `json:"email"`
	Avatar    string `json:"avatar,omitempty"`
	Role      string `json:"role,omitempty"`
	Premium   bool   `json:"isPremiumUser,omitempty"`
}

// UnmarshalJSON normalizes the backend's `_id` into ID when the record
// does not carry a plain `id`.
func (u *User) UnmarshalJSON(data []byte) error {
	type alias User
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

// LoginRequest is the sign-in payload.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// RegisterRequest is the sign-up payload.
type RegisterRequest struct {
	FirstName string `json:"firstname" validate:"required,min=1"`
	LastName  string `json:"lastname" validate:"required,min=1"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=8"`
}

// ConfirmEmailRequest carries the emailed confirmation code.
type ConfirmEmailRequest struct {
	Email string `json:"email" validate:"required,email"`
	Code  string `json:"code" validate:"required"`
}

// ResetPasswordRequest completes a password reset flow.
type ResetPasswordRequest struct {
	Token    string `json:"token" validate:"required"`
	Password string `json:"password" validate:"required,min=8"`
}

// Validate validates the LoginRequest using the validator.
func (r *LoginRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the RegisterRequest using the validator.
func (r *RegisterRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the ConfirmEmailRequest using the validator.
func (r *ConfirmEmailRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the ResetPasswordRequest using the validator.
func (r *ResetPasswordRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// authPayload is the envelope payload shape shared by the sign-in,
// sign-up and confirm-email endpoints. The token key varies between
// deployments, so both spellings are accepted.
type authPayload struct {
	User        *User  `json:"user"`
	AccessToken string `json:"accessToken"`
	Token       string `json:"token"`
}

func (p *authPayload) token() string {
	if p.AccessToken != "" {
		return p.AccessToken
	}
	return p.Token
}
