package api

import "encoding/json"

// StatusSuccess and StatusError are the two envelope statuses the backend emits.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Envelope is the wrapper every backend response body follows.
type Envelope struct {
	Status     string          `json:"status"`
	StatusCode int             `json:"statusCode"`
	Message    string          `json:"message"`
	Payload    json.RawMessage `json:"payload"`
}
