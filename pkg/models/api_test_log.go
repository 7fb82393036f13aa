package models

import (
	"time"

	"github.com/google/uuid"
)

// ApiTestLog records a single test execution against a cataloged endpoint.
// Logs are insert-only; there is no update or delete.
type ApiTestLog struct {
	ID            uuid.UUID `json:"id"`
	EndpointID    uuid.UUID `json:"endpoint_id"`
	RequestMethod string    `json:"request_method,omitempty"`
	RequestPath   string    `json:"request_path,omitempty"`
	RequestBody   string    `json:"request_body,omitempty"`
	ResponseBody  string    `json:"response_body,omitempty"`
	ExecutedAt    time.Time `json:"executed_at"`
}
