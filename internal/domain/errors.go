package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors shared across services and handlers.
var (
	ErrNotFound          = errors.New("not found")
	ErrNoProjectSelected = errors.New("no project selected")
	ErrInvalidInput      = errors.New("invalid input")
)

// Transport error codes carried by APIError when no HTTP status was received.
// CodeCanceled marks a call abandoned because its context was canceled.
const (
	CodeTimeout      = "timeout"
	CodeNetworkError = "network_error"
	CodeCanceled     = "canceled"
)

// APIError is a failed call to the Bugninja backend.
// Status is zero for transport failures; Code is set for those instead.
type APIError struct {
	Status  int    `json:"status,omitempty"`
	Code    string `json:"code,omitempty"`
	Message string `json:"message"`
}

func (e *APIError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("bugninja api: status %d: %s", e.Status, e.Message)
	}
	if e.Code != "" {
		return fmt.Sprintf("bugninja api: %s: %s", e.Code, e.Message)
	}
	return "bugninja api: " + e.Message
}

// Is lets errors.Is(err, ErrNotFound) match a 404 from the backend.
func (e *APIError) Is(target error) bool {
	return target == ErrNotFound && e.Status == 404
}

// IsTimeout reports whether the call failed on the client-side deadline.
func (e *APIError) IsTimeout() bool {
	return e.Code == CodeTimeout
}

// AsAPIError unwraps err into an *APIError.
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}
