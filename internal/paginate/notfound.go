package paginate

import (
	"errors"
	"net/http"
	"strings"

	"bugninjaplatform/internal/domain"
)

// NotFoundKind classifies a failed list fetch.
type NotFoundKind int

const (
	// NotFoundNone is any failure that is not a 404.
	NotFoundNone NotFoundKind = iota
	// NotFoundParent means the scoping project no longer exists.
	NotFoundParent
	// NotFoundStale means some other referenced resource (e.g. a test case filter) is gone.
	NotFoundStale
)

func (k NotFoundKind) String() string {
	switch k {
	case NotFoundParent:
		return "parent"
	case NotFoundStale:
		return "stale"
	default:
		return "none"
	}
}

// ClassifyNotFound inspects a fetch error for the backend's "not found" wording.
//
// The backend has no structured code for this, so the match is on the detail text:
// a 404 naming a project and "not found" is NotFoundParent, any other 404 mentioning
// "not found" is NotFoundStale. Everything else, including a 404 with other wording,
// is NotFoundNone. Treat the result as best-effort.
func ClassifyNotFound(err error) NotFoundKind {
	var apiErr *domain.APIError
	if !errors.As(err, &apiErr) || apiErr.Status != http.StatusNotFound {
		return NotFoundNone
	}
	msg := strings.ToLower(apiErr.Message)
	if !strings.Contains(msg, "not found") {
		return NotFoundNone
	}
	if strings.Contains(msg, "project") {
		return NotFoundParent
	}
	return NotFoundStale
}
