package helpers

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"bugninjaplatform/internal/domain"
)

// ParseListParams reads the list query string into a partial update:
// page, page_size, search, sort_order, status, priority, category, test_case_id and refresh.
// Absent parameters stay nil; a present but empty filter clears it.
// Malformed numbers are rejected rather than defaulted.
func ParseListParams(r *http.Request) (domain.ListParams, error) {
	q := r.URL.Query()
	var p domain.ListParams

	var err error
	if p.Page, err = intParam(q.Get("page"), q.Has("page"), "page"); err != nil {
		return p, err
	}
	if p.PageSize, err = intParam(q.Get("page_size"), q.Has("page_size"), "page_size"); err != nil {
		return p, err
	}
	if q.Has("sort_order") {
		order := domain.SortOrder(strings.ToLower(q.Get("sort_order")))
		p.SortOrder = &order
	}
	p.Search = stringParam(q, "search")
	p.Status = stringParam(q, "status")
	p.Priority = stringParam(q, "priority")
	p.Category = stringParam(q, "category")
	p.TestCase = stringParam(q, "test_case_id")
	if q.Has("refresh") {
		p.Refresh, err = strconv.ParseBool(q.Get("refresh"))
		if err != nil {
			return p, fmt.Errorf("%w: refresh must be a boolean", domain.ErrInvalidInput)
		}
	}
	return p, nil
}

func intParam(s string, present bool, name string) (*int, error) {
	if !present {
		return nil, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %s must be an integer", domain.ErrInvalidInput, name)
	}
	return &v, nil
}

func stringParam(q map[string][]string, name string) *string {
	vals, ok := q[name]
	if !ok {
		return nil
	}
	v := ""
	if len(vals) > 0 {
		v = strings.TrimSpace(vals[0])
	}
	return &v
}
