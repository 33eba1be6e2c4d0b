package domain

// SortOrder is the list ordering accepted by the backend.
type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// Valid reports whether s is asc or desc.
func (s SortOrder) Valid() bool {
	return s == SortAsc || s == SortDesc
}

// ListQuery is the full set of list parameters owned by one paginated list.
// ParentID scopes the query (e.g. a project id); Filters carries the
// resource-specific filters and must be comparable so changes can be detected.
type ListQuery[F comparable] struct {
	ParentID  string
	Page      int
	PageSize  int
	Search    string
	SortOrder SortOrder
	Filters   F
}

// SameExceptPage reports whether q and o differ at most in Page.
func (q ListQuery[F]) SameExceptPage(o ListQuery[F]) bool {
	q.Page = o.Page
	return q == o
}

// ListResult is one page of items plus pagination metadata.
// It is replaced wholesale on every fetch.
type ListResult[T any] struct {
	Items       []T  `json:"items"`
	TotalCount  int  `json:"total_count"`
	Page        int  `json:"page"`
	PageSize    int  `json:"page_size"`
	TotalPages  int  `json:"total_pages"`
	HasNext     bool `json:"has_next"`
	HasPrevious bool `json:"has_previous"`
}

// NewListResult builds a ListResult and derives the page math from totalCount and pageSize.
// TotalPages is ceiling(totalCount / pageSize); if pageSize is 0, TotalPages is 0.
func NewListResult[T any](items []T, totalCount, page, pageSize int) ListResult[T] {
	if items == nil {
		items = []T{}
	}
	if page < 1 {
		page = 1
	}
	totalPages := 0
	if pageSize > 0 {
		totalPages = (totalCount + pageSize - 1) / pageSize
	}
	return ListResult[T]{
		Items:       items,
		TotalCount:  totalCount,
		Page:        page,
		PageSize:    pageSize,
		TotalPages:  totalPages,
		HasNext:     page < totalPages,
		HasPrevious: page > 1,
	}
}

// FetchStatus is the state of a paginated list.
type FetchStatus string

const (
	StatusIdle    FetchStatus = "idle"
	StatusLoading FetchStatus = "loading"
	StatusReady   FetchStatus = "ready"
	StatusError   FetchStatus = "error"
)

// ListState is the observable state of a paginated list.
// Data is nil before the first successful fetch and while no parent is set.
// Error is empty unless the last fetch failed and was not recovered.
type ListState[T any] struct {
	Status      FetchStatus `json:"status"`
	Data        []T         `json:"data"`
	Loading     bool        `json:"loading"`
	Error       string      `json:"error,omitempty"`
	TotalCount  int         `json:"total_count"`
	Page        int         `json:"page"`
	PageSize    int         `json:"page_size"`
	TotalPages  int         `json:"total_pages"`
	HasNext     bool        `json:"has_next"`
	HasPrevious bool        `json:"has_previous"`
}

// ListParams is a partial update to a list query, as received from a caller.
// Nil fields are left unchanged; a non-nil empty string clears that filter.
type ListParams struct {
	Page      *int
	PageSize  *int
	Search    *string
	SortOrder *SortOrder
	Status    *string
	Priority  *string
	Category  *string
	TestCase  *string
	Refresh   bool
}
