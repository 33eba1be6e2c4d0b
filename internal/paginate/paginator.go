// Package paginate holds the generic server-paginated list used for every
// dashboard resource: query state, fetch sequencing, and recovery from
// references that were deleted on the backend.
package paginate

import (
	"context"
	"io"
	"log/slog"
	"math"
	"slices"
	"sync"

	"bugninjaplatform/internal/domain"
	"bugninjaplatform/internal/metrics"
)

// DefaultPageSize is used when Config.PageSize is not positive.
const DefaultPageSize = 10

// Fetch outcomes recorded in metrics.
const (
	outcomeReady        = "ready"
	outcomeError        = "error"
	outcomeParentGone   = "parent_gone"
	outcomeChildCleared = "child_cleared"
	outcomeStaleDropped = "stale_dropped"
	outcomeCanceled     = "canceled"
)

// Fetcher loads one page for q. It must honour ctx cancellation.
type Fetcher[T any, F comparable] func(ctx context.Context, q domain.ListQuery[F]) (domain.ListResult[T], error)

// Config describes one paginated resource.
type Config[T any, F comparable] struct {
	// Resource labels metrics and logs, e.g. "test_cases".
	Resource string
	Fetch    Fetcher[T, F]

	PageSize  int
	SortOrder domain.SortOrder
	Filters   F

	// RequireParent keeps the list idle, without fetching, while ParentID is empty.
	RequireParent bool
	ParentID      string

	// ClearChild clears a child reference held in the filters (such as a test case id)
	// and reports whether one was set. It is used when a fetch 404s on a stale reference.
	ClearChild func(f *F) bool

	// OnParentGone runs, outside any lock, after a fetch found the parent deleted.
	OnParentGone func(ctx context.Context, parentID string)

	Metrics *metrics.Metrics
	Logger  *slog.Logger
}

// Paginator is the state machine behind one paginated list:
// Idle (no parent) -> Loading -> Ready | Error.
//
// Setters change the query and issue exactly one fetch when the query changed.
// Any change other than the page itself resets the page to 1. Each fetch gets a
// sequence number; starting a new fetch cancels the previous one, and only the
// latest fetch may commit its result.
type Paginator[T any, F comparable] struct {
	cfg Config[T, F]

	mu      sync.Mutex
	query   domain.ListQuery[F]
	state   domain.ListState[T]
	seq     uint64
	loaded  bool
	settled domain.FetchStatus
	cancel  context.CancelFunc
}

// New builds a paginator. Nothing is fetched until Load, Refetch or a setter runs.
func New[T any, F comparable](cfg Config[T, F]) *Paginator[T, F] {
	if cfg.PageSize < 1 {
		cfg.PageSize = DefaultPageSize
	}
	if !cfg.SortOrder.Valid() {
		cfg.SortOrder = domain.SortDesc
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	p := &Paginator[T, F]{
		cfg: cfg,
		query: domain.ListQuery[F]{
			ParentID:  cfg.ParentID,
			Page:      1,
			PageSize:  cfg.PageSize,
			SortOrder: cfg.SortOrder,
			Filters:   cfg.Filters,
		},
	}
	if p.needsParentLocked() {
		p.setIdleLocked()
	} else {
		p.state = domain.ListState[T]{Status: domain.StatusLoading, Loading: true, Page: 1, PageSize: cfg.PageSize}
		p.settled = domain.StatusLoading
	}
	return p
}

// State returns a snapshot of the current state.
func (p *Paginator[T, F]) State() domain.ListState[T] {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.snapshotLocked()
}

// Query returns the current query.
func (p *Paginator[T, F]) Query() domain.ListQuery[F] {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.query
}

// Load fetches the current query unless a fetch was already issued for it.
func (p *Paginator[T, F]) Load(ctx context.Context) domain.ListState[T] {
	p.mu.Lock()
	if p.loaded {
		st := p.snapshotLocked()
		p.mu.Unlock()
		return st
	}
	p.mu.Unlock()
	return p.run(ctx)
}

// Refetch re-issues the current query unconditionally.
func (p *Paginator[T, F]) Refetch(ctx context.Context) domain.ListState[T] {
	return p.run(ctx)
}

// pageUnset marks the page as untouched while Update runs fn.
const pageUnset = math.MinInt

// Update applies fn to a copy of the query. If anything but the page changed and
// fn did not set the page, the page is reset to 1. A changed query is fetched once;
// an unchanged one is fetched only if nothing was loaded yet.
func (p *Paginator[T, F]) Update(ctx context.Context, fn func(q *domain.ListQuery[F])) domain.ListState[T] {
	p.mu.Lock()
	prev := p.query
	next := prev
	next.Page = pageUnset
	fn(&next)
	pageSet := next.Page != pageUnset
	if !pageSet {
		next.Page = prev.Page
	}
	if next.Page < 1 {
		next.Page = 1
	}
	if next.PageSize < 1 {
		next.PageSize = prev.PageSize
	}
	if !next.SortOrder.Valid() {
		next.SortOrder = prev.SortOrder
	}
	if !pageSet && !next.SameExceptPage(prev) {
		next.Page = 1
	}
	if next == prev && p.loaded {
		st := p.snapshotLocked()
		p.mu.Unlock()
		return st
	}
	p.query = next
	p.mu.Unlock()
	return p.run(ctx)
}

// SetPage moves to page n (clamped to 1) without touching other fields.
func (p *Paginator[T, F]) SetPage(ctx context.Context, n int) domain.ListState[T] {
	return p.Update(ctx, func(q *domain.ListQuery[F]) { q.Page = n })
}

// SetPageSize changes the page size and returns to page 1.
func (p *Paginator[T, F]) SetPageSize(ctx context.Context, n int) domain.ListState[T] {
	return p.Update(ctx, func(q *domain.ListQuery[F]) { q.PageSize = n })
}

// SetSearch changes the search text and returns to page 1.
func (p *Paginator[T, F]) SetSearch(ctx context.Context, s string) domain.ListState[T] {
	return p.Update(ctx, func(q *domain.ListQuery[F]) { q.Search = s })
}

// SetSortOrder changes the ordering and returns to page 1. Invalid orders are ignored.
func (p *Paginator[T, F]) SetSortOrder(ctx context.Context, o domain.SortOrder) domain.ListState[T] {
	return p.Update(ctx, func(q *domain.ListQuery[F]) { q.SortOrder = o })
}

// SetParent rescopes the list. An empty id makes a parent-scoped list idle.
func (p *Paginator[T, F]) SetParent(ctx context.Context, parentID string) domain.ListState[T] {
	return p.Update(ctx, func(q *domain.ListQuery[F]) { q.ParentID = parentID })
}

// SetFilters changes resource filters and returns to page 1.
// Setting a filter field to its zero value clears it.
func (p *Paginator[T, F]) SetFilters(ctx context.Context, fn func(f *F)) domain.ListState[T] {
	return p.Update(ctx, func(q *domain.ListQuery[F]) { fn(&q.Filters) })
}

// Mutate replaces the loaded items with fn(items) without fetching, adjusting the
// total count by the change in length. It does nothing before the first successful load.
func (p *Paginator[T, F]) Mutate(fn func(items []T) []T) domain.ListState[T] {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.state.Data == nil {
		return p.snapshotLocked()
	}
	before := len(p.state.Data)
	items := fn(slices.Clone(p.state.Data))
	total := max(p.state.TotalCount+len(items)-before, 0)
	loading := p.state.Loading
	p.applyResultLocked(domain.NewListResult(items, total, p.state.Page, p.state.PageSize))
	if loading {
		p.state.Loading = true
		p.state.Status = domain.StatusLoading
	}
	return p.snapshotLocked()
}

func (p *Paginator[T, F]) run(ctx context.Context) domain.ListState[T] {
	p.mu.Lock()
	if p.needsParentLocked() {
		p.stopInFlightLocked()
		p.setIdleLocked()
		st := p.snapshotLocked()
		p.mu.Unlock()
		return st
	}
	p.stopInFlightLocked()
	p.seq++
	seq := p.seq
	q := p.query
	fetchCtx, cancel := context.WithCancel(ctx)
	p.cancel = cancel
	p.loaded = true
	p.state.Loading = true
	p.state.Status = domain.StatusLoading
	p.mu.Unlock()

	res, err := p.cfg.Fetch(fetchCtx, q)
	cancel()
	return p.finish(ctx, seq, res, err)
}

func (p *Paginator[T, F]) finish(ctx context.Context, seq uint64, res domain.ListResult[T], err error) domain.ListState[T] {
	p.mu.Lock()
	if seq != p.seq {
		st := p.snapshotLocked()
		p.mu.Unlock()
		p.record(outcomeStaleDropped)
		return st
	}
	p.cancel = nil

	if err == nil {
		p.applyResultLocked(res)
		st := p.snapshotLocked()
		p.mu.Unlock()
		p.record(outcomeReady)
		return st
	}

	if apiErr, ok := domain.AsAPIError(err); ok && apiErr.Code == domain.CodeCanceled {
		// The caller went away; the next Load fetches again.
		p.state.Status = p.settled
		p.state.Loading = p.settled == domain.StatusLoading
		p.loaded = false
		st := p.snapshotLocked()
		p.mu.Unlock()
		p.record(outcomeCanceled)
		return st
	}

	kind := ClassifyNotFound(err)
	if kind == NotFoundStale && p.cfg.ClearChild != nil && p.cfg.ClearChild(&p.query.Filters) {
		p.query.Page = 1
		p.mu.Unlock()
		p.record(outcomeChildCleared)
		p.cfg.Logger.Info("cleared stale filter reference", "resource", p.cfg.Resource, "err", err)
		return p.run(ctx)
	}
	if kind != NotFoundNone && p.query.ParentID != "" {
		// A stale 404 with no child filter to blame can only refer to the parent.
		parentID := p.query.ParentID
		p.applyResultLocked(domain.NewListResult[T](nil, 0, p.query.Page, p.query.PageSize))
		st := p.snapshotLocked()
		p.mu.Unlock()
		p.record(outcomeParentGone)
		p.cfg.Logger.Warn("list parent no longer exists", "resource", p.cfg.Resource, "parent_id", parentID)
		if p.cfg.OnParentGone != nil {
			p.cfg.OnParentGone(ctx, parentID)
		}
		return st
	}

	// Previous data stays visible next to the error.
	p.state.Loading = false
	p.state.Status = domain.StatusError
	p.state.Error = errorMessage(err)
	p.settled = domain.StatusError
	st := p.snapshotLocked()
	p.mu.Unlock()
	p.record(outcomeError)
	p.cfg.Logger.Error("list fetch failed", "resource", p.cfg.Resource, "err", err)
	return st
}

func (p *Paginator[T, F]) needsParentLocked() bool {
	return p.cfg.RequireParent && p.query.ParentID == ""
}

// stopInFlightLocked cancels any running fetch; its result will be dropped by sequence.
func (p *Paginator[T, F]) stopInFlightLocked() {
	if p.cancel != nil {
		p.cancel()
		p.cancel = nil
	}
	p.seq++
}

func (p *Paginator[T, F]) setIdleLocked() {
	p.loaded = false
	p.settled = domain.StatusIdle
	p.state = domain.ListState[T]{
		Status:   domain.StatusIdle,
		Page:     p.query.Page,
		PageSize: p.query.PageSize,
	}
}

func (p *Paginator[T, F]) applyResultLocked(res domain.ListResult[T]) {
	data := res.Items
	if data == nil {
		data = []T{}
	}
	p.settled = domain.StatusReady
	p.state = domain.ListState[T]{
		Status:      domain.StatusReady,
		Data:        data,
		TotalCount:  res.TotalCount,
		Page:        res.Page,
		PageSize:    res.PageSize,
		TotalPages:  res.TotalPages,
		HasNext:     res.HasNext,
		HasPrevious: res.HasPrevious,
	}
}

func (p *Paginator[T, F]) snapshotLocked() domain.ListState[T] {
	st := p.state
	st.Data = slices.Clone(p.state.Data)
	return st
}

func (p *Paginator[T, F]) record(outcome string) {
	if p.cfg.Metrics != nil {
		p.cfg.Metrics.RecordListFetch(p.cfg.Resource, outcome)
	}
}

func errorMessage(err error) string {
	if apiErr, ok := domain.AsAPIError(err); ok && apiErr.Message != "" {
		return apiErr.Message
	}
	return err.Error()
}
