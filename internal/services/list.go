package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"slices"

	"bugninjaplatform/internal/domain"
	"bugninjaplatform/internal/paginate"
)

// maxPageSize is the largest page the backend serves.
const maxPageSize = 100

// validateParams checks the fields common to every list.
func validateParams(params domain.ListParams) error {
	if params.Page != nil && *params.Page < 1 {
		return fmt.Errorf("%w: page must be at least 1", domain.ErrInvalidInput)
	}
	if params.PageSize != nil && (*params.PageSize < 1 || *params.PageSize > maxPageSize) {
		return fmt.Errorf("%w: page size must be between 1 and %d", domain.ErrInvalidInput, maxPageSize)
	}
	if params.SortOrder != nil && !params.SortOrder.Valid() {
		return fmt.Errorf("%w: sort order must be asc or desc", domain.ErrInvalidInput)
	}
	return nil
}

func validateOneOf(field string, value *string, allowed ...string) error {
	if value == nil || *value == "" || slices.Contains(allowed, *value) {
		return nil
	}
	return fmt.Errorf("%w: unknown %s %q", domain.ErrInvalidInput, field, *value)
}

// listState applies params to p as one update and returns the resulting state.
// With nothing to change it loads once, or refetches when params.Refresh is set.
func listState[T any, F comparable](ctx context.Context, p *paginate.Paginator[T, F], params domain.ListParams, filters func(f *F)) domain.ListState[T] {
	apply := func(q *domain.ListQuery[F]) {
		if params.Page != nil {
			q.Page = *params.Page
		}
		if params.PageSize != nil {
			q.PageSize = *params.PageSize
		}
		if params.Search != nil {
			q.Search = *params.Search
		}
		if params.SortOrder != nil {
			q.SortOrder = *params.SortOrder
		}
		if filters != nil {
			filters(&q.Filters)
		}
	}

	current := p.Query()
	next := current
	apply(&next)
	switch {
	case next != current:
		return p.Update(ctx, apply)
	case params.Refresh:
		return p.Refetch(ctx)
	default:
		return p.Load(ctx)
	}
}

// pageFetcher adapts a backend list call to a paginate.Fetcher, mapping every item with conv.
func pageFetcher[B, T any, F comparable](
	list func(ctx context.Context, q domain.ListQuery[F]) (*domain.BackendPage[B], error),
	conv func(B) T,
) paginate.Fetcher[T, F] {
	return func(ctx context.Context, q domain.ListQuery[F]) (domain.ListResult[T], error) {
		page, err := list(ctx, q)
		if err != nil {
			return domain.ListResult[T]{}, err
		}
		items := make([]T, 0, len(page.Items))
		for _, it := range page.Items {
			items = append(items, conv(it))
		}
		pageNo, pageSize := q.Page, q.PageSize
		if page.Page > 0 {
			pageNo = page.Page
		}
		if page.PageSize > 0 {
			pageSize = page.PageSize
		}
		return domain.NewListResult(items, page.TotalCount, pageNo, pageSize), nil
	}
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}

func prepend[T any](item T) func([]T) []T {
	return func(items []T) []T {
		return append([]T{item}, items...)
	}
}

func replaceWhere[T any](match func(T) bool, item T) func([]T) []T {
	return func(items []T) []T {
		for i := range items {
			if match(items[i]) {
				items[i] = item
			}
		}
		return items
	}
}

func removeWhere[T any](match func(T) bool) func([]T) []T {
	return func(items []T) []T {
		return slices.DeleteFunc(items, match)
	}
}

func orDiscard(logger *slog.Logger) *slog.Logger {
	if logger == nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return logger
}
