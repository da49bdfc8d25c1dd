// Package paging aggregates page-based list endpoints into a single slice.
package paging

import (
	apperrors "github.com/jrsteele09/go-webinar-sync/internal/errors"
)

const (
	// MaxPageSize is the page size cap the API enforces on list endpoints.
	MaxPageSize = 200

	// MaxPages bounds the total number of page requests in one FetchAll.
	// The server-declared totalPages is re-read from every response and is
	// allowed to move, so without a cap a misbehaving server could keep the
	// loop alive forever.
	MaxPages = 1000
)

// Page is one page of a list response.
type Page[T any] struct {
	Items      []T
	TotalPages int
}

// RequestFunc fetches one page of size items.
type RequestFunc[T any] func(page, size int) (Page[T], error)

// FetchAll walks every page of a list endpoint starting at page 0 and
// returns the concatenated items. A page with no item collection ends the
// walk without error; the endpoint reports "no data" that way. totalPages is
// taken from each response rather than cached from the first, tolerating a
// result set that grows while the walk is in progress.
func FetchAll[T any](request RequestFunc[T], size int) ([]T, error) {
	if size <= 0 || size > MaxPageSize {
		return nil, apperrors.Wrapf(apperrors.ErrInvalidArgument, "page size %d must be in 1..%d", size, MaxPageSize)
	}

	var all []T
	page := 0
	totalPages := 1

	for page < totalPages {
		if page >= MaxPages {
			return nil, apperrors.Wrapf(apperrors.ErrPageLimit, "aborted after %d pages", page)
		}

		response, err := request(page, size)
		if err != nil {
			return nil, err
		}
		if response.Items == nil {
			break
		}

		all = append(all, response.Items...)
		totalPages = response.TotalPages
		page++
	}

	return all, nil
}
