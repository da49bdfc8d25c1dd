package paging_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	apperrors "github.com/jrsteele09/go-webinar-sync/internal/errors"
	"github.com/jrsteele09/go-webinar-sync/paging"
)

// fakeEndpoint serves totalElements items of pageSize-sized pages and
// counts the calls it receives.
func fakeEndpoint(totalElements int) (paging.RequestFunc[int], *int) {
	calls := 0
	request := func(page, size int) (paging.Page[int], error) {
		calls++
		start := page * size
		if start >= totalElements {
			return paging.Page[int]{}, nil
		}
		end := start + size
		if end > totalElements {
			end = totalElements
		}
		items := make([]int, 0, end-start)
		for i := start; i < end; i++ {
			items = append(items, i)
		}
		totalPages := (totalElements + size - 1) / size
		return paging.Page[int]{Items: items, TotalPages: totalPages}, nil
	}
	return request, &calls
}

func TestFetchAllReturnsEveryElementInExactlyTotalPagesCalls(t *testing.T) {
	const totalElements = 450
	const pageSize = 200

	request, calls := fakeEndpoint(totalElements)
	items, err := paging.FetchAll(request, pageSize)
	require.NoError(t, err)

	require.Len(t, items, totalElements)
	require.Equal(t, 3, *calls) // ceil(450/200)
	for i, v := range items {
		require.Equal(t, i, v)
	}
}

func TestFetchAllSinglePage(t *testing.T) {
	request, calls := fakeEndpoint(5)
	items, err := paging.FetchAll(request, 200)
	require.NoError(t, err)
	require.Len(t, items, 5)
	require.Equal(t, 1, *calls)
}

func TestFetchAllStopsOnAbsentItemCollection(t *testing.T) {
	calls := 0
	items, err := paging.FetchAll(func(page, size int) (paging.Page[string], error) {
		calls++
		return paging.Page[string]{Items: nil, TotalPages: 99}, nil
	}, 50)
	require.NoError(t, err)
	require.Empty(t, items)
	require.Equal(t, 1, calls)
}

func TestFetchAllRejectsOversizedPage(t *testing.T) {
	called := false
	_, err := paging.FetchAll(func(page, size int) (paging.Page[int], error) {
		called = true
		return paging.Page[int]{}, nil
	}, paging.MaxPageSize+1)

	require.ErrorIs(t, err, apperrors.ErrInvalidArgument)
	require.False(t, called, "no network call may happen for an invalid size")
}

func TestFetchAllRejectsNonPositivePage(t *testing.T) {
	_, err := paging.FetchAll(func(page, size int) (paging.Page[int], error) {
		return paging.Page[int]{}, nil
	}, 0)
	require.ErrorIs(t, err, apperrors.ErrInvalidArgument)
}

func TestFetchAllCapsAMovingResultSet(t *testing.T) {
	// A server that always reports one more page than fetched would loop
	// forever without the safety bound.
	_, err := paging.FetchAll(func(page, size int) (paging.Page[int], error) {
		return paging.Page[int]{Items: []int{page}, TotalPages: page + 2}, nil
	}, 10)
	require.ErrorIs(t, err, apperrors.ErrPageLimit)
}

func TestFetchAllPropagatesRequestErrors(t *testing.T) {
	boom := apperrors.Wrapf(apperrors.ErrRemoteAPI, "status 500")
	_, err := paging.FetchAll(func(page, size int) (paging.Page[int], error) {
		return paging.Page[int]{}, boom
	}, 10)
	require.ErrorIs(t, err, apperrors.ErrRemoteAPI)
}

func TestFetchAllReReadsTotalPagesFromEveryResponse(t *testing.T) {
	// First response claims one page; second (fetched because the first
	// claimed two) raises the total, third closes it out.
	totals := []int{2, 3, 3}
	calls := 0
	items, err := paging.FetchAll(func(page, size int) (paging.Page[int], error) {
		total := totals[calls]
		calls++
		return paging.Page[int]{Items: []int{page}, TotalPages: total}, nil
	}, 10)
	require.NoError(t, err)
	require.Equal(t, []int{0, 1, 2}, items)
	require.Equal(t, 3, calls)
}
