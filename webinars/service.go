// Package webinars provides access to the webinar list and detail endpoints
// plus the helpers the pipeline needs to select and order webinars by their
// earliest slot end time.
package webinars

import (
	"context"
	"fmt"
	"net/url"
	"sort"
	"time"

	apperrors "github.com/jrsteele09/go-webinar-sync/internal/errors"
	"github.com/jrsteele09/go-webinar-sync/internal/httpapi"
	"github.com/jrsteele09/go-webinar-sync/paging"
)

// Service calls the webinar endpoints of the remote API.
type Service struct {
	client     *httpapi.Client
	baseURL    string
	accountKey string
}

// NewService creates a webinar Service.
func NewService(client *httpapi.Client, baseURL, accountKey string) *Service {
	return &Service{client: client, baseURL: baseURL, accountKey: accountKey}
}

// GetAll fetches every webinar in the [fromTime, toTime] window across all
// pages. fromTime and toTime are ISO-8601 UTC strings.
func (s *Service) GetAll(ctx context.Context, fromTime, toTime string, pageSize int, accessToken string) ([]Webinar, error) {
	return paging.FetchAll(func(page, size int) (paging.Page[Webinar], error) {
		requestURL := fmt.Sprintf("%s/accounts/%s/webinars?fromTime=%s&toTime=%s&page=%d&size=%d",
			s.baseURL, s.accountKey,
			url.QueryEscape(fromTime), url.QueryEscape(toTime), page, size)

		var response ListResponse
		if err := s.client.Get(ctx, requestURL, accessToken, &response); err != nil {
			return paging.Page[Webinar]{}, err
		}
		if response.Embedded == nil || response.Embedded.Webinars == nil {
			return paging.Page[Webinar]{}, nil
		}
		if response.Page == nil {
			return paging.Page[Webinar]{}, apperrors.Wrapf(apperrors.ErrRemoteAPI, "webinar list response missing page block")
		}
		return paging.Page[Webinar]{
			Items:      response.Embedded.Webinars,
			TotalPages: response.Page.TotalPages,
		}, nil
	}, pageSize)
}

// Get fetches the detail record of a single webinar.
func (s *Service) Get(ctx context.Context, organizerKey, webinarKey, accessToken string) (*Webinar, error) {
	requestURL := fmt.Sprintf("%s/organizers/%s/webinars/%s", s.baseURL, organizerKey, webinarKey)

	var webinar Webinar
	if err := s.client.Get(ctx, requestURL, accessToken, &webinar); err != nil {
		return nil, err
	}
	return &webinar, nil
}

// EarliestEndTime returns the earliest parseable slot end time of w.
// ok is false when no slot carries a parseable end time; such webinars are
// selected by neither download stage.
func EarliestEndTime(w Webinar) (earliest time.Time, ok bool) {
	for _, slot := range w.Times {
		endTime, err := time.Parse(time.RFC3339, slot.EndTime)
		if err != nil {
			continue
		}
		if !ok || endTime.Before(earliest) {
			earliest = endTime
			ok = true
		}
	}
	return earliest, ok
}

// SelectEnded returns the webinars whose earliest slot end time is strictly
// before now, sorted ascending by that end time. Complements SelectUpcoming.
func SelectEnded(all []Webinar, now time.Time) []Webinar {
	return selectSorted(all, func(end time.Time) bool { return end.Before(now) })
}

// SelectUpcoming returns the webinars whose earliest slot end time is at or
// after now, sorted ascending by that end time. A webinar ending exactly at
// now counts as upcoming.
func SelectUpcoming(all []Webinar, now time.Time) []Webinar {
	return selectSorted(all, func(end time.Time) bool { return !end.Before(now) })
}

func selectSorted(all []Webinar, keep func(end time.Time) bool) []Webinar {
	type keyed struct {
		webinar Webinar
		end     time.Time
	}

	selected := make([]keyed, 0, len(all))
	for _, w := range all {
		end, ok := EarliestEndTime(w)
		if !ok || !keep(end) {
			continue
		}
		selected = append(selected, keyed{webinar: w, end: end})
	}

	sort.SliceStable(selected, func(i, j int) bool {
		return selected[i].end.Before(selected[j].end)
	})

	result := make([]Webinar, 0, len(selected))
	for _, k := range selected {
		result = append(result, k.webinar)
	}
	return result
}
