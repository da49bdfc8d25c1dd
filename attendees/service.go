// Package attendees provides access to the attendee list and detail
// endpoints, and writes downloaded detail snapshots.
package attendees

import (
	"context"
	"fmt"

	apperrors "github.com/jrsteele09/go-webinar-sync/internal/errors"
	"github.com/jrsteele09/go-webinar-sync/internal/httpapi"
	"github.com/jrsteele09/go-webinar-sync/paging"
)

// Service calls the attendee endpoints of the remote API.
type Service struct {
	client  *httpapi.Client
	baseURL string
}

// NewService creates an attendee Service.
func NewService(client *httpapi.Client, baseURL string) *Service {
	return &Service{client: client, baseURL: baseURL}
}

// GetAll fetches every attendee participation of a webinar across all pages.
func (s *Service) GetAll(ctx context.Context, organizerKey, webinarKey string, pageSize int, accessToken string) ([]Participation, error) {
	return paging.FetchAll(func(page, size int) (paging.Page[Participation], error) {
		requestURL := fmt.Sprintf("%s/organizers/%s/webinars/%s/attendees?page=%d&size=%d",
			s.baseURL, organizerKey, webinarKey, page, size)

		var response ListResponse
		if err := s.client.Get(ctx, requestURL, accessToken, &response); err != nil {
			return paging.Page[Participation]{}, err
		}
		if response.Embedded == nil || response.Embedded.AttendeeParticipationResponses == nil {
			return paging.Page[Participation]{}, nil
		}
		if response.Page == nil {
			return paging.Page[Participation]{}, apperrors.Wrapf(apperrors.ErrRemoteAPI, "attendee list response missing page block")
		}
		return paging.Page[Participation]{
			Items:      response.Embedded.AttendeeParticipationResponses,
			TotalPages: response.Page.TotalPages,
		}, nil
	}, pageSize)
}

// GetDetail fetches the detail record of one attendee within a session.
func (s *Service) GetDetail(ctx context.Context, organizerKey, webinarKey, sessionKey, registrantKey, accessToken string) (*Detail, error) {
	requestURL := fmt.Sprintf("%s/organizers/%s/webinars/%s/sessions/%s/attendees/%s",
		s.baseURL, organizerKey, webinarKey, sessionKey, registrantKey)

	var detail Detail
	if err := s.client.Get(ctx, requestURL, accessToken, &detail); err != nil {
		return nil, err
	}
	return &detail, nil
}
