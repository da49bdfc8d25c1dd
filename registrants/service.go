// Package registrants provides access to the registrant list, detail and
// create endpoints, and writes downloaded detail snapshots.
package registrants

import (
	"context"
	"fmt"
	"strconv"

	apperrors "github.com/jrsteele09/go-webinar-sync/internal/errors"
	"github.com/jrsteele09/go-webinar-sync/internal/httpapi"
	"github.com/jrsteele09/go-webinar-sync/paging"
)

// Service calls the registrant endpoints of the remote API.
type Service struct {
	client  *httpapi.Client
	baseURL string
}

// NewService creates a registrant Service.
func NewService(client *httpapi.Client, baseURL string) *Service {
	return &Service{client: client, baseURL: baseURL}
}

// GetAll fetches every registrant of a webinar across all pages.
func (s *Service) GetAll(ctx context.Context, organizerKey, webinarKey string, pageSize int, accessToken string) ([]Registrant, error) {
	return paging.FetchAll(func(page, size int) (paging.Page[Registrant], error) {
		requestURL := fmt.Sprintf("%s/organizers/%s/webinars/%s/registrants?page=%d&limit=%d",
			s.baseURL, organizerKey, webinarKey, page, size)

		var response ListResponse
		if err := s.client.Get(ctx, requestURL, accessToken, &response); err != nil {
			return paging.Page[Registrant]{}, err
		}
		if response.Data == nil {
			return paging.Page[Registrant]{}, nil
		}
		return paging.Page[Registrant]{
			Items:      response.Data,
			TotalPages: totalPages(response.Total, size),
		}, nil
	}, pageSize)
}

// GetDetail fetches the detail record of one registrant.
func (s *Service) GetDetail(ctx context.Context, organizerKey, webinarKey string, registrantKey int64, accessToken string) (*Detail, error) {
	requestURL := fmt.Sprintf("%s/organizers/%s/webinars/%s/registrants/%s",
		s.baseURL, organizerKey, webinarKey, strconv.FormatInt(registrantKey, 10))

	var detail Detail
	if err := s.client.Get(ctx, requestURL, accessToken, &detail); err != nil {
		return nil, err
	}
	return &detail, nil
}

// Create registers a new registrant on a webinar.
func (s *Service) Create(ctx context.Context, organizerKey, webinarKey string, registrant NewRegistrant, accessToken string) (*CreateResponse, error) {
	if organizerKey == "" || webinarKey == "" {
		return nil, apperrors.Wrapf(apperrors.ErrInvalidArgument, "organizer key and webinar key are required")
	}
	if registrant.FirstName == "" || registrant.LastName == "" || registrant.Email == "" {
		return nil, apperrors.Wrapf(apperrors.ErrInvalidArgument, "first name, last name and email are required")
	}

	requestURL := fmt.Sprintf("%s/organizers/%s/webinars/%s/registrants?resendConfirmation=false",
		s.baseURL, organizerKey, webinarKey)

	var response CreateResponse
	if err := s.client.Post(ctx, requestURL, accessToken, registrant, &response); err != nil {
		return nil, err
	}
	return &response, nil
}

// totalPages derives the page count from the flat total the registrant list
// endpoint reports.
func totalPages(total, size int) int {
	if total <= 0 {
		return 0
	}
	return (total + size - 1) / size
}
