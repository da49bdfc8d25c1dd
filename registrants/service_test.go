package registrants_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/require"

	apperrors "github.com/jrsteele09/go-webinar-sync/internal/errors"
	"github.com/jrsteele09/go-webinar-sync/internal/httpapi"
	"github.com/jrsteele09/go-webinar-sync/internal/utils"
	"github.com/jrsteele09/go-webinar-sync/registrants"
)

func newService(serverURL string) *registrants.Service {
	return registrants.NewService(httpapi.NewClient(5*time.Second), serverURL)
}

func TestGetAllDerivesPageCountFromTheFlatTotal(t *testing.T) {
	const perPage = 2
	const total = 5
	var pagesServed []int

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/organizers/org-1/webinars/w-1/registrants", r.URL.Path)

		page, err := strconv.Atoi(r.URL.Query().Get("page"))
		require.NoError(t, err)
		pagesServed = append(pagesServed, page)

		start := page * perPage
		count := perPage
		if start+count > total {
			count = total - start
		}
		data := make([]registrants.Registrant, 0, count)
		for i := 0; i < count; i++ {
			data = append(data, registrants.Registrant{RegistrantKey: int64(start + i + 1)})
		}

		w.Header().Set("Content-Type", "application/json")
		require.NoError(t, json.NewEncoder(w).Encode(registrants.ListResponse{
			Data:  data,
			Total: total,
			Page:  page,
			Limit: perPage,
		}))
	}))
	defer server.Close()

	all, err := newService(server.URL).GetAll(context.Background(), "org-1", "w-1", perPage, "access-token")
	require.NoError(t, err)
	require.Len(t, all, total)
	require.Equal(t, []int{0, 1, 2}, pagesServed)
}

func TestGetAllStopsOnEmptyData(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		require.NoError(t, json.NewEncoder(w).Encode(registrants.ListResponse{Total: 0}))
	}))
	defer server.Close()

	all, err := newService(server.URL).GetAll(context.Background(), "org-1", "w-1", 100, "access-token")
	require.NoError(t, err)
	require.Empty(t, all)
}

func TestGetDetailAddressesTheRegistrantByKey(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/organizers/org-1/webinars/w-1/registrants/9000000042", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		require.NoError(t, json.NewEncoder(w).Encode(registrants.Detail{
			RegistrantKey: 9000000042,
			Email:         "ada@example.com",
			Unsubscribed:  utils.Ptr(true),
		}))
	}))
	defer server.Close()

	detail, err := newService(server.URL).GetDetail(context.Background(), "org-1", "w-1", 9000000042, "access-token")
	require.NoError(t, err)
	require.Equal(t, int64(9000000042), detail.RegistrantKey)
	require.Equal(t, "ada@example.com", detail.Email)
	require.True(t, utils.Value(detail.Unsubscribed))
}

func TestCreateSuppressesTheConfirmationMail(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "false", r.URL.Query().Get("resendConfirmation"))

		var body registrants.NewRegistrant
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Equal(t, "web_campaign", body.Source)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		require.NoError(t, json.NewEncoder(w).Encode(registrants.CreateResponse{
			RegistrantKey: 77,
			Status:        "APPROVED",
		}))
	}))
	defer server.Close()

	response, err := newService(server.URL).Create(context.Background(), "org-1", "w-1", registrants.NewRegistrant{
		FirstName: "Ada",
		LastName:  "Lovelace",
		Email:     "ada@example.com",
		Source:    "web_campaign",
	}, "access-token")
	require.NoError(t, err)
	require.Equal(t, int64(77), response.RegistrantKey)
}

func TestCreateValidatesItsInput(t *testing.T) {
	service := newService("http://unused.invalid")

	_, err := service.Create(context.Background(), "", "w-1", registrants.NewRegistrant{
		FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.com",
	}, "access-token")
	require.ErrorIs(t, err, apperrors.ErrInvalidArgument)

	_, err = service.Create(context.Background(), "org-1", "w-1", registrants.NewRegistrant{
		FirstName: "Ada", LastName: "Lovelace",
	}, "access-token")
	require.ErrorIs(t, err, apperrors.ErrInvalidArgument)
}
