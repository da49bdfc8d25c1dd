package leads_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jrsteele09/go-webinar-sync/leads"
	"github.com/jrsteele09/go-webinar-sync/registrants"
	"github.com/jrsteele09/go-webinar-sync/webinars"
)

func TestFindTargetWebinarMatchesOnDestinationKey(t *testing.T) {
	available := []webinars.Webinar{
		{WebinarKey: "w1", Subject: "first"},
		{WebinarKey: "w2", Subject: "second"},
	}

	lead := leads.Lead{ContactID: "c1", DestinationWebinarKey: "w2"}
	target := leads.FindTargetWebinar(lead, available)
	require.NotNil(t, target)
	require.Equal(t, "second", target.Subject)
}

func TestFindTargetWebinarWithoutMatch(t *testing.T) {
	available := []webinars.Webinar{{WebinarKey: "w1"}}
	lead := leads.Lead{ContactID: "c1", DestinationWebinarKey: "w9"}
	require.Nil(t, leads.FindTargetWebinar(lead, available))
}

func TestRegistrantExistsIsCaseSensitive(t *testing.T) {
	existing := []registrants.Registrant{
		{Email: "Ada@Example.com"},
		{Email: "bob@example.com"},
	}

	require.True(t, leads.RegistrantExists(existing, "bob@example.com"))
	require.True(t, leads.RegistrantExists(existing, "Ada@Example.com"))
	require.False(t, leads.RegistrantExists(existing, "ada@example.com"))
	require.False(t, leads.RegistrantExists(existing, "carol@example.com"))
}

func TestRegistrantExistsWithEmptyList(t *testing.T) {
	require.False(t, leads.RegistrantExists(nil, "anyone@example.com"))
}
