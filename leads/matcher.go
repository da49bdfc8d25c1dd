package leads

import (
	"github.com/jrsteele09/go-webinar-sync/registrants"
	"github.com/jrsteele09/go-webinar-sync/webinars"
)

// FindTargetWebinar resolves the webinar a lead is destined for by exact
// key match. The first match wins; duplicates are not expected. Returns nil
// when no webinar in the fetched window carries the lead's destination key.
func FindTargetWebinar(lead Lead, available []webinars.Webinar) *webinars.Webinar {
	for i := range available {
		if available[i].WebinarKey == lead.DestinationWebinarKey {
			return &available[i]
		}
	}
	return nil
}

// RegistrantExists reports whether email already appears in the live
// registrant list. The comparison is case-sensitive and deliberately
// independent of the ledger: the ledger records downloaded history, while
// this check prevents duplicate uploads no matter when the existing
// registrant was created.
func RegistrantExists(existing []registrants.Registrant, email string) bool {
	for _, registrant := range existing {
		if registrant.Email == email {
			return true
		}
	}
	return false
}
