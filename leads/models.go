package leads

// Lead is an externally sourced contact record dropped into the inbox
// directory. ContactID is the dedup key for the upload ledger;
// DestinationWebinarKey names the webinar the lead should be registered on.
type Lead struct {
	ContactID             string `json:"contact_id"`
	FirstName             string `json:"firstName"`
	LastName              string `json:"lastName"`
	UserID                string `json:"userId"`
	Email                 string `json:"email"`
	Source                string `json:"source"`
	SubSource             string `json:"subSource"`
	DestinationWebinarKey string `json:"destination"`
}
