package registrants

// ListResponse is one page of the registrant list endpoint. Unlike the
// webinar and attendee lists this endpoint reports flat paging fields
// instead of an embedded page block.
type ListResponse struct {
	Data     []Registrant `json:"data"`
	Total    int          `json:"total"`
	Page     int          `json:"page"`
	Limit    int          `json:"limit"`
	PageSize int          `json:"pageSize"`
}

// Registrant is one entry of the registrant list. The detail endpoint
// returns the richer Detail shape; the two are distinct types because their
// field sets differ.
type Registrant struct {
	RegistrantKey    int64  `json:"registrantKey"`
	FirstName        string `json:"firstName"`
	LastName         string `json:"lastName"`
	Email            string `json:"email"`
	RegistrationDate string `json:"registrationDate"`
	Status           string `json:"status"` // APPROVED, WAITING, DENIED
	JoinURL          string `json:"joinUrl"`
	TimeZone         string `json:"timeZone"`
}

// NewRegistrant is the request body for registrant creation.
type NewRegistrant struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Phone     string `json:"phone,omitempty"`
	Source    string `json:"source,omitempty"`
}

// CreateResponse is the registrant creation response.
type CreateResponse struct {
	RegistrantKey int64  `json:"registrantKey"`
	JoinURL       string `json:"joinUrl"`
	Status        string `json:"status"`
	Asset         bool   `json:"asset"`
}

// Detail is the registrant detail record.
type Detail struct {
	RegistrantKey    int64  `json:"registrantKey"`
	FirstName        string `json:"firstName"`
	LastName         string `json:"lastName"`
	Email            string `json:"email"`
	RegistrationDate string `json:"registrationDate"`
	Status           string `json:"status"`
	JoinURL          string `json:"joinUrl"`
	TimeZone         string `json:"timeZone"`

	Source                  string `json:"source,omitempty"`
	Phone                   string `json:"phone,omitempty"`
	State                   string `json:"state,omitempty"`
	City                    string `json:"city,omitempty"`
	Organization            string `json:"organization,omitempty"`
	ZipCode                 string `json:"zipCode,omitempty"`
	NumberOfEmployees       string `json:"numberOfEmployees,omitempty"`
	Industry                string `json:"industry,omitempty"`
	JobTitle                string `json:"jobTitle,omitempty"`
	PurchasingRole          string `json:"purchasingRole,omitempty"`
	ImplementationTimeFrame string `json:"implementationTimeFrame,omitempty"`
	PurchasingTimeFrame     string `json:"purchasingTimeFrame,omitempty"`
	QuestionsAndComments    string `json:"questionsAndComments,omitempty"`
	EmployeeCount           string `json:"employeeCount,omitempty"`
	Country                 string `json:"country,omitempty"`
	Address                 string `json:"address,omitempty"`

	Type         string         `json:"type,omitempty"` // LATE, REGULAR
	Unsubscribed *bool          `json:"unsubscribed,omitempty"`
	Responses    []CustomAnswer `json:"responses,omitempty"`
}

// CustomAnswer is one custom registration question and its answer.
type CustomAnswer struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}
