package webinars

// ListResponse is the webinar list endpoint response. The detail endpoint
// returns a bare Webinar; the two shapes are kept distinct on purpose.
type ListResponse struct {
	Embedded *Embedded `json:"_embedded"`
	Page     *Page     `json:"page"`
}

// Embedded wraps the webinar collection of a list page.
type Embedded struct {
	Webinars []Webinar `json:"webinars"`
}

// Webinar is one scheduled webinar. A webinar can own several time slots;
// selection and ordering in the pipeline use the earliest slot end time.
type Webinar struct {
	WebinarKey      string     `json:"webinarKey"`
	WebinarID       string     `json:"webinarId"`
	Subject         string     `json:"subject"`
	Description     string     `json:"description"`
	OrganizerKey    string     `json:"organizerKey"`
	Omid            string     `json:"omid"`
	Times           []TimeSlot `json:"times"`
	RegistrationURL string     `json:"registrationUrl"`
	TimeZone        string     `json:"timeZone"`
	Locale          string     `json:"locale"`
	Impromptu       bool       `json:"impromptu"`
}

// TimeSlot is a single scheduled session window.
type TimeSlot struct {
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

// Page is the paging metadata of a list response.
type Page struct {
	Size          int `json:"size"`
	TotalElements int `json:"totalElements"`
	TotalPages    int `json:"totalPages"`
	Number        int `json:"number"`
}
