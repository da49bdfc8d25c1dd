package attendees

// ListResponse is the attendee list endpoint response.
type ListResponse struct {
	Embedded *Embedded `json:"_embedded"`
	Page     *Page     `json:"page"`
}

// Embedded wraps the attendee collection of a list page.
type Embedded struct {
	AttendeeParticipationResponses []Participation `json:"attendeeParticipationResponses"`
}

// Participation is one attendee's participation in one session. The
// registrant key space is only unique per webinar, which is why attendee
// ledger keys are scoped by webinar.
type Participation struct {
	RegistrantKey           string       `json:"registrantKey"`
	SessionKey              string       `json:"sessionKey"`
	Email                   string       `json:"email"`
	FirstName               string       `json:"firstName"`
	LastName                string       `json:"lastName"`
	AttendanceTimeInSeconds int          `json:"attendanceTimeInSeconds"`
	Attendance              []Attendance `json:"attendance"`
}

// Attendance is one join/leave interval.
type Attendance struct {
	JoinTime  string `json:"joinTime"`
	LeaveTime string `json:"leaveTime"`
}

// Page is the paging metadata of a list response.
type Page struct {
	Size          int `json:"size"`
	TotalElements int `json:"totalElements"`
	TotalPages    int `json:"totalPages"`
	Number        int `json:"number"`
}

// Detail is the attendee detail record.
type Detail struct {
	RegistrantKey    int64  `json:"registrantKey"`
	FirstName        string `json:"firstName"`
	LastName         string `json:"lastName"`
	Email            string `json:"email"`
	RegistrationDate string `json:"registrationDate"`
	Status           string `json:"status"`
	JoinURL          string `json:"joinUrl"`
	TimeZone         string `json:"timeZone"`
}
