package domain

// Appointment statuses.
const (
	StatusBook   = "book"
	StatusCancel = "cancel"
)

// Wire layouts for generated dates and times.
const (
	DateLayout     = "2006-01-02"
	TimeLayout     = "15:04:05"
	DateTimeLayout = "2006-01-02 15:04:05"
)

// Appointment is a generated outpatient appointment. Values are immutable once
// created; the appointment cache hands out copies.
type Appointment struct {
	HN                  string     `json:"hn"`
	EncounterNumber     string     `json:"en"`
	DoctorID            string     `json:"doctorId,omitempty"`
	DoctorName          string     `json:"doctorName,omitempty"`
	AppointmentDatetime string     `json:"appointmentDatetime"`
	Comment             string     `json:"comment"`
	Status              string     `json:"status"`
	Location            []Location `json:"location"`
}

// Clone returns a copy that shares no slices with a.
func (a Appointment) Clone() Appointment {
	out := a
	out.Location = append([]Location(nil), a.Location...)
	return out
}

// ScheduleBlock is one recurring weekly clinic session of a doctor.
type ScheduleBlock struct {
	StartDate    string `json:"startDate"`
	EndDate      string `json:"endDate"`
	StartTime    string `json:"startTime"`
	EndTime      string `json:"endTime"`
	WeekDay      string `json:"weekDay"`
	LocationID   string `json:"locationId"`
	LocationName string `json:"locationName"`
}

// DoctorProfile is a randomly generated doctor with embedded schedule.
type DoctorProfile struct {
	DoctorID   string          `json:"doctorId"`
	DoctorName string          `json:"doctorName"`
	Gender     string          `json:"gender"`
	LicenseNo  string          `json:"licenseNo"`
	Specialty  string          `json:"specialty"`
	Photo      string          `json:"photo"`
	Location   []Location      `json:"location"`
	Schedule   []ScheduleBlock `json:"schedule"`
}

// StaffProfile is the fixed profile returned by a successful login.
// The "departmant" key is kept as clients already depend on it.
type StaffProfile struct {
	Code       string `json:"code"`
	FullNameTH string `json:"fullname_th"`
	FullNameEN string `json:"fullname_en"`
	Department string `json:"departmant"`
	Role       string `json:"role"`
}
