package model

// DateLayout is the calendar-date format used by every date field.
const DateLayout = "2006-01-02"

type Gender string

const (
	GenderMale   Gender = "Male"
	GenderFemale Gender = "Female"
	GenderOther  Gender = "Other"
)

var Genders = []Gender{GenderMale, GenderFemale, GenderOther}

type BloodType string

var BloodTypes = []BloodType{"A+", "A-", "B+", "B-", "AB+", "AB-", "O+", "O-"}

type PatientStatus string

const (
	PatientStatusActive   PatientStatus = "Active"
	PatientStatusInactive PatientStatus = "Inactive"
)

var PatientStatuses = []PatientStatus{PatientStatusActive, PatientStatusInactive}

// Patient is kept only in the session's local store; there is no backend
// persistence for it.
type Patient struct {
	ID        int64         `json:"id"`
	Name      string        `json:"name"`
	Email     string        `json:"email"`
	Phone     string        `json:"phone"`
	Age       int           `json:"age"`
	Gender    Gender        `json:"gender"`
	BloodType BloodType     `json:"bloodType"`
	LastVisit string        `json:"lastVisit"`
	Status    PatientStatus `json:"status"`
}

func (p Patient) EntityID() int64 { return p.ID }

func (p Patient) WithID(id int64) Patient {
	p.ID = id
	return p
}
