package model

type AppointmentStatus string

const (
	AppointmentStatusScheduled AppointmentStatus = "Scheduled"
	AppointmentStatusConfirmed AppointmentStatus = "Confirmed"
	AppointmentStatusCompleted AppointmentStatus = "Completed"
	AppointmentStatusCancelled AppointmentStatus = "Cancelled"
)

var AppointmentStatuses = []AppointmentStatus{
	AppointmentStatusScheduled,
	AppointmentStatusConfirmed,
	AppointmentStatusCompleted,
	AppointmentStatusCancelled,
}

var AppointmentTypes = []string{"Consultation", "Follow-up", "Check-up", "Emergency", "Surgery"}

// TimeSlots are the bookable start times.
var TimeSlots = []string{
	"09:00", "09:30", "10:00", "10:30", "11:00", "11:30",
	"14:00", "14:30", "15:00", "15:30",
}

// Appointment lives only in the session's local store.
type Appointment struct {
	ID          int64             `json:"id"`
	PatientName string            `json:"patientName"`
	DoctorName  string            `json:"doctorName"`
	Date        string            `json:"date"`
	Time        string            `json:"time"`
	Type        string            `json:"type"`
	Status      AppointmentStatus `json:"status"`
}

func (a Appointment) EntityID() int64 { return a.ID }

func (a Appointment) WithID(id int64) Appointment {
	a.ID = id
	return a
}
