package form

import (
	"time"

	"github.com/jwalitptl/hospital-console/internal/model"
)

// AppointmentDoctors are the doctors offered by the appointment modal.
var AppointmentDoctors = []string{
	"Dr. Sarah Johnson",
	"Dr. Michael Chen",
	"Dr. Emily Rodriguez",
	"Dr. James Wilson",
}

type AppointmentDraft struct {
	PatientName string                  `form:"patientName" label:"Patient Name" validate:"required"`
	DoctorName  string                  `form:"doctorName" label:"Doctor" validate:"required"`
	Date        string                  `form:"date" label:"Date" validate:"required,datetime=2006-01-02"`
	Time        string                  `form:"time" label:"Time" validate:"required,timeslot"`
	Type        string                  `form:"type" label:"Type" validate:"required,appointment_type"`
	Status      model.AppointmentStatus `form:"status" label:"Status" validate:"required,appointment_status"`
}

func NewAppointmentDraft(today time.Time) AppointmentDraft {
	return AppointmentDraft{
		Date:   today.Format(model.DateLayout),
		Time:   "10:00",
		Type:   "Consultation",
		Status: model.AppointmentStatusScheduled,
	}
}

func AppointmentDraftFrom(a model.Appointment) AppointmentDraft {
	return AppointmentDraft{
		PatientName: a.PatientName,
		DoctorName:  a.DoctorName,
		Date:        a.Date,
		Time:        a.Time,
		Type:        a.Type,
		Status:      a.Status,
	}
}

func (d AppointmentDraft) Appointment() model.Appointment {
	return model.Appointment{
		PatientName: d.PatientName,
		DoctorName:  d.DoctorName,
		Date:        d.Date,
		Time:        d.Time,
		Type:        d.Type,
		Status:      d.Status,
	}
}

func AppointmentFields(Mode) []FieldSpec {
	slots := make([]Option, len(model.TimeSlots))
	for i, s := range model.TimeSlots {
		t, _ := time.Parse("15:04", s)
		slots[i] = Option{Value: s, Label: t.Format("3:04 PM")}
	}
	return []FieldSpec{
		{Name: "patientName", Label: "Patient Name", Kind: KindText, Required: true},
		{Name: "doctorName", Label: "Doctor", Kind: KindSelect, Required: true, Options: options(AppointmentDoctors)},
		{Name: "date", Label: "Date", Kind: KindDate, Required: true},
		{Name: "time", Label: "Time", Kind: KindSelect, Required: true, Options: slots},
		{Name: "type", Label: "Type", Kind: KindSelect, Required: true, Options: options(model.AppointmentTypes)},
		{Name: "status", Label: "Status", Kind: KindSelect, Required: true, Options: options(model.AppointmentStatuses)},
	}
}
