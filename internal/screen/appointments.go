package screen

import (
	"time"

	"github.com/jwalitptl/hospital-console/internal/form"
	"github.com/jwalitptl/hospital-console/internal/listing"
	"github.com/jwalitptl/hospital-console/internal/model"
	"github.com/jwalitptl/hospital-console/internal/repository"
)

func NewAppointmentScreen(repo repository.Repository[model.Appointment, model.Appointment], now func() time.Time) Screen {
	ctrl := listing.New(listing.Config[model.Appointment, model.Appointment]{
		Name:       "appointment",
		Repo:       repo,
		Searchable: func(a model.Appointment) []string { return []string{a.PatientName, a.DoctorName, a.Type} },
		Stats:      AppointmentStats,
	})
	return newEntityScreen(definition[model.Appointment, model.Appointment, form.AppointmentDraft]{
		meta: Meta{
			Name: "appointment", Title: "Appointments", Singular: "Appointment", Path: "/appointment",
			CreateTitle: "Schedule New Appointment", SearchHint: "Search by patient, doctor or type...",
		},
		columns: []string{"Patient", "Doctor", "Date", "Time", "Type", "Status"},
		row: func(a model.Appointment) Row {
			return Row{Label: a.PatientName + " with " + a.DoctorName, Cells: []Cell{
				{Text: a.PatientName},
				{Text: a.DoctorName},
				{Text: a.Date},
				{Text: a.Time},
				{Text: a.Type},
				{Text: string(a.Status), Badge: badge(string(a.Status))},
			}}
		},
		fields:    form.AppointmentFields,
		newDraft:  form.NewAppointmentDraft,
		draftFrom: form.AppointmentDraftFrom,
		payload:   func(d form.AppointmentDraft, _ model.Appointment) model.Appointment { return d.Appointment() },
	}, ctrl, now)
}

func AppointmentStats(items []model.Appointment) []listing.Stat {
	by := make(map[model.AppointmentStatus]int)
	for _, a := range items {
		by[a.Status]++
	}
	return []listing.Stat{
		{Title: "Total", Value: count(len(items))},
		{Title: "Scheduled", Value: count(by[model.AppointmentStatusScheduled])},
		{Title: "Completed", Value: count(by[model.AppointmentStatusCompleted])},
		{Title: "Cancelled", Value: count(by[model.AppointmentStatusCancelled])},
	}
}
