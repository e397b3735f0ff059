package screen

import (
	"math"
	"strconv"
	"time"

	"github.com/jwalitptl/hospital-console/internal/form"
	"github.com/jwalitptl/hospital-console/internal/listing"
	"github.com/jwalitptl/hospital-console/internal/model"
	"github.com/jwalitptl/hospital-console/internal/repository"
)

func NewPatientScreen(repo repository.Repository[model.Patient, model.Patient], now func() time.Time) Screen {
	ctrl := listing.New(listing.Config[model.Patient, model.Patient]{
		Name:       "patient",
		Repo:       repo,
		Searchable: func(p model.Patient) []string { return []string{p.Name, p.Email, p.Phone} },
		Stats:      PatientStats,
	})
	return newEntityScreen(definition[model.Patient, model.Patient, form.PatientDraft]{
		meta: Meta{
			Name: "patient", Title: "Patients", Singular: "Patient", Path: "/patient",
			CreateTitle: "Add New Patient", SearchHint: "Search patients by name, email or phone...",
		},
		columns: []string{"Patient", "Contact", "Age/Gender", "Blood Type", "Last Visit", "Status"},
		row: func(p model.Patient) Row {
			return Row{Label: p.Name, Cells: []Cell{
				{Text: p.Name, Sub: "ID: " + strconv.FormatInt(p.ID, 10)},
				{Text: p.Email, Sub: p.Phone},
				{Text: strconv.Itoa(p.Age) + " years", Sub: string(p.Gender)},
				{Text: string(p.BloodType), Badge: "blood"},
				{Text: p.LastVisit},
				{Text: string(p.Status), Badge: badge(string(p.Status))},
			}}
		},
		fields:    form.PatientFields,
		newDraft:  form.NewPatientDraft,
		draftFrom: form.PatientDraftFrom,
		payload:   func(d form.PatientDraft, _ model.Patient) model.Patient { return d.Patient() },
	}, ctrl, now)
}

func PatientStats(items []model.Patient) []listing.Stat {
	var active, ages int
	for _, p := range items {
		if p.Status == model.PatientStatusActive {
			active++
		}
		ages += p.Age
	}
	avg := 0
	if len(items) > 0 {
		avg = int(math.Round(float64(ages) / float64(len(items))))
	}
	return []listing.Stat{
		{Title: "Total Patients", Value: count(len(items))},
		{Title: "Active Patients", Value: count(active)},
		{Title: "Avg. Age", Value: strconv.Itoa(avg)},
		{Title: "Inactive", Value: count(len(items) - active)},
	}
}
