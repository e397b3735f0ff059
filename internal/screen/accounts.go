package screen

import (
	"time"

	"github.com/jwalitptl/hospital-console/internal/form"
	"github.com/jwalitptl/hospital-console/internal/listing"
	"github.com/jwalitptl/hospital-console/internal/model"
	"github.com/jwalitptl/hospital-console/internal/repository"
)

var accountMeta = map[model.Role]Meta{
	model.RoleDoctor: {Name: "doctor", Title: "Doctors", Singular: "Doctor", Path: "/doctor", CreateTitle: "Add New Doctor", SearchHint: "Search doctors..."},
	model.RoleStaff:  {Name: "staff", Title: "Staff", Singular: "Staff Member", Path: "/staff", CreateTitle: "Add New Staff Member", SearchHint: "Search staff..."},
}

// NewAccountScreen manages the accounts of one role.
func NewAccountScreen(role model.Role, repo repository.Repository[model.Account, model.AccountInput], now func() time.Time) Screen {
	meta := accountMeta[role]
	ctrl := listing.New(listing.Config[model.Account, model.AccountInput]{
		Name:       meta.Name,
		Repo:       repo,
		Searchable: func(a model.Account) []string { return []string{a.Username} },
		Stats:      AccountStats,
	})
	return newEntityScreen(definition[model.Account, model.AccountInput, form.AccountDraft]{
		meta:    meta,
		columns: []string{meta.Singular, "Branch"},
		row: func(a model.Account) Row {
			return Row{Label: a.Username, Cells: []Cell{
				{Text: a.Username, Sub: string(a.Role)},
				{Text: branchLabel(a.Branch)},
			}}
		},
		fields:    form.AccountFields,
		newDraft:  func(time.Time) form.AccountDraft { return form.NewAccountDraft() },
		draftFrom: form.AccountDraftFrom,
		payload:   func(d form.AccountDraft, _ model.Account) model.AccountInput { return d.Input() },
	}, ctrl, now)
}

func AccountStats(items []model.Account) []listing.Stat {
	branches := make(map[model.Branch]struct{})
	var central int
	for _, a := range items {
		branches[a.Branch] = struct{}{}
		if a.Branch == model.BranchCentral {
			central++
		}
	}
	return []listing.Stat{
		{Title: "Total", Value: count(len(items))},
		{Title: "Branches", Value: count(len(branches))},
		{Title: "Central", Value: count(central)},
		{Title: "Other branches", Value: count(len(items) - central)},
	}
}
