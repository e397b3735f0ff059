package form

import (
	"context"
	"strings"

	playground "github.com/go-playground/validator/v10"

	"github.com/jwalitptl/hospital-console/internal/model"
	"github.com/jwalitptl/hospital-console/pkg/validator"
)

// AccountDraft backs the doctor and staff modals. The role is fixed by the
// screen, so it is not a field.
type AccountDraft struct {
	Username string       `form:"username" label:"Username" validate:"required,max=50"`
	Password string       `form:"password" label:"Password"`
	Branch   model.Branch `form:"branch" label:"Branch" validate:"required,branch"`
}

func NewAccountDraft() AccountDraft {
	return AccountDraft{Branch: model.BranchCentral}
}

// AccountDraftFrom seeds an edit; the password always starts blank.
func AccountDraftFrom(a model.Account) AccountDraft {
	return AccountDraft{Username: a.Username, Branch: a.Branch}
}

func (d AccountDraft) Input() model.AccountInput {
	return model.AccountInput{Username: d.Username, Password: d.Password, Branch: d.Branch}
}

// A password is required when creating; when editing a blank one means
// "keep the current password".
var accountRule = validator.StructRule{
	Func: func(ctx context.Context, sl playground.StructLevel) {
		d := sl.Current().Interface().(AccountDraft)
		if ModeFrom(ctx) == ModeCreate && strings.TrimSpace(d.Password) == "" {
			sl.ReportError(d.Password, "Password", "Password", "required", "")
		}
	},
	Types: []any{AccountDraft{}},
}

func AccountFields(mode Mode) []FieldSpec {
	password := FieldSpec{Name: "password", Label: "Password", Kind: KindPassword, Required: mode == ModeCreate}
	if mode == ModeEdit {
		password.Hint = "Leave blank to keep the current password"
	}
	return []FieldSpec{
		{Name: "username", Label: "Username", Kind: KindText, Required: true},
		password,
		{Name: "branch", Label: "Branch", Kind: KindSelect, Required: true, Options: []Option{
			{Value: string(model.BranchCentral), Label: "Central"},
			{Value: string(model.BranchA), Label: "Branch A"},
			{Value: string(model.BranchB), Label: "Branch B"},
		}},
	}
}
