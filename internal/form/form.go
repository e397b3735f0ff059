// Package form implements the modal forms: a draft seeded from defaults or
// from an existing entity, local validation, and a single hand-off to the
// caller's save function. Forms never talk to the backend themselves.
package form

import (
	"context"

	"github.com/jwalitptl/hospital-console/internal/model"
	"github.com/jwalitptl/hospital-console/pkg/validator"
	apperrors "github.com/jwalitptl/hospital-console/pkg/errors"
)

type Mode int

const (
	ModeCreate Mode = iota
	ModeEdit
)

func (m Mode) String() string {
	if m == ModeEdit {
		return "edit"
	}
	return "create"
}

type modeKey struct{}

// ModeFrom returns the mode a draft is being validated in.
func ModeFrom(ctx context.Context) Mode {
	m, _ := ctx.Value(modeKey{}).(Mode)
	return m
}

// choices tie the select-style tags to the lists that build the options.
var choices = []validator.Rule{
	validator.ChoiceOf("branch", model.Branches),
	validator.ChoiceOf("gender", model.Genders),
	validator.ChoiceOf("blood_type", model.BloodTypes),
	validator.ChoiceOf("patient_status", model.PatientStatuses),
	validator.ChoiceOf("timeslot", model.TimeSlots),
	validator.ChoiceOf("appointment_type", model.AppointmentTypes),
	validator.ChoiceOf("appointment_status", model.AppointmentStatuses),
	validator.ChoiceOf("payment_method", model.PaymentMethods),
}

var validate = validator.New(append(choices, accountRule, billRule)...)

// Form is one open modal. ID is the edited entity's id in ModeEdit.
type Form[D any] struct {
	Mode  Mode
	ID    int64
	Draft D
	Err   error
}

func NewCreate[D any](draft D) *Form[D] {
	return &Form[D]{Mode: ModeCreate, Draft: draft}
}

func NewEdit[D any](id int64, draft D) *Form[D] {
	return &Form[D]{Mode: ModeEdit, ID: id, Draft: draft}
}

// Validate checks the draft without submitting it.
func (f *Form[D]) Validate(ctx context.Context) error {
	return validate.Validate(context.WithValue(ctx, modeKey{}, f.Mode), f.Draft)
}

// Submit validates the draft and, if it passes, calls save exactly once.
// Any failure is kept on the form and the draft is left as entered.
func (f *Form[D]) Submit(ctx context.Context, save func(D) error) error {
	if err := f.Validate(ctx); err != nil {
		f.Err = err
		return err
	}
	if err := save(f.Draft); err != nil {
		f.Err = err
		return err
	}
	f.Err = nil
	return nil
}

// Cancel discards the form and runs cancel.
func (f *Form[D]) Cancel(cancel func()) {
	f.Err = nil
	if cancel != nil {
		cancel()
	}
}

// Message is the text shown above the fields, empty when there is no error.
func (f *Form[D]) Message() string {
	return apperrors.UserMessage(f.Err)
}
