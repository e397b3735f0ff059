package screen

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/jwalitptl/hospital-console/internal/form"
	"github.com/jwalitptl/hospital-console/internal/listing"
	"github.com/jwalitptl/hospital-console/internal/repository"
	apperrors "github.com/jwalitptl/hospital-console/pkg/errors"
)

// definition is everything that differs between two entity screens.
type definition[T repository.Entity, P, D any] struct {
	meta      Meta
	columns   []string
	row       func(T) Row
	fields    func(form.Mode) []form.FieldSpec
	newDraft  func(today time.Time) D
	draftFrom func(T) D
	// payload turns a draft into what the repository takes. base is the
	// entity being edited, or the zero value on create.
	payload func(d D, base T) P
	// services renders a set-valued sub-field, if the draft has one.
	services func(D) *ServicesView
}

type entityScreen[T repository.Entity, P, D any] struct {
	def  definition[T, P, D]
	ctrl *listing.Controller[T, P]
	now  func() time.Time

	mu         sync.Mutex
	form       *form.Form[D]
	submitting bool
	notice     string
}

func newEntityScreen[T repository.Entity, P, D any](def definition[T, P, D], ctrl *listing.Controller[T, P], now func() time.Time) *entityScreen[T, P, D] {
	if now == nil {
		now = time.Now
	}
	return &entityScreen[T, P, D]{def: def, ctrl: ctrl, now: now}
}

func (s *entityScreen[T, P, D]) Meta() Meta { return s.def.meta }

func (s *entityScreen[T, P, D]) Mount(ctx context.Context) error { return s.ctrl.Mount(ctx) }

func (s *entityScreen[T, P, D]) Refresh(ctx context.Context) error { return s.ctrl.Refresh(ctx) }

func (s *entityScreen[T, P, D]) SetFilter(text string) { s.ctrl.SetFilter(text) }

func (s *entityScreen[T, P, D]) Stats() []listing.Stat { return s.ctrl.DerivedStats() }

func (s *entityScreen[T, P, D]) Close() { s.ctrl.Close() }

func (s *entityScreen[T, P, D]) OpenCreate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.openLocked(0)
}

func (s *entityScreen[T, P, D]) OpenEdit(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.openLocked(id)
	return err
}

// openLocked opens the create modal for id 0 and the edit modal otherwise.
func (s *entityScreen[T, P, D]) openLocked(id int64) (*form.Form[D], error) {
	if id == 0 {
		s.ctrl.OpenCreate()
		s.form = form.NewCreate(s.def.newDraft(s.now()))
		return s.form, nil
	}
	target, err := s.ctrl.OpenEdit(id)
	if err != nil {
		return nil, err
	}
	s.form = form.NewEdit(id, s.def.draftFrom(target))
	return s.form, nil
}

func (s *entityScreen[T, P, D]) Cancel() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.form == nil {
		s.ctrl.CloseModal()
		return
	}
	s.form.Cancel(s.ctrl.CloseModal)
	s.form = nil
}

func (s *entityScreen[T, P, D]) Submit(ctx context.Context, id int64, bind Binder, action, arg string) (bool, error) {
	s.mu.Lock()
	if s.submitting {
		s.mu.Unlock()
		return false, listing.ErrInFlight
	}
	f := s.form
	if f == nil || f.ID != id {
		var err error
		if f, err = s.openLocked(id); err != nil {
			s.mu.Unlock()
			return false, err
		}
	}

	var draft D
	if err := bind(&draft); err != nil {
		f.Err = apperrors.Validation(0, "The form could not be read. Please check the values and try again.")
		s.mu.Unlock()
		return false, f.Err
	}
	f.Draft = draft
	if action != "" {
		if e, ok := any(draft).(form.Editor[D]); ok {
			f.Draft = e.Apply(action, arg)
		}
		f.Err = nil
		s.mu.Unlock()
		return false, nil
	}
	s.submitting = true
	work := *f
	s.mu.Unlock()

	err := work.Submit(ctx, func(d D) error { return s.save(ctx, work.Mode, work.ID, d) })

	s.mu.Lock()
	defer s.mu.Unlock()
	s.submitting = false
	f.Err = work.Err
	if err != nil {
		return false, err
	}
	if s.form == f {
		s.form = nil
	}
	return true, nil
}

func (s *entityScreen[T, P, D]) save(ctx context.Context, mode form.Mode, id int64, d D) error {
	if mode == form.ModeCreate {
		var zero T
		_, err := s.ctrl.Create(ctx, s.def.payload(d, zero))
		return err
	}
	base, ok := s.ctrl.Get(id)
	if !ok {
		return apperrors.NotFound(s.def.meta.Singular, nil)
	}
	_, err := s.ctrl.Update(ctx, id, s.def.payload(d, base))
	return err
}

func (s *entityScreen[T, P, D]) Delete(ctx context.Context, id int64, confirmed bool) error {
	err := s.ctrl.Delete(ctx, id, confirmed)
	switch {
	case err == nil, errors.Is(err, listing.ErrInFlight), errors.Is(err, listing.ErrNotConfirmed):
	case errors.Is(err, listing.ErrNotListed):
		// already removed here, which is what was asked for
	default:
		s.setNotice(fmt.Sprintf("Could not delete %s: %s", s.def.meta.Singular, apperrors.UserMessage(err)))
	}
	return err
}

func (s *entityScreen[T, P, D]) setNotice(msg string) {
	s.mu.Lock()
	s.notice = msg
	s.mu.Unlock()
}

func (s *entityScreen[T, P, D]) Page(opts Options) Page {
	snap := s.ctrl.Snapshot()
	p := Page{
		Meta:    s.def.meta,
		Stats:   s.ctrl.DerivedStats(),
		Columns: s.def.columns,
		Total:   len(snap.Items),
		Filter:  snap.Filter,
		Loading: snap.Loading,
	}
	if snap.Err != nil {
		p.Error = apperrors.UserMessage(snap.Err)
	}

	for item := range s.ctrl.FilteredView() {
		row := s.def.row(item)
		row.ID = item.EntityID()
		row.Busy = s.ctrl.Busy(row.ID)
		row.Actions = append(row.Actions,
			Action{Label: "Edit", Href: fmt.Sprintf("%s/%d/edit", s.def.meta.Path, row.ID)},
			Action{Label: "Delete", Href: fmt.Sprintf("%s/%d/delete", s.def.meta.Path, row.ID), Danger: true},
		)
		p.Rows = append(p.Rows, row)
		if opts.ConfirmID == row.ID {
			confirm := row
			p.Confirm = &confirm
		}
	}
	if opts.ConfirmID != 0 && p.Confirm == nil {
		if item, ok := s.ctrl.Get(opts.ConfirmID); ok {
			row := s.def.row(item)
			row.ID = opts.ConfirmID
			p.Confirm = &row
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	p.Notice, s.notice = s.notice, ""
	if s.form != nil {
		p.Form = s.formView(s.form)
	}
	return p
}

func (s *entityScreen[T, P, D]) formView(f *form.Form[D]) *FormView {
	meta := s.def.meta
	v := &FormView{
		Mode:      f.Mode,
		Fields:    fieldViews(s.def.fields(f.Mode), f.Draft),
		Message:   f.Message(),
		CancelURL: meta.Path + "/cancel",
	}
	if f.Mode == form.ModeCreate {
		v.Title = meta.CreateTitle
		v.Action = meta.Path
		v.Submit = "Save " + meta.Singular
	} else {
		v.Title = "Edit " + meta.Singular
		v.Action = fmt.Sprintf("%s/%d", meta.Path, f.ID)
		v.Submit = "Update " + meta.Singular
	}
	if s.def.services != nil {
		v.Services = s.def.services(f.Draft)
	}
	return v
}
