package screen

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jwalitptl/hospital-console/internal/form"
	"github.com/jwalitptl/hospital-console/internal/listing"
	"github.com/jwalitptl/hospital-console/internal/model"
	"github.com/jwalitptl/hospital-console/internal/repository"
	apperrors "github.com/jwalitptl/hospital-console/pkg/errors"
)

type billingScreen struct {
	*entityScreen[model.Bill, model.Bill, form.BillDraft]

	// payment is guarded by the embedded screen's mutex.
	payment *form.Form[form.PaymentDraft]
}

var _ Payable = (*billingScreen)(nil)

func NewBillingScreen(repo repository.Repository[model.Bill, model.Bill], now func() time.Time) Screen {
	ctrl := listing.New(listing.Config[model.Bill, model.Bill]{
		Name:       "bill",
		Repo:       repo,
		Searchable: func(b model.Bill) []string { return []string{b.PatientName, b.PatientID, b.DoctorName} },
		Stats:      BillStats,
	})
	base := newEntityScreen(definition[model.Bill, model.Bill, form.BillDraft]{
		meta: Meta{
			Name: "billing", Title: "Billing", Singular: "Bill", Path: "/billing",
			CreateTitle: "Create New Bill", SearchHint: "Search by patient, patient ID or doctor...",
		},
		columns:   []string{"Patient", "Doctor", "Bill Date", "Amount", "Paid", "Balance", "Status"},
		row:       billRow,
		fields:    form.BillFields,
		newDraft:  form.NewBillDraft,
		draftFrom: form.BillDraftFrom,
		payload:   func(d form.BillDraft, base model.Bill) model.Bill { return d.Bill(base) },
		services: func(d form.BillDraft) *ServicesView {
			return &ServicesView{Items: d.Services, Pending: d.NewService}
		},
	}, ctrl, now)
	return &billingScreen{entityScreen: base}
}

func billRow(b model.Bill) Row {
	return Row{Label: fmt.Sprintf("bill for %s (%s)", b.PatientName, money(b.Amount)), Cells: []Cell{
		{Text: b.PatientName, Sub: b.PatientID},
		{Text: b.DoctorName, Sub: strings.Join(b.Services, ", ")},
		{Text: b.BillDate, Sub: "Due " + b.DueDate},
		{Text: money(b.Amount)},
		{Text: money(b.PaidAmount), Sub: b.PaymentMethod},
		{Text: money(b.Balance())},
		{Text: string(b.Status), Badge: badge(string(b.Status))},
	}}
}

func (s *billingScreen) OpenPayment(id int64) error {
	bill, ok := s.ctrl.Get(id)
	if !ok {
		return apperrors.NotFound("bill", nil)
	}
	if bill.Balance() <= 0 {
		return apperrors.Validation(0, "This bill is already paid in full.")
	}
	s.mu.Lock()
	s.payment = form.NewEdit(id, form.NewPaymentDraft(bill, s.now()))
	s.mu.Unlock()
	return nil
}

// Pay records a payment against the bill with id. The bill is updated
// through the list controller like any other edit.
func (s *billingScreen) Pay(ctx context.Context, id int64, bind Binder) error {
	s.mu.Lock()
	if s.submitting {
		s.mu.Unlock()
		return listing.ErrInFlight
	}
	f := s.payment
	if f == nil || f.ID != id {
		s.mu.Unlock()
		if err := s.OpenPayment(id); err != nil {
			return err
		}
		s.mu.Lock()
		f = s.payment
	}
	var draft form.PaymentDraft
	if err := bind(&draft); err != nil {
		f.Err = apperrors.Validation(0, "The payment could not be read. Please check the values and try again.")
		s.mu.Unlock()
		return f.Err
	}
	f.Draft = draft
	s.submitting = true
	work := *f
	s.mu.Unlock()

	err := work.Submit(ctx, func(d form.PaymentDraft) error {
		bill, ok := s.ctrl.Get(id)
		if !ok {
			return apperrors.NotFound("bill", nil)
		}
		paid, err := model.ApplyPayment(bill, d.Payment())
		if err != nil {
			return err
		}
		_, err = s.ctrl.Update(ctx, id, paid)
		return err
	})

	s.mu.Lock()
	defer s.mu.Unlock()
	s.submitting = false
	f.Err = work.Err
	if err != nil {
		return err
	}
	if s.payment == f {
		s.payment = nil
	}
	return nil
}

func (s *billingScreen) Cancel() {
	s.mu.Lock()
	s.payment = nil
	s.mu.Unlock()
	s.entityScreen.Cancel()
}

func (s *billingScreen) Page(opts Options) Page {
	p := s.entityScreen.Page(opts)
	for i := range p.Rows {
		bill, ok := s.ctrl.Get(p.Rows[i].ID)
		if ok && bill.Balance() > 0 {
			p.Rows[i].Actions = append([]Action{{Label: "Pay", Href: fmt.Sprintf("%s/%d/pay", s.def.meta.Path, bill.ID)}}, p.Rows[i].Actions...)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.payment == nil {
		return p
	}
	bill, ok := s.ctrl.Get(s.payment.ID)
	if !ok {
		s.payment = nil
		return p
	}
	p.Payment = &FormView{
		Title:     "Process Payment",
		Action:    fmt.Sprintf("%s/%d/pay", s.def.meta.Path, bill.ID),
		CancelURL: s.def.meta.Path + "/cancel",
		Submit:    "Process Payment",
		Mode:      form.ModeEdit,
		Fields:    fieldViews(form.PaymentFields(form.ModeEdit), s.payment.Draft),
		Message:   s.payment.Message(),
		Summary: []listing.Stat{
			{Title: "Patient", Value: bill.PatientName},
			{Title: "Total Amount", Value: money(bill.Amount)},
			{Title: "Paid Amount", Value: money(bill.PaidAmount)},
			{Title: "Balance", Value: money(bill.Balance())},
		},
	}
	return p
}

func BillStats(items []model.Bill) []listing.Stat {
	var total, paid model.Cents
	for _, b := range items {
		total += b.Amount
		paid += b.PaidAmount
	}
	return []listing.Stat{
		{Title: "Total Revenue", Value: money(total)},
		{Title: "Paid Amount", Value: money(paid)},
		{Title: "Pending Amount", Value: money(total - paid)},
		{Title: "Collection Rate", Value: percent(float64(paid), float64(total))},
	}
}
