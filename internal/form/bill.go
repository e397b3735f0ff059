package form

import (
	"context"
	"slices"
	"strings"
	"time"

	playground "github.com/go-playground/validator/v10"

	"github.com/jwalitptl/hospital-console/internal/model"
	"github.com/jwalitptl/hospital-console/pkg/validator"
)

// BillDraft backs the bill modal. NewService is the pending entry of the
// services input; Services is the set collected so far.
type BillDraft struct {
	PatientName string      `form:"patientName" label:"Patient Name" validate:"required"`
	PatientID   string      `form:"patientId" label:"Patient ID"`
	DoctorName  string      `form:"doctorName" label:"Doctor" validate:"required"`
	BillDate    string      `form:"billDate" label:"Bill Date" validate:"required,datetime=2006-01-02"`
	DueDate     string      `form:"dueDate" label:"Due Date" validate:"omitempty,datetime=2006-01-02"`
	Amount      model.Cents `form:"amount" label:"Amount" validate:"gte=0"`
	Services    []string    `form:"services" label:"Services"`
	NewService  string      `form:"newService" label:"Service"`
}

func NewBillDraft(today time.Time) BillDraft {
	return BillDraft{BillDate: today.Format(model.DateLayout)}
}

func BillDraftFrom(b model.Bill) BillDraft {
	return BillDraft{
		PatientName: b.PatientName,
		PatientID:   b.PatientID,
		DoctorName:  b.DoctorName,
		BillDate:    b.BillDate,
		DueDate:     b.DueDate,
		Amount:      b.Amount,
		Services:    slices.Clone(b.Services),
	}
}

// AddService adds NewService unless it is blank or already listed.
func (d BillDraft) AddService() BillDraft {
	svc := strings.TrimSpace(d.NewService)
	d.NewService = ""
	if svc == "" || slices.Contains(d.Services, svc) {
		return d
	}
	d.Services = append(slices.Clone(d.Services), svc)
	return d
}

func (d BillDraft) RemoveService(svc string) BillDraft {
	d.Services = slices.DeleteFunc(slices.Clone(d.Services), func(s string) bool { return s == svc })
	return d
}

const (
	ActionAddService    = "add_service"
	ActionRemoveService = "remove_service"
)

func (d BillDraft) Apply(action, arg string) BillDraft {
	switch action {
	case ActionAddService:
		return d.AddService()
	case ActionRemoveService:
		return d.RemoveService(arg)
	default:
		return d
	}
}

// Bill applies the draft to base. A new bill starts unpaid; an edited one
// keeps its payments and has its status derived again from the new amount.
func (d BillDraft) Bill(base model.Bill) model.Bill {
	b := base
	b.PatientName = d.PatientName
	b.PatientID = d.PatientID
	b.DoctorName = d.DoctorName
	b.BillDate = d.BillDate
	b.DueDate = d.DueDate
	b.Amount = d.Amount
	b.Services = slices.Clone(d.Services)
	if b.Services == nil {
		b.Services = []string{}
	}
	if b.PaymentMethod == "" {
		b.PaymentMethod = model.NoPaymentMethod
	}
	b.Status = model.DeriveBillStatus(b.Amount, b.PaidAmount)
	if b.PaidAmount == 0 {
		b.Status = model.BillStatusPending
	}
	return b
}

// The due date may not come before the bill date.
var billRule = validator.StructRule{
	Func: func(_ context.Context, sl playground.StructLevel) {
		d := sl.Current().Interface().(BillDraft)
		if d.DueDate == "" {
			return
		}
		billed, err1 := time.Parse(model.DateLayout, d.BillDate)
		due, err2 := time.Parse(model.DateLayout, d.DueDate)
		if err1 == nil && err2 == nil && due.Before(billed) {
			sl.ReportError(d.DueDate, "Due Date", "DueDate", "gtefield", "Bill Date")
		}
	},
	Types: []any{BillDraft{}},
}

func BillFields(Mode) []FieldSpec {
	return []FieldSpec{
		{Name: "patientName", Label: "Patient Name", Kind: KindText, Required: true},
		{Name: "patientId", Label: "Patient ID", Kind: KindText},
		{Name: "doctorName", Label: "Doctor", Kind: KindText, Required: true},
		{Name: "billDate", Label: "Bill Date", Kind: KindDate, Required: true},
		{Name: "dueDate", Label: "Due Date", Kind: KindDate},
		{Name: "amount", Label: "Amount ($)", Kind: KindNumber},
	}
}
