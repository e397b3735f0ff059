package form

import (
	"time"

	"github.com/jwalitptl/hospital-console/internal/model"
)

type PaymentDraft struct {
	Amount    model.Cents `form:"amount" label:"Payment Amount" validate:"gt=0"`
	Method    string      `form:"method" label:"Payment Method" validate:"required,payment_method"`
	Reference string      `form:"reference" label:"Reference"`
	Date      string      `form:"date" label:"Payment Date" validate:"required,datetime=2006-01-02"`
}

// NewPaymentDraft proposes paying off the whole balance in cash today.
func NewPaymentDraft(b model.Bill, today time.Time) PaymentDraft {
	return PaymentDraft{
		Amount: b.Balance(),
		Method: "Cash",
		Date:   today.Format(model.DateLayout),
	}
}

func (d PaymentDraft) Payment() model.Payment {
	return model.Payment{Amount: d.Amount, Method: d.Method, Reference: d.Reference, Date: d.Date}
}

func PaymentFields(Mode) []FieldSpec {
	return []FieldSpec{
		{Name: "amount", Label: "Payment Amount", Kind: KindNumber, Required: true},
		{Name: "method", Label: "Payment Method", Kind: KindSelect, Required: true, Options: options(model.PaymentMethods)},
		{Name: "reference", Label: "Reference", Kind: KindText, Hint: "Transaction or cheque number"},
		{Name: "date", Label: "Payment Date", Kind: KindDate, Required: true},
	}
}
