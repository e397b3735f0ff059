package model

import (
	"fmt"
	"slices"

	apperrors "github.com/jwalitptl/hospital-console/pkg/errors"
)

type BillStatus string

const (
	BillStatusPending BillStatus = "Pending"
	BillStatusPartial BillStatus = "Partial"
	BillStatusPaid    BillStatus = "Paid"
)

// NoPaymentMethod marks a bill that has not received any payment yet.
const NoPaymentMethod = "-"

var PaymentMethods = []string{"Cash", "Credit Card", "Debit Card", "Insurance", "Bank Transfer"}

type Bill struct {
	ID            int64      `json:"id"`
	PatientName   string     `json:"patientName"`
	PatientID     string     `json:"patientId"`
	DoctorName    string     `json:"doctorName"`
	BillDate      string     `json:"billDate"`
	DueDate       string     `json:"dueDate"`
	Amount        Cents      `json:"amountCents"`
	PaidAmount    Cents      `json:"paidAmountCents"`
	Status        BillStatus `json:"status"`
	PaymentMethod string     `json:"paymentMethod"`
	Services      []string   `json:"services"`
}

func (b Bill) EntityID() int64 { return b.ID }

func (b Bill) WithID(id int64) Bill {
	b.ID = id
	return b
}

// Balance is the amount still owed.
func (b Bill) Balance() Cents {
	return b.Amount - b.PaidAmount
}

// DeriveBillStatus is the only source of a bill's status.
func DeriveBillStatus(amount, paid Cents) BillStatus {
	switch {
	case paid >= amount:
		return BillStatusPaid
	case paid > 0:
		return BillStatusPartial
	default:
		return BillStatusPending
	}
}

type Payment struct {
	Amount    Cents  `json:"amountCents"`
	Method    string `json:"method"`
	Reference string `json:"reference,omitempty"`
	Date      string `json:"date"`
}

// ApplyPayment returns b with p recorded. Payments must be positive and
// may not exceed the outstanding balance; a rejected payment leaves the
// bill as it was.
func ApplyPayment(b Bill, p Payment) (Bill, error) {
	if p.Amount <= 0 {
		return b, apperrors.Validation(0, "payment amount must be greater than zero")
	}
	if p.Amount > b.Balance() {
		return b, apperrors.Validation(0, fmt.Sprintf("payment of %s exceeds the outstanding balance of %s", p.Amount, b.Balance()))
	}

	paid := b
	paid.Services = slices.Clone(b.Services)
	paid.PaidAmount = b.PaidAmount + p.Amount
	paid.Status = DeriveBillStatus(paid.Amount, paid.PaidAmount)
	if p.Method != "" {
		paid.PaymentMethod = p.Method
	}
	return paid, nil
}
