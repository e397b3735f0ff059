package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/jwalitptl/hospital-console/pkg/errors"
)

func TestDeriveBillStatus(t *testing.T) {
	tests := []struct {
		amount, paid Cents
		want         BillStatus
	}{
		{45000, 45000, BillStatusPaid},
		{28000, 15000, BillStatusPartial},
		{120000, 0, BillStatusPending},
		{0, 0, BillStatusPaid},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, DeriveBillStatus(tt.amount, tt.paid), "amount=%v paid=%v", tt.amount, tt.paid)
	}
}

func TestApplyPaymentSequence(t *testing.T) {
	bill := Bill{ID: 1, Amount: WholeDollars(100), Status: BillStatusPending, PaymentMethod: NoPaymentMethod, Services: []string{"Consultation"}}

	first, err := ApplyPayment(bill, Payment{Amount: WholeDollars(50), Method: "Cash"})
	require.NoError(t, err)
	assert.Equal(t, WholeDollars(50), first.PaidAmount)
	assert.Equal(t, BillStatusPartial, first.Status)
	assert.Equal(t, "Cash", first.PaymentMethod)

	second, err := ApplyPayment(first, Payment{Amount: WholeDollars(50), Method: "Insurance"})
	require.NoError(t, err)
	assert.Equal(t, WholeDollars(100), second.PaidAmount)
	assert.Equal(t, BillStatusPaid, second.Status)

	// the input bill is never mutated
	assert.Zero(t, bill.PaidAmount)
	first.Services[0] = "changed"
	assert.Equal(t, "Consultation", bill.Services[0])
}

// Paying the balance as displayed must always settle the bill, whatever
// the earlier payments were.
func TestApplyPaymentSettlesDisplayedBalance(t *testing.T) {
	tests := []struct {
		amount, first string
	}{
		{"0.30", "0.10"},
		{"100.00", "12.96"},
		{"100", "33.33"},
		{"280", "150"},
	}

	for _, tt := range tests {
		t.Run(tt.amount+"-"+tt.first, func(t *testing.T) {
			amount, err := ParseCents(tt.amount)
			require.NoError(t, err)
			first, err := ParseCents(tt.first)
			require.NoError(t, err)

			bill, err := ApplyPayment(Bill{Amount: amount}, Payment{Amount: first, Method: "Cash"})
			require.NoError(t, err)
			assert.Equal(t, BillStatusPartial, bill.Status)

			rest, err := ParseCents(bill.Balance().String())
			require.NoError(t, err)
			bill, err = ApplyPayment(bill, Payment{Amount: rest, Method: "Cash"})
			require.NoError(t, err)
			assert.Equal(t, BillStatusPaid, bill.Status)
			assert.Zero(t, bill.Balance())
		})
	}

	// every first payment on a $100.00 bill leaves a payable remainder
	for c := Cents(1); c < WholeDollars(100); c++ {
		bill, err := ApplyPayment(Bill{Amount: WholeDollars(100)}, Payment{Amount: c})
		require.NoError(t, err)
		bill, err = ApplyPayment(bill, Payment{Amount: bill.Balance()})
		require.NoError(t, err, "first payment %s", c)
		require.Equal(t, BillStatusPaid, bill.Status)
	}
}

func TestApplyPaymentRejectsOverpayment(t *testing.T) {
	bill := Bill{Amount: WholeDollars(100), PaidAmount: WholeDollars(80), Status: BillStatusPartial}

	got, err := ApplyPayment(bill, Payment{Amount: WholeDollars(30), Method: "Cash"})
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.KindValidation))
	assert.Equal(t, bill, got)
}

func TestApplyPaymentRejectsNonPositive(t *testing.T) {
	_, err := ApplyPayment(Bill{Amount: WholeDollars(100)}, Payment{Amount: 0})
	assert.True(t, apperrors.Is(err, apperrors.KindValidation))

	_, err = ApplyPayment(Bill{Amount: WholeDollars(100)}, Payment{Amount: -5})
	assert.True(t, apperrors.Is(err, apperrors.KindValidation))
}
