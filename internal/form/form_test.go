package form

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwalitptl/hospital-console/internal/model"
	apperrors "github.com/jwalitptl/hospital-console/pkg/errors"
)

var today = time.Date(2024, 1, 15, 9, 0, 0, 0, time.UTC)

func TestSubmitCallsSaveOnce(t *testing.T) {
	f := NewCreate(AccountDraft{Username: "dr.grey", Password: "pw", Branch: model.BranchA})

	var calls int
	var got AccountDraft
	err := f.Submit(context.Background(), func(d AccountDraft) error {
		calls++
		got = d
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
	assert.Equal(t, f.Draft, got)
	assert.Empty(t, f.Message())
}

func TestSubmitInvalidNeverSaves(t *testing.T) {
	f := NewCreate(NewAccountDraft())

	err := f.Submit(context.Background(), func(AccountDraft) error {
		t.Fatal("save must not be called")
		return nil
	})
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.KindValidation))
	assert.Equal(t, "Username is required; Password is required", f.Message())
}

func TestSubmitKeepsDraftOnSaveError(t *testing.T) {
	draft := AccountDraft{Username: "dr.house", Password: "pw", Branch: model.BranchA}
	f := NewCreate(draft)

	err := f.Submit(context.Background(), func(AccountDraft) error {
		return apperrors.Validation(400, "Username already registered")
	})
	require.Error(t, err)
	assert.Equal(t, draft, f.Draft)
	assert.Equal(t, "Username already registered", f.Message())
}

func TestAccountPasswordOptionalOnEdit(t *testing.T) {
	acc := model.Account{ID: 3, Username: "dr.grey", Role: model.RoleDoctor, Branch: model.BranchB}
	f := NewEdit(acc.ID, AccountDraftFrom(acc))

	assert.Empty(t, f.Draft.Password)
	require.NoError(t, f.Validate(context.Background()))

	f.Draft.Password = "   "
	require.NoError(t, f.Validate(context.Background()))

	create := NewCreate(AccountDraft{Username: "x", Password: "   ", Branch: model.BranchCentral})
	assert.Error(t, create.Validate(context.Background()))
}

func TestCancelRunsCallback(t *testing.T) {
	f := NewCreate(NewPatientDraft(today))
	f.Err = errors.New("stale")

	var cancelled bool
	f.Cancel(func() { cancelled = true })
	assert.True(t, cancelled)
	assert.NoError(t, f.Err)
}

func TestDefaults(t *testing.T) {
	p := NewPatientDraft(today)
	assert.Equal(t, "2024-01-15", p.LastVisit)
	assert.Equal(t, model.PatientStatusActive, p.Status)

	a := NewAppointmentDraft(today)
	assert.Equal(t, "10:00", a.Time)
	assert.Equal(t, "Consultation", a.Type)
	assert.Equal(t, model.AppointmentStatusScheduled, a.Status)

	bill := model.Bill{Amount: model.WholeDollars(280), PaidAmount: model.WholeDollars(150)}
	pay := NewPaymentDraft(bill, today)
	assert.Equal(t, model.WholeDollars(130), pay.Amount)
	assert.Equal(t, "Cash", pay.Method)
}

func TestPatientValidation(t *testing.T) {
	d := NewPatientDraft(today)
	d.Name = "John Doe"
	d.Email = "not-an-email"
	d.Phone = "+1 234"
	d.Age = 0
	d.Gender = model.GenderMale
	d.BloodType = "C+"

	err := NewCreate(d).Validate(context.Background())
	require.Error(t, err)
	msg := apperrors.UserMessage(err)
	assert.Contains(t, msg, "Email must be a valid email")
	assert.Contains(t, msg, "Age is required")
	assert.Contains(t, msg, "Blood Type must be one of: A+, A-, B+, B-, AB+, AB-, O+, O-")
}

func TestBillServices(t *testing.T) {
	d := NewBillDraft(today)

	d.NewService = "Consultation"
	d = d.AddService()
	d.NewService = "  "
	d = d.AddService()
	d.NewService = "Consultation"
	d = d.AddService()
	d.NewService = "Blood Test"
	d = d.AddService()

	assert.Equal(t, []string{"Consultation", "Blood Test"}, d.Services)
	assert.Empty(t, d.NewService)

	d = d.RemoveService("Consultation")
	assert.Equal(t, []string{"Blood Test"}, d.Services)
	d = d.RemoveService("X-Ray")
	assert.Equal(t, []string{"Blood Test"}, d.Services)
}

func TestBillFromDraft(t *testing.T) {
	d := BillDraft{PatientName: "John", DoctorName: "Dr. Chen", BillDate: "2024-01-15", Amount: model.WholeDollars(100), Services: []string{"Consultation"}}

	created := d.Bill(model.Bill{})
	assert.Equal(t, model.BillStatusPending, created.Status)
	assert.Equal(t, model.NoPaymentMethod, created.PaymentMethod)
	assert.Zero(t, created.PaidAmount)

	paid := model.Bill{ID: 7, Amount: model.WholeDollars(100), PaidAmount: model.WholeDollars(60), PaymentMethod: "Cash", Status: model.BillStatusPartial}
	d.Amount = model.WholeDollars(60)
	edited := d.Bill(paid)
	assert.Equal(t, int64(7), edited.ID)
	assert.Equal(t, model.BillStatusPaid, edited.Status)
	assert.Equal(t, "Cash", edited.PaymentMethod)
}

func TestBillDueDateNotBeforeBillDate(t *testing.T) {
	d := BillDraft{PatientName: "John", DoctorName: "Dr. Chen", BillDate: "2024-01-15", DueDate: "2024-01-10"}
	err := NewCreate(d).Validate(context.Background())
	require.Error(t, err)
	assert.Equal(t, "Due Date must not be before Bill Date", apperrors.UserMessage(err))
}

func TestPaymentValidation(t *testing.T) {
	d := PaymentDraft{Amount: model.WholeDollars(10), Method: "Credit Card", Date: "2024-01-15"}
	assert.NoError(t, NewCreate(d).Validate(context.Background()))

	d.Method = "Bitcoin"
	d.Amount = 0
	err := NewCreate(d).Validate(context.Background())
	require.Error(t, err)
	assert.Equal(t,
		"Payment Amount must be greater than 0; Payment Method must be one of: Cash, Credit Card, Debit Card, Insurance, Bank Transfer",
		apperrors.UserMessage(err))
}

// Every field marked required in a modal must be enforced by the draft, and
// every enforced field must be marked.
func TestRequiredMarkingsMatchRules(t *testing.T) {
	tests := []struct {
		name   string
		draft  any
		fields []FieldSpec
	}{
		{"account edit", AccountDraft{}, AccountFields(ModeEdit)},
		{"patient", PatientDraft{}, PatientFields(ModeCreate)},
		{"appointment", AppointmentDraft{}, AppointmentFields(ModeCreate)},
		{"bill", BillDraft{}, BillFields(ModeCreate)},
		{"payment", PaymentDraft{}, PaymentFields(ModeCreate)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rt := reflect.TypeOf(tt.draft)
			for _, field := range tt.fields {
				sf, ok := fieldByForm(rt, field.Name)
				require.True(t, ok, "no draft field for %s", field.Name)
				rules := sf.Tag.Get("validate")
				enforced := strings.Contains(rules, "required") || strings.HasPrefix(rules, "gt=")
				assert.Equal(t, enforced, field.Required, field.Name)
			}
		})
	}

	// the account password is the one field whose marking depends on mode
	assert.True(t, AccountFields(ModeCreate)[1].Required)
	assert.False(t, AccountFields(ModeEdit)[1].Required)
}

func fieldByForm(rt reflect.Type, name string) (reflect.StructField, bool) {
	for i := 0; i < rt.NumField(); i++ {
		if rt.Field(i).Tag.Get("form") == name {
			return rt.Field(i), true
		}
	}
	return reflect.StructField{}, false
}

func TestValues(t *testing.T) {
	v := Values(PatientDraft{Name: "John", Age: 45, Gender: model.GenderMale})
	assert.Equal(t, "John", v["name"])
	assert.Equal(t, "45", v["age"])
	assert.Equal(t, "Male", v["gender"])
	assert.Equal(t, "", v["email"])

	b := Values(BillDraft{Amount: 28050, Services: []string{"X"}})
	assert.Equal(t, "280.50", b["amount"])
	_, hasServices := b["services"]
	assert.False(t, hasServices)
}

func TestBillEditor(t *testing.T) {
	var d any = BillDraft{NewService: "X-Ray"}
	e, ok := d.(Editor[BillDraft])
	require.True(t, ok)

	got := e.Apply(ActionAddService, "")
	assert.Equal(t, []string{"X-Ray"}, got.Services)
	got = got.Apply(ActionRemoveService, "X-Ray")
	assert.Empty(t, got.Services)
}

func TestAppointmentTimeFollowsSlots(t *testing.T) {
	ctx := context.Background()
	d := NewAppointmentDraft(today)
	d.PatientName, d.DoctorName = "John Doe", AppointmentDoctors[0]

	var offered []string
	for _, f := range AppointmentFields(ModeCreate) {
		if f.Name == "time" {
			for _, o := range f.Options {
				offered = append(offered, o.Value)
			}
		}
	}
	require.Equal(t, model.TimeSlots, offered)

	for _, slot := range offered {
		d.Time = slot
		assert.NoError(t, NewCreate(d).Validate(ctx), slot)
	}

	d.Time = "12:00"
	err := NewCreate(d).Validate(ctx)
	require.Error(t, err)
	assert.Equal(t, "Time must be one of: "+strings.Join(model.TimeSlots, ", "), apperrors.UserMessage(err))
}
