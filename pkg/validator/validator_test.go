package validator

import (
	"context"
	"testing"

	playground "github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/jwalitptl/hospital-console/pkg/errors"
)

type sample struct {
	Name  string `form:"name" label:"Full Name" validate:"required"`
	Email string `form:"email" validate:"omitempty,email"`
	Kind  string `form:"kind" validate:"required,oneof=a b"`
	Age   int    `validate:"gt=0"`
}

func TestValidateMessages(t *testing.T) {
	v := New()

	err := v.Validate(context.Background(), sample{Email: "nope", Kind: "c"})
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.KindValidation))
	assert.Equal(t,
		"Full Name is required; email must be a valid email; kind must be one of: a, b; Age must be greater than 0",
		apperrors.UserMessage(err))

	assert.NoError(t, v.Validate(context.Background(), sample{Name: "x", Kind: "a", Age: 3}))
}

type ctxKey struct{}

func TestStructRuleSeesContext(t *testing.T) {
	v := New(StructRule{
		Func: func(ctx context.Context, sl playground.StructLevel) {
			s := sl.Current().Interface().(sample)
			if ctx.Value(ctxKey{}) == true && s.Email == "" {
				sl.ReportError(s.Email, "email", "Email", "required", "")
			}
		},
		Types: []any{sample{}},
	})

	ok := sample{Name: "x", Kind: "a", Age: 1}
	assert.NoError(t, v.Validate(context.Background(), ok))

	err := v.Validate(context.WithValue(context.Background(), ctxKey{}, true), ok)
	require.Error(t, err)
	assert.Equal(t, "email is required", apperrors.UserMessage(err))
}

func TestOneOfList(t *testing.T) {
	assert.Equal(t, "a, b", oneOfList("a b"))
	assert.Equal(t, "Cash, Credit Card, Insurance", oneOfList("Cash 'Credit Card' Insurance"))
}

type slotted struct {
	Slot string `label:"Time" validate:"required,slot"`
}

func TestChoice(t *testing.T) {
	slots := []string{"09:00", "09:30"}
	v := New(Choice{Tag: "slot", Values: slots})

	assert.NoError(t, v.Validate(context.Background(), slotted{Slot: "09:30"}))

	err := v.Validate(context.Background(), slotted{Slot: "12:00"})
	require.Error(t, err)
	assert.Equal(t, "Time must be one of: 09:00, 09:30", apperrors.UserMessage(err))

	// later edits to the caller's slice do not leak in
	slots[0] = "12:00"
	assert.Error(t, v.Validate(context.Background(), slotted{Slot: "12:00"}))
}

func TestChoiceOf(t *testing.T) {
	type status string
	c := ChoiceOf("status", []status{"Active", "Inactive"})
	assert.Equal(t, Choice{Tag: "status", Values: []string{"Active", "Inactive"}}, c)
}
