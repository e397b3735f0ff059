package validator

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"slices"
	"strings"

	playground "github.com/go-playground/validator/v10"

	apperrors "github.com/jwalitptl/hospital-console/pkg/errors"
)

// Validator checks `validate` struct tags and reports failures as a single
// validation error whose message names every offending field.
type Validator interface {
	Validate(ctx context.Context, obj any) error
}

type validator struct {
	v       *playground.Validate
	choices map[string][]string
}

// Rule extends the built-in tags.
type Rule interface {
	register(v *validator)
}

// New builds a Validator. Field names in messages come from the `label`
// tag, falling back to the `form` tag and then the Go field name.
func New(rules ...Rule) Validator {
	v := playground.New(playground.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		if label := fld.Tag.Get("label"); label != "" {
			return label
		}
		name := strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})
	out := &validator{v: v, choices: map[string][]string{}}
	for _, r := range rules {
		r.register(out)
	}
	return out
}

// StructRule is a cross-field check run after the field tags.
type StructRule struct {
	Func  playground.StructLevelFuncCtx
	Types []any
}

func (r StructRule) register(v *validator) {
	v.v.RegisterStructValidationCtx(r.Func, r.Types...)
}

// Choice registers Tag as "the string field is one of Values". Unlike
// oneof, the allowed values come from the same slice that feeds the
// form's options.
type Choice struct {
	Tag    string
	Values []string
}

func (r Choice) register(v *validator) {
	values := slices.Clone(r.Values)
	v.choices[r.Tag] = values
	if err := v.v.RegisterValidation(r.Tag, func(fl playground.FieldLevel) bool {
		return slices.Contains(values, fl.Field().String())
	}); err != nil {
		panic(fmt.Sprintf("register %s: %v", r.Tag, err))
	}
}

// ChoiceOf builds a Choice from a slice of string-based values.
func ChoiceOf[S ~string](tag string, values []S) Choice {
	out := make([]string, len(values))
	for i, s := range values {
		out[i] = string(s)
	}
	return Choice{Tag: tag, Values: out}
}

func (v *validator) Validate(ctx context.Context, obj any) error {
	err := v.v.StructCtx(ctx, obj)
	if err == nil {
		return nil
	}

	var verrs playground.ValidationErrors
	if !errors.As(err, &verrs) {
		return apperrors.Internal(err)
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		if values, ok := v.choices[fe.Tag()]; ok {
			msgs = append(msgs, fmt.Sprintf("%s must be one of: %s", fe.Field(), strings.Join(values, ", ")))
			continue
		}
		msgs = append(msgs, Message(fe))
	}
	return apperrors.Validation(0, strings.Join(msgs, "; "))
}

// Message renders one field error for display.
func Message(fe playground.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "email":
		return fmt.Sprintf("%s must be a valid email", field)
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, oneOfList(fe.Param()))
	case "datetime":
		return fmt.Sprintf("%s must be a date (YYYY-MM-DD)", field)
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, fe.Param())
	case "gte":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "lte", "max":
		return fmt.Sprintf("%s must not exceed %s", field, fe.Param())
	case "gtefield":
		return fmt.Sprintf("%s must not be before %s", field, fe.Param())
	case "min":
		return fmt.Sprintf("%s must be at least %s characters long", field, fe.Param())
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}

// oneOfList turns a oneof parameter such as `Cash 'Credit Card'` into
// "Cash, Credit Card".
func oneOfList(param string) string {
	var (
		out    []string
		cur    strings.Builder
		quoted bool
	)
	for _, r := range param {
		switch {
		case r == '\'':
			quoted = !quoted
		case r == ' ' && !quoted:
			if cur.Len() > 0 {
				out = append(out, cur.String())
				cur.Reset()
			}
		default:
			cur.WriteRune(r)
		}
	}
	if cur.Len() > 0 {
		out = append(out, cur.String())
	}
	return strings.Join(out, ", ")
}
