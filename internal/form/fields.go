package form

import (
	"fmt"
	"reflect"
	"strconv"
)

// FieldKind picks the input control.
type FieldKind string

const (
	KindText     FieldKind = "text"
	KindEmail    FieldKind = "email"
	KindTel      FieldKind = "tel"
	KindPassword FieldKind = "password"
	KindNumber   FieldKind = "number"
	KindDate     FieldKind = "date"
	KindSelect   FieldKind = "select"
)

// FieldSpec describes one input of a modal.
type FieldSpec struct {
	Name     string
	Label    string
	Kind     FieldKind
	Required bool
	Options  []Option
	Hint     string
}

type Option struct {
	Value string
	Label string
}

func options[S ~string](values []S) []Option {
	out := make([]Option, len(values))
	for i, v := range values {
		out[i] = Option{Value: string(v), Label: string(v)}
	}
	return out
}

// Editor is implemented by drafts with sub-fields that change without a
// submit, such as the bill's services.
type Editor[D any] interface {
	Apply(action, arg string) D
}

// Values renders every form-tagged field of draft as input text, keyed by
// the form name. Slices are skipped; they are rendered by their own widget.
func Values(draft any) map[string]string {
	rv := reflect.Indirect(reflect.ValueOf(draft))
	if rv.Kind() != reflect.Struct {
		return nil
	}
	rt := rv.Type()
	out := make(map[string]string, rt.NumField())
	for i := 0; i < rt.NumField(); i++ {
		name := rt.Field(i).Tag.Get("form")
		if name == "" || name == "-" {
			continue
		}
		fv := rv.Field(i)
		if s, ok := fv.Interface().(fmt.Stringer); ok {
			out[name] = s.String()
			continue
		}
		switch fv.Kind() {
		case reflect.String:
			out[name] = fv.String()
		case reflect.Int, reflect.Int64:
			if fv.Int() != 0 {
				out[name] = strconv.FormatInt(fv.Int(), 10)
			}
		}
	}
	return out
}
