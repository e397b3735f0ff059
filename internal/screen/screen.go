// Package screen turns list controllers and their modals into the view
// models the console renders, one Screen per navigation entry.
package screen

import (
	"context"

	"github.com/jwalitptl/hospital-console/internal/form"
	"github.com/jwalitptl/hospital-console/internal/listing"
)

// Binder decodes the submitted request into ptr.
type Binder func(ptr any) error

type Meta struct {
	Name        string
	Title       string
	Singular    string
	Path        string
	CreateTitle string
	SearchHint  string
}

// Screen is the type-erased surface the handlers drive.
type Screen interface {
	Meta() Meta
	Mount(ctx context.Context) error
	Refresh(ctx context.Context) error
	SetFilter(text string)
	Stats() []listing.Stat
	// Page builds the view model and consumes the pending notice.
	Page(opts Options) Page
	OpenCreate()
	OpenEdit(id int64) error
	// Submit decodes the modal and saves it. With a non-empty action only
	// the draft changes and saved is false.
	Submit(ctx context.Context, id int64, bind Binder, action, arg string) (saved bool, err error)
	Cancel()
	Delete(ctx context.Context, id int64, confirmed bool) error
	Close()
}

// Payable is implemented by screens whose rows take payments.
type Payable interface {
	OpenPayment(id int64) error
	Pay(ctx context.Context, id int64, bind Binder) error
}

type Options struct {
	ConfirmID int64
}

type Page struct {
	Meta
	Stats   []listing.Stat
	Columns []string
	Rows    []Row
	Total   int
	Filter  string
	Loading bool
	// Error is the last failed refresh; the rows shown are from before it.
	Error   string
	Notice  string
	Form    *FormView
	Payment *FormView
	Confirm *Row
}

type Row struct {
	ID      int64
	Label   string
	Cells   []Cell
	Busy    bool
	Actions []Action
}

type Cell struct {
	Text  string
	Sub   string
	Badge string
}

type Action struct {
	Label  string
	Href   string
	Danger bool
}

type FormView struct {
	Title     string
	Action    string
	CancelURL string
	Submit    string
	Mode      form.Mode
	Fields    []FieldView
	Message   string
	Services  *ServicesView
	Summary   []listing.Stat
}

type FieldView struct {
	form.FieldSpec
	Value string
}

type ServicesView struct {
	Items   []string
	Pending string
}

func fieldViews(specs []form.FieldSpec, draft any) []FieldView {
	values := form.Values(draft)
	out := make([]FieldView, len(specs))
	for i, field := range specs {
		out[i] = FieldView{FieldSpec: field, Value: values[field.Name]}
	}
	return out
}
