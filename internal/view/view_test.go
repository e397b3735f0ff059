package view

import (
	"bytes"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwalitptl/hospital-console/internal/form"
	"github.com/jwalitptl/hospital-console/internal/listing"
	"github.com/jwalitptl/hospital-console/internal/model"
	"github.com/jwalitptl/hospital-console/internal/screen"
)

func TestTemplatesParse(t *testing.T) {
	tmpl, err := Templates()
	require.NoError(t, err)
	for _, name := range []string{"login.html", "dashboard.html", "list.html"} {
		assert.NotNil(t, tmpl.Lookup(name), name)
	}
}

func TestStaticHasStylesheet(t *testing.T) {
	_, err := fs.Stat(Static(), "console.css")
	assert.NoError(t, err)
}

func TestListPageRenders(t *testing.T) {
	tmpl := MustTemplates()
	page := ListPage{
		Shell: Shell{Title: "Billing", Nav: []NavItem{{Label: "Billing", Path: "/billing", Active: true}}, Profile: model.Profile{Role: model.RoleAdmin}},
		Page: screen.Page{
			Meta:    screen.Meta{Title: "Billing", Path: "/billing", CreateTitle: "Create New Bill"},
			Stats:   []listing.Stat{{Title: "Total Revenue", Value: "$1,930"}},
			Columns: []string{"Patient"},
			Rows:    []screen.Row{{ID: 7, Label: "bill for Ann", Cells: []screen.Cell{{Text: "Ann <b>"}}}},
			Total:   1,
			Form: &screen.FormView{
				Title:    "Create New Bill",
				Action:   "/billing",
				Submit:   "Save Bill",
				Fields:   []screen.FieldView{{FieldSpec: form.FieldSpec{Name: "patientName", Label: "Patient Name", Kind: form.KindText, Required: true}, Value: "Ann"}},
				Services: &screen.ServicesView{Items: []string{"X-Ray"}},
			},
			Confirm: &screen.Row{ID: 7, Label: "bill for Ann"},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, tmpl.ExecuteTemplate(&buf, "list.html", page))
	out := buf.String()

	assert.Contains(t, out, "$1,930")
	assert.Contains(t, out, "Ann &lt;b&gt;")
	assert.Contains(t, out, `action="/billing/7/delete"`)
	assert.Contains(t, out, `name="remove" value="X-Ray"`)
	assert.Contains(t, out, "Save Bill")
}
