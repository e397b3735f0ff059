package listing_test

import (
	"slices"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/jwalitptl/hospital-console/internal/listing"
	"github.com/jwalitptl/hospital-console/internal/model"
)

const (
	timeout = 2 * time.Second
	tick    = 5 * time.Millisecond
)

var patients = []model.Patient{
	{ID: 1, Name: "John Doe", Email: "john@example.com", Phone: "+1 234-567-8900"},
	{ID: 2, Name: "Jane Smith", Email: "jane@example.com", Phone: "+1 234-567-8901"},
	{ID: 3, Name: "Mike Wilson", Email: "mike@example.com", Phone: "+1 234-567-8902"},
}

func patientFields(p model.Patient) []string {
	return []string{p.Name, p.Email, p.Phone}
}

func TestFilter(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []int64
	}{
		{"empty matches all in order", "", []int64{1, 2, 3}},
		{"case insensitive name", "JOHN", []int64{1}},
		{"email field", "jane@", []int64{2}},
		{"phone field", "8902", []int64{3}},
		{"shared substring", "example", []int64{1, 2, 3}},
		{"no match", "zzz", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var ids []int64
			for p := range listing.Filter(patients, patientFields, tt.text) {
				ids = append(ids, p.ID)
			}
			assert.Equal(t, tt.want, ids)
		})
	}
}

func TestFilterIsIdempotentAndRestartable(t *testing.T) {
	seq := listing.Filter(patients, patientFields, "j")
	once := slices.Collect(seq)
	again := slices.Collect(seq)
	assert.Equal(t, once, again)

	twice := slices.Collect(listing.Filter(once, patientFields, "j"))
	assert.Equal(t, once, twice)
}

func TestFilterStopsEarly(t *testing.T) {
	var seen int
	for range listing.Filter(patients, patientFields, "") {
		seen++
		break
	}
	assert.Equal(t, 1, seen)
}
