package local

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwalitptl/hospital-console/internal/model"
	apperrors "github.com/jwalitptl/hospital-console/pkg/errors"
)

func TestStoreIDsNeverRepeat(t *testing.T) {
	ctx := context.Background()
	s := NewStore[model.Patient]("patient",
		model.Patient{Name: "John Doe"},
		model.Patient{Name: "Jane Smith"},
	)

	seeded, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, seeded, 2)

	// removing the first and adding again must not recycle an id still in use
	require.NoError(t, s.Delete(ctx, seeded[0].ID))
	created, err := s.Create(ctx, model.Patient{Name: "Mike Wilson"})
	require.NoError(t, err)

	assert.NotEqual(t, seeded[1].ID, created.ID)
	assert.NotEqual(t, seeded[0].ID, created.ID)
	assert.Greater(t, created.ID, seeded[1].ID)
}

func TestStoreUpdateAndDelete(t *testing.T) {
	ctx := context.Background()
	s := NewStore[model.Appointment]("appointment")

	a, err := s.Create(ctx, model.Appointment{PatientName: "John", Status: model.AppointmentStatusScheduled})
	require.NoError(t, err)

	a.Status = model.AppointmentStatusConfirmed
	updated, err := s.Update(ctx, a.ID, model.Appointment{PatientName: "John", Status: model.AppointmentStatusConfirmed})
	require.NoError(t, err)
	assert.Equal(t, a, updated)

	_, err = s.Update(ctx, a.ID+1000, a)
	assert.True(t, apperrors.Is(err, apperrors.KindNotFound))

	require.NoError(t, s.Delete(ctx, a.ID))
	err = s.Delete(ctx, a.ID)
	assert.True(t, apperrors.Is(err, apperrors.KindNotFound))
}

func TestStoreListIsACopy(t *testing.T) {
	ctx := context.Background()
	s := NewStore[model.Patient]("patient", model.Patient{Name: "A"})

	list, _ := s.List(ctx)
	list[0].Name = "mutated"

	again, _ := s.List(ctx)
	assert.Equal(t, "A", again[0].Name)
}
