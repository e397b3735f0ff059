package screen

import (
	"context"
	"time"

	"github.com/jwalitptl/hospital-console/internal/model"
	"github.com/jwalitptl/hospital-console/internal/repository"
	"github.com/jwalitptl/hospital-console/internal/repository/local"
	"github.com/jwalitptl/hospital-console/internal/repository/remote"
)

type Deps struct {
	Users  remote.UserAPI
	Tokens repository.TokenSource
	Seed   bool
	Now    func() time.Time
}

// Set is one session's screens in navigation order.
type Set struct {
	screens []Screen
	byName  map[string]Screen
}

func NewSet(d Deps) *Set {
	var (
		patients     []model.Patient
		bills        []model.Bill
		appointments []model.Appointment
	)
	if d.Seed {
		patients, bills, appointments = SeedPatients(), SeedBills(), SeedAppointments()
	}

	screens := []Screen{
		NewAppointmentScreen(local.NewStore("appointment", appointments...), d.Now),
		NewPatientScreen(local.NewStore("patient", patients...), d.Now),
		NewAccountScreen(model.RoleDoctor, remote.NewAccountRepository(d.Users, d.Tokens, model.RoleDoctor), d.Now),
		NewAccountScreen(model.RoleStaff, remote.NewAccountRepository(d.Users, d.Tokens, model.RoleStaff), d.Now),
		NewBillingScreen(local.NewStore("bill", bills...), d.Now),
	}
	s := &Set{screens: screens, byName: make(map[string]Screen, len(screens))}
	for _, sc := range screens {
		s.byName[sc.Meta().Name] = sc
	}
	return s
}

func (s *Set) All() []Screen {
	return s.screens
}

func (s *Set) Get(name string) (Screen, bool) {
	sc, ok := s.byName[name]
	return sc, ok
}

// MountAll mounts every screen and returns the first failure.
func (s *Set) MountAll(ctx context.Context) error {
	var first error
	for _, sc := range s.screens {
		if err := sc.Mount(ctx); err != nil && first == nil {
			first = err
		}
	}
	return first
}

func (s *Set) Close() {
	for _, sc := range s.screens {
		sc.Close()
	}
}

// Catalog lists the screens every session gets, in navigation order.
func Catalog() []Meta {
	s := NewSet(Deps{})
	defer s.Close()
	metas := make([]Meta, len(s.screens))
	for i, sc := range s.screens {
		metas[i] = sc.Meta()
	}
	return metas
}
