package form

import (
	"time"

	"github.com/jwalitptl/hospital-console/internal/model"
)

type PatientDraft struct {
	Name      string              `form:"name" label:"Full Name" validate:"required"`
	Email     string              `form:"email" label:"Email" validate:"required,email"`
	Phone     string              `form:"phone" label:"Phone" validate:"required"`
	Age       int                 `form:"age" label:"Age" validate:"required,gt=0,lte=150"`
	Gender    model.Gender        `form:"gender" label:"Gender" validate:"required,gender"`
	BloodType model.BloodType     `form:"bloodType" label:"Blood Type" validate:"required,blood_type"`
	LastVisit string              `form:"lastVisit" label:"Last Visit" validate:"required,datetime=2006-01-02"`
	Status    model.PatientStatus `form:"status" label:"Status" validate:"required,patient_status"`
}

func NewPatientDraft(today time.Time) PatientDraft {
	return PatientDraft{
		LastVisit: today.Format(model.DateLayout),
		Status:    model.PatientStatusActive,
	}
}

func PatientDraftFrom(p model.Patient) PatientDraft {
	return PatientDraft{
		Name:      p.Name,
		Email:     p.Email,
		Phone:     p.Phone,
		Age:       p.Age,
		Gender:    p.Gender,
		BloodType: p.BloodType,
		LastVisit: p.LastVisit,
		Status:    p.Status,
	}
}

func (d PatientDraft) Patient() model.Patient {
	return model.Patient{
		Name:      d.Name,
		Email:     d.Email,
		Phone:     d.Phone,
		Age:       d.Age,
		Gender:    d.Gender,
		BloodType: d.BloodType,
		LastVisit: d.LastVisit,
		Status:    d.Status,
	}
}

func PatientFields(Mode) []FieldSpec {
	return []FieldSpec{
		{Name: "name", Label: "Full Name", Kind: KindText, Required: true},
		{Name: "email", Label: "Email", Kind: KindEmail, Required: true},
		{Name: "phone", Label: "Phone", Kind: KindTel, Required: true},
		{Name: "age", Label: "Age", Kind: KindNumber, Required: true},
		{Name: "gender", Label: "Gender", Kind: KindSelect, Required: true, Options: options(model.Genders)},
		{Name: "bloodType", Label: "Blood Type", Kind: KindSelect, Required: true, Options: options(model.BloodTypes)},
		{Name: "lastVisit", Label: "Last Visit", Kind: KindDate, Required: true},
		{Name: "status", Label: "Status", Kind: KindSelect, Required: true, Options: options(model.PatientStatuses)},
	}
}
