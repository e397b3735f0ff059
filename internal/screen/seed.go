package screen

import "github.com/jwalitptl/hospital-console/internal/model"

// Demo records loaded into each new workspace when seeding is enabled.

func SeedPatients() []model.Patient {
	return []model.Patient{
		{Name: "John Doe", Email: "john.doe@email.com", Phone: "+1 (555) 123-4567", Age: 45, Gender: model.GenderMale, BloodType: "A+", LastVisit: "2024-01-15", Status: model.PatientStatusActive},
		{Name: "Jane Smith", Email: "jane.smith@email.com", Phone: "+1 (555) 234-5678", Age: 32, Gender: model.GenderFemale, BloodType: "O-", LastVisit: "2024-01-10", Status: model.PatientStatusActive},
		{Name: "Mike Wilson", Email: "mike.wilson@email.com", Phone: "+1 (555) 345-6789", Age: 58, Gender: model.GenderMale, BloodType: "B+", LastVisit: "2023-12-20", Status: model.PatientStatusInactive},
	}
}

func SeedBills() []model.Bill {
	return []model.Bill{
		{
			PatientName: "John Doe", PatientID: "P001", DoctorName: "Dr. Sarah Johnson",
			BillDate: "2024-01-20", DueDate: "2024-02-20", Amount: model.WholeDollars(450), PaidAmount: model.WholeDollars(450),
			Status: model.BillStatusPaid, PaymentMethod: "Credit Card",
			Services: []string{"Consultation", "Blood Test", "X-Ray"},
		},
		{
			PatientName: "Jane Smith", PatientID: "P002", DoctorName: "Dr. Michael Chen",
			BillDate: "2024-01-19", DueDate: "2024-02-19", Amount: model.WholeDollars(280), PaidAmount: model.WholeDollars(150),
			Status: model.BillStatusPartial, PaymentMethod: "Insurance",
			Services: []string{"Consultation", "Medication"},
		},
		{
			PatientName: "Mike Wilson", PatientID: "P003", DoctorName: "Dr. Emily Rodriguez",
			BillDate: "2024-01-18", DueDate: "2024-02-18", Amount: model.WholeDollars(1200), PaidAmount: 0,
			Status: model.BillStatusPending, PaymentMethod: model.NoPaymentMethod,
			Services: []string{"Surgery", "Hospital Stay"},
		},
	}
}

func SeedAppointments() []model.Appointment {
	return []model.Appointment{
		{PatientName: "John Doe", DoctorName: "Dr. Sarah Johnson", Date: "2024-01-22", Time: "09:00", Type: "Consultation", Status: model.AppointmentStatusConfirmed},
		{PatientName: "Jane Smith", DoctorName: "Dr. Michael Chen", Date: "2024-01-22", Time: "10:30", Type: "Follow-up", Status: model.AppointmentStatusScheduled},
		{PatientName: "Mike Wilson", DoctorName: "Dr. Emily Rodriguez", Date: "2024-01-18", Time: "14:00", Type: "Check-up", Status: model.AppointmentStatusCompleted},
	}
}
