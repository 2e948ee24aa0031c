package utils

import (
	"SMCHealth/models"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func intPtr(v int) *int { return &v }

func TestValidateAdmit(t *testing.T) {
	tests := []struct {
		name    string
		req     models.AdmitRequest
		wantErr bool
	}{
		{"opd", models.AdmitRequest{PatientType: models.PatientTypeOPD, Name: "Asha", Age: 30}, false},
		{"ipd without bed type passes shape check", models.AdmitRequest{PatientType: models.PatientTypeIPD, Name: "Ravi"}, false},
		{"missing type", models.AdmitRequest{Name: "Asha"}, true},
		{"unknown type", models.AdmitRequest{PatientType: "ER", Name: "Asha"}, true},
		{"negative age", models.AdmitRequest{PatientType: models.PatientTypeOPD, Name: "Asha", Age: -1}, true},
		{"bad gender", models.AdmitRequest{PatientType: models.PatientTypeOPD, Name: "Asha", Gender: "x"}, true},
		{"bad doctor id", models.AdmitRequest{PatientType: models.PatientTypeOPD, Name: "Asha", DoctorID: "doc"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateAdmit(tt.req)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateOnboard(t *testing.T) {
	valid := models.OnboardRequest{
		Name:         "City Hospital",
		ContactEmail: "ops@city.example",
		Beds: map[models.BedType]models.BedCapacity{
			models.BedTypeICU:     {Total: 2},
			models.BedTypeGeneral: {Total: 10, Available: intPtr(7)},
		},
	}
	assert.NoError(t, ValidateOnboard(valid))

	unknown := valid
	unknown.Beds = map[models.BedType]models.BedCapacity{"suite": {Total: 1}}
	assert.Error(t, ValidateOnboard(unknown))

	overfull := valid
	overfull.Beds = map[models.BedType]models.BedCapacity{models.BedTypeICU: {Total: 1, Available: intPtr(2)}}
	assert.Error(t, ValidateOnboard(overfull))

	noBeds := valid
	noBeds.Beds = nil
	assert.Error(t, ValidateOnboard(noBeds))
}

func TestValidateBooking(t *testing.T) {
	req := models.BookRequest{
		HospitalID:      "7f9c2b0e-8a54-4c6e-9b1a-3d2f1e0c9a87",
		DoctorID:        "1b4e28ba-2fa1-41d2-883f-0016d3cca427",
		PatientName:     "Meera",
		PatientAge:      41,
		PatientGender:   "Female",
		PatientPhone:    "9876543210",
		AppointmentDate: time.Date(2026, 3, 4, 0, 0, 0, 0, time.UTC),
		AppointmentTime: "10:30",
		Reason:          "follow-up",
	}
	assert.NoError(t, ValidateBooking(req))

	req.PatientGender = "unknown"
	assert.Error(t, ValidateBooking(req))
}

func TestValidateInventory(t *testing.T) {
	assert.NoError(t, ValidateEquipment(models.EquipmentRequest{Name: "Ventilator", Quantity: 3}))
	assert.Error(t, ValidateEquipment(models.EquipmentRequest{Name: "Ventilator", Condition: "broken"}))
	assert.Error(t, ValidateMedicine(models.MedicineRequest{Name: "Paracetamol", Quantity: -4}))
	assert.NoError(t, ValidateMedicine(models.MedicineRequest{Name: "Paracetamol", Quantity: 40, Status: models.MedicineLow}))
}
