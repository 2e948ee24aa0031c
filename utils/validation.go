package utils

import (
	"SMCHealth/models"
	"errors"
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

var genders = []interface{}{"Male", "Female", "Other"}

// ValidateAdmit checks the shape of an admission. Bed type presence and
// membership are checked by the lifecycle against the hospital's beds.
func ValidateAdmit(req models.AdmitRequest) error {
	return validation.ValidateStruct(&req,
		validation.Field(&req.PatientType, validation.Required,
			validation.In(models.PatientTypeOPD, models.PatientTypeIPD).Error("must be OPD or IPD")),
		validation.Field(&req.Name, validation.Required, validation.Length(1, 120)),
		validation.Field(&req.Age, validation.Min(0), validation.Max(150)),
		validation.Field(&req.Gender, validation.In(genders...)),
		validation.Field(&req.DoctorID, is.UUID),
	)
}

func ValidateDoctor(req models.DoctorRequest) error {
	return validation.ValidateStruct(&req,
		validation.Field(&req.Name, validation.Required, validation.Length(2, 120)),
		validation.Field(&req.Specialization, validation.Required),
		validation.Field(&req.Phone, is.E164.Error("must be an E.164 phone number")),
		validation.Field(&req.ExperienceYears, validation.Min(0), validation.Max(80)),
	)
}

func ValidateBooking(req models.BookRequest) error {
	return validation.ValidateStruct(&req,
		validation.Field(&req.HospitalID, validation.Required, is.UUID),
		validation.Field(&req.DoctorID, validation.Required, is.UUID),
		validation.Field(&req.PatientName, validation.Required),
		validation.Field(&req.PatientAge, validation.Min(0), validation.Max(150)),
		validation.Field(&req.PatientGender, validation.Required, validation.In(genders...)),
		validation.Field(&req.PatientPhone, validation.Required),
		validation.Field(&req.AppointmentDate, validation.Required),
		validation.Field(&req.AppointmentTime, validation.Required),
		validation.Field(&req.Reason, validation.Required),
	)
}

func ValidateStatus(req models.StatusRequest) error {
	return validation.ValidateStruct(&req,
		validation.Field(&req.Status, validation.Required),
	)
}

func ValidateOnboard(req models.OnboardRequest) error {
	return validation.ValidateStruct(&req,
		validation.Field(&req.Name, validation.Required, validation.Length(2, 200)),
		validation.Field(&req.ContactEmail, is.EmailFormat),
		validation.Field(&req.Beds, validation.Required, validation.By(validateBeds)),
	)
}

func validateBeds(value interface{}) error {
	beds, _ := value.(map[models.BedType]models.BedCapacity)
	errs := validation.Errors{}
	for bedType, capacity := range beds {
		key := string(bedType)
		if !bedType.Valid() {
			errs[key] = errors.New("unknown bed type")
			continue
		}
		if capacity.Total < 0 {
			errs[key] = errors.New("total must be no less than 0")
			continue
		}
		if capacity.Available != nil && (*capacity.Available < 0 || *capacity.Available > capacity.Total) {
			errs[key] = fmt.Errorf("available must be between 0 and %d", capacity.Total)
		}
	}
	return errs.Filter()
}

func ValidateEquipment(req models.EquipmentRequest) error {
	return validation.ValidateStruct(&req,
		validation.Field(&req.Name, validation.Required),
		validation.Field(&req.Quantity, validation.Min(0)),
		validation.Field(&req.Condition,
			validation.In(models.EquipmentWorking, models.EquipmentMaintenance, models.EquipmentOutOfOrder)),
	)
}

func ValidateMedicine(req models.MedicineRequest) error {
	return validation.ValidateStruct(&req,
		validation.Field(&req.Name, validation.Required),
		validation.Field(&req.Quantity, validation.Min(0)),
		validation.Field(&req.Status,
			validation.In(models.MedicineAdequate, models.MedicineLow, models.MedicineOutOfStock)),
	)
}
