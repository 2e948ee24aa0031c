package repositories

import (
	"SMCHealth/exceptions"
	"SMCHealth/models"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PatientRepository struct {
	db *gorm.DB
}

func NewPatientRepository(db *gorm.DB) *PatientRepository {
	return &PatientRepository{db: db}
}

func (r *PatientRepository) Create(ctx context.Context, patient *models.Patient) error {
	if patient.ID == "" {
		patient.ID = uuid.New().String()
	}
	if err := conn(ctx, r.db).Omit("Hospital", "Doctor").Create(patient).Error; err != nil {
		return fmt.Errorf("failed to create patient: %w", translate(err))
	}
	return nil
}

func (r *PatientRepository) GetByID(ctx context.Context, hospitalID, id string) (*models.Patient, error) {
	var patient models.Patient
	err := conn(ctx, r.db).
		Preload("Doctor").
		First(&patient, "id = ? AND hospital_id = ?", id, hospitalID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, exceptions.ErrPatientNotFound
		}
		return nil, fmt.Errorf("failed to get patient: %w", translate(err))
	}
	return &patient, nil
}

func (r *PatientRepository) List(ctx context.Context, hospitalID string) ([]models.Patient, error) {
	var patients []models.Patient
	err := conn(ctx, r.db).
		Preload("Doctor").
		Where("hospital_id = ?", hospitalID).
		Order("admission_date DESC").
		Find(&patients).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list patients: %w", translate(err))
	}
	return patients, nil
}

// MarkDischarged sets the discharge date if the patient has none yet. Only the
// caller that gets true owns the bed release.
func (r *PatientRepository) MarkDischarged(ctx context.Context, hospitalID, id string, at time.Time) (bool, error) {
	result := conn(ctx, r.db).
		Model(&models.Patient{}).
		Where("id = ? AND hospital_id = ? AND discharge_date IS NULL", id, hospitalID).
		Update("discharge_date", at)
	if result.Error != nil {
		return false, fmt.Errorf("failed to discharge patient: %w", translate(result.Error))
	}
	return result.RowsAffected == 1, nil
}

func (r *PatientRepository) CountOPDSince(ctx context.Context, hospitalID string, since time.Time) (int, error) {
	var count int64
	err := conn(ctx, r.db).
		Model(&models.Patient{}).
		Where("hospital_id = ? AND patient_type = ? AND admission_date >= ?", hospitalID, models.PatientTypeOPD, since).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count OPD patients: %w", translate(err))
	}
	return int(count), nil
}

func (r *PatientRepository) CountCurrentIPD(ctx context.Context, hospitalID string) (int, error) {
	var count int64
	err := conn(ctx, r.db).
		Model(&models.Patient{}).
		Where("hospital_id = ? AND patient_type = ? AND discharge_date IS NULL", hospitalID, models.PatientTypeIPD).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count IPD patients: %w", translate(err))
	}
	return int(count), nil
}
