package repositories

import (
	"SMCHealth/exceptions"
	"SMCHealth/models"
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AppointmentRepository struct {
	db *gorm.DB
}

func NewAppointmentRepository(db *gorm.DB) *AppointmentRepository {
	return &AppointmentRepository{db: db}
}

func (r *AppointmentRepository) Create(ctx context.Context, appointment *models.Appointment) error {
	if appointment.ID == "" {
		appointment.ID = uuid.New().String()
	}
	if err := conn(ctx, r.db).Omit("Doctor").Create(appointment).Error; err != nil {
		return fmt.Errorf("failed to create appointment: %w", translate(err))
	}
	return nil
}

func (r *AppointmentRepository) GetByID(ctx context.Context, hospitalID, id string) (*models.Appointment, error) {
	var appointment models.Appointment
	err := conn(ctx, r.db).
		Preload("Doctor").
		First(&appointment, "id = ? AND hospital_id = ?", id, hospitalID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, exceptions.ErrAppointmentNotFound
		}
		return nil, fmt.Errorf("failed to get appointment: %w", translate(err))
	}
	return &appointment, nil
}

func (r *AppointmentRepository) ListByHospital(ctx context.Context, hospitalID string) ([]models.Appointment, error) {
	var appointments []models.Appointment
	err := conn(ctx, r.db).
		Preload("Doctor").
		Where("hospital_id = ?", hospitalID).
		Order("appointment_date DESC").
		Find(&appointments).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list appointments: %w", translate(err))
	}
	return appointments, nil
}

func (r *AppointmentRepository) ListByCitizen(ctx context.Context, citizenID string) ([]models.Appointment, error) {
	var appointments []models.Appointment
	err := conn(ctx, r.db).
		Preload("Doctor").
		Where("citizen_id = ?", citizenID).
		Order("appointment_date DESC").
		Find(&appointments).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list appointments: %w", translate(err))
	}
	return appointments, nil
}

// UpdateStatus moves the appointment from one status to another. It reports
// false when the stored status is no longer from.
func (r *AppointmentRepository) UpdateStatus(ctx context.Context, hospitalID, id string, from, to models.AppointmentStatus, notes *string) (bool, error) {
	updates := map[string]interface{}{"status": to}
	if notes != nil {
		updates["notes"] = *notes
	}
	result := conn(ctx, r.db).
		Model(&models.Appointment{}).
		Where("id = ? AND hospital_id = ? AND status = ?", id, hospitalID, from).
		Updates(updates)
	if result.Error != nil {
		return false, fmt.Errorf("failed to update appointment status: %w", translate(result.Error))
	}
	return result.RowsAffected == 1, nil
}
