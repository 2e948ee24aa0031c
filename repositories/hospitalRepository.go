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

type HospitalRepository struct {
	db *gorm.DB
}

func NewHospitalRepository(db *gorm.DB) *HospitalRepository {
	return &HospitalRepository{db: db}
}

// Create inserts the hospital together with its bed rows.
func (r *HospitalRepository) Create(ctx context.Context, hospital *models.Hospital) error {
	if hospital.ID == "" {
		hospital.ID = uuid.New().String()
	}
	for i := range hospital.Beds {
		hospital.Beds[i].HospitalID = hospital.ID
	}
	if err := conn(ctx, r.db).Create(hospital).Error; err != nil {
		return fmt.Errorf("failed to create hospital: %w", translate(err))
	}
	return nil
}

func (r *HospitalRepository) GetByID(ctx context.Context, id string) (*models.Hospital, error) {
	var hospital models.Hospital
	err := conn(ctx, r.db).
		Preload("Beds", func(db *gorm.DB) *gorm.DB {
			return db.Order("bed_type")
		}).
		First(&hospital, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, exceptions.ErrHospitalNotFound
		}
		return nil, fmt.Errorf("failed to get hospital: %w", translate(err))
	}
	return &hospital, nil
}

// List returns every hospital with its beds, ordered by name.
func (r *HospitalRepository) List(ctx context.Context) ([]models.Hospital, error) {
	var hospitals []models.Hospital
	err := conn(ctx, r.db).
		Preload("Beds", func(db *gorm.DB) *gorm.DB {
			return db.Order("bed_type")
		}).
		Order("name").
		Find(&hospitals).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list hospitals: %w", translate(err))
	}
	return hospitals, nil
}

func (r *HospitalRepository) GetBed(ctx context.Context, hospitalID string, bedType models.BedType) (*models.HospitalBed, error) {
	var bed models.HospitalBed
	err := conn(ctx, r.db).
		First(&bed, "hospital_id = ? AND bed_type = ?", hospitalID, bedType).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, exceptions.ErrNoSuchBedType
		}
		return nil, fmt.Errorf("failed to get bed: %w", translate(err))
	}
	return &bed, nil
}

func (r *HospitalRepository) ListBeds(ctx context.Context, hospitalID string) ([]models.HospitalBed, error) {
	var beds []models.HospitalBed
	err := conn(ctx, r.db).
		Where("hospital_id = ?", hospitalID).
		Order("bed_type").
		Find(&beds).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list beds: %w", translate(err))
	}
	return beds, nil
}

// DecrementAvailable claims one bed. It reports false when no bed was free.
func (r *HospitalRepository) DecrementAvailable(ctx context.Context, hospitalID string, bedType models.BedType) (bool, error) {
	result := conn(ctx, r.db).
		Model(&models.HospitalBed{}).
		Where("hospital_id = ? AND bed_type = ? AND available > 0", hospitalID, bedType).
		Update("available", gorm.Expr("available - 1"))
	if result.Error != nil {
		return false, fmt.Errorf("failed to reserve bed: %w", translate(result.Error))
	}
	return result.RowsAffected == 1, nil
}

// IncrementAvailable returns one bed. It reports false when the counter is
// already at its total.
func (r *HospitalRepository) IncrementAvailable(ctx context.Context, hospitalID string, bedType models.BedType) (bool, error) {
	result := conn(ctx, r.db).
		Model(&models.HospitalBed{}).
		Where("hospital_id = ? AND bed_type = ? AND available < total", hospitalID, bedType).
		Update("available", gorm.Expr("available + 1"))
	if result.Error != nil {
		return false, fmt.Errorf("failed to release bed: %w", translate(result.Error))
	}
	return result.RowsAffected == 1, nil
}
