package repositories

import (
	"SMCHealth/cache"
	"SMCHealth/database"
	"SMCHealth/exceptions"
	"SMCHealth/models"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	DoctorCacheExpiry = 7 * 24 * time.Hour
)

type DoctorRepository struct {
	db     *gorm.DB
	cache  *cache.Cache
	locker *database.Locker
	log    *zap.Logger
}

func NewDoctorRepository(db *gorm.DB, cache *cache.Cache, locker *database.Locker, log *zap.Logger) *DoctorRepository {
	return &DoctorRepository{db: db, cache: cache, locker: locker, log: log}
}

// Create inserts a doctor. A phone number already registered to another doctor
// of the same hospital is a duplicate; names may repeat.
func (r *DoctorRepository) Create(ctx context.Context, doctor *models.Doctor) error {
	if doctor.Phone != "" {
		lockKey := fmt.Sprintf("doctor_lock:%s:%s", doctor.HospitalID, doctor.Phone)
		release, err := r.locker.Acquire(ctx, lockKey)
		if err != nil {
			return fmt.Errorf("failed to lock doctor creation: %w", err)
		}
		defer release()

		// Check if a record with the same unique fields already exists
		var existing models.Doctor
		err = conn(ctx, r.db).
			Where("hospital_id = ? AND phone = ?", doctor.HospitalID, doctor.Phone).
			First(&existing).Error
		if err == nil {
			return exceptions.ErrDuplicateDoctor
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("failed to check for existing doctor: %w", translate(err))
		}
	}

	if doctor.ID == "" {
		doctor.ID = uuid.New().String()
	}
	if err := conn(ctx, r.db).Omit("Hospital").Create(doctor).Error; err != nil {
		if isUniqueViolation(err) {
			return exceptions.ErrDuplicateDoctor
		}
		return fmt.Errorf("failed to create doctor: %w", translate(err))
	}

	r.invalidate(ctx, doctor.HospitalID)
	return nil
}

func (r *DoctorRepository) GetByID(ctx context.Context, hospitalID, id string) (*models.Doctor, error) {
	var doctor models.Doctor
	err := conn(ctx, r.db).First(&doctor, "id = ? AND hospital_id = ?", id, hospitalID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, exceptions.ErrDoctorNotFound
		}
		return nil, fmt.Errorf("failed to get doctor: %w", translate(err))
	}
	return &doctor, nil
}

func (r *DoctorRepository) List(ctx context.Context, hospitalID string, availableOnly bool) ([]models.Doctor, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cacheKey := r.getDoctorsCacheKey(hospitalID, availableOnly)
	var doctors []models.Doctor
	if hit, err := r.cache.GetJSON(ctx, cacheKey, &doctors); err != nil {
		r.log.Warn("failed to get doctors from cache", zap.String("key", cacheKey), zap.Error(err))
	} else if hit {
		return doctors, nil
	}

	query := conn(ctx, r.db).Where("hospital_id = ?", hospitalID)
	if availableOnly {
		query = query.Where("is_available = ?", true)
	}
	if err := query.Order("name").Find(&doctors).Error; err != nil {
		return nil, fmt.Errorf("failed to list doctors: %w", translate(err))
	}

	if err := r.cache.SetJSON(ctx, cacheKey, doctors, DoctorCacheExpiry); err != nil {
		r.log.Warn("failed to set doctors in cache", zap.String("key", cacheKey), zap.Error(err))
	}
	return doctors, nil
}

// ToggleAvailability flips is_available in a single statement and returns the
// updated doctor.
func (r *DoctorRepository) ToggleAvailability(ctx context.Context, hospitalID, id string) (*models.Doctor, error) {
	result := conn(ctx, r.db).
		Model(&models.Doctor{}).
		Where("id = ? AND hospital_id = ?", id, hospitalID).
		Update("is_available", gorm.Expr("NOT is_available"))
	if result.Error != nil {
		return nil, fmt.Errorf("failed to toggle doctor: %w", translate(result.Error))
	}
	if result.RowsAffected == 0 {
		return nil, exceptions.ErrDoctorNotFound
	}

	r.invalidate(ctx, hospitalID)
	return r.GetByID(ctx, hospitalID, id)
}

func (r *DoctorRepository) invalidate(ctx context.Context, hospitalID string) {
	pattern := fmt.Sprintf("doctors_cache:%s:*", hospitalID)
	if err := r.cache.DeleteAll(ctx, pattern); err != nil {
		r.log.Warn("failed to invalidate doctors cache", zap.String("pattern", pattern), zap.Error(err))
	}
}

func (r *DoctorRepository) getDoctorsCacheKey(hospitalID string, availableOnly bool) string {
	if availableOnly {
		return fmt.Sprintf("doctors_cache:%s:available", hospitalID)
	}
	return fmt.Sprintf("doctors_cache:%s:all", hospitalID)
}
