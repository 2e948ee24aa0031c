package repositories

import (
	"SMCHealth/cache"
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
	InventoryCacheExpiry = 7 * 24 * time.Hour
)

// InventoryRepository stores equipment and medicine rows of a hospital.
type InventoryRepository struct {
	db    *gorm.DB
	cache *cache.Cache
	log   *zap.Logger
}

func NewInventoryRepository(db *gorm.DB, cache *cache.Cache, log *zap.Logger) *InventoryRepository {
	return &InventoryRepository{db: db, cache: cache, log: log}
}

func (r *InventoryRepository) CreateEquipment(ctx context.Context, equipment *models.Equipment) error {
	if equipment.ID == "" {
		equipment.ID = uuid.New().String()
	}
	if err := conn(ctx, r.db).Create(equipment).Error; err != nil {
		return fmt.Errorf("failed to create equipment: %w", translate(err))
	}
	r.invalidate(ctx, "equipment_cache", equipment.HospitalID)
	return nil
}

func (r *InventoryRepository) GetEquipment(ctx context.Context, hospitalID, id string) (*models.Equipment, error) {
	var equipment models.Equipment
	err := conn(ctx, r.db).First(&equipment, "id = ? AND hospital_id = ?", id, hospitalID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, exceptions.ErrEquipmentNotFound
		}
		return nil, fmt.Errorf("failed to get equipment: %w", translate(err))
	}
	return &equipment, nil
}

// UpdateEquipment writes name, quantity, condition and last_updated of an
// existing row.
func (r *InventoryRepository) UpdateEquipment(ctx context.Context, equipment *models.Equipment) error {
	result := conn(ctx, r.db).
		Model(&models.Equipment{}).
		Where("id = ? AND hospital_id = ?", equipment.ID, equipment.HospitalID).
		Updates(map[string]interface{}{
			"name":         equipment.Name,
			"quantity":     equipment.Quantity,
			"condition":    equipment.Condition,
			"last_updated": equipment.LastUpdated,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update equipment: %w", translate(result.Error))
	}
	if result.RowsAffected == 0 {
		return exceptions.ErrEquipmentNotFound
	}
	r.invalidate(ctx, "equipment_cache", equipment.HospitalID)
	return nil
}

func (r *InventoryRepository) DeleteEquipment(ctx context.Context, hospitalID, id string) error {
	result := conn(ctx, r.db).Where("id = ? AND hospital_id = ?", id, hospitalID).Delete(&models.Equipment{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete equipment: %w", translate(result.Error))
	}
	if result.RowsAffected == 0 {
		return exceptions.ErrEquipmentNotFound
	}
	r.invalidate(ctx, "equipment_cache", hospitalID)
	return nil
}

func (r *InventoryRepository) ListEquipment(ctx context.Context, hospitalID string) ([]models.Equipment, error) {
	var equipment []models.Equipment
	err := r.cached(ctx, "equipment_cache", hospitalID, &equipment, func(db *gorm.DB) error {
		return db.Where("hospital_id = ?", hospitalID).Order("name").Find(&equipment).Error
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list equipment: %w", err)
	}
	return equipment, nil
}

func (r *InventoryRepository) CreateMedicine(ctx context.Context, medicine *models.Medicine) error {
	if medicine.ID == "" {
		medicine.ID = uuid.New().String()
	}
	if err := conn(ctx, r.db).Create(medicine).Error; err != nil {
		return fmt.Errorf("failed to create medicine: %w", translate(err))
	}
	r.invalidate(ctx, "medicine_cache", medicine.HospitalID)
	return nil
}

func (r *InventoryRepository) GetMedicine(ctx context.Context, hospitalID, id string) (*models.Medicine, error) {
	var medicine models.Medicine
	err := conn(ctx, r.db).First(&medicine, "id = ? AND hospital_id = ?", id, hospitalID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, exceptions.ErrMedicineNotFound
		}
		return nil, fmt.Errorf("failed to get medicine: %w", translate(err))
	}
	return &medicine, nil
}

func (r *InventoryRepository) UpdateMedicine(ctx context.Context, medicine *models.Medicine) error {
	result := conn(ctx, r.db).
		Model(&models.Medicine{}).
		Where("id = ? AND hospital_id = ?", medicine.ID, medicine.HospitalID).
		Updates(map[string]interface{}{
			"name":         medicine.Name,
			"quantity":     medicine.Quantity,
			"unit":         medicine.Unit,
			"status":       medicine.Status,
			"last_updated": medicine.LastUpdated,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update medicine: %w", translate(result.Error))
	}
	if result.RowsAffected == 0 {
		return exceptions.ErrMedicineNotFound
	}
	r.invalidate(ctx, "medicine_cache", medicine.HospitalID)
	return nil
}

func (r *InventoryRepository) DeleteMedicine(ctx context.Context, hospitalID, id string) error {
	result := conn(ctx, r.db).Where("id = ? AND hospital_id = ?", id, hospitalID).Delete(&models.Medicine{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete medicine: %w", translate(result.Error))
	}
	if result.RowsAffected == 0 {
		return exceptions.ErrMedicineNotFound
	}
	r.invalidate(ctx, "medicine_cache", hospitalID)
	return nil
}

func (r *InventoryRepository) ListMedicine(ctx context.Context, hospitalID string) ([]models.Medicine, error) {
	var medicines []models.Medicine
	err := r.cached(ctx, "medicine_cache", hospitalID, &medicines, func(db *gorm.DB) error {
		return db.Where("hospital_id = ?", hospitalID).Order("name").Find(&medicines).Error
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list medicine: %w", err)
	}
	return medicines, nil
}

// cached serves dest from Redis when present, otherwise loads it and fills the cache.
func (r *InventoryRepository) cached(ctx context.Context, prefix, hospitalID string, dest interface{}, load func(db *gorm.DB) error) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cacheKey := fmt.Sprintf("%s:%s", prefix, hospitalID)
	if hit, err := r.cache.GetJSON(ctx, cacheKey, dest); err != nil {
		r.log.Warn("failed to read inventory cache", zap.String("key", cacheKey), zap.Error(err))
	} else if hit {
		return nil
	}

	if err := load(conn(ctx, r.db)); err != nil {
		return translate(err)
	}

	if err := r.cache.SetJSON(ctx, cacheKey, dest, InventoryCacheExpiry); err != nil {
		r.log.Warn("failed to write inventory cache", zap.String("key", cacheKey), zap.Error(err))
	}
	return nil
}

func (r *InventoryRepository) invalidate(ctx context.Context, prefix, hospitalID string) {
	cacheKey := fmt.Sprintf("%s:%s", prefix, hospitalID)
	if err := r.cache.Delete(ctx, cacheKey); err != nil {
		r.log.Warn("failed to invalidate inventory cache", zap.String("key", cacheKey), zap.Error(err))
	}
}
