package services

import (
	"SMCHealth/exceptions"
	"SMCHealth/models"
	"SMCHealth/notifier"
	"SMCHealth/utils"
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// InventoryService manages equipment and medicine stock of a hospital.
type InventoryService struct {
	inventory InventoryStore
	hospitals HospitalStore
	alerter   notifier.Alerter
	log       *zap.Logger
	now       func() time.Time
}

func NewInventoryService(inventory InventoryStore, hospitals HospitalStore, alerter notifier.Alerter, log *zap.Logger) *InventoryService {
	return &InventoryService{inventory: inventory, hospitals: hospitals, alerter: alerter, log: log, now: time.Now}
}

func (s *InventoryService) Resources(ctx context.Context, hospitalID string) (*models.Resources, error) {
	equipment, err := s.inventory.ListEquipment(ctx, hospitalID)
	if err != nil {
		return nil, err
	}
	medicines, err := s.inventory.ListMedicine(ctx, hospitalID)
	if err != nil {
		return nil, err
	}
	return &models.Resources{Equipment: equipment, Medicines: medicines}, nil
}

func (s *InventoryService) CreateEquipment(ctx context.Context, hospitalID string, req models.EquipmentRequest) (*models.Equipment, error) {
	if err := utils.ValidateEquipment(req); err != nil {
		return nil, exceptions.InvalidInput(err)
	}
	equipment := &models.Equipment{
		HospitalID:  hospitalID,
		Name:        req.Name,
		Quantity:    req.Quantity,
		Condition:   req.Condition,
		LastUpdated: s.now().UTC(),
	}
	if equipment.Condition == "" {
		equipment.Condition = models.EquipmentWorking
	}
	if err := s.inventory.CreateEquipment(ctx, equipment); err != nil {
		return nil, err
	}
	return equipment, nil
}

func (s *InventoryService) UpdateEquipment(ctx context.Context, hospitalID, id string, req models.EquipmentRequest) (*models.Equipment, error) {
	if err := utils.ValidateEquipment(req); err != nil {
		return nil, exceptions.InvalidInput(err)
	}
	equipment, err := s.inventory.GetEquipment(ctx, hospitalID, id)
	if err != nil {
		return nil, err
	}
	equipment.Name = req.Name
	equipment.Quantity = req.Quantity
	if req.Condition != "" {
		equipment.Condition = req.Condition
	}
	equipment.LastUpdated = s.now().UTC()
	if err := s.inventory.UpdateEquipment(ctx, equipment); err != nil {
		return nil, err
	}
	return equipment, nil
}

func (s *InventoryService) DeleteEquipment(ctx context.Context, hospitalID, id string) error {
	return s.inventory.DeleteEquipment(ctx, hospitalID, id)
}

func (s *InventoryService) CreateMedicine(ctx context.Context, hospitalID string, req models.MedicineRequest) (*models.Medicine, error) {
	if err := utils.ValidateMedicine(req); err != nil {
		return nil, exceptions.InvalidInput(err)
	}
	medicine := &models.Medicine{
		HospitalID:  hospitalID,
		Name:        req.Name,
		Quantity:    req.Quantity,
		Unit:        req.Unit,
		Status:      req.Status,
		LastUpdated: s.now().UTC(),
	}
	if medicine.Status == "" {
		medicine.Status = models.MedicineAdequate
	}
	if err := s.inventory.CreateMedicine(ctx, medicine); err != nil {
		return nil, err
	}
	return medicine, nil
}

// UpdateMedicine rewrites the stock entry and alerts the hospital when it runs out.
func (s *InventoryService) UpdateMedicine(ctx context.Context, hospitalID, id string, req models.MedicineRequest) (*models.Medicine, error) {
	if err := utils.ValidateMedicine(req); err != nil {
		return nil, exceptions.InvalidInput(err)
	}
	medicine, err := s.inventory.GetMedicine(ctx, hospitalID, id)
	if err != nil {
		return nil, err
	}
	medicine.Name = req.Name
	medicine.Quantity = req.Quantity
	medicine.Unit = req.Unit
	if req.Status != "" {
		medicine.Status = req.Status
	}
	medicine.LastUpdated = s.now().UTC()
	if err := s.inventory.UpdateMedicine(ctx, medicine); err != nil {
		return nil, err
	}

	if medicine.Status == models.MedicineOutOfStock {
		s.alertOutOfStock(ctx, medicine)
	}
	return medicine, nil
}

func (s *InventoryService) DeleteMedicine(ctx context.Context, hospitalID, id string) error {
	return s.inventory.DeleteMedicine(ctx, hospitalID, id)
}

func (s *InventoryService) alertOutOfStock(ctx context.Context, medicine *models.Medicine) {
	hospital, err := s.hospitals.GetByID(ctx, medicine.HospitalID)
	if err != nil {
		s.log.Warn("failed to load hospital for stock alert", zap.String("hospital_id", medicine.HospitalID), zap.Error(err))
		return
	}
	s.alerter.Raise(ctx, notifier.Alert{
		Kind:       notifier.KindOutOfStock,
		HospitalID: hospital.ID,
		To:         hospital.ContactEmail,
		Subject:    fmt.Sprintf("%s: %s out of stock", hospital.Name, medicine.Name),
		Body:       fmt.Sprintf("%s is marked out of stock at %s.", medicine.Name, hospital.Name),
		Ref:        medicine.ID,
	})
}
