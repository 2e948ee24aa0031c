package models

import (
	"time"
)

type EquipmentCondition string

const (
	EquipmentWorking     EquipmentCondition = "working"
	EquipmentMaintenance EquipmentCondition = "maintenance"
	EquipmentOutOfOrder  EquipmentCondition = "out_of_order"
)

type MedicineStatus string

const (
	MedicineAdequate   MedicineStatus = "adequate"
	MedicineLow        MedicineStatus = "low"
	MedicineOutOfStock MedicineStatus = "out_of_stock"
)

// Equipment model
type Equipment struct {
	ID          string             `gorm:"primaryKey;column:id" json:"id"`
	HospitalID  string             `gorm:"column:hospital_id;not null;index" json:"hospital_id"`
	Name        string             `gorm:"column:name;not null" json:"name"`
	Quantity    int                `gorm:"column:quantity;not null;default:0;check:quantity >= 0" json:"quantity"`
	Condition   EquipmentCondition `gorm:"column:condition;check:condition IN ('working', 'maintenance', 'out_of_order');not null;default:working" json:"condition"`
	LastUpdated time.Time          `gorm:"column:last_updated;not null" json:"last_updated"`
}

func (Equipment) TableName() string {
	return "equipment"
}

// Medicine model
type Medicine struct {
	ID          string         `gorm:"primaryKey;column:id" json:"id"`
	HospitalID  string         `gorm:"column:hospital_id;not null;index" json:"hospital_id"`
	Name        string         `gorm:"column:name;not null" json:"name"`
	Quantity    int            `gorm:"column:quantity;not null;default:0;check:quantity >= 0" json:"quantity"`
	Unit        string         `gorm:"column:unit" json:"unit"`
	Status      MedicineStatus `gorm:"column:status;check:status IN ('adequate', 'low', 'out_of_stock');not null;default:adequate" json:"status"`
	LastUpdated time.Time      `gorm:"column:last_updated;not null" json:"last_updated"`
}

func (Medicine) TableName() string {
	return "medicine"
}

// Resources is the inventory of one hospital.
type Resources struct {
	Equipment []Equipment `json:"equipment"`
	Medicines []Medicine  `json:"medicines"`
}
