package services

import (
	"SMCHealth/models"
	"context"
	"time"
)

// Transactor runs fn inside one database transaction carried by ctx.
type Transactor interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

type HospitalStore interface {
	Create(ctx context.Context, hospital *models.Hospital) error
	GetByID(ctx context.Context, id string) (*models.Hospital, error)
	List(ctx context.Context) ([]models.Hospital, error)
	GetBed(ctx context.Context, hospitalID string, bedType models.BedType) (*models.HospitalBed, error)
	ListBeds(ctx context.Context, hospitalID string) ([]models.HospitalBed, error)
	DecrementAvailable(ctx context.Context, hospitalID string, bedType models.BedType) (bool, error)
	IncrementAvailable(ctx context.Context, hospitalID string, bedType models.BedType) (bool, error)
}

type PatientStore interface {
	Create(ctx context.Context, patient *models.Patient) error
	GetByID(ctx context.Context, hospitalID, id string) (*models.Patient, error)
	List(ctx context.Context, hospitalID string) ([]models.Patient, error)
	MarkDischarged(ctx context.Context, hospitalID, id string, at time.Time) (bool, error)
	CountOPDSince(ctx context.Context, hospitalID string, since time.Time) (int, error)
	CountCurrentIPD(ctx context.Context, hospitalID string) (int, error)
}

type DoctorStore interface {
	Create(ctx context.Context, doctor *models.Doctor) error
	GetByID(ctx context.Context, hospitalID, id string) (*models.Doctor, error)
	List(ctx context.Context, hospitalID string, availableOnly bool) ([]models.Doctor, error)
	ToggleAvailability(ctx context.Context, hospitalID, id string) (*models.Doctor, error)
}

type AppointmentStore interface {
	Create(ctx context.Context, appointment *models.Appointment) error
	GetByID(ctx context.Context, hospitalID, id string) (*models.Appointment, error)
	ListByHospital(ctx context.Context, hospitalID string) ([]models.Appointment, error)
	ListByCitizen(ctx context.Context, citizenID string) ([]models.Appointment, error)
	UpdateStatus(ctx context.Context, hospitalID, id string, from, to models.AppointmentStatus, notes *string) (bool, error)
}

type InventoryStore interface {
	CreateEquipment(ctx context.Context, equipment *models.Equipment) error
	GetEquipment(ctx context.Context, hospitalID, id string) (*models.Equipment, error)
	UpdateEquipment(ctx context.Context, equipment *models.Equipment) error
	DeleteEquipment(ctx context.Context, hospitalID, id string) error
	ListEquipment(ctx context.Context, hospitalID string) ([]models.Equipment, error)
	CreateMedicine(ctx context.Context, medicine *models.Medicine) error
	GetMedicine(ctx context.Context, hospitalID, id string) (*models.Medicine, error)
	UpdateMedicine(ctx context.Context, medicine *models.Medicine) error
	DeleteMedicine(ctx context.Context, hospitalID, id string) error
	ListMedicine(ctx context.Context, hospitalID string) ([]models.Medicine, error)
}
