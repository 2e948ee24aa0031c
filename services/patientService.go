package services

import (
	"SMCHealth/events"
	"SMCHealth/exceptions"
	"SMCHealth/models"
	"SMCHealth/utils"
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
)

// PatientService runs admissions and discharges against the bed ledger.
type PatientService struct {
	tx        Transactor
	patients  PatientStore
	doctors   DoctorStore
	ledger    *BedLedger
	retry     RetryPolicy
	publisher events.Publisher
	log       *zap.Logger
	now       func() time.Time
}

func NewPatientService(tx Transactor, patients PatientStore, doctors DoctorStore, ledger *BedLedger, retry RetryPolicy, publisher events.Publisher, log *zap.Logger) *PatientService {
	return &PatientService{
		tx:        tx,
		patients:  patients,
		doctors:   doctors,
		ledger:    ledger,
		retry:     retry,
		publisher: publisher,
		log:       log,
		now:       time.Now,
	}
}

type patientEvent struct {
	PatientID   string             `json:"patient_id"`
	PatientType models.PatientType `json:"patient_type"`
	BedType     models.BedType     `json:"bed_type,omitempty"`
	DoctorID    *string            `json:"doctor_id,omitempty"`
	At          time.Time          `json:"at"`
}

// Admit registers a patient. IPD admissions reserve a bed in the same
// transaction that creates the patient.
func (s *PatientService) Admit(ctx context.Context, hospitalID string, req models.AdmitRequest) (*models.Patient, error) {
	if err := utils.ValidateAdmit(req); err != nil {
		return nil, exceptions.InvalidInput(err)
	}
	if req.PatientType == models.PatientTypeIPD {
		if req.BedType == "" {
			return nil, exceptions.ErrMissingBedType
		}
		if !req.BedType.Valid() {
			return nil, exceptions.ErrInvalidBedType
		}
	}

	now := s.now().UTC()
	var patient *models.Patient
	var bed *models.HospitalBed

	err := s.retry.Do(ctx, func(ctx context.Context) error {
		patient = newPatient(hospitalID, req, now)
		bed = nil
		return s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
			if patient.DoctorID != nil {
				if _, err := s.doctors.GetByID(ctx, hospitalID, *patient.DoctorID); err != nil {
					return err
				}
			}

			if patient.PatientType == models.PatientTypeIPD {
				reserved, err := s.ledger.Reserve(ctx, hospitalID, patient.BedType)
				if errors.Is(err, exceptions.ErrNoSuchBedType) {
					return exceptions.ErrInvalidBedType
				}
				if err != nil {
					return err
				}
				bed = reserved
			}

			return s.patients.Create(ctx, patient)
		})
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("patient admitted",
		zap.String("hospital_id", hospitalID),
		zap.String("patient_id", patient.ID),
		zap.String("patient_type", string(patient.PatientType)))
	publish(ctx, s.publisher, s.log, events.New(events.PatientAdmitted, hospitalID, patientEvent{
		PatientID:   patient.ID,
		PatientType: patient.PatientType,
		BedType:     patient.BedType,
		DoctorID:    patient.DoctorID,
		At:          patient.AdmissionDate,
	}))
	if bed != nil {
		s.ledger.AnnounceReserved(ctx, hospitalID, patient.ID, bed)
	}
	return patient, nil
}

func newPatient(hospitalID string, req models.AdmitRequest, now time.Time) *models.Patient {
	patient := &models.Patient{
		HospitalID:    hospitalID,
		PatientType:   req.PatientType,
		Name:          req.Name,
		Age:           req.Age,
		Gender:        req.Gender,
		Disease:       req.Disease,
		AdmissionDate: now,
	}
	if req.DoctorID != "" {
		doctorID := req.DoctorID
		patient.DoctorID = &doctorID
	}
	if req.PatientType == models.PatientTypeIPD {
		patient.BedType = req.BedType
		patient.RoomNumber = req.RoomNumber
		patient.BedNumber = req.BedNumber
		if req.AdmissionDate != nil {
			patient.AdmissionDate = req.AdmissionDate.UTC()
		}
	}
	return patient
}

// Discharge closes the patient's stay. The bed goes back to the ledger only
// for the call that actually set the discharge date, so repeating it is a no-op.
func (s *PatientService) Discharge(ctx context.Context, hospitalID, patientID string) (*models.Patient, error) {
	var patient *models.Patient
	var bed *models.HospitalBed
	var discharged, overReleased bool

	err := s.retry.Do(ctx, func(ctx context.Context) error {
		bed, discharged, overReleased = nil, false, false
		return s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
			marked, err := s.patients.MarkDischarged(ctx, hospitalID, patientID, s.now().UTC())
			if err != nil {
				return err
			}
			stored, err := s.patients.GetByID(ctx, hospitalID, patientID)
			if err != nil {
				return err
			}
			patient, discharged = stored, marked
			if !marked || stored.PatientType != models.PatientTypeIPD || stored.BedType == "" {
				return nil
			}

			released, err := s.ledger.Release(ctx, hospitalID, stored.BedType)
			if errors.Is(err, exceptions.ErrBedOverRelease) {
				bed, overReleased = released, true
				return nil
			}
			if err != nil {
				return err
			}
			bed = released
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	if !discharged {
		return patient, nil
	}

	s.log.Info("patient discharged",
		zap.String("hospital_id", hospitalID),
		zap.String("patient_id", patient.ID))
	publish(ctx, s.publisher, s.log, events.New(events.PatientDischarged, hospitalID, patientEvent{
		PatientID:   patient.ID,
		PatientType: patient.PatientType,
		BedType:     patient.BedType,
		DoctorID:    patient.DoctorID,
		At:          *patient.DischargeDate,
	}))
	switch {
	case overReleased:
		s.ledger.ReportOverRelease(ctx, hospitalID, patient.ID, bed)
	case bed != nil:
		s.ledger.AnnounceReleased(ctx, hospitalID, patient.ID, bed)
	}
	return patient, nil
}

func (s *PatientService) Get(ctx context.Context, hospitalID, patientID string) (*models.Patient, error) {
	return s.patients.GetByID(ctx, hospitalID, patientID)
}

func (s *PatientService) List(ctx context.Context, hospitalID string) ([]models.Patient, error) {
	return s.patients.List(ctx, hospitalID)
}
