package services

import (
	"SMCHealth/exceptions"
	"SMCHealth/models"
	"SMCHealth/utils"
	"context"

	"go.uber.org/zap"
)

type DoctorService struct {
	doctors  DoctorStore
	patients PatientStore
	log      *zap.Logger
}

func NewDoctorService(doctors DoctorStore, patients PatientStore, log *zap.Logger) *DoctorService {
	return &DoctorService{doctors: doctors, patients: patients, log: log}
}

func (s *DoctorService) Create(ctx context.Context, hospitalID string, req models.DoctorRequest) (*models.Doctor, error) {
	if err := utils.ValidateDoctor(req); err != nil {
		return nil, exceptions.InvalidInput(err)
	}

	doctor := &models.Doctor{
		HospitalID:      hospitalID,
		Name:            req.Name,
		Specialization:  req.Specialization,
		OPDTimings:      req.OPDTimings,
		Phone:           req.Phone,
		ExperienceYears: req.ExperienceYears,
		IsAvailable:     true,
	}
	if err := s.doctors.Create(ctx, doctor); err != nil {
		return nil, err
	}
	return doctor, nil
}

// List returns the hospital's doctors; availableOnly narrows it to the ones
// offered during admission.
func (s *DoctorService) List(ctx context.Context, hospitalID string, availableOnly bool) ([]models.Doctor, error) {
	return s.doctors.List(ctx, hospitalID, availableOnly)
}

// ToggleAvailability flips is_available and changes nothing else.
func (s *DoctorService) ToggleAvailability(ctx context.Context, hospitalID, doctorID string) (*models.Doctor, error) {
	doctor, err := s.doctors.ToggleAvailability(ctx, hospitalID, doctorID)
	if err != nil {
		return nil, err
	}
	s.log.Info("doctor availability changed",
		zap.String("hospital_id", hospitalID),
		zap.String("doctor_id", doctorID),
		zap.Bool("is_available", doctor.IsAvailable))
	return doctor, nil
}

func (s *DoctorService) Workload(ctx context.Context, hospitalID string) ([]models.DoctorWorkload, error) {
	doctors, err := s.doctors.List(ctx, hospitalID, false)
	if err != nil {
		return nil, err
	}
	patients, err := s.patients.List(ctx, hospitalID)
	if err != nil {
		return nil, err
	}
	return models.ComputeWorkload(doctors, patients), nil
}
