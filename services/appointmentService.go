package services

import (
	"SMCHealth/events"
	"SMCHealth/exceptions"
	"SMCHealth/models"
	"SMCHealth/utils"
	"context"

	"go.uber.org/zap"
)

// strictTransitions lists the moves allowed when the strict policy is on.
// completed and cancelled are terminal.
var strictTransitions = map[models.AppointmentStatus][]models.AppointmentStatus{
	models.AppointmentPending:   {models.AppointmentConfirmed, models.AppointmentCancelled, models.AppointmentCompleted},
	models.AppointmentConfirmed: {models.AppointmentCompleted, models.AppointmentCancelled},
}

func transitionAllowed(from, to models.AppointmentStatus) bool {
	for _, next := range strictTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

type AppointmentService struct {
	appointments AppointmentStore
	doctors      DoctorStore
	retry        RetryPolicy
	strict       bool
	publisher    events.Publisher
	log          *zap.Logger
}

// NewAppointmentService builds the service. With strict set, status updates
// must follow strictTransitions; otherwise any valid status overwrites.
func NewAppointmentService(appointments AppointmentStore, doctors DoctorStore, retry RetryPolicy, strict bool, publisher events.Publisher, log *zap.Logger) *AppointmentService {
	return &AppointmentService{
		appointments: appointments,
		doctors:      doctors,
		retry:        retry,
		strict:       strict,
		publisher:    publisher,
		log:          log,
	}
}

// Book creates a pending appointment for a citizen with a doctor of the hospital.
func (s *AppointmentService) Book(ctx context.Context, citizenID string, req models.BookRequest) (*models.Appointment, error) {
	if err := utils.ValidateBooking(req); err != nil {
		return nil, exceptions.InvalidInput(err)
	}
	if _, err := s.doctors.GetByID(ctx, req.HospitalID, req.DoctorID); err != nil {
		return nil, err
	}

	appointment := &models.Appointment{
		HospitalID:      req.HospitalID,
		DoctorID:        req.DoctorID,
		CitizenID:       citizenID,
		PatientName:     req.PatientName,
		PatientAge:      req.PatientAge,
		PatientGender:   req.PatientGender,
		PatientPhone:    req.PatientPhone,
		AppointmentDate: req.AppointmentDate,
		AppointmentTime: req.AppointmentTime,
		Reason:          req.Reason,
		Status:          models.AppointmentPending,
	}
	if err := s.appointments.Create(ctx, appointment); err != nil {
		return nil, err
	}
	return appointment, nil
}

func (s *AppointmentService) ListForHospital(ctx context.Context, hospitalID string) ([]models.Appointment, error) {
	return s.appointments.ListByHospital(ctx, hospitalID)
}

func (s *AppointmentService) ListForCitizen(ctx context.Context, citizenID string) ([]models.Appointment, error) {
	return s.appointments.ListByCitizen(ctx, citizenID)
}

type statusEvent struct {
	AppointmentID string                   `json:"appointment_id"`
	DoctorID      string                   `json:"doctor_id"`
	From          models.AppointmentStatus `json:"from"`
	To            models.AppointmentStatus `json:"to"`
}

// SetStatus moves an appointment of the hospital to req.Status. Notes are
// replaced only when given and non-empty.
func (s *AppointmentService) SetStatus(ctx context.Context, hospitalID, appointmentID string, req models.StatusRequest) (*models.Appointment, error) {
	if err := utils.ValidateStatus(req); err != nil {
		return nil, exceptions.InvalidInput(err)
	}
	if !req.Status.Valid() {
		return nil, exceptions.ErrInvalidStatus
	}

	notes := req.Notes
	if notes != nil && *notes == "" {
		notes = nil
	}

	var from models.AppointmentStatus
	err := s.retry.Do(ctx, func(ctx context.Context) error {
		current, err := s.appointments.GetByID(ctx, hospitalID, appointmentID)
		if err != nil {
			return err
		}
		from = current.Status
		if s.strict && !transitionAllowed(from, req.Status) {
			return exceptions.ErrInvalidTransition
		}
		updated, err := s.appointments.UpdateStatus(ctx, hospitalID, appointmentID, from, req.Status, notes)
		if err != nil {
			return err
		}
		if !updated {
			// status moved underneath us, read it again
			return exceptions.ErrConflict
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	appointment, err := s.appointments.GetByID(ctx, hospitalID, appointmentID)
	if err != nil {
		return nil, err
	}

	publish(ctx, s.publisher, s.log, events.New(events.AppointmentStatusChanged, hospitalID, statusEvent{
		AppointmentID: appointment.ID,
		DoctorID:      appointment.DoctorID,
		From:          from,
		To:            appointment.Status,
	}))
	return appointment, nil
}
