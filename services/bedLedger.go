package services

import (
	"SMCHealth/events"
	"SMCHealth/exceptions"
	"SMCHealth/models"
	"SMCHealth/notifier"
	"context"
	"fmt"

	"go.uber.org/zap"
)

// BedLedger owns the per-hospital bed counters. Every change is a single
// conditional update evaluated by the store, never a read-modify-write here.
type BedLedger struct {
	hospitals HospitalStore
	publisher events.Publisher
	alerter   notifier.Alerter
	log       *zap.Logger
}

func NewBedLedger(hospitals HospitalStore, publisher events.Publisher, alerter notifier.Alerter, log *zap.Logger) *BedLedger {
	return &BedLedger{hospitals: hospitals, publisher: publisher, alerter: alerter, log: log}
}

// Reserve claims one bed of bedType. Call it inside the transaction that
// records the reason for the reservation.
func (l *BedLedger) Reserve(ctx context.Context, hospitalID string, bedType models.BedType) (*models.HospitalBed, error) {
	if _, err := l.hospitals.GetBed(ctx, hospitalID, bedType); err != nil {
		return nil, err
	}
	claimed, err := l.hospitals.DecrementAvailable(ctx, hospitalID, bedType)
	if err != nil {
		return nil, err
	}
	if !claimed {
		return nil, exceptions.ErrNoCapacity
	}
	return l.hospitals.GetBed(ctx, hospitalID, bedType)
}

// Release returns one bed of bedType. When the counter is already at its
// total it is left untouched and ErrBedOverRelease is returned with the bed.
func (l *BedLedger) Release(ctx context.Context, hospitalID string, bedType models.BedType) (*models.HospitalBed, error) {
	bed, err := l.hospitals.GetBed(ctx, hospitalID, bedType)
	if err != nil {
		return nil, err
	}
	released, err := l.hospitals.IncrementAvailable(ctx, hospitalID, bedType)
	if err != nil {
		return nil, err
	}
	if !released {
		return bed, exceptions.ErrBedOverRelease
	}
	return l.hospitals.GetBed(ctx, hospitalID, bedType)
}

func (l *BedLedger) Summary(ctx context.Context, hospitalID string) (models.BedSummary, error) {
	if _, err := l.hospitals.GetByID(ctx, hospitalID); err != nil {
		return models.BedSummary{}, err
	}
	beds, err := l.hospitals.ListBeds(ctx, hospitalID)
	if err != nil {
		return models.BedSummary{}, err
	}
	return models.SummarizeBeds(hospitalID, beds), nil
}

type bedEvent struct {
	BedType   models.BedType `json:"bed_type"`
	Total     int            `json:"total"`
	Available int            `json:"available"`
	PatientID string         `json:"patient_id,omitempty"`
}

// AnnounceReserved publishes a committed reservation and raises capacity alerts.
func (l *BedLedger) AnnounceReserved(ctx context.Context, hospitalID, patientID string, bed *models.HospitalBed) {
	publish(ctx, l.publisher, l.log, events.New(events.BedReserved, hospitalID, bedEvent{
		BedType:   bed.BedType,
		Total:     bed.Total,
		Available: bed.Available,
		PatientID: patientID,
	}))

	hospital, err := l.hospitals.GetByID(ctx, hospitalID)
	if err != nil {
		l.log.Warn("failed to load hospital for capacity alerts", zap.String("hospital_id", hospitalID), zap.Error(err))
		return
	}

	if bed.Available == 0 {
		l.alerter.Raise(ctx, notifier.Alert{
			Kind:       notifier.KindBedTypeExhausted,
			HospitalID: hospitalID,
			To:         hospital.ContactEmail,
			Subject:    fmt.Sprintf("%s: no %s beds left", hospital.Name, bed.BedType),
			Body:       fmt.Sprintf("All %d %s beds at %s are occupied.", bed.Total, bed.BedType, hospital.Name),
			Ref:        string(bed.BedType),
		})
	}

	summary := models.SummarizeBeds(hospitalID, hospital.Beds)
	if summary.EmergencyStatus == models.EmergencyStatusHighLoad {
		l.alerter.Raise(ctx, notifier.Alert{
			Kind:       notifier.KindHighLoad,
			HospitalID: hospitalID,
			To:         hospital.ContactEmail,
			Subject:    fmt.Sprintf("%s: high load", hospital.Name),
			Body: fmt.Sprintf("Bed occupancy at %s is %d%% (%d of %d beds occupied).",
				hospital.Name, summary.OccupancyPercent, summary.OccupiedBeds, summary.TotalBeds),
			Ref: "occupancy",
		})
	}
}

// AnnounceReleased publishes a committed release.
func (l *BedLedger) AnnounceReleased(ctx context.Context, hospitalID, patientID string, bed *models.HospitalBed) {
	publish(ctx, l.publisher, l.log, events.New(events.BedReleased, hospitalID, bedEvent{
		BedType:   bed.BedType,
		Total:     bed.Total,
		Available: bed.Available,
		PatientID: patientID,
	}))
}

// ReportOverRelease records a release that found the counter already full.
func (l *BedLedger) ReportOverRelease(ctx context.Context, hospitalID, patientID string, bed *models.HospitalBed) {
	l.log.Error("bed released beyond its total",
		zap.String("hospital_id", hospitalID),
		zap.String("patient_id", patientID),
		zap.String("bed_type", string(bed.BedType)),
		zap.Int("total", bed.Total),
		zap.Int("available", bed.Available),
	)
	publish(ctx, l.publisher, l.log, events.New(events.LedgerInvariantViolation, hospitalID, bedEvent{
		BedType:   bed.BedType,
		Total:     bed.Total,
		Available: bed.Available,
		PatientID: patientID,
	}))
}

func publish(ctx context.Context, publisher events.Publisher, log *zap.Logger, event events.Event) {
	if err := publisher.Publish(ctx, event); err != nil {
		log.Warn("failed to publish event",
			zap.String("type", event.Type),
			zap.String("hospital_id", event.HospitalID),
			zap.Error(err))
	}
}
