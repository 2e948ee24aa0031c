package services

import (
	"SMCHealth/exceptions"
	"SMCHealth/models"
	"SMCHealth/utils"
	"context"
	"sort"
	"time"

	"go.uber.org/zap"
)

type HospitalService struct {
	hospitals HospitalStore
	patients  PatientStore
	ledger    *BedLedger
	log       *zap.Logger
	now       func() time.Time
}

func NewHospitalService(hospitals HospitalStore, patients PatientStore, ledger *BedLedger, log *zap.Logger) *HospitalService {
	return &HospitalService{hospitals: hospitals, patients: patients, ledger: ledger, log: log, now: time.Now}
}

// Onboard registers a hospital with its bed capacities. Available defaults to total.
func (s *HospitalService) Onboard(ctx context.Context, req models.OnboardRequest) (*models.Hospital, error) {
	if err := utils.ValidateOnboard(req); err != nil {
		return nil, exceptions.InvalidInput(err)
	}

	hospital := &models.Hospital{
		Name:         req.Name,
		Ward:         req.Ward,
		ContactEmail: req.ContactEmail,
	}
	for bedType, capacity := range req.Beds {
		available := capacity.Total
		if capacity.Available != nil {
			available = *capacity.Available
		}
		hospital.Beds = append(hospital.Beds, models.HospitalBed{
			BedType:   bedType,
			Total:     capacity.Total,
			Available: available,
		})
	}
	sort.Slice(hospital.Beds, func(i, j int) bool {
		return hospital.Beds[i].BedType < hospital.Beds[j].BedType
	})

	if err := s.hospitals.Create(ctx, hospital); err != nil {
		return nil, err
	}
	s.log.Info("hospital onboarded", zap.String("hospital_id", hospital.ID), zap.String("name", hospital.Name))
	return hospital, nil
}

func (s *HospitalService) Get(ctx context.Context, id string) (*models.Hospital, error) {
	return s.hospitals.GetByID(ctx, id)
}

// List returns every hospital with its bed summary, for the operator overview.
func (s *HospitalService) List(ctx context.Context) ([]models.HospitalOverview, error) {
	hospitals, err := s.hospitals.List(ctx)
	if err != nil {
		return nil, err
	}
	overview := make([]models.HospitalOverview, 0, len(hospitals))
	for _, hospital := range hospitals {
		overview = append(overview, models.HospitalOverview{
			Hospital: hospital,
			Summary:  models.SummarizeBeds(hospital.ID, hospital.Beds),
		})
	}
	return overview, nil
}

// Dashboard counts today's OPD visits (since local midnight), inpatients still
// admitted, and the bed summary.
func (s *HospitalService) Dashboard(ctx context.Context, hospitalID string) (*models.Dashboard, error) {
	summary, err := s.ledger.Summary(ctx, hospitalID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	todaysOPD, err := s.patients.CountOPDSince(ctx, hospitalID, midnight)
	if err != nil {
		return nil, err
	}
	currentIPD, err := s.patients.CountCurrentIPD(ctx, hospitalID)
	if err != nil {
		return nil, err
	}

	return &models.Dashboard{
		HospitalID: hospitalID,
		TodaysOPD:  todaysOPD,
		CurrentIPD: currentIPD,
		Beds:       summary,
	}, nil
}
