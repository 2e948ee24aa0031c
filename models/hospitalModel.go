package models

import (
	"time"
)

// BedType is the tag of a bed category inside a hospital.
type BedType string

const (
	BedTypeGeneral   BedType = "general"
	BedTypeICU       BedType = "icu"
	BedTypeIsolation BedType = "isolation"
)

// BedTypes lists every bed-type tag a hospital may carry.
var BedTypes = []BedType{BedTypeGeneral, BedTypeICU, BedTypeIsolation}

func (b BedType) Valid() bool {
	for _, t := range BedTypes {
		if t == b {
			return true
		}
	}
	return false
}

const (
	EmergencyStatusNormal   = "Normal"
	EmergencyStatusHighLoad = "High Load"

	// HighLoadPercent is the occupancy at which a hospital is reported as High Load.
	HighLoadPercent = 80
)

// Hospital model
type Hospital struct {
	ID           string        `gorm:"primaryKey;column:id" json:"id"`
	Name         string        `gorm:"column:name;not null;index" json:"name"`
	Ward         string        `gorm:"column:ward;index" json:"ward"`
	ContactEmail string        `gorm:"column:contact_email" json:"contact_email"`
	CreatedAt    time.Time     `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	Beds         []HospitalBed `gorm:"foreignKey:HospitalID;references:ID" json:"beds"`
}

func (Hospital) TableName() string {
	return "hospital"
}

// BedMap returns the hospital's beds keyed by bed type.
func (h *Hospital) BedMap() map[BedType]HospitalBed {
	beds := make(map[BedType]HospitalBed, len(h.Beds))
	for _, bed := range h.Beds {
		beds[bed.BedType] = bed
	}
	return beds
}

// HospitalBed holds the capacity counter of one bed type in one hospital.
// The check constraint keeps 0 <= available <= total at the storage layer.
type HospitalBed struct {
	HospitalID string    `gorm:"primaryKey;column:hospital_id" json:"hospital_id"`
	BedType    BedType   `gorm:"primaryKey;column:bed_type;check:bed_type IN ('general', 'icu', 'isolation')" json:"bed_type"`
	Total      int       `gorm:"column:total;not null;check:chk_hospital_bed_total,total >= 0" json:"total"`
	Available  int       `gorm:"column:available;not null;check:chk_hospital_bed_available,available >= 0 AND available <= total" json:"available"`
	UpdatedAt  time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (HospitalBed) TableName() string {
	return "hospital_bed"
}

// Occupied is the number of beds currently reserved.
func (b HospitalBed) Occupied() int {
	return b.Total - b.Available
}

// BedSummary is the derived capacity view of a hospital.
type BedSummary struct {
	HospitalID       string          `json:"hospital_id"`
	Beds             []HospitalBed   `json:"beds"`
	TotalBeds        int             `json:"total_beds"`
	AvailableBeds    int             `json:"available_beds"`
	OccupiedBeds     int             `json:"occupied_beds"`
	OccupancyPercent int             `json:"occupancy_percent"`
	EmergencyStatus  string          `json:"emergency_status"`
	ByType           map[BedType]int `json:"available_by_type"`
}

// SummarizeBeds folds bed rows into totals and occupancy.
func SummarizeBeds(hospitalID string, beds []HospitalBed) BedSummary {
	summary := BedSummary{
		HospitalID:      hospitalID,
		Beds:            beds,
		ByType:          make(map[BedType]int, len(beds)),
		EmergencyStatus: EmergencyStatusNormal,
	}
	for _, bed := range beds {
		summary.TotalBeds += bed.Total
		summary.AvailableBeds += bed.Available
		summary.ByType[bed.BedType] = bed.Available
	}
	summary.OccupiedBeds = summary.TotalBeds - summary.AvailableBeds
	if summary.TotalBeds > 0 {
		// round half up, same as Math.round on a positive ratio
		summary.OccupancyPercent = (summary.OccupiedBeds*200 + summary.TotalBeds) / (2 * summary.TotalBeds)
	}
	if summary.OccupancyPercent >= HighLoadPercent {
		summary.EmergencyStatus = EmergencyStatusHighLoad
	}
	return summary
}

// Dashboard aggregates the counters shown to hospital staff.
type Dashboard struct {
	HospitalID string     `json:"hospital_id"`
	TodaysOPD  int        `json:"todays_opd"`
	CurrentIPD int        `json:"current_ipd"`
	Beds       BedSummary `json:"beds"`
}

// HospitalOverview is one row of the operator's hospital list.
type HospitalOverview struct {
	Hospital
	Summary BedSummary `json:"summary"`
}
