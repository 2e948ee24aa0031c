package models

import (
	"time"
)

// PatientType separates outpatients from admitted inpatients.
type PatientType string

const (
	PatientTypeOPD PatientType = "OPD"
	PatientTypeIPD PatientType = "IPD"
)

func (p PatientType) Valid() bool {
	return p == PatientTypeOPD || p == PatientTypeIPD
}

// Doctor model
type Doctor struct {
	ID              string    `gorm:"primaryKey;column:id" json:"id"`
	HospitalID      string    `gorm:"column:hospital_id;not null;index;uniqueIndex:idx_doctor_hospital_phone,where:phone <> ''" json:"hospital_id"`
	Name            string    `gorm:"column:name;not null" json:"name"`
	Specialization  string    `gorm:"column:specialization" json:"specialization"`
	OPDTimings      string    `gorm:"column:opd_timings" json:"opd_timings"`
	Phone           string    `gorm:"column:phone;uniqueIndex:idx_doctor_hospital_phone" json:"phone"`
	ExperienceYears int       `gorm:"column:experience_years" json:"experience_years"`
	IsAvailable     bool      `gorm:"column:is_available;not null;default:true" json:"is_available"`
	CreatedAt       time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	Hospital        Hospital  `gorm:"foreignKey:HospitalID;references:ID" json:"-"`
}

func (Doctor) TableName() string {
	return "doctor"
}

// Patient model. A nil DischargeDate on an IPD patient means the patient
// currently holds one bed of BedType.
type Patient struct {
	ID            string      `gorm:"primaryKey;column:id" json:"id"`
	HospitalID    string      `gorm:"column:hospital_id;not null;index" json:"hospital_id"`
	PatientType   PatientType `gorm:"column:patient_type;check:patient_type IN ('OPD', 'IPD');not null;index" json:"patient_type"`
	Name          string      `gorm:"column:name" json:"name"`
	Age           int         `gorm:"column:age" json:"age"`
	Gender        string      `gorm:"column:gender" json:"gender"`
	Disease       string      `gorm:"column:disease;index" json:"disease"`
	DoctorID      *string     `gorm:"column:doctor_id;index" json:"doctor_id"`
	RoomNumber    string      `gorm:"column:room_number" json:"room_number,omitempty"`
	BedNumber     string      `gorm:"column:bed_number" json:"bed_number,omitempty"`
	BedType       BedType     `gorm:"column:bed_type" json:"bed_type,omitempty"`
	AdmissionDate time.Time   `gorm:"column:admission_date;not null;index" json:"admission_date"`
	DischargeDate *time.Time  `gorm:"column:discharge_date;index" json:"discharge_date"`
	CreatedAt     time.Time   `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	Hospital      Hospital    `gorm:"foreignKey:HospitalID;references:ID" json:"-"`
	Doctor        *Doctor     `gorm:"foreignKey:DoctorID;references:ID" json:"doctor,omitempty"`
}

func (Patient) TableName() string {
	return "patient"
}

// Admitted reports whether the patient is an inpatient still occupying a bed.
func (p *Patient) Admitted() bool {
	return p.PatientType == PatientTypeIPD && p.DischargeDate == nil
}

// HoldsBed reports whether the patient carries an outstanding bed reservation.
func (p *Patient) HoldsBed() bool {
	return p.Admitted() && p.BedType != ""
}

// DoctorWorkload is a derived view over a hospital's patients.
type DoctorWorkload struct {
	Doctor        Doctor `json:"doctor"`
	OPDCount      int    `json:"opd_count"`
	IPDAdmitted   int    `json:"ipd_admitted"`
	IPDDischarged int    `json:"ipd_discharged"`
	Total         int    `json:"total"`
}

// ComputeWorkload counts, for every doctor, the patients bound to them.
// Patients without a doctor are ignored.
func ComputeWorkload(doctors []Doctor, patients []Patient) []DoctorWorkload {
	index := make(map[string]*DoctorWorkload, len(doctors))
	workload := make([]DoctorWorkload, len(doctors))
	for i, doctor := range doctors {
		workload[i] = DoctorWorkload{Doctor: doctor}
		index[doctor.ID] = &workload[i]
	}

	for _, patient := range patients {
		if patient.DoctorID == nil {
			continue
		}
		entry, ok := index[*patient.DoctorID]
		if !ok {
			continue
		}
		switch {
		case patient.PatientType == PatientTypeOPD:
			entry.OPDCount++
		case patient.PatientType == PatientTypeIPD && patient.DischargeDate == nil:
			entry.IPDAdmitted++
		case patient.PatientType == PatientTypeIPD:
			entry.IPDDischarged++
		}
	}

	for i := range workload {
		workload[i].Total = workload[i].OPDCount + workload[i].IPDAdmitted + workload[i].IPDDischarged
	}
	return workload
}
