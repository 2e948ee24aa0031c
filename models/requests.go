package models

import (
	"time"
)

// AdmitRequest registers an OPD visit or an IPD admission.
type AdmitRequest struct {
	PatientType   PatientType `json:"patient_type"`
	Name          string      `json:"name"`
	Age           int         `json:"age"`
	Gender        string      `json:"gender"`
	Disease       string      `json:"disease"`
	DoctorID      string      `json:"doctor_id"`
	BedType       BedType     `json:"bed_type"`
	RoomNumber    string      `json:"room_number"`
	BedNumber     string      `json:"bed_number"`
	AdmissionDate *time.Time  `json:"admission_date"`
}

type DoctorRequest struct {
	Name            string `json:"name"`
	Specialization  string `json:"specialization"`
	OPDTimings      string `json:"opd_timings"`
	Phone           string `json:"phone"`
	ExperienceYears int    `json:"experience_years"`
}

// BookRequest is a citizen's appointment request.
type BookRequest struct {
	HospitalID      string    `json:"hospital_id"`
	DoctorID        string    `json:"doctor_id"`
	PatientName     string    `json:"patient_name"`
	PatientAge      int       `json:"patient_age"`
	PatientGender   string    `json:"patient_gender"`
	PatientPhone    string    `json:"patient_phone"`
	AppointmentDate time.Time `json:"appointment_date"`
	AppointmentTime string    `json:"appointment_time"`
	Reason          string    `json:"reason"`
}

type StatusRequest struct {
	Status AppointmentStatus `json:"status"`
	Notes  *string           `json:"notes"`
}

type BedCapacity struct {
	Total     int  `json:"total"`
	Available *int `json:"available"`
}

type OnboardRequest struct {
	Name         string                  `json:"name"`
	Ward         string                  `json:"ward"`
	ContactEmail string                  `json:"contact_email"`
	Beds         map[BedType]BedCapacity `json:"beds"`
}

type EquipmentRequest struct {
	Name      string             `json:"name"`
	Quantity  int                `json:"quantity"`
	Condition EquipmentCondition `json:"condition"`
}

type MedicineRequest struct {
	Name     string         `json:"name"`
	Quantity int            `json:"quantity"`
	Unit     string         `json:"unit"`
	Status   MedicineStatus `json:"status"`
}
