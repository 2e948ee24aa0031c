package models

import (
	"time"
)

type AppointmentStatus string

const (
	AppointmentPending   AppointmentStatus = "pending"
	AppointmentConfirmed AppointmentStatus = "confirmed"
	AppointmentCompleted AppointmentStatus = "completed"
	AppointmentCancelled AppointmentStatus = "cancelled"
)

func (s AppointmentStatus) Valid() bool {
	switch s {
	case AppointmentPending, AppointmentConfirmed, AppointmentCompleted, AppointmentCancelled:
		return true
	}
	return false
}

// Appointment model
type Appointment struct {
	ID              string            `gorm:"primaryKey;column:id" json:"id"`
	HospitalID      string            `gorm:"column:hospital_id;not null;index" json:"hospital_id"`
	DoctorID        string            `gorm:"column:doctor_id;not null;index" json:"doctor_id"`
	CitizenID       string            `gorm:"column:citizen_id;not null;index" json:"citizen_id"`
	PatientName     string            `gorm:"column:patient_name;not null" json:"patient_name"`
	PatientAge      int               `gorm:"column:patient_age;not null" json:"patient_age"`
	PatientGender   string            `gorm:"column:patient_gender;check:patient_gender IN ('Male', 'Female', 'Other');not null" json:"patient_gender"`
	PatientPhone    string            `gorm:"column:patient_phone;not null" json:"patient_phone"`
	AppointmentDate time.Time         `gorm:"column:appointment_date;not null;index" json:"appointment_date"`
	AppointmentTime string            `gorm:"column:appointment_time;not null" json:"appointment_time"`
	Reason          string            `gorm:"column:reason;not null" json:"reason"`
	Status          AppointmentStatus `gorm:"column:status;check:status IN ('pending', 'confirmed', 'completed', 'cancelled');not null;default:pending" json:"status"`
	Notes           string            `gorm:"column:notes;not null;default:''" json:"notes"`
	CreatedAt       time.Time         `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	Doctor          *Doctor           `gorm:"foreignKey:DoctorID;references:ID" json:"doctor,omitempty"`
}

func (Appointment) TableName() string {
	return "appointment"
}
