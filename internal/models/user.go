package models

import "time"

type User struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Email        string `gorm:"size:100;uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"size:255;not null" json:"-"`
	Role         string `gorm:"size:20;not null" json:"role"`

	// Role-scoped human-readable identifier, assigned at registration
	// (d001, r001, p001). Only the field matching Role is populated.
	DoctorID       string `gorm:"column:doctor_id;size:10" json:"doctorId,omitempty"`
	ReceptionistID string `gorm:"column:receptionist_id;size:10" json:"receptionistId,omitempty"`
	PatientID      string `gorm:"column:patient_id;size:10" json:"patientId,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
