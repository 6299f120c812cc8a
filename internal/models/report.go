package models

import "time"

// Report is the visit report a doctor writes for a completed appointment.
// Doctor name, date and reason are denormalized from the appointment at
// creation time, matching what the receptionist prints.
type Report struct {
	ID uint `gorm:"primaryKey" json:"-"`

	AptID            string `gorm:"column:apt_id;size:10;uniqueIndex;not null" json:"aptID"`
	AptDate          string `gorm:"size:10" json:"apt_date"`
	ConsultedDoctor  string `gorm:"size:100" json:"consultedDoctor"`
	Reason           string `gorm:"size:255" json:"reason"`
	PrimaryDiagnosis string `gorm:"type:text;not null" json:"primaryDiagnosis"`
	Prescription     string `gorm:"type:text;not null" json:"prescription"`
	Procedures       string `gorm:"type:text;not null" json:"procedures"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
