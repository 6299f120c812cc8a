package models

import "time"

// Appointment is one row of the booking ledger. The ledger, not the schedule
// record, is authoritative for which slots are taken: a partial unique index
// on (doctor_id, date, slot) among booked rows (created in db.NewDB) rejects
// a second booking for the same slot at the storage boundary.
type Appointment struct {
	ID uint `gorm:"primaryKey" json:"-"`

	AptID     string `gorm:"column:apt_id;size:10;uniqueIndex" json:"aptID"`
	PatientID string `gorm:"column:p_id;size:10;not null;index" json:"pID"`
	DoctorID  string `gorm:"column:doctor_id;size:10;not null;index:idx_appointments_doctor_date,priority:1" json:"doctorId"`
	Date      string `gorm:"size:10;not null;index:idx_appointments_doctor_date,priority:2" json:"apt_date"`
	Slot      string `gorm:"size:5;not null" json:"apt_time"`
	Reason    string `gorm:"size:255" json:"reason"`
	Status    string `gorm:"size:20;default:'booked'" json:"status"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
