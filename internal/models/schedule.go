package models

import "time"

// DoctorSchedule is the availability record: the set of open slot labels a
// doctor has published for one calendar day. The unique index keeps at most
// one record per (doctor, date); publishing again replaces the slot set.
type DoctorSchedule struct {
	ID uint `gorm:"primaryKey" json:"id"`

	DoctorID string `gorm:"column:doctor_id;size:10;not null;uniqueIndex:idx_schedules_doctor_date,priority:1" json:"doctorId"`
	Date     string `gorm:"size:10;not null;uniqueIndex:idx_schedules_doctor_date,priority:2" json:"date"`

	// Slot-start labels in "HH:MM", ascending. May end up empty as bookings
	// consume slots; the record itself is never deleted for that.
	AvailableTime []string `gorm:"serializer:json" json:"availableTime"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
