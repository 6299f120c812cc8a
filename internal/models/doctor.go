package models

import "time"

type Doctor struct {
	ID uint `gorm:"primaryKey" json:"-"`

	DoctorID       string `gorm:"column:doctor_id;size:10;uniqueIndex;not null" json:"doctorId"`
	Name           string `gorm:"size:100;not null" json:"name"`
	Specialization string `gorm:"size:100" json:"specialization"`
	PhoneNo        string `gorm:"size:20" json:"phone_no"`
	Experience     int    `json:"experience"`
	Email          string `gorm:"size:100" json:"email"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
