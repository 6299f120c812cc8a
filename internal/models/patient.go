package models

import "time"

type Patient struct {
	ID uint `gorm:"primaryKey" json:"-"`

	PatientID     string    `gorm:"column:p_id;size:10;uniqueIndex;not null" json:"pID"`
	Name          string    `gorm:"size:100;not null" json:"name"`
	DOB           time.Time `gorm:"column:dob" json:"dob"`
	Age           int       `json:"age"`
	Gender        string    `gorm:"size:20" json:"gender"`
	PhoneNo       string    `gorm:"size:20" json:"phone_no"`
	PastHistory   string    `gorm:"type:text" json:"past_history"`
	CurrentStatus string    `gorm:"size:100" json:"current_status"`
	Address       string    `gorm:"size:255" json:"address"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
