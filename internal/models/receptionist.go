package models

import "time"

type Receptionist struct {
	ID uint `gorm:"primaryKey" json:"-"`

	RepID   string  `gorm:"column:rep_id;size:10;uniqueIndex;not null" json:"repID"`
	Name    string  `gorm:"size:100;not null" json:"name"`
	PhoneNo string  `gorm:"size:20" json:"phone_no"`
	Email   string  `gorm:"size:100" json:"email"`
	Salary  float64 `json:"salary"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
