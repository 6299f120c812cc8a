package models

import "time"

type Invoice struct {
	ID uint `gorm:"primaryKey" json:"-"`

	InvoiceNo     string `gorm:"column:invoice_no;size:40;uniqueIndex" json:"invoiceID"`
	AptID         string `gorm:"column:apt_id;size:10;uniqueIndex;not null" json:"aptID"`
	InvoiceDate   string `gorm:"size:10" json:"invoice_date"`
	PaymentStatus bool   `json:"payment_status"`

	Items []InvoiceItem `gorm:"constraint:OnDelete:CASCADE" json:"items"`

	// Computed from Items before responses are written, never stored.
	TotalAmt float64 `gorm:"-" json:"total_amt"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type InvoiceItem struct {
	ID          uint    `gorm:"primaryKey" json:"-"`
	InvoiceID   uint    `gorm:"index" json:"-"`
	Description string  `gorm:"size:255;not null" json:"description"`
	Amount      float64 `json:"amount"`
}

// Total sums the line items.
func (i *Invoice) Total() float64 {
	var total float64
	for _, item := range i.Items {
		total += item.Amount
	}
	return total
}
