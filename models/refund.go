package models

import "time"

// Refund maksimal satu per invoice, di-link lewat external_id.
type Refund struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	ExternalID      string    `gorm:"type:varchar(100);uniqueIndex;not null" json:"external_id"`
	ReservationCode string    `gorm:"type:varchar(100)" json:"reservationCode"`
	BranchCode      string    `gorm:"type:varchar(50);index" json:"branchCode"`
	BankName        string    `gorm:"type:varchar(100);not null" json:"bank_name"`
	AccountNumber   string    `gorm:"type:varchar(50);not null" json:"account_number"`
	AccountHolder   string    `gorm:"type:varchar(100);not null" json:"account_holder"`
	Phone           string    `gorm:"type:varchar(32);not null" json:"phone"`
	RefundStatus    string    `gorm:"type:varchar(50);not null;default:'Request Refund'" json:"refund_status"`
	CreatedAt       time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt       time.Time `gorm:"not null" json:"updated_at"`
}
