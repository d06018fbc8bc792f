package models

import "time"

// Disbursement adalah payout ke rekening bank, independen dari invoice.
// Statusnya mengikuti status provider lewat webhook.
type Disbursement struct {
	ID                uint      `gorm:"primaryKey" json:"id"`
	DisbursementID    string    `gorm:"type:varchar(100)" json:"disbursement_id"`
	ExternalID        string    `gorm:"type:varchar(100);index;not null" json:"external_id"`
	UserID            *uint     `json:"userId"`
	Amount            float64   `gorm:"type:decimal(12,2);not null" json:"amount"`
	BankCode          string    `gorm:"type:varchar(20);not null" json:"bank_code"`
	AccountHolderName string    `gorm:"type:varchar(100);not null" json:"account_holder_name"`
	AccountNumber     string    `gorm:"type:varchar(50);not null" json:"account_number"`
	Description       string    `gorm:"type:text" json:"description"`
	Status            string    `gorm:"type:varchar(50)" json:"status"`
	IsInstant         bool      `json:"is_instant"`
	CreatedAt         time.Time `gorm:"not null" json:"createdAt"`
	UpdatedAt         time.Time `gorm:"not null" json:"updatedAt"`
}
