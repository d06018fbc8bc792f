package models

import "time"

// Invoice adalah catatan internal atas invoice Xendit. Dibuat oleh flow
// create_invoice dan hanya dimutasi oleh webhook / update refund status.
type Invoice struct {
	ID              uint   `gorm:"primaryKey" json:"id"`
	InvoiceID       string `gorm:"type:varchar(100);uniqueIndex;not null" json:"invoiceId"`
	ExternalID      string `gorm:"type:varchar(100);index" json:"external_id"`
	BranchCode      string `gorm:"type:varchar(50);index" json:"branchCode"`
	ReservationCode string `gorm:"type:varchar(100);index" json:"reservationCode"`
	ReservationID   uint   `gorm:"index" json:"reservationId"`

	ExpiryDate time.Time `json:"expiry_date"` // UTC, dari response Xendit
	InvoiceURL string    `gorm:"type:varchar(512)" json:"invoice_url"`
	Status     string    `gorm:"type:varchar(50);not null;default:'Menunggu Pembayaran'" json:"status"`

	RefundStatus string `gorm:"type:varchar(50)" json:"refund_status"`
	Mdr          float64 `json:"mdr"`

	// Metadata pembayaran, terisi setelah settlement lewat webhook.
	PaidAt             string  `gorm:"type:varchar(40)" json:"paid_at"`
	ProviderUpdatedAt  string  `gorm:"type:varchar(40)" json:"provider_updated_at"`
	PaymentMethod      string  `gorm:"type:varchar(50)" json:"payment_method"`
	PaymentChannel     string  `gorm:"type:varchar(50)" json:"payment_channel"`
	PaymentDestination string  `gorm:"type:varchar(100)" json:"payment_destination"`
	PaidAmount         float64 `gorm:"type:decimal(12,2)" json:"paid_amount"`
	Currency           string  `gorm:"type:varchar(10)" json:"currency"`
	BankCode           string  `gorm:"type:varchar(20)" json:"bank_code"`
	MerchantName       string  `gorm:"type:varchar(100)" json:"merchant_name"`

	CreatedAt time.Time `gorm:"not null" json:"createdAt"`
	UpdatedAt time.Time `gorm:"not null" json:"updatedAt"`
}
