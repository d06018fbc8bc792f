package models

import "time"

// ReservationSummary adalah agregat harian per branch yang dipakai tim
// accounting. Disimpan apa adanya (separately trusted), tidak diturunkan
// ulang dari dokumen reservasi.
type ReservationSummary struct {
	ID                   uint      `gorm:"primaryKey" json:"id"`
	ExternalID           string    `gorm:"type:varchar(100);index" json:"external_id"`
	UserID               *uint     `json:"userId"`
	Date                 string    `gorm:"type:varchar(10);not null" json:"date"`
	BranchCode           string    `gorm:"type:varchar(50);not null;index" json:"branchCode"`
	BranchName           string    `gorm:"type:varchar(255)" json:"branchName"`
	TotalReservations    int       `json:"totalReservations"`
	TotalAmountBeforeMdr float64   `gorm:"type:decimal(14,2)" json:"totalAmountBeforeMdr"`
	TotalAmountAfterMdr  float64   `gorm:"type:decimal(14,2)" json:"totalAmountAfterMdr"`
	Status               string    `gorm:"type:varchar(20);not null;default:'PENDING'" json:"status"`
	ReservationCodes     string    `gorm:"type:text" json:"reservationCodes"` // JSON array
	CreatedAt            time.Time `gorm:"not null" json:"createdAt"`
	UpdatedAt            time.Time `gorm:"not null" json:"updatedAt"`
}
