package models

import "time"

// ReservationCustomer adalah snapshot identitas customer yang melekat pada
// reservasi (bukan relasi ke tabel customer).
type ReservationCustomer struct {
	Name  string `gorm:"type:varchar(255)" json:"name"`
	Phone string `gorm:"type:varchar(32)" json:"phone"`
	Email string `gorm:"type:varchar(255)" json:"email"`
}

// MDRRate adalah merchant discount rate tetap yang dicatat di setiap reservasi.
const MDRRate = 0.015

type Reservation struct {
	ID              uint                `gorm:"primaryKey" json:"reservationId"`
	Customer        ReservationCustomer `gorm:"embedded;embeddedPrefix:customer_" json:"customer"`
	BranchCode      string              `gorm:"type:varchar(50);not null;index" json:"branchCode"`
	BranchName      string              `gorm:"type:varchar(255)" json:"branchName"`
	ReservationCode string              `gorm:"type:varchar(100);index" json:"reservationCode"`
	Date            string              `gorm:"type:varchar(10)" json:"date"` // YYYY-MM-DD
	Time            string              `gorm:"type:varchar(5)" json:"time"`  // HH:MM
	Guest           int                 `json:"guest"`
	Status          ReservationStatus   `gorm:"type:varchar(20);not null;default:'PENDING'" json:"status"`
	Amount          float64             `gorm:"type:decimal(12,2)" json:"amount"`
	Tax             float64             `gorm:"type:decimal(12,2)" json:"tax"`
	CookingCharge   float64             `gorm:"type:decimal(12,2)" json:"cookingCharge"`
	TotalAmount     float64             `gorm:"type:decimal(12,2)" json:"totalAmount"`
	Mdr             float64             `json:"mdr"`
	IsDisbursed     bool                `gorm:"default:false" json:"isDisbursed"`
	IsPosted        bool                `gorm:"default:false" json:"isPosted"`
	Note            *string             `gorm:"type:text" json:"note"`
	Items           string              `gorm:"type:text" json:"items"` // item list dalam JSON
	TableAreaName   *string             `gorm:"type:varchar(100)" json:"tableAreaName"`
	TableName       *string             `gorm:"type:varchar(50)" json:"tableName"`
	ArrivalStatus   *string             `gorm:"type:varchar(50)" json:"arrivalStatus"`
	CreatedAt       time.Time           `gorm:"not null" json:"createdAt"`
	UpdatedAt       time.Time           `gorm:"not null" json:"updatedAt"`
}
