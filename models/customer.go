package models

import "time"

// Customer unik per nomor telepon: satu record aktif per phone.
type Customer struct {
	ID     uint   `gorm:"primaryKey" json:"customerId"`
	Name   string `gorm:"type:varchar(255);not null" json:"name"`
	Email  string `gorm:"type:varchar(255)" json:"email"`
	Phone  string `gorm:"type:varchar(32);uniqueIndex;not null" json:"phone"`
	Status string `gorm:"type:varchar(20);not null;default:'ACTIVE'" json:"status"`

	OtpInfo `gorm:"embedded"`

	CreatedAt time.Time `gorm:"not null" json:"createdAt"`
	UpdatedAt time.Time `gorm:"not null" json:"updatedAt"`
}
