package models

import "time"

// User adalah staff internal. Login memakai phone + OTP, tanpa password.
type User struct {
	ID          uint   `gorm:"primaryKey" json:"userId"`
	Name        string `gorm:"type:varchar(255);not null" json:"name"`
	Phone       string `gorm:"type:varchar(32);uniqueIndex;not null" json:"phone"`
	Role        string `gorm:"type:varchar(100);not null" json:"role"`
	Photo       string `gorm:"type:varchar(512)" json:"photo"`
	BranchCodes string `gorm:"type:text" json:"branchCode"` // JSON array kode branch
	Status      string `gorm:"type:varchar(20);not null;default:'ACTIVE'" json:"status"`

	OtpInfo `gorm:"embedded"`

	LastLogin *time.Time `json:"lastLogin,omitempty"`
	CreatedAt time.Time  `gorm:"not null" json:"createdAt"`
	UpdatedAt time.Time  `gorm:"not null" json:"updatedAt"`
}

// DefaultUserPhoto dipakai saat create user tanpa foto.
const DefaultUserPhoto = "https://encrypted-tbn0.gstatic.com/images?q=tbn:ANd9GcQmRLRMXynnc7D6-xfdpeaoEUeon2FaU0XtPg&s"
