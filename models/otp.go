package models

import "time"

// OtpInfo adalah sub-record OTP yang tertanam di customer dan user.
// Kode hanya berlaku 10 menit sejak OtpCreatedAt dan sekali pakai:
// begitu OtpVerified true tidak ada verifikasi ulang.
type OtpInfo struct {
	OtpCode      string     `gorm:"type:varchar(6)" json:"-"`
	OtpCreatedAt *time.Time `json:"otpCreatedAt,omitempty"`
	OtpVerified  bool       `gorm:"default:false" json:"otpVerified"`
}

// OtpValidity adalah jendela berlaku kode OTP.
const OtpValidity = 10 * time.Minute
