package services

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/yeremiapane/reservation-app/models"
	"github.com/yeremiapane/reservation-app/tasks"
	"github.com/yeremiapane/reservation-app/utils"
	"gorm.io/gorm"
)

// OtpService mengurus penerbitan dan verifikasi kode OTP untuk customer
// dan user. Kode dikirim lewat WhatsApp secara asinkron; caller tidak
// menunggu delivery.
type OtpService struct {
	db    *gorm.DB
	queue Enqueuer
}

func NewOtpService(db *gorm.DB, queue Enqueuer) *OtpService {
	return &OtpService{db: db, queue: queue}
}

// GenerateOtp menghasilkan kode numerik 6 digit.
func GenerateOtp() string {
	return fmt.Sprintf("%06d", rand.Intn(900000)+100000)
}

// IssueCustomerOtp menerbitkan kode baru untuk customer, menimpa kode
// pending sebelumnya, lalu meng-enqueue pengiriman WhatsApp.
func (s *OtpService) IssueCustomerOtp(ctx context.Context, customer *models.Customer) (string, error) {
	code := GenerateOtp()
	now := time.Now().UTC()

	if err := s.db.WithContext(ctx).Model(customer).Updates(map[string]any{
		"otp_code":       code,
		"otp_created_at": now,
	}).Error; err != nil {
		return "", err
	}

	s.dispatch(customer.Phone, code)
	return code, nil
}

// IssueUserOtp menerbitkan kode login untuk staff dan mencatat lastLogin
// dalam waktu lokal (WIB).
func (s *OtpService) IssueUserOtp(ctx context.Context, user *models.User) (string, error) {
	code := GenerateOtp()
	now := time.Now().UTC()
	lastLogin := now.In(utils.WIB)

	if err := s.db.WithContext(ctx).Model(user).Updates(map[string]any{
		"otp_code":       code,
		"otp_created_at": now,
		"last_login":     lastLogin,
	}).Error; err != nil {
		return "", err
	}

	s.dispatch(user.Phone, code)
	return code, nil
}

// VerifyCustomerOtp memeriksa kode yang disubmit customer. Gagal dengan
// expired kalau lewat 10 menit sejak penerbitan, mismatch kalau kode
// berbeda; sukses mengunci flag verified (sekali pakai).
func (s *OtpService) VerifyCustomerOtp(ctx context.Context, customerID uint, submitted string) error {
	var customer models.Customer
	if err := s.db.WithContext(ctx).First(&customer, customerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFoundError("customer not found")
		}
		return err
	}

	if err := checkOtp(customer.OtpInfo, submitted); err != nil {
		return err
	}

	return s.db.WithContext(ctx).Model(&customer).Updates(map[string]any{
		"otp_verified": true,
		"updated_at":   time.Now().UTC(),
	}).Error
}

func checkOtp(info models.OtpInfo, submitted string) error {
	if info.OtpVerified {
		return utils.ConflictError("OTP already used")
	}
	if info.OtpCode == "" || info.OtpCreatedAt == nil {
		return utils.ValidationError("no OTP issued")
	}
	if time.Now().UTC().Sub(info.OtpCreatedAt.UTC()) > models.OtpValidity {
		return utils.ExpiredError("OTP has expired")
	}
	if info.OtpCode != submitted {
		return utils.ValidationError("incorrect OTP")
	}
	return nil
}

func (s *OtpService) dispatch(phone, code string) {
	task, err := tasks.NewOtpTask(tasks.OtpPayload{Phone: phone, Code: code})
	if err != nil {
		utils.ErrorLogger.Errorf("build otp task for %s: %v", phone, err)
		return
	}
	if _, err := s.queue.Enqueue(task); err != nil {
		utils.ErrorLogger.Errorf("enqueue otp for %s: %v", phone, err)
	}
}
