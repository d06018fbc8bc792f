package services

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/yeremiapane/reservation-app/models"
	"github.com/yeremiapane/reservation-app/tasks"
	"github.com/yeremiapane/reservation-app/utils"
)

func TestGenerateOtpSixDigits(t *testing.T) {
	pattern := regexp.MustCompile(`^\d{6}$`)
	for i := 0; i < 50; i++ {
		assert.Regexp(t, pattern, GenerateOtp())
	}
}

func TestIssueCustomerOtpDispatchesAndOverwrites(t *testing.T) {
	db := setupServiceDB("otp_issue")
	queue := &fakeEnqueuer{}
	svc := NewOtpService(db, queue)

	customer := models.Customer{Name: "Budi", Phone: "628123456789"}
	db.Create(&customer)

	first, err := svc.IssueCustomerOtp(context.Background(), &customer)
	assert.NoError(t, err)
	second, err := svc.IssueCustomerOtp(context.Background(), &customer)
	assert.NoError(t, err)

	var stored models.Customer
	db.First(&stored, customer.ID)
	assert.Equal(t, second, stored.OtpCode)
	assert.NotNil(t, stored.OtpCreatedAt)

	// Kode lama tidak berlaku lagi.
	err = svc.VerifyCustomerOtp(context.Background(), customer.ID, first)
	if first != second {
		assert.Error(t, err)
	}

	assert.Equal(t, []string{tasks.TypeOtpWA, tasks.TypeOtpWA}, queue.typeNames())
}

func TestVerifyCustomerOtpFlow(t *testing.T) {
	db := setupServiceDB("otp_verify")
	svc := NewOtpService(db, &fakeEnqueuer{})

	customer := models.Customer{Name: "Budi", Phone: "628123456780"}
	db.Create(&customer)

	code, err := svc.IssueCustomerOtp(context.Background(), &customer)
	assert.NoError(t, err)

	// Kode salah -> validation error, flag tidak berubah.
	err = svc.VerifyCustomerOtp(context.Background(), customer.ID, "000000")
	var appErr *utils.AppError
	assert.True(t, errors.As(err, &appErr))
	assert.Equal(t, utils.KindValidation, appErr.Kind)

	// Kode benar -> verified.
	assert.NoError(t, svc.VerifyCustomerOtp(context.Background(), customer.ID, code))

	var stored models.Customer
	db.First(&stored, customer.ID)
	assert.True(t, stored.OtpVerified)

	// Sekali pakai: verifikasi ulang ditolak.
	err = svc.VerifyCustomerOtp(context.Background(), customer.ID, code)
	assert.True(t, errors.As(err, &appErr))
	assert.Equal(t, utils.KindConflict, appErr.Kind)
}

func TestVerifyCustomerOtpExpiresAfterTenMinutes(t *testing.T) {
	db := setupServiceDB("otp_expiry")
	svc := NewOtpService(db, &fakeEnqueuer{})

	customer := models.Customer{Name: "Budi", Phone: "628123456781"}
	db.Create(&customer)

	code, err := svc.IssueCustomerOtp(context.Background(), &customer)
	assert.NoError(t, err)

	// Tepat di dalam jendela masih sah.
	inside := time.Now().UTC().Add(-models.OtpValidity + time.Second)
	db.Model(&models.Customer{}).Where("id = ?", customer.ID).
		Update("otp_created_at", inside)
	assert.NoError(t, svc.VerifyCustomerOtp(context.Background(), customer.ID, code))

	// Reset lalu geser melewati jendela.
	outside := time.Now().UTC().Add(-models.OtpValidity - time.Second)
	db.Model(&models.Customer{}).Where("id = ?", customer.ID).
		Updates(map[string]any{"otp_verified": false, "otp_created_at": outside})

	err = svc.VerifyCustomerOtp(context.Background(), customer.ID, code)
	var appErr *utils.AppError
	assert.True(t, errors.As(err, &appErr))
	assert.Equal(t, utils.KindExpired, appErr.Kind)
}

func TestVerifyCustomerOtpUnknownCustomer(t *testing.T) {
	db := setupServiceDB("otp_unknown")
	svc := NewOtpService(db, &fakeEnqueuer{})

	err := svc.VerifyCustomerOtp(context.Background(), 9999, "123456")
	var appErr *utils.AppError
	assert.True(t, errors.As(err, &appErr))
	assert.Equal(t, utils.KindNotFound, appErr.Kind)
}

func TestIssueUserOtpRecordsLastLogin(t *testing.T) {
	db := setupServiceDB("otp_user")
	queue := &fakeEnqueuer{}
	svc := NewOtpService(db, queue)

	user := models.User{Name: "Ani", Phone: "628999888777", Role: "IT"}
	db.Create(&user)

	code, err := svc.IssueUserOtp(context.Background(), &user)
	assert.NoError(t, err)
	assert.Len(t, code, 6)

	var stored models.User
	db.First(&stored, user.ID)
	assert.Equal(t, code, stored.OtpCode)
	assert.NotNil(t, stored.LastLogin)
	assert.Equal(t, []string{tasks.TypeOtpWA}, queue.typeNames())
}
