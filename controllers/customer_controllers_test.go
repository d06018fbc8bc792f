package controllers_test

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"github.com/yeremiapane/reservation-app/controllers"
	"github.com/yeremiapane/reservation-app/models"
	"github.com/yeremiapane/reservation-app/services"
)

func setupCustomerRouter(db *gorm.DB) (*gin.Engine, *noopEnqueuer) {
	queue := &noopEnqueuer{}
	otp := services.NewOtpService(db, queue)

	router := gin.Default()
	ctrl := controllers.NewCustomerController(db, otp)
	router.POST("/customer", ctrl.CreateCustomer)
	router.POST("/customer_gro", ctrl.CreateCustomerGro)
	router.POST("/resend-otp", ctrl.ResendOtp)
	router.POST("/verify-otp", ctrl.VerifyOtp)
	router.GET("/customer/:id", ctrl.GetCustomerByID)
	router.PUT("/customer/:id", ctrl.UpdateCustomer)
	return router, queue
}

func customerPayload() map[string]any {
	return map[string]any{
		"name":  "Budi",
		"email": "budi@example.com",
		"phone": "628123456789",
	}
}

func TestCreateCustomerSendsOtp(t *testing.T) {
	db := setupControllerDB("cust_create")
	router, queue := setupCustomerRouter(db)

	w := doJSON(router, "POST", "/customer", customerPayload())
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Len(t, queue.tasks, 1)

	var customer models.Customer
	db.Where("phone = ?", "628123456789").First(&customer)
	assert.Len(t, customer.OtpCode, 6)
	assert.False(t, customer.OtpVerified)
}

func TestCreateCustomerUnverifiedPhoneReissuesOtp(t *testing.T) {
	db := setupControllerDB("cust_reissue")
	router, queue := setupCustomerRouter(db)

	w := doJSON(router, "POST", "/customer", customerPayload())
	assert.Equal(t, http.StatusCreated, w.Code)

	var first models.Customer
	db.Where("phone = ?", "628123456789").First(&first)

	// Registrasi ulang nomor yang sama: record tetap satu, OTP baru.
	w = doJSON(router, "POST", "/customer", customerPayload())
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, queue.tasks, 2)

	var count int64
	db.Model(&models.Customer{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestCreateCustomerVerifiedPhoneReturnsExisting(t *testing.T) {
	db := setupControllerDB("cust_verified")
	router, queue := setupCustomerRouter(db)

	w := doJSON(router, "POST", "/customer", customerPayload())
	assert.Equal(t, http.StatusCreated, w.Code)
	db.Model(&models.Customer{}).Where("phone = ?", "628123456789").
		Update("otp_verified", true)

	w = doJSON(router, "POST", "/customer", customerPayload())
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Phone number already exists and OTP verified.", decodeBody(w)["message"])
	// Tidak ada OTP tambahan.
	assert.Len(t, queue.tasks, 1)
}

func TestVerifyOtpEndpoint(t *testing.T) {
	db := setupControllerDB("cust_verify")
	router, _ := setupCustomerRouter(db)

	w := doJSON(router, "POST", "/customer", customerPayload())
	assert.Equal(t, http.StatusCreated, w.Code)

	var customer models.Customer
	db.Where("phone = ?", "628123456789").First(&customer)

	w = doJSON(router, "POST", "/verify-otp", map[string]any{
		"customerId": customer.ID,
		"otp":        "000000",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(router, "POST", "/verify-otp", map[string]any{
		"customerId": customer.ID,
		"otp":        customer.OtpCode,
	})
	assert.Equal(t, http.StatusOK, w.Code)

	var verified models.Customer
	db.First(&verified, customer.ID)
	assert.True(t, verified.OtpVerified)

	// Sekali pakai.
	w = doJSON(router, "POST", "/verify-otp", map[string]any{
		"customerId": customer.ID,
		"otp":        customer.OtpCode,
	})
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestResendOtpOverwritesCode(t *testing.T) {
	db := setupControllerDB("cust_resend")
	router, queue := setupCustomerRouter(db)

	w := doJSON(router, "POST", "/customer", customerPayload())
	assert.Equal(t, http.StatusCreated, w.Code)

	var before models.Customer
	db.Where("phone = ?", "628123456789").First(&before)

	w = doJSON(router, "POST", "/resend-otp", map[string]any{
		"customerId": before.ID,
	})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, queue.tasks, 2)

	w = doJSON(router, "POST", "/resend-otp", map[string]any{
		"customerId": 9999,
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCreateCustomerGroSkipsOtp(t *testing.T) {
	db := setupControllerDB("cust_gro")
	router, queue := setupCustomerRouter(db)

	w := doJSON(router, "POST", "/customer_gro", customerPayload())
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Empty(t, queue.tasks)

	// Nomor sudah ada: kembalikan data existing.
	w = doJSON(router, "POST", "/customer_gro", customerPayload())
	assert.Equal(t, http.StatusOK, w.Code)
}
