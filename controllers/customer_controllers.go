package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/yeremiapane/reservation-app/models"
	"github.com/yeremiapane/reservation-app/services"
	"github.com/yeremiapane/reservation-app/utils"
)

type CustomerController struct {
	DB  *gorm.DB
	Otp *services.OtpService
}

func NewCustomerController(db *gorm.DB, otp *services.OtpService) *CustomerController {
	return &CustomerController{DB: db, Otp: otp}
}

// CreateCustomer -> registrasi customer dengan verifikasi OTP.
// Nomor telepon dedup: kalau sudah ada tapi belum verified, OTP baru
// diterbitkan untuk record yang sama; kalau sudah verified, data existing
// dikembalikan tanpa OTP.
func (cc *CustomerController) CreateCustomer(c *gin.Context) {
	type ReqBody struct {
		Name  string `json:"name" binding:"required"`
		Email string `json:"email"`
		Phone string `json:"phone" binding:"required"`
	}

	var body ReqBody
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var existing models.Customer
	err := cc.DB.Where("phone = ?", body.Phone).First(&existing).Error
	if err == nil {
		if !existing.OtpVerified {
			if _, err := cc.Otp.IssueCustomerOtp(c.Request.Context(), &existing); err != nil {
				utils.RespondError(c, http.StatusInternalServerError, err)
				return
			}
			utils.RespondJSON(c, http.StatusOK, "OTP not verified for this phone number. New OTP sent.", gin.H{
				"customerId":  existing.ID,
				"otpVerified": false,
			})
			return
		}

		utils.RespondJSON(c, http.StatusOK, "Phone number already exists and OTP verified.", existing)
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	customer := models.Customer{
		Name:   body.Name,
		Email:  body.Email,
		Phone:  body.Phone,
		Status: "ACTIVE",
	}
	if err := cc.DB.Create(&customer).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	if _, err := cc.Otp.IssueCustomerOtp(c.Request.Context(), &customer); err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusCreated, "Success added customer. OTP sent asynchronously.", customer)
}

// CreateCustomerGro -> registrasi oleh GRO, tanpa flow OTP
func (cc *CustomerController) CreateCustomerGro(c *gin.Context) {
	type ReqBody struct {
		Name  string `json:"name" binding:"required"`
		Email string `json:"email"`
		Phone string `json:"phone" binding:"required"`
	}

	var body ReqBody
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var existing models.Customer
	err := cc.DB.Where("phone = ?", body.Phone).First(&existing).Error
	if err == nil {
		utils.RespondJSON(c, http.StatusOK, "Phone number already exists.", existing)
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	customer := models.Customer{
		Name:   body.Name,
		Email:  body.Email,
		Phone:  body.Phone,
		Status: "ACTIVE",
	}
	if err := cc.DB.Create(&customer).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusCreated, "Success create new customer", customer)
}

// ResendOtp -> terbitkan ulang OTP untuk customer yang sama
func (cc *CustomerController) ResendOtp(c *gin.Context) {
	type ReqBody struct {
		CustomerID uint `json:"customerId" binding:"required"`
	}

	var body ReqBody
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, fmt.Errorf("customer ID not provided"))
		return
	}

	var customer models.Customer
	if err := cc.DB.First(&customer, body.CustomerID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, fmt.Errorf("customer not found"))
		return
	}

	if _, err := cc.Otp.IssueCustomerOtp(c.Request.Context(), &customer); err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "New OTP sent successfully.", nil)
}

// VerifyOtp -> verifikasi kode OTP customer
func (cc *CustomerController) VerifyOtp(c *gin.Context) {
	type ReqBody struct {
		CustomerID uint   `json:"customerId" binding:"required"`
		Otp        string `json:"otp" binding:"required"`
	}

	var body ReqBody
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, fmt.Errorf("customer ID and OTP are required"))
		return
	}

	if err := cc.Otp.VerifyCustomerOtp(c.Request.Context(), body.CustomerID, body.Otp); err != nil {
		utils.RespondAppError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "OTP verified successfully.", nil)
}

// GetAllCustomers -> list seluruh customer
func (cc *CustomerController) GetAllCustomers(c *gin.Context) {
	var customers []models.Customer
	if err := cc.DB.Find(&customers).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Success get customer", customers)
}

// GetCustomerByID -> detail 1 customer
func (cc *CustomerController) GetCustomerByID(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, fmt.Errorf("invalid customer id"))
		return
	}

	var customer models.Customer
	if err := cc.DB.First(&customer, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, fmt.Errorf("customer not found"))
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Success get customer", customer)
}

// UpdateCustomer -> update identitas customer
func (cc *CustomerController) UpdateCustomer(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, fmt.Errorf("invalid customer id"))
		return
	}

	type ReqBody struct {
		Name  string `json:"name" binding:"required"`
		Email string `json:"email"`
		Phone string `json:"phone" binding:"required"`
	}

	var body ReqBody
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	res := cc.DB.Model(&models.Customer{}).Where("id = ?", id).Updates(map[string]any{
		"name":  body.Name,
		"email": body.Email,
		"phone": body.Phone,
	})
	if res.Error != nil {
		utils.RespondError(c, http.StatusInternalServerError, res.Error)
		return
	}
	if res.RowsAffected == 0 {
		utils.RespondError(c, http.StatusNotFound, fmt.Errorf("customer not found"))
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Customer updated", gin.H{
		"customerId": id,
		"name":       body.Name,
		"email":      body.Email,
		"phone":      body.Phone,
	})
}
