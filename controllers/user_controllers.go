package controllers

import (
	"encoding/json"
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

type UserController struct {
	DB  *gorm.DB
	Otp *services.OtpService
}

func NewUserController(db *gorm.DB, otp *services.OtpService) *UserController {
	return &UserController{DB: db, Otp: otp}
}

func marshalBranchCodes(codes []string) string {
	if codes == nil {
		codes = []string{}
	}
	b, _ := json.Marshal(codes)
	return string(b)
}

func unmarshalBranchCodes(raw string) []string {
	var codes []string
	if raw == "" {
		return codes
	}
	_ = json.Unmarshal([]byte(raw), &codes)
	return codes
}

// CreateUser -> buat staff baru. Phone unik; duplikat dijawab 409 dengan
// data user yang sudah ada.
func (uc *UserController) CreateUser(c *gin.Context) {
	type ReqBody struct {
		Name       string   `json:"name" binding:"required"`
		Phone      string   `json:"phone" binding:"required"`
		Role       string   `json:"role" binding:"required"`
		Photo      string   `json:"photo"`
		BranchCode []string `json:"branchCode"`
	}

	var body ReqBody
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var existing models.User
	err := uc.DB.Where("phone = ?", body.Phone).First(&existing).Error
	if err == nil {
		utils.RespondJSON(c, http.StatusConflict, "Phone number already exists.", existing)
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	photo := body.Photo
	if photo == "" {
		photo = models.DefaultUserPhoto
	}

	user := models.User{
		Name:        body.Name,
		Phone:       body.Phone,
		Role:        body.Role,
		Photo:       photo,
		BranchCodes: marshalBranchCodes(body.BranchCode),
		Status:      "ACTIVE",
	}

	if err := uc.DB.Create(&user).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusCreated, "User created successfully.", user)
}

// GetAllUsers -> list seluruh staff
func (uc *UserController) GetAllUsers(c *gin.Context) {
	var users []models.User
	if err := uc.DB.Find(&users).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Users retrieved successfully.", users)
}

// UpdateUser -> update profil staff
func (uc *UserController) UpdateUser(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, fmt.Errorf("invalid user id"))
		return
	}

	type ReqBody struct {
		Name       string   `json:"name" binding:"required"`
		Phone      string   `json:"phone" binding:"required"`
		Role       string   `json:"role" binding:"required"`
		Status     string   `json:"status"`
		BranchCode []string `json:"branchCode"`
	}

	var body ReqBody
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	updates := map[string]any{
		"name":         body.Name,
		"phone":        body.Phone,
		"role":         body.Role,
		"branch_codes": marshalBranchCodes(body.BranchCode),
	}
	if body.Status != "" {
		updates["status"] = body.Status
	}

	res := uc.DB.Model(&models.User{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		utils.RespondError(c, http.StatusInternalServerError, res.Error)
		return
	}
	if res.RowsAffected == 0 {
		utils.RespondError(c, http.StatusNotFound, fmt.Errorf("user not found"))
		return
	}

	var updated models.User
	if err := uc.DB.First(&updated, id).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "User updated successfully", updated)
}

// UpdateUserStatus -> aktif / nonaktifkan staff
func (uc *UserController) UpdateUserStatus(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, fmt.Errorf("invalid user id"))
		return
	}

	type ReqBody struct {
		Status string `json:"status" binding:"required"`
	}

	var body ReqBody
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	res := uc.DB.Model(&models.User{}).Where("id = ?", id).Update("status", body.Status)
	if res.Error != nil {
		utils.RespondError(c, http.StatusInternalServerError, res.Error)
		return
	}
	if res.RowsAffected == 0 {
		utils.RespondError(c, http.StatusNotFound, fmt.Errorf("user not found"))
		return
	}

	var updated models.User
	if err := uc.DB.First(&updated, id).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "User status updated successfully", updated)
}

// Login -> login staff via OTP WhatsApp. OTP diterbitkan dan token 12 jam
// dikembalikan bersama data user.
func (uc *UserController) Login(c *gin.Context) {
	type ReqBody struct {
		Phone string `json:"phone" binding:"required"`
	}

	var body ReqBody
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, fmt.Errorf("phone number is required"))
		return
	}

	var user models.User
	if err := uc.DB.Where("phone = ?", body.Phone).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondError(c, http.StatusNotFound, fmt.Errorf("phone number not found"))
			return
		}
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	if _, err := uc.Otp.IssueUserOtp(c.Request.Context(), &user); err != nil {
		utils.RespondError(c, http.StatusBadRequest, fmt.Errorf("failed to send OTP"))
		return
	}

	token, err := utils.GenerateToken(user.ID, user.Role, unmarshalBranchCodes(user.BranchCodes))
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "OTP sent to user's phone.", gin.H{
		"token": token,
		"user":  user,
	})
}
