package controllers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/yeremiapane/reservation-app/models"
	"github.com/yeremiapane/reservation-app/utils"
)

type RefundController struct {
	DB *gorm.DB
}

func NewRefundController(db *gorm.DB) *RefundController {
	return &RefundController{DB: db}
}

// CreateRefund -> ajukan refund untuk satu invoice, maksimal satu per
// external_id. reservationCode dan branchCode diambil dari invoice.
func (fc *RefundController) CreateRefund(c *gin.Context) {
	type ReqBody struct {
		ExternalID    string `json:"external_id" binding:"required"`
		BankName      string `json:"bank_name" binding:"required"`
		AccountNumber string `json:"account_number" binding:"required"`
		AccountHolder string `json:"account_holder" binding:"required"`
		Phone         string `json:"phone" binding:"required"`
	}

	var body ReqBody
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, fmt.Errorf("all fields are required"))
		return
	}

	var invoice models.Invoice
	if err := fc.DB.Where("external_id = ?", body.ExternalID).First(&invoice).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondError(c, http.StatusNotFound, fmt.Errorf("invoice not found"))
			return
		}
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	refund := models.Refund{
		ExternalID:      body.ExternalID,
		ReservationCode: invoice.ReservationCode,
		BranchCode:      invoice.BranchCode,
		BankName:        body.BankName,
		AccountNumber:   body.AccountNumber,
		AccountHolder:   body.AccountHolder,
		Phone:           body.Phone,
		RefundStatus:    models.RefundStatusRequested,
	}

	// Duplikat ditangkap lewat unique index external_id, bukan baca dulu,
	// supaya dua request bersamaan tetap satu yang menang.
	if err := fc.DB.Create(&refund).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			utils.RespondError(c, http.StatusConflict, fmt.Errorf("refund already exists for this invoice"))
			return
		}
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusCreated, "Refund request created successfully", gin.H{
		"refund_id": refund.ID,
	})
}

// GetRefundsByBranch -> list refund per branch
func (fc *RefundController) GetRefundsByBranch(c *gin.Context) {
	branchCode := c.Param("branchCode")

	var refunds []models.Refund
	if err := fc.DB.Where("branch_code = ?", branchCode).Find(&refunds).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	if len(refunds) == 0 {
		utils.RespondError(c, http.StatusNotFound, fmt.Errorf("no refunds found for this branch"))
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Success get refunds", refunds)
}

// UpdateRefundStatus -> ubah status refund, sekaligus dicerminkan ke
// refund_status di invoice yang sama.
func (fc *RefundController) UpdateRefundStatus(c *gin.Context) {
	externalID := c.Param("external_id")

	type ReqBody struct {
		RefundStatus string `json:"refund_status" binding:"required"`
	}

	var body ReqBody
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, fmt.Errorf("refund status is required"))
		return
	}

	res := fc.DB.Model(&models.Refund{}).
		Where("external_id = ?", externalID).
		Update("refund_status", body.RefundStatus)
	if res.Error != nil {
		utils.RespondError(c, http.StatusInternalServerError, res.Error)
		return
	}
	if res.RowsAffected == 0 {
		utils.RespondError(c, http.StatusNotFound, fmt.Errorf("refund not found"))
		return
	}

	inv := fc.DB.Model(&models.Invoice{}).
		Where("external_id = ?", externalID).
		Update("refund_status", body.RefundStatus)
	if inv.Error != nil {
		utils.RespondError(c, http.StatusInternalServerError, inv.Error)
		return
	}
	if inv.RowsAffected == 0 {
		utils.RespondError(c, http.StatusNotFound, fmt.Errorf("invoice not found"))
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Refund status updated successfully", nil)
}
