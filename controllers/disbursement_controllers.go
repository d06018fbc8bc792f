package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/yeremiapane/reservation-app/models"
	"github.com/yeremiapane/reservation-app/services"
	"github.com/yeremiapane/reservation-app/utils"
)

type DisbursementController struct {
	DB       *gorm.DB
	Xendit   services.XenditClient
	Webhooks *services.WebhookService
}

func NewDisbursementController(db *gorm.DB, xendit services.XenditClient, webhooks *services.WebhookService) *DisbursementController {
	return &DisbursementController{DB: db, Xendit: xendit, Webhooks: webhooks}
}

// CreateDisbursement -> buat payout di Xendit lalu simpan recordnya.
// Status awal mengikuti jawaban provider.
func (dc *DisbursementController) CreateDisbursement(c *gin.Context) {
	type ReqBody struct {
		ExternalID        string  `json:"external_id" binding:"required"`
		UserID            *uint   `json:"userId"`
		Amount            float64 `json:"amount" binding:"required"`
		BankCode          string  `json:"bank_code" binding:"required"`
		AccountHolderName string  `json:"account_holder_name" binding:"required"`
		AccountNumber     string  `json:"account_number" binding:"required"`
		Description       string  `json:"description"`
	}

	var body ReqBody
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	created, err := dc.Xendit.CreateDisbursement(c.Request.Context(), services.XenditDisbursementRequest{
		ExternalID:        body.ExternalID,
		Amount:            body.Amount,
		BankCode:          body.BankCode,
		AccountHolderName: body.AccountHolderName,
		AccountNumber:     body.AccountNumber,
		Description:       body.Description,
	})
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}

	disbursement := models.Disbursement{
		DisbursementID:    created.ID,
		ExternalID:        body.ExternalID,
		UserID:            body.UserID,
		Amount:            body.Amount,
		BankCode:          body.BankCode,
		AccountHolderName: body.AccountHolderName,
		AccountNumber:     body.AccountNumber,
		Description:       body.Description,
		Status:            created.Status,
	}

	if err := dc.DB.Create(&disbursement).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Disbursement created successfully and saved to DB", disbursement)
}

// DisbursementWebhook -> callback status payout dari Xendit
func (dc *DisbursementController) DisbursementWebhook(c *gin.Context) {
	var cb services.DisbursementCallback
	if err := c.ShouldBindJSON(&cb); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if err := dc.Webhooks.HandleDisbursementCallback(c.Request.Context(), cb); err != nil {
		utils.RespondAppError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Disbursement status updated", nil)
}

// GetDisbursements -> list seluruh disbursement
func (dc *DisbursementController) GetDisbursements(c *gin.Context) {
	var disbursements []models.Disbursement
	if err := dc.DB.Find(&disbursements).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Disbursements fetched successfully", disbursements)
}
