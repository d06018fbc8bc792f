package controllers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/yeremiapane/reservation-app/models"
	"github.com/yeremiapane/reservation-app/services"
	"github.com/yeremiapane/reservation-app/utils"
)

type InvoiceController struct {
	DB       *gorm.DB
	Invoices *services.InvoiceService
	Webhooks *services.WebhookService
}

func NewInvoiceController(db *gorm.DB, invoices *services.InvoiceService, webhooks *services.WebhookService) *InvoiceController {
	return &InvoiceController{DB: db, Invoices: invoices, Webhooks: webhooks}
}

// CreateInvoice -> buat invoice Xendit untuk satu reservasi
func (ic *InvoiceController) CreateInvoice(c *gin.Context) {
	type CustomerReq struct {
		Name  string `json:"name"`
		Phone string `json:"phone"`
		Email string `json:"email"`
	}
	type ReservationReq struct {
		ReservationID uint        `json:"reservationId" binding:"required"`
		BranchCode    string      `json:"branchCode"`
		BranchName    string      `json:"branchName"`
		TotalAmount   float64     `json:"totalAmount" binding:"required"`
		Customer      CustomerReq `json:"customer"`
	}
	type ReqBody struct {
		OrderID         string          `json:"order_id" binding:"required"`
		ReservationCode string          `json:"reservationCode" binding:"required"`
		Reservation     *ReservationReq `json:"reservation" binding:"required"`
	}

	var body ReqBody
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, fmt.Errorf("missing required reservation data"))
		return
	}

	result, err := ic.Invoices.CreateInvoice(c.Request.Context(), services.CreateInvoiceInput{
		OrderID:         body.OrderID,
		ReservationCode: body.ReservationCode,
		ReservationID:   body.Reservation.ReservationID,
		BranchCode:      body.Reservation.BranchCode,
		BranchName:      body.Reservation.BranchName,
		TotalAmount:     body.Reservation.TotalAmount,
		CustomerName:    body.Reservation.Customer.Name,
		CustomerPhone:   body.Reservation.Customer.Phone,
		CustomerEmail:   body.Reservation.Customer.Email,
	})
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Invoice created successfully and WhatsApp will be sent", result)
}

// XenditWebhook -> callback status pembayaran dari Xendit
func (ic *InvoiceController) XenditWebhook(c *gin.Context) {
	var cb services.InvoiceCallback
	if err := c.ShouldBindJSON(&cb); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if err := ic.Webhooks.HandleInvoiceCallback(c.Request.Context(), cb); err != nil {
		utils.RespondAppError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Webhook received", nil)
}

// GetInvoicesByBranch -> list invoice per branch
func (ic *InvoiceController) GetInvoicesByBranch(c *gin.Context) {
	branchCode := c.Param("branchCode")

	var invoices []models.Invoice
	if err := ic.DB.Where("branch_code = ?", branchCode).Find(&invoices).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	if len(invoices) == 0 {
		utils.RespondError(c, http.StatusNotFound, fmt.Errorf("no invoices found for this branch"))
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Success get invoices", invoices)
}

// UpdateRefundStatus -> PATCH refund_status berdasarkan external_id
func (ic *InvoiceController) UpdateRefundStatus(c *gin.Context) {
	externalID := c.Param("external_id")

	type ReqBody struct {
		RefundStatus string `json:"refund_status" binding:"required"`
	}

	var body ReqBody
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, fmt.Errorf("refund status is required"))
		return
	}

	if err := ic.Invoices.UpdateRefundStatus(c.Request.Context(), externalID, body.RefundStatus); err != nil {
		utils.RespondAppError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Refund status updated successfully", nil)
}
