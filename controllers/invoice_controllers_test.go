package controllers_test

import (
	"context"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"github.com/yeremiapane/reservation-app/controllers"
	"github.com/yeremiapane/reservation-app/models"
	"github.com/yeremiapane/reservation-app/services"
)

// stubXendit menjawab create invoice tanpa HTTP.
type stubXendit struct{}

func (s *stubXendit) CreateInvoice(_ context.Context, req services.XenditInvoiceRequest) (*services.XenditInvoice, error) {
	expiry := time.Now().UTC().Add(15 * time.Minute)
	return &services.XenditInvoice{
		ID:         "inv-ctrl-1",
		ExternalID: req.ExternalID,
		InvoiceURL: "https://checkout.xendit.co/web/inv-ctrl-1",
		ExpiryDate: expiry.Format("2006-01-02T15:04:05.000Z"),
		Status:     "PENDING",
	}, nil
}

func (s *stubXendit) CreateDisbursement(_ context.Context, req services.XenditDisbursementRequest) (*services.XenditDisbursement, error) {
	return &services.XenditDisbursement{ID: "disb-ctrl-1", ExternalID: req.ExternalID, Status: "PENDING"}, nil
}

type stubWA struct{}

func (s *stubWA) SendTemplate(_ context.Context, _, _, _ string, _, _ []string) error {
	return nil
}

func setupInvoiceRouter(db *gorm.DB) (*gin.Engine, *noopEnqueuer) {
	queue := &noopEnqueuer{}
	invoices := services.NewInvoiceService(db, &stubXendit{}, queue, &stubWA{})
	webhooks := services.NewWebhookService(db, services.NewCounterService(db), queue, "https://reservation.example.com/invoice")

	router := gin.Default()
	ctrl := controllers.NewInvoiceController(db, invoices, webhooks)
	router.POST("/create_invoice", ctrl.CreateInvoice)
	router.POST("/xendit_webhook", ctrl.XenditWebhook)
	router.GET("/invoice/:branchCode", ctrl.GetInvoicesByBranch)
	router.PATCH("/invoices/:external_id", ctrl.UpdateRefundStatus)
	return router, queue
}

func invoicePayload(orderID string, reservationID uint) map[string]any {
	return map[string]any{
		"order_id":        orderID,
		"reservationCode": "RSV-GI-001",
		"reservation": map[string]any{
			"reservationId": reservationID,
			"branchCode":    "GI",
			"branchName":    "Grand Indonesia",
			"totalAmount":   1500000,
			"customer": map[string]any{
				"name":  "Budi",
				"phone": "628123456789",
				"email": "budi@example.com",
			},
		},
	}
}

func TestCreateInvoiceEndpoint(t *testing.T) {
	db := setupControllerDB("inv_create")
	router, queue := setupInvoiceRouter(db)

	reservation := models.Reservation{BranchCode: "GI", Status: models.ReservationPending}
	db.Create(&reservation)

	w := doJSON(router, "POST", "/create_invoice", invoicePayload("42", reservation.ID))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Invoice created successfully and WhatsApp will be sent", decodeBody(w)["message"])

	var invoice models.Invoice
	db.Where("invoice_id = ?", "inv-ctrl-1").First(&invoice)
	assert.Equal(t, "order-42", invoice.ExternalID)
	assert.Equal(t, models.InvoiceStatusAwaiting, invoice.Status)

	// Reminder + expiry + pesan payment request.
	assert.Len(t, queue.tasks, 3)
}

func TestCreateInvoiceEndpointMissingBody(t *testing.T) {
	db := setupControllerDB("inv_create_bad")
	router, _ := setupInvoiceRouter(db)

	w := doJSON(router, "POST", "/create_invoice", map[string]any{"order_id": "42"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestXenditWebhookEndpoint(t *testing.T) {
	db := setupControllerDB("inv_webhook")
	router, _ := setupInvoiceRouter(db)

	reservation := models.Reservation{
		BranchCode: "GI",
		Date:       "2025-01-10",
		Status:     models.ReservationPending,
	}
	db.Create(&reservation)

	// order_id = id reservasi supaya external_id menunjuk balik ke sana.
	orderID := fmt.Sprintf("%d", reservation.ID)
	w := doJSON(router, "POST", "/create_invoice", invoicePayload(orderID, reservation.ID))
	assert.Equal(t, http.StatusOK, w.Code)

	var invoice models.Invoice
	db.Where("invoice_id = ?", "inv-ctrl-1").First(&invoice)

	w = doJSON(router, "POST", "/xendit_webhook", map[string]any{
		"id":          invoice.InvoiceID,
		"status":      "PAID",
		"external_id": invoice.ExternalID,
	})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Webhook received", decodeBody(w)["message"])

	db.Where("invoice_id = ?", "inv-ctrl-1").First(&invoice)
	assert.Equal(t, models.InvoiceStatusPaid, invoice.Status)

	var updated models.Reservation
	db.First(&updated, reservation.ID)
	assert.Equal(t, models.ReservationPaid, updated.Status)
}

func TestGetInvoicesByBranchEndpoint(t *testing.T) {
	db := setupControllerDB("inv_list")
	router, _ := setupInvoiceRouter(db)

	w := doJSON(router, "GET", "/invoice/GI", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	db.Create(&models.Invoice{InvoiceID: "inv-list-1", BranchCode: "GI"})

	w = doJSON(router, "GET", "/invoice/GI", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	list := decodeBody(w)["data"].([]any)
	assert.Len(t, list, 1)
}

func TestUpdateInvoiceRefundStatusEndpoint(t *testing.T) {
	db := setupControllerDB("inv_refund")
	router, _ := setupInvoiceRouter(db)

	db.Create(&models.Invoice{InvoiceID: "inv-rf-1", ExternalID: "order-90"})

	w := doJSON(router, "PATCH", "/invoices/order-90", map[string]any{
		"refund_status": "Refunded",
	})
	assert.Equal(t, http.StatusOK, w.Code)

	var invoice models.Invoice
	db.Where("external_id = ?", "order-90").First(&invoice)
	assert.Equal(t, "Refunded", invoice.RefundStatus)

	w = doJSON(router, "PATCH", "/invoices/order-missing", map[string]any{
		"refund_status": "Refunded",
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
}
