package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/yeremiapane/reservation-app/models"
	"github.com/yeremiapane/reservation-app/tasks"
	"github.com/yeremiapane/reservation-app/utils"
)

func init() {
	utils.InitLogger()
}

func newTestXendit() *fakeXendit {
	expiry := time.Now().UTC().Add(15 * time.Minute)
	return &fakeXendit{
		invoice: &XenditInvoice{
			ID:         "inv-1",
			InvoiceURL: "https://checkout.xendit.co/web/inv-1",
			ExpiryDate: expiry.Format("2006-01-02T15:04:05.000Z"),
			Status:     "PENDING",
		},
	}
}

func testInvoiceInput() CreateInvoiceInput {
	return CreateInvoiceInput{
		OrderID:         "42",
		ReservationCode: "RSV-GI-001",
		ReservationID:   42,
		BranchCode:      "GI",
		BranchName:      "Grand Indonesia",
		TotalAmount:     1500000,
		CustomerName:    "Budi",
		CustomerPhone:   "628123456789",
		CustomerEmail:   "budi@example.com",
	}
}

func TestCreateInvoicePersistsAndSchedules(t *testing.T) {
	db := setupServiceDB("invoice_create")
	xendit := newTestXendit()
	queue := &fakeEnqueuer{}
	svc := NewInvoiceService(db, xendit, queue, &fakeWA{})

	result, err := svc.CreateInvoice(context.Background(), testInvoiceInput())
	assert.NoError(t, err)
	assert.Equal(t, "inv-1", result.InvoiceID)
	assert.Equal(t, "https://checkout.xendit.co/web/inv-1", result.InvoiceURL)

	// external_id menyandikan order id
	assert.Equal(t, "order-42", xendit.requests[0].ExternalID)

	var invoice models.Invoice
	assert.NoError(t, db.Where("invoice_id = ?", "inv-1").First(&invoice).Error)
	assert.Equal(t, models.InvoiceStatusAwaiting, invoice.Status)
	assert.Equal(t, "RSV-GI-001", invoice.ReservationCode)
	assert.Equal(t, uint(42), invoice.ReservationID)
	assert.Equal(t, models.MDRRate, invoice.Mdr)

	// Reminder + expiry terjadwal, lalu pesan payment request.
	assert.Equal(t, []string{
		tasks.TypePaymentReminderWA,
		tasks.TypeInvoiceExpire,
		tasks.TypePaymentRequestWA,
	}, queue.typeNames())
	assert.Len(t, queue.opts[0], 1) // ProcessAt expiry-5m
	assert.Len(t, queue.opts[1], 1) // ProcessAt expiry
	assert.Len(t, queue.opts[2], 0) // langsung
}

func TestCreateInvoiceProviderFailurePersistsNothing(t *testing.T) {
	db := setupServiceDB("invoice_fail")
	xendit := newTestXendit()
	xendit.err = upstreamTestError()
	queue := &fakeEnqueuer{}
	svc := NewInvoiceService(db, xendit, queue, &fakeWA{})

	_, err := svc.CreateInvoice(context.Background(), testInvoiceInput())
	assert.Error(t, err)

	var appErr *utils.AppError
	assert.True(t, errors.As(err, &appErr))
	assert.Equal(t, utils.KindUpstream, appErr.Kind)
	assert.Equal(t, 400, appErr.UpstreamStatus)

	var count int64
	db.Model(&models.Invoice{}).Count(&count)
	assert.Equal(t, int64(0), count)
	assert.Empty(t, queue.tasks)
}

func TestExpireInvoiceMarksBothExpired(t *testing.T) {
	db := setupServiceDB("invoice_expire")
	svc := NewInvoiceService(db, newTestXendit(), &fakeEnqueuer{}, &fakeWA{})

	reservation := models.Reservation{BranchCode: "GI", Status: models.ReservationPending}
	db.Create(&reservation)
	db.Create(&models.Invoice{
		InvoiceID:     "inv-exp",
		ReservationID: reservation.ID,
		Status:        models.InvoiceStatusAwaiting,
	})

	assert.NoError(t, svc.ExpireInvoice(context.Background(), "inv-exp", reservation.ID))

	var invoice models.Invoice
	db.Where("invoice_id = ?", "inv-exp").First(&invoice)
	assert.Equal(t, models.InvoiceStatusExpired, invoice.Status)

	var updated models.Reservation
	db.First(&updated, reservation.ID)
	assert.Equal(t, models.ReservationExpired, updated.Status)
}

func TestExpireInvoiceRedeliveryCompletesReservation(t *testing.T) {
	db := setupServiceDB("invoice_expire_redelivery")
	svc := NewInvoiceService(db, newTestXendit(), &fakeEnqueuer{}, &fakeWA{})

	// Eksekusi pertama sempat menandai invoice tapi crash sebelum
	// menyentuh reservasi; task dikirim ulang.
	reservation := models.Reservation{BranchCode: "GI", Status: models.ReservationPending}
	db.Create(&reservation)
	db.Create(&models.Invoice{
		InvoiceID:     "inv-crash",
		ReservationID: reservation.ID,
		Status:        models.InvoiceStatusExpired,
	})

	assert.NoError(t, svc.ExpireInvoice(context.Background(), "inv-crash", reservation.ID))

	var updated models.Reservation
	db.First(&updated, reservation.ID)
	assert.Equal(t, models.ReservationExpired, updated.Status)

	var invoice models.Invoice
	db.Where("invoice_id = ?", "inv-crash").First(&invoice)
	assert.Equal(t, models.InvoiceStatusExpired, invoice.Status)
}

func TestExpireInvoiceLeavesPaidUntouched(t *testing.T) {
	db := setupServiceDB("invoice_expire_paid")
	svc := NewInvoiceService(db, newTestXendit(), &fakeEnqueuer{}, &fakeWA{})

	reservation := models.Reservation{BranchCode: "GI", Status: models.ReservationPaid}
	db.Create(&reservation)
	db.Create(&models.Invoice{
		InvoiceID:     "inv-paid",
		ReservationID: reservation.ID,
		Status:        models.InvoiceStatusPaid,
	})

	// Expiry datang terlambat setelah pembayaran masuk.
	assert.NoError(t, svc.ExpireInvoice(context.Background(), "inv-paid", reservation.ID))

	var invoice models.Invoice
	db.Where("invoice_id = ?", "inv-paid").First(&invoice)
	assert.Equal(t, models.InvoiceStatusPaid, invoice.Status)

	var updated models.Reservation
	db.First(&updated, reservation.ID)
	assert.Equal(t, models.ReservationPaid, updated.Status)
}

func TestSendPaymentReminderSuppressedWhenPaid(t *testing.T) {
	db := setupServiceDB("invoice_reminder")
	wa := &fakeWA{}
	svc := NewInvoiceService(db, newTestXendit(), &fakeEnqueuer{}, wa)

	db.Create(&models.Invoice{
		InvoiceID:       "inv-rem",
		ReservationCode: "RSV-GI-002",
		Status:          models.InvoiceStatusPaid,
	})

	payload := tasks.PaymentReminderPayload{
		Phone:           "628123456789",
		ReservationCode: "RSV-GI-002",
	}
	assert.NoError(t, svc.SendPaymentReminder(context.Background(), payload))
	assert.Empty(t, wa.calls)

	// Belum lunas: reminder terkirim.
	db.Model(&models.Invoice{}).
		Where("invoice_id = ?", "inv-rem").
		Update("status", models.InvoiceStatusAwaiting)
	assert.NoError(t, svc.SendPaymentReminder(context.Background(), payload))
	assert.Len(t, wa.calls, 1)
	assert.Equal(t, "reminder_payment", wa.calls[0].template)
}

func TestUpdateRefundStatusNotFound(t *testing.T) {
	db := setupServiceDB("invoice_refund_status")
	svc := NewInvoiceService(db, newTestXendit(), &fakeEnqueuer{}, &fakeWA{})

	err := svc.UpdateRefundStatus(context.Background(), "order-missing", "Refunded")
	var appErr *utils.AppError
	assert.True(t, errors.As(err, &appErr))
	assert.Equal(t, utils.KindNotFound, appErr.Kind)

	db.Create(&models.Invoice{InvoiceID: "inv-ref", ExternalID: "order-77"})
	assert.NoError(t, svc.UpdateRefundStatus(context.Background(), "order-77", "Refunded"))

	var invoice models.Invoice
	db.Where("external_id = ?", "order-77").First(&invoice)
	assert.Equal(t, "Refunded", invoice.RefundStatus)
}
