package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
	"github.com/yeremiapane/reservation-app/models"
	"github.com/yeremiapane/reservation-app/tasks"
	"github.com/yeremiapane/reservation-app/utils"
	"gorm.io/gorm"
)

// invoiceDuration adalah masa berlaku invoice Xendit.
const invoiceDuration = 900 * time.Second

// reminderOffset: pesan reminder dikirim 5 menit sebelum expiry.
const reminderOffset = 5 * time.Minute

// InvoiceService memegang lifecycle invoice: membuat invoice di Xendit,
// menyimpan recordnya, menjadwalkan reminder dan expiry, dan mengeksekusi
// kedua aksi tunda tersebut saat waktunya tiba.
type InvoiceService struct {
	db     *gorm.DB
	xendit XenditClient
	queue  Enqueuer
	wa     WhatsAppSender
}

func NewInvoiceService(db *gorm.DB, xendit XenditClient, queue Enqueuer, wa WhatsAppSender) *InvoiceService {
	return &InvoiceService{db: db, xendit: xendit, queue: queue, wa: wa}
}

type CreateInvoiceInput struct {
	OrderID         string
	ReservationCode string
	ReservationID   uint
	BranchCode      string
	BranchName      string
	TotalAmount     float64
	CustomerName    string
	CustomerPhone   string
	CustomerEmail   string
}

type CreateInvoiceResult struct {
	InvoiceID  string `json:"invoice_id"`
	InvoiceURL string `json:"invoice_url"`
}

// CreateInvoice membuat invoice di Xendit lalu menjadwalkan reminder
// (expiry - 5 menit) dan expiry tepat di waktu kedaluwarsa, keduanya
// membawa konteks lengkap di payload. Kalau provider gagal, error provider
// diteruskan apa adanya dan tidak ada record yang tersimpan.
func (s *InvoiceService) CreateInvoice(ctx context.Context, in CreateInvoiceInput) (*CreateInvoiceResult, error) {
	externalID := fmt.Sprintf("order-%s", in.OrderID)

	created, err := s.xendit.CreateInvoice(ctx, XenditInvoiceRequest{
		ExternalID:      externalID,
		Amount:          in.TotalAmount,
		Description:     in.BranchName,
		PayerEmail:      in.CustomerEmail,
		ShouldSendEmail: true,
		InvoiceDuration: int(invoiceDuration.Seconds()),
	})
	if err != nil {
		return nil, err
	}

	expiryUTC, err := created.ParseExpiry()
	if err != nil {
		return nil, fmt.Errorf("parse xendit expiry %q: %w", created.ExpiryDate, err)
	}
	expiryWIB := expiryUTC.In(utils.WIB)
	formattedAmount := utils.FormatAmount(in.TotalAmount)

	reminderTask, err := tasks.NewPaymentReminderTask(tasks.PaymentReminderPayload{
		Phone:           in.CustomerPhone,
		Name:            in.CustomerName,
		Branch:          in.BranchName,
		ReservationCode: in.ReservationCode,
		ExpiryTime:      expiryWIB.Format("15:04"),
		Amount:          formattedAmount,
	})
	if err != nil {
		return nil, err
	}
	if _, err := s.queue.Enqueue(reminderTask, asynq.ProcessAt(expiryUTC.Add(-reminderOffset))); err != nil {
		return nil, fmt.Errorf("schedule payment reminder: %w", err)
	}

	expireTask, err := tasks.NewInvoiceExpireTask(tasks.InvoiceExpirePayload{
		InvoiceID:     created.ID,
		ReservationID: in.ReservationID,
	})
	if err != nil {
		return nil, err
	}
	if _, err := s.queue.Enqueue(expireTask, asynq.ProcessAt(expiryUTC)); err != nil {
		return nil, fmt.Errorf("schedule invoice expiry: %w", err)
	}

	invoice := models.Invoice{
		InvoiceID:       created.ID,
		ExternalID:      created.ExternalID,
		BranchCode:      in.BranchCode,
		ReservationCode: in.ReservationCode,
		ReservationID:   in.ReservationID,
		ExpiryDate:      expiryUTC,
		InvoiceURL:      created.InvoiceURL,
		Status:          models.InvoiceStatusAwaiting,
		Mdr:             models.MDRRate,
	}
	if err := s.db.Create(&invoice).Error; err != nil {
		return nil, err
	}

	requestTask, err := tasks.NewPaymentRequestTask(tasks.PaymentRequestPayload{
		Phone:           in.CustomerPhone,
		Name:            in.CustomerName,
		Branch:          in.BranchName,
		ReservationCode: in.ReservationCode,
		ExpiryTime:      expiryWIB.Format("15:04"),
		Amount:          formattedAmount,
		InvoiceID:       created.ID,
	})
	if err != nil {
		return nil, err
	}
	if _, err := s.queue.Enqueue(requestTask); err != nil {
		// Notifikasi best effort, invoice sudah tersimpan.
		utils.ErrorLogger.Errorf("enqueue payment request message for %s: %v", created.ID, err)
	}

	return &CreateInvoiceResult{InvoiceID: created.ID, InvoiceURL: created.InvoiceURL}, nil
}

// ExpireInvoice adalah aksi tunda yang jalan di waktu expiry. Kedua update
// dijaga state masing-masing dan dijalankan tanpa saling bergantung:
// redelivery setelah crash di antara keduanya menuntaskan sisi yang
// tertinggal, sedangkan invoice yang sudah Lunas dan reservasi yang sudah
// PAID tidak tersentuh.
func (s *InvoiceService) ExpireInvoice(ctx context.Context, invoiceID string, reservationID uint) error {
	inv := s.db.WithContext(ctx).Model(&models.Invoice{}).
		Where("invoice_id = ? AND status = ?", invoiceID, models.InvoiceStatusAwaiting).
		Update("status", models.InvoiceStatusExpired)
	if inv.Error != nil {
		return inv.Error
	}

	resv := s.db.WithContext(ctx).Model(&models.Reservation{}).
		Where("id = ? AND status = ?", reservationID, models.ReservationPending).
		Update("status", models.ReservationExpired)
	if resv.Error != nil {
		return resv.Error
	}

	if inv.RowsAffected == 0 && resv.RowsAffected == 0 {
		utils.InfoLogger.Printf("expire no-op for invoice %s and reservation %d", invoiceID, reservationID)
		return nil
	}

	utils.InfoLogger.Printf("invoice %s and reservation %d marked as expired", invoiceID, reservationID)
	return nil
}

// SendPaymentReminder jalan 5 menit sebelum expiry. Status invoice dibaca
// ulang dulu; kalau pembayaran sudah Lunas, reminder ditekan.
func (s *InvoiceService) SendPaymentReminder(ctx context.Context, p tasks.PaymentReminderPayload) error {
	var invoice models.Invoice
	err := s.db.WithContext(ctx).
		Where("reservation_code = ?", p.ReservationCode).
		First(&invoice).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	if err == nil && invoice.Status == models.InvoiceStatusPaid {
		utils.InfoLogger.Printf("reminder suppressed for %s: already paid", p.ReservationCode)
		return nil
	}

	return s.wa.SendTemplate(ctx, p.Phone, "reminder_payment", "en",
		[]string{p.Name, p.Branch, p.ExpiryTime, p.Amount, p.ReservationCode}, nil)
}

// UpdateRefundStatus mengubah refund_status invoice berdasarkan external_id.
func (s *InvoiceService) UpdateRefundStatus(ctx context.Context, externalID, refundStatus string) error {
	res := s.db.WithContext(ctx).Model(&models.Invoice{}).
		Where("external_id = ?", externalID).
		Update("refund_status", refundStatus)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return utils.NotFoundError("invoice not found for external_id %s", externalID)
	}
	return nil
}
