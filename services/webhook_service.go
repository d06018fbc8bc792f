package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/yeremiapane/reservation-app/models"
	"github.com/yeremiapane/reservation-app/tasks"
	"github.com/yeremiapane/reservation-app/utils"
	"gorm.io/gorm"
)

// WebhookService merekonsiliasi callback asinkron dari Xendit terhadap
// state invoice/reservasi. Delivery webhook bersifat at-least-once dan bisa
// duplikat atau terbalik urutannya, jadi semua mutasi dijaga state saat ini
// dan pengulangan event yang sama adalah no-op.
type WebhookService struct {
	db             *gorm.DB
	counters       *CounterService
	queue          Enqueuer
	receiptBaseURL string
}

func NewWebhookService(db *gorm.DB, counters *CounterService, queue Enqueuer, receiptBaseURL string) *WebhookService {
	return &WebhookService{db: db, counters: counters, queue: queue, receiptBaseURL: receiptBaseURL}
}

// InvoiceCallback adalah payload webhook invoice Xendit. external_id
// menyandikan id reservasi sebagai segmen terakhirnya.
type InvoiceCallback struct {
	ID                 string  `json:"id"`
	Status             string  `json:"status"`
	ExternalID         string  `json:"external_id"`
	PaidAt             string  `json:"paid_at"`
	Updated            string  `json:"updated"`
	PaymentMethod      string  `json:"payment_method"`
	PaymentChannel     string  `json:"payment_channel"`
	PaymentDestination string  `json:"payment_destination"`
	PaidAmount         float64 `json:"paid_amount"`
	Currency           string  `json:"currency"`
	BankCode           string  `json:"bank_code"`
	MerchantName       string  `json:"merchant_name"`
}

// ReservationID mengambil segmen terakhir external_id ("order-<id>").
func (cb *InvoiceCallback) ReservationID() (uint, error) {
	parts := strings.Split(cb.ExternalID, "-")
	id, err := strconv.ParseUint(parts[len(parts)-1], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("external_id %q does not end with a reservation id", cb.ExternalID)
	}
	return uint(id), nil
}

// HandleInvoiceCallback memproses webhook pembayaran. Urutannya:
//  1. update invoice, dijaga status "Menunggu Pembayaran" -> status baru
//     (PAID dari provider dipetakan ke Lunas, lainnya diteruskan);
//  2. hanya kalau ada baris yang bertransisi, reservasi di-load dan
//     ditransisikan PENDING -> PAID + arrivalStatus Pending Confirmation;
//  3. kalau statusnya PAID dan reservasi punya branch + date, nomor meja
//     dialokasikan dan dilampirkan;
//  4. pesan konfirmasi di-enqueue, best effort.
//
// Webhook yang tidak cocok dengan invoice mana pun (termasuk duplikat)
// dicatat lalu dianggap sukses supaya provider tidak retry terus.
func (s *WebhookService) HandleInvoiceCallback(ctx context.Context, cb InvoiceCallback) error {
	mapped := cb.Status
	if cb.Status == "PAID" {
		mapped = models.InvoiceStatusPaid
	}

	res := s.db.WithContext(ctx).Model(&models.Invoice{}).
		Where("invoice_id = ? AND status = ?", cb.ID, models.InvoiceStatusAwaiting).
		Updates(map[string]any{
			"status":              mapped,
			"paid_at":             cb.PaidAt,
			"provider_updated_at": cb.Updated,
			"payment_method":      cb.PaymentMethod,
			"payment_channel":     cb.PaymentChannel,
			"payment_destination": cb.PaymentDestination,
			"paid_amount":         cb.PaidAmount,
			"currency":            cb.Currency,
			"bank_code":           cb.BankCode,
			"merchant_name":       cb.MerchantName,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		utils.InfoLogger.Printf("invoice %s webhook matched nothing (duplicate or unknown), ignored", cb.ID)
		return nil
	}

	// refund_status hanya diisi default kalau memang belum pernah diset.
	if err := s.db.WithContext(ctx).Model(&models.Invoice{}).
		Where("invoice_id = ? AND (refund_status IS NULL OR refund_status = '')", cb.ID).
		Update("refund_status", models.RefundStatusNotRequested).Error; err != nil {
		return err
	}

	reservationID, err := cb.ReservationID()
	if err != nil {
		utils.ErrorLogger.Errorf("invoice %s: %v", cb.ID, err)
		return nil
	}

	var reservation models.Reservation
	if err := s.db.WithContext(ctx).First(&reservation, reservationID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.ErrorLogger.Errorf("invoice %s updated but reservation %d not found", cb.ID, reservationID)
			return nil
		}
		return err
	}

	if !models.CanTransitionReservation(reservation.Status, models.ReservationPaid) {
		utils.InfoLogger.Printf("reservation %d already %s, payment transition skipped", reservationID, reservation.Status)
		return nil
	}

	updates := map[string]any{
		"status":         models.ReservationPaid,
		"arrival_status": models.ArrivalPendingConfirmation,
	}

	if cb.Status == "PAID" && reservation.BranchCode != "" && reservation.Date != "" {
		tableNumber, err := s.counters.Allocate(reservation.BranchCode, reservation.Date)
		if err != nil {
			return err
		}
		updates["table_name"] = strconv.Itoa(tableNumber)
	}

	if err := s.db.WithContext(ctx).Model(&models.Reservation{}).
		Where("id = ? AND status = ?", reservationID, models.ReservationPending).
		Updates(updates).Error; err != nil {
		return err
	}

	confirmation, err := tasks.NewPaymentConfirmationTask(tasks.PaymentConfirmationPayload{
		Phone:           reservation.Customer.Phone,
		Name:            reservation.Customer.Name,
		Branch:          reservation.BranchName,
		ReservationCode: reservation.ReservationCode,
		Date:            utils.FormatReservationDate(reservation.Date),
		Time:            reservation.Time,
		Guest:           strconv.Itoa(reservation.Guest),
		ReceiptURL:      fmt.Sprintf("%s/%d", s.receiptBaseURL, reservationID),
	})
	if err != nil {
		utils.ErrorLogger.Errorf("build confirmation task for reservation %d: %v", reservationID, err)
		return nil
	}
	if _, err := s.queue.Enqueue(confirmation); err != nil {
		// Notifikasi tidak boleh membatalkan transisi state yang sudah
		// tersimpan.
		utils.ErrorLogger.Errorf("enqueue confirmation for reservation %d: %v", reservationID, err)
	}

	utils.InfoLogger.Printf("invoice %s and reservation %d reconciled to %s", cb.ID, reservationID, mapped)
	return nil
}

// DisbursementCallback adalah payload webhook disbursement Xendit.
type DisbursementCallback struct {
	ID                string  `json:"id"`
	ExternalID        string  `json:"external_id"`
	BankCode          string  `json:"bank_code"`
	AccountHolderName string  `json:"account_holder_name"`
	Amount            float64 `json:"amount"`
	Description       string  `json:"disbursement_description"`
	Status            string  `json:"status"`
	IsInstant         bool    `json:"is_instant"`
}

// HandleDisbursementCallback meng-update status disbursement mengikuti
// provider. Link ke reservation_summary best effort: kalau tidak ada
// summary dengan external_id yang sama, update di-skip diam-diam.
func (s *WebhookService) HandleDisbursementCallback(ctx context.Context, cb DisbursementCallback) error {
	if cb.ExternalID == "" || cb.Status == "" {
		return utils.ValidationError("invalid disbursement webhook data")
	}

	res := s.db.WithContext(ctx).Model(&models.Disbursement{}).
		Where("external_id = ?", cb.ExternalID).
		Updates(map[string]any{
			"disbursement_id":     cb.ID,
			"bank_code":           cb.BankCode,
			"account_holder_name": cb.AccountHolderName,
			"amount":              cb.Amount,
			"description":         cb.Description,
			"status":              cb.Status,
			"is_instant":          cb.IsInstant,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		utils.InfoLogger.Printf("disbursement %s not found or already updated", cb.ExternalID)
		return nil
	}

	summary := s.db.WithContext(ctx).Model(&models.ReservationSummary{}).
		Where("external_id = ?", cb.ExternalID).
		Update("status", cb.Status)
	if summary.Error != nil {
		return summary.Error
	}
	if summary.RowsAffected == 0 {
		// Sengaja bukan error; lihat DESIGN.md.
		utils.InfoLogger.Printf("no reservation summary linked to disbursement %s", cb.ExternalID)
	}
	return nil
}
