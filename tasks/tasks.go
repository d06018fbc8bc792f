// Package tasks mendefinisikan tipe task asynq beserta payload-nya.
// Payload membawa semua konteks yang dibutuhkan handler sehingga worker
// tidak bergantung pada state in-memory proses yang meng-enqueue.
package tasks

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

const (
	TypeInvoiceExpire         = "invoice:expire"
	TypePaymentRequestWA      = "whatsapp:payment_request"
	TypePaymentReminderWA     = "whatsapp:payment_reminder"
	TypePaymentConfirmationWA = "whatsapp:payment_confirmation"
	TypeOtpWA                 = "whatsapp:otp"
)

// InvoiceExpirePayload dieksekusi tepat di waktu expiry invoice.
type InvoiceExpirePayload struct {
	InvoiceID     string `json:"invoiceId"`
	ReservationID uint   `json:"reservationId"`
}

// PaymentRequestPayload untuk pesan "silakan bayar" segera setelah
// invoice dibuat.
type PaymentRequestPayload struct {
	Phone           string `json:"phone"`
	Name            string `json:"name"`
	Branch          string `json:"branch"`
	ReservationCode string `json:"reservationCode"`
	ExpiryTime      string `json:"expiryTime"` // HH:MM WIB
	Amount          string `json:"amount"`     // sudah diformat
	InvoiceID       string `json:"invoiceId"`
}

// PaymentReminderPayload dieksekusi 5 menit sebelum expiry.
type PaymentReminderPayload struct {
	Phone           string `json:"phone"`
	Name            string `json:"name"`
	Branch          string `json:"branch"`
	ReservationCode string `json:"reservationCode"`
	ExpiryTime      string `json:"expiryTime"`
	Amount          string `json:"amount"`
}

type PaymentConfirmationPayload struct {
	Phone           string `json:"phone"`
	Name            string `json:"name"`
	Branch          string `json:"branch"`
	ReservationCode string `json:"reservationCode"`
	Date            string `json:"date"` // sudah diformat untuk tampilan
	Time            string `json:"time"`
	Guest           string `json:"guest"`
	ReceiptURL      string `json:"receiptUrl"`
}

type OtpPayload struct {
	Phone string `json:"phone"`
	Code  string `json:"code"`
}

func NewInvoiceExpireTask(p InvoiceExpirePayload) (*asynq.Task, error) {
	return newTask(TypeInvoiceExpire, p)
}

func NewPaymentRequestTask(p PaymentRequestPayload) (*asynq.Task, error) {
	return newTask(TypePaymentRequestWA, p)
}

func NewPaymentReminderTask(p PaymentReminderPayload) (*asynq.Task, error) {
	return newTask(TypePaymentReminderWA, p)
}

func NewPaymentConfirmationTask(p PaymentConfirmationPayload) (*asynq.Task, error) {
	return newTask(TypePaymentConfirmationWA, p)
}

func NewOtpTask(p OtpPayload) (*asynq.Task, error) {
	return newTask(TypeOtpWA, p)
}

func newTask(typename string, payload any) (*asynq.Task, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(typename, b), nil
}
