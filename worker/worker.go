// Package worker menjalankan konsumer asynq untuk task tunda (reminder,
// expiry) dan pengiriman WhatsApp. Task dieksekusi at-least-once; handler
// yang memutasi state selalu mengecek ulang state tersimpan lebih dulu,
// dan kegagalan kirim WhatsApp dikembalikan sebagai error supaya asynq
// me-retry pengiriman tanpa menyentuh transisi yang sudah commit.
package worker

import (
	"context"
	"encoding/json"

	"github.com/hibiken/asynq"
	"github.com/yeremiapane/reservation-app/services"
	"github.com/yeremiapane/reservation-app/tasks"
	"github.com/yeremiapane/reservation-app/utils"
)

type Worker struct {
	srv      *asynq.Server
	invoices *services.InvoiceService
	wa       services.WhatsAppSender
}

func New(redisAddr string, invoices *services.InvoiceService, wa services.WhatsAppSender) *Worker {
	srv := asynq.NewServer(
		asynq.RedisClientOpt{Addr: redisAddr},
		asynq.Config{
			Concurrency: 10,
		},
	)
	return &Worker{srv: srv, invoices: invoices, wa: wa}
}

// Start menjalankan worker di background. Shutdown harus dipanggil saat
// proses berhenti.
func (w *Worker) Start() error {
	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeInvoiceExpire, w.handleInvoiceExpire)
	mux.HandleFunc(tasks.TypePaymentReminderWA, w.handlePaymentReminder)
	mux.HandleFunc(tasks.TypePaymentRequestWA, w.handlePaymentRequest)
	mux.HandleFunc(tasks.TypePaymentConfirmationWA, w.handlePaymentConfirmation)
	mux.HandleFunc(tasks.TypeOtpWA, w.handleOtp)

	if err := w.srv.Start(mux); err != nil {
		return err
	}
	utils.InfoLogger.Println("task worker started")
	return nil
}

func (w *Worker) Shutdown() {
	w.srv.Shutdown()
}

func (w *Worker) handleInvoiceExpire(ctx context.Context, t *asynq.Task) error {
	var p tasks.InvoiceExpirePayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return err
	}
	return w.invoices.ExpireInvoice(ctx, p.InvoiceID, p.ReservationID)
}

func (w *Worker) handlePaymentReminder(ctx context.Context, t *asynq.Task) error {
	var p tasks.PaymentReminderPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return err
	}
	return w.invoices.SendPaymentReminder(ctx, p)
}

func (w *Worker) handlePaymentRequest(ctx context.Context, t *asynq.Task) error {
	var p tasks.PaymentRequestPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return err
	}
	return w.wa.SendTemplate(ctx, p.Phone, "invoice_template", "en",
		[]string{p.Name, p.Branch, p.ReservationCode, p.ExpiryTime, p.Amount},
		[]string{p.InvoiceID})
}

func (w *Worker) handlePaymentConfirmation(ctx context.Context, t *asynq.Task) error {
	var p tasks.PaymentConfirmationPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return err
	}
	return w.wa.SendTemplate(ctx, p.Phone, "payment_confirmation", "en",
		[]string{p.Name, p.Date, p.Time, p.Guest, p.Branch, p.ReservationCode, p.ReceiptURL},
		nil)
}

func (w *Worker) handleOtp(ctx context.Context, t *asynq.Task) error {
	var p tasks.OtpPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return err
	}
	return w.wa.SendTemplate(ctx, p.Phone, "otp_template_code", "id",
		[]string{p.Code}, []string{p.Code})
}
