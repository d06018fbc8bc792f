package services

import (
	"context"
	"fmt"
	"net/http"

	"github.com/hibiken/asynq"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/yeremiapane/reservation-app/models"
	"github.com/yeremiapane/reservation-app/utils"
)

func setupServiceDB(name string) *gorm.DB {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		panic("failed to connect database")
	}
	err = db.AutoMigrate(
		&models.Reservation{},
		&models.Invoice{},
		&models.Refund{},
		&models.Disbursement{},
		&models.ReservationSummary{},
		&models.TableCounter{},
		&models.Customer{},
		&models.User{},
	)
	if err != nil {
		panic(err)
	}
	return db
}

// fakeEnqueuer merekam task yang di-enqueue tanpa Redis.
type fakeEnqueuer struct {
	tasks []*asynq.Task
	opts  [][]asynq.Option
	err   error
}

func (f *fakeEnqueuer) Enqueue(task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.tasks = append(f.tasks, task)
	f.opts = append(f.opts, opts)
	return &asynq.TaskInfo{ID: fmt.Sprintf("task-%d", len(f.tasks))}, nil
}

func (f *fakeEnqueuer) typeNames() []string {
	var names []string
	for _, t := range f.tasks {
		names = append(names, t.Type())
	}
	return names
}

// fakeXendit menjawab create invoice/disbursement tanpa HTTP.
type fakeXendit struct {
	invoice  *XenditInvoice
	err      error
	requests []XenditInvoiceRequest
}

func (f *fakeXendit) CreateInvoice(_ context.Context, req XenditInvoiceRequest) (*XenditInvoice, error) {
	f.requests = append(f.requests, req)
	if f.err != nil {
		return nil, f.err
	}
	inv := *f.invoice
	inv.ExternalID = req.ExternalID
	return &inv, nil
}

func (f *fakeXendit) CreateDisbursement(_ context.Context, req XenditDisbursementRequest) (*XenditDisbursement, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &XenditDisbursement{ID: "disb-1", ExternalID: req.ExternalID, Status: "PENDING"}, nil
}

type waCall struct {
	phone    string
	template string
}

// fakeWA merekam pengiriman template WhatsApp.
type fakeWA struct {
	calls []waCall
	err   error
}

func (f *fakeWA) SendTemplate(_ context.Context, phone, template, _ string, _ []string, _ []string) error {
	if f.err != nil {
		return f.err
	}
	f.calls = append(f.calls, waCall{phone: phone, template: template})
	return nil
}

func upstreamTestError() error {
	return utils.UpstreamError(http.StatusBadRequest, map[string]any{
		"error_code": "API_VALIDATION_ERROR",
	}, "xendit /v2/invoices failed: 400 Bad Request")
}
