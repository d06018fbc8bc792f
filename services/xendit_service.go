package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/yeremiapane/reservation-app/utils"
)

const xenditBaseURL = "https://api.xendit.co"

// XenditClient adalah kontrak ke payment provider. Dipisah sebagai
// interface supaya service pemanggil bisa di-test tanpa HTTP.
type XenditClient interface {
	CreateInvoice(ctx context.Context, req XenditInvoiceRequest) (*XenditInvoice, error)
	CreateDisbursement(ctx context.Context, req XenditDisbursementRequest) (*XenditDisbursement, error)
}

type XenditInvoiceRequest struct {
	ExternalID      string  `json:"external_id"`
	Amount          float64 `json:"amount"`
	Description     string  `json:"description"`
	PayerEmail      string  `json:"payer_email"`
	ShouldSendEmail bool    `json:"should_send_email"`
	InvoiceDuration int     `json:"invoice_duration"` // detik
}

type XenditInvoice struct {
	ID         string `json:"id"`
	ExternalID string `json:"external_id"`
	InvoiceURL string `json:"invoice_url"`
	ExpiryDate string `json:"expiry_date"` // RFC3339 dengan milidetik, UTC
	Status     string `json:"status"`
}

// ParseExpiry mengubah expiry_date Xendit menjadi time.Time UTC.
func (inv *XenditInvoice) ParseExpiry() (time.Time, error) {
	return time.Parse("2006-01-02T15:04:05.000Z", inv.ExpiryDate)
}

type XenditDisbursementRequest struct {
	ExternalID        string  `json:"external_id"`
	Amount            float64 `json:"amount"`
	BankCode          string  `json:"bank_code"`
	AccountHolderName string  `json:"account_holder_name"`
	AccountNumber     string  `json:"account_number"`
	Description       string  `json:"description"`
}

type XenditDisbursement struct {
	ID         string `json:"id"`
	ExternalID string `json:"external_id"`
	Status     string `json:"status"`
}

// XenditService memanggil REST API Xendit dengan basic auth API key.
type XenditService struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

func NewXenditService(apiKey string) *XenditService {
	return &XenditService{
		apiKey:  apiKey,
		baseURL: xenditBaseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

func (s *XenditService) CreateInvoice(ctx context.Context, req XenditInvoiceRequest) (*XenditInvoice, error) {
	var out XenditInvoice
	if err := s.post(ctx, "/v2/invoices", req, &out); err != nil {
		return nil, err
	}
	if out.ID == "" {
		return nil, utils.UpstreamError(http.StatusBadGateway, nil, "xendit returned empty invoice id")
	}
	return &out, nil
}

func (s *XenditService) CreateDisbursement(ctx context.Context, req XenditDisbursementRequest) (*XenditDisbursement, error) {
	var out XenditDisbursement
	if err := s.post(ctx, "/disbursements", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// post mengirim request JSON; kalau provider menjawab non-2xx, status dan
// payload error provider diteruskan apa adanya sebagai UpstreamError.
func (s *XenditService) post(ctx context.Context, path string, body, out any) error {
	b, err := json.Marshal(body)
	if err != nil {
		return err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+path, bytes.NewReader(b))
	if err != nil {
		return err
	}
	httpReq.SetBasicAuth(s.apiKey, "")
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(httpReq)
	if err != nil {
		return utils.UpstreamError(http.StatusBadGateway, nil, "xendit request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		var payload map[string]any
		_ = json.NewDecoder(resp.Body).Decode(&payload)
		return utils.UpstreamError(resp.StatusCode, payload,
			"xendit %s failed: %s", path, resp.Status)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode xendit response: %w", err)
	}
	return nil
}
