package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/yeremiapane/reservation-app/utils"
)

// GristService membaca data referensi (branch, meja, menu) dari dokumen
// Grist. Upstream mengembalikan kolom posisi; daftar nama field per tabel
// adalah kontrak berversi dengan skema dokumen dan divalidasi di sini,
// bukan di-zip buta.
type GristService struct {
	server     string
	docID      string
	apiKey     string
	httpClient *http.Client
}

func NewGristService(server, docID, apiKey string) *GristService {
	return &GristService{
		server: server,
		docID:  docID,
		apiKey: apiKey,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// FetchRecords mengambil satu tabel dan mengubahnya menjadi record
// field->nilai sesuai kontrak fields. Field yang hilang atau kolom yang
// panjangnya tidak seragam dianggap perubahan skema upstream dan
// dilaporkan sebagai error, bukan di-skip.
func (s *GristService) FetchRecords(ctx context.Context, table string, fields []string) ([]map[string]any, error) {
	url := fmt.Sprintf("%s/api/docs/%s/tables/%s/data", s.server, s.docID, table)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+s.apiKey)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, utils.UpstreamError(http.StatusBadGateway, nil, "grist request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var payload map[string]any
		_ = json.NewDecoder(resp.Body).Decode(&payload)
		return nil, utils.UpstreamError(resp.StatusCode, payload, "grist fetch %s failed: %s", table, resp.Status)
	}

	var columns map[string][]any
	if err := json.NewDecoder(resp.Body).Decode(&columns); err != nil {
		return nil, fmt.Errorf("decode grist table %s: %w", table, err)
	}

	rowCount := -1
	for _, field := range fields {
		col, ok := columns[field]
		if !ok {
			return nil, utils.UpstreamError(http.StatusBadGateway, nil,
				"grist table %s missing expected field %s (schema changed?)", table, field)
		}
		if rowCount == -1 {
			rowCount = len(col)
		} else if len(col) != rowCount {
			return nil, utils.UpstreamError(http.StatusBadGateway, nil,
				"grist table %s has ragged columns", table)
		}
	}
	if rowCount <= 0 {
		return []map[string]any{}, nil
	}

	records := make([]map[string]any, 0, rowCount)
	for i := 0; i < rowCount; i++ {
		record := make(map[string]any, len(fields))
		for _, field := range fields {
			record[field] = columns[field][i]
		}
		records = append(records, record)
	}
	return records, nil
}

// FilterRecords menyaring record berdasarkan kesamaan string pada satu field.
func FilterRecords(records []map[string]any, field, want string) []map[string]any {
	var out []map[string]any
	for _, r := range records {
		if v, ok := r[field].(string); ok && v == want {
			out = append(out, r)
		}
	}
	return out
}
