package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// WhatsAppSender mengirim pesan template WhatsApp. Semua pengiriman lewat
// task queue sehingga gagalnya channel notifikasi tidak pernah menahan
// transisi state yang sudah tersimpan.
type WhatsAppSender interface {
	SendTemplate(ctx context.Context, phone, template, langCode string, bodyParams, buttonParams []string) error
}

// WhatsAppService memanggil WhatsApp Cloud API.
type WhatsAppService struct {
	uri        string
	token      string
	httpClient *http.Client
}

func NewWhatsAppService(uri, token string) *WhatsAppService {
	return &WhatsAppService{
		uri:   uri,
		token: token,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

type waParameter struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type waComponent struct {
	Type       string        `json:"type"`
	SubType    string        `json:"sub_type,omitempty"`
	Index      int           `json:"index,omitempty"`
	Parameters []waParameter `json:"parameters"`
}

func (s *WhatsAppService) SendTemplate(ctx context.Context, phone, template, langCode string, bodyParams, buttonParams []string) error {
	components := []waComponent{
		{Type: "body", Parameters: textParams(bodyParams)},
	}
	if len(buttonParams) > 0 {
		components = append(components, waComponent{
			Type:       "button",
			SubType:    "url",
			Parameters: textParams(buttonParams),
		})
	}

	payload := map[string]any{
		"messaging_product": "whatsapp",
		"to":                phone,
		"type":              "template",
		"template": map[string]any{
			"name":       template,
			"language":   map[string]string{"code": langCode},
			"components": components,
		},
	}

	b, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.uri, bytes.NewReader(b))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+s.token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("whatsapp send failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var body map[string]any
		_ = json.NewDecoder(resp.Body).Decode(&body)
		return fmt.Errorf("whatsapp template %s rejected: %s (%v)", template, resp.Status, body)
	}
	return nil
}

func textParams(values []string) []waParameter {
	params := make([]waParameter, 0, len(values))
	for _, v := range values {
		params = append(params, waParameter{Type: "text", Text: v})
	}
	return params
}
