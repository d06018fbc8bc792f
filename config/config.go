package config

import (
	"os"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

type Config struct {
	Port        string
	DatabaseDSN string
	RedisAddr   string

	XenditAPIKey string

	WhatsAppURI   string
	WhatsAppToken string

	GristServer string
	GristDocID  string
	GristAPIKey string

	// Base URL front end untuk link receipt di pesan konfirmasi.
	ReceiptBaseURL string
}

func Load() Config {
	return Config{
		Port:           getenv("PORT", "8080"),
		DatabaseDSN:    getenv("DATABASE_DSN", "root:root@tcp(127.0.0.1:3306)/reservation?charset=utf8mb4&parseTime=True&loc=UTC"),
		RedisAddr:      getenv("REDIS_ADDR", "127.0.0.1:6379"),
		XenditAPIKey:   os.Getenv("XENDIT_API_KEY"),
		WhatsAppURI:    os.Getenv("WA_URI"),
		WhatsAppToken:  os.Getenv("WA_TOKEN"),
		GristServer:    os.Getenv("GRIST_SERVER"),
		GristDocID:     os.Getenv("GRIST_DOC_ID"),
		GristAPIKey:    os.Getenv("GRIST_API_KEY"),
		ReceiptBaseURL: getenv("RECEIPT_BASE_URL", "https://reservation.example.com/invoice"),
	}
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// InitDB membuka koneksi MySQL lewat GORM.
func InitDB(dsn string) (*gorm.DB, error) {
	return gorm.Open(mysql.Open(dsn), &gorm.Config{TranslateError: true})
}
