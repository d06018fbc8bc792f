package utils

import (
	"fmt"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

type JSONResponse struct {
	Status  bool        `json:"status"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func RespondJSON(c *gin.Context, code int, message string, data interface{}) {
	c.JSON(code, JSONResponse{
		Status:  code >= 200 && code < 300,
		Message: message,
		Data:    data,
	})
}

func RespondError(c *gin.Context, code int, err error) {
	c.JSON(code, JSONResponse{
		Status:  false,
		Message: err.Error(),
		Data:    nil,
	})
}

// WIB adalah zona waktu tetap UTC+7 untuk semua tampilan waktu ke customer.
var WIB = time.FixedZone("WIB", 7*60*60)

// FormatAmount memformat nominal dengan pemisah ribuan tanpa desimal,
// misal 1500000 -> "1,500,000".
func FormatAmount(amount float64) string {
	formatted := fmt.Sprintf("%.0f", amount)

	var result []string
	for i := len(formatted); i > 0; i -= 3 {
		start := i - 3
		if start < 0 {
			start = 0
		}
		result = append([]string{formatted[start:i]}, result...)
	}
	return strings.Join(result, ",")
}

// FormatReservationDate mengubah tanggal "2006-01-02" menjadi bentuk
// yang dikirim di pesan konfirmasi, misal "2 January 2006".
func FormatReservationDate(dateStr string) string {
	d, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		return dateStr
	}
	return fmt.Sprintf("%d %s %d", d.Day(), d.Month().String(), d.Year())
}
