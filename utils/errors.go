package utils

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Kind mengelompokkan error aplikasi supaya controller bisa memetakan
// ke HTTP status code di satu tempat.
type Kind int

const (
	KindValidation Kind = iota
	KindNotFound
	KindConflict
	KindUpstream
	KindExpired
)

type AppError struct {
	Kind    Kind
	Message string

	// Diisi hanya untuk KindUpstream: status dan payload mentah dari
	// provider, diteruskan apa adanya ke caller.
	UpstreamStatus  int
	UpstreamPayload any
}

func (e *AppError) Error() string { return e.Message }

func ValidationError(format string, args ...any) *AppError {
	return &AppError{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

func NotFoundError(format string, args ...any) *AppError {
	return &AppError{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

func ConflictError(format string, args ...any) *AppError {
	return &AppError{Kind: KindConflict, Message: fmt.Sprintf(format, args...)}
}

func ExpiredError(format string, args ...any) *AppError {
	return &AppError{Kind: KindExpired, Message: fmt.Sprintf(format, args...)}
}

func UpstreamError(status int, payload any, format string, args ...any) *AppError {
	return &AppError{
		Kind:            KindUpstream,
		Message:         fmt.Sprintf(format, args...),
		UpstreamStatus:  status,
		UpstreamPayload: payload,
	}
}

// RespondAppError memetakan AppError ke HTTP response. Error non-AppError
// dianggap internal (500).
func RespondAppError(c *gin.Context, err error) {
	var appErr *AppError
	if !errors.As(err, &appErr) {
		RespondError(c, http.StatusInternalServerError, err)
		return
	}

	switch appErr.Kind {
	case KindValidation, KindExpired:
		RespondError(c, http.StatusBadRequest, appErr)
	case KindNotFound:
		RespondError(c, http.StatusNotFound, appErr)
	case KindConflict:
		RespondError(c, http.StatusConflict, appErr)
	case KindUpstream:
		status := appErr.UpstreamStatus
		if status == 0 {
			status = http.StatusBadGateway
		}
		c.JSON(status, JSONResponse{
			Status:  false,
			Message: appErr.Message,
			Data:    appErr.UpstreamPayload,
		})
	default:
		RespondError(c, http.StatusInternalServerError, appErr)
	}
}
