package httpx

import (
	"net/http"

	apperrors "github.com/layerpeek/layerpeek/internal/errors"
)

// statusFor maps an application error code to an HTTP status.
func statusFor(err error) int {
	switch apperrors.GetCode(err) {
	case apperrors.ErrCodeValidation:
		return http.StatusBadRequest
	case apperrors.ErrCodeNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// RenderError writes err as a JSON error response with the status derived
// from its error code.
func RenderError(w http.ResponseWriter, err error) {
	WriteError(w, ErrorParams{
		Code:    statusFor(err),
		ErrCode: string(errCodeOrInternal(err)),
		Err:     err,
	})
}

func errCodeOrInternal(err error) apperrors.ErrorCode {
	if code := apperrors.GetCode(err); code != "" {
		return code
	}
	return apperrors.ErrCodeInternal
}
