package httpx

import (
	"errors"
	"net/http"

	"github.com/pulsewatch/pulsewatch/internal/data"
	"github.com/pulsewatch/pulsewatch/internal/service"
)

// writeServiceError maps service-layer errors onto HTTP responses. Known
// sentinels get their own status; anything else surfaces with the handler's
// fallback error code.
func writeServiceError(w http.ResponseWriter, errCode string, err error) {
	switch {
	case errors.Is(err, data.ErrJobNotFound),
		errors.Is(err, data.ErrChannelNotFound),
		errors.Is(err, data.ErrSettingNotFound):
		WriteError(w, ErrorParams{Code: http.StatusNotFound, ErrCode: "not_found", Err: err})

	case errors.Is(err, service.ErrUnknownPingToken):
		WriteError(w, ErrorParams{Code: http.StatusNotFound, ErrCode: "unknown_ping_token", Err: err})

	case errors.Is(err, service.ErrVerificationFailed):
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "verification_failed", Err: err})

	default:
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: errCode, Err: err})
	}
}
