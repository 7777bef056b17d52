package errors

import "net/http"

// HTTPStatus maps an error to the HTTP status code the API responds with.
// Errors without a code are treated as internal failures.
func HTTPStatus(err error) int {
	switch GetCode(err) {
	case ErrCodeNoData, ErrCodeNotFound:
		return http.StatusNotFound
	case ErrCodeInvalidData:
		return http.StatusUnprocessableEntity
	case ErrCodeInvalidInput, ErrCodeInvalidMode, ErrCodeInvalidFormat,
		ErrCodeInvalidID, ErrCodeInvalidFile, ErrCodeIncompatible:
		return http.StatusBadRequest
	case ErrCodeNetwork, ErrCodeUpstream:
		return http.StatusBadGateway
	case ErrCodeTimeout:
		return http.StatusGatewayTimeout
	case ErrCodeUnsupported:
		return http.StatusNotImplemented
	default:
		return http.StatusInternalServerError
	}
}
