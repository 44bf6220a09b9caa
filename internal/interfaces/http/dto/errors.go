package dto

import (
	"net/http"
	"strings"

	"github.com/storefront/backend/internal/application/orderimport"
)

// Error codes follow ERR_<CATEGORY>_<DESCRIPTION>
const (
	ErrCodeInternal = "ERR_INTERNAL"

	ErrCodeUnauthorized = "ERR_UNAUTHORIZED"
	ErrCodeTokenExpired = "ERR_TOKEN_EXPIRED"
	ErrCodeTokenInvalid = "ERR_TOKEN_INVALID"

	ErrCodeNotFound = "ERR_NOT_FOUND"

	ErrCodeBadRequest      = "ERR_BAD_REQUEST"
	ErrCodeInvalidJSON     = "ERR_INVALID_JSON"
	ErrCodeRequestTooLarge = "ERR_REQUEST_TOO_LARGE"
)

// ImportErrorPrefix prefixes codes derived from an import error kind
const ImportErrorPrefix = "ERR_IMPORT_"

// ErrorCodeHTTPStatus maps error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	ErrCodeInternal: http.StatusInternalServerError,

	ErrCodeUnauthorized: http.StatusUnauthorized,
	ErrCodeTokenExpired: http.StatusUnauthorized,
	ErrCodeTokenInvalid: http.StatusUnauthorized,

	ErrCodeNotFound: http.StatusNotFound,

	ErrCodeBadRequest:      http.StatusBadRequest,
	ErrCodeInvalidJSON:     http.StatusBadRequest,
	ErrCodeRequestTooLarge: http.StatusRequestEntityTooLarge,
}

// ImportErrorCode returns the API code for an import error kind, e.g.
// ERR_IMPORT_VARIANT_NOT_FOUND
func ImportErrorCode(kind orderimport.ErrorKind) string {
	return ImportErrorPrefix + string(kind)
}

// GetHTTPStatus returns the HTTP status code for an error code.
// Every import error is 422; unknown codes are 500.
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	if strings.HasPrefix(code, ImportErrorPrefix) {
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}
