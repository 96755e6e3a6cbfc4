package dto

import "net/http"

// General error codes
const (
	ErrCodeUnknown  = "ERR_UNKNOWN"
	ErrCodeInternal = "ERR_INTERNAL"
)

// Input error codes
const (
	ErrCodeBadRequest   = "ERR_BAD_REQUEST"
	ErrCodeInvalidInput = "ERR_INVALID_INPUT"
	ErrCodeValidation   = "ERR_VALIDATION"
)

// Resource error codes
const (
	ErrCodeNotFound      = "ERR_NOT_FOUND"
	ErrCodeAlreadyExists = "ERR_ALREADY_EXISTS"
	ErrCodeConflict      = "ERR_CONFLICT"
)

// Business rule error codes
const (
	ErrCodeInvalidState = "ERR_INVALID_STATE"
	ErrCodeBusinessRule = "ERR_BUSINESS_RULE"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes. Domain
// error codes that the register front end reacts to are kept verbatim
// so they are not lost through normalization.
var ErrorCodeHTTPStatus = map[string]int{
	ErrCodeUnknown:  http.StatusInternalServerError,
	ErrCodeInternal: http.StatusInternalServerError,

	ErrCodeBadRequest:   http.StatusBadRequest,
	ErrCodeInvalidInput: http.StatusBadRequest,
	ErrCodeValidation:   http.StatusBadRequest,

	ErrCodeNotFound:      http.StatusNotFound,
	ErrCodeAlreadyExists: http.StatusConflict,
	ErrCodeConflict:      http.StatusConflict,

	ErrCodeInvalidState: http.StatusUnprocessableEntity,
	ErrCodeBusinessRule: http.StatusUnprocessableEntity,

	// Register session errors
	"NO_ACTIVE_SESSION": http.StatusConflict,
	"SESSION_NOT_FOUND": http.StatusNotFound,
	"LINE_NOT_FOUND":    http.StatusNotFound,
	"EMPTY_CART":        http.StatusUnprocessableEntity,

	// Catalog errors
	"DUPLICATE_CODE":    http.StatusConflict,
	"DUPLICATE_BARCODE": http.StatusConflict,
	"INVALID_CODE":      http.StatusBadRequest,
	"INVALID_NAME":      http.StatusBadRequest,
	"INVALID_BARCODE":   http.StatusBadRequest,
	"INVALID_PRICE":     http.StatusBadRequest,
	"INVALID_STOCK":     http.StatusBadRequest,

	// Session input errors
	"INVALID_CUSTOMER_NAME": http.StatusBadRequest,
	"INVALID_PRODUCT_NAME":  http.StatusBadRequest,

	// Receipt errors
	"NO_RECEIPT":      http.StatusNotFound,
	"INVALID_RECEIPT": http.StatusBadRequest,
	"PDF_DISABLED":    http.StatusUnprocessableEntity,
	"NO_ARCHIVE":      http.StatusUnprocessableEntity,
}

// GetHTTPStatus returns the HTTP status code for an error code.
// Returns 500 Internal Server Error if the error code is not found.
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// genericErrorCodeMapping rewrites generic domain codes to the ERR_
// namespaced form. Register-specific codes are passed through untouched.
var genericErrorCodeMapping = map[string]string{
	"NOT_FOUND":      ErrCodeNotFound,
	"ALREADY_EXISTS": ErrCodeAlreadyExists,
	"INVALID_INPUT":  ErrCodeInvalidInput,
	"INVALID_STATE":  ErrCodeInvalidState,
	"BAD_REQUEST":    ErrCodeBadRequest,
	"INTERNAL_ERROR": ErrCodeInternal,
}

// NormalizeErrorCode converts a generic domain code to the standardized
// format. Codes with no mapping are returned as-is.
func NormalizeErrorCode(code string) string {
	if newCode, ok := genericErrorCodeMapping[code]; ok {
		return newCode
	}
	return code
}
