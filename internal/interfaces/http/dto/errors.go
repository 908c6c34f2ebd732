package dto

import "net/http"

// General error codes used by the HTTP layer itself
const (
	ErrCodeInternal     = "INTERNAL_ERROR"
	ErrCodeBadRequest   = "BAD_REQUEST"
	ErrCodeUnauthorized = "UNAUTHORIZED"
	ErrCodeForbidden    = "FORBIDDEN"
	ErrCodeNotFound     = "NOT_FOUND"
)

// errorCodeHTTPStatus maps domain error codes to HTTP status codes.
// Codes absent from the map are treated as internal errors.
var errorCodeHTTPStatus = map[string]int{
	// Input validation -> 400
	ErrCodeBadRequest:        http.StatusBadRequest,
	"INVALID_INPUT":          http.StatusBadRequest,
	"INVALID_NAME":           http.StatusBadRequest,
	"INVALID_SLUG":           http.StatusBadRequest,
	"INVALID_SKU":            http.StatusBadRequest,
	"INVALID_PRICE":          http.StatusBadRequest,
	"INVALID_STOCK":          http.StatusBadRequest,
	"INVALID_MIN_STOCK":      http.StatusBadRequest,
	"INVALID_STATUS":         http.StatusBadRequest,
	"INVALID_QUANTITY":       http.StatusBadRequest,
	"INVALID_RATING":         http.StatusBadRequest,
	"INVALID_COMMENT":        http.StatusBadRequest,
	"INVALID_USERNAME":       http.StatusBadRequest,
	"INVALID_EMAIL":          http.StatusBadRequest,
	"INVALID_PASSWORD":       http.StatusBadRequest,
	"INVALID_PAYMENT_METHOD": http.StatusBadRequest,
	"INVALID_SHIPPING":       http.StatusBadRequest,
	"INVALID_ATTRIBUTES":     http.StatusBadRequest,
	"INVALID_IMAGE":          http.StatusBadRequest,

	// Authentication -> 401
	ErrCodeUnauthorized:   http.StatusUnauthorized,
	"INVALID_CREDENTIALS": http.StatusUnauthorized,
	"TOKEN_EXPIRED":       http.StatusUnauthorized,
	"TOKEN_INVALID":       http.StatusUnauthorized,
	"TOKEN_REVOKED":       http.StatusUnauthorized,

	// Authorization -> 403
	ErrCodeForbidden:   http.StatusForbidden,
	"ACCOUNT_DISABLED": http.StatusForbidden,

	// Missing resources -> 404
	ErrCodeNotFound: http.StatusNotFound,

	// Conflicts -> 409
	"ALREADY_EXISTS":       http.StatusConflict,
	"CONCURRENCY_CONFLICT": http.StatusConflict,
	"DUPLICATE_REVIEW":     http.StatusConflict,
	"HAS_CHILDREN":         http.StatusConflict,
	"HAS_PRODUCTS":         http.StatusConflict,

	// Business rule violations -> 422
	"INVALID_STATE":       http.StatusUnprocessableEntity,
	"INSUFFICIENT_STOCK":  http.StatusUnprocessableEntity,
	"EMPTY_CART":          http.StatusUnprocessableEntity,
	"PRODUCT_UNAVAILABLE": http.StatusUnprocessableEntity,
	"VARIANT_UNAVAILABLE": http.StatusUnprocessableEntity,
	"INVALID_VARIANT":     http.StatusUnprocessableEntity,
	"INVALID_PARENT":      http.StatusUnprocessableEntity,
	"INVALID_CATEGORY":    http.StatusUnprocessableEntity,
	"CIRCULAR_REFERENCE":  http.StatusUnprocessableEntity,
	"MAX_DEPTH_EXCEEDED":  http.StatusUnprocessableEntity,
}

// GetHTTPStatus returns the HTTP status for a domain error code,
// defaulting to 500 for unknown codes
func GetHTTPStatus(code string) int {
	if status, ok := errorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}
