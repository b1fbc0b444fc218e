package appmax

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Error codes raised locally by request validation.
const (
	ErrCodeMissingField        = "MISSING_FIELD"
	ErrCodeInvalidLength       = "INVALID_LENGTH"
	ErrCodeInvalidEmail        = "INVALID_EMAIL"
	ErrCodeInvalidPostcode     = "INVALID_POSTCODE"
	ErrCodeInvalidState        = "INVALID_STATE"
	ErrCodeInvalidProduct      = "INVALID_PRODUCT"
	ErrCodeInvalidQuantity     = "INVALID_QUANTITY"
	ErrCodeInvalidCustomerHash = "INVALID_CUSTOMER_HASH"
	ErrCodeInvalidTotal        = "INVALID_TOTAL"
	ErrCodeInvalidItems        = "INVALID_ITEMS"
	ErrCodeInvalidItem         = "INVALID_ITEM"
	ErrCodeInvalidItemName     = "INVALID_ITEM_NAME"
	ErrCodeInvalidItemPrice    = "INVALID_ITEM_PRICE"
	ErrCodeInvalidItemQuantity = "INVALID_ITEM_QUANTITY"
	ErrCodeInvalidMethod       = "INVALID_PAYMENT_METHOD"
	ErrCodeInvalidInstallments = "INVALID_INSTALLMENTS"
	ErrCodeMissingCardData     = "MISSING_CARD_DATA"
	ErrCodeMissingCardField    = "MISSING_CARD_FIELD"
	ErrCodeInvalidCardNumber   = "INVALID_CARD_NUMBER"
	ErrCodeInvalidExpiry       = "INVALID_EXPIRY"
	ErrCodeInvalidCVV          = "INVALID_CVV"
	ErrCodeInvalidOrderHash    = "INVALID_ORDER_HASH"
	ErrCodeInvalidTracking     = "INVALID_TRACKING_CODE"
	ErrCodeInvalidAmount       = "INVALID_AMOUNT"
	ErrCodeInvalidBrand        = "INVALID_BRAND"
)

// Error codes raised by the HTTP gateway.
const (
	// ErrCodeUnknown indicates a transport-level failure (connection error,
	// timeout) where no API response was received.
	ErrCodeUnknown = "UNKNOWN_ERROR"

	// ErrCodeAPI indicates the API rejected the request or returned a
	// response outside the documented envelope contract.
	ErrCodeAPI = "API_ERROR"
)

// APIError is the single error kind surfaced by the SDK. Validation
// failures and remote failures share this shape so callers switch on Code
// rather than on error type. It is constructed at the failure site and
// propagated unchanged.
type APIError struct {
	// Code is a machine-readable error code such as MISSING_FIELD or API_ERROR.
	Code string

	// Message is a human-readable description of the failure. For remote
	// failures this is the API's own "text" field, untouched.
	Message string

	// Data carries the raw "data" member of a failed API response, if any.
	// It is nil for validation and transport failures.
	Data json.RawMessage
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return fmt.Sprintf("appmax: %s: %s", e.Code, e.Message)
}

// newError creates a validation or gateway error without payload data.
func newError(code, message string) *APIError {
	return &APIError{Code: code, Message: message}
}

// newErrorf creates an APIError with a formatted message.
func newErrorf(code, format string, args ...any) *APIError {
	return &APIError{Code: code, Message: fmt.Sprintf(format, args...)}
}

// AsAPIError unwraps err into an *APIError.
// Returns nil and false when err is not an APIError.
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}

	return nil, false
}
