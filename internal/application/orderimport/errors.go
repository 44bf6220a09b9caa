package orderimport

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrorKind classifies why an import failed
type ErrorKind string

const (
	KindReferenceNotFound       ErrorKind = "REFERENCE_NOT_FOUND"
	KindAddressResolutionFailed ErrorKind = "ADDRESS_RESOLUTION_FAILED"
	KindVariantNotFound         ErrorKind = "VARIANT_NOT_FOUND"
	KindLineItemImportFailed    ErrorKind = "LINE_ITEM_IMPORT_FAILED"
	KindShippingMethodNotFound  ErrorKind = "SHIPPING_METHOD_NOT_FOUND"
	KindShipmentImportFailed    ErrorKind = "SHIPMENT_IMPORT_FAILED"
	KindPaymentMethodNotFound   ErrorKind = "PAYMENT_METHOD_NOT_FOUND"
	KindPaymentImportFailed     ErrorKind = "PAYMENT_IMPORT_FAILED"
	KindAdjustmentImportFailed  ErrorKind = "ADJUSTMENT_IMPORT_FAILED"
	KindValidationFailed        ErrorKind = "VALIDATION_FAILED"
)

// AllKinds lists every error kind
var AllKinds = []ErrorKind{
	KindReferenceNotFound, KindAddressResolutionFailed, KindVariantNotFound,
	KindLineItemImportFailed, KindShippingMethodNotFound, KindShipmentImportFailed,
	KindPaymentMethodNotFound, KindPaymentImportFailed, KindAdjustmentImportFailed,
	KindValidationFailed,
}

var kindPrefixes = map[ErrorKind]string{
	KindReferenceNotFound:       "reference not found",
	KindAddressResolutionFailed: "order import address",
	KindVariantNotFound:         "ensure order import variant",
	KindLineItemImportFailed:    "order import line items",
	KindShippingMethodNotFound:  "shipping method not found",
	KindShipmentImportFailed:    "order import shipments",
	KindPaymentMethodNotFound:   "payment method not found",
	KindPaymentImportFailed:     "order import payments",
	KindAdjustmentImportFailed:  "order import adjustments",
	KindValidationFailed:        "order import validation",
}

var (
	// ErrAttributeForbidden is the cause when a non-admin sets an admin-only attribute
	ErrAttributeForbidden = errors.New("attribute requires admin privilege")
	// ErrUnknownAttribute is the cause when an attribute is in neither schema
	ErrUnknownAttribute = errors.New("unknown order attribute")
)

// Error is a classified import failure. Payload is the offending input, Criteria
// the search that found nothing, Err the underlying cause.
type Error struct {
	Kind     ErrorKind
	Payload  any
	Criteria string
	Err      error
}

func (e *Error) Error() string {
	msg := kindPrefixes[e.Kind]
	if msg == "" {
		msg = string(e.Kind)
	}
	if e.Criteria != "" {
		msg += " [" + e.Criteria + "]"
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	if e.Payload != nil {
		if raw, err := json.Marshal(e.Payload); err == nil {
			msg += " " + string(raw)
		}
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

func newError(kind ErrorKind, payload any, err error) *Error {
	return &Error{Kind: kind, Payload: payload, Err: err}
}

func notFound(kind ErrorKind, criteria string, err error) *Error {
	return &Error{Kind: kind, Criteria: criteria, Err: err}
}

func validationFailed(format string, args ...any) *Error {
	return &Error{Kind: KindValidationFailed, Err: fmt.Errorf(format, args...)}
}

// KindOf returns the kind of the outermost import error in the chain
func KindOf(err error) (ErrorKind, bool) {
	var importErr *Error
	if errors.As(err, &importErr) {
		return importErr.Kind, true
	}
	return "", false
}

// HasKind reports whether any import error in the chain has the given kind,
// so a VariantNotFound wrapped by LineItemImportFailed is still found.
func HasKind(err error, kind ErrorKind) bool {
	for err != nil {
		var importErr *Error
		if !errors.As(err, &importErr) {
			return false
		}
		if importErr.Kind == kind {
			return true
		}
		err = importErr.Err
	}
	return false
}
