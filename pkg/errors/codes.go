package errors

import (
	"net/http"
	"strings"
)

// ErrorCode is a string representation of a specific error condition.
type ErrorCode string

func (c ErrorCode) String() string {
	return string(c)
}

// Common Error Codes
const (
	ErrCodeInternal           ErrorCode = "COMMON_001"
	ErrCodeBadRequest         ErrorCode = "COMMON_002"
	ErrCodeUnauthorized       ErrorCode = "COMMON_003"
	ErrCodeForbidden          ErrorCode = "COMMON_004"
	ErrCodeNotFound           ErrorCode = "COMMON_005"
	ErrCodeConflict           ErrorCode = "COMMON_006"
	ErrCodeTooManyRequests    ErrorCode = "COMMON_007"
	ErrCodeServiceUnavailable ErrorCode = "COMMON_008"
	ErrCodeTimeout            ErrorCode = "COMMON_009"
	ErrCodeValidation         ErrorCode = "COMMON_010"
	ErrCodeSerialization      ErrorCode = "COMMON_011"
	ErrCodeDatabaseError      ErrorCode = "COMMON_012"
	ErrCodeCacheError         ErrorCode = "COMMON_013"
	ErrCodeExternalService    ErrorCode = "COMMON_014"
	ErrCodeNotImplemented     ErrorCode = "COMMON_015"
)

// Equipment Module Error Codes
const (
	ErrCodeEquipmentNotFound        ErrorCode = "EQP_001"
	ErrCodeEquipmentAlreadyExists   ErrorCode = "EQP_002"
	ErrCodeEquipmentInactive        ErrorCode = "EQP_003"
	ErrCodeEquipmentInvalidStatus   ErrorCode = "EQP_004"
	ErrCodeEquipmentInvalidCharge   ErrorCode = "EQP_005"
	ErrCodeInvalidLeakRateThreshold ErrorCode = "EQP_006"
)

// Inspection Module Error Codes
const (
	ErrCodeInspectionNotFound       ErrorCode = "INSP_001"
	ErrCodeInspectionOutOfOrder     ErrorCode = "INSP_002"
	ErrCodeInspectionInvalidDate    ErrorCode = "INSP_003"
	ErrCodeInspectionChargeNegative ErrorCode = "INSP_004"
)

// Technician Module Error Codes
const (
	ErrCodeTechnicianNotFound       ErrorCode = "TECH_001"
	ErrCodeTechnicianAlreadyExists  ErrorCode = "TECH_002"
	ErrCodeCertificationExpired     ErrorCode = "TECH_003"
	ErrCodeCertificationTypeInvalid ErrorCode = "TECH_004"
)

// Service Log Module Error Codes
const (
	ErrCodeServiceLogNotFound    ErrorCode = "SVC_001"
	ErrCodeServiceTypeInvalid    ErrorCode = "SVC_002"
	ErrCodeServiceAmountNegative ErrorCode = "SVC_003"
)

// Alert Module Error Codes
const (
	ErrCodeAlertNotFound        ErrorCode = "ALERT_001"
	ErrCodeAlertAlreadyResolved ErrorCode = "ALERT_002"
	ErrCodeAlertTypeInvalid     ErrorCode = "ALERT_003"
)

// Inventory Module Error Codes
const (
	ErrCodeInventoryNotFound      ErrorCode = "INV_001"
	ErrCodeInventoryInsufficient  ErrorCode = "INV_002"
	ErrCodeTransactionTypeInvalid ErrorCode = "INV_003"
)

// Risk Module Error Codes
const (
	ErrCodeRiskScoringFailed    ErrorCode = "RISK_001"
	ErrCodeRiskDataInsufficient ErrorCode = "RISK_002"
)

// Document Module Error Codes
const (
	ErrCodeDocumentNotFound     ErrorCode = "DOC_001"
	ErrCodeDocumentTooLarge     ErrorCode = "DOC_002"
	ErrCodeDocumentTypeInvalid  ErrorCode = "DOC_003"
	ErrCodeDocumentUploadFailed ErrorCode = "DOC_004"
)

// ErrorCodeHTTPStatus maps every error code to the HTTP status returned by the
// API layer. Codes not listed here fall back to 500.
var ErrorCodeHTTPStatus = map[ErrorCode]int{
	ErrCodeInternal:           http.StatusInternalServerError,
	ErrCodeBadRequest:         http.StatusBadRequest,
	ErrCodeUnauthorized:       http.StatusUnauthorized,
	ErrCodeForbidden:          http.StatusForbidden,
	ErrCodeNotFound:           http.StatusNotFound,
	ErrCodeConflict:           http.StatusConflict,
	ErrCodeTooManyRequests:    http.StatusTooManyRequests,
	ErrCodeServiceUnavailable: http.StatusServiceUnavailable,
	ErrCodeTimeout:            http.StatusGatewayTimeout,
	ErrCodeValidation:         http.StatusBadRequest,
	ErrCodeSerialization:      http.StatusInternalServerError,
	ErrCodeDatabaseError:      http.StatusInternalServerError,
	ErrCodeCacheError:         http.StatusInternalServerError,
	ErrCodeExternalService:    http.StatusBadGateway,
	ErrCodeNotImplemented:     http.StatusNotImplemented,

	ErrCodeEquipmentNotFound:        http.StatusNotFound,
	ErrCodeEquipmentAlreadyExists:   http.StatusConflict,
	ErrCodeEquipmentInactive:        http.StatusConflict,
	ErrCodeEquipmentInvalidStatus:   http.StatusBadRequest,
	ErrCodeEquipmentInvalidCharge:   http.StatusBadRequest,
	ErrCodeInvalidLeakRateThreshold: http.StatusBadRequest,

	ErrCodeInspectionNotFound:       http.StatusNotFound,
	ErrCodeInspectionOutOfOrder:     http.StatusConflict,
	ErrCodeInspectionInvalidDate:    http.StatusBadRequest,
	ErrCodeInspectionChargeNegative: http.StatusBadRequest,

	ErrCodeTechnicianNotFound:       http.StatusNotFound,
	ErrCodeTechnicianAlreadyExists:  http.StatusConflict,
	ErrCodeCertificationExpired:     http.StatusConflict,
	ErrCodeCertificationTypeInvalid: http.StatusBadRequest,

	ErrCodeServiceLogNotFound:    http.StatusNotFound,
	ErrCodeServiceTypeInvalid:    http.StatusBadRequest,
	ErrCodeServiceAmountNegative: http.StatusBadRequest,

	ErrCodeAlertNotFound:        http.StatusNotFound,
	ErrCodeAlertAlreadyResolved: http.StatusConflict,
	ErrCodeAlertTypeInvalid:     http.StatusBadRequest,

	ErrCodeInventoryNotFound:      http.StatusNotFound,
	ErrCodeInventoryInsufficient:  http.StatusConflict,
	ErrCodeTransactionTypeInvalid: http.StatusBadRequest,

	ErrCodeRiskScoringFailed:    http.StatusInternalServerError,
	ErrCodeRiskDataInsufficient: http.StatusUnprocessableEntity,

	ErrCodeDocumentNotFound:     http.StatusNotFound,
	ErrCodeDocumentTooLarge:     http.StatusRequestEntityTooLarge,
	ErrCodeDocumentTypeInvalid:  http.StatusUnsupportedMediaType,
	ErrCodeDocumentUploadFailed: http.StatusBadGateway,
}

// ErrorCodeMessage maps error codes to default human-readable messages used
// when a caller constructs an error without one.
var ErrorCodeMessage = map[ErrorCode]string{
	ErrCodeInternal:           "internal server error",
	ErrCodeBadRequest:         "bad request",
	ErrCodeUnauthorized:       "unauthorized",
	ErrCodeForbidden:          "forbidden",
	ErrCodeNotFound:           "resource not found",
	ErrCodeConflict:           "resource conflict",
	ErrCodeTooManyRequests:    "too many requests",
	ErrCodeServiceUnavailable: "service unavailable",
	ErrCodeTimeout:            "request timed out",
	ErrCodeValidation:         "validation failed",
	ErrCodeSerialization:      "serialization failed",
	ErrCodeDatabaseError:      "database error",
	ErrCodeCacheError:         "cache error",
	ErrCodeExternalService:    "external service error",
	ErrCodeNotImplemented:     "not implemented",

	ErrCodeEquipmentNotFound:        "equipment not found",
	ErrCodeEquipmentAlreadyExists:   "equipment already exists",
	ErrCodeEquipmentInactive:        "equipment is not active",
	ErrCodeEquipmentInvalidStatus:   "invalid equipment status",
	ErrCodeEquipmentInvalidCharge:   "invalid refrigerant charge",
	ErrCodeInvalidLeakRateThreshold: "leak rate threshold must be positive",

	ErrCodeInspectionNotFound:       "inspection not found",
	ErrCodeInspectionOutOfOrder:     "inspection predates the latest recorded inspection",
	ErrCodeInspectionInvalidDate:    "invalid inspection date",
	ErrCodeInspectionChargeNegative: "charge readings must be non-negative",

	ErrCodeTechnicianNotFound:       "technician not found",
	ErrCodeTechnicianAlreadyExists:  "technician already exists",
	ErrCodeCertificationExpired:     "technician certification has expired",
	ErrCodeCertificationTypeInvalid: "invalid certification type",

	ErrCodeServiceLogNotFound:    "service log not found",
	ErrCodeServiceTypeInvalid:    "invalid service type",
	ErrCodeServiceAmountNegative: "refrigerant amounts must be non-negative",

	ErrCodeAlertNotFound:        "alert not found",
	ErrCodeAlertAlreadyResolved: "alert is already resolved",
	ErrCodeAlertTypeInvalid:     "invalid alert type",

	ErrCodeInventoryNotFound:      "refrigerant inventory not found",
	ErrCodeInventoryInsufficient:  "insufficient refrigerant stock",
	ErrCodeTransactionTypeInvalid: "invalid transaction type",

	ErrCodeRiskScoringFailed:    "risk scoring failed",
	ErrCodeRiskDataInsufficient: "insufficient data for risk scoring",

	ErrCodeDocumentNotFound:     "document not found",
	ErrCodeDocumentTooLarge:     "document exceeds the size limit",
	ErrCodeDocumentTypeInvalid:  "document content type is not allowed",
	ErrCodeDocumentUploadFailed: "document upload failed",
}

// HTTPStatusForCode returns the HTTP status for a code, defaulting to 500.
func HTTPStatusForCode(code ErrorCode) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// DefaultMessageForCode returns the default message for a code.
func DefaultMessageForCode(code ErrorCode) string {
	if msg, ok := ErrorCodeMessage[code]; ok {
		return msg
	}
	return "unknown error"
}

// IsClientError reports whether the code maps to a 4xx HTTP status.
func IsClientError(code ErrorCode) bool {
	status := HTTPStatusForCode(code)
	return status >= 400 && status < 500
}

// IsServerError reports whether the code maps to a 5xx HTTP status.
func IsServerError(code ErrorCode) bool {
	return HTTPStatusForCode(code) >= 500
}

// ModuleForCode extracts the module prefix from a code, e.g. "EQP" from "EQP_001".
func ModuleForCode(code ErrorCode) string {
	s := code.String()
	if idx := strings.IndexByte(s, '_'); idx > 0 {
		return s[:idx]
	}
	return s
}

//Personal.AI order the ending
