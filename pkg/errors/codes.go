package errors

import (
	"net/http"
	"strings"
)

// ErrorCode is a string representation of a specific error condition.
// Codes are grouped by module prefix: COMMON for cross-cutting failures,
// GEO for boundary/geometry resolution, MAP for the map-view pipeline and
// CVR for coverage-area data operations.
type ErrorCode string

func (c ErrorCode) String() string {
	return string(c)
}

// CodeOK is the zero failure code returned by GetCode for nil errors.
const CodeOK ErrorCode = "OK"

// Common error codes.
const (
	ErrCodeInternal           ErrorCode = "COMMON_001"
	ErrCodeBadRequest         ErrorCode = "COMMON_002"
	ErrCodeNotFound           ErrorCode = "COMMON_003"
	ErrCodeConflict           ErrorCode = "COMMON_004"
	ErrCodeValidation         ErrorCode = "COMMON_005"
	ErrCodeTimeout            ErrorCode = "COMMON_006"
	ErrCodeServiceUnavailable ErrorCode = "COMMON_007"
	ErrCodeSerialization      ErrorCode = "COMMON_008"
	ErrCodeDatabaseError      ErrorCode = "COMMON_009"
	ErrCodeCacheError         ErrorCode = "COMMON_010"
	ErrCodeUnknown            ErrorCode = "COMMON_999"
)

// Boundary / geometry error codes.
//
// These mirror the failure modes of boundary resolution: a missing resource
// for a district code, a geometry document without coordinate rings, a
// geometry type other than Polygon/MultiPolygon, and a degenerate ring
// handed to the geometry utilities.
const (
	ErrCodeBoundaryNotFound    ErrorCode = "GEO_001"
	ErrCodeMalformedGeometry   ErrorCode = "GEO_002"
	ErrCodeUnsupportedGeometry ErrorCode = "GEO_003"
	ErrCodeInvalidInput        ErrorCode = "GEO_004"
)

// Map pipeline error codes.
const (
	// ErrCodeTransport marks a failed territory-list fetch. Unlike the
	// per-district GEO codes it is fatal to the whole map load.
	ErrCodeTransport ErrorCode = "MAP_001"

	// ErrCodeSessionClosed marks an operation attempted on a torn-down
	// map-view session.
	ErrCodeSessionClosed ErrorCode = "MAP_002"
)

// Coverage-area error codes.
const (
	ErrCodeCoverageNotFound ErrorCode = "CVR_001"
	ErrCodeCoverageExists   ErrorCode = "CVR_002"
)

// ErrorCodeHTTPStatus maps ErrorCodes to HTTP status codes.
var ErrorCodeHTTPStatus = map[ErrorCode]int{
	ErrCodeInternal:           http.StatusInternalServerError,
	ErrCodeBadRequest:         http.StatusBadRequest,
	ErrCodeNotFound:           http.StatusNotFound,
	ErrCodeConflict:           http.StatusConflict,
	ErrCodeValidation:         http.StatusUnprocessableEntity,
	ErrCodeTimeout:            http.StatusGatewayTimeout,
	ErrCodeServiceUnavailable: http.StatusServiceUnavailable,
	ErrCodeSerialization:      http.StatusInternalServerError,
	ErrCodeDatabaseError:      http.StatusInternalServerError,
	ErrCodeCacheError:         http.StatusInternalServerError,

	ErrCodeBoundaryNotFound:    http.StatusNotFound,
	ErrCodeMalformedGeometry:   http.StatusUnprocessableEntity,
	ErrCodeUnsupportedGeometry: http.StatusUnprocessableEntity,
	ErrCodeInvalidInput:        http.StatusBadRequest,

	ErrCodeTransport:     http.StatusBadGateway,
	ErrCodeSessionClosed: http.StatusConflict,

	ErrCodeCoverageNotFound: http.StatusNotFound,
	ErrCodeCoverageExists:   http.StatusConflict,
}

// ErrorCodeMessage maps ErrorCodes to default messages.
var ErrorCodeMessage = map[ErrorCode]string{
	ErrCodeInternal:           "internal server error",
	ErrCodeBadRequest:         "bad request",
	ErrCodeNotFound:           "resource not found",
	ErrCodeConflict:           "resource conflict",
	ErrCodeValidation:         "validation failed",
	ErrCodeTimeout:            "request timeout",
	ErrCodeServiceUnavailable: "service unavailable",
	ErrCodeSerialization:      "serialization failed",
	ErrCodeDatabaseError:      "database error",
	ErrCodeCacheError:         "cache error",

	ErrCodeBoundaryNotFound:    "boundary resource not found",
	ErrCodeMalformedGeometry:   "geometry has no coordinate rings",
	ErrCodeUnsupportedGeometry: "unsupported geometry type",
	ErrCodeInvalidInput:        "invalid geometry input",

	ErrCodeTransport:     "territory fetch failed",
	ErrCodeSessionClosed: "map-view session is closed",

	ErrCodeCoverageNotFound: "sales coverage area not found",
	ErrCodeCoverageExists:   "sales coverage area already exists",
}

// HTTPStatusForCode returns the HTTP status code for an ErrorCode.
func HTTPStatusForCode(code ErrorCode) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// DefaultMessageForCode returns the default message for an ErrorCode.
func DefaultMessageForCode(code ErrorCode) string {
	if msg, ok := ErrorCodeMessage[code]; ok {
		return msg
	}
	return "unknown error"
}

// IsClientError returns true if the ErrorCode corresponds to a 4xx HTTP status.
func IsClientError(code ErrorCode) bool {
	status := HTTPStatusForCode(code)
	return status >= 400 && status < 500
}

// IsServerError returns true if the ErrorCode corresponds to a 5xx HTTP status.
func IsServerError(code ErrorCode) bool {
	status := HTTPStatusForCode(code)
	return status >= 500 && status < 600
}

// ModuleForCode returns the module prefix of an ErrorCode.
func ModuleForCode(code ErrorCode) string {
	parts := strings.Split(string(code), "_")
	if len(parts) > 0 && parts[0] != "" {
		return parts[0]
	}
	return "UNKNOWN"
}
