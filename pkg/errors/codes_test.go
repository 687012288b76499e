package errors

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHTTPStatusForCode(t *testing.T) {
	tests := []struct {
		code ErrorCode
		want int
	}{
		{ErrCodeNotFound, http.StatusNotFound},
		{ErrCodeBoundaryNotFound, http.StatusNotFound},
		{ErrCodeMalformedGeometry, http.StatusUnprocessableEntity},
		{ErrCodeUnsupportedGeometry, http.StatusUnprocessableEntity},
		{ErrCodeInvalidInput, http.StatusBadRequest},
		{ErrCodeTransport, http.StatusBadGateway},
		{ErrCodeCoverageExists, http.StatusConflict},
		{ErrorCode("NOPE_001"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.code.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, HTTPStatusForCode(tt.code))
		})
	}
}

func TestDefaultMessageForCode(t *testing.T) {
	assert.Equal(t, "boundary resource not found", DefaultMessageForCode(ErrCodeBoundaryNotFound))
	assert.Equal(t, "unknown error", DefaultMessageForCode(ErrorCode("NOPE_001")))
}

func TestClientServerClassification(t *testing.T) {
	assert.True(t, IsClientError(ErrCodeCoverageNotFound))
	assert.False(t, IsServerError(ErrCodeCoverageNotFound))
	assert.True(t, IsServerError(ErrCodeTransport))
	assert.False(t, IsClientError(ErrCodeTransport))
}

func TestModuleForCode(t *testing.T) {
	assert.Equal(t, "GEO", ModuleForCode(ErrCodeBoundaryNotFound))
	assert.Equal(t, "MAP", ModuleForCode(ErrCodeTransport))
	assert.Equal(t, "CVR", ModuleForCode(ErrCodeCoverageExists))
	assert.Equal(t, "COMMON", ModuleForCode(ErrCodeInternal))
}
