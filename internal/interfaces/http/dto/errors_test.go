package dto

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetHTTPStatus(t *testing.T) {
	tests := []struct {
		code     string
		expected int
	}{
		{ErrCodeNotFound, http.StatusNotFound},
		{ErrCodeAlreadyExists, http.StatusConflict},
		{ErrCodeConcurrencyConflict, http.StatusConflict},
		{ErrCodeStaleProposal, http.StatusConflict},
		{ErrCodeInvalidState, http.StatusUnprocessableEntity},
		{ErrCodeInvalidInput, http.StatusBadRequest},
		{ErrCodeUpstreamUnavailable, http.StatusBadGateway},
		{ErrCodeInternal, http.StatusInternalServerError},
		{"SOMETHING_ELSE", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.Equal(t, tt.expected, GetHTTPStatus(tt.code))
		})
	}
}

func TestNormalizeErrorCode(t *testing.T) {
	assert.Equal(t, ErrCodeNotFound, NormalizeErrorCode("NOT_FOUND"))
	assert.Equal(t, ErrCodeAlreadyExists, NormalizeErrorCode("DUPLICATE_ACCOUNT"))
	assert.Equal(t, ErrCodeStaleProposal, NormalizeErrorCode("STALE_PROPOSAL"))
	assert.Equal(t, ErrCodeInvalidState, NormalizeErrorCode("AGREEMENT_NOT_ACTIVE"))
	assert.Equal(t, ErrCodeInvalidInput, NormalizeErrorCode("INVALID_SCENARIO"))
	assert.Equal(t, ErrCodeUpstreamUnavailable, NormalizeErrorCode("UPSTREAM_UNAVAILABLE"))

	// Unknown codes pass through untouched
	assert.Equal(t, "CUSTOM_CODE", NormalizeErrorCode("CUSTOM_CODE"))
}

func TestNewSuccessResponseWithMeta(t *testing.T) {
	resp := NewSuccessResponseWithMeta([]int{1, 2, 3}, 45, 2, 20)

	assert.True(t, resp.Success)
	assert.Equal(t, int64(45), resp.Meta.Total)
	assert.Equal(t, 2, resp.Meta.Page)
	assert.Equal(t, 3, resp.Meta.TotalPages)
}

func TestNewErrorResponseWithRequestID(t *testing.T) {
	resp := NewErrorResponseWithRequestID(ErrCodeNotFound, "Resource not found", "req-123")

	assert.False(t, resp.Success)
	assert.Equal(t, ErrCodeNotFound, resp.Error.Code)
	assert.Equal(t, "req-123", resp.Error.RequestID)
}
