package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/treasury/backend/internal/interfaces/http/dto"
)

func TestSetupValidator(t *testing.T) {
	// Should not panic
	SetupValidator()

	v, ok := binding.Validator.Engine().(*validator.Validate)
	assert.True(t, ok)
	assert.NotNil(t, v)
}

func TestCurrencyValidation(t *testing.T) {
	type accountInput struct {
		Currency string `json:"currency" binding:"required,currency"`
	}

	SetupValidator()

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/accounts", func(c *gin.Context) {
		var req accountInput
		if err := c.ShouldBindJSON(&req); err != nil {
			HandleValidationError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true})
	})

	t.Run("accepts supported currency", func(t *testing.T) {
		body := strings.NewReader(`{"currency": "EUR"}`)
		req := httptest.NewRequest("POST", "/accounts", body)
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("rejects unknown currency", func(t *testing.T) {
		body := strings.NewReader(`{"currency": "XXX"}`)
		req := httptest.NewRequest("POST", "/accounts", body)
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)

		var resp dto.Response
		err := json.Unmarshal(w.Body.Bytes(), &resp)
		require.NoError(t, err)
		require.NotNil(t, resp.Error)
		require.Len(t, resp.Error.Details, 1)
		assert.Equal(t, "currency", resp.Error.Details[0].Field)
		assert.Equal(t, "Unsupported currency code", resp.Error.Details[0].Message)
	})
}

func TestFormatValidationErrors(t *testing.T) {
	type flowInput struct {
		Reference   string `json:"reference" binding:"required"`
		HorizonDays int    `json:"horizon_days" binding:"required,min=1"`
	}

	SetupValidator()

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/flows", func(c *gin.Context) {
		var req flowInput
		if err := c.ShouldBindJSON(&req); err != nil {
			HandleValidationError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true})
	})

	t.Run("returns validation errors for invalid input", func(t *testing.T) {
		body := strings.NewReader(`{"horizon_days": 0}`)
		req := httptest.NewRequest("POST", "/flows", body)
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)

		var resp dto.Response
		err := json.Unmarshal(w.Body.Bytes(), &resp)
		require.NoError(t, err)

		assert.False(t, resp.Success)
		assert.Equal(t, dto.ErrCodeValidation, resp.Error.Code)
		assert.Equal(t, "Request validation failed", resp.Error.Message)
		assert.Len(t, resp.Error.Details, 2)
	})

	t.Run("returns success for valid input", func(t *testing.T) {
		body := strings.NewReader(`{"reference": "INV-1001", "horizon_days": 30}`)
		req := httptest.NewRequest("POST", "/flows", body)
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestGetValidationMessage(t *testing.T) {
	type input struct {
		Required string `binding:"required"`
		Min      string `binding:"min=5"`
		UUID     string `binding:"uuid"`
		OneOf    string `binding:"oneof=AP AR"`
	}

	v := validator.New()
	v.SetTagName("binding")

	tests := []struct {
		field    string
		expected string
	}{
		{"Required", "This field is required"},
		{"Min", "Must be at least 5 characters"},
		{"UUID", "Invalid UUID format"},
		{"OneOf", "Must be one of: AP AR"},
	}

	err := v.Struct(input{Min: "ab", UUID: "invalid", OneOf: "XX"})
	require.Error(t, err)
	validationErrs := err.(validator.ValidationErrors)

	for _, tt := range tests {
		t.Run(tt.field, func(t *testing.T) {
			for _, e := range validationErrs {
				if e.StructField() == tt.field {
					assert.Equal(t, tt.expected, getValidationMessage(e))
					return
				}
			}
			t.Fatalf("no validation error for field %s", tt.field)
		})
	}
}
