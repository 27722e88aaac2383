package input

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultValueValidationNumericTypes(t *testing.T) {
	inputs := []interface{}{"", "   ", "0", "123", "-23", "0.000001", float64(-23), float64(0), 100, "&*()(", "abcd"}
	expected := []ValidationResponse{
		{IsValid: true, Parsed: nil, Message: ""},
		{IsValid: true, Parsed: nil, Message: ""},
		{IsValid: true, Parsed: float64(0), Message: ""},
		{IsValid: true, Parsed: float64(123), Message: ""},
		{IsValid: true, Parsed: float64(-23), Message: ""},
		{IsValid: true, Parsed: 0.000001, Message: ""},
		{IsValid: true, Parsed: float64(-23), Message: ""},
		{IsValid: true, Parsed: float64(0), Message: ""},
		{IsValid: true, Parsed: float64(100), Message: ""},
		{IsValid: false, Parsed: nil, Message: MessageNotNumber},
		{IsValid: false, Parsed: nil, Message: MessageNotNumber},
	}
	require.Len(t, expected, len(inputs))

	for _, inputType := range []InputType{InputTypeNumber, InputTypeInteger, InputTypeCurrency, InputTypePhoneNumber} {
		t.Run(string(inputType), func(t *testing.T) {
			for i, value := range inputs {
				assert.Equal(t, expected[i], DefaultValueValidation(value, inputType), "input %#v", value)
			}
		})
	}
}

func TestDefaultValueValidationRejectsNonFinite(t *testing.T) {
	for _, value := range []interface{}{"NaN", "Inf", "-Inf", []interface{}{1}} {
		got := DefaultValueValidation(value, InputTypeNumber)
		assert.False(t, got.IsValid, "input %#v", value)
		assert.Equal(t, MessageNotNumber, got.Message)
	}
}

func TestDefaultValueValidationTextTypes(t *testing.T) {
	tests := []struct {
		name  string
		value interface{}
		want  ValidationResponse
	}{
		{"string", "hello", ValidationResponse{IsValid: true, Parsed: "hello"}},
		{"nil", nil, ValidationResponse{IsValid: true, Parsed: ""}},
		{"number", float64(12.5), ValidationResponse{IsValid: true, Parsed: "12.5"}},
		{"bool", true, ValidationResponse{IsValid: true, Parsed: "true"}},
		{"object", map[string]interface{}{"a": float64(1)}, ValidationResponse{Parsed: "{\n  \"a\": 1\n}", Message: MessageNotString}},
		{"array", []interface{}{"x"}, ValidationResponse{Parsed: "[\n  \"x\"\n]", Message: MessageNotString}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DefaultValueValidation(tt.value, InputTypeText))
			assert.Equal(t, tt.want, DefaultValueValidation(tt.value, InputTypeEmail))
		})
	}
}

func TestHandlerValidateDefaultValue(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	NewHandler().RegisterRoutes(router.Group("/api/v1"))

	tests := []struct {
		body   string
		status int
		want   string
	}{
		{`{"inputType":"NUMBER","value":"123"}`, http.StatusOK, `{"isValid":true,"parsed":123,"message":""}`},
		{`{"inputType":"INTEGER","value":"abcd"}`, http.StatusOK, `{"isValid":false,"parsed":null,"message":"This value must be a number"}`},
		{`{"inputType":"TEXT","value":"hi"}`, http.StatusOK, `{"isValid":true,"parsed":"hi","message":""}`},
		{`{"value":"1"}`, http.StatusBadRequest, ""},
	}

	for _, tt := range tests {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/v1/widgets/input/default-value/validate", strings.NewReader(tt.body))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		assert.Equal(t, tt.status, w.Code, tt.body)
		if tt.want != "" {
			assert.JSONEq(t, tt.want, w.Body.String())
		}
	}
}
