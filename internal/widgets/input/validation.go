package input

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// InputType is the data type configured on an input widget
type InputType string

const (
	InputTypeText        InputType = "TEXT"
	InputTypeEmail       InputType = "EMAIL"
	InputTypePassword    InputType = "PASSWORD"
	InputTypeNumber      InputType = "NUMBER"
	InputTypeInteger     InputType = "INTEGER"
	InputTypeCurrency    InputType = "CURRENCY"
	InputTypePhoneNumber InputType = "PHONE_NUMBER"
)

const (
	MessageNotNumber = "This value must be a number"
	MessageNotString = "This value must be string"
)

// ValidationResponse is the outcome of validating a property value
type ValidationResponse struct {
	IsValid bool        `json:"isValid"`
	Parsed  interface{} `json:"parsed"`
	Message string      `json:"message"`
}

// IsNumeric reports whether the input type stores numbers
func (t InputType) IsNumeric() bool {
	switch t {
	case InputTypeNumber, InputTypeInteger, InputTypeCurrency, InputTypePhoneNumber:
		return true
	}
	return false
}

// DefaultValueValidation validates the default value of an input widget against its input type
func DefaultValueValidation(value interface{}, inputType InputType) ValidationResponse {
	if inputType.IsNumeric() {
		return validateNumber(value)
	}
	return validateText(value)
}

func validateNumber(value interface{}) ValidationResponse {
	switch v := value.(type) {
	case nil:
		return ValidationResponse{IsValid: true}
	case float64:
		return numberResponse(v)
	case float32:
		return numberResponse(float64(v))
	case int:
		return numberResponse(float64(v))
	case int64:
		return numberResponse(float64(v))
	case json.Number:
		return parseNumber(v.String())
	case string:
		if strings.TrimSpace(v) == "" {
			return ValidationResponse{IsValid: true}
		}
		return parseNumber(v)
	}
	return ValidationResponse{Message: MessageNotNumber}
}

func parseNumber(s string) ValidationResponse {
	parsed, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return ValidationResponse{Message: MessageNotNumber}
	}
	return numberResponse(parsed)
}

func numberResponse(v float64) ValidationResponse {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return ValidationResponse{Message: MessageNotNumber}
	}
	return ValidationResponse{IsValid: true, Parsed: v}
}

func validateText(value interface{}) ValidationResponse {
	switch v := value.(type) {
	case nil:
		return ValidationResponse{IsValid: true, Parsed: ""}
	case string:
		return ValidationResponse{IsValid: true, Parsed: v}
	case bool:
		return ValidationResponse{IsValid: true, Parsed: strconv.FormatBool(v)}
	case float64:
		return ValidationResponse{IsValid: true, Parsed: strconv.FormatFloat(v, 'f', -1, 64)}
	case int:
		return ValidationResponse{IsValid: true, Parsed: strconv.Itoa(v)}
	case json.Number:
		return ValidationResponse{IsValid: true, Parsed: v.String()}
	}

	pretty, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return ValidationResponse{Parsed: fmt.Sprint(value), Message: MessageNotString}
	}
	return ValidationResponse{Parsed: string(pretty), Message: MessageNotString}
}
