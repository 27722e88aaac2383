package alerts

import (
	"strings"

	"appbuilder/editor-backend/internal/notifications"
)

// Variant is the toast style rendered by the editor
type Variant string

const (
	VariantInfo    Variant = "info"
	VariantSuccess Variant = "success"
	VariantWarning Variant = "warning"
	VariantDanger  Variant = "danger"
)

// Variants lists every toast variant in display order
var Variants = []Variant{VariantInfo, VariantSuccess, VariantWarning, VariantDanger}

// Payload is the argument of a showAlert trigger. Message is left untyped because
// triggers are evaluated from user code and may pass anything.
type Payload struct {
	Message interface{} `json:"message"`
	Style   string      `json:"style,omitempty"`
}

// Alert is a validated toast ready to be pushed to the editor
type Alert struct {
	Text        string  `json:"text"`
	Variant     Variant `json:"variant,omitempty"`
	Style       string  `json:"style,omitempty"`
	ConsoleText string  `json:"console_text"`
}

// Result is returned to the caller after the alert was handed to the hub
type Result struct {
	Alert    Alert                         `json:"alert"`
	Delivery *notifications.DeliveryResult `json:"delivery"`
}

// TriggerFailureError is raised when a trigger is called with arguments it cannot use
type TriggerFailureError struct {
	Message string
}

func (e *TriggerFailureError) Error() string {
	return e.Message
}

func variantNames() string {
	names := make([]string, len(Variants))
	for i, v := range Variants {
		names[i] = string(v)
	}
	return strings.Join(names, ", ")
}
