package alerts

import "fmt"

// ShowAlert validates a showAlert payload and resolves its toast variant
func ShowAlert(payload Payload) (*Alert, error) {
	message, ok := payload.Message.(string)
	if !ok {
		return nil, &TriggerFailureError{Message: "Toast message needs to be a string"}
	}

	variant, known := variantFor(payload.Style)
	if payload.Style != "" && !known {
		return nil, &TriggerFailureError{
			Message: fmt.Sprintf("Toast type needs to be a one of %s", variantNames()),
		}
	}

	return &Alert{
		Text:        message,
		Variant:     variant,
		Style:       payload.Style,
		ConsoleText: ConsoleText(message, payload.Style),
	}, nil
}

// ConsoleText is the line logged to the debugger console when an alert fires
func ConsoleText(message, style string) string {
	if style != "" {
		return fmt.Sprintf("showAlert('%s', '%s') was triggered", message, style)
	}
	return fmt.Sprintf("showAlert('%s') was triggered", message)
}

func variantFor(style string) (Variant, bool) {
	switch style {
	case "info":
		return VariantInfo, true
	case "success":
		return VariantSuccess, true
	case "warning":
		return VariantWarning, true
	case "error":
		return VariantDanger, true
	}
	return "", false
}
