package validation

// FieldError represents a validation error on a specific field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// RequireFlag reports a missing boolean field. Toggle requests carry nothing
// but the flag, so an absent value cannot default to false.
//
// Flower and variant bodies are not checked here: names, meanings, colours,
// heights and prices are stored exactly as sent.
func RequireFlag(field string, v *bool) []FieldError {
	if v == nil {
		return []FieldError{{Field: field, Message: field + " is required"}}
	}
	return nil
}
