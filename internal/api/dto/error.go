package dto

// ErrorResponse represents a generic error response body.
type ErrorResponse struct {
	Error string `json:"error"`
}

// ValidationErrors reports bad input keyed by the offending field. It is
// returned to the caller with enough detail to correct the request; the
// operation is never applied.
type ValidationErrors map[string]string

func (v ValidationErrors) Error() string {
	for field, msg := range v {
		return field + ": " + msg
	}
	return "validation failed"
}

// FieldError builds a single-field validation error.
func FieldError(field, message string) ValidationErrors {
	return ValidationErrors{field: message}
}
