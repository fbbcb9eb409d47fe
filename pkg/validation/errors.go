package validation

// FieldError represents a structured validation error
type FieldError struct {
	Field   string `json:"field"`
	Tag     string `json:"tag"`
	Message string `json:"message"`
}

// FieldErrors keeps failures in the order they were reported.
type FieldErrors []FieldError

func (e *FieldErrors) Add(field, tag, message string) {
	*e = append(*e, FieldError{Field: field, Tag: tag, Message: message})
}

func (e FieldErrors) HasErrors() bool { return len(e) > 0 }

func (e FieldErrors) HasField(field string) bool {
	for _, fe := range e {
		if fe.Field == field {
			return true
		}
	}
	return false
}

// For returns every message reported for field.
func (e FieldErrors) For(field string) []string {
	var out []string
	for _, fe := range e {
		if fe.Field == field {
			out = append(out, fe.Message)
		}
	}
	return out
}

// ToDetails converts the list into a map[field]message suitable for API
// error.details. The first message of a field wins.
func (e FieldErrors) ToDetails() map[string]string {
	if len(e) == 0 {
		return nil
	}
	out := make(map[string]string, len(e))
	for _, fe := range e {
		if _, ok := out[fe.Field]; !ok {
			out[fe.Field] = fe.Message
		}
	}
	return out
}
