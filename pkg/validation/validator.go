package validation

import (
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
)

var (
	engineOnce sync.Once
	engine     *validator.Validate
)

// Engine returns the shared validator used by Var rules.
// - Registers the non-standard notblank tag.
// - Registers alias tags for common validations.
func Engine() *validator.Validate {
	engineOnce.Do(func() {
		v := validator.New()
		if err := v.RegisterValidation("notblank", validators.NotBlank); err != nil {
			panic("validation: register notblank: " + err.Error())
		}
		v.RegisterAlias("nonzero", "required") // convenience
		engine = v
	})
	return engine
}

// Rule is one explicit check for a single field of T.
type Rule[T any] struct {
	Field   string
	Tag     string
	Message string
	Check   func(T) bool
}

// Rules evaluates in declaration order. Once a field has failed, its
// remaining rules are skipped so each field reports at most one error.
type Rules[T any] []Rule[T]

func (rs Rules[T]) Validate(v T) FieldErrors {
	var errs FieldErrors
	for _, r := range rs {
		if errs.HasField(r.Field) {
			continue
		}
		if r.Check(v) {
			continue
		}
		errs.Add(r.Field, r.Tag, r.Message)
	}
	return errs
}

// Func builds a rule from an arbitrary predicate.
func Func[T any](field, tag, message string, check func(T) bool) Rule[T] {
	return Rule[T]{Field: field, Tag: tag, Message: message, Check: check}
}

// Var builds a rule that runs a single validator tag (e.g. "required",
// "max=64") against the string returned by get. The message comes from the
// tag table.
func Var[T any](field, tag string, get func(T) string) Rule[T] {
	name, param, _ := strings.Cut(tag, "=")
	return Rule[T]{
		Field:   field,
		Tag:     name,
		Message: MessageFor(name, param),
		Check: func(v T) bool {
			return Engine().Var(get(v), tag) == nil
		},
	}
}

// MessageFor turns a string validator tag into a short human-friendly message.
func MessageFor(tag, param string) string {
	switch tag {
	// ===== PRESENCE/REQUIRED VALIDATIONS =====
	case "required", "nonzero":
		return "is required"
	case "notblank":
		return "must not be blank"

	// ===== STRING FORMAT VALIDATIONS =====
	case "email":
		return "must be a valid email"
	case "url":
		return "must be a valid URL"

	// ===== CHARACTER SET VALIDATIONS =====
	case "alpha":
		return "must contain alphabetic characters only"
	case "alphanum":
		return "must contain alphanumeric characters only"
	case "alphaunicode":
		return "must contain alphabetic (unicode) characters only"
	case "ascii":
		return "must contain ASCII characters only"
	case "printascii":
		return "must contain printable ASCII characters only"

	// ===== STRING CONTENT VALIDATIONS =====
	case "contains":
		return "must contain '" + param + "'"
	case "containsany":
		return "must contain at least one of '" + param + "'"
	case "excludesall":
		return "must not contain any of '" + param + "'"

	// ===== SIZE/LENGTH VALIDATIONS =====
	case "len":
		if param != "" {
			return "must be exactly " + param + " characters long"
		}
		return "invalid length"
	case "min":
		if param != "" {
			return "must be at least " + param + " characters long"
		}
		return "too small"
	case "max":
		if param != "" {
			return "must be at most " + param + " characters long"
		}
		return "too large"

	// ===== INCLUSION VALIDATIONS =====
	case "oneof":
		return "must be one of: " + strings.Join(strings.Fields(param), ", ")

	default:
		if param != "" {
			return "validation failed for '" + tag + "' with parameter '" + param + "'"
		}
		return "validation failed for '" + tag + "'"
	}
}
