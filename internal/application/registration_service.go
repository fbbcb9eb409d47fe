package application

import (
	"slices"

	"github.com/oksasatya/go-user-registration/internal/domain/entity"
	"github.com/oksasatya/go-user-registration/pkg/validation"
)

// View names understood by the renderer.
const (
	ViewRegister = "register"
	ViewSuccess  = "success"
)

// Binding keys.
const (
	BindingUser   = "user"
	BindingErrors = "errors"
	BindingName   = "name"
)

const (
	MismatchTag     = "mismatch"
	MismatchMessage = "Passwords do not match"
)

// View is a named template plus the values it is rendered with.
type View struct {
	Name     string
	Bindings map[string]any
}

// Errors returns the field errors bound to the view, if any.
func (v View) Errors() validation.FieldErrors {
	errs, _ := v.Bindings[BindingErrors].(validation.FieldErrors)
	return errs
}

// Submission returns the submission bound to a form view.
func (v View) Submission() (entity.RegistrationSubmission, bool) {
	s, ok := v.Bindings[BindingUser].(entity.RegistrationSubmission)
	return s, ok
}

// RegistrationRules are the field-level checks that run before the
// password confirmation is compared.
func RegistrationRules() validation.Rules[entity.RegistrationSubmission] {
	return validation.Rules[entity.RegistrationSubmission]{
		validation.Var(entity.FieldName, "notblank", func(s entity.RegistrationSubmission) string { return s.Name }),
		validation.Var(entity.FieldPassword, "required", func(s entity.RegistrationSubmission) string { return s.Password }),
		validation.Var(entity.FieldConfirmPassword, "required", func(s entity.RegistrationSubmission) string { return s.ConfirmPassword }),
	}
}

// RegistrationService decides which view answers a registration request.
// It holds no mutable state and is safe for concurrent use.
type RegistrationService struct {
	Rules validation.Rules[entity.RegistrationSubmission]
}

func NewRegistrationService(rules validation.Rules[entity.RegistrationSubmission]) *RegistrationService {
	return &RegistrationService{Rules: rules}
}

// GetForm returns the registration form bound to an empty submission.
func (s *RegistrationService) GetForm() View {
	return View{
		Name:     ViewRegister,
		Bindings: map[string]any{BindingUser: entity.RegistrationSubmission{}},
	}
}

// Validate runs the field-level rules.
func (s *RegistrationService) Validate(sub entity.RegistrationSubmission) validation.FieldErrors {
	return s.Rules.Validate(sub)
}

// SubmitForm adds the password mismatch error to fieldErrors when needed and
// picks the form view if anything failed, the success view otherwise.
// The caller's slice is never written to.
func (s *RegistrationService) SubmitForm(sub entity.RegistrationSubmission, fieldErrors validation.FieldErrors) View {
	errs := slices.Clip(fieldErrors)
	if !sub.PasswordsMatch() {
		errs.Add(entity.FieldConfirmPassword, MismatchTag, MismatchMessage)
	}

	if errs.HasErrors() {
		return View{
			Name: ViewRegister,
			Bindings: map[string]any{
				BindingUser:   sub,
				BindingErrors: errs,
			},
		}
	}

	return View{
		Name:     ViewSuccess,
		Bindings: map[string]any{BindingName: sub.Name},
	}
}
