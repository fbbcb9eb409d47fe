package entity

// Form field names as posted by the registration page.
const (
	FieldName            = "name"
	FieldPassword        = "password"
	FieldConfirmPassword = "confirmPassword"
)

// RegistrationSubmission is the set of fields posted for one registration
// attempt. It is created per request and discarded after the response;
// nothing about it is persisted.
type RegistrationSubmission struct {
	Name            string
	Password        string
	ConfirmPassword string
}

// PasswordsMatch reports whether the password was typed the same way twice.
func (s RegistrationSubmission) PasswordsMatch() bool {
	return s.Password == s.ConfirmPassword
}
