package session

// AuthenticationError reports a rejected login. Message comes from the
// server when it provided one.
type AuthenticationError struct {
	Message string
	Err     error
}

func (e *AuthenticationError) Error() string { return e.Message }
func (e *AuthenticationError) Unwrap() error { return e.Err }

// RegistrationError reports a rejected registration, such as a
// domain-restricted email or a duplicate account.
type RegistrationError struct {
	Message string
	Err     error
}

func (e *RegistrationError) Error() string { return e.Message }
func (e *RegistrationError) Unwrap() error { return e.Err }

// ProfileUpdateError reports a rejected avatar update.
type ProfileUpdateError struct {
	Message string
	Err     error
}

func (e *ProfileUpdateError) Error() string { return e.Message }
func (e *ProfileUpdateError) Unwrap() error { return e.Err }
