package login

import "errors"

var (
	// ErrInvalidFormData is returned when the submitted login form cannot be parsed.
	ErrInvalidFormData = errors.New("invalid form data")

	// ErrInvalidCredentials is returned when username or password are not valid.
	ErrInvalidCredentials = errors.New("invalid username or password")

	// ErrInternalServerError is returned for unexpected failures during the login process.
	ErrInternalServerError = errors.New("internal server error")
)
