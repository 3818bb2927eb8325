package credentials

import "errors"

var (
	// ErrInvalidCredentials is the single generic authentication failure.
	// It deliberately does not distinguish an unknown email from a wrong
	// password, preventing account enumeration through error messages.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrEmailAlreadyExists is returned when registering with an email
	// that is already taken.
	ErrEmailAlreadyExists = errors.New("email already exists")

	// ErrUserNotFound is returned by storage lookups for unknown users.
	ErrUserNotFound = errors.New("user not found")

	// ErrInvalidEmail is returned when the supplied email is malformed.
	ErrInvalidEmail = errors.New("invalid email address")

	// ErrWeakPassword is returned when the password does not meet the
	// minimum requirements.
	ErrWeakPassword = errors.New("password does not meet security requirements")

	// ErrTokenInvalid is returned when a bearer token fails validation.
	ErrTokenInvalid = errors.New("invalid token")

	// ErrTokenExpired is returned when a bearer token is past its expiry.
	ErrTokenExpired = errors.New("token expired")

	// ErrMissingToken is returned when a request carries no bearer token.
	ErrMissingToken = errors.New("missing bearer token")
)
