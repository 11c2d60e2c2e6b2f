package services

import "errors"

// Service-level failures. All are terminal for the request and
// deterministic for a given input; handlers map them to HTTP statuses.
var (
	// ErrInvalidCredentials is returned for unknown email and wrong
	// password alike, so login gives no account-existence oracle.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrAccountInactive is returned when the user or its hospital has
	// been deactivated.
	ErrAccountInactive = errors.New("account is deactivated")

	// ErrEmailTaken is returned when a hospital or user email is already
	// registered.
	ErrEmailTaken = errors.New("email already registered")

	// ErrDuplicatePhone is returned when a patient with the same phone
	// number already exists in the same hospital.
	ErrDuplicatePhone = errors.New("patient with this phone number already exists in this hospital")

	// ErrNotFound covers both truly absent resources and resources owned
	// by another tenant; the two are deliberately indistinguishable.
	ErrNotFound = errors.New("not found")

	// ErrInvalidRole is returned when a request names a role outside the
	// closed role set.
	ErrInvalidRole = errors.New("invalid role")
)
