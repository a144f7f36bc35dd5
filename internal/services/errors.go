package services

import "errors"

// Request-level failures surfaced to handlers. The error text doubles as
// the wire-level detail code.
var (
	ErrNoUpdatableFields  = errors.New("no_updatable_fields")
	ErrInvalidDataURI     = errors.New("invalid_or_missing_data_uri")
	ErrCorruptData        = errors.New("corrupt_data_uri")
	ErrMessageRequired    = errors.New("message_required")
	ErrInvalidUsername    = errors.New("invalid_username")
	ErrMissingCredentials = errors.New("email_or_username_and_password_required")
)
