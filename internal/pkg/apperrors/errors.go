package apperrors

import "errors"

// Common errors
var (
	// Resource errors
	ErrResourceNotFound      = errors.New("resource not found")
	ErrResourceAlreadyExists = errors.New("resource already exists")
	ErrConflict              = errors.New("conflict")

	// Authentication errors
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("invalid token")
	ErrTokenNotFound      = errors.New("token not found")
	ErrAccountDisabled    = errors.New("account is disabled")

	// Authorization errors
	ErrPermissionDenied = errors.New("permission denied")

	// Validation errors
	ErrValidationFailed  = errors.New("validation failed")
	ErrBadRequest        = errors.New("bad request")
	ErrInvalidDateFormat = errors.New("unrecognized date format")
)

// Student errors
var (
	ErrStudentNotFound      = errors.New("student not found")
	ErrDNIAlreadyExists     = errors.New("a student with this dni already exists")
	ErrInvalidDNI           = errors.New("dni must be 8 to 10 digits")
	ErrInvalidPhone         = errors.New("phone must be 10 to 15 digits")
	ErrInvalidSex           = errors.New("sex must be Femenino or Masculino")
	ErrTooManyArchivedFiles = errors.New("a student can hold at most two archived files")
)

// Share errors
var (
	ErrShareNotFound      = errors.New("share not found")
	ErrShareAlreadyExists = errors.New("share for this period already exists")
)

// Motion errors
var (
	ErrMotionNotFound  = errors.New("motion not found")
	ErrInvalidLocation = errors.New("unknown location")
)

// User errors
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrMailAlreadyExists  = errors.New("mail already exists")
	ErrUserFixed          = errors.New("fixed user cannot be modified or deleted")
	ErrLastAdminRemaining = errors.New("at least one enabled admin must remain")
)

// Notification errors
var (
	ErrTooManyRecipients = errors.New("recipient count exceeds the per-request limit")
	ErrNoValidRecipients = errors.New("no registered recipients in request")
)
