package config

import "errors"

var (
	// ErrAdminPasswordHashEmpty is returned when ADMIN_PASSWORD_HASH is not configured.
	ErrAdminPasswordHashEmpty = errors.New("ADMIN_PASSWORD_HASH must be set (see the hash-password command)")

	// ErrAdminPasswordHashInvalid is returned when the hash is neither hex SHA-256 nor bcrypt.
	ErrAdminPasswordHashInvalid = errors.New("ADMIN_PASSWORD_HASH must be a hex sha256 digest or a bcrypt hash")

	// ErrAdminEmailEmpty is returned when ADMIN_EMAIL is blank.
	ErrAdminEmailEmpty = errors.New("ADMIN_EMAIL can not be empty")

	// ErrSessionSecretEmpty is returned outside dev mode when no session secret is configured.
	ErrSessionSecretEmpty = errors.New("ADMIN_SESSION_SECRET must be set outside dev mode")

	// ErrPortCanNotBeZero is returned when the listening port is 0.
	ErrPortCanNotBeZero = errors.New("PORT listening port can not be 0")

	// ErrGinMode is returned when GIN_MODE is not debug, release or test.
	ErrGinMode = errors.New("GIN_MODE must be debug, release or test")

	// ErrSlotCapacity is returned when the reservation slot capacity is below one.
	ErrSlotCapacity = errors.New("RESERVATION_SLOT_CAPACITY must be at least 1")

	// ErrNegativePricing is returned when tax rate or order fee is negative.
	ErrNegativePricing = errors.New("TAX_RATE and ORDER_FEE can not be negative")
)
