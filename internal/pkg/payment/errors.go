package payment

import "errors"

// Sentinel errors used by handlers to map workflow failures onto HTTP
// status codes. Persistence errors pass through unwrapped from GORM;
// not-found is gorm.ErrRecordNotFound.
var (
	ErrUnauthorized      = errors.New("caller is not authenticated")
	ErrValidation        = errors.New("missing or invalid request fields")
	ErrConfiguration     = errors.New("payment gateway credentials are not configured")
	ErrSignatureMismatch = errors.New("invalid signature")
)
