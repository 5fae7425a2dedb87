package service

import "errors"

// Sentinel errors returned by the service layer. Handlers map these to HTTP
// status codes with [errors.Is].
var (
	// ErrInvalidDataProvided is returned when a request carries missing or
	// malformed fields (empty password, bad email shape, missing token).
	ErrInvalidDataProvided = errors.New("invalid data provided")

	// ErrInvalidCredentials is returned on login when the email is unknown
	// or the password does not match. Both cases are deliberately
	// indistinguishable.
	ErrInvalidCredentials = errors.New("email or password is wrong")

	// ErrInvalidSubscription is returned when a subscription update names a
	// tier outside the known set.
	ErrInvalidSubscription = errors.New("invalid subscription tier")

	// ErrAlreadyVerified is returned when verification email is requested
	// for an account whose email is already confirmed.
	ErrAlreadyVerified = errors.New("verification has already been passed")

	// ErrTokenIsExpiredOrInvalid is returned when a bearer token fails
	// validation, does not resolve to an account, or has been revoked by
	// logout.
	ErrTokenIsExpiredOrInvalid = errors.New("token is expired or invalid")

	// ErrTokenCreationFailed is returned when a JWT could not be generated.
	ErrTokenCreationFailed = errors.New("token creation failed")
)
