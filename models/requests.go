package models

// Credentials is the request body shared by signup and login.
type Credentials struct {
	// Email is the address the account is registered under. Required.
	Email string `json:"email"`

	// Password is the plaintext password supplied by the caller.
	// It exists only for the duration of the request and is hashed
	// before any persistence.
	Password string `json:"password"`
}

// SubscriptionUpdate is the request body for changing an account's tier.
type SubscriptionUpdate struct {
	// Subscription must be one of the enumerated tiers.
	Subscription string `json:"subscription"`
}

// ResendVerificationRequest is the request body for re-sending the
// verification email to an unverified account.
type ResendVerificationRequest struct {
	Email string `json:"email"`
}
