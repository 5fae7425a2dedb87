package models

import "time"

// Subscription tiers an account may hold. Stored as plain text in the
// "subscription" column; ValidSubscription guards every inbound change.
const (
	SubscriptionStarter  = "starter"
	SubscriptionPro      = "pro"
	SubscriptionBusiness = "business"
)

// Account represents a registered user identity with credentials,
// verification state, and subscription tier.
// Sensitive fields must never be exposed outside trusted boundaries.
type Account struct {
	// AccountID is the internal unique identifier of the account.
	// It is not exposed via JSON and is used only at the persistence layer
	// and as the JWT subject claim.
	AccountID int64 `json:"-"`

	// Email is the unique account identifier used during authentication.
	// Uniqueness is byte-exact; no case normalization is applied.
	Email string `json:"email"`

	// PasswordHash stores the bcrypt hash of the account password.
	// This value MUST be a bcrypt digest, never plaintext, and is never
	// serialized outward.
	PasswordHash string `json:"-"`

	// Subscription is the account's current tier: one of
	// SubscriptionStarter, SubscriptionPro, SubscriptionBusiness.
	Subscription string `json:"subscription"`

	// AvatarURL references the account's avatar image. Defaults to a
	// gravatar placeholder derived from the email at signup and is
	// replaced once the user uploads a custom avatar.
	AvatarURL string `json:"avatarURL,omitempty"`

	// SessionToken is the most recently issued bearer token, or empty
	// when the account is logged out. Exactly one session is active per
	// account; a new login overwrites the previous token.
	SessionToken string `json:"-"`

	// VerificationToken is the one-time email verification token.
	// Present only while the account is unverified; cleared on success.
	VerificationToken string `json:"verificationToken,omitempty"`

	// Verified reports whether the account's email has been confirmed.
	// It never reverts to false once set.
	Verified bool `json:"verified"`

	// CreatedAt is the timestamp when the account was created.
	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the name of the database table
// associated with the Account model.
func (a Account) TableName() string {
	return "accounts"
}

// ValidSubscription reports whether tier is one of the known
// subscription tiers.
func ValidSubscription(tier string) bool {
	switch tier {
	case SubscriptionStarter, SubscriptionPro, SubscriptionBusiness:
		return true
	}
	return false
}
