package models

// AccountUpdate represents a partial update of a single account record.
// Only non-nil fields are written (partial update support); pointer
// fields allow a column to be cleared explicitly, e.g. setting
// VerificationToken to an empty string once the email is confirmed.
type AccountUpdate struct {
	// Subscription replaces the account's tier when non-nil.
	Subscription *string

	// AvatarURL replaces the avatar reference when non-nil.
	AvatarURL *string

	// SessionToken replaces the active bearer token when non-nil.
	// An empty string logs the account out.
	SessionToken *string

	// VerificationToken replaces the verification token when non-nil.
	// An empty string marks the token as consumed.
	VerificationToken *string

	// Verified flips the email confirmation flag when non-nil.
	Verified *bool
}

// Empty reports whether the update carries no fields to write.
func (u AccountUpdate) Empty() bool {
	return u.Subscription == nil &&
		u.AvatarURL == nil &&
		u.SessionToken == nil &&
		u.VerificationToken == nil &&
		u.Verified == nil
}
