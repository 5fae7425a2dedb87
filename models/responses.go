package models

// AccountProjection is the subset of Account fields safe to return to a
// caller. It excludes the password hash and the session token.
type AccountProjection struct {
	Email        string `json:"email"`
	Subscription string `json:"subscription"`
	AvatarURL    string `json:"avatarURL,omitempty"`
}

// Projection maps an Account to its outward-facing representation.
func (a Account) Projection() AccountProjection {
	return AccountProjection{
		Email:        a.Email,
		Subscription: a.Subscription,
		AvatarURL:    a.AvatarURL,
	}
}

// SignupResponse is returned by a successful signup. The verification
// token is echoed so the caller (and tests) can complete the email
// verification flow without inspecting the mailbox.
type SignupResponse struct {
	User              AccountProjection `json:"user"`
	VerificationToken string            `json:"verificationToken,omitempty"`
}

// LoginResponse is returned by a successful login.
type LoginResponse struct {
	Token string            `json:"token"`
	User  AccountProjection `json:"user"`
}

// CurrentResponse is returned for the authenticated account projection.
type CurrentResponse struct {
	Email        string `json:"email"`
	Subscription string `json:"subscription"`
}

// AvatarResponse is returned after a successful avatar update.
type AvatarResponse struct {
	AvatarURL string `json:"avatarURL"`
}

// MessageResponse is a generic confirmation body.
type MessageResponse struct {
	Message string `json:"message"`
}
