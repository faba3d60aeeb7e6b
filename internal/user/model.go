package user

import "time"

// User is an account row. IsEmailVerified flips from false to true exactly
// once, either by consuming a verification token or by a provider attestation.
type User struct {
	ID              string
	Username        string
	Email           string
	PasswordHash    string
	IsEmailVerified bool
	EmailVerifiedAt *time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
