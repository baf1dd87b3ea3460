package entity

import (
	"time"
)

// User is the aggregate root for the identity domain.
// Password holds a bcrypt hash and stays empty until registration is
// finalized; it must never be serialized into a response body.
// VerificationCode is non-empty only while a verification step is pending
// and is cleared together with CodeExpiresAt on success.
type User struct {
	ID               string
	Name             string
	Email            string
	Password         string
	IsVerified       bool
	VerificationCode string
	CodeExpiresAt    *time.Time
	Role             Role

	// Contact fields collected at the add-info step.
	MobileNumber string
	DOB          *time.Time
	Address      string

	ProfilePicture string
	IsGuest        bool

	ResetPasswordToken   string
	ResetPasswordExpires *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// HasPassword reports whether registration has been finalized with a credential.
func (u *User) HasPassword() bool { return u.Password != "" }

// RegistrationPending reports whether the account is still in the middle of
// the signup flow: created but neither verified nor finalized. Such accounts
// may be re-registered to recover from a lost verification message.
func (u *User) RegistrationPending() bool {
	return !u.IsVerified && !u.HasPassword()
}
