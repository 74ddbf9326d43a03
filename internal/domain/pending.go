package domain

import "time"

// PendingRegistration is signup data held until the email is verified.
// Password is a bcrypt hash when registrations are hashed at intake.
type PendingRegistration struct {
	FirstName      string    `json:"first_name"`
	LastName       string    `json:"last_name"`
	Email          string    `json:"email"`
	Password       string    `json:"password"`
	PasswordHashed bool      `json:"password_hashed,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	ExpiresAt      time.Time `json:"expires_at"`
}

func (r *PendingRegistration) Expired(now time.Time) bool {
	return !now.Before(r.ExpiresAt)
}

type PendingOTP struct {
	Digest    string
	Attempts  int
	CreatedAt time.Time
	ExpiresAt time.Time
}

func (o *PendingOTP) Expired(now time.Time) bool {
	return !now.Before(o.ExpiresAt)
}

type PendingStats struct {
	Registrations int64 `json:"registrations"`
	OTPs          int64 `json:"otps"`
}
