package models

import "time"

// VerificationToken is mailed to a new account and confirms ownership of
// the address. Unlike download tokens it is single-use: ConsumedAt is set
// on redemption and a consumed token never matches again.
type VerificationToken struct {
	ID         string
	Token      string
	UserID     string
	ExpiresAt  time.Time
	ConsumedAt *time.Time
}
