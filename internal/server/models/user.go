package models

import "time"

// User is a registered account. Verified and IsOps are independent
// capability flags: Verified gates login (and therefore listing and
// downloading), IsOps additionally permits uploads.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	Verified     bool
	IsOps        bool
	CreatedAt    time.Time
}
