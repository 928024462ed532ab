package models

import "time"

// DownloadToken authorizes one user to fetch one file's bytes until
// ExpiresAt. Redemption is a read-only check, so a token stays valid for
// repeated downloads inside its window; expiry is the only invalidation.
type DownloadToken struct {
	ID        string
	Token     string
	FileID    string
	UserID    string
	ExpiresAt time.Time
}
