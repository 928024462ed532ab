// Package mail sends account notification email. The notifier is
// fire-and-forget: callers log failures but never fail the request that
// triggered the mail.
package mail

import "context"

type Notifier interface {
	SendVerificationEmail(ctx context.Context, email string, token string) error
}
