package verificationtokens

import (
	"context"
	"time"

	"github.com/dmitrijs2005/docshare/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, token *models.VerificationToken) error
	// Consume marks an unconsumed, unexpired token as used and returns the
	// bound user ID. A token that is unknown, expired, or already consumed
	// yields common.ErrorNotFound.
	Consume(ctx context.Context, token string, now time.Time) (string, error)
}
