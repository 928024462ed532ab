package downloadtokens

import (
	"context"
	"time"

	"github.com/dmitrijs2005/docshare/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, token *models.DownloadToken) error
	// FindValid looks up a token that belongs to userID and has not expired
	// as of now. Any miss (unknown token, foreign owner, expired) is
	// common.ErrorNotFound; callers collapse this into a single denial.
	FindValid(ctx context.Context, token string, userID string, now time.Time) (*models.DownloadToken, error)
}
