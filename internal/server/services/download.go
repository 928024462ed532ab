package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/sethvargo/go-retry"

	"github.com/dmitrijs2005/docshare/internal/common"
	"github.com/dmitrijs2005/docshare/internal/server/config"
	"github.com/dmitrijs2005/docshare/internal/server/models"
	"github.com/dmitrijs2005/docshare/internal/server/repositories/repomanager"
)

// DownloadService issues and redeems time-boxed, user-and-file-bound
// download tokens.
//
// Redemption is deliberately read-only: a token is never marked consumed,
// so it stays redeemable until its window closes. Concurrent redemptions of
// the same token therefore all succeed.
type DownloadService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	validity    time.Duration
}

func NewDownloadService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config) *DownloadService {
	return &DownloadService{
		db:          db,
		repomanager: m,
		validity:    cfg.DownloadTokenValidityDuration,
	}
}

// Issue creates a download token for fileID bound to user, valid for the
// configured window. Unknown files yield common.ErrorNotFound. The token is
// 32 bytes of CSPRNG output in the URL-safe alphabet; on the theoretical
// unique-key collision a fresh token is generated and the insert retried.
func (s *DownloadService) Issue(ctx context.Context, fileID string, user *models.User) (string, error) {
	if _, err := s.repomanager.Files(s.db).GetByID(ctx, fileID); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return "", common.ErrorNotFound
		}
		return "", fmt.Errorf("error resolving file: %w", err)
	}

	repo := s.repomanager.DownloadTokens(s.db)

	var token string
	err := retry.Do(ctx, retry.WithMaxRetries(3, retry.NewConstant(time.Millisecond)), func(ctx context.Context) error {
		t, err := common.MakeRandURLSafeString(tokenEntropyBytes)
		if err != nil {
			return err
		}
		dt := &models.DownloadToken{
			Token:     t,
			FileID:    fileID,
			UserID:    user.ID,
			ExpiresAt: time.Now().Add(s.validity),
		}
		if err := repo.Create(ctx, dt); err != nil {
			if errors.Is(err, common.ErrorAlreadyExists) {
				return retry.RetryableError(err)
			}
			return err
		}
		token = t
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("error issuing download token: %w", err)
	}

	return token, nil
}

// Redeem checks that token exists, belongs to user, and has not expired,
// then returns the bound file record. All three failures collapse into
// common.ErrorDenied. A file deleted after issuance yields
// common.ErrorNotFound.
func (s *DownloadService) Redeem(ctx context.Context, token string, user *models.User) (*models.File, error) {
	dt, err := s.repomanager.DownloadTokens(s.db).FindValid(ctx, token, user.ID, time.Now())
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorDenied
		}
		return nil, fmt.Errorf("error redeeming download token: %w", err)
	}

	file, err := s.repomanager.Files(s.db).GetByID(ctx, dt.FileID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("error resolving file: %w", err)
	}

	return file, nil
}
