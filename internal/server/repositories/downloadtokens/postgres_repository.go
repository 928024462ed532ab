package downloadtokens

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/dmitrijs2005/docshare/internal/common"
	"github.com/dmitrijs2005/docshare/internal/dbx"
	"github.com/dmitrijs2005/docshare/internal/server/models"
)

const uniqueViolation = "23505"

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, token *models.DownloadToken) error {

	query :=
		`INSERT INTO download_tokens (token, file_id, user_id, expires_at)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id
		 `

	err := r.db.QueryRowContext(ctx, query,
		token.Token, token.FileID, token.UserID, token.ExpiresAt).Scan(&token.ID)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return common.ErrorAlreadyExists
		}
		return fmt.Errorf("db error: %w", err)
	}

	return nil
}

func (r *PostgresRepository) FindValid(ctx context.Context, token string, userID string, now time.Time) (*models.DownloadToken, error) {
	query :=
		`SELECT id, token, file_id, user_id, expires_at FROM download_tokens
		 WHERE token = $1 AND user_id = $2 AND expires_at > $3
		 `

	t := &models.DownloadToken{}
	err := r.db.QueryRowContext(ctx, query, token, userID, now).Scan(
		&t.ID, &t.Token, &t.FileID, &t.UserID, &t.ExpiresAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return t, nil
}
