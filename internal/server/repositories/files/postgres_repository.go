package files

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/dmitrijs2005/docshare/internal/common"
	"github.com/dmitrijs2005/docshare/internal/dbx"
	"github.com/dmitrijs2005/docshare/internal/server/models"
)

// invalidTextRepresentation is raised when a value cannot be cast to the
// column type, here a non-UUID string offered as an id.
const invalidTextRepresentation = "22P02"

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, file *models.File) (*models.File, error) {

	query :=
		`INSERT INTO files (filename, storage_key, file_type, uploaded_by)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, uploaded_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		file.Filename, file.StorageKey, file.FileType, file.UploadedBy).Scan(&file.ID, &file.UploadedAt)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return file, nil
}

// List returns every file record, unfiltered and unpaginated.
func (r *PostgresRepository) List(ctx context.Context) ([]*models.File, error) {
	query :=
		`SELECT id, filename, storage_key, file_type, uploaded_by, uploaded_at FROM files
		 ORDER BY uploaded_at
		 `

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.File
	for rows.Next() {
		item := &models.File{}
		err := rows.Scan(&item.ID, &item.Filename, &item.StorageKey, &item.FileType, &item.UploadedBy, &item.UploadedAt)
		if err != nil {
			return nil, err
		}
		result = append(result, item)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return result, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.File, error) {
	query :=
		`SELECT id, filename, storage_key, file_type, uploaded_by, uploaded_at FROM files
		 WHERE id = $1
		 `

	file := &models.File{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&file.ID, &file.Filename, &file.StorageKey, &file.FileType, &file.UploadedBy, &file.UploadedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		// an id that is not a valid uuid cannot resolve to a file
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == invalidTextRepresentation {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return file, nil
}
