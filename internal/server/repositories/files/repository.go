package files

import (
	"context"

	"github.com/dmitrijs2005/docshare/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, file *models.File) (*models.File, error)
	List(ctx context.Context) ([]*models.File, error)
	GetByID(ctx context.Context, id string) (*models.File, error)
}
