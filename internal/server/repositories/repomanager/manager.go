// Package repomanager provides a factory over the per-entity repositories so
// services can obtain them bound either to the shared *sql.DB or to an open
// transaction.
package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/docshare/internal/dbx"
	"github.com/dmitrijs2005/docshare/internal/server/repositories/downloadtokens"
	"github.com/dmitrijs2005/docshare/internal/server/repositories/files"
	"github.com/dmitrijs2005/docshare/internal/server/repositories/users"
	"github.com/dmitrijs2005/docshare/internal/server/repositories/verificationtokens"
)

type RepositoryManager interface {
	Users(db dbx.DBTX) users.Repository
	Files(db dbx.DBTX) files.Repository
	DownloadTokens(db dbx.DBTX) downloadtokens.Repository
	VerificationTokens(db dbx.DBTX) verificationtokens.Repository
	RunMigrations(ctx context.Context, db *sql.DB) error
}
