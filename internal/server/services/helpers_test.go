package services

import (
	"context"
	"database/sql"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/dmitrijs2005/docshare/internal/common"
	"github.com/dmitrijs2005/docshare/internal/dbx"
	"github.com/dmitrijs2005/docshare/internal/logging"
	"github.com/dmitrijs2005/docshare/internal/server/models"
	"github.com/dmitrijs2005/docshare/internal/server/repositories/downloadtokens"
	"github.com/dmitrijs2005/docshare/internal/server/repositories/files"
	"github.com/dmitrijs2005/docshare/internal/server/repositories/users"
	"github.com/dmitrijs2005/docshare/internal/server/repositories/verificationtokens"
)

// --- shared test plumbing ---

func newSQLMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return db, mock
}

func discardLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

// fakeRepoManager hands out whatever fakes the test wires in, ignoring the
// DBTX handle.
type fakeRepoManager struct {
	users          users.Repository
	files          files.Repository
	downloadTokens downloadtokens.Repository
	verifTokens    verificationtokens.Repository
}

func (f *fakeRepoManager) Users(dbx.DBTX) users.Repository { return f.users }
func (f *fakeRepoManager) Files(dbx.DBTX) files.Repository { return f.files }
func (f *fakeRepoManager) DownloadTokens(dbx.DBTX) downloadtokens.Repository {
	return f.downloadTokens
}
func (f *fakeRepoManager) VerificationTokens(dbx.DBTX) verificationtokens.Repository {
	return f.verifTokens
}
func (f *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error { return nil }

// --- fake users repository ---

type fakeUsersRepo struct {
	createOut *models.User
	createErr error

	byEmail       map[string]*models.User
	byID          map[string]*models.User
	getByEmailErr error
	getByIDErr    error

	verified []string
}

func (f *fakeUsersRepo) Create(ctx context.Context, u *models.User) (*models.User, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	if f.createOut != nil {
		return f.createOut, nil
	}
	u.ID = "u-new"
	u.CreatedAt = time.Now()
	return u, nil
}

func (f *fakeUsersRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	if f.getByEmailErr != nil {
		return nil, f.getByEmailErr
	}
	if u, ok := f.byEmail[email]; ok {
		return u, nil
	}
	return nil, common.ErrorNotFound
}

func (f *fakeUsersRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	if f.getByIDErr != nil {
		return nil, f.getByIDErr
	}
	if u, ok := f.byID[id]; ok {
		return u, nil
	}
	return nil, common.ErrorNotFound
}

func (f *fakeUsersRepo) MarkVerified(ctx context.Context, id string) error {
	f.verified = append(f.verified, id)
	return nil
}

// --- fake files repository ---

type fakeFilesRepo struct {
	byID    map[string]*models.File
	listOut []*models.File
	listErr error

	created []*models.File
}

func (f *fakeFilesRepo) Create(ctx context.Context, file *models.File) (*models.File, error) {
	file.ID = "f-new"
	file.UploadedAt = time.Now()
	f.created = append(f.created, file)
	return file, nil
}

func (f *fakeFilesRepo) List(ctx context.Context) ([]*models.File, error) {
	return f.listOut, f.listErr
}

func (f *fakeFilesRepo) GetByID(ctx context.Context, id string) (*models.File, error) {
	if file, ok := f.byID[id]; ok {
		return file, nil
	}
	return nil, common.ErrorNotFound
}

// --- fake download-token repository ---

// fakeDownloadTokensRepo keeps issued tokens in memory and implements the
// real filter semantics in FindValid so redemption tests exercise the
// ownership and expiry rules.
type fakeDownloadTokensRepo struct {
	tokens map[string]*models.DownloadToken

	failCreates int // first N creates fail with ErrorAlreadyExists
	attempts    []string
}

func (f *fakeDownloadTokensRepo) Create(ctx context.Context, t *models.DownloadToken) error {
	f.attempts = append(f.attempts, t.Token)
	if f.failCreates > 0 {
		f.failCreates--
		return common.ErrorAlreadyExists
	}
	if f.tokens == nil {
		f.tokens = map[string]*models.DownloadToken{}
	}
	t.ID = "dt-" + t.Token[:8]
	f.tokens[t.Token] = t
	return nil
}

func (f *fakeDownloadTokensRepo) FindValid(ctx context.Context, token string, userID string, now time.Time) (*models.DownloadToken, error) {
	t, ok := f.tokens[token]
	if !ok || t.UserID != userID || !t.ExpiresAt.After(now) {
		return nil, common.ErrorNotFound
	}
	return t, nil
}

// --- fake verification-token repository ---

type fakeVerificationTokensRepo struct {
	consumeOut string
	consumeErr error

	failCreates int
	created     []*models.VerificationToken
}

func (f *fakeVerificationTokensRepo) Create(ctx context.Context, t *models.VerificationToken) error {
	f.created = append(f.created, t)
	if f.failCreates > 0 {
		f.failCreates--
		return common.ErrorAlreadyExists
	}
	return nil
}

func (f *fakeVerificationTokensRepo) Consume(ctx context.Context, token string, now time.Time) (string, error) {
	if f.consumeErr != nil {
		return "", f.consumeErr
	}
	return f.consumeOut, nil
}

// --- fake notifier ---

type fakeNotifier struct {
	sent chan string // receives "email|token"
	err  error
}

func newFakeNotifier() *fakeNotifier {
	return &fakeNotifier{sent: make(chan string, 1)}
}

func (f *fakeNotifier) SendVerificationEmail(ctx context.Context, email string, token string) error {
	f.sent <- email + "|" + token
	return f.err
}
