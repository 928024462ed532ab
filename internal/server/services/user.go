// Package services contains server-side business logic. This file implements
// UserService, which handles signup, email verification, login, and resolving
// session tokens back to users.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/sethvargo/go-retry"

	"github.com/dmitrijs2005/docshare/internal/common"
	"github.com/dmitrijs2005/docshare/internal/dbx"
	"github.com/dmitrijs2005/docshare/internal/logging"
	"github.com/dmitrijs2005/docshare/internal/server/auth"
	"github.com/dmitrijs2005/docshare/internal/server/config"
	"github.com/dmitrijs2005/docshare/internal/server/mail"
	"github.com/dmitrijs2005/docshare/internal/server/models"
	"github.com/dmitrijs2005/docshare/internal/server/repositories/repomanager"
)

const tokenEntropyBytes = 32

// UserService provides account-related operations:
// - Signup: create users and mail verification tokens
// - VerifyEmail: consume a verification token and flip the bound user
// - Login: verify credentials and mint a session token
// - Authenticate: resolve a session token to a User
type UserService struct {
	db                                *sql.DB
	repomanager                       repomanager.RepositoryManager
	notifier                          mail.Notifier
	logger                            logging.Logger
	jwtSecret                         []byte
	accessTokenValidityDuration       time.Duration
	verificationTokenValidityDuration time.Duration
}

// NewUserService constructs a UserService using repositories, the mail
// notifier, and server config.
func NewUserService(db *sql.DB, m repomanager.RepositoryManager, n mail.Notifier, l logging.Logger, cfg *config.Config) *UserService {
	return &UserService{
		db:                                db,
		repomanager:                       m,
		notifier:                          n,
		logger:                            l.With("module", "user_service"),
		jwtSecret:                         []byte(cfg.SecretKey),
		accessTokenValidityDuration:       cfg.AccessTokenValidityDuration,
		verificationTokenValidityDuration: cfg.VerificationTokenValidityDuration,
	}
}

// Signup creates an unverified, non-ops account and mails a verification
// token. The user row and the token row are written in one transaction.
// A duplicate email yields common.ErrorAlreadyExists. Notifier failures are
// logged and do not fail the signup.
func (s *UserService) Signup(ctx context.Context, email string, password []byte) (*models.User, error) {
	hash, err := auth.HashPassword(password)
	common.WipeByteArray(password)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	user := &models.User{Email: email, PasswordHash: hash}

	var token string
	if err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		u, err := s.repomanager.Users(tx).Create(ctx, user)
		if err != nil {
			return err
		}
		user = u

		token, err = s.createVerificationToken(ctx, tx, u.ID)
		return err
	}); err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return nil, common.ErrorAlreadyExists
		}
		return nil, fmt.Errorf("error creating user: %w", err)
	}

	// Fire-and-forget: a dead mail server must not fail the signup.
	go func() {
		if err := s.notifier.SendVerificationEmail(context.WithoutCancel(ctx), user.Email, token); err != nil {
			s.logger.Warn(ctx, "verification mail failed", "email", user.Email, "error", err.Error())
		}
	}()

	return user, nil
}

// createVerificationToken inserts a fresh random token bound to userID,
// regenerating on the (theoretical) unique-key collision.
func (s *UserService) createVerificationToken(ctx context.Context, tx dbx.DBTX, userID string) (string, error) {
	repo := s.repomanager.VerificationTokens(tx)

	var token string
	err := retry.Do(ctx, retry.WithMaxRetries(3, retry.NewConstant(time.Millisecond)), func(ctx context.Context) error {
		t, err := common.MakeRandURLSafeString(tokenEntropyBytes)
		if err != nil {
			return err
		}
		vt := &models.VerificationToken{
			Token:     t,
			UserID:    userID,
			ExpiresAt: time.Now().Add(s.verificationTokenValidityDuration),
		}
		if err := repo.Create(ctx, vt); err != nil {
			if errors.Is(err, common.ErrorAlreadyExists) {
				return retry.RetryableError(err)
			}
			return err
		}
		token = t
		return nil
	})
	if err != nil {
		return "", err
	}
	return token, nil
}

// VerifyEmail consumes the verification token and marks its user verified.
// Unknown, expired, and already consumed tokens all yield
// common.ErrInvalidToken.
func (s *UserService) VerifyEmail(ctx context.Context, token string) error {
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		userID, err := s.repomanager.VerificationTokens(tx).Consume(ctx, token, time.Now())
		if err != nil {
			return err
		}
		return s.repomanager.Users(tx).MarkVerified(ctx, userID)
	})

	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return common.ErrInvalidToken
		}
		return fmt.Errorf("error verifying email: %w", err)
	}

	return nil
}

// Login checks the password for the account and mints a session token.
// An absent account and a wrong password produce the identical
// common.ErrorUnauthorized so callers cannot enumerate accounts.
// Unverified accounts yield common.ErrorEmailNotVerified.
func (s *UserService) Login(ctx context.Context, email string, password []byte) (string, error) {
	defer common.WipeByteArray(password)

	user, err := s.repomanager.Users(s.db).GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return "", common.ErrorUnauthorized
		}
		return "", fmt.Errorf("error fetching user: %w", err)
	}

	if !auth.CheckPassword(password, user.PasswordHash) {
		return "", common.ErrorUnauthorized
	}

	if !user.Verified {
		return "", common.ErrorEmailNotVerified
	}

	token, err := auth.GenerateToken(user.ID, s.jwtSecret, s.accessTokenValidityDuration)
	if err != nil {
		return "", fmt.Errorf("error generating token: %w", err)
	}

	return token, nil
}

// Authenticate resolves a session token to the user it was issued for.
// Every failure (bad token, expired token, deleted user) collapses into
// common.ErrorUnauthorized.
func (s *UserService) Authenticate(ctx context.Context, token string) (*models.User, error) {
	userID, err := auth.GetUserIDFromToken(token, s.jwtSecret)
	if err != nil {
		return nil, common.ErrorUnauthorized
	}

	user, err := s.repomanager.Users(s.db).GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorUnauthorized
		}
		return nil, fmt.Errorf("error fetching user: %w", err)
	}

	return user, nil
}

// EnsureOpsUser creates the bootstrap ops account (verified, is_ops) if no
// account exists under the configured email. Called once at startup.
func (s *UserService) EnsureOpsUser(ctx context.Context, email string, password []byte) error {
	_, err := s.repomanager.Users(s.db).GetByEmail(ctx, email)
	if err == nil {
		common.WipeByteArray(password)
		return nil
	}
	if !errors.Is(err, common.ErrorNotFound) {
		return err
	}

	hash, err := auth.HashPassword(password)
	common.WipeByteArray(password)
	if err != nil {
		return err
	}

	_, err = s.repomanager.Users(s.db).Create(ctx, &models.User{
		Email:        email,
		PasswordHash: hash,
		Verified:     true,
		IsOps:        true,
	})
	if errors.Is(err, common.ErrorAlreadyExists) {
		// concurrent bootstrap, already there
		return nil
	}
	return err
}
