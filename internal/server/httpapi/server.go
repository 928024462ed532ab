// Package httpapi exposes the service over HTTP: chi routing, bearer-token
// middleware, and the request handlers.
package httpapi

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/dmitrijs2005/docshare/internal/logging"
	"github.com/dmitrijs2005/docshare/internal/server/models"
)

// UserService is the account surface the HTTP layer needs.
// *services.UserService satisfies it.
type UserService interface {
	Signup(ctx context.Context, email string, password []byte) (*models.User, error)
	VerifyEmail(ctx context.Context, token string) error
	Login(ctx context.Context, email string, password []byte) (string, error)
	Authenticate(ctx context.Context, token string) (*models.User, error)
}

// FileService is the registry surface the HTTP layer needs.
// *services.FileService satisfies it.
type FileService interface {
	Upload(ctx context.Context, uploader *models.User, filename string, body io.Reader) (*models.File, error)
	List(ctx context.Context) ([]*models.File, error)
	Open(ctx context.Context, file *models.File) (io.ReadCloser, error)
}

// DownloadService is the token surface the HTTP layer needs.
// *services.DownloadService satisfies it.
type DownloadService interface {
	Issue(ctx context.Context, fileID string, user *models.User) (string, error)
	Redeem(ctx context.Context, token string, user *models.User) (*models.File, error)
}

type Server struct {
	address   string
	logger    logging.Logger
	users     UserService
	files     FileService
	downloads DownloadService
}

func NewServer(a string, l logging.Logger, us UserService, fs FileService, ds DownloadService) *Server {
	return &Server{
		address:   a,
		logger:    l.With("module", "http_server"),
		users:     us,
		files:     fs,
		downloads: ds,
	}
}

// Router assembles the endpoint surface. Role gating is genuine: upload
// requires an ops account, listing and downloading require a verified one.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Post("/client/signup", s.handleSignup)
	r.Post("/client/verify-email", s.handleVerifyEmail)
	r.Post("/login", s.handleLogin)

	r.Group(func(r chi.Router) {
		r.Use(s.authenticate)

		r.With(s.requireOps).Post("/ops/upload", s.handleUpload)

		r.With(s.requireVerified).Get("/client/files", s.handleListFiles)
		r.With(s.requireVerified).Post("/client/files/{fileID}/download", s.handleRequestDownload)
		r.With(s.requireVerified).Get("/download/{token}", s.handleDownload)
	})

	return r
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {

	srv := &http.Server{
		Addr:    s.address,
		Handler: s.Router(),
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}

	return nil
}
