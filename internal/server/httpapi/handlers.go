package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrijs2005/docshare/internal/common"
	"github.com/dmitrijs2005/docshare/internal/server/models"
)

type signupRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type verifyEmailRequest struct {
	Token string `json:"token"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

type userResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Verified  bool      `json:"is_verified"`
	IsOps     bool      `json:"is_ops"`
	CreatedAt time.Time `json:"created_at"`
}

type fileResponse struct {
	ID         string    `json:"id"`
	Filename   string    `json:"filename"`
	FileType   string    `json:"file_type"`
	UploadedBy string    `json:"uploaded_by"`
	UploadedAt time.Time `json:"uploaded_at"`
}

type downloadURLResponse struct {
	DownloadURL string `json:"download_url"`
}

type messageResponse struct {
	Message string `json:"message"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

func toUserResponse(u *models.User) userResponse {
	return userResponse{
		ID:        u.ID,
		Email:     u.Email,
		Verified:  u.Verified,
		IsOps:     u.IsOps,
		CreatedAt: u.CreatedAt,
	}
}

func toFileResponse(f *models.File) fileResponse {
	return fileResponse{
		ID:         f.ID,
		Filename:   f.Filename,
		FileType:   f.FileType,
		UploadedBy: f.UploadedBy,
		UploadedAt: f.UploadedAt,
	}
}

func (s *Server) handleSignup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "email and password are required")
		return
	}

	user, err := s.users.Signup(r.Context(), req.Email, []byte(req.Password))
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			writeError(w, http.StatusConflict, "email already registered")
			return
		}
		s.logger.Error(r.Context(), "signup failed", "error", err.Error())
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeJSON(w, http.StatusCreated, toUserResponse(user))
}

func (s *Server) handleVerifyEmail(w http.ResponseWriter, r *http.Request) {
	var req verifyEmailRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Token == "" {
		writeError(w, http.StatusBadRequest, "token is required")
		return
	}

	if err := s.users.VerifyEmail(r.Context(), req.Token); err != nil {
		if errors.Is(err, common.ErrInvalidToken) {
			writeError(w, http.StatusBadRequest, "invalid or expired verification token")
			return
		}
		s.logger.Error(r.Context(), "verify email failed", "error", err.Error())
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeJSON(w, http.StatusOK, messageResponse{Message: "email verified successfully"})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "email and password are required")
		return
	}

	token, err := s.users.Login(r.Context(), req.Email, []byte(req.Password))
	if err != nil {
		switch {
		case errors.Is(err, common.ErrorUnauthorized):
			writeError(w, http.StatusUnauthorized, "incorrect email or password")
		case errors.Is(err, common.ErrorEmailNotVerified):
			writeError(w, http.StatusForbidden, "email not verified")
		default:
			s.logger.Error(r.Context(), "login failed", "error", err.Error())
			writeError(w, http.StatusInternalServerError, "internal error")
		}
		return
	}

	writeJSON(w, http.StatusOK, tokenResponse{AccessToken: token, TokenType: "bearer"})
}

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	user, _ := userFromContext(r.Context())

	f, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "multipart field 'file' is required")
		return
	}
	defer f.Close()

	file, err := s.files.Upload(r.Context(), user, header.Filename, f)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrorUnsupportedType):
			writeError(w, http.StatusBadRequest, "file type not allowed, allowed types: pptx, docx, xlsx")
		case errors.Is(err, common.ErrorStorage):
			s.logger.Error(r.Context(), "blob write failed", "error", err.Error())
			writeError(w, http.StatusBadGateway, "storage unavailable")
		default:
			s.logger.Error(r.Context(), "upload failed", "error", err.Error())
			writeError(w, http.StatusInternalServerError, "internal error")
		}
		return
	}

	writeJSON(w, http.StatusCreated, toFileResponse(file))
}

func (s *Server) handleListFiles(w http.ResponseWriter, r *http.Request) {
	files, err := s.files.List(r.Context())
	if err != nil {
		s.logger.Error(r.Context(), "list files failed", "error", err.Error())
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	result := make([]fileResponse, 0, len(files))
	for _, f := range files {
		result = append(result, toFileResponse(f))
	}

	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleRequestDownload(w http.ResponseWriter, r *http.Request) {
	user, _ := userFromContext(r.Context())
	fileID := chi.URLParam(r, "fileID")

	token, err := s.downloads.Issue(r.Context(), fileID, user)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			writeError(w, http.StatusNotFound, "file not found")
			return
		}
		s.logger.Error(r.Context(), "issue download token failed", "error", err.Error())
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeJSON(w, http.StatusOK, downloadURLResponse{DownloadURL: "/download/" + token})
}

func (s *Server) handleDownload(w http.ResponseWriter, r *http.Request) {
	user, _ := userFromContext(r.Context())
	token := chi.URLParam(r, "token")

	file, err := s.downloads.Redeem(r.Context(), token, user)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrorDenied):
			writeError(w, http.StatusForbidden, "invalid or expired download token")
		case errors.Is(err, common.ErrorNotFound):
			writeError(w, http.StatusNotFound, "file not found")
		default:
			s.logger.Error(r.Context(), "redeem download token failed", "error", err.Error())
			writeError(w, http.StatusInternalServerError, "internal error")
		}
		return
	}

	body, err := s.files.Open(r.Context(), file)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			writeError(w, http.StatusNotFound, "file not found")
			return
		}
		s.logger.Error(r.Context(), "blob read failed", "error", err.Error())
		writeError(w, http.StatusBadGateway, "storage unavailable")
		return
	}
	defer body.Close()

	w.Header().Set("Content-Type", "application/octet-stream")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", file.Filename))
	w.WriteHeader(http.StatusOK)

	if _, err := io.Copy(w, body); err != nil {
		// headers are gone, nothing to send; the copy error is all we can log
		s.logger.Warn(r.Context(), "download stream interrupted", "file_id", file.ID, "error", err.Error())
	}
}
