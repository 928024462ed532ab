package services

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/docshare/internal/common"
	"github.com/dmitrijs2005/docshare/internal/server/models"
	"github.com/dmitrijs2005/docshare/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/docshare/internal/server/storage"
)

// allowedFileTypes is the upload allow-list: office documents only.
var allowedFileTypes = map[string]struct{}{
	"pptx": {},
	"docx": {},
	"xlsx": {},
}

// FileService registers uploaded documents and resolves records for
// listing and download.
type FileService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	blobs       storage.BlobStore
}

func NewFileService(db *sql.DB, m repomanager.RepositoryManager, blobs storage.BlobStore) *FileService {
	return &FileService{db: db, repomanager: m, blobs: blobs}
}

// fileType extracts and normalizes the extension of a display filename.
func fileType(filename string) (string, error) {
	i := strings.LastIndexByte(filename, '.')
	if i < 0 || i == len(filename)-1 {
		return "", common.ErrorUnsupportedType
	}
	ext := strings.ToLower(filename[i+1:])
	if _, ok := allowedFileTypes[ext]; !ok {
		return "", common.ErrorUnsupportedType
	}
	return ext, nil
}

// storageKey allocates a unique blob key for an upload:
// uploader id + random suffix + extension.
func storageKey(uploaderID, ext string) string {
	return fmt.Sprintf("users/%s/%s.%s", uploaderID, uuid.New(), ext)
}

// Upload validates the file type against the allow-list, writes the bytes to
// blob storage, and records the file metadata. The allow-list check happens
// before any storage write. Unsupported extensions yield
// common.ErrorUnsupportedType; blob failures propagate as
// common.ErrorStorage.
func (s *FileService) Upload(ctx context.Context, uploader *models.User, filename string, body io.Reader) (*models.File, error) {
	ext, err := fileType(filename)
	if err != nil {
		return nil, err
	}

	key := storageKey(uploader.ID, ext)

	if err := s.blobs.Write(ctx, key, body); err != nil {
		return nil, err
	}

	file := &models.File{
		Filename:   filename,
		StorageKey: key,
		FileType:   ext,
		UploadedBy: uploader.ID,
	}

	file, err = s.repomanager.Files(s.db).Create(ctx, file)
	if err != nil {
		return nil, fmt.Errorf("error registering file: %w", err)
	}

	return file, nil
}

// List returns every file record, unfiltered.
func (s *FileService) List(ctx context.Context) ([]*models.File, error) {
	result, err := s.repomanager.Files(s.db).List(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing files: %w", err)
	}
	return result, nil
}

// Resolve returns the file record for id, or common.ErrorNotFound.
func (s *FileService) Resolve(ctx context.Context, id string) (*models.File, error) {
	return s.repomanager.Files(s.db).GetByID(ctx, id)
}

// Open streams the stored bytes of a file from blob storage.
func (s *FileService) Open(ctx context.Context, file *models.File) (io.ReadCloser, error) {
	return s.blobs.Read(ctx, file.StorageKey)
}
