// Package models defines server-side data models persisted in the database.
package models

import "time"

// File describes metadata for an uploaded document. The bytes themselves
// live in object storage under StorageKey. A File is immutable once created.
type File struct {
	ID string
	// Filename is the display name the uploader gave the document; it is
	// returned in Content-Disposition on download.
	Filename string
	// StorageKey is the object-storage key (path) of the blob.
	StorageKey string
	// FileType is the lower-cased extension, one of the upload allow-list.
	FileType string
	// UploadedBy is the ID of the ops user that uploaded the file. The user
	// is not re-validated after upload.
	UploadedBy string
	UploadedAt time.Time
}
