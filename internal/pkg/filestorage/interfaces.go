package filestorage

import (
	"mime/multipart"
)

// Blob is an uploaded file held in memory, ready to be stored in a BYTEA column
type Blob struct {
	Filename string // Original filename
	Data     []byte // Raw content
	Size     int64  // Size in bytes
	MimeType string // Sniffed MIME type of Data
}

// BlobReader turns an uploaded multipart file into a Blob
type BlobReader interface {
	// Read loads the file. A nil header yields a nil Blob and no error.
	Read(fileHeader *multipart.FileHeader) (*Blob, error)
}
