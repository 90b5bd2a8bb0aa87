package filestorage

import (
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/yigit/capstone/internal/pkg/logger"
)

// DefaultMaxImageBytes is the upload limit for profile images (14 MiB)
const DefaultMaxImageBytes int64 = 14 << 20

var (
	// ErrFileTooLarge is returned when an upload exceeds the configured limit
	ErrFileTooLarge = errors.New("file too large")
	// ErrUnsupportedType is returned when the sniffed content is not an image
	ErrUnsupportedType = errors.New("unsupported file type")
)

// ImageReader reads profile images, sniffing their type from content rather
// than trusting the client supplied header.
type ImageReader struct {
	maxBytes int64
}

// NewImageReader creates an ImageReader. maxBytes <= 0 uses DefaultMaxImageBytes.
func NewImageReader(maxBytes int64) *ImageReader {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxImageBytes
	}
	return &ImageReader{maxBytes: maxBytes}
}

// Read implements BlobReader
func (r *ImageReader) Read(fileHeader *multipart.FileHeader) (*Blob, error) {
	if fileHeader == nil {
		return nil, nil
	}
	if fileHeader.Size > r.maxBytes {
		return nil, fmt.Errorf("%w: %d bytes exceeds limit of %d", ErrFileTooLarge, fileHeader.Size, r.maxBytes)
	}

	file, err := fileHeader.Open()
	if err != nil {
		logger.Error().Err(err).Str("filename", fileHeader.Filename).Msg("Failed to open uploaded file")
		return nil, fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer file.Close()

	// One extra byte detects a body larger than the declared size
	data, err := io.ReadAll(io.LimitReader(file, r.maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read uploaded file: %w", err)
	}
	if int64(len(data)) > r.maxBytes {
		return nil, fmt.Errorf("%w: exceeds limit of %d bytes", ErrFileTooLarge, r.maxBytes)
	}

	mtype := mimetype.Detect(data)
	if !strings.HasPrefix(mtype.String(), "image/") {
		logger.Warn().Str("filename", fileHeader.Filename).Str("detected", mtype.String()).Msg("Rejected non-image upload")
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedType, mtype.String())
	}

	return &Blob{
		Filename: fileHeader.Filename,
		Data:     data,
		Size:     int64(len(data)),
		MimeType: mtype.String(),
	}, nil
}

// DataURL renders stored bytes as a data: URL for JSON responses.
// Empty data yields an empty string.
func DataURL(data []byte, mimeType string) string {
	if len(data) == 0 {
		return ""
	}
	if mimeType == "" {
		mimeType = mimetype.Detect(data).String()
	}
	return "data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(data)
}
