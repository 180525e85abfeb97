package validation

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"mime"
	"mime/multipart"
	"path/filepath"

	_ "golang.org/x/image/webp"

	"github.com/feedline-dev/feedline/internal/domain"
)

// ValidateImage checks one uploaded file header and returns a PendingFile
// ready to be handed to the media store. The caller owns closing the
// underlying file via the PendingFile's Data when it is an io.Closer.
func ValidateImage(fileHeader *multipart.FileHeader, allowedMimes []string) (*domain.PendingFile, error) {
	if fileHeader.Size > MaxImageBytes {
		return nil, fmt.Errorf("%w: %s is %d bytes", ErrPayloadTooLarge, fileHeader.Filename, fileHeader.Size)
	}

	allowed := make(map[string]bool, len(allowedMimes))
	for _, m := range allowedMimes {
		allowed[m] = true
	}

	file, err := fileHeader.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open uploaded file: %w", err)
	}

	mimeType, err := DetectMimeType(fileHeader)
	if err != nil {
		file.Close()
		return nil, err
	}

	if !allowed[mimeType] {
		file.Close()
		return nil, fmt.Errorf("%w: %s (file: %s)", ErrInvalidMimeType, mimeType, fileHeader.Filename)
	}

	// Decode only the header to confirm the content really is an image.
	if _, _, err := image.DecodeConfig(file); err != nil {
		file.Close()
		return nil, fmt.Errorf("%w: %s is not a decodable image", ErrInvalidMimeType, fileHeader.Filename)
	}
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		file.Close()
		return nil, fmt.Errorf("failed to rewind uploaded file: %w", err)
	}

	return &domain.PendingFile{
		Filename:  fileHeader.Filename,
		SizeBytes: fileHeader.Size,
		MimeType:  mimeType,
		Data:      file,
	}, nil
}

// DetectMimeType resolves the MIME type from the part header, falling back
// to the filename extension when the client sent nothing useful.
func DetectMimeType(fileHeader *multipart.FileHeader) (string, error) {
	mimeType := fileHeader.Header.Get("Content-Type")

	if mimeType == "" || mimeType == "application/octet-stream" {
		mimeType = mime.TypeByExtension(filepath.Ext(fileHeader.Filename))
	}
	if mimeType == "" {
		return "", fmt.Errorf("%w: could not determine type of %s", ErrInvalidMimeType, fileHeader.Filename)
	}
	return mimeType, nil
}
