package domain

import "io"

// PendingFile is an uploaded image that passed validation but is not yet
// written to the media store.
type PendingFile struct {
	Filename  string
	SizeBytes int64
	MimeType  string
	Data      io.Reader
}
