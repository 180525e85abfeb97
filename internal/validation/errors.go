package validation

import "errors"

// MaxImageBytes caps a single uploaded image. The post form parser uses
// the same number as its in-memory multipart limit.
const MaxImageBytes = 10 << 20

// ErrPayloadTooLarge is returned when an upload exceeds MaxImageBytes
var ErrPayloadTooLarge = errors.New("payload too large")

// ErrInvalidMimeType is returned when an uploaded file has a disallowed MIME type
var ErrInvalidMimeType = errors.New("invalid MIME type")
