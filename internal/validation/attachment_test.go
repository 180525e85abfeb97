package validation

import (
	"bytes"
	"image"
	"image/png"
	"io"
	"mime/multipart"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var allowedMimes = []string{"image/jpeg", "image/png", "image/gif", "image/webp"}

func pngBytes(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func uploadedFileHeader(t *testing.T, fieldFilename, contentType string, content []byte) *multipart.FileHeader {
	t.Helper()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	header := make(map[string][]string)
	header["Content-Disposition"] = []string{`form-data; name="image"; filename="` + fieldFilename + `"`}
	if contentType != "" {
		header["Content-Type"] = []string{contentType}
	}
	part, err := writer.CreatePart(header)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest("POST", "/", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(1<<20))

	files := req.MultipartForm.File["image"]
	require.Len(t, files, 1)
	return files[0]
}

func TestValidateImage(t *testing.T) {
	fh := uploadedFileHeader(t, "pic.png", "image/png", pngBytes(t))

	pending, err := ValidateImage(fh, allowedMimes)
	require.NoError(t, err)
	assert.Equal(t, "pic.png", pending.Filename)
	assert.Equal(t, "image/png", pending.MimeType)

	// data must be rewound and fully readable after the header decode
	data, err := io.ReadAll(pending.Data)
	require.NoError(t, err)
	assert.Equal(t, pngBytes(t), data)

	if closer, ok := pending.Data.(io.Closer); ok {
		closer.Close()
	}
}

func TestValidateImage_DisallowedMime(t *testing.T) {
	fh := uploadedFileHeader(t, "notes.txt", "text/plain", []byte("hello"))

	_, err := ValidateImage(fh, allowedMimes)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidMimeType)
}

func TestValidateImage_NotAnImage(t *testing.T) {
	fh := uploadedFileHeader(t, "fake.png", "image/png", []byte("definitely not a png"))

	_, err := ValidateImage(fh, allowedMimes)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidMimeType)
}

func TestValidateImage_TooLarge(t *testing.T) {
	fh := uploadedFileHeader(t, "huge.png", "image/png", pngBytes(t))
	fh.Size = MaxImageBytes + 1

	_, err := ValidateImage(fh, allowedMimes)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrPayloadTooLarge)
}

func TestDetectMimeType_FallbackToExtension(t *testing.T) {
	fh := uploadedFileHeader(t, "photo.jpg", "", pngBytes(t))

	mimeType, err := DetectMimeType(fh)
	require.NoError(t, err)
	assert.Equal(t, "image/jpeg", mimeType)
}
