// internal/services/storage_service_test.go
package services

import (
	"bytes"
	"errors"
	"mime/multipart"
	"net/http/httptest"
	"net/textproto"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eshopx/eshop-backend/internal/config"
)

func testStorage(t *testing.T) *StorageService {
	t.Helper()
	cfg := &config.Config{
		Uploads: config.UploadConfig{
			Dir:        t.TempDir(),
			PublicPath: "/public/uploads",
			MaxSizeMB:  10,
		},
	}
	storage, err := NewStorageService(cfg)
	require.NoError(t, err)
	return storage
}

// uploadedFile builds a real multipart.FileHeader the way gin receives it.
func uploadedFile(t *testing.T, filename, contentType string, content []byte) *multipart.FileHeader {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", `form-data; name="image"; filename="`+filename+`"`)
	header.Set("Content-Type", contentType)
	part, err := writer.CreatePart(header)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest("POST", "/", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(32<<20))

	return req.MultipartForm.File["image"][0]
}

func TestSaveImageWritesToDisk(t *testing.T) {
	storage := testStorage(t)

	header := uploadedFile(t, "my photo.png", "image/png", []byte("png-bytes"))
	filename, err := storage.SaveImage(header)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(filename, "my-photo-"))
	assert.True(t, strings.HasSuffix(filename, ".png"))

	data, err := os.ReadFile(filepath.Join(storage.cfg.Uploads.Dir, filename))
	require.NoError(t, err)
	assert.Equal(t, []byte("png-bytes"), data)
}

func TestSaveImageRejectsInvalidType(t *testing.T) {
	storage := testStorage(t)

	header := uploadedFile(t, "evil.gif", "image/gif", []byte("gif-bytes"))
	_, err := storage.SaveImage(header)
	assert.True(t, errors.Is(err, ErrInvalidImageType))
}

func TestSaveImageAcceptsAllImageTypes(t *testing.T) {
	storage := testStorage(t)

	for _, contentType := range []string{"image/png", "image/jpeg", "image/jpg"} {
		header := uploadedFile(t, "pic", contentType, []byte("bytes"))
		_, err := storage.SaveImage(header)
		assert.NoError(t, err, contentType)
	}
}

func TestImageURLForLocalStorage(t *testing.T) {
	storage := testStorage(t)

	url := storage.ImageURL("http", "localhost:3000", "pic-abc.png")
	assert.Equal(t, "http://localhost:3000/public/uploads/pic-abc.png", url)
}

func TestGenerateFileNameIsUnique(t *testing.T) {
	a := generateFileName("photo.png", "png")
	b := generateFileName("photo.png", "png")
	assert.NotEqual(t, a, b)
}
