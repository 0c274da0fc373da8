// internal/handlers/products_test.go
package handlers

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"os"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"github.com/eshopx/eshop-backend/internal/config"
	"github.com/eshopx/eshop-backend/internal/database"
	"github.com/eshopx/eshop-backend/internal/services"
)

func storageConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		Uploads: config.UploadConfig{
			Dir:        t.TempDir(),
			PublicPath: "/public/uploads",
			MaxSizeMB:  10,
		},
	}
}

func productRouter(t *testing.T, db *database.DB, cfg *config.Config) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	storage, err := services.NewStorageService(cfg)
	require.NoError(t, err)
	products := services.NewProductService(db, services.NewCategoryService(db))
	handler := NewProductHandler(products, storage)

	r := gin.New()
	r.GET("/api/v1/products/get/count", handler.Count)
	r.PUT("/api/v1/products/:id", handler.Update)
	r.PUT("/api/v1/products/gallery-images/:id", handler.UpdateGallery)
	return r
}

// productFormBody builds the multipart payload the product routes accept,
// with one attached file.
func productFormBody(t *testing.T, fileField, filename, contentType string) (*bytes.Buffer, string) {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	fields := map[string]string{
		"name":        "Desk",
		"description": "Oak standing desk",
		"price":       "499.99",
		"category":    primitive.NewObjectID().Hex(),
	}
	for field, value := range fields {
		require.NoError(t, writer.WriteField(field, value))
	}

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", `form-data; name="`+fileField+`"; filename="`+filename+`"`)
	header.Set("Content-Type", contentType)
	part, err := writer.CreatePart(header)
	require.NoError(t, err)
	_, err = part.Write([]byte("image-bytes"))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	return body, writer.FormDataContentType()
}

func TestProductCountEmptyCollectionReturnsNotFound(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("zero count maps to 404", func(mt *mtest.T) {
		r := productRouter(mt.T, database.NewWithDatabase(mt.DB), storageConfig(mt.T))

		// CountDocuments aggregates zero matching rows.
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "eshop.products", mtest.FirstBatch))

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/products/get/count", nil))

		assert.Equal(mt, http.StatusNotFound, w.Code)
		assert.Contains(mt, w.Body.String(), "No products found")
	})
}

func TestUpdateProductRejectsUnsupportedImageType(t *testing.T) {
	r := productRouter(t, nil, storageConfig(t))
	body, contentType := productFormBody(t, "image", "pic.gif", "image/gif")

	req := httptest.NewRequest(http.MethodPut, "/api/v1/products/"+primitive.NewObjectID().Hex(), body)
	req.Header.Set("Content-Type", contentType)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "invalid image type")
}

func TestUpdateProductStorageFailureIsInternalError(t *testing.T) {
	cfg := storageConfig(t)
	// A regular file where the upload dir should be makes every write fail.
	cfg.Uploads.Dir = filepath.Join(t.TempDir(), "uploads")
	require.NoError(t, os.WriteFile(cfg.Uploads.Dir, []byte("x"), 0o644))

	r := productRouter(t, nil, cfg)
	body, contentType := productFormBody(t, "image", "pic.png", "image/png")

	req := httptest.NewRequest(http.MethodPut, "/api/v1/products/"+primitive.NewObjectID().Hex(), body)
	req.Header.Set("Content-Type", contentType)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestUpdateGalleryRejectsUnsupportedImageType(t *testing.T) {
	r := productRouter(t, nil, storageConfig(t))
	body, contentType := productFormBody(t, "images", "pic.gif", "image/gif")

	req := httptest.NewRequest(http.MethodPut, "/api/v1/products/gallery-images/"+primitive.NewObjectID().Hex(), body)
	req.Header.Set("Content-Type", contentType)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "invalid image type")
}

func TestUpdateGalleryStorageFailureIsInternalError(t *testing.T) {
	cfg := storageConfig(t)
	cfg.Uploads.Dir = filepath.Join(t.TempDir(), "uploads")
	require.NoError(t, os.WriteFile(cfg.Uploads.Dir, []byte("x"), 0o644))

	r := productRouter(t, nil, cfg)
	body, contentType := productFormBody(t, "images", "pic.png", "image/png")

	req := httptest.NewRequest(http.MethodPut, "/api/v1/products/gallery-images/"+primitive.NewObjectID().Hex(), body)
	req.Header.Set("Content-Type", contentType)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
