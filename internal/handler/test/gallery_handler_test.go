package test

import (
	"bytes"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"

	"cateringCMS/internal/models"
	"cateringCMS/internal/service"
	"cateringCMS/internal/storage"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func multipartUpload(t *testing.T, fields map[string]string, fileName string, content []byte) (*bytes.Buffer, string) {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	for key, value := range fields {
		require.NoError(t, writer.WriteField(key, value))
	}

	if fileName != "" {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", `form-data; name="image"; filename="`+fileName+`"`)
		h.Set("Content-Type", "image/png")

		part, err := writer.CreatePart(h)
		require.NoError(t, err)
		_, err = part.Write(content)
		require.NoError(t, err)
	}

	require.NoError(t, writer.Close())
	return body, writer.FormDataContentType()
}

func TestListGalleryHandler(t *testing.T) {
	active := true
	inactive := false

	tests := []struct {
		name           string
		query          string
		filter         *models.GalleryFilter
		expectedStatus int
	}{
		{name: "all", query: "", filter: &models.GalleryFilter{}, expectedStatus: http.StatusOK},
		{name: "active", query: "?status=active", filter: &models.GalleryFilter{Active: &active}, expectedStatus: http.StatusOK},
		{name: "inactive", query: "?status=inactive", filter: &models.GalleryFilter{Active: &inactive}, expectedStatus: http.StatusOK},
		{name: "unknown status", query: "?status=archived", expectedStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler, m := createTestHandler()
			if tt.filter != nil {
				m.gallery.On("List", mock.Anything, *tt.filter).
					Return([]*models.GalleryItem{{ItemID: "1"}, {ItemID: "2"}}, nil)
			}

			rr := httptest.NewRecorder()
			handler.ListGallery(rr, httptest.NewRequest(http.MethodGet, "/api/gallery"+tt.query, nil))

			assert.Equal(t, tt.expectedStatus, rr.Code)
			if tt.expectedStatus == http.StatusOK {
				env := decodeEnvelope(t, rr)
				require.NotNil(t, env.Count)
				assert.Equal(t, 2, *env.Count)
			}
			m.gallery.AssertExpectations(t)
		})
	}
}

func TestCreateGalleryItemHandler(t *testing.T) {
	png := []byte("\x89PNG\r\n\x1a\nrest-of-image")

	t.Run("created", func(t *testing.T) {
		handler, m := createTestHandler()

		m.gallery.On("Create", mock.Anything,
			models.CreateGalleryItemRequest{
				Title:        "Wedding buffet",
				Description:  "Spring menu",
				Category:     "event",
				DisplayOrder: 7,
				UploaderID:   "a-1",
			},
			mock.MatchedBy(func(u models.ImageUpload) bool {
				return u.FileName == "buffet.png" && u.Size == int64(len(png))
			}),
		).Return(&models.GalleryItem{ItemID: "g-1", Title: "Wedding buffet", IsActive: true}, nil)

		body, contentType := multipartUpload(t, map[string]string{
			"title":        "Wedding buffet",
			"description":  "Spring menu",
			"category":     "event",
			"displayOrder": "7",
		}, "buffet.png", png)

		req := httptest.NewRequest(http.MethodPost, "/api/gallery", body)
		req.Header.Set("Content-Type", contentType)
		rr := httptest.NewRecorder()

		handler.CreateGalleryItem(rr, withAdmin(req, "a-1"))

		assert.Equal(t, http.StatusCreated, rr.Code)
		env := decodeEnvelope(t, rr)
		assert.True(t, env.Success)
		assert.Contains(t, string(env.Data), `"id":"g-1"`)
		m.gallery.AssertExpectations(t)
	})

	t.Run("missing image", func(t *testing.T) {
		handler, m := createTestHandler()
		body, contentType := multipartUpload(t, map[string]string{"title": "No file"}, "", nil)

		req := httptest.NewRequest(http.MethodPost, "/api/gallery", body)
		req.Header.Set("Content-Type", contentType)
		rr := httptest.NewRecorder()

		handler.CreateGalleryItem(rr, withAdmin(req, "a-1"))

		assertJSONError(t, rr, http.StatusBadRequest, "Image file is required")
		m.gallery.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("bad display order", func(t *testing.T) {
		handler, _ := createTestHandler()
		body, contentType := multipartUpload(t, map[string]string{"title": "x", "displayOrder": "first"}, "a.png", png)

		req := httptest.NewRequest(http.MethodPost, "/api/gallery", body)
		req.Header.Set("Content-Type", contentType)
		rr := httptest.NewRecorder()

		handler.CreateGalleryItem(rr, withAdmin(req, "a-1"))

		assertJSONError(t, rr, http.StatusBadRequest, "displayOrder must be an integer")
	})

	t.Run("not multipart", func(t *testing.T) {
		handler, _ := createTestHandler()
		req := httptest.NewRequest(http.MethodPost, "/api/gallery", strings.NewReader(`{"title":"x"}`))
		req.Header.Set("Content-Type", "application/json")
		rr := httptest.NewRecorder()

		handler.CreateGalleryItem(rr, withAdmin(req, "a-1"))

		assertJSONError(t, rr, http.StatusBadRequest, "Invalid multipart form")
	})

	t.Run("rejected file type", func(t *testing.T) {
		handler, m := createTestHandler()
		m.gallery.On("Create", mock.Anything, mock.Anything, mock.Anything).
			Return(nil, &service.BlobStoreError{Rejected: true, Err: storage.ErrUnsupportedType})

		body, contentType := multipartUpload(t, map[string]string{"title": "x"}, "a.png", png)
		req := httptest.NewRequest(http.MethodPost, "/api/gallery", body)
		req.Header.Set("Content-Type", contentType)
		rr := httptest.NewRecorder()

		handler.CreateGalleryItem(rr, withAdmin(req, "a-1"))

		assertJSONError(t, rr, http.StatusBadRequest, "Only image files are allowed")
	})

	t.Run("store unavailable", func(t *testing.T) {
		handler, m := createTestHandler()
		m.gallery.On("Create", mock.Anything, mock.Anything, mock.Anything).
			Return(nil, &service.BlobStoreError{Err: errors.New("dial tcp 10.0.0.5:9000: refused")})

		body, contentType := multipartUpload(t, map[string]string{"title": "x"}, "a.png", png)
		req := httptest.NewRequest(http.MethodPost, "/api/gallery", body)
		req.Header.Set("Content-Type", contentType)
		rr := httptest.NewRecorder()

		handler.CreateGalleryItem(rr, withAdmin(req, "a-1"))

		assertJSONError(t, rr, http.StatusInternalServerError, "Failed to store image")
		assert.NotContains(t, rr.Body.String(), "10.0.0.5")
	})

	t.Run("body over the limit", func(t *testing.T) {
		handler, m := createTestHandler()

		body, contentType := multipartUpload(t, map[string]string{"title": "x"}, "a.png", bytes.Repeat([]byte{1}, 3<<20))
		req := httptest.NewRequest(http.MethodPost, "/api/gallery", body)
		req.Header.Set("Content-Type", contentType)
		rr := httptest.NewRecorder()

		handler.CreateGalleryItem(rr, withAdmin(req, "a-1"))

		assertJSONError(t, rr, http.StatusBadRequest, "Image is too large: limit is 1.0 MiB")
		m.gallery.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestUpdateGalleryItemHandler(t *testing.T) {
	t.Run("partial update", func(t *testing.T) {
		handler, m := createTestHandler()
		hidden := false

		m.gallery.On("Update", mock.Anything, "g-1", models.UpdateGalleryItemRequest{IsActive: &hidden}).
			Return(&models.GalleryItem{ItemID: "g-1", IsActive: false}, nil)

		req := httptest.NewRequest(http.MethodPut, "/api/gallery/g-1", strings.NewReader(`{"isActive":false}`))
		req = mux.SetURLVars(req, map[string]string{"id": "g-1"})
		rr := httptest.NewRecorder()

		handler.UpdateGalleryItem(rr, withAdmin(req, "a-1"))

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), `"isActive":false`)
		m.gallery.AssertExpectations(t)
	})

	t.Run("not found", func(t *testing.T) {
		handler, m := createTestHandler()
		m.gallery.On("Update", mock.Anything, "missing", mock.Anything).Return(nil, service.ErrNotFound)

		req := httptest.NewRequest(http.MethodPut, "/api/gallery/missing", strings.NewReader(`{"title":"x"}`))
		req = mux.SetURLVars(req, map[string]string{"id": "missing"})
		rr := httptest.NewRecorder()

		handler.UpdateGalleryItem(rr, withAdmin(req, "a-1"))

		assertJSONError(t, rr, http.StatusNotFound, "Gallery item not found")
	})

	t.Run("validation", func(t *testing.T) {
		handler, m := createTestHandler()
		m.gallery.On("Update", mock.Anything, "g-1", mock.Anything).
			Return(nil, &service.ValidationError{Message: "title must not be empty"})

		req := httptest.NewRequest(http.MethodPut, "/api/gallery/g-1", strings.NewReader(`{"title":""}`))
		req = mux.SetURLVars(req, map[string]string{"id": "g-1"})
		rr := httptest.NewRecorder()

		handler.UpdateGalleryItem(rr, withAdmin(req, "a-1"))

		assertJSONError(t, rr, http.StatusBadRequest, "title must not be empty")
	})
}

func TestDeleteGalleryItemHandler(t *testing.T) {
	handler, m := createTestHandler()
	m.gallery.On("Delete", mock.Anything, "g-1").Return(nil)

	req := mux.SetURLVars(httptest.NewRequest(http.MethodDelete, "/api/gallery/g-1", nil), map[string]string{"id": "g-1"})
	rr := httptest.NewRecorder()

	handler.DeleteGalleryItem(rr, withAdmin(req, "a-1"))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "Gallery item deleted", decodeEnvelope(t, rr).Message)
}
