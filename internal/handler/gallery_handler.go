package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"cateringCMS/internal/models"

	"github.com/dustin/go-humanize"
	"github.com/gorilla/mux"
)

// multipartOverhead leaves room for the text fields next to the image.
const multipartOverhead = 1 << 20

func (h *Handlers) ListGallery(w http.ResponseWriter, r *http.Request) {
	var filter models.GalleryFilter

	switch strings.ToLower(r.URL.Query().Get("status")) {
	case "":
	case "active":
		active := true
		filter.Active = &active
	case "inactive":
		active := false
		filter.Active = &active
	default:
		WriteError(w, "status must be active or inactive", http.StatusBadRequest)
		return
	}

	items, err := h.GalleryService.List(r.Context(), filter)
	if err != nil {
		writeServiceError(w, err, "Gallery item not found")
		return
	}

	writeList(w, items, len(items))
}

func (h *Handlers) GetGalleryItem(w http.ResponseWriter, r *http.Request) {
	item, err := h.GalleryService.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeServiceError(w, err, "Gallery item not found")
		return
	}

	writeData(w, item, "", http.StatusOK)
}

func (h *Handlers) CreateGalleryItem(w http.ResponseWriter, r *http.Request) {
	principal, ok := PrincipalFromContext(r.Context())
	if !ok {
		WriteError(w, "Not authorized", http.StatusUnauthorized)
		return
	}

	maxSize := h.Cfg.MaxUploadSize
	r.Body = http.MaxBytesReader(w, r.Body, maxSize+multipartOverhead)

	if err := r.ParseMultipartForm(maxSize); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			WriteError(w, "Image is too large: limit is "+humanize.IBytes(uint64(maxSize)), http.StatusBadRequest)
			return
		}
		WriteError(w, "Invalid multipart form", http.StatusBadRequest)
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("image")
	if err != nil {
		WriteError(w, "Image file is required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	displayOrder := 0
	if value := strings.TrimSpace(r.FormValue("displayOrder")); value != "" {
		displayOrder, err = strconv.Atoi(value)
		if err != nil {
			WriteError(w, "displayOrder must be an integer", http.StatusBadRequest)
			return
		}
	}

	req := models.CreateGalleryItemRequest{
		Title:        r.FormValue("title"),
		Description:  r.FormValue("description"),
		Category:     r.FormValue("category"),
		DisplayOrder: displayOrder,
		UploaderID:   principal.AdminID,
	}

	upload := models.ImageUpload{
		FileName:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Size:        header.Size,
		Body:        file,
	}

	item, err := h.GalleryService.Create(r.Context(), req, upload)
	if err != nil {
		writeServiceError(w, err, "Gallery item not found")
		return
	}

	writeData(w, item, "Gallery item created", http.StatusCreated)
}

func (h *Handlers) UpdateGalleryItem(w http.ResponseWriter, r *http.Request) {
	var req models.UpdateGalleryItemRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeDecodeError(w, err)
		return
	}

	item, err := h.GalleryService.Update(r.Context(), mux.Vars(r)["id"], req)
	if err != nil {
		writeServiceError(w, err, "Gallery item not found")
		return
	}

	writeData(w, item, "Gallery item updated", http.StatusOK)
}

func (h *Handlers) DeleteGalleryItem(w http.ResponseWriter, r *http.Request) {
	if err := h.GalleryService.Delete(r.Context(), mux.Vars(r)["id"]); err != nil {
		writeServiceError(w, err, "Gallery item not found")
		return
	}

	writeSuccess(w, Response{Success: true, Message: "Gallery item deleted"}, http.StatusOK)
}
