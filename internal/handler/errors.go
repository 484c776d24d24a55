package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"cateringCMS/internal/service"
)

// Response is the envelope every endpoint answers with.
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Count   *int        `json:"count,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

// WriteError sends {success:false, message}.
func WriteError(w http.ResponseWriter, message string, statusCode int) {
	writeSuccess(w, Response{Success: false, Message: message}, statusCode)
}

// writeSuccess encodes any payload as JSON.
func writeSuccess(w http.ResponseWriter, data interface{}, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("failed to encode response: %v", err)
	}
}

func writeData(w http.ResponseWriter, data interface{}, message string, statusCode int) {
	writeSuccess(w, Response{Success: true, Message: message, Data: data}, statusCode)
}

func writeList(w http.ResponseWriter, data interface{}, count int) {
	writeSuccess(w, Response{Success: true, Count: &count, Data: data}, http.StatusOK)
}

// writeServiceError maps service errors onto status codes. Anything not in
// the taxonomy is logged and reported as a 500 without detail.
func writeServiceError(w http.ResponseWriter, err error, notFoundMessage string) {
	var validationErr *service.ValidationError
	var blobErr *service.BlobStoreError

	switch {
	case errors.As(err, &validationErr):
		WriteError(w, validationErr.Message, http.StatusBadRequest)
	case errors.Is(err, service.ErrInvalidCredentials):
		WriteError(w, "Invalid credentials", http.StatusUnauthorized)
	case errors.Is(err, service.ErrInvalidToken):
		WriteError(w, "Invalid or expired token", http.StatusUnauthorized)
	case errors.Is(err, service.ErrUnauthorized):
		WriteError(w, "Not authorized", http.StatusUnauthorized)
	case errors.Is(err, service.ErrForbidden):
		WriteError(w, "Insufficient permissions", http.StatusForbidden)
	case errors.Is(err, service.ErrNotFound):
		WriteError(w, notFoundMessage, http.StatusNotFound)
	case errors.Is(err, service.ErrDuplicate):
		WriteError(w, "Resource already exists", http.StatusConflict)
	case errors.As(err, &blobErr):
		if blobErr.Rejected {
			WriteError(w, blobErr.Error(), http.StatusBadRequest)
			return
		}
		log.Printf("blob store error: %v", err)
		WriteError(w, "Failed to store image", http.StatusInternalServerError)
	default:
		log.Printf("internal error: %v", err)
		WriteError(w, "Internal server error", http.StatusInternalServerError)
	}
}

// maxJSONBody caps every JSON request body.
const maxJSONBody = 64 << 10

func decodeJSON(w http.ResponseWriter, r *http.Request, dest interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxJSONBody)
	return json.NewDecoder(r.Body).Decode(dest)
}

func writeDecodeError(w http.ResponseWriter, err error) {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		WriteError(w, "Request body is too large", http.StatusBadRequest)
		return
	}
	WriteError(w, "Invalid request body", http.StatusBadRequest)
}
