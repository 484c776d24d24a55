package storage

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/gabriel-vasile/mimetype"
)

var (
	ErrUnsupportedType = errors.New("Only image files are allowed (jpeg, png, gif, webp)")
	ErrFileTooLarge    = errors.New("Image is too large")
	ErrEmptyFile       = errors.New("Image file is empty")
)

// sniffLen matches what mimetype needs for the image signatures we accept.
const sniffLen = 512

var allowedExtensions = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".gif":  "image/gif",
	".webp": "image/webp",
}

// ValidateImage checks the extension, the declared size and the sniffed
// content of an upload. It returns the detected content type and a reader
// that still yields the whole file.
func ValidateImage(fileName string, size int64, body io.Reader, maxSize int64) (string, io.Reader, error) {
	ext := strings.ToLower(filepath.Ext(fileName))
	if _, ok := allowedExtensions[ext]; !ok {
		return "", nil, ErrUnsupportedType
	}

	if maxSize > 0 && size > maxSize {
		return "", nil, fmt.Errorf("%w: limit is %s", ErrFileTooLarge, humanize.IBytes(uint64(maxSize)))
	}

	head := make([]byte, sniffLen)
	n, err := io.ReadFull(body, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return "", nil, fmt.Errorf("failed to read upload: %w", err)
	}
	if n == 0 {
		return "", nil, ErrEmptyFile
	}
	head = head[:n]

	detected := mimetype.Detect(head)
	contentType := ""
	for _, allowed := range allowedExtensions {
		if detected.Is(allowed) {
			contentType = allowed
			break
		}
	}
	if contentType == "" {
		return "", nil, ErrUnsupportedType
	}

	return contentType, io.MultiReader(bytes.NewReader(head), body), nil
}

// IsPolicyError reports whether err is a rejection of the file itself rather
// than a failure of the store.
func IsPolicyError(err error) bool {
	return errors.Is(err, ErrUnsupportedType) || errors.Is(err, ErrFileTooLarge) || errors.Is(err, ErrEmptyFile)
}
