package service

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"cateringCMS/internal/repository"

	"github.com/go-playground/validator/v10"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrUnauthorized       = errors.New("not authorized")
	ErrForbidden          = errors.New("insufficient permissions")
	ErrBlobStore          = errors.New("blob store error")

	ErrNotFound  = repository.ErrNotFound
	ErrDuplicate = repository.ErrDuplicate
)

// ValidationError carries a message that is safe to return to the client.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func invalid(format string, args ...any) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// BlobStoreError wraps a blob store failure. Rejected is set when the file
// itself was refused (type, size), as opposed to the store being unavailable.
type BlobStoreError struct {
	Rejected bool
	Err      error
}

func (e *BlobStoreError) Error() string {
	return e.Err.Error()
}

func (e *BlobStoreError) Unwrap() error {
	return e.Err
}

func (e *BlobStoreError) Is(target error) bool {
	return target == ErrBlobStore
}

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})
	return v
}

// validationError turns the first validator failure into a ValidationError.
func validationError(err error) error {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return &ValidationError{Message: "Invalid request"}
	}

	fe := fieldErrs[0]
	switch fe.Tag() {
	case "required":
		return invalid("%s is required", fe.Field())
	case "max":
		return invalid("%s must be at most %s characters", fe.Field(), fe.Param())
	case "min":
		return invalid("%s must be at least %s characters", fe.Field(), fe.Param())
	case "oneof":
		return invalid("%s must be one of: %s", fe.Field(), strings.ReplaceAll(fe.Param(), " ", ", "))
	case "email":
		return invalid("%s must be a valid email address", fe.Field())
	default:
		return invalid("%s is invalid", fe.Field())
	}
}
