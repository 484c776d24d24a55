package repository

import (
	"errors"

	"github.com/lib/pq"
)

// ErrNotFound is returned when the requested row does not exist.
var ErrNotFound = errors.New("not found")

// ErrDuplicate is returned when a unique constraint (admin username) is violated.
var ErrDuplicate = errors.New("already exists")

// ErrPasswordMismatch is returned by VerifyPassword when the hash does not match.
var ErrPasswordMismatch = errors.New("password mismatch")

const uniqueViolation = "23505"

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolation
}
