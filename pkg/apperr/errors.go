// Package apperr holds the error kinds shared by services and controllers.
package apperr

import "errors"

var (
	ErrValidation  = errors.New("validation failed")
	ErrNotFound    = errors.New("not found")
	ErrUnavailable = errors.New("dependency unavailable")
)
