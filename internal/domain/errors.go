package domain

import "errors"

var (
	ErrNotFound         = errors.New("not found")
	ErrDuplicateEmail   = errors.New("email already exists")
	ErrUnauthorized     = errors.New("unauthorized")
	ErrForbidden        = errors.New("forbidden")
	ErrInvalidInput     = errors.New("invalid input")
	ErrGenerationFailed = errors.New("thumbnail generation failed")
	ErrUploadFailed     = errors.New("upload failed")
)
