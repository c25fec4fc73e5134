package model

import "errors"

var (
	// ErrNotFound is returned by stores when the requested row does not exist.
	ErrNotFound = errors.New("not found")

	ErrDuplicateUser        = errors.New("user already exists")
	ErrInvalidCredentials   = errors.New("bad credentials")
	ErrUserNotFound         = errors.New("user not found")
	ErrUnauthenticated      = errors.New("authentication required")
	ErrForbidden            = errors.New("forbidden")
	ErrInvalidArgument      = errors.New("invalid argument")
	ErrTagNotFound          = errors.New("tag not found")
	ErrUnsupportedMediaType = errors.New("unsupported media type")
	ErrFileTooLarge         = errors.New("file too large")
	ErrStorage              = errors.New("storage unavailable")
)
