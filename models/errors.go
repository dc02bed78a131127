package models

import "errors"

var (
	ErrDuplicateEmail    = errors.New("account with this email already exists")
	ErrNoSuchAccount     = errors.New("no account associated with this email")
	ErrInvalidCredential = errors.New("incorrect password")
	ErrForbidden         = errors.New("forbidden")
	ErrNotFound          = errors.New("not found")
	ErrDuplicateTitle    = errors.New("post with this title already exists")
	ErrUnauthenticated   = errors.New("authentication required")
	ErrStoreUnavailable  = errors.New("store unavailable")
	ErrInvalidComment    = errors.New("comment is too long or empty")
)
