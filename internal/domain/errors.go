package domain

import "errors"

var (
	ErrNotFound      = errors.New("not found")
	ErrMissingField  = errors.New("missing required field")
	ErrQuotaExceeded = errors.New("generation quota exceeded")
	ErrPersistence   = errors.New("persistence failure")
)
