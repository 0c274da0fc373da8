// internal/services/errors.go
package services

import "errors"

var (
	ErrNotFound           = errors.New("record not found")
	ErrInvalidID          = errors.New("invalid id")
	ErrInvalidCategory    = errors.New("invalid category")
	ErrInvalidCredentials = errors.New("invalid password")
	ErrInvalidImageType   = errors.New("invalid image type")
	ErrFileTooLarge       = errors.New("file too large")
)
