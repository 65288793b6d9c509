package service

import "errors"

var (
	ErrNotFound            = errors.New("not found")
	ErrPrerequisiteMissing = errors.New("prerequisite missing")
	ErrInvalidInput        = errors.New("invalid input")
	ErrConflict            = errors.New("conflict")
	ErrPermissionDenied    = errors.New("permission denied")
)
