package service

import "errors"

var (
	ErrEmptyTitle          = errors.New("title is required")
	ErrTaskNotFound        = errors.New("task not found")
	ErrSaveFailed          = errors.New("failed to save tasks")
	ErrBusy                = errors.New("another change is in progress")
	ErrInvalidConfirmation = errors.New("invalid or expired confirmation")
)
