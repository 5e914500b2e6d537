package service

import "errors"

var (
	ErrEmptyText             = errors.New("text must not be empty")
	ErrEmptyResource         = errors.New("resource has no content to analyze")
	ErrPasswordNotConfigured = errors.New("APP_PASSWORD is not configured")
	ErrInvalidPassword       = errors.New("invalid password")
	ErrInvalidSession        = errors.New("invalid or expired session")
)
