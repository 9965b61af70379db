package domain

import "errors"

var (
	ErrInvalidInput  = errors.New("invalid input")
	ErrNotFound      = errors.New("resource not found")
	ErrNotConfigured = errors.New("dependency not configured")
	ErrUpstream      = errors.New("upstream failure")
)
