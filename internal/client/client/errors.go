package client

import "errors"

var (
	ErrUnavailable  = errors.New("note service unavailable")
	ErrUnauthorized = errors.New("unauthorized")
	ErrNotFound     = errors.New("note not found")
)
