package domain

import "errors"

var (
	ErrNotFound       = errors.New("project not found")
	ErrInvalidCatalog = errors.New("invalid catalog")
	ErrInvalidAction  = errors.New("invalid filter action")
)
