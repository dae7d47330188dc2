package store

import "errors"

var (
	ErrNotFound   = errors.New("saved configuration not found")
	ErrIncomplete = errors.New("saved configuration pair incomplete")
	ErrBadName    = errors.New("invalid configuration name")
)
