package repository

import "errors"

// Sentinel errors shared by all repositories. Services map these onto their
// own fault vocabulary; gorm error values never cross the repository
// boundary.
var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("duplicate record")
)
