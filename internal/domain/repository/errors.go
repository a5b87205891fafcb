package repository

import "errors"

// ErrDuplicateKey is returned by Create when the primary or unique key is taken
var ErrDuplicateKey = errors.New("duplicate key")
