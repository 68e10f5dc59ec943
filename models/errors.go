package models

import "errors"

// ErrDuplicate is returned by stores when a write would violate a unique
// index.
var ErrDuplicate = errors.New("duplicate key")
