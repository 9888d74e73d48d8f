// Package storage declares errors shared by all storage backends.
package storage

import "github.com/go-faster/errors"

// ErrUnavailable is returned when the storage engine cannot be reached.
// Callers degrade reads to an empty result; writes must surface this error
// to the caller instead of silently no-opping.
var ErrUnavailable = errors.New("storage unavailable")
