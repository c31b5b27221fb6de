// Package blob opens named data files from local disk, HTTP, S3-compatible
// object stores or memory.
package blob

import "errors"

// ErrNotFound is returned when a named blob does not exist.
var ErrNotFound = errors.New("blob not found")
