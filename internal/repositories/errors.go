package repositories

import "errors"

// ErrNotFound is returned when an id or slug matches no row. Handlers
// translate it to a 404; everything else is a backend failure.
var ErrNotFound = errors.New("record not found")
