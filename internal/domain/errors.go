package domain

import "errors"

// ErrNotFound is returned by service functions when the requested trip or
// nested entity does not exist in the collection.
// Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned when caller input fails a business rule
// (e.g. missing destination, end date before start date). The store itself
// never validates; the HTTP handlers do before calling it.
// Handlers should map this to HTTP 422 Unprocessable Entity.
var ErrValidation = errors.New("validation error")
