// Package repository defines sentinel errors shared across stores so that
// the handler layer can translate failure scenarios into HTTP responses
// with errors.Is instead of string matching.
package repository

import "errors"

// ErrSessionNotFound is returned when a session lookup misses, either
// because the session never existed or because it expired and was purged.
// Handlers translate this into a 404.
var ErrSessionNotFound = errors.New("session not found")

// ErrLayoutNotFound is returned when a layout catalog lookup misses.
// Handlers translate this into a 404.
var ErrLayoutNotFound = errors.New("layout not found")
