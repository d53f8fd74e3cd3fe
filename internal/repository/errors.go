// Package repository contains the data access layer. This file defines
// the sentinel errors shared across repositories so handlers can map
// failure scenarios to HTTP responses with errors.Is instead of string
// matching.
package repository

import "errors"

// ErrUserExists is returned when an insert would violate the username
// uniqueness constraint. Handlers translate this into HTTP 409.
var ErrUserExists = errors.New("username already exists")

// ErrUserNotFound is returned when a user lookup matches no row.
var ErrUserNotFound = errors.New("user not found")

// ErrSongNotFound is returned when a song id matches no row, both on
// direct lookups and when a setlist references a missing song at
// creation time. Handlers translate this into HTTP 404.
var ErrSongNotFound = errors.New("song not found")

// ErrSetlistNotFound is returned when a setlist lookup matches no row.
var ErrSetlistNotFound = errors.New("setlist not found")

// ErrForbidden is returned when the caller attempts an operation on a
// setlist owned by someone else. Handlers translate this into HTTP 403.
var ErrForbidden = errors.New("forbidden")
