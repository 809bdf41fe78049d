// Package repository implements persistence for users, profiles and posts
// on top of database/sql. Sentinel errors let the handlers translate
// failures into HTTP responses without inspecting driver errors.
package repository

import (
	"errors"
	"strings"
)

// ErrNotFound is returned when a lookup matches no row.
var ErrNotFound = errors.New("not found")

// ErrEmailExists is returned when registration collides with an existing
// email address. Handlers translate this into a 400 conflict response.
var ErrEmailExists = errors.New("email already exists")

// ErrAlreadyLiked is returned when a user likes a post they already liked.
var ErrAlreadyLiked = errors.New("post already liked")

// ErrNotLiked is returned when a user unlikes a post they never liked.
var ErrNotLiked = errors.New("post not yet liked")

// isDuplicate reports whether err is a MySQL duplicate-key violation (1062).
func isDuplicate(err error) bool {
	return err != nil && strings.Contains(err.Error(), "1062")
}
