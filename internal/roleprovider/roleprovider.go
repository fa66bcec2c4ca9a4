package roleprovider

import (
	"context"
	"errors"
)

// ErrUserNotFound is returned when no roles are recorded for a username.
var ErrUserNotFound = errors.New("roleprovider: user not found")

// RoleProvider resolves the role names granted to a user. Route policies
// use the roles as policy input.
type RoleProvider interface {
	GetRoles(ctx context.Context, username string) ([]string, error)
}
