package roleprovider

import (
	"context"
	"fmt"
)

type hardcoded struct {
	users map[string][]string
}

// GetRoles returns the roles configured for the username.
func (p *hardcoded) GetRoles(_ context.Context, username string) ([]string, error) {
	if roles, ok := p.users[username]; ok {
		return roles, nil
	}

	return nil, fmt.Errorf("%w: %s", ErrUserNotFound, username)
}

// NewHardcoded returns a RoleProvider over a fixed username to roles map.
func NewHardcoded(users map[string][]string) RoleProvider {
	return &hardcoded{users: users}
}
