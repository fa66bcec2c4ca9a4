package roleprovider

import (
	"context"
	"database/sql"
	"fmt"
)

// SQLite resolves roles from a user_roles(username, role) table. The caller
// owns the database handle; tests and the API binary open it with the
// sqlite3 driver.
type SQLite struct {
	db *sql.DB
}

// GetRoles returns the roles stored for the username. A user with no rows
// is treated as unknown.
func (p *SQLite) GetRoles(ctx context.Context, username string) ([]string, error) {
	rows, err := p.db.QueryContext(ctx, "SELECT role FROM user_roles WHERE username = ?", username)
	if err != nil {
		return nil, fmt.Errorf("query roles for %s: %w", username, err)
	}
	defer func() { _ = rows.Close() }()

	var roles []string
	for rows.Next() {
		var role string
		if err := rows.Scan(&role); err != nil {
			return nil, fmt.Errorf("scan role for %s: %w", username, err)
		}

		roles = append(roles, role)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read roles for %s: %w", username, err)
	}

	if len(roles) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrUserNotFound, username)
	}

	return roles, nil
}

// NewSQLite returns a RoleProvider over the given database handle.
func NewSQLite(db *sql.DB) *SQLite {
	return &SQLite{db: db}
}
