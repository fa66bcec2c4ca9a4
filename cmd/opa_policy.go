//go:build !casbin && !openfga

package main

import (
	"database/sql"
	"log/slog"
	"os"

	_ "github.com/mattn/go-sqlite3"

	"github.com/gatehouse-go/gatehouse/internal/authn"
	opapolicy "github.com/gatehouse-go/gatehouse/internal/policies/opa"
	"github.com/gatehouse-go/gatehouse/internal/roleprovider"
	"github.com/gatehouse-go/gatehouse/policy"
)

const RolesDBEnv = "ROLES_DB"

// getPolicy returns a hardcoded Rego policy that defines role-based access
// rules for the admin routes.
func getPolicy() string {
	return `
package routes

role_permissions := {
    "admin": [
        {"action": "get", "resource": "/api/admin"},
        {"action": "delete", "resource": "/api/admin"},
    ],
}

default allow := false

allow if {
    r := input.roles[_]
    permissions := role_permissions[r]
    p := permissions[_]
    p.action == input.action
    startswith(input.resource, p.resource)
}
`
}

// newRoleProvider reads roles from the SQLite database named by ROLES_DB, or
// falls back to a hardcoded assignment when the variable is unset.
func newRoleProvider(logger *slog.Logger) (roleprovider.RoleProvider, error) {
	if path := os.Getenv(RolesDBEnv); path != "" {
		logger.Info("reading roles from SQLite", "path", path)

		db, err := sql.Open("sqlite3", path)
		if err != nil {
			return nil, err
		}

		return roleprovider.NewSQLite(db), nil
	}

	return roleprovider.NewHardcoded(map[string][]string{
		"amy": {"admin"},
		"bob": {"viewer"},
	}), nil
}

// newRoutePolicy initializes a route policy evaluated by OPA with the specified logger.
func newRoutePolicy(logger *slog.Logger) (policy.Policy[*authn.User, string], error) {
	logger.Info("initializing route policy with OPA")

	roles, err := newRoleProvider(logger)
	if err != nil {
		return nil, err
	}

	return opapolicy.NewRoutePolicy(
		opapolicy.StaticSource(getPolicy()),
		roles,
		"data.routes.allow",
	), nil
}
