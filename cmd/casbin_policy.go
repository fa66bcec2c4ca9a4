//go:build casbin

package main

import (
	"fmt"
	"log/slog"
	"os"

	gormadapter "github.com/casbin/gorm-adapter/v3"
	_ "github.com/go-sql-driver/mysql"

	"github.com/gatehouse-go/gatehouse/internal/authn"
	casbinpolicy "github.com/gatehouse-go/gatehouse/internal/policies/casbin"
	"github.com/gatehouse-go/gatehouse/policy"
)

const (
	MysqlUserEnv = "MYSQL_USER"
	MysqlPassEnv = "MYSQL_PASSWORD"
	MysqlHostEnv = "MYSQL_HOST"
	MysqlPortEnv = "MYSQL_PORT"
)

// getConfig returns a string representation of the Casbin configuration model for request, policy, role definitions,
// policy effect, and matchers. Route objects are matched with keyMatch so a
// policy can cover a whole route subtree.
func getConfig() string {
	return `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[role_definition]
g = _, _

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = g(r.sub, p.sub) && keyMatch(r.obj, p.obj) && r.act == p.act
`
}

// getMysqlDSN constructs a MySQL Data Source Name (DSN) from environment variables and returns it as a string.
func getMysqlDSN() string {
	mysqlUser := os.Getenv(MysqlUserEnv)
	mysqlPass := os.Getenv(MysqlPassEnv)
	mysqlHost := os.Getenv(MysqlHostEnv)
	mysqlPort := os.Getenv(MysqlPortEnv)
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/", mysqlUser, mysqlPass, mysqlHost, mysqlPort)
}

// newPolicyStore initializes a new gormadapter.Adapter connected to a MySQL database and adds default policies and grouping.
func newPolicyStore() (*gormadapter.Adapter, error) {
	a, err := gormadapter.NewAdapter("mysql", getMysqlDSN())
	if err != nil {
		return nil, err
	}

	if err := a.AddPolicy("p", "p", []string{"admin", "/api/admin/*", "get"}); err != nil {
		return nil, err
	}

	if err := a.AddPolicy("p", "p", []string{"admin", "/api/admin/*", "delete"}); err != nil {
		return nil, err
	}

	if err := a.AddPolicy("g", "g", []string{"amy", "admin"}); err != nil {
		return nil, err
	}

	return a, nil
}

// newRoutePolicy initializes a route policy enforced by Casbin with the specified logger.
func newRoutePolicy(logger *slog.Logger) (policy.Policy[*authn.User, string], error) {
	logger.Info("initializing route policy with Casbin")

	store, err := newPolicyStore()
	if err != nil {
		return nil, err
	}

	return casbinpolicy.NewRoutePolicy(getConfig(), store)
}
