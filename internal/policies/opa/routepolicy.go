package opa

import (
	"context"
	"errors"
	"fmt"

	"github.com/open-policy-agent/opa/v1/rego"

	"github.com/gatehouse-go/gatehouse/internal/authn"
	"github.com/gatehouse-go/gatehouse/internal/roleprovider"
	"github.com/gatehouse-go/gatehouse/policy"
)

const moduleName = "routepolicy"

// ReasonPolicyDenied labels denials produced by the rego policy.
const ReasonPolicyDenied policy.Reason = "policy_denied"

// RoutePolicy authorizes route access by evaluating a rego module against
// the actor's roles, the action, and the route path.
type RoutePolicy struct {
	source Source
	roles  roleprovider.RoleProvider
	query  string
}

// Authorize loads the module, resolves the actor's roles, and evaluates the
// configured query. The query must produce a single boolean.
func (p *RoutePolicy) Authorize(ctx context.Context, action policy.Action, actor *authn.User, route string) (policy.Decision, error) {
	module, err := p.source.Load(ctx)
	if err != nil {
		return policy.Decision{}, fmt.Errorf("load policy: %w", err)
	}

	query, err := rego.New(rego.Module(moduleName, module), rego.Query(p.query)).PrepareForEval(ctx)
	if err != nil {
		return policy.Decision{}, fmt.Errorf("prepare query: %w", err)
	}

	roles, err := p.roles.GetRoles(ctx, actor.Username)
	if err != nil {
		return policy.Decision{}, fmt.Errorf("get roles: %w", err)
	}

	results, err := query.Eval(ctx, rego.EvalInput(map[string]any{
		"roles":    roles,
		"action":   string(action),
		"resource": route,
	}))
	if err != nil {
		return policy.Decision{}, fmt.Errorf("evaluate query: %w", err)
	}

	if len(results) == 0 || len(results[0].Expressions) == 0 {
		return policy.Decision{}, errors.New("no evaluation result")
	}

	allowed, ok := results[0].Expressions[0].Value.(bool)
	if !ok {
		return policy.Decision{}, fmt.Errorf("unexpected evaluation result type %T", results[0].Expressions[0].Value)
	}

	if !allowed {
		return policy.Deny(ReasonPolicyDenied), nil
	}

	return policy.Allow(), nil
}

// NewRoutePolicy wires a rego source, a role provider, and the query to
// evaluate, such as "data.routes.allow".
func NewRoutePolicy(source Source, roles roleprovider.RoleProvider, query string) *RoutePolicy {
	return &RoutePolicy{
		source: source,
		roles:  roles,
		query:  query,
	}
}
