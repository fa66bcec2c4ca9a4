package casbin

import (
	"context"
	"fmt"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
	"github.com/casbin/casbin/v2/persist"

	"github.com/gatehouse-go/gatehouse/internal/authn"
	"github.com/gatehouse-go/gatehouse/policy"
)

// ReasonNoMatchingPolicy labels denials where no stored rule grants the
// actor access to the route.
const ReasonNoMatchingPolicy policy.Reason = "no_matching_policy"

// RoutePolicy authorizes route access through a casbin enforcer: the
// actor's username is the subject, the route path the object, and the
// action the casbin action.
type RoutePolicy struct {
	enforcer casbin.IEnforcer
}

// Authorize reloads stored rules and evaluates the request against them.
func (p *RoutePolicy) Authorize(_ context.Context, action policy.Action, actor *authn.User, route string) (policy.Decision, error) {
	if err := p.enforcer.LoadPolicy(); err != nil {
		return policy.Decision{}, fmt.Errorf("load policy: %w", err)
	}

	ok, err := p.enforcer.Enforce(actor.Username, route, string(action))
	if err != nil {
		return policy.Decision{}, fmt.Errorf("enforce: %w", err)
	}

	if !ok {
		return policy.Deny(ReasonNoMatchingPolicy), nil
	}

	return policy.Allow(), nil
}

// NewRoutePolicy builds an enforcer from the model configuration and the
// rule store, and wraps it as a route policy.
func NewRoutePolicy(config string, store persist.Adapter) (*RoutePolicy, error) {
	m, err := model.NewModelFromString(config)
	if err != nil {
		return nil, fmt.Errorf("parse model: %w", err)
	}

	enforcer, err := casbin.NewEnforcer(m, store)
	if err != nil {
		return nil, fmt.Errorf("new enforcer: %w", err)
	}

	return &RoutePolicy{enforcer: enforcer}, nil
}
