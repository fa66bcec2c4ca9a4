package openfga

import (
	"context"
	"fmt"

	fga "github.com/openfga/go-sdk/client"

	"github.com/gatehouse-go/gatehouse/internal/authn"
	"github.com/gatehouse-go/gatehouse/policy"
)

// ReasonPolicyDenied labels denials returned by the OpenFGA store.
const ReasonPolicyDenied policy.Reason = "policy_denied"

// Config holds the OpenFGA connection settings.
type Config struct {
	APIURL  string
	StoreID string
	// ModelID pins the authorization model. Optional, recommended.
	ModelID string
}

// RoutePolicy authorizes route access through an OpenFGA relationship
// check: the actor maps to "user:<name>", the action to the relation, and
// the route path to "route:<path>".
type RoutePolicy struct {
	client *fga.OpenFgaClient
}

// Authorize asks the store whether the actor holds the action relation on
// the route object.
func (p *RoutePolicy) Authorize(ctx context.Context, action policy.Action, actor *authn.User, route string) (policy.Decision, error) {
	resp, err := p.client.Check(ctx).Body(fga.ClientCheckRequest{
		User:     "user:" + actor.Username,
		Relation: string(action),
		Object:   "route:" + route,
	}).Execute()
	if err != nil {
		return policy.Decision{}, fmt.Errorf("check: %w", err)
	}

	if resp.Allowed != nil && *resp.Allowed {
		return policy.Allow(), nil
	}

	return policy.Deny(ReasonPolicyDenied), nil
}

// NewRoutePolicy builds an OpenFGA client for the configured store and
// wraps it as a route policy.
func NewRoutePolicy(cfg Config) (*RoutePolicy, error) {
	conf := &fga.ClientConfiguration{
		ApiUrl:  cfg.APIURL,
		StoreId: cfg.StoreID,
	}

	if cfg.ModelID != "" {
		conf.AuthorizationModelId = cfg.ModelID
	}

	client, err := fga.NewSdkClient(conf)
	if err != nil {
		return nil, fmt.Errorf("new openfga client: %w", err)
	}

	return &RoutePolicy{client: client}, nil
}
