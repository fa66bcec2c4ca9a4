package policy

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// AllOf combines policies into one that allows an action only when every
// member allows it. Members are evaluated concurrently; when several deny,
// the denial of the member listed first is returned. The first error
// observed cancels the remaining evaluations and is returned as the
// combined result. An empty AllOf allows everything.
func AllOf[A, R any](policies ...Policy[A, R]) Policy[A, R] {
	return PolicyFunc[A, R](func(ctx context.Context, action Action, actor A, resource R) (Decision, error) {
		decisions, err := evaluate(ctx, policies, action, actor, resource)
		if err != nil {
			return Decision{}, err
		}

		for _, d := range decisions {
			if d.Denied() {
				return d, nil
			}
		}

		return Allow(), nil
	})
}

// AnyOf combines policies into one that allows an action when at least one
// member allows it. Members are evaluated concurrently; when every member
// denies, the denial of the member listed first is returned. The first
// error observed cancels the remaining evaluations and is returned as the
// combined result. An empty AnyOf denies everything.
func AnyOf[A, R any](policies ...Policy[A, R]) Policy[A, R] {
	return PolicyFunc[A, R](func(ctx context.Context, action Action, actor A, resource R) (Decision, error) {
		decisions, err := evaluate(ctx, policies, action, actor, resource)
		if err != nil {
			return Decision{}, err
		}

		for _, d := range decisions {
			if d.Allowed() {
				return Allow(), nil
			}
		}

		if len(decisions) == 0 {
			return Deny(""), nil
		}

		return decisions[0], nil
	})
}

// evaluate runs every policy concurrently and collects decisions in member
// order.
func evaluate[A, R any](
	ctx context.Context,
	policies []Policy[A, R],
	action Action,
	actor A,
	resource R,
) ([]Decision, error) {
	decisions := make([]Decision, len(policies))
	g, ctx := errgroup.WithContext(ctx)

	for i, p := range policies {
		g.Go(func() error {
			d, err := p.Authorize(ctx, action, actor, resource)
			if err != nil {
				return err
			}

			decisions[i] = d
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return decisions, nil
}
