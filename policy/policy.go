package policy

import (
	"context"
	"fmt"
)

// Action identifies the operation an actor attempts on a resource, such as
// "edit_post" or "delete". Values are opaque labels compared by identity.
type Action string

// Reason is a short symbolic label a policy attaches to a denial, such as
// "not_owner" or "unauthenticated".
type Reason string

// Decision represents the outcome of an authorization check. It takes exactly
// two shapes: allowed, built with Allow, and denied with a reason, built with
// Deny. Decisions are comparable values; the zero value is a denial with an
// empty reason.
type Decision struct {
	allowed bool
	reason  Reason
}

// Allow returns the allowed decision.
func Allow() Decision {
	return Decision{allowed: true}
}

// Deny returns a denied decision carrying the given reason.
func Deny(reason Reason) Decision {
	return Decision{reason: reason}
}

// Allowed reports whether the decision permits the action.
func (d Decision) Allowed() bool {
	return d.allowed
}

// Denied reports whether the decision refuses the action.
func (d Decision) Denied() bool {
	return !d.allowed
}

// Reason returns the denial reason. Allowed decisions have an empty reason.
func (d Decision) Reason() Reason {
	return d.reason
}

// String returns a human readable form of the decision.
func (d Decision) String() string {
	switch {
	case d.allowed:
		return "allowed"
	case d.reason == "":
		return "denied"
	default:
		return fmt.Sprintf("denied (%s)", d.reason)
	}
}

// Policy decides whether an actor may perform an action on a resource.
//
// Expected refusals are normal Deny results, never errors. The error return
// is reserved for faults the policy cannot decide through, such as an
// unreachable backend. Implementations must not keep state across calls and
// must be safe for concurrent use.
type Policy[A, R any] interface {
	Authorize(ctx context.Context, action Action, actor A, resource R) (Decision, error)
}

// PolicyFunc adapts a plain function to the Policy interface.
type PolicyFunc[A, R any] func(ctx context.Context, action Action, actor A, resource R) (Decision, error)

// Authorize calls f.
func (f PolicyFunc[A, R]) Authorize(ctx context.Context, action Action, actor A, resource R) (Decision, error) {
	return f(ctx, action, actor, resource)
}

// Authorized is the boolean projection of a policy check: it reports whether
// p allowed the action. Denials of any reason report false, as do errors, so
// gating code fails closed.
func Authorized[A, R any](ctx context.Context, p Policy[A, R], action Action, actor A, resource R) bool {
	d, err := p.Authorize(ctx, action, actor, resource)
	return err == nil && d.Allowed()
}
