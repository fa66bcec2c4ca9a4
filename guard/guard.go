// Package guard provides a request filtering stage for HTTP middleware
// chains. A stage reads the current actor from the request context and
// dispatches to one of two consumer supplied callbacks: one for requests
// without an actor, one for requests with an actor. The callback's verdict
// decides whether the chain continues.
package guard

import (
	"errors"
	"net/http"
)

// Resource tags the group of routes a stage protects, such as
// "admin_routes". Values are opaque labels compared by identity.
type Resource string

var (
	// ErrMissingResource is returned by New when the configuration carries
	// no resource tag.
	ErrMissingResource = errors.New("guard: resource is required")

	// ErrNilHandler is returned by New when no handler is supplied.
	ErrNilHandler = errors.New("guard: handler is required")

	// ErrUnauthenticated is a canonical halt verdict for callbacks that
	// reject a request without an actor.
	ErrUnauthenticated = errors.New("guard: no actor present")

	// ErrForbidden is a canonical halt verdict for callbacks that reject an
	// actor's request.
	ErrForbidden = errors.New("guard: actor is not allowed")
)

// Handler supplies the two outcomes of a stage dispatch. Exactly one
// callback runs per request.
//
// A callback returns nil to let the request continue down the chain. Any
// non-nil error is a halt verdict: the callback has already written the
// terminal response and the chain stops. The stage never inspects what was
// written and never writes anything itself, so status codes, bodies, and
// logging are entirely in the callback's hands.
type Handler interface {
	// HandleAuthenticationError is invoked when the request carries no
	// actor.
	HandleAuthenticationError(w http.ResponseWriter, r *http.Request, resource Resource) error

	// HandleAuthorization is invoked when the request carries an actor. The
	// implementation decides allow or deny, typically by delegating to a
	// policy.
	HandleAuthorization(w http.ResponseWriter, r *http.Request, actor any, resource Resource) error
}

// HandlerFuncs wires plain functions into a Handler. A nil field falls back
// to the corresponding DefaultHandler callback, which fails closed.
type HandlerFuncs struct {
	OnAuthenticationError func(w http.ResponseWriter, r *http.Request, resource Resource) error
	OnAuthorization       func(w http.ResponseWriter, r *http.Request, actor any, resource Resource) error
}

// HandleAuthenticationError calls OnAuthenticationError.
func (h HandlerFuncs) HandleAuthenticationError(w http.ResponseWriter, r *http.Request, resource Resource) error {
	if h.OnAuthenticationError == nil {
		return DefaultHandler{}.HandleAuthenticationError(w, r, resource)
	}

	return h.OnAuthenticationError(w, r, resource)
}

// HandleAuthorization calls OnAuthorization.
func (h HandlerFuncs) HandleAuthorization(w http.ResponseWriter, r *http.Request, actor any, resource Resource) error {
	if h.OnAuthorization == nil {
		return DefaultHandler{}.HandleAuthorization(w, r, actor, resource)
	}

	return h.OnAuthorization(w, r, actor, resource)
}

// Config holds the recognized stage options.
type Config struct {
	// Resource tags the route group the stage guards. Required.
	Resource Resource
}

// Stage is a request filtering stage bound to one handler and one resource
// tag. Stages hold no per-request state and are safe for concurrent use.
type Stage struct {
	handler  Handler
	resource Resource
}

// New validates the configuration and returns a stage. A missing resource
// tag or a nil handler fails here, at registration time; requests never see
// configuration errors.
func New(h Handler, cfg Config) (*Stage, error) {
	if h == nil {
		return nil, ErrNilHandler
	}

	if cfg.Resource == "" {
		return nil, ErrMissingResource
	}

	return &Stage{handler: h, resource: cfg.Resource}, nil
}

// MustNew is New for wiring code; it panics instead of returning an error.
func MustNew(h Handler, cfg Config) *Stage {
	s, err := New(h, cfg)
	if err != nil {
		panic(err)
	}

	return s
}

// Resource returns the tag the stage was configured with.
func (s *Stage) Resource() Resource {
	return s.resource
}

// Dispatch runs the single per-request step: requests without an actor go
// to HandleAuthenticationError, requests with an actor go to
// HandleAuthorization, and the callback's verdict is returned verbatim.
// Dispatch has no failure path of its own.
func (s *Stage) Dispatch(w http.ResponseWriter, r *http.Request) error {
	if actor, ok := ActorFromRequest(r); ok {
		return s.handler.HandleAuthorization(w, r, actor, s.resource)
	}

	return s.handler.HandleAuthenticationError(w, r, s.resource)
}

// Handle wraps next with the stage. A nil verdict passes the request
// through; a non-nil verdict stops the chain, leaving the response the
// callback wrote as the terminal one.
func (s *Stage) Handle(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := s.Dispatch(w, r); err != nil {
			return
		}

		next.ServeHTTP(w, r)
	})
}
