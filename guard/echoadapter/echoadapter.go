// Package echoadapter exposes the guard dispatch semantics as echo
// middleware.
package echoadapter

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/gatehouse-go/gatehouse/guard"
)

// Handler supplies the two outcomes of a stage dispatch over an echo
// context. Exactly one callback runs per request.
//
// A callback halts the chain either by committing a response (for example
// through c.JSON) or by returning a non-nil error for echo's error handler
// to render. Returning nil without committing lets the request continue.
type Handler interface {
	// HandleAuthenticationError is invoked when the request carries no
	// actor.
	HandleAuthenticationError(c echo.Context, resource guard.Resource) error

	// HandleAuthorization is invoked when the request carries an actor.
	HandleAuthorization(c echo.Context, actor any, resource guard.Resource) error
}

// HandlerFuncs wires plain functions into a Handler. A nil field falls back
// to the corresponding DefaultHandler callback, which fails closed.
type HandlerFuncs struct {
	OnAuthenticationError func(c echo.Context, resource guard.Resource) error
	OnAuthorization       func(c echo.Context, actor any, resource guard.Resource) error
}

// HandleAuthenticationError calls OnAuthenticationError.
func (h HandlerFuncs) HandleAuthenticationError(c echo.Context, resource guard.Resource) error {
	if h.OnAuthenticationError == nil {
		return DefaultHandler{}.HandleAuthenticationError(c, resource)
	}

	return h.OnAuthenticationError(c, resource)
}

// HandleAuthorization calls OnAuthorization.
func (h HandlerFuncs) HandleAuthorization(c echo.Context, actor any, resource guard.Resource) error {
	if h.OnAuthorization == nil {
		return DefaultHandler{}.HandleAuthorization(c, actor, resource)
	}

	return h.OnAuthorization(c, actor, resource)
}

// DefaultHandler is a fail closed Handler: requests without an actor get a
// 401 JSON response and every authorization check gets a 403 JSON response.
type DefaultHandler struct{}

// HandleAuthenticationError answers 401.
func (DefaultHandler) HandleAuthenticationError(c echo.Context, _ guard.Resource) error {
	return c.JSON(http.StatusUnauthorized, map[string]string{"error": "unauthenticated"})
}

// HandleAuthorization answers 403.
func (DefaultHandler) HandleAuthorization(c echo.Context, _ any, _ guard.Resource) error {
	return c.JSON(http.StatusForbidden, map[string]string{"error": "forbidden"})
}

// Stage is the echo counterpart of guard.Stage: one handler, one resource
// tag, no per-request state.
type Stage struct {
	handler  Handler
	resource guard.Resource
}

// New validates the configuration and returns a stage. It shares the guard
// package's registration time errors.
func New(h Handler, cfg guard.Config) (*Stage, error) {
	if h == nil {
		return nil, guard.ErrNilHandler
	}

	if cfg.Resource == "" {
		return nil, guard.ErrMissingResource
	}

	return &Stage{handler: h, resource: cfg.Resource}, nil
}

// MustNew is New for wiring code; it panics instead of returning an error.
func MustNew(h Handler, cfg guard.Config) *Stage {
	s, err := New(h, cfg)
	if err != nil {
		panic(err)
	}

	return s
}

// Resource returns the tag the stage was configured with.
func (s *Stage) Resource() guard.Resource {
	return s.resource
}

// Dispatch routes the request to exactly one callback and returns its
// verdict verbatim.
func (s *Stage) Dispatch(c echo.Context) error {
	if actor, ok := Actor(c); ok {
		return s.handler.HandleAuthorization(c, actor, s.resource)
	}

	return s.handler.HandleAuthenticationError(c, s.resource)
}

// Middleware returns the stage as echo middleware. A callback error is
// handed to echo; a committed response stops the chain; otherwise the next
// handler runs.
func (s *Stage) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if err := s.Dispatch(c); err != nil {
				return err
			}

			if c.Response().Committed {
				return nil
			}

			return next(c)
		}
	}
}
