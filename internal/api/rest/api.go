package rest

import (
	"net/http"

	"github.com/gatehouse-go/gatehouse/guard"
	"github.com/gatehouse-go/gatehouse/internal/api/rest/middlewares"
)

type RouterConfig struct {
	SignInHandler     http.Handler
	UserListHandler   http.Handler
	UserDeleteHandler http.Handler
	Authentication    middlewares.Middleware
	Guard             *guard.Stage
}

// NewMuxWithHandlers initializes a new HTTP mux with routes defined by the given RouterConfig.
// Admin routes run behind the authentication middleware and the guard stage.
func NewMuxWithHandlers(cfg *RouterConfig) *http.ServeMux {
	router := http.NewServeMux()

	protect := func(h http.Handler) http.Handler {
		return cfg.Authentication.Handle(cfg.Guard.Handle(h))
	}

	router.Handle("POST /auth/signin", cfg.SignInHandler)
	router.Handle("GET /api/admin/users", protect(cfg.UserListHandler))
	router.Handle("DELETE /api/admin/users/{username}", protect(cfg.UserDeleteHandler))

	return router
}
