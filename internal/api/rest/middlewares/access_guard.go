package middlewares

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gatehouse-go/gatehouse/guard"
	"github.com/gatehouse-go/gatehouse/internal/api/rest/response"
	"github.com/gatehouse-go/gatehouse/internal/authn"
	"github.com/gatehouse-go/gatehouse/policy"
)

const (
	authenticationRequiredMessage = "authentication required"
	forbiddenMessage              = "forbidden"
	internalServerErrorMessage    = "internal server error"
)

// AccessGuardHandler admits or rejects requests reaching a guard stage. It
// rejects requests without an actor and consults a route policy for the rest,
// using the lowercased request method as the action and the request path as
// the resource.
type AccessGuardHandler struct {
	policy policy.Policy[*authn.User, string]
	logger *slog.Logger
}

// HandleAuthenticationError rejects requests that reached the guard without an actor.
func (h *AccessGuardHandler) HandleAuthenticationError(w http.ResponseWriter, r *http.Request, resource guard.Resource) error {
	h.logger.WarnContext(
		r.Context(),
		"unauthenticated request rejected",
		"resource", string(resource),
		"path", r.URL.Path,
	)
	response.JSONErrorResponse(w, http.StatusUnauthorized, authenticationRequiredMessage)

	return guard.ErrUnauthenticated
}

// HandleAuthorization admits the request when the route policy allows the
// actor to perform the request method on the request path.
func (h *AccessGuardHandler) HandleAuthorization(w http.ResponseWriter, r *http.Request, actor any, resource guard.Resource) error {
	user, ok := actor.(*authn.User)
	if !ok {
		h.logger.ErrorContext(r.Context(), "unexpected actor type", "actor", fmt.Sprintf("%T", actor))
		response.JSONErrorResponse(w, http.StatusInternalServerError, internalServerErrorMessage)

		return fmt.Errorf("middlewares: unexpected actor type %T", actor)
	}

	decision, err := h.policy.Authorize(
		r.Context(),
		policy.Action(strings.ToLower(r.Method)),
		user,
		r.URL.Path,
	)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "failed to evaluate route policy", "error", err)
		response.JSONErrorResponse(w, http.StatusForbidden, forbiddenMessage)

		return guard.ErrForbidden
	}

	if !decision.Allowed() {
		h.logger.InfoContext(
			r.Context(),
			"request denied",
			"username", user.Username,
			"resource", string(resource),
			"path", r.URL.Path,
			"reason", string(decision.Reason()),
		)
		response.JSONDenialResponse(w, http.StatusForbidden, forbiddenMessage, decision)

		return guard.ErrForbidden
	}

	return nil
}

// NewAccessGuardHandler creates a guard handler backed by the given route policy.
func NewAccessGuardHandler(p policy.Policy[*authn.User, string], logger *slog.Logger) guard.Handler {
	return &AccessGuardHandler{
		policy: p,
		logger: logger,
	}
}
