package guard

import (
	"encoding/json"
	"net/http"
)

const (
	unauthenticatedMessage = "unauthenticated"
	forbiddenMessage       = "forbidden"
)

// DefaultHandler is a fail closed Handler: requests without an actor get a
// 401 JSON response and every authorization check gets a 403 JSON response.
// Embed it in a consumer handler and override the callback that needs real
// policy, keeping the other default.
type DefaultHandler struct{}

// HandleAuthenticationError answers 401 and halts.
func (DefaultHandler) HandleAuthenticationError(w http.ResponseWriter, _ *http.Request, _ Resource) error {
	writeJSONError(w, http.StatusUnauthorized, unauthenticatedMessage)
	return ErrUnauthenticated
}

// HandleAuthorization answers 403 and halts.
func (DefaultHandler) HandleAuthorization(w http.ResponseWriter, _ *http.Request, _ any, _ Resource) error {
	writeJSONError(w, http.StatusForbidden, forbiddenMessage)
	return ErrForbidden
}

func writeJSONError(w http.ResponseWriter, statusCode int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}
