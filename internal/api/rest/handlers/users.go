package handlers

import (
	"log/slog"
	"net/http"
	"slices"
	"strings"
	"sync"

	"github.com/gatehouse-go/gatehouse/internal/api/rest/response"
)

const userNotFoundMessage = "user not found"

// User represents a directory entry exposed by the admin API.
type User struct {
	Username string   `json:"username"`
	Roles    []string `json:"roles"`
}

// UserDirectory is an in-memory user store safe for concurrent use.
type UserDirectory struct {
	mu    sync.RWMutex
	users map[string]User
}

// NewUserDirectory creates a directory seeded with the given users.
func NewUserDirectory(users ...User) *UserDirectory {
	m := make(map[string]User, len(users))
	for _, u := range users {
		m[u.Username] = u
	}

	return &UserDirectory{users: m}
}

// List returns all users sorted by username.
func (d *UserDirectory) List() []User {
	d.mu.RLock()
	defer d.mu.RUnlock()

	users := make([]User, 0, len(d.users))
	for _, u := range d.users {
		users = append(users, u)
	}

	slices.SortFunc(users, func(a, b User) int {
		return strings.Compare(a.Username, b.Username)
	})

	return users
}

// Remove deletes the named user and reports whether it was present.
func (d *UserDirectory) Remove(username string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	_, ok := d.users[username]
	delete(d.users, username)

	return ok
}

// ListUsersHandler serves the user directory via HTTP in JSON format.
type ListUsersHandler struct {
	directory *UserDirectory
}

// ServeHTTP handles HTTP requests by responding with a JSON representation of the directory.
func (h *ListUsersHandler) ServeHTTP(w http.ResponseWriter, _ *http.Request) {
	response.JSONResponse(w, http.StatusOK, map[string]any{"data": h.directory.List()})
}

// NewListUsersHandler creates a new HTTP handler that serves the user directory.
func NewListUsersHandler(directory *UserDirectory) http.Handler {
	return &ListUsersHandler{directory: directory}
}

// DeleteUserHandler removes the user identified by the username path value.
type DeleteUserHandler struct {
	directory *UserDirectory
	logger    *slog.Logger
}

// ServeHTTP handles HTTP requests by removing the named user from the directory.
func (h *DeleteUserHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	username := r.PathValue("username")
	if !h.directory.Remove(username) {
		response.JSONErrorResponse(w, http.StatusNotFound, userNotFoundMessage)
		return
	}

	h.logger.InfoContext(r.Context(), "user removed", "username", username)
	w.WriteHeader(http.StatusNoContent)
}

// NewDeleteUserHandler creates a new HTTP handler that removes users from the directory.
func NewDeleteUserHandler(directory *UserDirectory, logger *slog.Logger) http.Handler {
	return &DeleteUserHandler{directory: directory, logger: logger}
}
