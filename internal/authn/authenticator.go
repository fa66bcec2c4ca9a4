package authn

import "errors"

// ErrInvalidCredentials is returned when the supplied username or password
// does not match a known user.
var ErrInvalidCredentials = errors.New("invalid credentials")

type User struct {
	Username string `json:"username"`
}

type Authenticator interface {
	Authenticate(username, password string) (*User, error)
}
