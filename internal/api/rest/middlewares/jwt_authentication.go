package middlewares

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/gatehouse-go/gatehouse/guard"
	"github.com/gatehouse-go/gatehouse/internal/authn"
	"github.com/gatehouse-go/gatehouse/internal/keyfetcher"
)

// JWTAuthenticationMiddleware validates Bearer tokens and attaches the
// authenticated user to the request context. Requests that fail
// authentication continue without an actor, leaving the rejection to a
// downstream guard stage.
type JWTAuthenticationMiddleware struct {
	publicKeyFetcher keyfetcher.PublicKeyFetcher
	logger           *slog.Logger
}

// Handle processes incoming HTTP requests, resolving the actor from the JWT subject claim.
func (m *JWTAuthenticationMiddleware) Handle(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, err := m.authenticate(r)
		if err != nil {
			m.logger.WarnContext(r.Context(), "request is not authenticated", "error", err)
			next.ServeHTTP(w, r)
			return
		}

		next.ServeHTTP(w, guard.WithActor(r, user))
	})
}

func (m *JWTAuthenticationMiddleware) authenticate(r *http.Request) (*authn.User, error) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return nil, errors.New("authorization header missing")
	}

	token, err := extractToken(authHeader)
	if err != nil {
		return nil, err
	}

	publicKey, err := m.publicKeyFetcher.FetchPublicKey()
	if err != nil {
		return nil, fmt.Errorf("fetch public key: %w", err)
	}

	claims := new(jwt.MapClaims)
	_, err = jwt.ParseWithClaims(
		token,
		claims,
		func(_ *jwt.Token) (any, error) { return publicKey, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodEdDSA.Alg()}),
	)
	if err != nil {
		return nil, fmt.Errorf("parse token: %w", err)
	}

	sub, err := claims.GetSubject()
	if sub == "" || err != nil {
		return nil, errors.New("subject claim missing")
	}

	return &authn.User{Username: sub}, nil
}

// extractToken extracts a Bearer token from the Authorization header.
// Returns the extracted token or an error if the header format is invalid.
func extractToken(authHeader string) (string, error) {
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
		return "", errors.New("invalid authorization header format")
	}

	return parts[1], nil
}

// NewJWTAuthenticationMiddleware returns a new instance of JWTAuthenticationMiddleware
// with the given public key fetcher.
func NewJWTAuthenticationMiddleware(
	publicKeyFetcher keyfetcher.PublicKeyFetcher,
	logger *slog.Logger,
) Middleware {
	return &JWTAuthenticationMiddleware{
		publicKeyFetcher: publicKeyFetcher,
		logger:           logger,
	}
}
