package keyfetcher

import (
	"crypto/ed25519"
	"encoding/base64"
	"errors"
	"fmt"
	"os"

	"github.com/golang-jwt/jwt/v5"
)

type PublicKeyFetcher interface {
	FetchPublicKey() (ed25519.PublicKey, error)
}

type PrivateKeyFetcher interface {
	FetchPrivateKey() (ed25519.PrivateKey, error)
}

// From is a type definition for a function that returns a byte slice and an error.
type From func() ([]byte, error)

// FetchPublicKey parses the loaded key as an Ed25519 public key.
func (f From) FetchPublicKey() (ed25519.PublicKey, error) {
	keyBytes, err := f()
	if err != nil {
		return nil, err
	}

	key, err := jwt.ParseEdPublicKeyFromPEM(keyBytes)
	if err != nil {
		return nil, err
	}

	pub, ok := key.(ed25519.PublicKey)
	if !ok {
		return nil, fmt.Errorf("unexpected public key type %T", key)
	}

	return pub, nil
}

// FetchPrivateKey parses the loaded key as an Ed25519 private key.
func (f From) FetchPrivateKey() (ed25519.PrivateKey, error) {
	keyBytes, err := f()
	if err != nil {
		return nil, err
	}

	key, err := jwt.ParseEdPrivateKeyFromPEM(keyBytes)
	if err != nil {
		return nil, err
	}

	priv, ok := key.(ed25519.PrivateKey)
	if !ok {
		return nil, fmt.Errorf("unexpected private key type %T", key)
	}

	return priv, nil
}

// FromBase64Env receives an environment variable key as input,
// reads the Base64 encoded value from the specified environment variable, decodes it,
// and returns a From function.
func FromBase64Env(key string) From {
	return func() ([]byte, error) {
		keyBase64 := os.Getenv(key)
		if keyBase64 == "" {
			return nil, errors.New("key is not found")
		}

		return base64.StdEncoding.DecodeString(keyBase64)
	}
}

// FromFile reads a PEM encoded key from the given path and returns a From function.
func FromFile(path string) From {
	return func() ([]byte, error) {
		return os.ReadFile(path)
	}
}
