package opa

import (
	"context"
	"fmt"
	"os"
)

// Source supplies the rego module text a route policy evaluates.
type Source interface {
	Load(ctx context.Context) (string, error)
}

// StaticSource serves a fixed rego module.
type StaticSource string

// Load returns the module text.
func (s StaticSource) Load(_ context.Context) (string, error) {
	return string(s), nil
}

// FileSource reads the rego module from disk on every load, so policy file
// edits take effect without a restart.
type FileSource string

// Load reads the module text from the file.
func (s FileSource) Load(ctx context.Context) (string, error) {
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	default:
	}

	data, err := os.ReadFile(string(s))
	if err != nil {
		return "", fmt.Errorf("read policy file: %w", err)
	}

	return string(data), nil
}
