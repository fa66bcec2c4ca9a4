//go:build openfga

package main

import (
	"log/slog"
	"os"

	"github.com/gatehouse-go/gatehouse/internal/authn"
	openfgapolicy "github.com/gatehouse-go/gatehouse/internal/policies/openfga"
	"github.com/gatehouse-go/gatehouse/policy"
)

const (
	FgaAPIURLEnv  = "FGA_API_URL"
	FgaStoreIDEnv = "FGA_STORE_ID"
	FgaModelIDEnv = "FGA_MODEL_ID"
)

// newRoutePolicy initializes a route policy backed by an OpenFGA store with the specified logger.
// Relations and route objects are expected to be managed out of band in the store.
func newRoutePolicy(logger *slog.Logger) (policy.Policy[*authn.User, string], error) {
	logger.Info("initializing route policy with OpenFGA")

	return openfgapolicy.NewRoutePolicy(openfgapolicy.Config{
		APIURL:  os.Getenv(FgaAPIURLEnv),
		StoreID: os.Getenv(FgaStoreIDEnv),
		ModelID: os.Getenv(FgaModelIDEnv),
	})
}
