package main

import (
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/gatehouse-go/gatehouse/guard"
	"github.com/gatehouse-go/gatehouse/internal/api/rest"
	"github.com/gatehouse-go/gatehouse/internal/api/rest/handlers"
	"github.com/gatehouse-go/gatehouse/internal/api/rest/middlewares"
	"github.com/gatehouse-go/gatehouse/internal/authn"
	"github.com/gatehouse-go/gatehouse/internal/keyfetcher"
	"github.com/gatehouse-go/gatehouse/internal/version"
)

const (
	PrivateKeyEnv = "PRIVATE_KEY_BASE64"
	PublicKeyEnv  = "PUBLIC_KEY_BASE64"

	AdminRoutesResource = guard.Resource("admin_routes")

	ReadTimeout  = 5 * time.Second
	WriteTimeout = 10 * time.Second
	IdleTimeout  = 120 * time.Second

	PortNumber = 8080
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, using process environment")
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil)).With(
		slog.String("version", version.Version),
	)

	routePolicy, err := newRoutePolicy(logger)
	if err != nil {
		log.Fatal(err)
	}

	directory := handlers.NewUserDirectory(
		handlers.User{Username: "amy", Roles: []string{"admin"}},
		handlers.User{Username: "bob", Roles: []string{"viewer"}},
	)

	mux := rest.NewMuxWithHandlers(
		&rest.RouterConfig{
			SignInHandler: handlers.NewSignInHandler(
				authn.NewHardcodedAuthenticator(map[string]string{
					"amy": "password",
					"bob": "password",
				}),
				keyfetcher.FromBase64Env(PrivateKeyEnv),
				logger,
			),
			UserListHandler:   handlers.NewListUsersHandler(directory),
			UserDeleteHandler: handlers.NewDeleteUserHandler(directory, logger),
			Authentication: middlewares.NewJWTAuthenticationMiddleware(
				keyfetcher.FromBase64Env(PublicKeyEnv),
				logger,
			),
			Guard: guard.MustNew(
				middlewares.NewAccessGuardHandler(routePolicy, logger),
				guard.Config{Resource: AdminRoutesResource},
			),
		},
	)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%v", PortNumber),
		Handler:      mux,
		ReadTimeout:  ReadTimeout,
		WriteTimeout: WriteTimeout,
		IdleTimeout:  IdleTimeout,
	}

	log.Printf("Starting server on :%v (Version: %s)\n", PortNumber, version.Version)
	log.Fatal(server.ListenAndServe())
}
