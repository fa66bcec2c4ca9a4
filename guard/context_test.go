package guard

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestActorFromContext(t *testing.T) {
	type user struct {
		Name string
	}

	cases := map[string]struct {
		ctx           context.Context
		expectedActor any
		expectedOK    bool
	}{
		"context without an actor": {
			ctx: context.Background(),
		},
		"context with an actor": {
			ctx:           ContextWithActor(context.Background(), user{Name: "amy"}),
			expectedActor: user{Name: "amy"},
			expectedOK:    true,
		},
		"explicit nil actor reads back as absent": {
			ctx: ContextWithActor(context.Background(), nil),
		},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			actor, ok := ActorFromContext(tc.ctx)

			assert.Equal(t, tc.expectedOK, ok)
			assert.Equal(t, tc.expectedActor, actor)
		})
	}
}

func TestActorFromRequest(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	_, ok := ActorFromRequest(req)
	assert.False(t, ok)

	actor, ok := ActorFromRequest(WithActor(req, "amy"))
	assert.True(t, ok)
	assert.Equal(t, "amy", actor)

	// The original request stays untouched.
	_, ok = ActorFromRequest(req)
	assert.False(t, ok)
}
