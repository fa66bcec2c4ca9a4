package echoadapter

import "github.com/labstack/echo/v4"

// ActorContextKey is the echo context key the adapter reads the actor from.
const ActorContextKey = "gatehouse.actor"

// SetActor stores the actor in the echo context. Authentication middleware
// populates this slot; stages read it. Storing nil marks the actor as
// explicitly absent.
func SetActor(c echo.Context, actor any) {
	c.Set(ActorContextKey, actor)
}

// Actor returns the actor stored in the echo context and whether one is
// present. A stored nil counts as absent.
func Actor(c echo.Context) (any, bool) {
	actor := c.Get(ActorContextKey)
	if actor == nil {
		return nil, false
	}

	return actor, true
}
