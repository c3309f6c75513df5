package middleware

import "github.com/gin-gonic/gin"

// actorKey is the key used to store the acting user's name in the context.
const actorKey = contextKey("actor")

// actorHeader names the caller performing the request. Authentication is
// handled upstream of this service; the gateway forwards the resolved
// identity in this header.
const actorHeader = "X-Actor"

const defaultActor = "system"

// ActorMiddleware stores the acting user from the request header in the Gin
// context so posting and voiding can record who did it.
func ActorMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		actor := c.GetHeader(actorHeader)
		if actor == "" {
			actor = defaultActor
		}
		c.Set(string(actorKey), actor)
		c.Next()
	}
}

// GetActorFromContext retrieves the acting user from the Gin context.
func GetActorFromContext(c *gin.Context) string {
	actorVal, exists := c.Get(string(actorKey))
	if !exists {
		return defaultActor
	}
	actor, ok := actorVal.(string)
	if !ok || actor == "" {
		return defaultActor
	}
	return actor
}
