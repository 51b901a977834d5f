package middleware

import "github.com/gin-gonic/gin"

// actorIDKey is the key used to store the acting user's ID in the Gin context.
const actorIDKey = contextKey("actorID")

// actorIDHeader carries the acting user's identifier; authentication itself
// is handled upstream of this service.
const actorIDHeader = "X-Actor-ID"

// ActorMiddleware extracts the acting user's ID from the request header and
// stores it in the context for audit trails.
func ActorMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if actorID := c.GetHeader(actorIDHeader); actorID != "" {
			c.Set(string(actorIDKey), actorID)
		}
		c.Next()
	}
}

// GetActorIDFromContext retrieves the acting user ID from the Gin context.
// It returns the ID and a boolean indicating if it was found.
func GetActorIDFromContext(c *gin.Context) (string, bool) {
	actorVal, exists := c.Get(string(actorIDKey))
	if !exists {
		return "", false
	}

	actorID, ok := actorVal.(string)
	if !ok || actorID == "" {
		return "", false
	}

	return actorID, true
}
