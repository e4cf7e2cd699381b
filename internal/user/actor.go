package user

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
)

// Actor is the authenticated identity behind a request.
type Actor struct {
	ID   int
	Role string
}

// ActorFromCtx extracts the user_id and role claims from the JWT token stored
// in `c.Locals("user")` by the auth middleware. Several handlers need this, so
// it lives here for reuse.
func ActorFromCtx(c *fiber.Ctx) (Actor, error) {
	u := c.Locals("user")
	if u == nil {
		return Actor{}, fiber.ErrUnauthorized
	}
	tok, ok := u.(*jwt.Token)
	if !ok {
		return Actor{}, fiber.ErrUnauthorized
	}
	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return Actor{}, fiber.ErrUnauthorized
	}

	actor := Actor{}
	switch v := claims["user_id"].(type) {
	case float64:
		actor.ID = int(v)
	case int:
		actor.ID = v
	case int64:
		actor.ID = int(v)
	case string:
		id, err := strconv.Atoi(v)
		if err != nil {
			return Actor{}, fiber.ErrUnauthorized
		}
		actor.ID = id
	default:
		return Actor{}, fiber.ErrUnauthorized
	}

	if role, ok := claims["role"].(string); ok {
		actor.Role = role
	}
	return actor, nil
}
