package rayid

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// HeaderName is the response header carrying the request's ray id.
const HeaderName = "X-Ray-Id"

// LocalsKey is the fiber locals key the ray id is stored under.
const LocalsKey = "ray_id"

// New returns a middleware that assigns a unique ray id to every request and
// echoes it back in the response headers for tracing.
func New() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Get(HeaderName)
		if id == "" {
			id = uuid.NewString()
		}
		c.Locals(LocalsKey, id)
		c.Set(HeaderName, id)
		return c.Next()
	}
}
