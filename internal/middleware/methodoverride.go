package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

// MethodOverride rewrites form POSTs carrying a `_method` field (or query
// parameter) into PUT or DELETE requests, so plain HTML forms can drive the
// full route table.
func MethodOverride() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if c.Method() == fiber.MethodPost {
			m := c.FormValue("_method")
			if m == "" {
				m = c.Query("_method")
			}
			switch strings.ToUpper(m) {
			case fiber.MethodPut:
				c.Method(fiber.MethodPut)
			case fiber.MethodDelete:
				c.Method(fiber.MethodDelete)
			}
		}
		return c.Next()
	}
}
