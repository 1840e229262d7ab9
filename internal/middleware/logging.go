package middleware

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
)

// Logging logs one line per request: method, path, status, duration.
func Logging() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		log.Printf("%s %s -> %d (%s)", c.Method(), c.Path(), c.Response().StatusCode(), time.Since(start))
		return err
	}
}
