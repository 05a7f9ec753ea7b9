// Package gate runs the per-route pipeline that precedes every resource handler:
// authenticate, authorize, validate. Each stage either passes (nil) or rejects the request
// with an error, and a rejection is terminal.
package gate

import "github.com/gofiber/fiber/v2"

// Stage is one step of the request gate.
type Stage func(c *fiber.Ctx) error

// Chain runs stages strictly in the given order and hands over to the next fiber handler
// only when every stage passed.
func Chain(stages ...Stage) fiber.Handler {
	return func(c *fiber.Ctx) error {
		for _, stage := range stages {
			if stage == nil {
				continue
			}
			if err := stage(c); err != nil {
				return err
			}
		}
		return c.Next()
	}
}
