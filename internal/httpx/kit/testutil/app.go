// Package testutil builds Fiber apps for handler tests.
package testutil

import (
	"github.com/gofiber/fiber/v2"

	"creme-menu/internal/httpx/kit"
)

// NewApp returns an app using kit.ErrorHandler with the given routes mounted.
func NewApp(mounts ...func(*fiber.App)) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: kit.ErrorHandler()})
	for _, mount := range mounts {
		if mount != nil {
			mount(app)
		}
	}
	return app
}
