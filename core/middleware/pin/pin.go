// Package pin implements the cookie-based PIN gate protecting the API.
//
// Callers unlock access by posting the configured PIN once; a httpOnly
// cookie then vouches for the session for thirty days. An empty PIN in the
// configuration disables the gate entirely.
package pin

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

// CookieName is the cookie vouching for a verified PIN.
const CookieName = "pin_ok"

// cookieMaxAge is thirty days, matching the verification endpoint.
const cookieMaxAge = 30 * 24 * time.Hour

// Config holds configuration for the PIN gate.
type Config struct {
	// Pin is the expected access code. Empty disables the gate.
	Pin string
}

// New returns a middleware that rejects requests lacking a verified PIN cookie.
func New(cfg Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if cfg.Pin == "" {
			return c.Next()
		}

		if c.Cookies(CookieName) != "1" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"ok":    false,
				"error": "pin required",
			})
		}

		return c.Next()
	}
}

// VerifyRequest is the body of the PIN verification endpoint.
type VerifyRequest struct {
	Pin string `json:"pin"`
}

// VerifyHandler returns the handler for POST /pin. On a correct PIN it sets
// the gate cookie; on a wrong one it answers 401 without a cookie.
func VerifyHandler(cfg Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req VerifyRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"ok": false, "error": "bad payload"})
		}

		if cfg.Pin == "" || req.Pin != cfg.Pin {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"ok": false})
		}

		c.Cookie(&fiber.Cookie{
			Name:     CookieName,
			Value:    "1",
			HTTPOnly: true,
			SameSite: fiber.CookieSameSiteLaxMode,
			Path:     "/",
			Expires:  time.Now().Add(cookieMaxAge),
		})

		return c.JSON(fiber.Map{"ok": true})
	}
}
