package http

import (
	"github.com/gofiber/fiber/v2"
)

// Error messages returned to the frontend. The body shape is always
// {"error_msg": "..."} with the HTTP status carrying the failure class.
const (
	errNoGateway          = "no gateway connected"
	errInvalidInput       = "invalid input"
	errInvalidGame        = "invalid game selected"
	errCreateSession      = "failed to create session"
	errGatewayUnreachable = "failed to communicate with gateway"
	errInvalidGatewayResp = "received invalid response from gateway"
)

func errorResponse(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(fiber.Map{"error_msg": msg})
}
