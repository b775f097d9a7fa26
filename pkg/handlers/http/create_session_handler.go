package http

import (
	"encoding/json"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"github.com/CloudArcade/GameGate/pkg/domain/session"
	"github.com/CloudArcade/GameGate/pkg/infra/gateway"
)

type createSessionHandler struct {
	logger         *logrus.Logger
	gatewayClient  gateway.Client
	gatewayEnabled bool
}

func NewCreateSessionHandler(
	logger *logrus.Logger,
	gatewayClient gateway.Client,
	gatewayEnabled bool,
) Handler {
	return &createSessionHandler{
		logger:         logger,
		gatewayClient:  gatewayClient,
		gatewayEnabled: gatewayEnabled,
	}
}

// Handle creates a streaming session for the requested game by forwarding
// to the gateway. Validation failures never reach the network.
func (h *createSessionHandler) Handle(c *fiber.Ctx) error {
	if !h.gatewayEnabled {
		return errorResponse(c, fiber.StatusServiceUnavailable, errNoGateway)
	}

	var input map[string]interface{}
	if err := json.Unmarshal(c.Body(), &input); err != nil || len(input) == 0 {
		return errorResponse(c, fiber.StatusBadRequest, errInvalidInput)
	}

	game, _ := input["game"].(string)
	if game == "" {
		return errorResponse(c, fiber.StatusBadRequest, errInvalidGame)
	}

	resp, err := h.gatewayClient.CreateSession(c.Context(), session.NewCreateRequest(game))
	if err != nil {
		h.logger.WithError(err).WithField("game", game).Error("session creation request failed")
		return errorResponse(c, fiber.StatusInternalServerError, errCreateSession)
	}

	if !resp.StatusIs(fiber.StatusCreated) {
		fields := logrus.Fields{"game": game}
		if resp.StatusCode != nil {
			fields["gateway_status"] = *resp.StatusCode
		}
		h.logger.WithFields(fields).Error("gateway refused session creation")
		return errorResponse(c, fiber.StatusInternalServerError, errCreateSession)
	}

	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return c.Status(fiber.StatusOK).Send(resp.Metadata)
}
