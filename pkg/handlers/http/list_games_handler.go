package http

import (
	"encoding/json"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"github.com/CloudArcade/GameGate/pkg/domain/application"
	"github.com/CloudArcade/GameGate/pkg/infra/cache"
	"github.com/CloudArcade/GameGate/pkg/infra/gateway"
)

type listGamesHandler struct {
	logger         *logrus.Logger
	gatewayClient  gateway.Client
	gatewayEnabled bool
	gamesCache     *cache.Cache // nil when redis is not configured
	cacheTTL       time.Duration
}

func NewListGamesHandler(
	logger *logrus.Logger,
	gatewayClient gateway.Client,
	gatewayEnabled bool,
	gamesCache *cache.Cache,
	cacheTTL time.Duration,
) Handler {
	return &listGamesHandler{
		logger:         logger,
		gatewayClient:  gatewayClient,
		gatewayEnabled: gatewayEnabled,
		gamesCache:     gamesCache,
		cacheTTL:       cacheTTL,
	}
}

// Handle lists the games installed on the gateway as a flat array of names.
func (h *listGamesHandler) Handle(c *fiber.Ctx) error {
	if !h.gatewayEnabled {
		return errorResponse(c, fiber.StatusServiceUnavailable, errNoGateway)
	}

	if cached, ok := h.fromCache(c); ok {
		c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
		return c.Status(fiber.StatusOK).SendString(cached)
	}

	resp, err := h.gatewayClient.ListApplications(c.Context())
	if err != nil {
		h.logger.WithError(err).Error("applications listing request failed")
		return errorResponse(c, fiber.StatusBadGateway, errGatewayUnreachable)
	}

	if !resp.StatusIs(fiber.StatusOK) {
		fields := logrus.Fields{}
		if resp.StatusCode != nil {
			fields["gateway_status"] = *resp.StatusCode
		}
		h.logger.WithFields(fields).Error("gateway refused applications listing")
		return errorResponse(c, fiber.StatusInternalServerError, errGatewayUnreachable)
	}

	if !resp.HasMetadata() {
		h.logger.Error("gateway applications listing has no metadata")
		return errorResponse(c, fiber.StatusInternalServerError, errInvalidGatewayResp)
	}

	names, err := application.NamesFromMetadata(resp.Metadata)
	if err != nil {
		h.logger.WithError(err).Error("gateway applications listing is not a list")
		return errorResponse(c, fiber.StatusInternalServerError, errInvalidGatewayResp)
	}

	h.storeCache(c, names)

	return c.Status(fiber.StatusOK).JSON(names)
}

func (h *listGamesHandler) fromCache(c *fiber.Ctx) (string, bool) {
	if h.gamesCache == nil {
		return "", false
	}
	cached, found, err := h.gamesCache.Get(c.Context(), cache.GamesKey)
	if err != nil {
		h.logger.WithError(err).Warn("games cache lookup failed, falling through to gateway")
		return "", false
	}
	return cached, found
}

func (h *listGamesHandler) storeCache(c *fiber.Ctx, names []string) {
	if h.gamesCache == nil {
		return
	}
	payload, err := json.Marshal(names)
	if err != nil {
		return
	}
	if err := h.gamesCache.Set(c.Context(), cache.GamesKey, string(payload), h.cacheTTL); err != nil {
		h.logger.WithError(err).Warn("failed to cache games listing")
	}
}
