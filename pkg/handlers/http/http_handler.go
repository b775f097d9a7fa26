package http

import "github.com/gofiber/fiber/v2"

type Handler interface {
	Handle(ctx *fiber.Ctx) error
}

type HandlerTransport struct {
	// Gateway-backed
	CreateSessionHandler Handler
	ListGamesHandler     Handler

	// Service
	GetVersionHandler Handler
}
