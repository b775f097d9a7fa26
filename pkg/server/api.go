package server

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"github.com/CloudArcade/GameGate/pkg/config"
	handlers "github.com/CloudArcade/GameGate/pkg/handlers/http"
	"github.com/CloudArcade/GameGate/pkg/middleware"
)

type (
	ApiServerDI struct {
		MiddlewareTransport middleware.Transport
		HandlerTransport    handlers.HandlerTransport
		Config              *config.Config
		Logger              *logrus.Logger
	}
	ApiServer struct {
		*BaseServer
		middlewareTransport middleware.Transport
		handlerTransport    handlers.HandlerTransport
	}
)

func NewApiServer(di ApiServerDI) *ApiServer {
	return &ApiServer{
		BaseServer:          NewBaseServer(di.Config, di.Logger),
		middlewareTransport: di.MiddlewareTransport,
		handlerTransport:    di.HandlerTransport,
	}
}

// Bootstrap registers middleware and routes and returns the underlying
// fiber app, ready to serve or to drive in-process from tests.
func (s *ApiServer) Bootstrap() *fiber.App {
	s.setupRoutes()
	s.setupHealthCheck()
	return s.Router
}

func (s *ApiServer) Run() error {
	s.Bootstrap()
	s.setupMetricsEndpoint()

	addr := fmt.Sprintf("%s:%d", s.Config.Server.Host, s.Config.Server.Port)
	s.Logger.WithField("addr", addr).Info("Starting api server")
	return s.Router.Listen(addr)
}

func (s *ApiServer) setupRoutes() {
	s.Router.Use(s.middlewareTransport.RequestLoggerMiddleware.Middleware())
	if s.Config.Metrics.Enabled {
		s.Router.Use(s.middlewareTransport.MetricsMiddleware.Middleware())
	}

	v1 := s.Router.Group("/1.0")
	{
		v1.Post("/sessions/", s.handlerTransport.CreateSessionHandler.Handle)
		v1.Get("/games", s.handlerTransport.ListGamesHandler.Handle)
	}

	s.Router.Get("/version", s.handlerTransport.GetVersionHandler.Handle)

	// Frontend bundle; unknown files get the framework's 404.
	s.Router.Static("/", s.Config.Frontend.Dir, fiber.Static{
		Index: s.Config.Frontend.Index,
	})
}

func (s *ApiServer) Shutdown() error {
	return s.Router.Shutdown()
}
