package server

import (
	"novapanel/internal/handler"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Server struct {
	echo           *echo.Echo
	orderHandler   *handler.OrderHandler
	webhookHandler *handler.WebhookHandler
}

func NewServer(orderHandler *handler.OrderHandler, webhookHandler *handler.WebhookHandler) *Server {
	e := echo.New()
	e.HideBanner = true

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	s := &Server{
		echo:           e,
		orderHandler:   orderHandler,
		webhookHandler: webhookHandler,
	}

	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.echo.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	api := s.echo.Group("/api")

	api.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]string{"status": "ok"})
	})

	// -------- orders --------
	api.POST("/orders", s.orderHandler.CreateOrder)
	api.GET("/orders/:orderID", s.orderHandler.GetOrder)
	api.GET("/orders/:orderID/status", s.orderHandler.GetOrderStatus)
	api.POST("/orders/:orderID/provision", s.orderHandler.Provision)
	api.POST("/orders/sync", s.orderHandler.SyncOrders)

	// -------- payment gateway callbacks --------
	api.POST("/webhooks/payment", s.webhookHandler.PaymentWebhook)
}

func (s *Server) Start(address string) error {
	return s.echo.Start(address)
}

func (s *Server) Shutdown() error {
	return s.echo.Close()
}
