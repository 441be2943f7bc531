// Package controller is the http surface of the gateway.
//
// It validates the request parameters, calls the service and
// wraps the reply as {"result": ...}. The failures are returned as {"error": ...}.
package controller

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strconv"
	"time"

	"github.com/blocklords/ballot-token/app/configuration"
	"github.com/blocklords/ballot-token/app/log"
	"github.com/blocklords/ballot-token/common/data_type/key_value"
	"github.com/blocklords/ballot-token/metrics"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

// ControllerConfigurations are the default parameters of the http server.
var ControllerConfigurations = configuration.DefaultConfig{
	Title: "Controller",
	Parameters: key_value.New(map[string]interface{}{
		"HTTP_HOST":             "0.0.0.0",
		"HTTP_PORT":             "3000",
		"HTTP_SHUTDOWN_TIMEOUT": "10s",
	}),
}

// Controller is the fiber application with the routes of the service.
type Controller struct {
	app     *fiber.App
	service Service
	logger  *log.Logger
	metrics *metrics.Metrics
}

// New creates the fiber application and registers the routes.
// The metrics are optional, if nil then /metrics is not served.
func New(s Service, parent *log.Logger, m *metrics.Metrics) (*Controller, error) {
	if s == nil {
		return nil, errors.New("missing service")
	}

	c := &Controller{
		service: s,
		logger:  parent.Child("controller"),
		metrics: m,
	}

	c.app = fiber.New(fiber.Config{
		AppName:               "ballot-token",
		DisableStartupMessage: true,
		ErrorHandler:          c.errorHandler,
	})

	c.app.Use(recover.New())
	c.app.Use(cors.New())
	c.app.Use(c.observe)

	if m != nil {
		c.app.Get("/metrics", adaptor.HTTPHandler(m.Handler()))
	}
	for _, route := range c.routes() {
		c.app.Add(route.Method, route.Path, route.Handler)
	}

	return c, nil
}

// App returns the underlying fiber application.
func (c *Controller) App() *fiber.App {
	return c.app
}

// ListenAddress returns the host:port from the configuration.
func ListenAddress(appConfig *configuration.Config) (string, error) {
	appConfig.SetDefaults(ControllerConfigurations)

	host := appConfig.GetString("HTTP_HOST")
	port := appConfig.GetUint64("HTTP_PORT")
	if port == 0 || port > 65535 {
		return "", fmt.Errorf("HTTP_PORT '%s' is not a valid port", appConfig.GetString("HTTP_PORT"))
	}

	return net.JoinHostPort(host, strconv.FormatUint(port, 10)), nil
}

// ShutdownTimeout returns how long the active requests are awaited on shutdown.
// Zero means no limit.
func ShutdownTimeout(appConfig *configuration.Config) time.Duration {
	appConfig.SetDefaults(ControllerConfigurations)
	return appConfig.GetDuration("HTTP_SHUTDOWN_TIMEOUT")
}

// Run the http server. It blocks until the server is shut down.
func (c *Controller) Run(address string) error {
	c.logger.Info("listening", "address", address)
	if err := c.app.Listen(address); err != nil {
		return fmt.Errorf("app.Listen(%s): %w", address, err)
	}
	return nil
}

// Shutdown stops accepting the requests and waits for the active ones.
// If timeout is zero, then it waits until all active requests are finished.
func (c *Controller) Shutdown(timeout time.Duration) error {
	if timeout <= 0 {
		return c.app.ShutdownWithContext(context.Background())
	}
	return c.app.ShutdownWithTimeout(timeout)
}

// errorHandler replies the error as a json.
// The validation errors are *fiber.Error with the 4xx code, anything else is 500.
func (c *Controller) errorHandler(ctx *fiber.Ctx, err error) error {
	code := statusCode(err)
	if code >= fiber.StatusInternalServerError {
		c.logger.Error("request failed", "method", ctx.Method(), "path", ctx.Path(), "error", err)
	}

	return ctx.Status(code).JSON(fiber.Map{"error": err.Error()})
}

// observe logs the request and counts it in the metrics.
func (c *Controller) observe(ctx *fiber.Ctx) error {
	start := time.Now()
	err := ctx.Next()

	status := ctx.Response().StatusCode()
	if err != nil {
		status = statusCode(err)
	}

	c.metrics.ObserveRequest(ctx.Method(), ctx.Route().Path, status)
	c.logger.Info("request",
		"method", ctx.Method(),
		"path", ctx.Path(),
		"status", status,
		"duration", time.Since(start).String(),
	)

	return err
}

func statusCode(err error) int {
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return fiberErr.Code
	}
	return fiber.StatusInternalServerError
}
