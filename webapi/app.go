// Package webapi exposes the HTTP surface: transfers, conversion previews,
// dashboard, currency reference and the admin back office.
package webapi

import (
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/amirasaad/transfeo/config"
	"github.com/amirasaad/transfeo/pkg/repository"
	adminsvc "github.com/amirasaad/transfeo/pkg/service/admin"
	authsvc "github.com/amirasaad/transfeo/pkg/service/auth"
	dashboardsvc "github.com/amirasaad/transfeo/pkg/service/dashboard"
	ratessvc "github.com/amirasaad/transfeo/pkg/service/rates"
	transfersvc "github.com/amirasaad/transfeo/pkg/service/transfer"
	usersvc "github.com/amirasaad/transfeo/pkg/service/user"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"

	_ "github.com/amirasaad/transfeo/docs"
)

// Deps carries the wired services the app serves.
type Deps struct {
	Cfg       *config.AppConfig
	Logger    *slog.Logger
	UoW       repository.UnitOfWork
	Auth      *authsvc.Service
	Transfer  *transfersvc.Service
	Rates     *ratessvc.Service
	Users     *usersvc.Service
	Admin     *adminsvc.Service
	Dashboard *dashboardsvc.Service
}

// New builds the fiber app with middleware and all route groups registered.
func New(deps Deps) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName: "transfeo",
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			status := fiber.StatusInternalServerError
			title := "Internal Server Error"
			var fe *fiber.Error
			if errors.As(err, &fe) {
				status = fe.Code
				title = fe.Message
			}
			return ErrorResponseJSON(c, status, title, err.Error())
		},
	})

	app.Get("/swagger/*", swagger.New(swagger.Config{
		TryItOutEnabled:      true,
		PersistAuthorization: true,
	}))

	app.Use(limiter.New(limiter.Config{
		Max:        deps.Cfg.RateLimit.MaxRequests,
		Expiration: deps.Cfg.RateLimit.Window,
		KeyGenerator: func(c *fiber.Ctx) string {
			// Prefer the proxy-provided client address when present.
			if forwardedFor := c.Get("X-Forwarded-For"); forwardedFor != "" {
				if commaIndex := strings.Index(forwardedFor, ","); commaIndex != -1 {
					return strings.TrimSpace(forwardedFor[:commaIndex])
				}
				return strings.TrimSpace(forwardedFor)
			}
			if realIP := c.Get("X-Real-IP"); realIP != "" {
				return realIP
			}
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return ErrorResponseJSON(c, fiber.StatusTooManyRequests,
				"Too Many Requests", "Rate limit exceeded")
		},
	}))
	app.Use(recover.New())
	app.Use(cors.New())
	app.Use(requestLogger(deps.Logger))

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(Response{Status: fiber.StatusOK, Message: "transfeo is up"})
	})

	AuthRoutes(app, deps.Auth)
	ExchangeRoutes(app, deps.Cfg, deps.UoW, deps.Transfer, deps.Rates, deps.Users)
	CurrencyRoutes(app, deps.Rates)
	DashboardRoutes(app, deps.Cfg, deps.UoW, deps.Dashboard)
	AdminRoutes(app, deps.Cfg, deps.Admin)

	return app
}

func requestLogger(logger *slog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		logger.Info("request",
			"method", c.Method(),
			"path", c.Path(),
			"status", c.Response().StatusCode(),
			"duration", time.Since(start),
		)
		return err
	}
}
