package webapi

import (
	"github.com/amirasaad/transfeo/config"
	"github.com/amirasaad/transfeo/pkg/middleware"
	"github.com/amirasaad/transfeo/pkg/repository"
	dashboardsvc "github.com/amirasaad/transfeo/pkg/service/dashboard"
	"github.com/gofiber/fiber/v2"
)

// DashboardRoutes registers the authenticated dashboard endpoint.
func DashboardRoutes(app *fiber.App, cfg *config.AppConfig, uow repository.UnitOfWork, svc *dashboardsvc.Service) {
	app.Get("/dashboard",
		middleware.JwtProtected(cfg.Jwt),
		middleware.RequireActive(uow),
		Dashboard(svc))
}

// Dashboard returns the user's monthly activity chart, recent transfers and
// yearly total.
// @Summary Dashboard
// @Description Monthly sent-transfer chart and recent activity for the current year
// @Tags dashboard
// @Produce json
// @Security Bearer
// @Success 200 {object} Response
// @Router /dashboard [get]
func Dashboard(svc *dashboardsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := middleware.UserID(c)
		if err != nil {
			return ErrorResponseJSON(c, fiber.StatusUnauthorized, "Unauthorized", err.Error())
		}
		view, err := svc.View(c.UserContext(), userID)
		if err != nil {
			return DomainErrorJSON(c, "Dashboard failed", err)
		}
		return c.JSON(Response{
			Status:  fiber.StatusOK,
			Message: "Dashboard",
			Data:    view,
		})
	}
}
