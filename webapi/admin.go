package webapi

import (
	"github.com/amirasaad/transfeo/config"
	"github.com/amirasaad/transfeo/pkg/middleware"
	"github.com/amirasaad/transfeo/pkg/repository"
	adminsvc "github.com/amirasaad/transfeo/pkg/service/admin"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// AdminRoutes registers the back-office endpoints under /admin, gated on the
// admin role.
func AdminRoutes(app *fiber.App, cfg *config.AppConfig, svc *adminsvc.Service) {
	group := app.Group("/admin",
		middleware.JwtProtected(cfg.Jwt),
		middleware.RequireAdmin())

	group.Get("/users", AdminUsers(svc))
	group.Get("/users/:id", AdminUserDetails(svc))
	group.Put("/users/:id/toggle-admin", AdminToggleAdmin(svc))
	group.Put("/users/:id/toggle-block", AdminToggleBlock(svc))
	group.Get("/exchanges", AdminExchanges(svc))
	group.Get("/exchanges/stats", AdminStats(svc))
}

func listQuery(c *fiber.Ctx) repository.ListQuery {
	return repository.ListQuery{
		Search:  c.Query("search"),
		Page:    c.QueryInt("page", 1),
		PerPage: c.QueryInt("per_page", 20),
	}
}

func paramID(c *fiber.Ctx) (uuid.UUID, error) {
	return uuid.Parse(c.Params("id"))
}

// AdminUsers lists accounts with search and activity counts.
// @Summary List users
// @Description Search accounts by name, email or IBAN
// @Tags admin
// @Produce json
// @Security Bearer
// @Param search query string false "Search term"
// @Param page query int false "Page"
// @Param per_page query int false "Page size"
// @Success 200 {object} Response
// @Router /admin/users [get]
func AdminUsers(svc *adminsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		page, err := svc.Users(c.UserContext(), listQuery(c))
		if err != nil {
			return DomainErrorJSON(c, "User list failed", err)
		}
		return c.JSON(Response{Status: fiber.StatusOK, Message: "Users", Data: page})
	}
}

// AdminUserDetails returns one account with its exchange history.
// @Summary User details
// @Tags admin
// @Produce json
// @Security Bearer
// @Param id path string true "User id"
// @Success 200 {object} Response
// @Failure 404 {object} ProblemDetails
// @Router /admin/users/{id} [get]
func AdminUserDetails(svc *adminsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := paramID(c)
		if err != nil {
			return ErrorResponseJSON(c, fiber.StatusBadRequest, "Invalid user id", err.Error())
		}
		details, err := svc.UserDetails(c.UserContext(), id)
		if err != nil {
			return DomainErrorJSON(c, "User details failed", err)
		}
		return c.JSON(Response{Status: fiber.StatusOK, Message: "User details", Data: details})
	}
}

// AdminToggleAdmin flips a user's admin role.
// @Summary Toggle admin role
// @Tags admin
// @Produce json
// @Security Bearer
// @Param id path string true "User id"
// @Success 200 {object} Response
// @Failure 404 {object} ProblemDetails
// @Failure 422 {object} ProblemDetails
// @Router /admin/users/{id}/toggle-admin [put]
func AdminToggleAdmin(svc *adminsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		actorID, err := middleware.UserID(c)
		if err != nil {
			return ErrorResponseJSON(c, fiber.StatusUnauthorized, "Unauthorized", err.Error())
		}
		targetID, err := paramID(c)
		if err != nil {
			return ErrorResponseJSON(c, fiber.StatusBadRequest, "Invalid user id", err.Error())
		}
		role, err := svc.ToggleAdmin(c.UserContext(), actorID, targetID)
		if err != nil {
			return DomainErrorJSON(c, "Role toggle failed", err)
		}
		return c.JSON(Response{
			Status:  fiber.StatusOK,
			Message: "Role updated",
			Data:    fiber.Map{"id": targetID, "role": role},
		})
	}
}

// AdminToggleBlock flips a user's blocked state.
// @Summary Toggle account block
// @Tags admin
// @Produce json
// @Security Bearer
// @Param id path string true "User id"
// @Success 200 {object} Response
// @Failure 404 {object} ProblemDetails
// @Failure 422 {object} ProblemDetails
// @Router /admin/users/{id}/toggle-block [put]
func AdminToggleBlock(svc *adminsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		actorID, err := middleware.UserID(c)
		if err != nil {
			return ErrorResponseJSON(c, fiber.StatusUnauthorized, "Unauthorized", err.Error())
		}
		targetID, err := paramID(c)
		if err != nil {
			return ErrorResponseJSON(c, fiber.StatusBadRequest, "Invalid user id", err.Error())
		}
		blocked, err := svc.ToggleBlock(c.UserContext(), actorID, targetID)
		if err != nil {
			return DomainErrorJSON(c, "Block toggle failed", err)
		}
		return c.JSON(Response{
			Status:  fiber.StatusOK,
			Message: "Account updated",
			Data:    fiber.Map{"id": targetID, "blocked": blocked},
		})
	}
}

// AdminExchanges lists the transfer ledger with search.
// @Summary List exchanges
// @Tags admin
// @Produce json
// @Security Bearer
// @Param search query string false "Search term"
// @Param page query int false "Page"
// @Param per_page query int false "Page size"
// @Success 200 {object} Response
// @Router /admin/exchanges [get]
func AdminExchanges(svc *adminsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		page, err := svc.Exchanges(c.UserContext(), listQuery(c))
		if err != nil {
			return DomainErrorJSON(c, "Exchange list failed", err)
		}
		return c.JSON(Response{Status: fiber.StatusOK, Message: "Exchanges", Data: page})
	}
}

// AdminStats summarizes the ledger.
// @Summary Exchange stats
// @Tags admin
// @Produce json
// @Security Bearer
// @Success 200 {object} Response
// @Router /admin/exchanges/stats [get]
func AdminStats(svc *adminsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		stats, err := svc.Stats(c.UserContext())
		if err != nil {
			return DomainErrorJSON(c, "Stats failed", err)
		}
		return c.JSON(Response{Status: fiber.StatusOK, Message: "Stats", Data: stats})
	}
}
