package webapi

import (
	authsvc "github.com/amirasaad/transfeo/pkg/service/auth"
	"github.com/gofiber/fiber/v2"
)

// AuthRoutes registers the login endpoint.
func AuthRoutes(app *fiber.App, svc *authsvc.Service) {
	app.Post("/login", Login(svc))
}

// Login authenticates a user and returns a JWT token.
// @Summary User login
// @Description Authenticate with email and password
// @Tags auth
// @Accept json
// @Produce json
// @Param request body auth.LoginRequest true "Login credentials"
// @Success 200 {object} Response
// @Failure 401 {object} ProblemDetails
// @Failure 403 {object} ProblemDetails
// @Failure 422 {object} ProblemDetails
// @Router /login [post]
func Login(svc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := BindAndValidate[authsvc.LoginRequest](c)
		if err != nil {
			return nil
		}
		user, token, err := svc.Login(c.UserContext(), *input)
		if err != nil {
			return DomainErrorJSON(c, "Login failed", err)
		}
		return c.JSON(Response{
			Status:  fiber.StatusOK,
			Message: "Success login",
			Data: fiber.Map{
				"token": token,
				"user": fiber.Map{
					"id":    user.ID,
					"name":  user.Name,
					"email": user.Email,
					"role":  user.Role,
				},
			},
		})
	}
}
